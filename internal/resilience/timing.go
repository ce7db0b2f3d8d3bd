package resilience

import (
	"fmt"
	"time"

	"swaglabs-e2e/internal/application/port/output"
)

// Timed runs op and logs how long it took, whatever the outcome.
func Timed[T any](log output.LoggerPort, name string, op func() (T, error)) (T, error) {
	start := time.Now()
	res, err := op()
	if log != nil {
		elapsed := time.Since(start)
		log.Debug(fmt.Sprintf("%s took %.4f seconds", name, elapsed.Seconds()),
			"operation", name,
			"duration_ms", elapsed.Milliseconds(),
			"failed", err != nil,
		)
	}
	return res, err
}

func TimedErr(log output.LoggerPort, name string, op func() error) error {
	_, err := Timed(log, name, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}
