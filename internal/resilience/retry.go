// Package resilience holds the whole-operation wrappers used around page
// flows: bounded retries with a fixed delay, and duration logging. They are
// independent of the DOM wait loop in syncengine.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"swaglabs-e2e/internal/application/port/output"
)

const (
	DefaultRetries    = 3
	DefaultRetryDelay = 2 * time.Second
)

type RetryConfig struct {
	// Retries is the number of failed attempts tolerated before the final one.
	Retries int
	Delay   time.Duration
	// Permanent reports errors that must not be retried.
	Permanent func(error) bool
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Retries: DefaultRetries,
		Delay:   DefaultRetryDelay,
	}
}

// Retry runs op up to cfg.Retries+1 times, sleeping cfg.Delay after each
// failure. The last error is returned when every attempt fails.
func Retry[T any](ctx context.Context, cfg RetryConfig, log output.LoggerPort, op func(ctx context.Context) (T, error)) (T, error) {
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}

	attempt := 0
	stopped := false
	operation := func() (T, error) {
		res, err := op(ctx)
		if err == nil {
			return res, nil
		}
		if cfg.Permanent != nil && cfg.Permanent(err) {
			stopped = true
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	notify := func(err error, next time.Duration) {
		attempt++
		if log != nil {
			log.Warn("attempt failed", "attempt", attempt, "error", err, "next_in", next.String())
		}
	}

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(cfg.Delay)),
		backoff.WithMaxTries(uint(cfg.Retries+1)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
	// backoff leaves the last attempt's error wrapped when it was permanent.
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	if err == nil || log == nil || errors.Is(err, context.Canceled) {
		return res, err
	}
	if stopped {
		log.Error("permanent failure, not retrying", "attempts", attempt+1, "error", err)
	} else {
		log.Error("all attempts failed", "attempts", attempt+1, "error", err)
	}
	return res, err
}

// RetryErr is Retry for operations without a result.
func RetryErr(ctx context.Context, cfg RetryConfig, log output.LoggerPort, op func(ctx context.Context) error) error {
	_, err := Retry(ctx, cfg, log, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
