package syncengine

import (
	"errors"
	"fmt"
	"time"

	"swaglabs-e2e/internal/domain/entity"
)

// ErrWaitTimeout matches every *WaitTimeoutError with errors.Is.
var ErrWaitTimeout = errors.New("wait timed out")

// ConfigurationError reports a condition the engine does not know. It is a
// programming error and is never retried.
type ConfigurationError struct {
	Condition string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown condition: %s", e.Condition)
}

// WaitTimeoutError is returned when a condition is still unsatisfied once
// the profile timeout has elapsed.
type WaitTimeoutError struct {
	Condition entity.Condition
	Locator   entity.Locator
	Profile   entity.WaitProfile
	Timeout   time.Duration
	Elapsed   time.Duration
	// LastErr is the last ignored transient error seen while polling, if any.
	LastErr error
}

func (e *WaitTimeoutError) Error() string {
	msg := fmt.Sprintf("condition '%s' failed for element %s after %.2f seconds (profile %s, timeout %s)",
		e.Condition, e.Locator, e.Elapsed.Seconds(), e.Profile, e.Timeout)
	if e.LastErr != nil {
		msg += ": last error: " + e.LastErr.Error()
	}
	return msg
}

func (e *WaitTimeoutError) Is(target error) bool {
	return target == ErrWaitTimeout
}

func (e *WaitTimeoutError) Unwrap() error {
	return e.LastErr
}

// DriverCommandError wraps a driver failure that is not a bounded-wait
// timeout. The original error stays reachable through errors.Is and errors.As.
type DriverCommandError struct {
	Op      string
	Locator entity.Locator
	Err     error
}

func (e *DriverCommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Locator, e.Err)
}

func (e *DriverCommandError) Unwrap() error {
	return e.Err
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrWaitTimeout)
}

func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
