package entity

import (
	"errors"
	"time"
)

type WaitProfile int

const (
	WaitDefault WaitProfile = iota
	WaitShort
	WaitLong
	WaitFluent
)

func (p WaitProfile) String() string {
	switch p {
	case WaitDefault:
		return "DEFAULT"
	case WaitShort:
		return "SHORT"
	case WaitLong:
		return "LONG"
	case WaitFluent:
		return "FLUENT"
	}
	return "DEFAULT"
}

const (
	DefaultWaitTimeout = 20 * time.Second
	ShortWaitTimeout   = 5 * time.Second
	LongWaitTimeout    = 60 * time.Second
	FluentWaitTimeout  = 10 * time.Second

	// DefaultPollInterval applies to every profile except FLUENT.
	DefaultPollInterval = 500 * time.Millisecond
	FluentPollInterval  = 1 * time.Second
)

// WaitConfig is the resolved timeout, poll interval and ignored error set
// of a WaitProfile.
type WaitConfig struct {
	Profile      WaitProfile
	Timeout      time.Duration
	PollInterval time.Duration
	Ignored      []error
}

// Ignores reports whether err should count as "not yet satisfied" during a poll.
func (c WaitConfig) Ignores(err error) bool {
	for _, target := range c.Ignored {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
