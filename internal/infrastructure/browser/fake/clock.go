package fake

import (
	"context"
	"time"
)

// Clock is a manual time source. Sleep advances it instantly.
type Clock struct {
	now    time.Time
	slept  time.Duration
	sleeps int
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	return c.now
}

func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	c.slept += d
	c.sleeps++
	return nil
}

func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Slept is the total time spent in Sleep.
func (c *Clock) Slept() time.Duration {
	return c.slept
}

func (c *Clock) Sleeps() int {
	return c.sleeps
}
