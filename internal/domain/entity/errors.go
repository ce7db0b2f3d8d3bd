package entity

import "errors"

// Driver errors a wait loop may treat as transient.
var (
	ErrElementNotFound   = errors.New("element not found")
	ErrStaleElement      = errors.New("stale element reference")
	ErrElementNotVisible = errors.New("element not visible")
)
