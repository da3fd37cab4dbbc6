package bench

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig wraps every configuration validation failure. It is
	// reported by New before any measurement begins; the run never starts.
	ErrInvalidConfig = errors.New("bench: invalid configuration")

	// ErrNilAction is returned when Run receives a nil action. It matches
	// ErrInvalidConfig under errors.Is.
	ErrNilAction = fmt.Errorf("%w: nil action", ErrInvalidConfig)
)
