package errors

import "errors"

var (
	// ErrInvalidStrategy is returned when a cache is built for a strategy
	// that has no engine in its registry.
	ErrInvalidStrategy = errors.New("invalid strategy")
	// ErrInvalidCapacity is returned when an engine is built with a
	// capacity lower than one.
	ErrInvalidCapacity = errors.New("invalid capacity")
)
