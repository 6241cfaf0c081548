package appointments

import "errors"

var (
	// ErrInvalidInput is returned on malformed listing parameters.
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal is returned on unexpected repository failures.
	ErrInternal = errors.New("appointments: internal error")
)
