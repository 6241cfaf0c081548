package update_appointment

import "errors"

var (
	// ErrInvalidInput is returned when the request fails validation.
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("update_appointment: internal error")
)
