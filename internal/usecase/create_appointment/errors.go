package create_appointment

import "errors"

var (
	// ErrInvalidInput is returned when the request fails validation.
	// Business failures (not found, unavailable caregiver, schedule
	// conflict) are reported through the domain error taxonomy instead.
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("create_appointment: internal error")
)
