package petservice

import "errors"

var (
	// ErrPetNotFound is returned when the pet does not exist or is
	// soft-deleted on the pet service side.
	ErrPetNotFound = errors.New("pet not found")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("petservice client: internal error")

	// ErrInvalidResponse is returned on unexpected responses.
	ErrInvalidResponse = errors.New("petservice client: invalid response")
)
