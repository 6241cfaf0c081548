package caregiverservice

import "errors"

var (
	// ErrCaregiverNotFound is returned when the caregiver does not exist
	// or is soft-deleted on the caregiver service side.
	ErrCaregiverNotFound = errors.New("caregiver not found")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("caregiverservice client: internal error")

	// ErrInvalidResponse is returned on unexpected responses.
	ErrInvalidResponse = errors.New("caregiverservice client: invalid response")
)
