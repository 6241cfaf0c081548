package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not
	// exist or is soft-deleted.
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStaleStatus is returned when a guarded status update matched no
	// row: either a concurrent transition moved the status away from the
	// expected one, or the appointment is gone. Callers re-read to tell
	// the two apart.
	ErrStaleStatus = errors.New("appointment.repository: status changed concurrently")

	// ErrInvalidSortField is returned when the listing asks for a field
	// outside the sortable whitelist.
	ErrInvalidSortField = errors.New("appointment.repository: invalid sort field")

	// ErrBuildQuery is returned when a SQL query cannot be built.
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails to execute.
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
