package domain

// Business validation constants
const (
	MinDurationMinutes = 30
	MaxDurationMinutes = 480 // 8 hours
	MaxNotesLength     = 500
)

// Pagination constants
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MinutesPerHour is the divisor turning a duration into billable hours.
const MinutesPerHour = 60

// TerminalStatuses are statuses excluded from conflict detection
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}
