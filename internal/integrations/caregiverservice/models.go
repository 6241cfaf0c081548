package caregiverservice

import "github.com/shopspring/decimal"

// Caregiver is the slice of the caregiver profile this service reads:
// identity, current hourly rate and the availability flag. Everything
// else belongs to the caregiver service.
type Caregiver struct {
	ID         int64           `json:"id"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Available  bool            `json:"available"`
}

// ErrorResponse is the error payload of the caregiver service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
