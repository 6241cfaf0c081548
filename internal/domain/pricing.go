package domain

import "github.com/shopspring/decimal"

var minutesPerHour = decimal.NewFromInt(MinutesPerHour)

// CalculateTotalPrice computes hourlyRate × (durationInMinutes / 60).
// The division is carried at 2 fractional digits before multiplying and
// the result is rounded half-up to exactly 2 fractional digits, so
// CalculateTotalPrice(33.33, 45) == 25.00.
func CalculateTotalPrice(hourlyRate decimal.Decimal, durationInMinutes int) decimal.Decimal {
	hours := decimal.NewFromInt(int64(durationInMinutes)).DivRound(minutesPerHour, 2)
	return hourlyRate.Mul(hours).Round(2)
}
