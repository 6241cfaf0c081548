package domain

import "time"

// IntervalsConflict reports whether the candidate interval
// [candidateStart, candidateEnd] collides with an existing appointment
// span [existingStart, existingEnd].
//
// All three sub-conditions are boundary-inclusive: an appointment
// ending exactly when the candidate starts (or vice versa) counts as a
// conflict. Callers depend on this behavior; do not relax it to a
// half-open comparison.
func IntervalsConflict(candidateStart, candidateEnd, existingStart, existingEnd time.Time) bool {
	return between(candidateStart, existingStart, existingEnd) ||
		between(candidateEnd, existingStart, existingEnd) ||
		between(existingStart, candidateStart, candidateEnd)
}

// between reports lo <= t <= hi.
func between(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}

// HasConflict scans the given appointments of a caregiver and reports
// whether any non-terminal one collides with the candidate interval.
// Appointments whose ID equals excludeID are skipped, so an update can
// re-check its own caregiver without colliding with its current slot
// (pass 0 when creating).
func HasConflict(appointments []*Appointment, excludeID int64, startTime, endTime time.Time) bool {
	for _, appt := range appointments {
		if appt.ID == excludeID {
			continue
		}
		if !appt.IsActive() {
			continue
		}
		if IntervalsConflict(startTime, endTime, appt.StartTime, appt.EndTime()) {
			return true
		}
	}
	return false
}
