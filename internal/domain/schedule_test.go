package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestIntervalsConflict(t *testing.T) {
	tests := []struct {
		name                   string
		candStart, candEnd     time.Time
		existStart, existEnd   time.Time
		want                   bool
	}{
		{"candidate inside existing", ts(10, 15), ts(10, 45), ts(10, 0), ts(11, 0), true},
		{"existing inside candidate", ts(9, 0), ts(12, 0), ts(10, 0), ts(11, 0), true},
		{"partial overlap at start", ts(9, 30), ts(10, 30), ts(10, 0), ts(11, 0), true},
		{"partial overlap at end", ts(10, 30), ts(11, 30), ts(10, 0), ts(11, 0), true},
		{"identical intervals", ts(10, 0), ts(11, 0), ts(10, 0), ts(11, 0), true},
		// Touching boundaries conflict: the containment test is inclusive.
		{"candidate starts when existing ends", ts(11, 0), ts(12, 0), ts(10, 0), ts(11, 0), true},
		{"candidate ends when existing starts", ts(9, 0), ts(10, 0), ts(10, 0), ts(11, 0), true},
		{"disjoint before", ts(8, 0), ts(9, 0), ts(10, 0), ts(11, 0), false},
		{"disjoint after", ts(12, 0), ts(13, 0), ts(10, 0), ts(11, 0), false},
		{"one minute apart", ts(11, 1), ts(12, 0), ts(10, 0), ts(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsConflict(tt.candStart, tt.candEnd, tt.existStart, tt.existEnd))
		})
	}
}

func TestIntervalsConflict_Symmetry(t *testing.T) {
	intervals := [][2]time.Time{
		{ts(8, 0), ts(9, 0)},
		{ts(9, 0), ts(10, 0)},
		{ts(9, 30), ts(10, 30)},
		{ts(10, 0), ts(11, 0)},
		{ts(8, 0), ts(12, 0)},
	}

	for i, a := range intervals {
		for j, b := range intervals {
			ab := IntervalsConflict(a[0], a[1], b[0], b[1])
			ba := IntervalsConflict(b[0], b[1], a[0], a[1])
			assert.Equalf(t, ab, ba, "asymmetric result for intervals %d and %d", i, j)
		}
	}
}

func TestHasConflict_SkipsTerminalAppointments(t *testing.T) {
	existing := []*Appointment{
		{ID: 1, Status: StatusCompleted, StartTime: ts(10, 0), DurationInMinutes: 60},
		{ID: 2, Status: StatusCancelled, StartTime: ts(10, 0), DurationInMinutes: 60},
	}

	assert.False(t, HasConflict(existing, 0, ts(10, 0), ts(11, 0)))

	existing = append(existing, &Appointment{
		ID: 3, Status: StatusInProgress, StartTime: ts(10, 0), DurationInMinutes: 60,
	})
	assert.True(t, HasConflict(existing, 0, ts(10, 0), ts(11, 0)))
}

func TestHasConflict_ExcludesOwnID(t *testing.T) {
	existing := []*Appointment{
		{ID: 7, Status: StatusScheduled, StartTime: ts(10, 0), DurationInMinutes: 60},
	}

	// The appointment being rescheduled does not collide with itself.
	assert.False(t, HasConflict(existing, 7, ts(10, 0), ts(18, 0)))
	assert.True(t, HasConflict(existing, 0, ts(10, 0), ts(18, 0)))
}

func TestAppointment_EndTime(t *testing.T) {
	appt := &Appointment{StartTime: ts(10, 0), DurationInMinutes: 90}
	assert.Equal(t, ts(11, 30), appt.EndTime())
}
