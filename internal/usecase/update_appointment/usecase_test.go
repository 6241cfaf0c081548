package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compawny/scheduling-service/internal/domain"
	"github.com/compawny/scheduling-service/internal/infra/storage/appointment"
	"github.com/compawny/scheduling-service/internal/integrations/caregiverservice"
	"github.com/compawny/scheduling-service/pkg/ptr"
)

type fakeRepo struct {
	byID    map[int64]*domain.Appointment
	active  []*domain.Appointment
	updated *domain.Appointment
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeRepo) Update(_ context.Context, appt *domain.Appointment) error {
	if _, ok := r.byID[appt.ID]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	copied := *appt
	r.updated = &copied
	return nil
}

func (r *fakeRepo) GetActiveByCaregiver(_ context.Context, _ int64) ([]*domain.Appointment, error) {
	return r.active, nil
}

type fakeCaregiverClient struct {
	caregiver *caregiverservice.Caregiver
	err       error
}

func (c *fakeCaregiverClient) GetByID(_ context.Context, _ int64) (*caregiverservice.Caregiver, error) {
	return c.caregiver, c.err
}

type passthroughTxManager struct{}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type passthroughLocker struct{}

func (l *passthroughLocker) WithCaregiverLock(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func scheduledAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:                11,
		PetID:             3,
		CaregiverID:       7,
		StartTime:         testNow.Add(48 * time.Hour),
		DurationInMinutes: 60,
		Status:            domain.StatusScheduled,
		TotalPrice:        decimal.RequireFromString("50.00"),
	}
}

func newTestUseCase(repo *fakeRepo, cg *fakeCaregiverClient) *UseCase {
	uc := NewUseCase(repo, cg, &passthroughTxManager{}, &passthroughLocker{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func caregiverWithRate(rate string) *fakeCaregiverClient {
	return &fakeCaregiverClient{caregiver: &caregiverservice.Caregiver{
		ID:         7,
		HourlyRate: decimal.RequireFromString(rate),
		Available:  true,
	}}
}

func TestExecute_ExtendDurationReprices(t *testing.T) {
	appt := scheduledAppointment()
	repo := &fakeRepo{
		byID: map[int64]*domain.Appointment{appt.ID: appt},
		// The appointment's own row comes back from the scan; it must
		// not conflict with itself.
		active: []*domain.Appointment{appt},
	}
	uc := newTestUseCase(repo, caregiverWithRate("50.00"))

	resp, err := uc.Execute(context.Background(), &Request{
		ID:                appt.ID,
		DurationInMinutes: ptr.Ptr(480),
	})
	require.NoError(t, err)

	assert.Equal(t, 480, resp.DurationInMinutes)
	assert.Equal(t, "400.00", resp.TotalPrice)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "400.00", repo.updated.TotalPrice.StringFixed(2))
}

func TestExecute_NotesOnlyKeepsPrice(t *testing.T) {
	appt := scheduledAppointment()
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{appt.ID: appt}}
	// A caregiver client that fails loudly if the notes-only path ever
	// tries to reprice.
	cg := &fakeCaregiverClient{err: caregiverservice.ErrInternal}
	uc := newTestUseCase(repo, cg)

	resp, err := uc.Execute(context.Background(), &Request{
		ID:    appt.ID,
		Notes: ptr.Ptr("gate code is 4412"),
	})
	require.NoError(t, err)

	assert.Equal(t, "50.00", resp.TotalPrice)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "gate code is 4412", *resp.Notes)
	assert.Equal(t, 60, resp.DurationInMinutes)
}

func TestExecute_RescheduleConflictsWithOtherAppointment(t *testing.T) {
	appt := scheduledAppointment()
	other := &domain.Appointment{
		ID:                12,
		CaregiverID:       7,
		StartTime:         testNow.Add(72 * time.Hour),
		DurationInMinutes: 120,
		Status:            domain.StatusScheduled,
	}
	repo := &fakeRepo{
		byID:   map[int64]*domain.Appointment{appt.ID: appt},
		active: []*domain.Appointment{appt, other},
	}
	uc := newTestUseCase(repo, caregiverWithRate("50.00"))

	newStart := other.StartTime.Add(30 * time.Minute)
	_, err := uc.Execute(context.Background(), &Request{
		ID:        appt.ID,
		StartTime: &newStart,
	})

	var conflictErr *domain.ScheduleConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Nil(t, repo.updated, "nothing may be persisted on conflict")
}

func TestExecute_RejectsNonScheduledStatuses(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			appt := scheduledAppointment()
			appt.Status = status
			repo := &fakeRepo{byID: map[int64]*domain.Appointment{appt.ID: appt}}
			uc := newTestUseCase(repo, caregiverWithRate("50.00"))

			_, err := uc.Execute(context.Background(), &Request{
				ID:    appt.ID,
				Notes: ptr.Ptr("too late"),
			})

			var stateErr *domain.InvalidAppointmentStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, status, stateErr.Current)
			assert.Nil(t, repo.updated)
		})
	}
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{}}
	uc := newTestUseCase(repo, caregiverWithRate("50.00"))

	_, err := uc.Execute(context.Background(), &Request{
		ID:    99,
		Notes: ptr.Ptr("hello"),
	})

	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, domain.ResourceAppointment, notFoundErr.Resource)
	assert.Equal(t, int64(99), notFoundErr.ID)
}

func TestExecute_DurationOnlyUpdateAllowedAfterStart(t *testing.T) {
	appt := scheduledAppointment()
	// Still Scheduled but its start has already passed; only a supplied
	// start time is required to be in the future.
	appt.StartTime = testNow.Add(-time.Hour)
	repo := &fakeRepo{
		byID:   map[int64]*domain.Appointment{appt.ID: appt},
		active: []*domain.Appointment{appt},
	}
	uc := newTestUseCase(repo, caregiverWithRate("50.00"))

	resp, err := uc.Execute(context.Background(), &Request{
		ID:                appt.ID,
		DurationInMinutes: ptr.Ptr(120),
	})
	require.NoError(t, err)

	assert.Equal(t, 120, resp.DurationInMinutes)
	assert.Equal(t, "100.00", resp.TotalPrice)
}

func TestExecute_RescheduleIntoPastRejected(t *testing.T) {
	appt := scheduledAppointment()
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{appt.ID: appt}}
	uc := newTestUseCase(repo, caregiverWithRate("50.00"))

	past := testNow.Add(-time.Hour)
	_, err := uc.Execute(context.Background(), &Request{
		ID:        appt.ID,
		StartTime: &past,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.updated)
}

func TestExecute_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  *Request
	}{
		{"zero id", &Request{ID: 0, Notes: ptr.Ptr("x")}},
		{"no fields", &Request{ID: 11}},
		{"duration below minimum", &Request{ID: 11, DurationInMinutes: ptr.Ptr(29)}},
		{"duration above maximum", &Request{ID: 11, DurationInMinutes: ptr.Ptr(481)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appt := scheduledAppointment()
			repo := &fakeRepo{byID: map[int64]*domain.Appointment{appt.ID: appt}}
			uc := newTestUseCase(repo, caregiverWithRate("50.00"))

			_, err := uc.Execute(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
