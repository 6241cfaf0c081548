package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compawny/scheduling-service/internal/domain"
	"github.com/compawny/scheduling-service/internal/integrations/caregiverservice"
	"github.com/compawny/scheduling-service/internal/integrations/petservice"
	"github.com/compawny/scheduling-service/pkg/ptr"
)

type fakeRepo struct {
	active  []*domain.Appointment
	created *domain.Appointment
	nextID  int64
}

func (r *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	out := *appt
	out.ID = r.nextID
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.created = &out
	return &out, nil
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

type fakePetClient struct {
	err error
}

func (c *fakePetClient) GetByID(_ context.Context, id int64) (*petservice.Pet, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &petservice.Pet{ID: id}, nil
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

func newTestUseCase(repo *fakeRepo, cg *fakeCaregiverClient, pet *fakePetClient) *UseCase {
	uc := NewUseCase(repo, cg, pet, &passthroughTxManager{}, &passthroughLocker{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func availableCaregiver(rate string) *fakeCaregiverClient {
	return &fakeCaregiverClient{caregiver: &caregiverservice.Caregiver{
		ID:         7,
		HourlyRate: decimal.RequireFromString(rate),
		Available:  true,
	}}
}

func validRequest() *Request {
	return &Request{
		PetID:             3,
		CaregiverID:       7,
		StartTime:         testNow.Add(24 * time.Hour),
		DurationInMinutes: 90,
		Notes:             ptr.Ptr("bring the leash"),
	}
}

func TestExecute_CreatesScheduledAppointmentWithPrice(t *testing.T) {
	repo := &fakeRepo{nextID: 42}
	uc := newTestUseCase(repo, availableCaregiver("50.00"), &fakePetClient{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, "75.00", resp.TotalPrice)
	assert.Equal(t, resp.StartTime.Add(90*time.Minute), resp.EndTime)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusScheduled, repo.created.Status)
}

func TestExecute_RejectsTouchingInterval(t *testing.T) {
	start := testNow.Add(24 * time.Hour)
	repo := &fakeRepo{
		nextID: 1,
		active: []*domain.Appointment{{
			ID:                9,
			CaregiverID:       7,
			StartTime:         start.Add(-60 * time.Minute),
			DurationInMinutes: 60, // ends exactly at the requested start
			Status:            domain.StatusScheduled,
		}},
	}
	uc := newTestUseCase(repo, availableCaregiver("50.00"), &fakePetClient{})

	req := validRequest()
	req.StartTime = start

	_, err := uc.Execute(context.Background(), req)

	var conflictErr *domain.ScheduleConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(7), conflictErr.CaregiverID)
	assert.Nil(t, repo.created, "nothing may be persisted on conflict")
}

func TestExecute_IgnoresCancelledAppointmentsInConflictScan(t *testing.T) {
	start := testNow.Add(24 * time.Hour)
	repo := &fakeRepo{
		nextID: 1,
		active: []*domain.Appointment{{
			ID:                9,
			CaregiverID:       7,
			StartTime:         start,
			DurationInMinutes: 90,
			Status:            domain.StatusCancelled,
		}},
	}
	uc := newTestUseCase(repo, availableCaregiver("50.00"), &fakePetClient{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "75.00", resp.TotalPrice)
}

func TestExecute_CaregiverUnavailable(t *testing.T) {
	repo := &fakeRepo{nextID: 1}
	cg := &fakeCaregiverClient{caregiver: &caregiverservice.Caregiver{
		ID:         7,
		HourlyRate: decimal.RequireFromString("50.00"),
		Available:  false,
	}}
	uc := newTestUseCase(repo, cg, &fakePetClient{})

	_, err := uc.Execute(context.Background(), validRequest())

	var unavailErr *domain.CaregiverUnavailableError
	require.ErrorAs(t, err, &unavailErr)
	assert.Equal(t, int64(7), unavailErr.CaregiverID)
	assert.Nil(t, repo.created)
}

func TestExecute_CaregiverNotFound(t *testing.T) {
	repo := &fakeRepo{nextID: 1}
	cg := &fakeCaregiverClient{err: caregiverservice.ErrCaregiverNotFound}
	uc := newTestUseCase(repo, cg, &fakePetClient{})

	_, err := uc.Execute(context.Background(), validRequest())

	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, domain.ResourceCaregiver, notFoundErr.Resource)
}

func TestExecute_PetNotFound(t *testing.T) {
	repo := &fakeRepo{nextID: 1}
	uc := newTestUseCase(repo, availableCaregiver("50.00"), &fakePetClient{err: petservice.ErrPetNotFound})

	_, err := uc.Execute(context.Background(), validRequest())

	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, domain.ResourcePet, notFoundErr.Resource)
	assert.Equal(t, int64(3), notFoundErr.ID)
}

func TestExecute_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero pet id", func(r *Request) { r.PetID = 0 }},
		{"zero caregiver id", func(r *Request) { r.CaregiverID = 0 }},
		{"start in the past", func(r *Request) { r.StartTime = testNow.Add(-time.Hour) }},
		{"start exactly now", func(r *Request) { r.StartTime = testNow }},
		{"duration below minimum", func(r *Request) { r.DurationInMinutes = 29 }},
		{"duration above maximum", func(r *Request) { r.DurationInMinutes = 481 }},
		{"notes too long", func(r *Request) {
			long := make([]rune, domain.MaxNotesLength+1)
			for i := range long {
				long[i] = 'x'
			}
			r.Notes = ptr.Ptr(string(long))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{nextID: 1}
			uc := newTestUseCase(repo, availableCaregiver("50.00"), &fakePetClient{})

			req := validRequest()
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.created)
		})
	}
}

func TestExecute_DurationBoundariesAccepted(t *testing.T) {
	for _, d := range []int{domain.MinDurationMinutes, domain.MaxDurationMinutes} {
		repo := &fakeRepo{nextID: 1}
		uc := newTestUseCase(repo, availableCaregiver("50.00"), &fakePetClient{})

		req := validRequest()
		req.DurationInMinutes = d

		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err, "duration %d should be accepted", d)
	}
}

func TestExecute_InternalErrorFromCaregiverService(t *testing.T) {
	repo := &fakeRepo{nextID: 1}
	cg := &fakeCaregiverClient{err: errors.New("connection refused")}
	uc := newTestUseCase(repo, cg, &fakePetClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInternal)
}
