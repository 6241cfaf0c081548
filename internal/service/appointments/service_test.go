package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compawny/scheduling-service/internal/domain"
	"github.com/compawny/scheduling-service/internal/infra/storage/appointment"
)

type fakeRepo struct {
	byID      map[int64]*domain.Appointment
	upcoming  []*domain.Appointment
	page      []*domain.Appointment
	total     int64
	gotParams domain.ListParams
	gotFrom   time.Time

	// afterGet, when set, runs after every GetByID; lets a test mutate
	// the stored row between the load and the guarded write.
	afterGet func()
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if r.afterGet != nil {
		defer r.afterGet()
	}
	appt, ok := r.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, from, to domain.AppointmentStatus) error {
	appt, ok := r.byID[id]
	if !ok {
		return appointment.ErrStaleStatus
	}
	if appt.Status != from {
		return appointment.ErrStaleStatus
	}
	appt.Status = to
	return nil
}

func (r *fakeRepo) ListUpcomingByCaregiver(_ context.Context, _ int64, from time.Time) ([]*domain.Appointment, error) {
	r.gotFrom = from
	return r.upcoming, nil
}

func (r *fakeRepo) ListUpcomingByPet(_ context.Context, _ int64, from time.Time) ([]*domain.Appointment, error) {
	r.gotFrom = from
	return r.upcoming, nil
}

func (r *fakeRepo) List(_ context.Context, params domain.ListParams) ([]*domain.Appointment, int64, error) {
	r.gotParams = params
	return r.page, r.total, nil
}

type passthroughTxManager struct{}

func (m *passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fixedTimeProvider struct{}

func (fixedTimeProvider) Now() time.Time { return testNow }

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, &passthroughTxManager{}, nopLogger{})
	svc.timeProvider = fixedTimeProvider{}
	return svc
}

func storedAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:                5,
		PetID:             3,
		CaregiverID:       7,
		StartTime:         testNow.Add(24 * time.Hour),
		DurationInMinutes: 90,
		Status:            status,
		TotalPrice:        decimal.RequireFromString("75.00"),
	}
}

func TestStartThenComplete(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{5: storedAppointment(domain.StatusScheduled)}}
	svc := newTestService(repo)

	resp, err := svc.Start(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), resp.Status)

	resp, err = svc.Complete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.StatusCompleted, repo.byID[5].Status)

	// A completed appointment is terminal.
	_, err = svc.Complete(context.Background(), 5)
	var transitionErr *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.StatusCompleted, transitionErr.Current)
	assert.Equal(t, domain.StatusCompleted, transitionErr.Requested)
}

func TestCompleteRequiresInProgress(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{5: storedAppointment(domain.StatusScheduled)}}
	svc := newTestService(repo)

	_, err := svc.Complete(context.Background(), 5)

	var transitionErr *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.StatusScheduled, repo.byID[5].Status, "status must not change on a rejected transition")
}

func TestCancelFromScheduledAndInProgress(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusScheduled, domain.StatusInProgress} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeRepo{byID: map[int64]*domain.Appointment{5: storedAppointment(status)}}
			svc := newTestService(repo)

			resp, err := svc.Cancel(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		})
	}
}

func TestCancelTwiceFailsTheSameWay(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{5: storedAppointment(domain.StatusScheduled)}}
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 5)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), 5)
	var transitionErr *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.StatusCancelled, transitionErr.Current)
	assert.Equal(t, domain.StatusCancelled, transitionErr.Requested)
}

func TestTransitionRejectsConcurrentStatusChange(t *testing.T) {
	appt := storedAppointment(domain.StatusScheduled)
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{5: appt}}
	// Another writer cancels the appointment right after the load; the
	// guarded write must not resurrect it.
	repo.afterGet = func() {
		appt.Status = domain.StatusCancelled
	}
	svc := newTestService(repo)

	_, err := svc.Start(context.Background(), 5)

	var transitionErr *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.StatusCancelled, transitionErr.Current)
	assert.Equal(t, domain.StatusInProgress, transitionErr.Requested)
	assert.Equal(t, domain.StatusCancelled, appt.Status, "committed terminal status must not regress")
}

func TestTransitionsOnMissingAppointment(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{}}
	svc := newTestService(repo)

	for name, call := range map[string]func(context.Context, int64) (interface{}, error){
		"start":    func(ctx context.Context, id int64) (interface{}, error) { return svc.Start(ctx, id) },
		"complete": func(ctx context.Context, id int64) (interface{}, error) { return svc.Complete(ctx, id) },
		"cancel":   func(ctx context.Context, id int64) (interface{}, error) { return svc.Cancel(ctx, id) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := call(context.Background(), 99)
			var notFoundErr *domain.NotFoundError
			require.ErrorAs(t, err, &notFoundErr)
			assert.Equal(t, int64(99), notFoundErr.ID)
		})
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{5: storedAppointment(domain.StatusScheduled)}}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "75.00", resp.TotalPrice)
	assert.Equal(t, resp.StartTime.Add(90*time.Minute), resp.EndTime)

	_, err = svc.GetByID(context.Background(), 99)
	var notFoundErr *domain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestUpcomingListingsUseCurrentTime(t *testing.T) {
	repo := &fakeRepo{upcoming: []*domain.Appointment{storedAppointment(domain.StatusScheduled)}}
	svc := newTestService(repo)

	resp, err := svc.ListUpcomingByCaregiver(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, testNow, repo.gotFrom)

	resp, err = svc.ListUpcomingByPet(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, testNow, repo.gotFrom)
}

func TestListNormalizesPagination(t *testing.T) {
	repo := &fakeRepo{page: []*domain.Appointment{storedAppointment(domain.StatusScheduled)}, total: 41}
	svc := newTestService(repo)

	resp, err := svc.List(context.Background(), domain.ListParams{Page: -3, PageSize: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, domain.DefaultPageSize, resp.PageSize)
	assert.Equal(t, int64(41), resp.Total)
	assert.Equal(t, 1, repo.gotParams.Page)
	assert.Equal(t, domain.DefaultPageSize, repo.gotParams.PageSize)
}

func TestListCapsPageSize(t *testing.T) {
	repo := &fakeRepo{total: 0}
	svc := newTestService(repo)

	_, err := svc.List(context.Background(), domain.ListParams{Page: 1, PageSize: 10_000})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, repo.gotParams.PageSize)
}
