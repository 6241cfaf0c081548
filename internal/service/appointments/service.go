package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/compawny/scheduling-service/internal/domain"
	appointmentRepo "github.com/compawny/scheduling-service/internal/infra/storage/appointment"
	"github.com/compawny/scheduling-service/internal/service/appointments/models"
)

// Service covers the read side of the appointment lifecycle plus the
// three status transitions. Each transition runs load → validate →
// write inside one transaction, so a concurrent transition on the same
// appointment cannot observe a stale status.
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates an appointments service.
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID returns a non-deleted appointment by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// Start moves a Scheduled appointment to InProgress.
func (s *Service) Start(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Start: starting appointment id=%d", id)
	return s.transition(ctx, id, "Start", (*domain.Appointment).Start)
}

// Complete moves an InProgress appointment to Completed.
func (s *Service) Complete(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%d", id)
	return s.transition(ctx, id, "Complete", (*domain.Appointment).Complete)
}

// Cancel moves a Scheduled or InProgress appointment to Cancelled.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)
	return s.transition(ctx, id, "Cancel", (*domain.Appointment).Cancel)
}

// transition applies one state-machine move atomically. On any failure
// nothing is persisted. The write is guarded by the status the move was
// computed from, so a transition committed by a concurrent caller
// between the load and the write can never be overwritten.
func (s *Service) transition(ctx context.Context, id int64, op string, apply func(a *domain.Appointment) error) (*models.AppointmentResponse, error) {
	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.getAppointment(txCtx, id, op)
		if err != nil {
			return err
		}

		current := appt.Status
		if err := apply(appt); err != nil {
			var transitionErr *domain.InvalidStatusTransitionError
			if errors.As(err, &transitionErr) {
				s.logger.Warn("%s: invalid transition for appointment id=%d: %s -> %s",
					op, id, transitionErr.Current, transitionErr.Requested)
			}
			return err
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, current, appt.Status); err != nil {
			if errors.Is(err, appointmentRepo.ErrStaleStatus) {
				// Either a concurrent transition won or the row is gone;
				// re-read to report the right failure.
				fresh, freshErr := s.getAppointment(txCtx, id, op)
				if freshErr != nil {
					return freshErr
				}
				s.logger.Warn("%s: concurrent transition for appointment id=%d: status is now %s",
					op, id, fresh.Status)
				return &domain.InvalidStatusTransitionError{Current: fresh.Status, Requested: appt.Status}
			}
			s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: appointment id=%d moved to status=%s", op, id, result.Status)
	return models.FromDomainAppointment(result), nil
}

// ListUpcomingByCaregiver returns the caregiver's Scheduled
// appointments starting at or after now, ascending by start time.
func (s *Service) ListUpcomingByCaregiver(ctx context.Context, caregiverID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListUpcomingByCaregiver: caregiver=%d", caregiverID)

	appointments, err := s.appointmentRepo.ListUpcomingByCaregiver(ctx, caregiverID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ListUpcomingByCaregiver: repository error for caregiver=%d: %v", caregiverID, err)
		return nil, fmt.Errorf("%w: ListUpcomingByCaregiver - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// ListUpcomingByPet returns the pet's Scheduled appointments starting
// at or after now, ascending by start time.
func (s *Service) ListUpcomingByPet(ctx context.Context, petID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListUpcomingByPet: pet=%d", petID)

	appointments, err := s.appointmentRepo.ListUpcomingByPet(ctx, petID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ListUpcomingByPet: repository error for pet=%d: %v", petID, err)
		return nil, fmt.Errorf("%w: ListUpcomingByPet - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// List returns one page of all non-deleted appointments. The count and
// the page rows are read inside one read-only transaction so they come
// from the same snapshot.
func (s *Service) List(ctx context.Context, params domain.ListParams) (*models.AppointmentPageResponse, error) {
	params.Normalize()
	s.logger.Info("List: page=%d, pageSize=%d, sort=%s %s", params.Page, params.PageSize, params.SortBy, params.Direction)

	var (
		appointments []*domain.Appointment
		total        int64
	)
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		appointments, total, err = s.appointmentRepo.List(txCtx, params)
		return err
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrInvalidSortField) {
			s.logger.Warn("List: invalid sort field %q", params.SortBy)
			return nil, fmt.Errorf("%w: invalid sort field", ErrInvalidInput)
		}
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	list := models.FromDomainAppointmentList(appointments)
	return &models.AppointmentPageResponse{
		Appointments: list.Appointments,
		Page:         params.Page,
		PageSize:     params.PageSize,
		Total:        total,
	}, nil
}

func (s *Service) getAppointment(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, &domain.NotFoundError{Resource: domain.ResourceAppointment, ID: id}
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}
