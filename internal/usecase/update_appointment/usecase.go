package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
	appointmentRepo "github.com/compawny/scheduling-service/internal/infra/storage/appointment"
	caregiverClient "github.com/compawny/scheduling-service/internal/integrations/caregiverservice"
)

// UseCase applies a partial update to a Scheduled appointment. When
// the start time or duration changes it re-runs conflict detection
// (excluding the appointment's own row) and reprices against the
// caregiver's current hourly rate, all inside one serializable
// transaction.
type UseCase struct {
	appointmentRepo AppointmentRepository
	caregiverClient CaregiverServiceClient
	txManager       TransactionManager
	locker          CaregiverLocker
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the update-appointment use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	caregiverClient CaregiverServiceClient,
	txManager TransactionManager,
	locker CaregiverLocker,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		caregiverClient: caregiverClient,
		txManager:       txManager,
		locker:          locker,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the update flow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d", req.ID)

	// 1. Validate input.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Preliminary load, only to learn the caregiver whose lock (and
	// schedule) the transactional section below works with.
	current, err := uc.getAppointment(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment

	err = uc.locker.WithCaregiverLock(ctx, current.CaregiverID, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			// 3. Re-load inside the transaction; the preliminary read is
			// stale by definition.
			appt, err := uc.getAppointment(txCtx, req.ID)
			if err != nil {
				return err
			}

			// 4. Edits are allowed only while Scheduled.
			if err := appt.EnsureEditable("update"); err != nil {
				uc.logger.Warn("UpdateAppointment: id=%d not editable in status=%s", req.ID, appt.Status)
				return err
			}

			// 5. Apply the supplied fields.
			if req.StartTime != nil {
				appt.StartTime = *req.StartTime
			}
			if req.DurationInMinutes != nil {
				appt.DurationInMinutes = *req.DurationInMinutes
			}
			if req.Notes != nil {
				appt.Notes = req.Notes
			}

			// 6. A changed interval re-runs conflict detection and
			// repricing; a notes-only update touches neither. Only a
			// supplied start time must lie in the future: a duration
			// change on an appointment whose start already passed is
			// legitimate while it is still Scheduled.
			if req.ChangesTime() {
				if req.StartTime != nil && !appt.StartTime.After(uc.timeProvider.Now()) {
					return fmt.Errorf("%w: startTime must be in the future", ErrInvalidInput)
				}

				active, err := uc.appointmentRepo.GetActiveByCaregiver(txCtx, appt.CaregiverID)
				if err != nil {
					uc.logger.Error("UpdateAppointment: failed to load active appointments for caregiver=%d: %v",
						appt.CaregiverID, err)
					return fmt.Errorf("%w: failed to load active appointments: %v", ErrInternal, err)
				}

				endTime := appt.StartTime.Add(time.Duration(appt.DurationInMinutes) * time.Minute)
				if domain.HasConflict(active, appt.ID, appt.StartTime, endTime) {
					uc.logger.Warn("UpdateAppointment: schedule conflict for caregiver=%d between %s and %s",
						appt.CaregiverID, appt.StartTime, endTime)
					return &domain.ScheduleConflictError{
						CaregiverID: appt.CaregiverID,
						StartTime:   appt.StartTime,
						EndTime:     endTime,
					}
				}

				caregiver, err := uc.caregiverClient.GetByID(txCtx, appt.CaregiverID)
				if err != nil {
					if errors.Is(err, caregiverClient.ErrCaregiverNotFound) {
						uc.logger.Warn("UpdateAppointment: caregiver id=%d not found", appt.CaregiverID)
						return &domain.NotFoundError{Resource: domain.ResourceCaregiver, ID: appt.CaregiverID}
					}
					uc.logger.Error("UpdateAppointment: failed to resolve caregiver id=%d: %v", appt.CaregiverID, err)
					return fmt.Errorf("%w: failed to resolve caregiver: %v", ErrInternal, err)
				}

				appt.TotalPrice = domain.CalculateTotalPrice(caregiver.HourlyRate, appt.DurationInMinutes)
			}

			if err := uc.appointmentRepo.Update(txCtx, appt); err != nil {
				if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
					return &domain.NotFoundError{Resource: domain.ResourceAppointment, ID: req.ID}
				}
				uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.ID, err)
				return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
			}

			result = appt
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: updated appointment id=%d, total_price=%s",
		result.ID, result.TotalPrice.StringFixed(2))

	return FromDomain(result), nil
}

func (uc *UseCase) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", id)
			return nil, &domain.NotFoundError{Resource: domain.ResourceAppointment, ID: id}
		}
		uc.logger.Error("UpdateAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return appt, nil
}
