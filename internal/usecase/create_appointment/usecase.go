package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
	caregiverClient "github.com/compawny/scheduling-service/internal/integrations/caregiverservice"
	petClient "github.com/compawny/scheduling-service/internal/integrations/petservice"
)

// UseCase books a new appointment. The conflict scan and the insert
// run inside one serializable transaction so two concurrent attempts
// for the same caregiver and overlapping interval cannot both commit.
type UseCase struct {
	appointmentRepo AppointmentRepository
	caregiverClient CaregiverServiceClient
	petClient       PetServiceClient
	txManager       TransactionManager
	locker          CaregiverLocker
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the create-appointment use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	caregiverClient CaregiverServiceClient,
	petClient PetServiceClient,
	txManager TransactionManager,
	locker CaregiverLocker,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		caregiverClient: caregiverClient,
		petClient:       petClient,
		txManager:       txManager,
		locker:          locker,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the booking flow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: pet=%d, caregiver=%d, start=%s, duration=%d",
		req.PetID, req.CaregiverID, req.StartTime, req.DurationInMinutes)

	// 1. Validate input.
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the pet reference.
	if _, err := uc.petClient.GetByID(ctx, req.PetID); err != nil {
		if errors.Is(err, petClient.ErrPetNotFound) {
			uc.logger.Warn("CreateAppointment: pet id=%d not found", req.PetID)
			return nil, &domain.NotFoundError{Resource: domain.ResourcePet, ID: req.PetID}
		}
		uc.logger.Error("CreateAppointment: failed to resolve pet id=%d: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to resolve pet: %v", ErrInternal, err)
	}

	// 3. Resolve the caregiver reference and read the fields this core
	// needs: current hourly rate and the availability flag.
	caregiver, err := uc.caregiverClient.GetByID(ctx, req.CaregiverID)
	if err != nil {
		if errors.Is(err, caregiverClient.ErrCaregiverNotFound) {
			uc.logger.Warn("CreateAppointment: caregiver id=%d not found", req.CaregiverID)
			return nil, &domain.NotFoundError{Resource: domain.ResourceCaregiver, ID: req.CaregiverID}
		}
		uc.logger.Error("CreateAppointment: failed to resolve caregiver id=%d: %v", req.CaregiverID, err)
		return nil, fmt.Errorf("%w: failed to resolve caregiver: %v", ErrInternal, err)
	}

	// 4. Availability gate.
	if !caregiver.Available {
		uc.logger.Warn("CreateAppointment: caregiver id=%d is unavailable", req.CaregiverID)
		return nil, &domain.CaregiverUnavailableError{CaregiverID: req.CaregiverID}
	}

	endTime := req.StartTime.Add(time.Duration(req.DurationInMinutes) * time.Minute)

	var result *domain.Appointment

	// 5. Conflict scan + insert inside the caregiver lock (no-op unless
	// Redis is enabled) and one serializable transaction.
	err = uc.locker.WithCaregiverLock(ctx, req.CaregiverID, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			// 5.1. Lock and scan the caregiver's active appointments.
			active, err := uc.appointmentRepo.GetActiveByCaregiver(txCtx, req.CaregiverID)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to load active appointments for caregiver=%d: %v",
					req.CaregiverID, err)
				return fmt.Errorf("%w: failed to load active appointments: %v", ErrInternal, err)
			}

			// 5.2. Boundary-inclusive overlap check.
			if domain.HasConflict(active, 0, req.StartTime, endTime) {
				uc.logger.Warn("CreateAppointment: schedule conflict for caregiver=%d between %s and %s",
					req.CaregiverID, req.StartTime, endTime)
				return &domain.ScheduleConflictError{
					CaregiverID: req.CaregiverID,
					StartTime:   req.StartTime,
					EndTime:     endTime,
				}
			}

			// 5.3. Price from the caregiver's current rate.
			appt := &domain.Appointment{
				PetID:             req.PetID,
				CaregiverID:       req.CaregiverID,
				StartTime:         req.StartTime,
				DurationInMinutes: req.DurationInMinutes,
				Status:            domain.StatusScheduled,
				TotalPrice:        domain.CalculateTotalPrice(caregiver.HourlyRate, req.DurationInMinutes),
				Notes:             req.Notes,
			}

			created, err := uc.appointmentRepo.Create(txCtx, appt)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}

			result = created
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, total_price=%s",
		result.ID, result.TotalPrice.StringFixed(2))

	return FromDomain(result), nil
}
