package create_appointment

import (
	"fmt"
	"time"

	"github.com/compawny/scheduling-service/internal/domain"
)

func validateRequest(req *Request, now time.Time) error {
	if req.PetID <= 0 {
		return fmt.Errorf("%w: petId must be positive", ErrInvalidInput)
	}
	if req.CaregiverID <= 0 {
		return fmt.Errorf("%w: caregiverId must be positive", ErrInvalidInput)
	}
	if !req.StartTime.After(now) {
		return fmt.Errorf("%w: startTime must be in the future", ErrInvalidInput)
	}
	if req.DurationInMinutes < domain.MinDurationMinutes || req.DurationInMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationInMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
