package update_appointment

import (
	"fmt"

	"github.com/compawny/scheduling-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if req.StartTime == nil && req.DurationInMinutes == nil && req.Notes == nil {
		return fmt.Errorf("%w: at least one field must be supplied", ErrInvalidInput)
	}
	if req.DurationInMinutes != nil {
		if *req.DurationInMinutes < domain.MinDurationMinutes || *req.DurationInMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: durationInMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
