package handlers

import (
	"errors"
	"net/http"

	"github.com/compawny/scheduling-service/internal/domain"
)

// RespondDomainError maps the domain error taxonomy onto HTTP statuses:
// missing resources are 404, scheduling conflicts and unavailable
// caregivers are 409, rejected lifecycle operations are 422. It reports
// whether err was recognized; unrecognized errors are left to the
// caller.
func RespondDomainError(w http.ResponseWriter, err error) bool {
	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		RespondNotFound(w, notFoundErr.Error())
		return true
	}

	var conflictErr *domain.ScheduleConflictError
	if errors.As(err, &conflictErr) {
		RespondError(w, http.StatusConflict, conflictErr.Error())
		return true
	}

	var unavailableErr *domain.CaregiverUnavailableError
	if errors.As(err, &unavailableErr) {
		RespondError(w, http.StatusConflict, unavailableErr.Error())
		return true
	}

	var transitionErr *domain.InvalidStatusTransitionError
	if errors.As(err, &transitionErr) {
		RespondError(w, http.StatusUnprocessableEntity, transitionErr.Error())
		return true
	}

	var stateErr *domain.InvalidAppointmentStateError
	if errors.As(err, &stateErr) {
		RespondError(w, http.StatusUnprocessableEntity, stateErr.Error())
		return true
	}

	return false
}
