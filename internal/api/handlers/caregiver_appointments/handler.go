package caregiver_appointments

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/compawny/scheduling-service/internal/api/handlers"
)

const msgInvalidCaregiverID = "invalid caregiver id"

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/caregiver/{caregiverId}/upcoming
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	caregiverID, err := strconv.ParseInt(vars["caregiverId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /appointments/caregiver/{caregiverId}/upcoming - Invalid caregiver ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaregiverID)
		return
	}

	list, err := h.service.ListUpcomingByCaregiver(r.Context(), caregiverID)
	if err != nil {
		h.logger.Error("GET /appointments/caregiver/{caregiverId}/upcoming - Failed to list: caregiver_id=%d, error=%v",
			caregiverID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/caregiver/{caregiverId}/upcoming - Listed: caregiver_id=%d, count=%d",
		caregiverID, len(list.Appointments))
	handlers.RespondJSON(w, http.StatusOK, list)
}
