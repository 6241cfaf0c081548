package pet_appointments

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/compawny/scheduling-service/internal/api/handlers"
)

const msgInvalidPetID = "invalid pet id"

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

// Handle GET /api/v1/appointments/pet/{petId}/upcoming
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	petID, err := strconv.ParseInt(vars["petId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /appointments/pet/{petId}/upcoming - Invalid pet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPetID)
		return
	}

	list, err := h.service.ListUpcomingByPet(r.Context(), petID)
	if err != nil {
		h.logger.Error("GET /appointments/pet/{petId}/upcoming - Failed to list: pet_id=%d, error=%v", petID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/pet/{petId}/upcoming - Listed: pet_id=%d, count=%d", petID, len(list.Appointments))
	handlers.RespondJSON(w, http.StatusOK, list)
}
