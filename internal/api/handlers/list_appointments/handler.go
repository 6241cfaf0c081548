package list_appointments

import (
	"errors"
	"net/http"

	"github.com/compawny/scheduling-service/internal/api/handlers"
	"github.com/compawny/scheduling-service/internal/service/appointments"
)

const msgInvalidSortField = "invalid sort field"

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

// Handle GET /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r.URL.Query())

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /appointments - Invalid sort field: sort=%q", params.SortBy)
			handlers.RespondBadRequest(w, msgInvalidSortField)
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Listed appointments: page=%d, page_size=%d, total=%d",
		page.Page, page.PageSize, page.Total)
	handlers.RespondJSON(w, http.StatusOK, page)
}
