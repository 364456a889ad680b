package handler

import (
	"log/slog"
	"net/http"

	"github.com/telalestate/propertydesk/internal/observability/metrics"
	"github.com/telalestate/propertydesk/internal/service"
)

// RemindersHandler exposes overdue rental listing and manual reminder sending
type RemindersHandler struct {
	aggregation *service.AggregationService
	reminders   *service.ReminderService
	logger      *slog.Logger
}

// NewRemindersHandler creates a new reminders handler
func NewRemindersHandler(aggregation *service.AggregationService, reminders *service.ReminderService, logger *slog.Logger) *RemindersHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemindersHandler{aggregation: aggregation, reminders: reminders, logger: logger}
}

// Overdue handles GET /api/reminders/overdue
func (h *RemindersHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.aggregation.ListOverdue()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, overdue)
}

// SendRequest represents a manual reminder request
type SendRequest struct {
	RentalID string `json:"rentalId"`
}

// Send handles POST /api/reminders
func (h *RemindersHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RentalID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "rentalId is required"})
		return
	}

	result, err := h.reminders.SendReminder(r.Context(), req.RentalID)
	if err != nil {
		metrics.ObserveReminder("api", "error")
		writeError(w, h.logger, err)
		return
	}

	metrics.ObserveReminder("api", "success")
	writeJSON(w, http.StatusOK, result)
}
