package handler

import (
	"log/slog"
	"net/http"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/service"
)

// ReceiptsHandler handles receipt CRUD endpoints. Reads return receipts
// joined with their customer, property and project records.
type ReceiptsHandler struct {
	repo   domain.ReceiptRepository
	joins  *service.JoinService
	logger *slog.Logger
}

// NewReceiptsHandler creates a new receipts handler
func NewReceiptsHandler(repo domain.ReceiptRepository, joins *service.JoinService, logger *slog.Logger) *ReceiptsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptsHandler{repo: repo, joins: joins, logger: logger}
}

// List handles GET /api/receipts
func (h *ReceiptsHandler) List(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.joins.ListReceipts()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, receipts)
}

// Get handles GET /api/receipts/{id}
func (h *ReceiptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.joins.GetReceipt(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// Create handles POST /api/receipts
func (h *ReceiptsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.Receipt
	if !decodeBody(w, r, &draft) {
		return
	}

	receipt, err := h.repo.Create(draft)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("receipt created",
		slog.String("receipt_id", receipt.ID),
		slog.String("receipt_no", receipt.ReceiptNo),
		slog.Float64("amount", receipt.Amount),
	)
	writeJSON(w, http.StatusCreated, receipt)
}

// Update handles PUT /api/receipts/{id}
func (h *ReceiptsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.ReceiptPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	receipt, err := h.repo.Update(r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// Delete handles DELETE /api/receipts/{id}
func (h *ReceiptsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("receipt deleted", slog.String("receipt_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "receipt deleted"})
}
