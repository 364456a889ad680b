package handler

import (
	"log/slog"
	"net/http"

	"github.com/telalestate/propertydesk/internal/domain"
)

// ContractsHandler handles rental contract CRUD endpoints
type ContractsHandler struct {
	repo   domain.RentalContractRepository
	logger *slog.Logger
}

// NewContractsHandler creates a new contracts handler
func NewContractsHandler(repo domain.RentalContractRepository, logger *slog.Logger) *ContractsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContractsHandler{repo: repo, logger: logger}
}

// List handles GET /api/rental-contracts
func (h *ContractsHandler) List(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.repo.List()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

// Get handles GET /api/rental-contracts/{id}
func (h *ContractsHandler) Get(w http.ResponseWriter, r *http.Request) {
	contract, err := h.repo.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

// Create handles POST /api/rental-contracts
func (h *ContractsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.RentalContract
	if !decodeBody(w, r, &draft) {
		return
	}

	contract, err := h.repo.Create(draft)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("rental contract created",
		slog.String("contract_id", contract.ID),
		slog.String("contract_number", contract.ContractNumber),
	)
	writeJSON(w, http.StatusCreated, contract)
}

// Update handles PUT /api/rental-contracts/{id}
func (h *ContractsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.RentalContractPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	contract, err := h.repo.Update(r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

// Delete handles DELETE /api/rental-contracts/{id}
func (h *ContractsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("rental contract deleted", slog.String("contract_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "rental contract deleted"})
}
