package handler

import (
	"log/slog"
	"net/http"

	"github.com/telalestate/propertydesk/internal/domain"
)

// RentalsHandler handles rental CRUD endpoints
type RentalsHandler struct {
	repo   domain.RentalRepository
	logger *slog.Logger
}

// NewRentalsHandler creates a new rentals handler
func NewRentalsHandler(repo domain.RentalRepository, logger *slog.Logger) *RentalsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RentalsHandler{repo: repo, logger: logger}
}

// List handles GET /api/rentals
func (h *RentalsHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.repo.List()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

// Get handles GET /api/rentals/{id}
func (h *RentalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	rental, err := h.repo.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// Create handles POST /api/rentals
func (h *RentalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.Rental
	if !decodeBody(w, r, &draft) {
		return
	}

	rental, err := h.repo.Create(draft)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("rental created",
		slog.String("rental_id", rental.ID),
		slog.String("tenant_id", rental.TenantID),
		slog.String("property_id", rental.PropertyID),
	)
	writeJSON(w, http.StatusCreated, rental)
}

// Update handles PUT /api/rentals/{id}
func (h *RentalsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.RentalPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	rental, err := h.repo.Update(r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// Delete handles DELETE /api/rentals/{id}
func (h *RentalsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("rental deleted", slog.String("rental_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "rental deleted"})
}
