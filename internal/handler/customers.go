package handler

import (
	"log/slog"
	"net/http"

	"github.com/telalestate/propertydesk/internal/domain"
)

// CustomersHandler handles customer CRUD endpoints
type CustomersHandler struct {
	repo   domain.CustomerRepository
	logger *slog.Logger
}

// NewCustomersHandler creates a new customers handler
func NewCustomersHandler(repo domain.CustomerRepository, logger *slog.Logger) *CustomersHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomersHandler{repo: repo, logger: logger}
}

// List handles GET /api/customers
func (h *CustomersHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.List()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// Get handles GET /api/customers/{id}
func (h *CustomersHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.repo.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// Create handles POST /api/customers
func (h *CustomersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.Customer
	if !decodeBody(w, r, &draft) {
		return
	}

	customer, err := h.repo.Create(draft)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("customer created",
		slog.String("customer_id", customer.ID),
		slog.String("name", customer.Name),
	)
	writeJSON(w, http.StatusCreated, customer)
}

// Update handles PUT /api/customers/{id}
func (h *CustomersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.CustomerPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	customer, err := h.repo.Update(r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// Delete handles DELETE /api/customers/{id}
func (h *CustomersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("customer deleted", slog.String("customer_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
