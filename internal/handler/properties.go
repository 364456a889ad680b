package handler

import (
	"log/slog"
	"net/http"

	"github.com/telalestate/propertydesk/internal/domain"
)

// PropertiesHandler handles property CRUD endpoints
type PropertiesHandler struct {
	repo   domain.PropertyRepository
	logger *slog.Logger
}

// NewPropertiesHandler creates a new properties handler
func NewPropertiesHandler(repo domain.PropertyRepository, logger *slog.Logger) *PropertiesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PropertiesHandler{repo: repo, logger: logger}
}

// List handles GET /api/properties
func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.repo.List()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

// Get handles GET /api/properties/{id}
func (h *PropertiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	property, err := h.repo.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// Create handles POST /api/properties
func (h *PropertiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.Property
	if !decodeBody(w, r, &draft) {
		return
	}

	property, err := h.repo.Create(draft)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("property created",
		slog.String("property_id", property.ID),
		slog.String("name", property.Name),
	)
	writeJSON(w, http.StatusCreated, property)
}

// Update handles PUT /api/properties/{id}
func (h *PropertiesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.PropertyPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	property, err := h.repo.Update(r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// Delete handles DELETE /api/properties/{id}
func (h *PropertiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("property deleted", slog.String("property_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "property deleted"})
}
