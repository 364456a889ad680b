package handler

import (
	"log/slog"
	"net/http"

	"github.com/telalestate/propertydesk/internal/domain"
)

// DocumentsHandler handles document metadata CRUD endpoints
type DocumentsHandler struct {
	repo   domain.DocumentRepository
	logger *slog.Logger
}

// NewDocumentsHandler creates a new documents handler
func NewDocumentsHandler(repo domain.DocumentRepository, logger *slog.Logger) *DocumentsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentsHandler{repo: repo, logger: logger}
}

// List handles GET /api/documents
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	documents, err := h.repo.List()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, documents)
}

// Get handles GET /api/documents/{id}
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	document, err := h.repo.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, document)
}

// Create handles POST /api/documents
func (h *DocumentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.Document
	if !decodeBody(w, r, &draft) {
		return
	}

	document, err := h.repo.Create(draft)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("document created",
		slog.String("document_id", document.ID),
		slog.String("category", document.Category),
	)
	writeJSON(w, http.StatusCreated, document)
}

// Update handles PUT /api/documents/{id}
func (h *DocumentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.DocumentPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	document, err := h.repo.Update(r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, document)
}

// Delete handles DELETE /api/documents/{id}
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("document deleted", slog.String("document_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "document deleted"})
}
