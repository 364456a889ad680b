package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/telalestate/propertydesk/internal/observability/metrics"
)

const maxUploadBytes = 10 << 20

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// UploadHandler stores uploaded files on local disk and serves back their
// public URLs. Filenames are sanitized and timestamped to avoid collisions.
type UploadHandler struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(dir string, logger *slog.Logger) *UploadHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadHandler{dir: dir, logger: logger, now: time.Now}
}

// UploadResponse represents a stored file
type UploadResponse struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}

// Upload handles POST /api/upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		metrics.ObserveUpload("error")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.ObserveUpload("error")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No file provided"})
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		metrics.ObserveUpload("error")
		h.logger.Error("failed to create uploads dir", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	name := storedName(header.Filename, h.now())
	path := filepath.Join(h.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		metrics.ObserveUpload("error")
		h.logger.Error("failed to create file", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		metrics.ObserveUpload("error")
		os.Remove(path)
		h.logger.Error("failed to write file", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	metrics.ObserveUpload("success")
	h.logger.Info("file uploaded",
		slog.String("file", name),
		slog.Int64("size", size),
	)
	writeJSON(w, http.StatusCreated, UploadResponse{
		FileName: name,
		FileURL:  "/uploads/" + name,
		FileSize: size,
		FileType: header.Header.Get("Content-Type"),
	})
}

// Delete handles DELETE /api/upload?fileUrl=. Removing a file that is
// already gone succeeds.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileURL := r.URL.Query().Get("fileUrl")
	if fileURL == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "fileUrl is required"})
		return
	}

	// Only the basename is honored so the URL cannot point outside the
	// uploads directory.
	name := filepath.Base(fileURL)
	if name == "." || name == "/" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid fileUrl"})
		return
	}

	if err := os.Remove(filepath.Join(h.dir, name)); err != nil && !os.IsNotExist(err) {
		h.logger.Error("failed to delete file", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "file deleted"})
}

// storedName sanitizes the original filename and appends an upload
// timestamp before the extension.
func storedName(original string, now time.Time) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%d%s", base, now.UnixMilli(), ext)
}
