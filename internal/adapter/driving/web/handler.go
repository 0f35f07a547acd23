// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/certlink/internal/domain/model"
)

// Handler is the web GUI driving adapter that serves the upload page.
type Handler struct {
	uploadPath  string
	uploadField string
	logger      *slog.Logger
}

// NewHandler creates a Handler whose form posts uploadField to uploadPath.
func NewHandler(uploadPath, uploadField string, logger *slog.Logger) *Handler {
	return &Handler{
		uploadPath:  uploadPath,
		uploadField: uploadField,
		logger:      logger,
	}
}

// Index renders the upload form page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	component := UploadForm(h.uploadPath, h.uploadField, model.RequiredColumns)
	layout := Layout("certlink", component)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render upload page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
