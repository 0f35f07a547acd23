// Package httphandler implements the HTTP driving adapter: spreadsheet upload,
// record lookup, and health endpoints.
package httphandler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/certlink/internal/application"
	"github.com/ericfisherdev/certlink/internal/domain/port/driven"
)

// Upload form field and response attributes.
const (
	UploadField      = "excelFile"
	ResultFilename   = "updated_excel.xlsx"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	headerInserted   = "X-Rows-Inserted"
	headerExisting   = "X-Rows-Existing"
	headerFailed     = "X-Rows-Failed"
	defaultMaxUpload = 32 << 20
)

// Handler is the HTTP driving adapter that serves upload and lookup requests.
type Handler struct {
	ingestSvc *application.IngestService
	lookupSvc *application.LookupService
	codec     driven.WorkbookCodec
	store     driven.RecordStore
	maxUpload int64
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. A maxUpload of
// zero or less selects the 32 MiB default.
func NewHandler(
	ingestSvc *application.IngestService,
	lookupSvc *application.LookupService,
	codec driven.WorkbookCodec,
	store driven.RecordStore,
	maxUpload int64,
	logger *slog.Logger,
) *Handler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &Handler{
		ingestSvc: ingestSvc,
		lookupSvc: lookupSvc,
		codec:     codec,
		store:     store,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// RegisterRoutes registers the API routes and the JSON 404 fallback on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /upload", h.Upload)
	mux.HandleFunc("GET /api", h.Lookup)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("/", h.NotFound)
}

// Upload ingests the uploaded spreadsheet and responds with the annotated
// workbook as an attachment. Per-row storage failures do not fail the request;
// their counts are reported in the X-Rows-* headers.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, _, err := r.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgUploadTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgMissingUpload)
		return
	}
	defer file.Close()

	sheet, err := h.codec.Decode(file)
	if err != nil {
		h.logger.Warn("failed to decode upload", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidUpload)
		return
	}

	report, err := h.ingestSvc.Ingest(r.Context(), sheet.Rows)
	if err != nil {
		h.logger.Error("ingestion aborted", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	sheet.Rows = report.Rows

	var buf bytes.Buffer
	if err := h.codec.Encode(&buf, sheet); err != nil {
		h.logger.Error("failed to encode result workbook", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ResultFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set(headerInserted, strconv.Itoa(report.Inserted))
	w.Header().Set(headerExisting, strconv.Itoa(report.Existing))
	w.Header().Set(headerFailed, strconv.Itoa(report.Failed))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Lookup renders the record identified by the hash query parameter.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	hash := r.URL.Query().Get("hash")

	page, err := h.lookupSvc.RenderHTML(r.Context(), hash)
	if errors.Is(err, driven.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, msgDataNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to render record", "hash", hash, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// Health reports liveness along with the stored record count.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		h.logger.Error("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, newHealthResponse(count, time.Now()))
}

// NotFound is the fallback for every unregistered route.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}
