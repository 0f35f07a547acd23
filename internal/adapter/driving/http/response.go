package httphandler

import (
	"encoding/json"
	"net/http"
	"time"
)

// Error messages returned in JSON error bodies.
const (
	msgRouteNotFound  = "Route not found"
	msgDataNotFound   = "Data not found"
	msgInternalError  = "Internal Server Error"
	msgMissingUpload  = "excelFile upload is required"
	msgInvalidUpload  = "excelFile is not a readable spreadsheet"
	msgUploadTooLarge = "excelFile exceeds the upload size limit"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
	Time    string `json:"time"`
}

func newHealthResponse(records int, now time.Time) HealthResponse {
	return HealthResponse{
		Status:  "ok",
		Records: records,
		Time:    now.UTC().Format(time.RFC3339),
	}
}
