package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/usersphere/internal/logger"
)

// Response is the envelope used by every endpoint.
// swagger:model Response
type Response struct {
	// Whether the request succeeded
	Success bool `json:"success"`

	// Payload, present on success
	Data any `json:"data,omitempty"`

	// Short error identifier, present on failure
	Error string `json:"error,omitempty"`

	// Human-readable description of the outcome
	Message string `json:"message"`

	// Number of items in data, present on list responses
	Count *int `json:"count,omitempty"`

	// Per-field validation messages, present on validation failure
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, errText, message string) {
	writeJSON(w, status, Response{
		Success: false,
		Error:   errText,
		Message: message,
	})
}

func writeValidationError(w http.ResponseWriter, details map[string][]string) {
	writeJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error:   "Validation error",
		Message: "Invalid input data",
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter) {
	// Internal detail is logged, never leaked
	writeError(w, http.StatusInternalServerError, "Internal server error", "Internal server error")
}

func countOf(n int) *int {
	return &n
}
