package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"cognipath/internal/contextutil"
	"cognipath/internal/path"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// handleServiceError maps domain errors to HTTP status classes:
// client-input errors, not-found (ownership collapsed in), conflicts,
// and backend/service failures.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *path.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	switch {
	case errors.Is(err, path.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, path.ErrNotFound):
		writeError(w, http.StatusNotFound, "Path not found")
	case errors.Is(err, path.ErrConflict):
		writeError(w, http.StatusConflict, "Progress was updated concurrently; refetch and retry")
	case errors.Is(err, path.ErrExtraction):
		writeError(w, http.StatusUnprocessableEntity, "Could not extract text from the PDF")
	case errors.Is(err, path.ErrGeneration):
		writeError(w, http.StatusBadGateway, "Failed to generate learning path")
	case errors.Is(err, path.ErrDecode):
		writeError(w, http.StatusBadGateway, "Failed to generate learning path")
	default:
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}
