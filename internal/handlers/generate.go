package handlers

import (
	"encoding/json"
	"net/http"

	"cognipath/internal/auth"
	"cognipath/internal/contextutil"
	"cognipath/internal/path"
)

// GenerateHandler handles path creation from pasted text.
type GenerateHandler struct {
	pathService path.Service
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(pathService path.Service) *GenerateHandler {
	return &GenerateHandler{pathService: pathService}
}

// GenerateRequest represents the HTTP request payload for text-based
// path creation.
type GenerateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GenerateResponse represents the HTTP response payload.
type GenerateResponse struct {
	PathID string `json:"path_id"`
}

// ServeHTTP handles POST requests to create a path from pasted text.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	owner := auth.UserID(ctx)
	pathID, err := h.pathService.CreateFromText(ctx, owner, path.CreateTextRequest{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate learning path")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(GenerateResponse{PathID: pathID}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
