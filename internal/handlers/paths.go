package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cognipath/internal/auth"
	"cognipath/internal/contextutil"
	"cognipath/internal/path"
)

// PathHandler serves reads of a single path and the owner's listing.
type PathHandler struct {
	pathService path.Service
}

// NewPathHandler creates a new PathHandler.
func NewPathHandler(pathService path.Service) *PathHandler {
	return &PathHandler{pathService: pathService}
}

// PathResponse is the step-viewer payload: the full chunk sequence in
// pedagogical order plus the authoritative progress state.
type PathResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Chunks      []path.Chunk `json:"chunks"`
	HasSource   bool         `json:"has_source"`
	CurrentStep int          `json:"current_step"`
	TotalSteps  int          `json:"total_steps"`
	Status      path.Status  `json:"status"`
}

// ListResponse wraps the owner's path summaries.
type ListResponse struct {
	Paths []path.Summary `json:"paths"`
}

// Get handles GET /api/paths/{id}.
func (h *PathHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	owner := auth.UserID(ctx)
	id := chi.URLParam(r, "id")

	p, err := h.pathService.Get(ctx, owner, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load path")
		return
	}

	progress := path.ProgressFor(p.CurrentStep, len(p.Chunks))
	resp := PathResponse{
		ID:          p.ID,
		Title:       p.Title,
		Chunks:      p.Chunks,
		HasSource:   p.HasSource,
		CurrentStep: progress.CurrentStep,
		TotalSteps:  progress.TotalSteps,
		Status:      progress.Status,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// List handles GET /api/paths.
func (h *PathHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	summaries, err := h.pathService.List(ctx, auth.UserID(ctx))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list paths")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ListResponse{Paths: summaries}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// AdvanceRequest carries the optimistic-concurrency precondition: the
// step the caller believes the path is on.
type AdvanceRequest struct {
	FromStep int `json:"from_step"`
}

// Advance handles POST /api/paths/{id}/advance.
func (h *PathHandler) Advance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	progress, err := h.pathService.Advance(ctx, auth.UserID(ctx), chi.URLParam(r, "id"), req.FromStep)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to advance progress")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(progress); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// Source handles GET /api/paths/{id}/source, streaming the original
// uploaded PDF for paths created from one.
func (h *PathHandler) Source(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	rc, err := h.pathService.OpenSource(ctx, auth.UserID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load source document")
		return
	}
	defer func() {
		_ = rc.Close()
	}()

	w.Header().Set("Content-Type", "application/pdf")
	if _, err := io.Copy(w, rc); err != nil {
		logger.ErrorContext(ctx, "failed to stream source document", "error", err)
	}
}
