package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"cognipath/internal/auth"
	"cognipath/internal/contextutil"
	"cognipath/internal/path"
)

// maxUploadBytes caps PDF uploads at 10 MB.
const maxUploadBytes = 10 << 20

// UploadHandler handles path creation from an uploaded PDF.
type UploadHandler struct {
	pathService path.Service
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(pathService path.Service) *UploadHandler {
	return &UploadHandler{pathService: pathService}
}

// ServeHTTP handles multipart POST requests with "title" and "pdf"
// fields. The original document is persisted alongside the path.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart body or file too large (10MB max)")
		return
	}

	title := r.FormValue("title")

	file, header, err := r.FormFile("pdf")
	if err != nil {
		logger.WarnContext(ctx, "missing pdf file", "error", err)
		writeError(w, http.StatusBadRequest, "PDF file is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	owner := auth.UserID(ctx)
	pathID, err := h.pathService.CreateFromPDF(ctx, owner, path.CreatePDFRequest{
		Title:    title,
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process PDF")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(GenerateResponse{PathID: pathID}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
