package path

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_client.go -package=mocks cognipath/internal/path LLMClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_text_extractor.go -package=mocks cognipath/internal/path TextExtractor
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_blob_store.go -package=mocks cognipath/internal/path BlobStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks cognipath/internal/path Store
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks -mock_names=Service=MockService cognipath/internal/path Service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"cognipath/internal/contextutil"
)

// LLMClient is the completion capability used by the decomposition
// pipeline. The interface is defined from this package's perspective
// (consumer-first) so tests can substitute the backend.
type LLMClient interface {
	// Complete sends an instruction to the backend and returns its raw
	// textual response.
	Complete(ctx context.Context, prompt string) (string, error)
}

// TextExtractor reduces a PDF binary to plain text.
type TextExtractor interface {
	Extract(r io.Reader) (string, error)
}

// BlobStore persists original uploaded documents.
type BlobStore interface {
	// Save stores the document and returns a durable key.
	Save(ctx context.Context, owner, filename string, data []byte) (string, error)
	// Open streams a previously stored document by key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Store is the durable, owner-scoped path store.
type Store interface {
	// Create atomically inserts a path with its full chunk sequence and
	// current_step = 0, assigning p.ID.
	Create(ctx context.Context, p *Path) error
	// GetByID returns the path only when it exists and belongs to
	// owner; otherwise ErrNotFound.
	GetByID(ctx context.Context, id, owner string) (*Path, error)
	// ListByOwner returns summaries of the owner's paths, newest first.
	ListByOwner(ctx context.Context, owner string) ([]Summary, error)
	// AdvanceStep increments current_step by one only if it still
	// equals fromStep, returning the new value. Fails with ErrConflict
	// when the precondition no longer holds.
	AdvanceStep(ctx context.Context, id, owner string, fromStep int) (int, error)
}

// CreateTextRequest is the pasted-text entry point payload.
type CreateTextRequest struct {
	Title   string
	Content string
}

// CreatePDFRequest is the upload entry point payload.
type CreatePDFRequest struct {
	Title    string
	Filename string
	Data     []byte
}

// Service exposes the decomposition pipeline and progress operations.
type Service interface {
	CreateFromText(ctx context.Context, owner string, req CreateTextRequest) (string, error)
	CreateFromPDF(ctx context.Context, owner string, req CreatePDFRequest) (string, error)
	Get(ctx context.Context, owner, id string) (*Path, error)
	List(ctx context.Context, owner string) ([]Summary, error)
	Advance(ctx context.Context, owner, id string, fromStep int) (Progress, error)
	OpenSource(ctx context.Context, owner, id string) (io.ReadCloser, error)
}

// service implements Service. Every dependency is injected so the
// backend, extractor, and stores can be swapped in tests.
type service struct {
	llm            LLMClient
	extractor      TextExtractor
	blobs          BlobStore
	store          Store
	maxSourceChars int
	llmTimeout     time.Duration
	logger         *slog.Logger
}

// Options bounds the pipeline's inputs and external waits.
type Options struct {
	// MaxSourceChars rejects oversize source text before any external
	// call. Zero means no bound.
	MaxSourceChars int
	// LLMTimeout caps the backend call. Zero means no deadline beyond
	// the request's own.
	LLMTimeout time.Duration
}

// NewService creates a new path Service.
func NewService(llm LLMClient, extractor TextExtractor, blobs BlobStore, store Store, opts Options) Service {
	return &service{
		llm:            llm,
		extractor:      extractor,
		blobs:          blobs,
		store:          store,
		maxSourceChars: opts.MaxSourceChars,
		llmTimeout:     opts.LLMTimeout,
		logger:         slog.Default(),
	}
}

// CreateFromText runs the full decomposition pipeline over pasted text.
func (s *service) CreateFromText(ctx context.Context, owner string, req CreateTextRequest) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Title) == "" {
		return "", &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if strings.TrimSpace(req.Content) == "" {
		return "", &ValidationError{Field: "content", Message: "cannot be empty"}
	}
	if err := s.checkSourceSize(req.Content); err != nil {
		return "", err
	}

	chunks, err := s.generateChunks(ctx, req.Content)
	if err != nil {
		return "", err
	}

	p := &Path{Owner: owner, Title: req.Title, Chunks: chunks}
	if err := s.store.Create(ctx, p); err != nil {
		logger.ErrorContext(ctx, "failed to persist path", "error", err)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	logger.InfoContext(ctx, "path created from text", "path_id", p.ID, "chunks", len(chunks))
	return p.ID, nil
}

// CreateFromPDF extracts text from the upload, stores the original
// document, and runs the same pipeline. The blob write happens before
// generation so a stored document without a path can only result from
// a later stage failing; a path always references an existing blob.
func (s *service) CreateFromPDF(ctx context.Context, owner string, req CreatePDFRequest) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Title) == "" {
		return "", &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if len(req.Data) == 0 {
		return "", &ValidationError{Field: "pdf", Message: "file is required"}
	}

	text, err := s.extractor.Extract(bytes.NewReader(req.Data))
	if err != nil {
		logger.WarnContext(ctx, "pdf extraction failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if err := s.checkSourceSize(text); err != nil {
		return "", err
	}

	key, err := s.blobs.Save(ctx, owner, req.Filename, req.Data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to store original pdf", "error", err)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	chunks, err := s.generateChunks(ctx, text)
	if err != nil {
		return "", err
	}

	p := &Path{Owner: owner, Title: req.Title, Chunks: chunks, SourceDoc: key}
	if err := s.store.Create(ctx, p); err != nil {
		logger.ErrorContext(ctx, "failed to persist path", "error", err)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	logger.InfoContext(ctx, "path created from pdf", "path_id", p.ID, "chunks", len(chunks), "source_doc", key)
	return p.ID, nil
}

// generateChunks is the prompt -> backend -> decode core shared by
// both entry points. Stages fail fast; nothing is persisted here.
func (s *service) generateChunks(ctx context.Context, sourceText string) ([]Chunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := BuildPrompt(sourceText)

	callCtx := ctx
	if s.llmTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.llmTimeout)
		defer cancel()
	}

	raw, err := s.llm.Complete(callCtx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "completion backend call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	chunks, err := DecodeChunks(raw)
	if err != nil {
		logger.WarnContext(ctx, "backend output rejected", "error", err, "output_length", len(raw))
		return nil, err
	}

	return chunks, nil
}

func (s *service) checkSourceSize(text string) error {
	if s.maxSourceChars > 0 && len(text) > s.maxSourceChars {
		return &ValidationError{Field: "content", Message: "source text exceeds maximum length"}
	}
	return nil
}

// Get returns the owner's path or ErrNotFound.
func (s *service) Get(ctx context.Context, owner, id string) (*Path, error) {
	return s.store.GetByID(ctx, id, owner)
}

// List returns summaries of the owner's paths.
func (s *service) List(ctx context.Context, owner string) ([]Summary, error) {
	return s.store.ListByOwner(ctx, owner)
}

// Advance moves the progress cursor one step forward with optimistic
// concurrency. Advancing a completed path is a terminal no-op.
func (s *service) Advance(ctx context.Context, owner, id string, fromStep int) (Progress, error) {
	p, err := s.store.GetByID(ctx, id, owner)
	if err != nil {
		return Progress{}, err
	}

	total := len(p.Chunks)
	if p.CurrentStep >= total {
		return ProgressFor(p.CurrentStep, total), nil
	}
	if fromStep < 0 || fromStep >= total {
		return Progress{}, &ValidationError{Field: "from_step", Message: "outside path bounds"}
	}

	newStep, err := s.store.AdvanceStep(ctx, id, owner, fromStep)
	if err != nil {
		return Progress{}, err
	}
	return ProgressFor(newStep, total), nil
}

// OpenSource streams the original uploaded document for a path.
// Paths created from pasted text have no source and read as not found.
func (s *service) OpenSource(ctx context.Context, owner, id string) (io.ReadCloser, error) {
	p, err := s.store.GetByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if p.SourceDoc == "" {
		return nil, fmt.Errorf("%w: path has no source document", ErrNotFound)
	}
	rc, err := s.blobs.Open(ctx, p.SourceDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rc, nil
}
