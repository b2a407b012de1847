package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"cognipath/internal/blob"
	"cognipath/internal/config"
	"cognipath/internal/http"
	"cognipath/internal/llm"
	"cognipath/internal/path"
	"cognipath/internal/pdfext"
	"cognipath/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Blob store for original uploaded documents
	blobStore, err := blob.NewFSStore(cfg.BlobDir)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}
	slog.Info("Blob store initialized", "dir", cfg.BlobDir)

	// Path repository
	pathRepo := storage.NewPathRepo(db)

	// Completion backend client (external service layer). Injected into
	// the service rather than used as a package-level singleton.
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// PDF text extractor
	extractor := pdfext.NewExtractor()

	// Path service: the decomposition pipeline and progress operations
	pathService := path.NewService(llmClient, extractor, blobStore, pathRepo, path.Options{
		MaxSourceChars: cfg.MaxSourceChars,
		LLMTimeout:     cfg.LLMTimeout,
	})
	slog.Info("Path service initialized", "model", cfg.LLMModelName, "llm_timeout", cfg.LLMTimeout)

	// Create router with dependencies
	deps := &http.Deps{
		PathService: pathService,
		DB:          db,
		AuthSecret:  []byte(cfg.AuthSecret),
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
