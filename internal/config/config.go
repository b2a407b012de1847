package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL     string
	LLMModelName   string
	LLMAPIKey      string
	LLMTimeout     time.Duration
	MaxSourceChars int
	DBPath         string
	BlobDir        string
	AuthSecret     string
	APIPort        string
	LogLevel       slog.Level
	LogFormat      string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	// Try to find project root by looking for go.mod
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName: getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMAPIKey:    getEnv("LLM_API_KEY", ""),
		DBPath:       getEnv("DB_PATH", "./data/cognipath.db"),
		BlobDir:      getEnv("BLOB_DIR", "./data/blobs"),
		AuthSecret:   getEnv("AUTH_SECRET", ""),
		APIPort:      getEnv("API_PORT", "9000"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}

	// Parse LLM_TIMEOUT_SECONDS. The backend call is the dominant
	// latency source; an unbounded wait would hang the request forever.
	timeoutStr := getEnv("LLM_TIMEOUT_SECONDS", "120")
	timeoutSecs, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSecs <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT_SECONDS must be a positive integer")
	}
	cfg.LLMTimeout = time.Duration(timeoutSecs) * time.Second

	// Parse MAX_SOURCE_CHARS, the input bound enforced before any
	// backend call.
	maxCharsStr := getEnv("MAX_SOURCE_CHARS", "120000")
	maxChars, err := strconv.Atoi(maxCharsStr)
	if err != nil || maxChars <= 0 {
		return nil, fmt.Errorf("MAX_SOURCE_CHARS must be a positive integer")
	}
	cfg.MaxSourceChars = maxChars

	// Parse LOG_LEVEL
	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Validate required fields
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	if len(cfg.AuthSecret) < 32 {
		return nil, fmt.Errorf("AUTH_SECRET is required and must be at least 32 bytes")
	}

	// Create ./data directory if it doesn't exist (for future DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
