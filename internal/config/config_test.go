package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setRequiredEnv sets the minimum environment for a successful Load,
// pointing DB_PATH at a temp dir so no ./data directory is created.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("AUTH_SECRET", strings.Repeat("s", 32))
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.LLMBaseURL != "https://api.openai.com" {
		t.Errorf("LLMBaseURL = %q", cfg.LLMBaseURL)
	}
	if cfg.LLMModelName != "gpt-3.5-turbo" {
		t.Errorf("LLMModelName = %q", cfg.LLMModelName)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Errorf("LLMTimeout = %v, want 120s", cfg.LLMTimeout)
	}
	if cfg.MaxSourceChars != 120000 {
		t.Errorf("MaxSourceChars = %d, want 120000", cfg.MaxSourceChars)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
	}
	if cfg.BlobDir != "./data/blobs" {
		t.Errorf("BlobDir = %q", cfg.BlobDir)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_BASE_URL", "http://localhost:8080")
	t.Setenv("LLM_MODEL", "llama3")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")
	t.Setenv("MAX_SOURCE_CHARS", "5000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.LLMBaseURL != "http://localhost:8080" {
		t.Errorf("LLMBaseURL = %q", cfg.LLMBaseURL)
	}
	if cfg.LLMModelName != "llama3" {
		t.Errorf("LLMModelName = %q", cfg.LLMModelName)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Errorf("LLMTimeout = %v, want 30s", cfg.LLMTimeout)
	}
	if cfg.MaxSourceChars != 5000 {
		t.Errorf("MaxSourceChars = %d, want 5000", cfg.MaxSourceChars)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
	}{
		{
			name: "missing api key",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("LLM_API_KEY", "")
			},
		},
		{
			name: "missing auth secret",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("AUTH_SECRET", "")
			},
		},
		{
			name: "short auth secret",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("AUTH_SECRET", "too-short")
			},
		},
		{
			name: "non-numeric timeout",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("LLM_TIMEOUT_SECONDS", "soon")
			},
		},
		{
			name: "negative timeout",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("LLM_TIMEOUT_SECONDS", "-5")
			},
		},
		{
			name: "zero max source chars",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("MAX_SOURCE_CHARS", "0")
			},
		},
		{
			name: "unknown log level",
			setup: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("LOG_LEVEL", "loud")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			if _, err := Load(); err == nil {
				t.Error("Load() accepted invalid configuration")
			}
		})
	}
}
