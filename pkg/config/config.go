package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Supported model backends.
const (
	BackendLlamaCLI = "llamacli"
	BackendOpenAI   = "openai"
)

// Config holds all runtime configuration for the assistant.
type Config struct {
	Backend   string
	ModelPath string

	LlamaCLIPath string
	Threads      int
	CtxSize      int

	APIKey  string
	BaseURL string
	Model   string

	// Timeout bounds one generation call. Zero means no limit.
	Timeout  time.Duration
	LogLevel string
	// Verbose turns on debug diagnostics. LogLevel "debug" implies it.
	Verbose bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Backend:      BackendLlamaCLI,
		ModelPath:    DefaultModelPath(),
		LlamaCLIPath: "llama-cli",
		Threads:      4,
		CtxSize:      2048,
		LogLevel:     "info",
	}
}

// DefaultModelPath is models/llama3.1.gguf next to the directory holding the executable.
func DefaultModelPath() string {
	base := "."
	if exe, err := os.Executable(); err == nil {
		base = filepath.Dir(exe)
	}
	return filepath.Join(base, "..", "models", "llama3.1.gguf")
}

// ApplyEnv overlays environment values read through getenv. Empty values are ignored.
func ApplyEnv(cfg Config, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if v := get("AERA_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := get("MODEL_PATH"); v != "" {
		cfg.ModelPath = v
	}
	if v := get("LLAMA_CLI_PATH"); v != "" {
		cfg.LlamaCLIPath = v
	}
	if v := get("LLAMA_THREADS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("LLAMA_THREADS: %w", err)
		}
		cfg.Threads = n
	}
	if v := get("LLAMA_CTX_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("LLAMA_CTX_SIZE: %w", err)
		}
		cfg.CtxSize = n
	}
	if v := get("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := get("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := get("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := get("AERA_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("AERA_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := get("AERA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = BackendLlamaCLI
	}
	cfg.ModelPath = strings.TrimSpace(cfg.ModelPath)
	if cfg.ModelPath != "" {
		if abs, err := filepath.Abs(cfg.ModelPath); err == nil {
			cfg.ModelPath = abs
		}
	}
	cfg.LlamaCLIPath = strings.TrimSpace(cfg.LlamaCLIPath)
	if cfg.LlamaCLIPath == "" {
		cfg.LlamaCLIPath = "llama-cli"
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "debug" {
		cfg.Verbose = true
	}

	if cfg.Threads < 0 {
		cfg.Threads = 0
	}
	if cfg.CtxSize < 0 {
		cfg.CtxSize = 0
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	return cfg
}

// Validate reports configuration that cannot be used at all.
func Validate(cfg Config) error {
	switch cfg.Backend {
	case BackendLlamaCLI, BackendOpenAI:
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", cfg.Backend, BackendLlamaCLI, BackendOpenAI)
	}
}
