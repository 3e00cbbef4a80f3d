package model

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	configpkg "github.com/minhyannv/aera-go/pkg/config"
	loggerpkg "github.com/minhyannv/aera-go/pkg/logger"
)

const probeTimeout = 5 * time.Second

// LoadOption configures optional dependencies for Load.
type LoadOption func(*loadDeps)

type loadDeps struct {
	logger   loggerpkg.Logger
	lookPath func(string) (string, error)
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) LoadOption {
	return func(d *loadDeps) {
		d.logger = l
	}
}

// WithLookPath replaces exec.LookPath when resolving the llama-cli binary.
func WithLookPath(fn func(string) (string, error)) LoadOption {
	return func(d *loadDeps) {
		d.lookPath = fn
	}
}

// Load prepares the configured backend. It never fails: every problem is
// logged as a warning and reported as an absent model.
func Load(ctx context.Context, cfg configpkg.Config, opts ...LoadOption) Availability {
	deps := loadDeps{logger: loggerpkg.NopLogger{}, lookPath: exec.LookPath}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		gen Generator
		err error
	)
	switch cfg.Backend {
	case configpkg.BackendOpenAI:
		gen, err = loadOpenAI(ctx, cfg)
	case configpkg.BackendLlamaCLI, "":
		gen, err = loadLlamaCLI(cfg, deps)
	default:
		err = fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		loggerpkg.Warn(deps.logger, "model unavailable, using fallback responses", map[string]any{
			"backend": cfg.Backend,
			"reason":  err.Error(),
		})
		return Absent(err.Error())
	}

	loggerpkg.Info(deps.logger, "model loaded", map[string]any{
		"backend": cfg.Backend,
		"model":   cfg.ModelPath,
	})
	return Present(gen)
}

func loadLlamaCLI(cfg configpkg.Config, deps loadDeps) (Generator, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path is empty")
	}
	info, err := os.Stat(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("model path is a directory: %s", cfg.ModelPath)
	}

	binary, err := deps.lookPath(cfg.LlamaCLIPath)
	if err != nil {
		return nil, fmt.Errorf("llama-cli not available: %w", err)
	}

	loggerpkg.Info(deps.logger, "loading model", map[string]any{
		"path":   cfg.ModelPath,
		"binary": binary,
	})
	return &LlamaCLI{
		Binary:    binary,
		ModelPath: cfg.ModelPath,
		Threads:   cfg.Threads,
		CtxSize:   cfg.CtxSize,
		Timeout:   cfg.Timeout,
		logger:    deps.logger,
		verbose:   cfg.Verbose,
	}, nil
}

func loadOpenAI(ctx context.Context, cfg configpkg.Config) (Generator, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("OPENAI_BASE_URL is not set")
	}
	name := cfg.Model
	if name == "" && cfg.ModelPath != "" {
		name = filepath.Base(cfg.ModelPath)
	}
	if name == "" {
		return nil, fmt.Errorf("model name is not set")
	}

	client := NewOpenAI(cfg.BaseURL, cfg.APIKey, name, cfg.Timeout)
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := client.Probe(probeCtx); err != nil {
		return nil, fmt.Errorf("completion server unreachable: %w", err)
	}
	return client, nil
}
