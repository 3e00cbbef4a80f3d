package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the YAML configuration file layout.
// Pointer fields distinguish "not set" from zero values.
type File struct {
	Backend      string `yaml:"backend"`
	ModelPath    string `yaml:"model_path"`
	LlamaCLIPath string `yaml:"llama_cli_path"`
	Threads      *int   `yaml:"threads"`
	CtxSize      *int   `yaml:"ctx_size"`
	BaseURL      string `yaml:"base_url"`
	Model        string `yaml:"model"`
	Timeout      string `yaml:"timeout"`
	LogLevel     string `yaml:"log_level"`
	Verbose      *bool  `yaml:"verbose"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// ApplyFile overlays the values set in f onto cfg.
func ApplyFile(cfg Config, f File) (Config, error) {
	if f.Backend != "" {
		cfg.Backend = f.Backend
	}
	if f.ModelPath != "" {
		cfg.ModelPath = f.ModelPath
	}
	if f.LlamaCLIPath != "" {
		cfg.LlamaCLIPath = f.LlamaCLIPath
	}
	if f.Threads != nil {
		cfg.Threads = *f.Threads
	}
	if f.CtxSize != nil {
		cfg.CtxSize = *f.CtxSize
	}
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.Model != "" {
		cfg.Model = f.Model
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
	return cfg, nil
}
