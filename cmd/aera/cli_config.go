package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	configpkg "github.com/minhyannv/aera-go/pkg/config"
)

// cliOptions is the parsed command line.
type cliOptions struct {
	Config  configpkg.Config
	Service bool
}

// parseCLIConfig layers defaults, the YAML config file, .env + environment and flags.
func parseCLIConfig(args []string, getenv func(string) string, stderr io.Writer) (cliOptions, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("aera", flag.ContinueOnError)
	fs.SetOutput(stderr)
	service := fs.Bool("service", false, "Read one JSON request from stdin and write one JSON response to stdout")
	configFile := fs.String("config", "", "YAML config file (defaults to $AERA_CONFIG)")
	backend := fs.String("backend", "", "Model backend: llamacli or openai")
	modelPath := fs.String("model", "", "Path to the model file (overrides $MODEL_PATH)")
	logLevel := fs.String("log_level", "", "Diagnostic log level: debug, info, warn, error")
	verbose := fs.Bool("verbose", false, "Verbose diagnostics")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := configpkg.DefaultConfig()

	path := strings.TrimSpace(*configFile)
	if path == "" && getenv != nil {
		path = strings.TrimSpace(getenv("AERA_CONFIG"))
	}
	if path != "" {
		file, err := configpkg.LoadFile(path)
		if err != nil {
			return cliOptions{}, err
		}
		if cfg, err = configpkg.ApplyFile(cfg, file); err != nil {
			return cliOptions{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg, err := configpkg.ApplyEnv(cfg, getenv)
	if err != nil {
		return cliOptions{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "model":
			cfg.ModelPath = *modelPath
		case "log_level":
			cfg.LogLevel = *logLevel
		case "verbose":
			cfg.Verbose = *verbose
		}
	})

	cfg = configpkg.Normalize(cfg)
	if err := configpkg.Validate(cfg); err != nil {
		return cliOptions{}, err
	}
	return cliOptions{Config: cfg, Service: *service}, nil
}
