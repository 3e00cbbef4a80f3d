// Command aera is a chat wrapper around a local language model.
//
// Run without arguments for an interactive session, or with --service to
// answer a single JSON request read from standard input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	loggerpkg "github.com/minhyannv/aera-go/pkg/logger"
	"github.com/minhyannv/aera-go/pkg/model"
	"github.com/minhyannv/aera-go/pkg/prompt"
	"github.com/minhyannv/aera-go/pkg/responder"
)

// main is the program entry point.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run dispatches to service or interactive mode and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseCLIConfig(args, os.Getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg := opts.Config

	level := loggerpkg.ParseLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = loggerpkg.LevelDebug
	}
	appLogger := loggerpkg.NewLeveledLogger(stderr, level)

	ctx := context.Background()
	available := model.Load(ctx, cfg, model.WithLogger(appLogger))

	if opts.Service {
		r := responder.New(available,
			responder.WithLogger(appLogger),
			responder.WithVerbose(cfg.Verbose),
		)
		if err := r.Serve(ctx, stdin, stdout); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runREPL(ctx, available, prompt.NewTranscript(""), replOptions{
		Verbose: cfg.Verbose,
		Logger:  appLogger,
	}, stdin, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
