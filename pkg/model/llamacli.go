package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	loggerpkg "github.com/minhyannv/aera-go/pkg/logger"
)

const stderrTailBytes = 500

// LlamaCLI generates text by running the llama.cpp command-line binary once per call.
type LlamaCLI struct {
	Binary    string
	ModelPath string
	Threads   int
	CtxSize   int
	// Timeout bounds one run. Zero means no limit beyond the caller's context.
	Timeout time.Duration

	logger  loggerpkg.Logger
	verbose bool
}

// commandResult captures one llama-cli run.
type commandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Generate implements Generator.
func (l *LlamaCLI) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	result := l.runCommand(ctx, l.args(prompt, opts))
	if result.Err != nil {
		return "", runError(result)
	}
	return strings.TrimSpace(TruncateAtStop(result.Stdout, opts.Stop)), nil
}

func (l *LlamaCLI) args(prompt string, opts Options) []string {
	args := []string{
		"-m", l.ModelPath,
		"-p", prompt,
		"--no-display-prompt",
		"--simple-io",
		"--no-conversation",
	}
	if opts.MaxTokens > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxTokens))
	}
	if opts.Temperature != nil {
		args = append(args, "--temp", strconv.FormatFloat(*opts.Temperature, 'f', -1, 64))
	}
	if opts.RepeatPenalty != nil {
		args = append(args, "--repeat-penalty", strconv.FormatFloat(*opts.RepeatPenalty, 'f', -1, 64))
	}
	if l.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(l.Threads))
	}
	if l.CtxSize > 0 {
		args = append(args, "-c", strconv.Itoa(l.CtxSize))
	}
	return args
}

// runCommand executes llama-cli and captures stdout/stderr.
func (l *LlamaCLI) runCommand(ctx context.Context, args []string) commandResult {
	execCtx := ctx
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	loggerpkg.Debug(l.verbose, l.logger, "llama-cli start", map[string]any{
		"binary":  l.Binary,
		"model":   l.ModelPath,
		"timeout": l.Timeout.String(),
	})

	cmd := exec.CommandContext(execCtx, l.Binary, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start).Milliseconds()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case execCtx.Err() != nil:
			exitCode = -1
			err = execCtx.Err()
		case errors.As(err, &exitErr):
			exitCode = exitErr.ExitCode()
		default:
			exitCode = -1
		}
	}

	loggerpkg.Debug(l.verbose, l.logger, "llama-cli done", map[string]any{
		"exit_code":    exitCode,
		"duration_ms":  duration,
		"stdout_bytes": stdout.Len(),
		"stderr_bytes": stderr.Len(),
	})

	return commandResult{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
}

// runError describes a failed run. Processes that exited on their own report
// the exit code; timeouts and start failures keep the underlying error.
func runError(result commandResult) error {
	err := result.Err
	if result.ExitCode > 0 {
		err = fmt.Errorf("exit code %d: %w", result.ExitCode, result.Err)
	}
	if tail := stderrTail(result.Stderr); tail != "" {
		return fmt.Errorf("llama-cli: %w: %s", err, tail)
	}
	return fmt.Errorf("llama-cli: %w", err)
}

func stderrTail(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if len(stderr) > stderrTailBytes {
		return "..." + stderr[len(stderr)-stderrTailBytes:]
	}
	return stderr
}
