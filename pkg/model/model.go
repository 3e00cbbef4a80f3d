// Package model talks to the text-generation backend and reports whether one is available.
package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned when generation is requested but no model is loaded.
var ErrUnavailable = errors.New("model unavailable")

// Generator produces the best continuation for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Options controls one generation call. Nil pointers leave the backend default in place.
type Options struct {
	MaxTokens     int
	Stop          []string
	Temperature   *float64
	RepeatPenalty *float64
}

// ServiceOptions is the profile used for single-shot service requests.
func ServiceOptions() Options {
	temperature := 0.3
	repeatPenalty := 1.1
	return Options{
		MaxTokens:     150,
		Stop:          []string{"Human:", "AI:", "\nHuman:", "\nAI:"},
		Temperature:   &temperature,
		RepeatPenalty: &repeatPenalty,
	}
}

// InteractiveOptions is the profile used by the interactive loop.
func InteractiveOptions() Options {
	return Options{
		MaxTokens: 256,
		Stop:      []string{"Human:", "AI:"},
	}
}

// Availability is either a loaded Generator or the reason none could be loaded.
type Availability struct {
	gen    Generator
	reason string
}

// Present wraps a loaded generator. A nil generator is reported as absent.
func Present(gen Generator) Availability {
	if gen == nil {
		return Absent("no generator")
	}
	return Availability{gen: gen}
}

// Absent records why no model is available.
func Absent(reason string) Availability {
	return Availability{reason: reason}
}

// Generator returns the loaded generator and true, or nil and false when absent.
func (a Availability) Generator() (Generator, bool) {
	return a.gen, a.gen != nil
}

// Reason is empty when a model is present.
func (a Availability) Reason() string {
	return a.reason
}

// Generate forwards to the loaded generator or fails with ErrUnavailable.
func (a Availability) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	gen, ok := a.Generator()
	if !ok {
		if a.reason == "" {
			return "", ErrUnavailable
		}
		return "", fmt.Errorf("%w: %s", ErrUnavailable, a.reason)
	}
	return gen.Generate(ctx, prompt, opts)
}

// TruncateAtStop cuts text at the earliest occurrence of any stop sequence.
func TruncateAtStop(text string, stop []string) string {
	cut := len(text)
	for _, s := range stop {
		if s == "" {
			continue
		}
		if i := strings.Index(text, s); i >= 0 && i < cut {
			cut = i
		}
	}
	return text[:cut]
}
