// Package responder answers chat requests with a model or, when none is
// loaded, with canned keyword replies.
package responder

import (
	"context"

	loggerpkg "github.com/minhyannv/aera-go/pkg/logger"
	"github.com/minhyannv/aera-go/pkg/model"
	"github.com/minhyannv/aera-go/pkg/prompt"
)

// Request is one service-mode request. Missing fields decode as empty strings.
type Request struct {
	SystemPrompt        string `json:"system_prompt"`
	ConversationHistory string `json:"conversation_history"`
	UserInput           string `json:"user_input"`
}

// Response carries either Response or Error, never both.
type Response struct {
	Response *string `json:"response,omitempty"`
	Error    *string `json:"error,omitempty"`
}

// Reply builds a successful response.
func Reply(text string) Response {
	return Response{Response: &text}
}

// Failure builds an error response.
func Failure(msg string) Response {
	return Response{Error: &msg}
}

// Responder produces service responses from the available model.
type Responder struct {
	model   model.Availability
	logger  loggerpkg.Logger
	verbose bool
}

// Option configures optional Responder dependencies.
type Option func(*Responder)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(r *Responder) {
		r.logger = l
	}
}

// WithVerbose enables debug diagnostics.
func WithVerbose(v bool) Option {
	return func(r *Responder) {
		r.verbose = v
	}
}

// New builds a Responder around the given model availability.
func New(m model.Availability, opts ...Option) *Responder {
	r := &Responder{model: m, logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Respond answers one request. Without a model it always returns a fallback
// reply; with one, generation failures are returned as error responses.
func (r *Responder) Respond(ctx context.Context, req Request) Response {
	gen, ok := r.model.Generator()
	if !ok {
		loggerpkg.Debug(r.verbose, r.logger, "fallback reply", map[string]any{
			"reason": r.model.Reason(),
		})
		return Reply(Fallback(req.UserInput))
	}

	full := prompt.Build(req.SystemPrompt, req.ConversationHistory, req.UserInput)
	loggerpkg.Debug(r.verbose, r.logger, "generating", map[string]any{
		"prompt_bytes": len(full),
	})
	raw, err := gen.Generate(ctx, full, model.ServiceOptions())
	if err != nil {
		loggerpkg.Error(r.logger, "generation failed", map[string]any{"error": err.Error()})
		return Failure(err.Error())
	}
	return Reply(Sanitize(raw))
}
