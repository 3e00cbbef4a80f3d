package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI generates text through an OpenAI-compatible completions endpoint,
// such as llama.cpp's llama-server.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds a completions client. Requests are never retried.
// A zero timeout leaves requests bounded only by the caller's context.
func NewOpenAI(baseURL, apiKey, modelName string, timeout time.Duration) *OpenAI {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  modelName,
	}
}

// Probe checks that the server answers a model listing request.
func (o *OpenAI) Probe(ctx context.Context) error {
	_, err := o.client.Models.List(ctx)
	return err
}

// Generate implements Generator.
func (o *OpenAI) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	params := openai.CompletionNewParams{
		Model:  openai.CompletionNewParamsModel(o.model),
		Prompt: openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt)},
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if len(opts.Stop) > 0 {
		params.Stop = openai.CompletionNewParamsStopUnion{OfStringArray: opts.Stop}
	}
	if opts.Temperature != nil {
		params.Temperature = openai.Float(*opts.Temperature)
	}

	var reqOpts []option.RequestOption
	if opts.RepeatPenalty != nil {
		// llama-server extension; ignored by servers that do not know it.
		reqOpts = append(reqOpts, option.WithJSONSet("repeat_penalty", *opts.RepeatPenalty))
	}

	completion, err := o.client.Completions.New(ctx, params, reqOpts...)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion choices")
	}
	return strings.TrimSpace(TruncateAtStop(completion.Choices[0].Text, opts.Stop)), nil
}
