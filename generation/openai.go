/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"chainguard.dev/gavel/generation/retry"
)

// openaiGenerator implements Interface using OpenAI chat completions.
type openaiGenerator struct {
	client   openai.Client
	model    string
	settings settings
}

// newOpenAI creates an OpenAI-backed generator.
func newOpenAI(model string, s settings) Interface {
	var reqOpts []option.RequestOption
	if s.apiKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(s.apiKey))
	}
	return &openaiGenerator{
		client:   openai.NewClient(reqOpts...),
		model:    model,
		settings: s,
	}
}

// Generate implements Interface.
func (g *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	log := clog.FromContext(ctx)
	if g.settings.judging != nil {
		g.settings.judging.RecordGeneration(ctx, g.model)
	}

	completion, err := retry.Do(ctx, g.settings.retryConfig, "chat_completion", isRetryableOpenAIError, func() (*openai.ChatCompletion, error) {
		return g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(g.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			MaxTokens:   openai.Int(g.settings.maxTokens),
			Temperature: openai.Float(g.settings.temperature),
		})
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("openai chat completion returned no choices")
	}

	text := completion.Choices[0].Message.Content
	log.With("model", g.model).
		With("response_length", len(text)).
		Debug("Generation completed")
	return text, nil
}

// isRetryableOpenAIError reports whether an error is a transient OpenAI API
// error worth retrying: rate limits and server-side failures.
func isRetryableOpenAIError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}
