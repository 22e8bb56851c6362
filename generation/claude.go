/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"

	"chainguard.dev/gavel/generation/retry"
)

// claudeGenerator implements Interface using the Anthropic Messages API.
type claudeGenerator struct {
	client   anthropic.Client
	model    string
	settings settings
}

// newClaude creates a Claude-backed generator.
func newClaude(model string, s settings) Interface {
	var reqOpts []option.RequestOption
	if s.apiKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(s.apiKey))
	}
	return &claudeGenerator{
		client:   anthropic.NewClient(reqOpts...),
		model:    model,
		settings: s,
	}
}

// Generate implements Interface.
func (g *claudeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	log := clog.FromContext(ctx)
	if g.settings.judging != nil {
		g.settings.judging.RecordGeneration(ctx, g.model)
	}

	message, err := retry.Do(ctx, g.settings.retryConfig, "message", isRetryableClaudeError, func() (*anthropic.Message, error) {
		return g.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(g.model),
			MaxTokens:   g.settings.maxTokens,
			Temperature: anthropic.Float(g.settings.temperature),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
	})
	if err != nil {
		return "", fmt.Errorf("claude message: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", errors.New("claude message contained no text content")
	}

	log.With("model", g.model).
		With("response_length", len(text)).
		Debug("Generation completed")
	return text, nil
}

// isRetryableClaudeError reports whether an error is a transient Anthropic
// API error: rate limit, overloaded, or gateway failures.
func isRetryableClaudeError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
