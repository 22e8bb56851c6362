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
	"google.golang.org/genai"

	"chainguard.dev/gavel/generation/retry"
)

// googleGenerator implements Interface using Google's GenAI SDK.
type googleGenerator struct {
	client   *genai.Client
	model    string
	settings settings
}

// newGoogle creates a Gemini-backed generator.
func newGoogle(ctx context.Context, model string, s settings) (Interface, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &googleGenerator{
		client:   client,
		model:    model,
		settings: s,
	}, nil
}

// Generate implements Interface.
func (g *googleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	log := clog.FromContext(ctx)
	if g.settings.judging != nil {
		g.settings.judging.RecordGeneration(ctx, g.model)
	}

	resp, err := retry.Do(ctx, g.settings.retryConfig, "generate_content", isRetryableGoogleError, func() (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(g.settings.temperature)),
			MaxOutputTokens: int32(g.settings.maxTokens),
		})
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini response contained no text content")
	}

	log.With("model", g.model).
		With("response_length", len(text)).
		Debug("Generation completed")
	return text, nil
}

// isRetryableGoogleError reports whether an error is a transient Gemini API
// error: rate limit or server-side failures.
func isRetryableGoogleError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 503, 504:
			return true
		}
	}
	return false
}
