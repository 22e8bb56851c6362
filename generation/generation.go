/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generation

import (
	"context"
	"fmt"
	"strings"

	"chainguard.dev/gavel/generation/retry"
	"chainguard.dev/gavel/metrics"
)

// Interface is the external text-generation collaborator behind every judge
// unit. Implementations are fallible and non-deterministic: two calls with
// identical prompts may return different text, and callers must treat each
// call as potentially slow.
type Interface interface {
	// Generate produces text for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts an ordinary function to Interface. Tests use this to script
// deterministic judge behavior.
type Func func(ctx context.Context, prompt string) (string, error)

// Generate implements Interface.
func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// settings holds configuration shared by all backends.
type settings struct {
	apiKey      string
	maxTokens   int64
	temperature float64
	retryConfig retry.Config
	judging     *metrics.Judging
}

// Option is a functional option for configuring a generation backend.
type Option func(*settings) error

// WithAPIKey sets the API key used to authenticate with the model provider.
// If unset, each SDK falls back to its own environment-variable default.
func WithAPIKey(key string) Option {
	return func(s *settings) error {
		s.apiKey = key
		return nil
	}
}

// WithMaxTokens sets the maximum tokens for responses.
func WithMaxTokens(tokens int64) Option {
	return func(s *settings) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		s.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature. Lower values produce more
// consistent verdicts across refinement iterations.
func WithTemperature(temp float64) Option {
	return func(s *settings) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		s.temperature = temp
		return nil
	}
}

// WithRetryConfig sets the retry configuration for transient provider errors
// such as 429 rate limits.
func WithRetryConfig(cfg retry.Config) Option {
	return func(s *settings) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.retryConfig = cfg
		return nil
	}
}

// WithMetrics records generation call counts on the given metrics instance.
func WithMetrics(judging *metrics.Judging) Option {
	return func(s *settings) error {
		s.judging = judging
		return nil
	}
}

// New creates a generation backend by delegating to the appropriate
// implementation based on the model name: GPT models use the OpenAI SDK,
// Claude models the Anthropic SDK, and Gemini models Google's GenAI SDK.
func New(ctx context.Context, model string, opts ...Option) (Interface, error) {
	s := settings{
		maxTokens:   4096,
		temperature: 0.1,
		retryConfig: retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	modelLower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(modelLower, "gpt-") || strings.HasPrefix(modelLower, "chatgpt-") || strings.HasPrefix(modelLower, "o1") || strings.HasPrefix(modelLower, "o3") || strings.HasPrefix(modelLower, "o4"):
		return newOpenAI(model, s), nil
	case strings.HasPrefix(modelLower, "claude-"):
		return newClaude(model, s), nil
	case strings.HasPrefix(modelLower, "gemini-"):
		return newGoogle(ctx, model, s)
	default:
		return nil, fmt.Errorf("unsupported model: %s (expected gpt-*, claude-*, or gemini-*)", model)
	}
}
