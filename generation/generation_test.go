/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generation_test

import (
	"context"
	"strings"
	"testing"

	"chainguard.dev/gavel/generation"
	"chainguard.dev/gavel/generation/retry"
)

func TestNewDispatch(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		wantErr string
	}{{
		name:  "gpt model",
		model: "gpt-4o-mini",
	}, {
		name:  "claude model",
		model: "claude-sonnet-4-20250514",
	}, {
		name:  "case insensitive",
		model: "GPT-4o",
	}, {
		name:    "unknown model",
		model:   "llama-3",
		wantErr: "unsupported model",
	}, {
		name:    "empty model",
		model:   "",
		wantErr: "unsupported model",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := generation.New(context.Background(), tt.model,
				generation.WithAPIKey("test-key"))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gen == nil {
				t.Fatal("expected non-nil generator")
			}
		})
	}
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  generation.Option
	}{{
		name: "zero max tokens",
		opt:  generation.WithMaxTokens(0),
	}, {
		name: "negative max tokens",
		opt:  generation.WithMaxTokens(-1),
	}, {
		name: "temperature too high",
		opt:  generation.WithTemperature(1.5),
	}, {
		name: "temperature negative",
		opt:  generation.WithTemperature(-0.1),
	}, {
		name: "invalid retry config",
		opt:  generation.WithRetryConfig(retry.Config{MaxRetries: -1}),
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := generation.New(context.Background(), "gpt-4o-mini", tt.opt); err == nil {
				t.Error("expected option validation error")
			}
		})
	}
}

func TestFuncAdapter(t *testing.T) {
	gen := generation.Func(func(_ context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	})

	got, err := gen.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "echo: hello" {
		t.Errorf("Generate = %q, want %q", got, "echo: hello")
	}
}
