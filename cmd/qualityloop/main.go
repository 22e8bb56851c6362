/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs educational content through the quality-control
// refinement loop until it passes review or the iteration budget runs
// out.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"chainguard.dev/gavel/generation"
	"chainguard.dev/gavel/metrics"
	"chainguard.dev/gavel/pipeline"
	"chainguard.dev/gavel/quality"
	"chainguard.dev/gavel/refine"
)

// initialContent is a deliberately flawed draft: it never mentions
// carbon dioxide, chlorophyll, or oxygen.
const initialContent = `Subject: Biology
Grade Level: 7th Grade
Topic: Photosynthesis
Content: Photosynthesis is how plants make food. They use sunlight and water to create glucose.
The process happens in the plant's leaves where special cells capture sunlight.
The glucose is then used by the plant for energy or stored for later.

Expected Learning Outcomes:
1. Understand that plants make their own food
2. Know that sunlight is important for plants
3. Learn that glucose is created during photosynthesis`

const requirements = `Educational content requirements:
1. Scientifically accurate explanation of photosynthesis
2. Include all key components (CO2, water, sunlight, chlorophyll)
3. Explain the role of each component
4. Mention both products (glucose and oxygen)
5. Grade-appropriate language for 7th grade
6. Clear learning outcomes`

type config struct {
	APIKey        string `env:"OPENAI_API_KEY,required"`
	Model         string `env:"MODEL,default=gpt-4o-mini"`
	MaxIterations int    `env:"MAX_ITERATIONS,default=5"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	judging := metrics.NewJudging("chainguard.dev/gavel")
	gen, err := generation.New(ctx, cfg.Model,
		generation.WithAPIKey(cfg.APIKey),
		generation.WithMetrics(judging))
	if err != nil {
		clog.FatalContextf(ctx, "creating generation backend: %v", err)
	}
	exec, err := pipeline.NewExecutor(gen, pipeline.WithJudgingMetrics(judging))
	if err != nil {
		clog.FatalContextf(ctx, "creating executor: %v", err)
	}
	evaluator, err := quality.NewEvaluator(exec, requirements)
	if err != nil {
		clog.FatalContextf(ctx, "creating evaluator: %v", err)
	}
	improver, err := quality.NewImprover(gen)
	if err != nil {
		clog.FatalContextf(ctx, "creating improver: %v", err)
	}
	loop, err := refine.NewLoop(evaluator, improver, refine.Config{
		MaxIterations: cfg.MaxIterations,
	})
	if err != nil {
		clog.FatalContextf(ctx, "creating refinement loop: %v", err)
	}

	clog.InfoContextf(ctx, "Starting content improvement with model %s", cfg.Model)
	fmt.Println("Initial Content:")
	fmt.Println(initialContent)

	outcome, err := loop.Run(ctx, initialContent)
	if err != nil {
		clog.FatalContextf(ctx, "refinement loop: %v", err)
	}

	fmt.Printf("\nFinal state: %s after %d iteration(s)\n", outcome.State, outcome.Iterations)
	fmt.Println("\nFinal Content:")
	fmt.Println(outcome.Content)
	if outcome.Verdict != nil {
		fmt.Printf("\nFinal Verdict: %s\n", outcome.Verdict.Label)
		fmt.Println("\nFinal Assessment:")
		fmt.Println(outcome.Verdict.Explanation)
	}

	if outcome.State != refine.StatePassed {
		clog.WarnContextf(ctx, "content did not reach quality standards: %s", outcome.State)
		os.Exit(1)
	}
}
