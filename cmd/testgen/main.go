/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main generates an educational test case from a scenario and
// prints the draft alongside the generator's self-assessment.
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
	"chainguard.dev/gavel/testgen"
)

type config struct {
	APIKey   string `env:"OPENAI_API_KEY,required"`
	Model    string `env:"MODEL,default=gpt-4o-mini"`
	Scenario string `env:"SCENARIO"`
}

const defaultScenario = "Create a math problem that tests fraction addition but has subtle conceptual gaps"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}
	if cfg.Scenario == "" {
		cfg.Scenario = defaultScenario
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
	tg, err := testgen.NewGenerator(exec)
	if err != nil {
		clog.FatalContextf(ctx, "creating generator: %v", err)
	}

	clog.InfoContextf(ctx, "Generating test case with model %s", cfg.Model)
	c, err := tg.Generate(ctx, cfg.Scenario)
	if err != nil {
		clog.FatalContextf(ctx, "generating test case: %v", err)
	}

	fmt.Printf("Scenario: %s\n", c.Scenario)
	fmt.Println("\nTest Case:")
	fmt.Println(c.Reasoning)
	fmt.Printf("\nself-assessment: %s\n", c.Label)

	if c.Label != testgen.Valid {
		clog.WarnContextf(ctx, "generator marked its own draft invalid")
		os.Exit(1)
	}
}
