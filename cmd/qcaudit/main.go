/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main audits a quality control verdict with the
// meta-evaluation pipeline and prints the reliability rating and
// failure-mode classification.
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
	"chainguard.dev/gavel/metaeval"
	"chainguard.dev/gavel/metrics"
	"chainguard.dev/gavel/pipeline"
)

// The demo review shows a reviewer passing chemistry content with an
// unbalanced equation. Na + Cl -> NaCl should be 2Na + Cl2 -> 2NaCl.
const (
	content = `Subject: Chemistry
Grade Level: 9th Grade
Topic: Chemical Reactions

Content: Chemical reactions occur when atoms rearrange to form new substances.
The reaction can be shown using chemical equations where reactants form products.
For example: Na + Cl -> NaCl

Learning Outcomes:
1. Understand basic chemical reactions
2. Learn to write chemical equations
3. Identify reactants and products`

	assessment = `The content provides a clear introduction to chemical reactions.
The explanation is grade-appropriate and includes a practical example.
The learning outcomes align with the content.
Recommended for use in 9th-grade chemistry.`

	decision = "pass"

	requirements = `Chemistry content requirements:
1. Scientific accuracy in all concepts
2. Proper chemical equation notation
3. Balance in all equations
4. Safety considerations
5. Common misconception prevention
6. Clear learning progression`
)

type config struct {
	APIKey string `env:"OPENAI_API_KEY,required"`
	Model  string `env:"MODEL,default=gpt-4o-mini"`
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
	ev, err := metaeval.NewEvaluator(exec)
	if err != nil {
		clog.FatalContextf(ctx, "creating evaluator: %v", err)
	}

	clog.InfoContextf(ctx, "Auditing quality control assessment with model %s", cfg.Model)
	report, err := ev.Evaluate(ctx, metaeval.Review{
		Content:      content,
		Assessment:   assessment,
		Decision:     decision,
		Requirements: requirements,
	})
	if err != nil {
		clog.FatalContextf(ctx, "meta-evaluation: %v", err)
	}

	fmt.Printf("Reliability: %s\n", report.Reliability)
	fmt.Println("\nDetailed Analysis:")
	fmt.Println(report.ReliabilityAnalysis)
	fmt.Printf("\nFailure Mode: %s\n", report.FailureMode)
	fmt.Println("\nFailure Analysis:")
	fmt.Println(report.FailureAnalysis)

	if report.Reliability == metaeval.Failure {
		clog.WarnContextf(ctx, "quality control system failure detected")
		os.Exit(1)
	}
}
