/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package quality assembles the content quality-control pipeline: one
// categorical judge that either passes educational content or demands a
// revision, plus the improver that regenerates content from the judge's
// feedback. The refine package drives the two in a loop.
package quality

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/gavel/generation"
	"chainguard.dev/gavel/pipeline"
	"chainguard.dev/gavel/refine"
)

const (
	// PipelineName is the quality-control pipeline name, the first
	// component of its result keys.
	PipelineName = "QualityControl"
	// JudgeName is the quality judge's unit name.
	JudgeName = "QualityJudge"

	// VerdictPass accepts the content as meeting standards.
	VerdictPass = "pass"
	// VerdictRevise demands a revision; the explanation says what to fix.
	VerdictRevise = "revise"
)

// NewPipeline composes the quality-control pipeline: a single layer
// holding the quality judge.
func NewPipeline() (*pipeline.Pipeline, error) {
	judge, err := pipeline.NewJudgeUnit(JudgeName,
		pipeline.MustScale(VerdictPass, VerdictRevise),
		judgePrompt)
	if err != nil {
		return nil, fmt.Errorf("creating quality judge: %w", err)
	}
	return pipeline.New(PipelineName, pipeline.LayerStage(judge))
}

// Evaluator runs the quality pipeline against content and surfaces the
// top-level verdict. It implements refine.Evaluator.
type Evaluator struct {
	exec         *pipeline.Executor
	p            *pipeline.Pipeline
	requirements string
	addr         pipeline.Address
}

// NewEvaluator creates an evaluator that judges content against the given
// requirements.
func NewEvaluator(exec *pipeline.Executor, requirements string) (*Evaluator, error) {
	if exec == nil {
		return nil, errors.New("executor cannot be nil")
	}
	p, err := NewPipeline()
	if err != nil {
		return nil, err
	}
	addr, ok := p.AddressOf(JudgeName)
	if !ok {
		return nil, fmt.Errorf("pipeline %q has no unit %q", PipelineName, JudgeName)
	}
	return &Evaluator{exec: exec, p: p, requirements: requirements, addr: addr}, nil
}

// Evaluate implements refine.Evaluator. The pipeline runs gracefully with
// a single worker; a missing verdict or explanation is an evaluation
// failure, never a silent empty result.
func (e *Evaluator) Evaluate(ctx context.Context, content string) (*refine.Verdict, error) {
	record := pipeline.NewRecord(map[string]string{
		"content":      content,
		"requirements": e.requirements,
	})

	res, err := e.exec.Run(ctx, e.p, record, pipeline.RunOptions{Graceful: true, MaxWorkers: 1})
	if err != nil {
		return nil, fmt.Errorf("running quality pipeline: %w", err)
	}

	verdict, err := res.Choice(e.addr)
	if err != nil {
		clog.FromContext(ctx).With("keys", res.Keys()).Error("Quality verdict missing from result")
		return nil, fmt.Errorf("quality verdict: %w", err)
	}
	explanation, err := res.Explanation(e.addr)
	if err != nil {
		return nil, fmt.Errorf("quality explanation: %w", err)
	}

	return &refine.Verdict{Label: verdict, Explanation: explanation, Result: res}, nil
}

// Improver regenerates content from reviewer feedback using the external
// generation capability. It implements refine.Improver.
type Improver struct {
	gen generation.Interface
}

// NewImprover creates an improver backed by the given generation capability.
func NewImprover(gen generation.Interface) (*Improver, error) {
	if gen == nil {
		return nil, errors.New("generation backend cannot be nil")
	}
	return &Improver{gen: gen}, nil
}

// Improve implements refine.Improver.
func (i *Improver) Improve(ctx context.Context, content, feedback string) (string, error) {
	p, err := improvePrompt.BindText("content", content)
	if err != nil {
		return "", err
	}
	p, err = p.BindText("feedback", feedback)
	if err != nil {
		return "", err
	}
	prompt, err := p.Build()
	if err != nil {
		return "", err
	}

	improved, err := i.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating improved content: %w", err)
	}
	return improved, nil
}
