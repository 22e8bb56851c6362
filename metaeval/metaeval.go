/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metaeval audits quality control verdicts. A meta judge rates
// how trustworthy a prior assessment was, and a failure analyzer
// classifies the failure pattern. Both stages always run, so healthy
// assessments still receive a failure-mode reading that callers can
// treat as a baseline.
package metaeval

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/gavel/pipeline"
)

const (
	// PipelineName identifies the meta-evaluation pipeline in result keys.
	PipelineName = "QCEvaluator"

	// MetaJudgeName is the unit rating assessment reliability.
	MetaJudgeName = "MetaJudge"

	// FailureAnalyzerName is the unit classifying the failure pattern.
	FailureAnalyzerName = "FailureAnalyzer"
)

// Reliability labels produced by the meta judge.
const (
	Reliable     = "reliable"
	Questionable = "questionable"
	Failure      = "failure"
)

// Failure-mode labels produced by the failure analyzer.
const (
	Systematic = "systematic"
	Contextual = "contextual"
	Random     = "random"
)

// Review is the quality control outcome being audited.
type Review struct {
	// Content is the material the original judge assessed.
	Content string

	// Assessment is the original judge's explanation.
	Assessment string

	// Decision is the original judge's verdict label.
	Decision string

	// Requirements are the standards the content was judged against.
	Requirements string
}

// Report is the outcome of auditing a Review.
type Report struct {
	// Reliability is one of Reliable, Questionable, or Failure.
	Reliability string

	// ReliabilityAnalysis is the meta judge's reasoning.
	ReliabilityAnalysis string

	// FailureMode is one of Systematic, Contextual, or Random.
	FailureMode string

	// FailureAnalysis is the failure analyzer's reasoning.
	FailureAnalysis string

	// Result holds the raw pipeline outcomes for key-based access.
	Result *pipeline.Result
}

// NewPipeline builds the two-stage meta-evaluation pipeline. The
// failure analyzer consumes the meta judge's explanation through the
// cross-stage channel.
func NewPipeline() (*pipeline.Pipeline, error) {
	meta, err := pipeline.NewJudgeUnit(MetaJudgeName,
		pipeline.MustScale(Reliable, Questionable, Failure),
		metaJudgePrompt)
	if err != nil {
		return nil, fmt.Errorf("creating meta judge: %w", err)
	}
	analyzer, err := pipeline.NewJudgeUnit(FailureAnalyzerName,
		pipeline.MustScale(Systematic, Contextual, Random),
		failureAnalyzerPrompt)
	if err != nil {
		return nil, fmt.Errorf("creating failure analyzer: %w", err)
	}
	return pipeline.New(PipelineName,
		pipeline.LayerStage(meta),
		pipeline.LayerStage(analyzer))
}

// Evaluator audits quality control verdicts.
type Evaluator struct {
	exec *pipeline.Executor
	p    *pipeline.Pipeline

	metaAddr     pipeline.Address
	analyzerAddr pipeline.Address
}

// NewEvaluator builds an Evaluator on top of exec.
func NewEvaluator(exec *pipeline.Executor) (*Evaluator, error) {
	if exec == nil {
		return nil, errors.New("executor cannot be nil")
	}
	p, err := NewPipeline()
	if err != nil {
		return nil, err
	}
	metaAddr, ok := p.AddressOf(MetaJudgeName)
	if !ok {
		return nil, fmt.Errorf("pipeline %q has no unit %q", PipelineName, MetaJudgeName)
	}
	analyzerAddr, ok := p.AddressOf(FailureAnalyzerName)
	if !ok {
		return nil, fmt.Errorf("pipeline %q has no unit %q", PipelineName, FailureAnalyzerName)
	}
	return &Evaluator{
		exec:         exec,
		p:            p,
		metaAddr:     metaAddr,
		analyzerAddr: analyzerAddr,
	}, nil
}

// Evaluate runs both stages against the review. The failure analyzer
// runs regardless of the reliability verdict.
func (e *Evaluator) Evaluate(ctx context.Context, review Review) (*Report, error) {
	log := clog.FromContext(ctx).With("pipeline", PipelineName)

	record := pipeline.NewRecord(map[string]string{
		"content":        review.Content,
		"qc_assessment":  review.Assessment,
		"qc_decision":    review.Decision,
		"requirements":   review.Requirements,
	})
	result, err := e.exec.Run(ctx, e.p, record, pipeline.RunOptions{
		Graceful:   true,
		MaxWorkers: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", PipelineName, err)
	}

	reliability, err := result.Choice(e.metaAddr)
	if err != nil {
		return nil, fmt.Errorf("reading reliability verdict: %w", err)
	}
	reliabilityAnalysis, err := result.Explanation(e.metaAddr)
	if err != nil {
		return nil, fmt.Errorf("reading reliability analysis: %w", err)
	}
	mode, err := result.Choice(e.analyzerAddr)
	if err != nil {
		return nil, fmt.Errorf("reading failure mode: %w", err)
	}
	failureAnalysis, err := result.Explanation(e.analyzerAddr)
	if err != nil {
		return nil, fmt.Errorf("reading failure analysis: %w", err)
	}

	log.Infof("meta-evaluation complete: reliability=%s mode=%s", reliability, mode)
	return &Report{
		Reliability:         reliability,
		ReliabilityAnalysis: reliabilityAnalysis,
		FailureMode:         mode,
		FailureAnalysis:     failureAnalysis,
		Result:              result,
	}, nil
}
