/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package refine drives the bounded evaluate/regenerate cycle that pushes
// content toward a passing verdict: evaluate the current content, stop on
// an accepting verdict, otherwise regenerate from the judge's feedback and
// re-evaluate, up to a configured iteration budget.
package refine

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/gavel/pipeline"
)

// State is a refinement loop state. The loop starts in StateEvaluating and
// terminates in exactly one of StatePassed, StateExhausted, or StateAborted.
type State string

const (
	// StateEvaluating means a quality pipeline run is in progress.
	StateEvaluating State = "EVALUATING"
	// StatePassed means the judge accepted the current content. Terminal.
	StatePassed State = "PASSED"
	// StateRegenerating means the improvement capability is producing a
	// new revision from the judge's feedback.
	StateRegenerating State = "REGENERATING"
	// StateExhausted means the iteration budget ran out with the judge
	// still asking for revisions. Terminal, and a reported outcome rather
	// than an error.
	StateExhausted State = "EXHAUSTED"
	// StateAborted means evaluation or regeneration itself failed and the
	// loop stopped early. Terminal.
	StateAborted State = "ABORTED"
)

// Verdict is one evaluation's top-level outcome: the judge's label, its
// explanation, and the full pipeline result for callers that want more.
type Verdict struct {
	Label       string
	Explanation string
	Result      *pipeline.Result
}

// Evaluator runs the quality pipeline against a piece of content and
// surfaces the top-level verdict.
type Evaluator interface {
	Evaluate(ctx context.Context, content string) (*Verdict, error)
}

// Improver is the external improvement capability: given content and the
// judge's feedback, produce a revised version.
type Improver interface {
	Improve(ctx context.Context, content, feedback string) (string, error)
}

// Config bounds and labels the refinement loop.
type Config struct {
	// MaxIterations is the evaluation budget. Must be at least 1.
	MaxIterations int
	// AcceptLabel is the verdict that terminates the loop successfully.
	// Defaults to "pass".
	AcceptLabel string
	// ReviseLabel is the verdict that triggers regeneration. Defaults to
	// "revise".
	ReviseLabel string
}

// withDefaults fills unset labels.
func (c Config) withDefaults() Config {
	if c.AcceptLabel == "" {
		c.AcceptLabel = "pass"
	}
	if c.ReviseLabel == "" {
		c.ReviseLabel = "revise"
	}
	return c
}

// Outcome is the loop's terminal result. Content holds the accepted text
// for StatePassed and the last attempted revision otherwise; Verdict holds
// the final evaluation, including the failing one for StateExhausted.
type Outcome struct {
	State      State
	Iterations int
	Content    string
	Verdict    *Verdict
}

// Loop is a refinement loop controller. It runs strictly sequentially:
// each cycle depends on the previous cycle's output, so there is no
// intra-loop concurrency.
type Loop struct {
	evaluator Evaluator
	improver  Improver
	cfg       Config
}

// NewLoop creates a refinement loop from an evaluator, an improver, and a
// config.
func NewLoop(evaluator Evaluator, improver Improver, cfg Config) (*Loop, error) {
	if evaluator == nil {
		return nil, errors.New("evaluator cannot be nil")
	}
	if improver == nil {
		return nil, errors.New("improver cannot be nil")
	}
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("max iterations must be at least 1, got %d", cfg.MaxIterations)
	}
	return &Loop{evaluator: evaluator, improver: improver, cfg: cfg.withDefaults()}, nil
}

// Run drives the loop to a terminal state. Every cycle either terminates or
// produces new content: the same text is never judged twice in a row. On
// StateAborted the returned error describes the failure and the Outcome
// records how far the loop got.
func (l *Loop) Run(ctx context.Context, content string) (*Outcome, error) {
	log := clog.FromContext(ctx)
	current := content

	for iteration := 1; iteration <= l.cfg.MaxIterations; iteration++ {
		log.With("iteration", iteration).
			With("state", StateEvaluating).
			Info("Evaluating content")

		verdict, err := l.evaluator.Evaluate(ctx, current)
		if err != nil {
			return &Outcome{State: StateAborted, Iterations: iteration, Content: current},
				fmt.Errorf("evaluating content (iteration %d): %w", iteration, err)
		}

		switch verdict.Label {
		case l.cfg.AcceptLabel:
			log.With("iteration", iteration).Info("Content passed quality control")
			return &Outcome{State: StatePassed, Iterations: iteration, Content: current, Verdict: verdict}, nil

		case l.cfg.ReviseLabel:
			if iteration == l.cfg.MaxIterations {
				log.With("iteration", iteration).
					With("max_iterations", l.cfg.MaxIterations).
					Warn("Iteration budget exhausted without passing")
				return &Outcome{State: StateExhausted, Iterations: iteration, Content: current, Verdict: verdict}, nil
			}

			log.With("iteration", iteration).
				With("state", StateRegenerating).
				Info("Regenerating content from feedback")
			improved, err := l.improver.Improve(ctx, current, verdict.Explanation)
			if err != nil {
				return &Outcome{State: StateAborted, Iterations: iteration, Content: current, Verdict: verdict},
					fmt.Errorf("improving content (iteration %d): %w", iteration, err)
			}
			if improved == "" {
				return &Outcome{State: StateAborted, Iterations: iteration, Content: current, Verdict: verdict},
					fmt.Errorf("improving content (iteration %d): improver returned empty content", iteration)
			}
			current = improved

		default:
			return &Outcome{State: StateAborted, Iterations: iteration, Content: current, Verdict: verdict},
				fmt.Errorf("unexpected verdict %q (want %q or %q)", verdict.Label, l.cfg.AcceptLabel, l.cfg.ReviseLabel)
		}
	}

	// Unreachable: every iteration either returns or continues, and the
	// final iteration always returns.
	return nil, errors.New("refinement loop exited without a terminal state")
}
