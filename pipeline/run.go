/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"chainguard.dev/gavel/generation"
	"chainguard.dev/gavel/metrics"
)

// Executor runs composed pipelines against input records. It holds the
// generation backend and optional metrics; all per-run state lives in the
// Result, so one executor serves concurrent invocations.
type Executor struct {
	gen     generation.Interface
	judging *metrics.Judging
}

// ExecutorOption is a functional option for configuring an executor.
type ExecutorOption func(*Executor) error

// WithJudgingMetrics records verdicts and unit failures on the given
// metrics instance.
func WithJudgingMetrics(j *metrics.Judging) ExecutorOption {
	return func(e *Executor) error {
		e.judging = j
		return nil
	}
}

// NewExecutor creates an executor backed by the given generation capability.
func NewExecutor(gen generation.Interface, opts ...ExecutorOption) (*Executor, error) {
	if gen == nil {
		return nil, errors.New("generation backend cannot be nil")
	}
	e := &Executor{gen: gen}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

// RunOptions controls one pipeline invocation.
type RunOptions struct {
	// Graceful records per-unit failures in the result and keeps
	// executing. When false, the first failure aborts the run and no
	// result map is produced.
	Graceful bool
	// MaxWorkers bounds how many of a layer's units run concurrently.
	// Values below 1 are treated as 1.
	MaxWorkers int
	// CallTimeout bounds each generation call. On expiry the unit fails
	// exactly as if generation had failed. Zero disables the bound.
	CallTimeout time.Duration
}

// Run executes the pipeline against the record. Stages run strictly in
// declared order with a synchronization barrier between them; a layer's
// units run concurrently up to MaxWorkers, and outcomes are collected by
// unit name so the result is identical regardless of completion order.
// A pipeline with zero stages returns an empty, non-nil result.
func (e *Executor) Run(ctx context.Context, p *Pipeline, record Record, opts RunOptions) (*Result, error) {
	log := clog.FromContext(ctx).With("pipeline", p.name)

	totalUnits := 0
	for _, stage := range p.stages {
		totalUnits += len(stage.units)
	}
	res := newResult(totalUnits)

	workers := opts.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	previousExplanation := ""
	for stageIdx, stage := range p.stages {
		sc := NewStageContext(record, previousExplanation)
		outcomes := make([]Outcome, len(stage.units))

		g, gctx := errgroup.WithContext(ctx)
		if stage.layered {
			g.SetLimit(workers)
		} else {
			g.SetLimit(1)
		}

		for i, u := range stage.units {
			addr := Address{
				Pipeline: p.name,
				Stage:    stageIdx,
				Layered:  stage.layered,
				Kind:     u.Kind(),
				Unit:     u.name,
			}
			g.Go(func() error {
				callCtx := gctx
				if opts.CallTimeout > 0 {
					var cancel context.CancelFunc
					callCtx, cancel = context.WithTimeout(gctx, opts.CallTimeout)
					defer cancel()
				}

				label, explanation, err := u.evaluate(callCtx, e.gen, sc)
				if err != nil {
					log.With("unit", u.name).
						With("stage", stageIdx).
						With("error", err.Error()).
						Error("Judge unit failed")
					if e.judging != nil {
						e.judging.RecordFailure(ctx, p.name, u.name, failureReason(err))
					}
					outcomes[i] = Outcome{Address: addr, Err: err}
					if !opts.Graceful {
						return fmt.Errorf("unit %q in stage %d: %w", u.name, stageIdx, err)
					}
					return nil
				}

				if e.judging != nil {
					e.judging.RecordVerdict(ctx, p.name, u.name, label)
				}
				outcomes[i] = Outcome{Address: addr, Choice: label, Explanation: explanation}
				return nil
			})
		}

		// Barrier: the next stage never starts until every unit in this
		// stage has completed.
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var explanations []string
		for _, o := range outcomes {
			res.add(o)
			if o.Err == nil && o.Explanation != "" {
				explanations = append(explanations, o.Explanation)
			}
		}
		// The sole cross-stage channel. A multi-unit layer's explanations
		// are joined in declared unit order, so downstream context is
		// deterministic under any MaxWorkers value.
		previousExplanation = strings.Join(explanations, "\n\n")
	}

	log.With("units", res.Len()).
		With("failures", len(res.failed)).
		Info("Pipeline run complete")
	return res, nil
}

// failureReason classifies a unit failure for metrics labeling.
func failureReason(err error) string {
	if errors.Is(err, ErrInvalidLabel) {
		return "invalid_label"
	}
	return "generation_failure"
}
