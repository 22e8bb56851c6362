/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/gavel/generation"
	"chainguard.dev/gavel/promptbuilder"
)

// KindCategoricalJudge is the unit kind embedded in result keys for
// categorical judge units.
const KindCategoricalJudge = "CategoricalJudge"

// CategoricalJudgeUnit wraps one model-backed classification task: given a
// stage context, produce one label from a discrete scale plus an
// explanation. Units are configuration objects, constructed once and reused
// across many invocations; they hold no per-run state.
type CategoricalJudgeUnit struct {
	name        string
	scale       DiscreteScale
	prompt      *promptbuilder.Prompt
	explanation bool
}

// UnitOption is a functional option for configuring a judge unit.
type UnitOption func(*CategoricalJudgeUnit) error

// WithExplanation controls whether the unit contributes an explanation
// output. Defaults to true; prompts for explaining units must instruct the
// model to explain first and classify last, so the explanation is reasoning
// that justifies the label rather than restating it.
func WithExplanation(enabled bool) UnitOption {
	return func(u *CategoricalJudgeUnit) error {
		u.explanation = enabled
		return nil
	}
}

// NewJudgeUnit creates a categorical judge unit. The name must be non-empty
// and unique within any pipeline the unit joins; it becomes part of the
// unit's result keys.
func NewJudgeUnit(name string, scale DiscreteScale, prompt *promptbuilder.Prompt, opts ...UnitOption) (*CategoricalJudgeUnit, error) {
	if name == "" {
		return nil, errors.New("judge unit name cannot be empty")
	}
	if len(scale.labels) == 0 {
		return nil, fmt.Errorf("judge unit %q requires a non-empty scale", name)
	}
	if prompt == nil {
		return nil, fmt.Errorf("judge unit %q requires a prompt", name)
	}
	u := &CategoricalJudgeUnit{
		name:        name,
		scale:       scale,
		prompt:      prompt,
		explanation: true,
	}
	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return u, nil
}

// MustJudgeUnit creates a judge unit and panics on error, for package-level
// pipeline definitions.
func MustJudgeUnit(name string, scale DiscreteScale, prompt *promptbuilder.Prompt, opts ...UnitOption) *CategoricalJudgeUnit {
	u, err := NewJudgeUnit(name, scale, prompt, opts...)
	if err != nil {
		panic(err)
	}
	return u
}

// Name returns the unit's unique name.
func (u *CategoricalJudgeUnit) Name() string { return u.name }

// Scale returns the unit's label scale.
func (u *CategoricalJudgeUnit) Scale() DiscreteScale { return u.scale }

// Kind returns the unit kind embedded in result keys.
func (u *CategoricalJudgeUnit) Kind() string { return KindCategoricalJudge }

// ProducesExplanation reports whether the unit contributes an explanation
// output.
func (u *CategoricalJudgeUnit) ProducesExplanation() bool { return u.explanation }

// evaluate performs one classification: bind the prompt from the stage
// context, make a single generation call, and parse the explain-then-label
// output. Non-idempotent; identical inputs may yield different verdicts.
func (u *CategoricalJudgeUnit) evaluate(ctx context.Context, gen generation.Interface, sc StageContext) (label, explanation string, err error) {
	bound, err := sc.Bind(u.prompt)
	if err != nil {
		return "", "", fmt.Errorf("binding prompt for unit %q: %w", u.name, err)
	}
	prompt, err := bound.Build()
	if err != nil {
		return "", "", fmt.Errorf("building prompt for unit %q: %w", u.name, err)
	}

	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("generation for unit %q: %w", u.name, err)
	}

	label, explanation, err = u.scale.Classify(raw)
	if err != nil {
		return "", "", fmt.Errorf("unit %q: %w", u.name, err)
	}
	if u.explanation && explanation == "" {
		return "", "", fmt.Errorf("unit %q: %w: output contained a label but no explanation", u.name, ErrInvalidLabel)
	}
	if !u.explanation {
		explanation = ""
	}
	return label, explanation, nil
}
