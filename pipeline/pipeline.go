/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"errors"
	"fmt"
)

// Stage is one step of a pipeline: either a single unit executed
// sequentially, or a layer of sibling units that share the same upstream
// input and each contribute independently addressable output.
type Stage struct {
	units   []*CategoricalJudgeUnit
	layered bool
}

// UnitStage creates a sequential stage holding a single unit.
func UnitStage(u *CategoricalJudgeUnit) Stage {
	return Stage{units: []*CategoricalJudgeUnit{u}}
}

// LayerStage creates a layer of sibling units. Members never depend on one
// another; only sequential stages may read the preceding stage's
// explanation.
func LayerStage(units ...*CategoricalJudgeUnit) Stage {
	return Stage{units: units, layered: true}
}

// Layered reports whether the stage is a layer.
func (s Stage) Layered() bool { return s.layered }

// Units returns the stage's units in declared order.
func (s Stage) Units() []*CategoricalJudgeUnit {
	out := make([]*CategoricalJudgeUnit, len(s.units))
	copy(out, s.units)
	return out
}

// Pipeline is an ordered sequence of stages, statically composed before any
// run. Pipelines are immutable and safely shared across concurrent
// invocations.
type Pipeline struct {
	name   string
	stages []Stage
}

// New creates a pipeline from its stages. Unit names must be unique across
// the whole pipeline; the name uniqueness is what makes result keys stable
// and unambiguous.
func New(name string, stages ...Stage) (*Pipeline, error) {
	if name == "" {
		return nil, errors.New("pipeline name cannot be empty")
	}
	seen := make(map[string]struct{})
	for i, stage := range stages {
		if len(stage.units) == 0 {
			return nil, fmt.Errorf("stage %d has no units", i)
		}
		for _, u := range stage.units {
			if u == nil {
				return nil, fmt.Errorf("stage %d contains a nil unit", i)
			}
			if _, dup := seen[u.name]; dup {
				return nil, fmt.Errorf("duplicate unit name %q in pipeline %q", u.name, name)
			}
			seen[u.name] = struct{}{}
		}
	}
	return &Pipeline{name: name, stages: stages}, nil
}

// MustNew creates a pipeline and panics on error, for package-level
// pipeline definitions whose shape is known valid at compile time.
func MustNew(name string, stages ...Stage) *Pipeline {
	p, err := New(name, stages...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// Stages returns the pipeline's stages in order.
func (p *Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// AddressOf returns the address of the named unit, letting callers compute
// result keys ahead of a run. The second return reports whether the
// pipeline contains such a unit.
func (p *Pipeline) AddressOf(unitName string) (Address, bool) {
	for stageIdx, stage := range p.stages {
		for _, u := range stage.units {
			if u.name == unitName {
				return Address{
					Pipeline: p.name,
					Stage:    stageIdx,
					Layered:  stage.layered,
					Kind:     u.Kind(),
					Unit:     u.name,
				}, true
			}
		}
	}
	return Address{}, false
}
