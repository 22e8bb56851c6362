/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package testgen generates educational test cases from a scenario
// description. A single judge drafts the test case in its explanation
// and labels its own draft valid or invalid, so downstream tooling can
// filter drafts without parsing them.
package testgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/gavel/pipeline"
	"chainguard.dev/gavel/promptbuilder"
)

const (
	// PipelineName identifies the test-generation pipeline in result keys.
	PipelineName = "TestGenerator"
	// GeneratorName is the drafting judge's unit name.
	GeneratorName = "Generator"

	// Valid marks a draft fit for use as a test case.
	Valid = "valid"
	// Invalid marks a draft the generator could not make work.
	Invalid = "invalid"
)

var generatorPrompt = promptbuilder.MustNewPrompt(`Generate an educational test case.

Requirements:
1. Look valid but contain subtle pedagogical issues
2. Be grade-appropriate but challenging
3. Have non-obvious but important issues
4. Include multiple choice options (A-D)
5. Mark the correct answer

Scenario: {{scenario}}

Provide your response in this format:
- Subject: [subject area]
- Grade Level: [target grade]
- Topic: [specific topic]
- Content: [actual content/question]
- Options:
  A) [first option]
  B) [second option]
  C) [third option]
  D) [fourth option]
- Correct Answer: [A/B/C/D]
- Solution Explanation: [explain why this is the correct answer]
- Expected Issues: [list of potential problems]
- Ground Truth Quality: [good/poor]

First explain your reasoning and provide the test case, then end your
response with the single word "valid" or "invalid" on its own line.`)

// Case is a generated test case.
type Case struct {
	// Scenario is the request the case was generated from.
	Scenario string

	// Label is Valid or Invalid, the generator's self-assessment.
	Label string

	// Reasoning holds the drafted test case and the reasoning behind it.
	Reasoning string

	// Result holds the raw pipeline outcomes for key-based access.
	Result *pipeline.Result
}

// NewPipeline composes the test-generation pipeline: the generator as a
// lone unit stage, so its keys use the bare unit form rather than the
// layer form.
func NewPipeline() (*pipeline.Pipeline, error) {
	gen, err := pipeline.NewJudgeUnit(GeneratorName,
		pipeline.MustScale(Valid, Invalid),
		generatorPrompt)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	return pipeline.New(PipelineName, pipeline.UnitStage(gen))
}

// Generator produces test cases from scenarios.
type Generator struct {
	exec *pipeline.Executor
	p    *pipeline.Pipeline
	addr pipeline.Address
}

// NewGenerator builds a Generator on top of exec.
func NewGenerator(exec *pipeline.Executor) (*Generator, error) {
	if exec == nil {
		return nil, errors.New("executor cannot be nil")
	}
	p, err := NewPipeline()
	if err != nil {
		return nil, err
	}
	addr, ok := p.AddressOf(GeneratorName)
	if !ok {
		return nil, fmt.Errorf("pipeline %q has no unit %q", PipelineName, GeneratorName)
	}
	return &Generator{exec: exec, p: p, addr: addr}, nil
}

// Generate drafts a test case for the scenario. An empty or unlabeled
// response is an error, never a silent empty Case.
func (g *Generator) Generate(ctx context.Context, scenario string) (*Case, error) {
	record := pipeline.NewRecord(map[string]string{"scenario": scenario})

	res, err := g.exec.Run(ctx, g.p, record, pipeline.RunOptions{Graceful: true, MaxWorkers: 1})
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", PipelineName, err)
	}

	label, err := res.Choice(g.addr)
	if err != nil {
		clog.FromContext(ctx).With("keys", res.Keys()).Error("Generator verdict missing from result")
		return nil, fmt.Errorf("generator verdict: %w", err)
	}
	reasoning, err := res.Explanation(g.addr)
	if err != nil {
		return nil, fmt.Errorf("generator reasoning: %w", err)
	}

	return &Case{Scenario: scenario, Label: label, Reasoning: reasoning, Result: res}, nil
}
