/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package pipeline composes LLM-backed categorical judges into sequential
stages and parallel layers, executes them against immutable input records,
and exposes each unit's verdict and explanation through a deterministic
addressing scheme.

# Composition

A pipeline is a static, ordered sequence of stages. A unit stage holds one
judge; a layer stage holds siblings that share the same upstream input and
run concurrently:

	quality := pipeline.MustJudgeUnit("QualityJudge",
		pipeline.MustScale("pass", "revise"), qualityPrompt)

	p := pipeline.MustNew("QualityControl",
		pipeline.LayerStage(quality))

# Execution

The executor threads data between stages: every unit in a stage reads the
original record's fields plus the explanation produced by the immediately
preceding stage, and nothing else. Layers synchronize on a barrier before
the next stage starts.

	exec, _ := pipeline.NewExecutor(gen)
	res, err := exec.Run(ctx, p, pipeline.NewRecord(map[string]string{
		"content":      content,
		"requirements": requirements,
	}), pipeline.RunOptions{Graceful: true, MaxWorkers: 1})

In graceful mode a failing unit is recorded in the result and execution
continues; otherwise the first failure aborts the run.

# Addressing

Callers compute a unit's result keys ahead of the run:

	addr, _ := p.AddressOf("QualityJudge")
	verdict, err := res.Get(addr.Key(pipeline.Choice))

See Address for the exact key format.
*/
package pipeline
