/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaeval_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainguard.dev/gavel/generation"
	"chainguard.dev/gavel/metaeval"
	"chainguard.dev/gavel/pipeline"
)

func TestNewPipelineShape(t *testing.T) {
	p, err := metaeval.NewPipeline()
	require.NoError(t, err)
	assert.Equal(t, metaeval.PipelineName, p.Name())
	require.Len(t, p.Stages(), 2)

	for _, tc := range []struct {
		unit string
		want string
	}{{
		unit: metaeval.MetaJudgeName,
		want: "QCEvaluator_root.block.layer[0].unit[CategoricalJudge MetaJudge]_choice",
	}, {
		unit: metaeval.FailureAnalyzerName,
		want: "QCEvaluator_root.block.layer[1].unit[CategoricalJudge FailureAnalyzer]_choice",
	}} {
		addr, ok := p.AddressOf(tc.unit)
		require.True(t, ok, "no address for %q", tc.unit)
		assert.Equal(t, tc.want, addr.Key(pipeline.Choice))
	}
}

// router answers the meta judge and failure analyzer from canned
// scripts, verifying along the way that each stage's prompt carries the
// bindings it is supposed to see.
func router(metaOut string) generation.Interface {
	return generation.Func(func(_ context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Evaluate the reliability"):
			for _, want := range []string{"the original draft", "looks thorough", "pass", "mention oxygen"} {
				if !strings.Contains(prompt, want) {
					return "", errors.New("meta prompt missing " + want)
				}
			}
			return metaOut, nil
		case strings.Contains(prompt, "Analyze the type"):
			// Stage two sees stage one's explanation, not its label.
			if !strings.Contains(prompt, "The assessment skipped the oxygen requirement.") {
				return "", errors.New("analyzer prompt missing meta explanation")
			}
			return "The same requirement is skipped every time.\n\nsystematic", nil
		default:
			return "", errors.New("unexpected prompt")
		}
	})
}

func TestEvaluate(t *testing.T) {
	gen := router("The assessment skipped the oxygen requirement.\n\nquestionable")
	exec, err := pipeline.NewExecutor(gen)
	require.NoError(t, err)
	ev, err := metaeval.NewEvaluator(exec)
	require.NoError(t, err)

	report, err := ev.Evaluate(context.Background(), metaeval.Review{
		Content:      "the original draft",
		Assessment:   "looks thorough",
		Decision:     "pass",
		Requirements: "mention oxygen",
	})
	require.NoError(t, err)
	assert.Equal(t, metaeval.Questionable, report.Reliability)
	assert.Equal(t, "The assessment skipped the oxygen requirement.", report.ReliabilityAnalysis)
	assert.Equal(t, metaeval.Systematic, report.FailureMode)
	assert.Equal(t, "The same requirement is skipped every time.", report.FailureAnalysis)
	require.NotNil(t, report.Result)
	assert.Equal(t, 2, report.Result.Len())
}

// The failure analyzer runs even when the meta judge found nothing
// wrong, so every report carries a failure-mode baseline.
func TestEvaluateAnalyzesReliableAssessments(t *testing.T) {
	calls := 0
	gen := generation.Func(func(_ context.Context, prompt string) (string, error) {
		calls++
		if strings.Contains(prompt, "Evaluate the reliability") {
			return "The assessment skipped the oxygen requirement.\n\nreliable", nil
		}
		return "No recurring pattern across assessments.\n\nrandom", nil
	})
	exec, err := pipeline.NewExecutor(gen)
	require.NoError(t, err)
	ev, err := metaeval.NewEvaluator(exec)
	require.NoError(t, err)

	report, err := ev.Evaluate(context.Background(), metaeval.Review{Content: "draft"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, metaeval.Reliable, report.Reliability)
	assert.Equal(t, metaeval.Random, report.FailureMode)
}

func TestEvaluateSurfacesMetaJudgeFailure(t *testing.T) {
	gen := generation.Func(func(context.Context, string) (string, error) {
		return "", errors.New("model unavailable")
	})
	exec, err := pipeline.NewExecutor(gen)
	require.NoError(t, err)
	ev, err := metaeval.NewEvaluator(exec)
	require.NoError(t, err)

	_, err = ev.Evaluate(context.Background(), metaeval.Review{Content: "draft"})
	require.ErrorIs(t, err, pipeline.ErrMissingResult)
}

func TestNewEvaluatorValidation(t *testing.T) {
	_, err := metaeval.NewEvaluator(nil)
	require.Error(t, err)
}
