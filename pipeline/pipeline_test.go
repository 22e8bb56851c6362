/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"strings"
	"testing"

	"chainguard.dev/gavel/promptbuilder"
)

func testUnit(t *testing.T, name string) *CategoricalJudgeUnit {
	t.Helper()
	u, err := NewJudgeUnit(name,
		MustScale("pass", "revise"),
		promptbuilder.MustNewPrompt(`Review {{content}}.`))
	if err != nil {
		t.Fatalf("NewJudgeUnit(%s): %v", name, err)
	}
	return u
}

func TestNewPipelineValidation(t *testing.T) {
	a := testUnit(t, "A")
	b := testUnit(t, "B")

	tests := []struct {
		name    string
		pname   string
		stages  []Stage
		wantErr string
	}{{
		name:   "valid sequential",
		pname:  "P",
		stages: []Stage{UnitStage(a), UnitStage(b)},
	}, {
		name:   "valid layer",
		pname:  "P",
		stages: []Stage{LayerStage(a, b)},
	}, {
		name:   "zero stages",
		pname:  "P",
		stages: nil,
	}, {
		name:    "empty name",
		pname:   "",
		stages:  []Stage{UnitStage(a)},
		wantErr: "name cannot be empty",
	}, {
		name:    "empty layer",
		pname:   "P",
		stages:  []Stage{LayerStage()},
		wantErr: "no units",
	}, {
		name:    "nil unit",
		pname:   "P",
		stages:  []Stage{LayerStage(a, nil)},
		wantErr: "nil unit",
	}, {
		name:    "duplicate names across stages",
		pname:   "P",
		stages:  []Stage{UnitStage(a), UnitStage(a)},
		wantErr: "duplicate unit name",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.pname, tt.stages...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewJudgeUnitValidation(t *testing.T) {
	scale := MustScale("pass", "revise")
	prompt := promptbuilder.MustNewPrompt(`{{content}}`)

	if _, err := NewJudgeUnit("", scale, prompt); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := NewJudgeUnit("U", DiscreteScale{}, prompt); err == nil {
		t.Error("expected error for empty scale")
	}
	if _, err := NewJudgeUnit("U", scale, nil); err == nil {
		t.Error("expected error for nil prompt")
	}

	u, err := NewJudgeUnit("U", scale, prompt, WithExplanation(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ProducesExplanation() {
		t.Error("expected explanation disabled")
	}
}

func TestAddressKeys(t *testing.T) {
	// The key format is load-bearing: callers compute keys before a run.
	tests := []struct {
		name string
		addr Address
		f    Field
		want string
	}{{
		name: "layer choice",
		addr: Address{Pipeline: "QCEvaluator", Stage: 0, Layered: true, Kind: KindCategoricalJudge, Unit: "MetaJudge"},
		f:    Choice,
		want: "QCEvaluator_root.block.layer[0].unit[CategoricalJudge MetaJudge]_choice",
	}, {
		name: "layer explanation second stage",
		addr: Address{Pipeline: "QCEvaluator", Stage: 1, Layered: true, Kind: KindCategoricalJudge, Unit: "FailureAnalyzer"},
		f:    Explanation,
		want: "QCEvaluator_root.block.layer[1].unit[CategoricalJudge FailureAnalyzer]_explanation",
	}, {
		name: "unit stage choice",
		addr: Address{Pipeline: "TestGenerator", Stage: 0, Layered: false, Kind: KindCategoricalJudge, Unit: "Generator"},
		f:    Choice,
		want: "TestGenerator_root.block.unit[CategoricalJudge Generator]_choice",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.Key(tt.f); got != tt.want {
				t.Errorf("Key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddressOf(t *testing.T) {
	a := testUnit(t, "A")
	b := testUnit(t, "B")
	c := testUnit(t, "C")
	p := MustNew("P", UnitStage(a), LayerStage(b, c))

	addr, ok := p.AddressOf("C")
	if !ok {
		t.Fatal("expected to find unit C")
	}
	want := Address{Pipeline: "P", Stage: 1, Layered: true, Kind: KindCategoricalJudge, Unit: "C"}
	if addr != want {
		t.Errorf("AddressOf(C) = %+v, want %+v", addr, want)
	}

	if _, ok := p.AddressOf("missing"); ok {
		t.Error("expected no address for unknown unit")
	}
}
