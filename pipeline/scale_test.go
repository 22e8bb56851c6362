/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestNewScale(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		wantErr string
	}{{
		name:   "valid",
		labels: []string{"pass", "revise"},
	}, {
		name:    "empty",
		labels:  nil,
		wantErr: "at least one label",
	}, {
		name:    "blank label",
		labels:  []string{"pass", "  "},
		wantErr: "non-empty",
	}, {
		name:    "duplicate ignoring case",
		labels:  []string{"pass", "PASS"},
		wantErr: "duplicate",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScale(tt.labels...)
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

func TestScaleMatch(t *testing.T) {
	s := MustScale("reliable", "questionable", "failure")

	tests := []struct {
		raw   string
		want  string
		match bool
	}{
		{"reliable", "reliable", true},
		{"RELIABLE", "reliable", true},
		{"  Questionable  ", "questionable", true},
		{"unreliable", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := s.Match(tt.raw)
		if ok != tt.match || got != tt.want {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.match)
		}
	}
}

func TestScaleClassify(t *testing.T) {
	s := MustScale("pass", "revise")

	tests := []struct {
		name        string
		raw         string
		wantLabel   string
		wantExplain string
		wantErr     bool
	}{{
		name:        "explanation then label",
		raw:         "The content is accurate and complete.\n\npass",
		wantLabel:   "pass",
		wantExplain: "The content is accurate and complete.",
	}, {
		name:        "label with decoration",
		raw:         "The equation is unbalanced.\n\nVerdict: revise",
		wantLabel:   "revise",
		wantExplain: "The equation is unbalanced.",
	}, {
		name:        "case insensitive",
		raw:         "Looks good.\nPASS",
		wantLabel:   "pass",
		wantExplain: "Looks good.",
	}, {
		name:      "bare label no explanation",
		raw:       "pass",
		wantLabel: "pass",
	}, {
		name:        "last label wins",
		raw:         "It could pass with edits, but overall it must be revised.\n- revise",
		wantLabel:   "revise",
		wantExplain: "It could pass with edits, but overall it must be revised.",
	}, {
		name:    "label only inside larger word",
		raw:     "This passage needs work.",
		wantErr: true,
	}, {
		name:    "no label at all",
		raw:     "I cannot decide.",
		wantErr: true,
	}, {
		name:    "empty output",
		raw:     "",
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, explanation, err := s.Classify(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLabel) {
					t.Fatalf("expected ErrInvalidLabel, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if label != tt.wantLabel {
				t.Errorf("label = %q, want %q", label, tt.wantLabel)
			}
			if explanation != tt.wantExplain {
				t.Errorf("explanation = %q, want %q", explanation, tt.wantExplain)
			}
		})
	}
}
