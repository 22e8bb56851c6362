/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chainguard.dev/gavel/promptbuilder"
)

func TestRecordCopiesFields(t *testing.T) {
	fields := map[string]string{"content": "original"}
	rec := NewRecord(fields)

	fields["content"] = "mutated"
	fields["extra"] = "sneaky"

	if v, _ := rec.Field("content"); v != "original" {
		t.Errorf("Field(content) = %q, want %q", v, "original")
	}
	if _, ok := rec.Field("extra"); ok {
		t.Error("record picked up a field added after construction")
	}
}

func TestRecordNames(t *testing.T) {
	rec := NewRecord(map[string]string{
		"requirements": "r",
		"content":      "c",
		"scenario":     "s",
	})
	want := []string{"content", "requirements", "scenario"}
	if diff := cmp.Diff(want, rec.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestStageContextBind(t *testing.T) {
	rec := NewRecord(map[string]string{
		"content":      "photosynthesis lesson",
		"requirements": "accuracy",
	})

	t.Run("binds record fields", func(t *testing.T) {
		sc := NewStageContext(rec, "")
		p := promptbuilder.MustNewPrompt(`Review {{content}} against {{requirements}}.`)
		bound, err := sc.Bind(p)
		if err != nil {
			t.Fatalf("Bind: %v", err)
		}
		got, err := bound.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if want := "Review photosynthesis lesson against accuracy."; got != want {
			t.Errorf("Build = %q, want %q", got, want)
		}
	})

	t.Run("binds previous explanation", func(t *testing.T) {
		sc := NewStageContext(rec, "the equation is unbalanced")
		p := promptbuilder.MustNewPrompt(`Prior analysis: {{previous_explanation}}`)
		bound, err := sc.Bind(p)
		if err != nil {
			t.Fatalf("Bind: %v", err)
		}
		got, err := bound.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if want := "Prior analysis: the equation is unbalanced"; got != want {
			t.Errorf("Build = %q, want %q", got, want)
		}
	})

	t.Run("missing field fails", func(t *testing.T) {
		sc := NewStageContext(rec, "")
		p := promptbuilder.MustNewPrompt(`{{qc_decision}}`)
		if _, err := sc.Bind(p); err == nil || !strings.Contains(err.Error(), "qc_decision") {
			t.Fatalf("expected missing-field error naming qc_decision, got %v", err)
		}
	})
}
