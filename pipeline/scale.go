/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"fmt"
	"strings"
	"unicode"
)

// DiscreteScale is a finite ordered set of categorical labels a judge unit
// may emit. Matching is case-insensitive against the configured set; output
// that matches no label is a classification failure, never coerced.
type DiscreteScale struct {
	labels []string
	canon  map[string]string
}

// NewScale creates a scale from the given labels, preserving their order.
// Labels must be non-empty and unique ignoring case.
func NewScale(labels ...string) (DiscreteScale, error) {
	if len(labels) == 0 {
		return DiscreteScale{}, fmt.Errorf("scale requires at least one label")
	}
	canon := make(map[string]string, len(labels))
	ordered := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return DiscreteScale{}, fmt.Errorf("scale labels must be non-empty")
		}
		lower := strings.ToLower(label)
		if _, exists := canon[lower]; exists {
			return DiscreteScale{}, fmt.Errorf("duplicate scale label %q", label)
		}
		canon[lower] = label
		ordered = append(ordered, label)
	}
	return DiscreteScale{labels: ordered, canon: canon}, nil
}

// MustScale creates a scale and panics on error, for package-level variables.
func MustScale(labels ...string) DiscreteScale {
	s, err := NewScale(labels...)
	if err != nil {
		panic(err)
	}
	return s
}

// Labels returns the scale's labels in their configured order.
func (s DiscreteScale) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Match canonicalizes raw text to one of the scale's labels, trimming
// whitespace and ignoring case. The second return reports whether the text
// matched any label.
func (s DiscreteScale) Match(raw string) (string, bool) {
	label, ok := s.canon[strings.ToLower(strings.TrimSpace(raw))]
	return label, ok
}

// String renders the scale as its label set, e.g. "{pass, revise}".
func (s DiscreteScale) String() string {
	return "{" + strings.Join(s.labels, ", ") + "}"
}

// Classify parses raw judge output produced under an "explain first, then
// classify" instruction. It scans lines from the end for the last standalone
// occurrence of a scale label; everything above that line is the
// explanation. Output containing no label fails with ErrInvalidLabel.
func (s DiscreteScale) Classify(raw string) (label, explanation string, err error) {
	lines := strings.Split(raw, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if matched, ok := s.matchInLine(lines[i]); ok {
			return matched, strings.TrimSpace(strings.Join(lines[:i], "\n")), nil
		}
	}
	return "", "", fmt.Errorf("%w: no label from %s found in output %q", ErrInvalidLabel, s, truncate(raw, 120))
}

// matchInLine finds the right-most standalone label occurrence in a line.
func (s DiscreteScale) matchInLine(line string) (string, bool) {
	lower := strings.ToLower(line)
	best := -1
	var bestLabel string
	for lowerLabel, label := range s.canon {
		for from := 0; ; {
			idx := strings.Index(lower[from:], lowerLabel)
			if idx == -1 {
				break
			}
			idx += from
			if standaloneAt(lower, idx, len(lowerLabel)) && idx > best {
				best = idx
				bestLabel = label
			}
			from = idx + len(lowerLabel)
		}
	}
	return bestLabel, best >= 0
}

// standaloneAt reports whether the match at [idx, idx+n) is bounded by
// non-word characters, so "pass" does not match inside "passage".
func standaloneAt(s string, idx, n int) bool {
	if idx > 0 {
		if r := rune(s[idx-1]); unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if idx+n < len(s) {
		if r := rune(s[idx+n]); unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
