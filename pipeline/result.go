/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"fmt"
	"sort"
)

// Outcome is the tagged result of one unit's execution: either a verdict
// with its explanation, or a failure with its reason. A successful unit
// with an empty explanation is therefore distinguishable from a unit that
// never ran.
type Outcome struct {
	// Address identifies the unit within the pipeline run.
	Address Address
	// Choice is the categorical verdict. Empty when the unit failed.
	Choice string
	// Explanation is the unit's reasoning. Empty when the unit failed or
	// does not produce explanations.
	Explanation string
	// Err is non-nil when the unit failed to produce a verdict.
	Err error
}

// Failed reports whether the unit failed to produce a verdict.
func (o Outcome) Failed() bool { return o.Err != nil }

// Result is the addressable output of one pipeline run. It is created
// fresh per invocation, immutable once returned, and owned by the caller.
type Result struct {
	outcomes []Outcome
	byUnit   map[string]int
	values   map[string]string
	failed   map[string]error
}

// newResult creates an empty result sized for the given unit count.
func newResult(units int) *Result {
	return &Result{
		outcomes: make([]Outcome, 0, units),
		byUnit:   make(map[string]int, units),
		values:   make(map[string]string, 2*units),
		failed:   make(map[string]error, 0),
	}
}

// add records a unit outcome. Called only by the executor, in declared
// pipeline order, after each stage's barrier.
func (r *Result) add(o Outcome) {
	r.byUnit[o.Address.Unit] = len(r.outcomes)
	r.outcomes = append(r.outcomes, o)
	if o.Err != nil {
		r.failed[o.Address.UnitKey()] = o.Err
		return
	}
	r.values[o.Address.Key(Choice)] = o.Choice
	if o.Explanation != "" {
		r.values[o.Address.Key(Explanation)] = o.Explanation
	}
}

// Len returns the number of units that executed (successfully or not).
func (r *Result) Len() int { return len(r.outcomes) }

// Outcomes returns all unit outcomes in declared pipeline order.
func (r *Result) Outcomes() []Outcome {
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Outcome returns the named unit's outcome and whether the unit ran.
func (r *Result) Outcome(unitName string) (Outcome, bool) {
	idx, ok := r.byUnit[unitName]
	if !ok {
		return Outcome{}, false
	}
	return r.outcomes[idx], true
}

// Get retrieves a value by fully-qualified result key (see Address for the
// scheme). Lookups for units that failed, or for keys no unit produced,
// return an error wrapping ErrMissingResult.
func (r *Result) Get(key string) (string, error) {
	if v, ok := r.values[key]; ok {
		return v, nil
	}
	for unitKey, err := range r.failed {
		if key == unitKey+"_"+string(Choice) || key == unitKey+"_"+string(Explanation) {
			return "", fmt.Errorf("%w: unit at %q failed: %v", ErrMissingResult, unitKey, err)
		}
	}
	return "", fmt.Errorf("%w: no value for key %q (have %v)", ErrMissingResult, key, r.Keys())
}

// Choice returns the verdict at the given address. A failed unit yields an
// error wrapping ErrMissingResult and the unit's failure reason.
func (r *Result) Choice(a Address) (string, error) {
	return r.Get(a.Key(Choice))
}

// Explanation returns the explanation at the given address.
func (r *Result) Explanation(a Address) (string, error) {
	return r.Get(a.Key(Explanation))
}

// Keys returns the sorted keys of all values the run produced.
func (r *Result) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flatten returns a copy of the flat key-to-value view, for callers that
// want the whole map at once.
func (r *Result) Flatten() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Failures returns the units that failed, keyed by unit key (see
// Address.UnitKey). Empty for a fully successful run.
func (r *Result) Failures() map[string]error {
	out := make(map[string]error, len(r.failed))
	for k, v := range r.failed {
		out[k] = v
	}
	return out
}
