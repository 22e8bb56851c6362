/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"fmt"
	"sort"

	"chainguard.dev/gavel/promptbuilder"
)

// PreviousExplanationField is the placeholder name a judge prompt uses to
// read the explanation produced by the immediately preceding stage. It is
// the sole cross-stage data channel: raw verdict labels never flow between
// stages.
const PreviousExplanationField = "previous_explanation"

// Record is an immutable set of named text fields describing the content
// under evaluation (e.g. content, requirements, scenario). It is created
// once per pipeline invocation and safely shared across a layer's
// concurrent unit executions.
type Record struct {
	fields map[string]string
}

// NewRecord creates a Record by copying the given fields. Later mutation of
// the input map does not affect the record.
func NewRecord(fields map[string]string) Record {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Record{fields: copied}
}

// Field returns the value of a named field and whether it exists.
func (r Record) Field(name string) (string, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Names returns the record's field names in sorted order.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StageContext is the data a stage is permitted to read: the original
// record's fields plus the explanation produced by the immediately
// preceding stage. Units in the same layer receive the same context and
// never see each other's output.
type StageContext struct {
	record   Record
	previous string
}

// NewStageContext builds a context from a record and the preceding stage's
// explanation ("" for the first stage).
func NewStageContext(record Record, previous string) StageContext {
	return StageContext{record: record, previous: previous}
}

// Field returns the value of a named record field and whether it exists.
func (c StageContext) Field(name string) (string, bool) {
	return c.record.Field(name)
}

// PreviousExplanation returns the explanation produced by the immediately
// preceding stage, or "" when there is none.
func (c StageContext) PreviousExplanation() string {
	return c.previous
}

// Bind implements promptbuilder.Bindable. Every unbound placeholder in the
// prompt is satisfied from the context: PreviousExplanationField binds the
// prior stage's explanation, any other name binds the matching record
// field. A placeholder naming a field the record does not carry is an
// error, so a misconfigured template fails loudly rather than judging
// partial input.
func (c StageContext) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	for name := range prompt.Unbound() {
		var value string
		if name == PreviousExplanationField {
			value = c.previous
		} else {
			v, ok := c.record.Field(name)
			if !ok {
				return nil, fmt.Errorf("prompt references field %q not present in input record (have %v)", name, c.record.Names())
			}
			value = v
		}
		bound, err := prompt.BindText(name, value)
		if err != nil {
			return nil, err
		}
		prompt = bound
	}
	return prompt, nil
}
