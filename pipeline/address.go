/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import "fmt"

// Field selects which of a unit's outputs a result key addresses.
type Field string

const (
	// Choice addresses the unit's categorical verdict.
	Choice Field = "choice"
	// Explanation addresses the unit's free-text explanation.
	Explanation Field = "explanation"
)

// Address identifies one unit's output within a pipeline run. Both the
// executor and callers derive result keys through Address, so nobody
// hand-writes key strings.
//
// The string scheme is fixed and stable for a given pipeline shape:
//
//	layer stage: <pipeline>_root.block.layer[<stage>].unit[<kind> <unit>]_<field>
//	unit stage:  <pipeline>_root.block.unit[<kind> <unit>]_<field>
//
// where <stage> is the zero-based stage index, <kind> is the unit kind
// (e.g. CategoricalJudge), <unit> is the unit name, and <field> is choice
// or explanation. Unit names are unique within a pipeline, so keys are
// unambiguous and computable ahead of the run.
type Address struct {
	// Pipeline is the pipeline name.
	Pipeline string
	// Stage is the zero-based stage index.
	Stage int
	// Layered reports whether the stage is a layer.
	Layered bool
	// Kind is the unit kind, e.g. CategoricalJudge.
	Kind string
	// Unit is the unit name.
	Unit string
}

// Key returns the fully-qualified result key for the given field.
func (a Address) Key(f Field) string {
	return fmt.Sprintf("%s_%s", a.UnitKey(), f)
}

// UnitKey returns the key prefix addressing the unit itself, without a
// field suffix. Failures are recorded under this key.
func (a Address) UnitKey() string {
	if a.Layered {
		return fmt.Sprintf("%s_root.block.layer[%d].unit[%s %s]", a.Pipeline, a.Stage, a.Kind, a.Unit)
	}
	return fmt.Sprintf("%s_root.block.unit[%s %s]", a.Pipeline, a.Kind, a.Unit)
}
