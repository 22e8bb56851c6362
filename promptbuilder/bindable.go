/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable represents a type that can bind values to a Prompt. Judge units
// expect their execution context to implement this interface so that each
// unit's template can be filled from the data the stage is permitted to read.
type Bindable interface {
	// Bind takes a prompt and returns a new prompt with bound values.
	// The implementation should bind any placeholders it can satisfy from
	// the receiver's data.
	Bind(prompt *Prompt) (*Prompt, error)
}

// Noop is a no-op implementation of Bindable that passes through the prompt
// unchanged.
type Noop struct{}

// Bind implements Bindable by returning the prompt unchanged.
func (Noop) Bind(prompt *Prompt) (*Prompt, error) {
	return prompt, nil
}
