/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Syntactic sugar helpers that panic on error, for package-level prompt
// variables whose templates are known valid at compile time.

// Must wraps a call to a function returning (*Prompt, error) and panics if
// the error is non-nil. Intended for variable initializations such as:
//
//	var p = promptbuilder.Must(promptbuilder.NewPrompt(`Review {{content}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt creates a new prompt from a template literal and panics on
// error. This is syntactic sugar for Must(NewPrompt(...)).
func MustNewPrompt(template stringLiteral) *Prompt {
	return Must(NewPrompt(template))
}
