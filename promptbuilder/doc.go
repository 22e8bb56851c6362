/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder provides injection-resistant construction of judge
prompts. Templates are literal strings with {{name}} placeholders; values
are bound through typed methods and substituted in a single tokenization
pass, so bound content can never introduce new placeholders.

Prompts are immutable: every Bind method returns a new instance, which lets
a pipeline reuse one parsed template across many concurrent evaluations.

	p := promptbuilder.MustNewPrompt(`
		Review this content: {{content}}
		Requirements: {{requirements}}
	`)

	p, err := p.BindText("content", record.Content)
	...
	prompt, err := p.Build()

Build fails if any placeholder remains unbound, which is how judge units
detect a template referencing a record field the caller never supplied.
*/
package promptbuilder
