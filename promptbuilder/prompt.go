/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// stringLiteral is a private type alias that only accepts literal strings.
// Judge prompt templates are authored by developers, never assembled from
// model output or record content.
type stringLiteral string

// Prompt represents a judge prompt template with bindable placeholders.
// Placeholders use {{name}} syntax and are bound to record fields, the
// previous stage's explanation, or structured data before Build.
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt creates a new prompt from a template literal and parses its
// placeholders. Every {{name}} in the template starts out unbound.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)

	tmpl, err := walkTemplate(string(template), func(name string) (string, error) {
		if _, exists := bindings[name]; !exists {
			bindings[name] = &unboundBinding{name: name}
		}
		// Keep the placeholder intact during parsing.
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}

	return &Prompt{
		template: tmpl,
		bindings: bindings,
	}, nil
}

// Placeholders returns the names of all placeholders found in the template
// as a set. Judge units use this to discover which record fields a prompt
// expects.
func (p *Prompt) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// Unbound returns the names of placeholders that have not yet been bound.
// Judge units bind exactly this set from their stage context, so templates
// may arrive partially pre-bound.
func (p *Prompt) Unbound() map[string]struct{} {
	names := make(map[string]struct{})
	for name, b := range p.bindings {
		if _, isUnbound := b.(*unboundBinding); isUnbound {
			names[name] = struct{}{}
		}
	}
	return names
}

// BindText binds a plain text value to a placeholder. The value may come
// from an input record or a prior judge's explanation; it is substituted
// verbatim, and single-pass tokenization guarantees it can never introduce
// new placeholders. Returns a new Prompt with the binding applied.
func (p *Prompt) BindText(name, value string) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	next := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	next.bindings[name] = &textBinding{val: value}
	return next, nil
}

// BindJSON binds structured data to a placeholder by marshaling it as JSON.
// Returns a new Prompt with the binding applied.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	next := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	next.bindings[name] = &jsonBinding{data: data}
	return next, nil
}

// BindYAML binds structured data to a placeholder by marshaling it as YAML.
// Returns a new Prompt with the binding applied.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	next := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	next.bindings[name] = &yamlBinding{data: data}
	return next, nil
}

// Build constructs the final prompt string, returning an error if any
// placeholder remains unbound.
func (p *Prompt) Build() (string, error) {
	// Pre-compute all binding values to surface unbound errors up front.
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		val, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}

	return walkTemplate(p.template, func(name string) (string, error) {
		if val, exists := values[name]; exists {
			return val, nil
		}
		// Unreachable: NewPrompt and Build tokenize identically.
		return "", fmt.Errorf("internal error: placeholder %q not found in values map", name)
	})
}
