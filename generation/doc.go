/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package generation wraps the external text-generation capability consumed by
judge units. The engine treats every backend as an opaque
"prompt in, text out" collaborator: fallible, non-deterministic, potentially
slow.

New dispatches on the model name, the same way callers pick a judge model:

	gen, err := generation.New(ctx, "gpt-4o-mini",
		generation.WithAPIKey(cfg.OpenAIAPIKey))

GPT models use the OpenAI SDK, claude-* the Anthropic SDK, and gemini-* the
Google GenAI SDK. All backends share retry handling for transient provider
errors via the retry subpackage.

The Func adapter turns any function into a backend, which is how tests
script deterministic judge behavior without network access.
*/
package generation
