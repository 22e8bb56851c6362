/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package quality

import "chainguard.dev/gavel/promptbuilder"

// judgePrompt evaluates educational content against its requirements. It
// instructs the model to explain first and classify last so the
// explanation justifies the verdict and doubles as actionable feedback for
// the improver.
var judgePrompt = promptbuilder.MustNewPrompt(`You are an expert educational content reviewer. Evaluate this content for accuracy, completeness, and educational value.

Content to Review:
{{content}}

Requirements:
{{requirements}}

Consider these aspects:
1. Scientific accuracy
2. Completeness of explanation
3. Grade-appropriate language
4. Key concepts coverage
5. Potential misconceptions
6. Learning outcome alignment

First provide a detailed analysis of any issues found, then decide:
- pass: Content meets educational standards and is scientifically accurate
- revise: Content needs improvements (specify exactly what needs to change)

End your response with the single word "pass" or "revise" on its own line.`)

// improvePrompt regenerates content from the reviewer's feedback.
var improvePrompt = promptbuilder.MustNewPrompt(`Improve this educational content based on the reviewer's feedback:

Original Content:
{{content}}

Reviewer's Feedback:
{{feedback}}

Requirements:
- Fix all scientific inaccuracies
- Add missing key concepts
- Maintain grade-appropriate language
- Address all identified issues
- Keep the same format but improve the content

Provide the improved version while maintaining the same structure. Respond with only the improved content.`)
