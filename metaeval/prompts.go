/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metaeval

import "chainguard.dev/gavel/promptbuilder"

// metaJudgePrompt rates how trustworthy a prior QC assessment was.
var metaJudgePrompt = promptbuilder.MustNewPrompt(`Evaluate the reliability of this quality control assessment.

Original Content:
{{content}}

QC System Assessment:
{{qc_assessment}}

QC Decision: {{qc_decision}}

Content Requirements:
{{requirements}}

Consider these meta-evaluation criteria:

1. Assessment Completeness
- Does the QC system consider all important aspects?
- Are there overlooked issues or blind spots?

2. Reasoning Quality
- Is the assessment logically sound?
- Are conclusions well-supported?

3. Standards Alignment
- Does the assessment align with requirements?
- Are quality standards consistently applied?

4. Failure Detection
- Are subtle issues caught?
- Are there false positives/negatives?

5. Feedback Quality
- Is feedback specific and actionable?
- Are improvement suggestions clear?

First provide detailed analysis, then rate as:
- reliable: QC assessment is thorough and trustworthy
- questionable: Some concerns about QC assessment
- failure: Significant QC system failures detected

End your response with the single word "reliable", "questionable", or "failure" on its own line.`)

// failureAnalyzerPrompt classifies the failure pattern using the meta
// judge's explanation as additional context.
var failureAnalyzerPrompt = promptbuilder.MustNewPrompt(`Analyze the type of quality control failure detected.

Original Content:
{{content}}

QC System Assessment:
{{qc_assessment}}

Meta-Evaluation:
{{previous_explanation}}

Identify failure patterns:

1. Systematic Failures
- Consistent blind spots
- Recurring assessment gaps
- Pattern of missed issues

2. Contextual Failures
- Domain-specific misunderstandings
- Context-dependent errors
- Scope limitations

3. Random Failures
- Inconsistent assessments
- Unpredictable errors
- No clear pattern

First explain the failure analysis, then categorize as:
- systematic: Clear pattern of similar failures
- contextual: Context-dependent failures
- random: No consistent pattern

End your response with the single word "systematic", "contextual", or "random" on its own line.`)
