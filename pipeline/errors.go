/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import "errors"

var (
	// ErrInvalidLabel indicates judge output that matched none of the
	// unit's configured labels. Not retryable within an attempt: the model
	// answered, just not with a verdict.
	ErrInvalidLabel = errors.New("invalid categorical label")

	// ErrMissingResult indicates a lookup for a key the result does not
	// hold, either because the caller computed the wrong address or
	// because the unit failed and never produced that field.
	ErrMissingResult = errors.New("missing result")
)
