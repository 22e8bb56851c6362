/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics_test

import (
	"context"
	"testing"

	"chainguard.dev/gavel/metrics"
)

// With no meter provider installed, recording must be a safe no-op.
func TestRecordWithoutProvider(t *testing.T) {
	m := metrics.NewJudging("chainguard.ai.gavel.test")
	ctx := context.Background()

	m.RecordGeneration(ctx, "gpt-4o-mini")
	m.RecordFailure(ctx, "QualityControl", "QualityJudge", "invalid_label")
	m.RecordVerdict(ctx, "QualityControl", "QualityJudge", "pass")
}
