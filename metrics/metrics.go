/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry metrics for judge pipeline
// execution: generation calls, unit failures, and verdict counts.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Judging provides counters for judge pipeline activity. It degrades
// gracefully: if a counter fails to initialize, a no-op counter is used
// instead of failing pipeline construction.
type Judging struct {
	meter       metric.Meter
	generations metric.Int64Counter
	failures    metric.Int64Counter
	verdicts    metric.Int64Counter
}

// NewJudging creates a new Judging metrics instance with the specified meter
// name. The meter name should be unified across pipelines (e.g.
// "chainguard.ai.gavel"), with pipeline and unit names as dimensions.
func NewJudging(meterName string) *Judging {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	generations, err := meter.Int64Counter("gavel.generation.calls",
		metric.WithDescription("The number of generation calls made by judge units"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create generation counter, metrics will be disabled", "error", err, "meter", meterName)
		generations = noop.Int64Counter{}
	}

	failures, err := meter.Int64Counter("gavel.unit.failures",
		metric.WithDescription("The number of judge units that failed to produce a verdict"),
		metric.WithUnit("{failures}"))
	if err != nil {
		slog.Warn("Failed to create failure counter, metrics will be disabled", "error", err, "meter", meterName)
		failures = noop.Int64Counter{}
	}

	verdicts, err := meter.Int64Counter("gavel.unit.verdicts",
		metric.WithDescription("The number of categorical verdicts produced, by label"),
		metric.WithUnit("{verdicts}"))
	if err != nil {
		slog.Warn("Failed to create verdict counter, metrics will be disabled", "error", err, "meter", meterName)
		verdicts = noop.Int64Counter{}
	}

	return &Judging{
		meter:       meter,
		generations: generations,
		failures:    failures,
		verdicts:    verdicts,
	}
}

// RecordGeneration records one generation call for the given model.
func (m *Judging) RecordGeneration(ctx context.Context, model string) {
	m.generations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
	))
}

// RecordFailure records a unit failure with its pipeline, unit, and reason.
func (m *Judging) RecordFailure(ctx context.Context, pipeline, unit, reason string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("unit", unit),
		attribute.String("reason", reason),
	))
}

// RecordVerdict records a categorical verdict produced by a unit.
func (m *Judging) RecordVerdict(ctx context.Context, pipeline, unit, label string) {
	m.verdicts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("unit", unit),
		attribute.String("label", label),
	))
}
