package runner

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Outcome labels for command metrics.
const (
	outcomeResolved   = "resolved"
	outcomeUnresolved = "unresolved"
	outcomeTimeout    = "timeout"
)

var (
	tracer = otel.Tracer("qualitygate.runner")
	meter  = otel.Meter("qualitygate.runner")
)

var (
	commandLatency metric.Float64Histogram
	commandTotal   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		commandLatency, err = meter.Float64Histogram(
			"qualitygate_command_duration_seconds",
			metric.WithDescription("Duration of quality gate command attempts"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		commandTotal, err = meter.Int64Counter(
			"qualitygate_command_total",
			metric.WithDescription("Total number of quality gate command attempts"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startCommandSpan creates a span for one candidate attempt.
func startCommandSpan(ctx context.Context, check, command string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "qualitygate.command",
		trace.WithAttributes(
			attribute.String("qualitygate.check", check),
			attribute.String("qualitygate.command", command),
		),
	)
}

// finishCommand sets the result attributes on span and records metrics.
func finishCommand(ctx context.Context, span trace.Span, check, outcome string, exitCode int, duration time.Duration) {
	span.SetAttributes(
		attribute.String("qualitygate.outcome", outcome),
		attribute.Int("qualitygate.exit_code", exitCode),
	)
	if outcome == outcomeTimeout {
		span.SetStatus(codes.Error, "command timed out")
	}

	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("check", check),
		attribute.String("outcome", outcome),
	)
	commandLatency.Record(ctx, duration.Seconds(), attrs)
	commandTotal.Add(ctx, 1, attrs)
}
