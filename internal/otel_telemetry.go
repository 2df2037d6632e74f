package internal

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// NewOTelEmitter returns a TelemetryEmitter recording into instruments created
// from mp under the given meter name.
func NewOTelEmitter(mp metric.MeterProvider, meterName string) (TelemetryEmitter, error) {
	meter := mp.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	registered, err := meter.Int64Counter(
		MetricSchemasRegistered,
		metric.WithDescription("Composite schemas finalized into a repository"),
		metric.WithUnit("{schema}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricSchemasRegistered, err)
	}

	warnings, err := meter.Int64Counter(
		MetricWarnings,
		metric.WithDescription("Non-fatal generation warnings"),
		metric.WithUnit("{warning}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricWarnings, err)
	}

	duration, err := meter.Float64Histogram(
		MetricGenerateDuration,
		metric.WithDescription("Duration of top-level Generate calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", MetricGenerateDuration, err)
	}

	return func(ctx context.Context, name string, labels map[string]string, value any) {
		opt := metric.WithAttributes(toAttributes(labels)...)
		switch name {
		case MetricSchemasRegistered:
			if v, ok := value.(int64); ok {
				registered.Add(ctx, v, opt)
			}
		case MetricWarnings:
			if v, ok := value.(int64); ok {
				warnings.Add(ctx, v, opt)
			}
		case MetricGenerateDuration:
			if v, ok := value.(float64); ok {
				duration.Record(ctx, v, opt)
			}
		}
	}, nil
}

func toAttributes(labels map[string]string) []attribute.KeyValue {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, attribute.String(k, labels[k]))
	}
	return attrs
}
