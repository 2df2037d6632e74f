package internal

import (
	"context"
	"sync"
)

// telemetry.go
// Lightweight telemetry hook layer used by the generator and repository.
// Callers may register a real emitter (see NewOTelEmitter) or a test stub via
// RegisterTelemetryEmitter. By default the emitter is a no-op.

// Metric names emitted by this package.
const (
	MetricSchemasRegistered = "typeschema.schemas.registered"
	MetricWarnings          = "typeschema.warnings"
	MetricGenerateDuration  = "typeschema.generate.duration"
)

// TelemetryEmitter receives every metric sample.
type TelemetryEmitter func(ctx context.Context, name string, labels map[string]string, value any)

var (
	teleMu   sync.Mutex
	teleImpl TelemetryEmitter = func(ctx context.Context, name string, labels map[string]string, value any) {
		// noop by default
	}
)

// RegisterTelemetryEmitter registers a custom emitter function. Passing nil
// restores the no-op emitter.
func RegisterTelemetryEmitter(fn TelemetryEmitter) {
	teleMu.Lock()
	defer teleMu.Unlock()
	if fn == nil {
		teleImpl = func(ctx context.Context, name string, labels map[string]string, value any) {}
		return
	}
	teleImpl = fn
}

func emitter() TelemetryEmitter {
	teleMu.Lock()
	defer teleMu.Unlock()
	return teleImpl
}

// EmitSchemaRegistered records one composite schema finalized into a repository.
// Pass IDs are logged, not attached as attributes.
func EmitSchemaRegistered(ctx context.Context) {
	emitter()(ctx, MetricSchemasRegistered, nil, int64(1))
}

// EmitWarning records one non-fatal generation warning by code.
func EmitWarning(ctx context.Context, code string) {
	emitter()(ctx, MetricWarnings, map[string]string{"code": code}, int64(1))
}

// EmitGenerateDuration records how long a top-level Generate call took (milliseconds).
func EmitGenerateDuration(ctx context.Context, ms float64) {
	emitter()(ctx, MetricGenerateDuration, nil, ms)
}
