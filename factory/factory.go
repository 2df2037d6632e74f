package factory

import (
	"fmt"

	"github.com/lychee-technology/typeschema"
	"github.com/lychee-technology/typeschema/internal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

type options struct {
	logger        *zap.Logger
	meterProvider metric.MeterProvider
}

// Option customizes generator and repository construction.
type Option func(*options)

// WithLogger sets the logger used by the generator and repository. Without it
// the global zap logger is used.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMeterProvider sets the meter provider used when telemetry is enabled.
// Without it the global otel provider is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

func apply(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.L()
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}
	return o
}

// NewGenerator creates a SchemaGenerator with the provided configuration.
// This is the primary way for external projects to create a generator.
//
// The telemetry emitter is process-wide. When config.Telemetry.Enabled is set,
// an OpenTelemetry emitter recording into the configured meter provider is
// registered; otherwise the emitter is reset to a no-op, so the most recently
// built generator decides where metrics go.
//
// Usage:
//
//	import (
//	    "github.com/lychee-technology/typeschema"
//	    "github.com/lychee-technology/typeschema/factory"
//	)
//
//	config := typeschema.DefaultConfig()
//	gen, err := factory.NewGenerator(config)
//	if err != nil {
//	    // handle error
//	}
//	repo := factory.NewRepository(config)
//	schema, err := gen.Generate(myType, repo)
func NewGenerator(config *typeschema.Config, opts ...Option) (typeschema.SchemaGenerator, error) {
	o := apply(opts)

	gen, err := internal.NewSchemaGenerator(config, o.logger)
	if err != nil {
		return nil, err
	}

	if config.Telemetry.Enabled {
		emitter, err := internal.NewOTelEmitter(o.meterProvider, config.Telemetry.MeterName)
		if err != nil {
			return nil, fmt.Errorf("failed to create telemetry emitter: %w", err)
		}
		internal.RegisterTelemetryEmitter(emitter)
	} else {
		internal.RegisterTelemetryEmitter(nil)
	}

	return gen, nil
}

// NewRepository creates an empty in-memory repository for one generation pass.
// Use a fresh repository for every pass.
func NewRepository(config *typeschema.Config, opts ...Option) typeschema.SchemaRepository {
	o := apply(opts)
	return internal.NewSchemaRepository(config, o.logger)
}

// GenerateBundle runs one pass for desc against a fresh repository and returns
// the root schema with every named schema the pass produced.
func GenerateBundle(config *typeschema.Config, desc typeschema.TypeDescriptor, opts ...Option) (*typeschema.Bundle, typeschema.Diagnostics, error) {
	gen, err := NewGenerator(config, opts...)
	if err != nil {
		return nil, nil, err
	}
	repo := NewRepository(config, opts...)
	root, err := gen.Generate(desc, repo)
	if err != nil {
		return nil, nil, err
	}
	return typeschema.NewBundle(root, repo), repo.Diagnostics(), nil
}

// LoadCatalog reads a YAML descriptor catalog from path.
func LoadCatalog(path string) (*internal.Catalog, error) {
	return internal.LoadCatalog(path)
}

// ParseCatalog parses YAML descriptor catalog data.
func ParseCatalog(data []byte) (*internal.Catalog, error) {
	return internal.ParseCatalog(data)
}
