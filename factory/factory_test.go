package factory

import (
	"context"
	"testing"

	"github.com/lychee-technology/typeschema"
	"github.com/lychee-technology/typeschema/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	config := typeschema.DefaultConfig()
	config.SchemaNameSelector = nil

	gen, err := NewGenerator(config)
	assert.Nil(t, gen)
	var configErr *typeschema.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "schemaNameSelector", configErr.Field)
}

func TestGenerateBundle(t *testing.T) {
	node := typeschema.Define("Tree.Node")
	node.SetFields(
		typeschema.Field("Label", typeschema.String),
		typeschema.Field("Children", typeschema.SequenceOf(node)),
	)

	bundle, diag, err := GenerateBundle(typeschema.DefaultConfig(), node, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.False(t, diag.HasWarnings())

	require.Len(t, bundle.Schemas, 1)
	assert.Equal(t, "Node", bundle.Schemas[0].Name)
	assert.Same(t, bundle.Root, bundle.Schemas[0].Schema)

	children, _ := bundle.Root.Property("children")
	assert.Equal(t, "#/components/schemas/Node", children.Items.Ref.Pointer)
}

func TestWithLoggerReceivesWarnings(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	desc := typeschema.Composite("Order", typeschema.Field("Blob", typeschema.Opaque("Blob")))
	_, diag, err := GenerateBundle(typeschema.DefaultConfig(), desc, WithLogger(logger))
	require.NoError(t, err)

	assert.True(t, diag.HasWarnings())
	entries := logs.FilterMessage("schema generation warning").All()
	require.Len(t, entries, 1)
	assert.Equal(t, typeschema.ErrCodeUnresolvableField, entries[0].ContextMap()["code"])
}

func TestWithMeterProviderRegistersEmitter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		internal.RegisterTelemetryEmitter(nil)
		_ = provider.Shutdown(context.Background())
	})

	config := typeschema.DefaultConfig()
	config.Telemetry.Enabled = true

	_, _, err := GenerateBundle(config, typeschema.Composite("Point", typeschema.Field("X", typeschema.Double)),
		WithLogger(zap.NewNop()), WithMeterProvider(provider))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, config.Telemetry.MeterName, rm.ScopeMetrics[0].Scope.Name)

	names := make([]string, 0, len(rm.ScopeMetrics[0].Metrics))
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, internal.MetricSchemasRegistered)
	assert.Contains(t, names, internal.MetricGenerateDuration)
}

func TestParseCatalogThroughFactory(t *testing.T) {
	cat, err := ParseCatalog([]byte("types:\n  - id: Point\n    fields:\n      - {name: X, type: double}\n"))
	require.NoError(t, err)

	desc, err := cat.Lookup("Point")
	require.NoError(t, err)

	gen, err := NewGenerator(typeschema.DefaultConfig(), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	schema, err := gen.Generate(desc, NewRepository(typeschema.DefaultConfig()))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, schema.PropertyNames())
}

func TestDisabledTelemetryResetsEmitter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		internal.RegisterTelemetryEmitter(nil)
		_ = provider.Shutdown(context.Background())
	})

	enabled := typeschema.DefaultConfig()
	enabled.Telemetry.Enabled = true
	_, err := NewGenerator(enabled, WithLogger(zap.NewNop()), WithMeterProvider(provider))
	require.NoError(t, err)

	disabled := typeschema.DefaultConfig()
	_, _, err = GenerateBundle(disabled, typeschema.Composite("Point", typeschema.Field("X", typeschema.Double)),
		WithLogger(zap.NewNop()))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				assert.Empty(t, data.DataPoints, m.Name)
			case metricdata.Histogram[float64]:
				assert.Empty(t, data.DataPoints, m.Name)
			}
		}
	}
}
