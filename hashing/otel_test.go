package hashing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/knowflow/graphid/rdf"
)

func TestOtelMetricsRecorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	h := newHasher(t, WithMeterProvider(provider))
	quads := []rdf.Quad{rdf.NewQuad(rdf.IRI("ex:s"), rdf.IRI("ex:p"), rdf.Literal("o"))}

	_, err := h.Hash(quads)
	require.NoError(t, err)
	_, err = h.Hash(quads) // memo hit
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	names := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		assert.Equal(t, meterName, scope.Scope.Name)
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}
	assert.True(t, names["graphid.hash.count"], "hash counter missing")
	assert.True(t, names["graphid.hash.duration"], "duration histogram missing")
	assert.True(t, names["graphid.hash.cache.hits"], "cache hit counter missing")
	assert.True(t, names["graphid.hash.cache.misses"], "cache miss counter missing")
}

func TestOtelMetricsNilSafe(t *testing.T) {
	// Without a meter provider, recording must be a no-op rather than a
	// panic.
	h := newHasher(t)
	require.Nil(t, h.metrics)
	_, err := h.Hash([]rdf.Quad{rdf.NewQuad(rdf.IRI("ex:s"), rdf.IRI("ex:p"), rdf.Literal("o"))})
	require.NoError(t, err)
}
