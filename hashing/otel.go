package hashing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName identifies this instrumentation scope.
const meterName = "github.com/knowflow/graphid/hashing"

// otelMetrics holds the metric instruments for hash operations. Instruments
// are created once in WithMeterProvider and reused for every hash. A nil
// *otelMetrics is valid and records nothing, so the hot path needs no
// configuration checks.
type otelMetrics struct {
	hashCount    metric.Int64Counter
	hashDuration metric.Float64Histogram
	memoHits     metric.Int64Counter
	memoMisses   metric.Int64Counter
}

// newOtelMetrics creates the instruments. Instrument creation errors are
// swallowed into a nil instrument; observability must never break hashing.
func newOtelMetrics(provider metric.MeterProvider) *otelMetrics {
	meter := provider.Meter(meterName)
	m := &otelMetrics{}
	m.hashCount, _ = meter.Int64Counter(
		"graphid.hash.count",
		metric.WithDescription("Number of graph hash computations"),
		metric.WithUnit("1"),
	)
	m.hashDuration, _ = meter.Float64Histogram(
		"graphid.hash.duration",
		metric.WithDescription("Graph hash computation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	m.memoHits, _ = meter.Int64Counter(
		"graphid.hash.cache.hits",
		metric.WithDescription("Memoization cache hits"),
		metric.WithUnit("1"),
	)
	m.memoMisses, _ = meter.Int64Counter(
		"graphid.hash.cache.misses",
		metric.WithDescription("Memoization cache misses"),
		metric.WithUnit("1"),
	)
	return m
}

// recordHash records one hash computation. Safe on a nil receiver.
func (m *otelMetrics) recordHash(algorithm string, mode Normalization, elapsed time.Duration, memoHit bool) {
	if m == nil {
		return
	}
	ctx := context.Background()
	opts := metric.WithAttributes(
		attribute.String("algorithm", algorithm),
		attribute.String("normalization", string(mode)),
	)
	if m.hashCount != nil {
		m.hashCount.Add(ctx, 1, opts)
	}
	if m.hashDuration != nil {
		m.hashDuration.Record(ctx, float64(elapsed.Microseconds())/1000.0, opts)
	}
	if memoHit {
		if m.memoHits != nil {
			m.memoHits.Add(ctx, 1, opts)
		}
	} else if m.memoMisses != nil {
		m.memoMisses.Add(ctx, 1, opts)
	}
}
