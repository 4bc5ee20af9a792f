package graphid

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/knowflow/graphid/cache"
	"github.com/knowflow/graphid/hashing"
)

// Option configures an Engine.
type Option func(*engineConfig)

// engineConfig holds configuration collected from options before the Engine
// is assembled.
type engineConfig struct {
	configPath    string
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	store         cache.Cache
	hasher        *hashing.Hasher
	filters       map[string]string
}

// WithConfig loads engine settings from a graphid.yaml file. Options applied
// after WithConfig override the file's values.
func WithConfig(path string) Option {
	return func(c *engineConfig) {
		c.configPath = path
	}
}

// WithLogger sets a custom structured logger. If not provided, logging is
// disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithMeterProvider enables OpenTelemetry metrics for hashing and cache
// operations.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *engineConfig) {
		c.meterProvider = provider
	}
}

// WithCache sets the shared content cache. If not provided, a bounded
// in-memory FIFO cache is created. The engine takes ownership and closes the
// cache on Close.
func WithCache(store cache.Cache) Option {
	return func(c *engineConfig) {
		c.store = store
	}
}

// WithHasher replaces the engine's hasher entirely, ignoring the algorithm
// and normalization settings from configuration.
func WithHasher(h *hashing.Hasher) Option {
	return func(c *engineConfig) {
		c.hasher = h
	}
}

// WithFilter registers a named CEL quad filter for HashFiltered and
// DiffFiltered. May be repeated.
func WithFilter(name, expr string) Option {
	return func(c *engineConfig) {
		if c.filters == nil {
			c.filters = make(map[string]string)
		}
		c.filters[name] = expr
	}
}
