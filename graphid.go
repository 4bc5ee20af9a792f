package graphid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/knowflow/graphid/cache"
	"github.com/knowflow/graphid/component"
	"github.com/knowflow/graphid/diff"
	"github.com/knowflow/graphid/filter"
	"github.com/knowflow/graphid/hashing"
	"github.com/knowflow/graphid/rdf"
	"github.com/knowflow/graphid/report"
)

// ErrFilterNotFound is returned when a named filter has not been registered.
var ErrFilterNotFound = errors.New("graphid: filter not found")

// Engine is the high-level entry point tying the hasher, diff engine,
// content cache, and named filters together. Construct one with New or
// NewFromConfig and share it; an Engine is safe for concurrent use.
type Engine struct {
	hasher  *hashing.Hasher
	differ  *diff.Engine
	store   cache.Cache
	filters map[string]*filter.Filter
	logger  *slog.Logger
}

// New creates an Engine from functional options. With no options it uses
// canonical sha256 hashing, an in-memory FIFO content cache, and no filters.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var fileCfg *component.Config
	if cfg.configPath != "" {
		loaded, err := component.Load(cfg.configPath)
		if err != nil {
			return nil, &Error{Op: "New", Kind: KindConfiguration, Err: err}
		}
		fileCfg = loaded
	}
	return newEngine(cfg, fileCfg)
}

// NewFromConfig creates an Engine from an already-loaded configuration.
// Options override the configuration's values.
func NewFromConfig(fileCfg *component.Config, opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return newEngine(cfg, fileCfg)
}

func newEngine(cfg *engineConfig, fileCfg *component.Config) (*Engine, error) {
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store := cfg.store
	if store == nil {
		built, err := buildCache(fileCfg)
		if err != nil {
			return nil, &Error{Op: "New", Kind: KindCache, Err: err}
		}
		store = built
	}

	hasher := cfg.hasher
	if hasher == nil {
		normalization, err := hashing.ParseNormalization(fileCfg.GetNormalization())
		if err != nil {
			return nil, wrapError("New", err)
		}
		hasher, err = hashing.New(
			hashing.WithAlgorithm(fileCfg.GetAlgorithm()),
			hashing.WithNormalization(normalization),
			hashing.WithMaxQuads(fileCfg.GetMaxQuads()),
			hashing.WithLogger(logger),
			hashing.WithMeterProvider(cfg.meterProvider),
		)
		if err != nil {
			return nil, wrapError("New", err)
		}
	}

	differ, err := diff.New(diff.WithHasher(hasher), diff.WithLogger(logger))
	if err != nil {
		return nil, wrapError("New", err)
	}

	filters := make(map[string]*filter.Filter)
	if fileCfg != nil {
		for name, expr := range fileCfg.Filters {
			f, err := filter.Compile(expr)
			if err != nil {
				return nil, &Error{Op: "New", Kind: KindFilter, Err: fmt.Errorf("filter %q: %w", name, err)}
			}
			filters[name] = f
		}
	}
	for name, expr := range cfg.filters {
		f, err := filter.Compile(expr)
		if err != nil {
			return nil, &Error{Op: "New", Kind: KindFilter, Err: fmt.Errorf("filter %q: %w", name, err)}
		}
		filters[name] = f
	}

	return &Engine{
		hasher:  hasher,
		differ:  differ,
		store:   store,
		filters: filters,
		logger:  logger,
	}, nil
}

// buildCache constructs the content cache named by configuration. A nil
// CacheConfig yields the default in-memory cache.
func buildCache(fileCfg *component.Config) (cache.Cache, error) {
	var cc *component.CacheConfig
	if fileCfg != nil {
		cc = fileCfg.Cache
	}
	switch cc.GetBackend() {
	case "memory":
		return cache.NewMemory(cc.GetCapacity()), nil
	case "redis":
		return cache.NewRedis(cache.RedisOptions{
			URL:       cc.URL,
			KeyPrefix: cc.KeyPrefix,
			TTL:       cc.GetTTL(),
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cc.GetBackend())
	}
}

// Hash digests quads under the engine's configured normalization mode.
func (e *Engine) Hash(_ context.Context, quads []rdf.Quad) (hashing.Result, error) {
	res, err := e.hasher.Hash(quads)
	if err != nil {
		return hashing.Result{}, wrapError("Engine.Hash", err)
	}
	return res, nil
}

// HashFiltered applies the named filter to quads before hashing, scoping the
// identity to a subgraph.
func (e *Engine) HashFiltered(ctx context.Context, name string, quads []rdf.Quad) (hashing.Result, error) {
	f, ok := e.filters[name]
	if !ok {
		return hashing.Result{}, &Error{Op: "Engine.HashFiltered", Kind: KindFilter, Err: fmt.Errorf("%w: %q", ErrFilterNotFound, name)}
	}
	scoped, err := f.Apply(quads)
	if err != nil {
		return hashing.Result{}, wrapError("Engine.HashFiltered", err)
	}
	return e.Hash(ctx, scoped)
}

// IncrementalHash combines a previous digest with the canonical digest of
// added quads. See hashing.Hasher.IncrementalHash for the exact semantics;
// the result is not interchangeable with Hash over the union.
func (e *Engine) IncrementalHash(_ context.Context, previous string, added []rdf.Quad) (string, error) {
	digest, err := e.hasher.IncrementalHash(previous, added)
	if err != nil {
		return "", wrapError("Engine.IncrementalHash", err)
	}
	return digest, nil
}

// ContentID returns the content address of quads.
func (e *Engine) ContentID(_ context.Context, quads []rdf.Quad, opts hashing.IDOptions) (string, error) {
	id, err := e.hasher.ContentID(quads, opts)
	if err != nil {
		return "", wrapError("Engine.ContentID", err)
	}
	return id, nil
}

// Diff computes the structural difference between two graph states.
func (e *Engine) Diff(_ context.Context, original, updated []rdf.Quad, opts diff.Options) (*diff.Result, error) {
	res, err := e.differ.Diff(original, updated, opts)
	if err != nil {
		return nil, wrapError("Engine.Diff", err)
	}
	return res, nil
}

// DiffReport computes a diff and wraps it in a persistence envelope.
func (e *Engine) DiffReport(ctx context.Context, original, updated []rdf.Quad, opts diff.Options) (*report.Report, error) {
	res, err := e.Diff(ctx, original, updated, opts)
	if err != nil {
		return nil, err
	}
	return report.New(res), nil
}

// Filter returns a registered filter by name.
func (e *Engine) Filter(name string) (*filter.Filter, bool) {
	f, ok := e.filters[name]
	return f, ok
}

// Cache returns the engine's shared content cache.
func (e *Engine) Cache() cache.Cache {
	return e.store
}

// Close releases the engine's resources, including the content cache.
func (e *Engine) Close() error {
	if err := e.store.Close(); err != nil {
		return &Error{Op: "Engine.Close", Kind: KindCache, Err: err}
	}
	return nil
}
