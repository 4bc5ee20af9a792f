package hashing

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/knowflow/graphid/cache"
	"github.com/knowflow/graphid/canon"
	"github.com/knowflow/graphid/rdf"
)

// DefaultMaxQuads is the safety cap on input size. Graphs above it are
// rejected with ErrInputTooLarge before any processing begins.
const DefaultMaxQuads = 1_000_000

// defaultMemoSize bounds the instance-owned memoization cache.
const defaultMemoSize = 1024

// Result is a computed graph hash. It is immutable once produced; a changed
// graph yields a new Result, never a mutated one.
type Result struct {
	Algorithm     string        `json:"algorithm"`
	Digest        string        `json:"digest"`
	QuadCount     int           `json:"quad_count"`
	Normalization Normalization `json:"normalization"`
}

// Hasher computes graph digests. It is safe for concurrent use: all state
// besides the internal memoization cache is immutable after New, and the
// cache is internally synchronized.
type Hasher struct {
	algorithm     string
	normalization Normalization
	maxQuads      int
	logger        *slog.Logger
	memo          cache.Cache
	metrics       *otelMetrics
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithAlgorithm sets the digest algorithm ("sha256", "sha512", "sha1").
// Default: sha256.
func WithAlgorithm(algorithm string) Option {
	return func(h *Hasher) { h.algorithm = algorithm }
}

// WithNormalization sets the default normalization mode. Default: Canonical.
func WithNormalization(n Normalization) Option {
	return func(h *Hasher) { h.normalization = n }
}

// WithMaxQuads sets the input size cap. Values <= 0 restore the default.
func WithMaxQuads(n int) Option {
	return func(h *Hasher) { h.maxQuads = n }
}

// WithLogger sets a structured logger. If not provided, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hasher) { h.logger = logger }
}

// WithMeterProvider enables OpenTelemetry metrics for hash operations and
// memoization hits/misses. Without it, metric recording is a no-op.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(h *Hasher) {
		if provider != nil {
			h.metrics = newOtelMetrics(provider)
		}
	}
}

// WithCache replaces the instance-owned memoization cache. Useful to share a
// cache between hashers or to disable bounding.
func WithCache(c cache.Cache) Option {
	return func(h *Hasher) {
		if c != nil {
			h.memo = c
		}
	}
}

// New returns a configured Hasher. Unknown algorithms and normalization
// modes are rejected here rather than on first use.
func New(opts ...Option) (*Hasher, error) {
	h := &Hasher{
		algorithm:     "sha256",
		normalization: Canonical,
		maxQuads:      DefaultMaxQuads,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.maxQuads <= 0 {
		h.maxQuads = DefaultMaxQuads
	}
	if h.memo == nil {
		h.memo = cache.NewMemory(defaultMemoSize)
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	if _, err := newDigest(h.algorithm); err != nil {
		return nil, err
	}
	if _, err := ParseNormalization(string(h.normalization)); err != nil {
		return nil, err
	}
	return h, nil
}

// digestHex digests payload with the configured algorithm and returns the
// hex-encoded sum. The algorithm was validated in New.
func (h *Hasher) digestHex(payload string) string {
	d, err := newDigest(h.algorithm)
	if err != nil {
		// Unreachable after New; kept loud rather than silently degraded.
		panic(err)
	}
	d.Write([]byte(payload))
	return hex.EncodeToString(d.Sum(nil))
}

// Hash digests quads under the hasher's configured normalization mode.
func (h *Hasher) Hash(quads []rdf.Quad) (Result, error) {
	return h.HashWith(quads, h.normalization)
}

// HashWith digests quads under an explicit normalization mode.
//
// The result digest is a pure function of the graph's semantic content in
// Canonical and Merkle modes: permuting quads or bijectively renaming blank
// nodes cannot change it.
func (h *Hasher) HashWith(quads []rdf.Quad, mode Normalization) (Result, error) {
	start := time.Now()
	if _, err := ParseNormalization(string(mode)); err != nil {
		return Result{}, err
	}
	if len(quads) > h.maxQuads {
		return Result{}, fmt.Errorf("%w: %d quads (cap %d)", ErrInputTooLarge, len(quads), h.maxQuads)
	}

	lines, err := h.canonicalLines(quads, mode)
	if err != nil {
		return Result{}, err
	}
	sort.Strings(lines)
	payload := strings.Join(lines, "\n")

	// The memo key derives from the canonical payload itself. Keying by
	// quad count would collide across distinct graphs of equal size.
	memoKey := h.digestHex(payload) + "|" + h.algorithm + "|" + string(mode)
	if res, ok := h.memoGet(memoKey); ok {
		h.metrics.recordHash(h.algorithm, mode, time.Since(start), true)
		return res, nil
	}

	var digest string
	if mode == Merkle {
		digest = h.merkleRoot(lines)
	} else {
		digest = h.digestHex(payload)
	}

	res := Result{
		Algorithm:     h.algorithm,
		Digest:        digest,
		QuadCount:     len(quads),
		Normalization: mode,
	}
	h.memoPut(memoKey, res)
	h.metrics.recordHash(h.algorithm, mode, time.Since(start), false)
	h.logger.Debug("graph hashed",
		"algorithm", h.algorithm,
		"normalization", mode,
		"quads", len(quads),
		"digest", digest)
	return res, nil
}

// canonicalLines serializes quads into canonical lines, relabeling blank
// nodes first for Canonical and Merkle modes.
func (h *Hasher) canonicalLines(quads []rdf.Quad, mode Normalization) ([]string, error) {
	if mode == Simple {
		return canon.Lines(quads)
	}
	rewritten, err := canon.Canonicalize(quads)
	if err != nil {
		return nil, err
	}
	return canon.Lines(rewritten)
}

// merkleRoot folds sorted leaf digests into a single root. An empty graph
// hashes the empty string; a single quad's leaf digest is the root. Leaves
// are sorted before pairing, so the root is independent of input order. An
// odd-sized level duplicates its last leaf.
func (h *Hasher) merkleRoot(lines []string) string {
	if len(lines) == 0 {
		return h.digestHex("")
	}
	level := make([]string, len(lines))
	for i, line := range lines {
		level[i] = h.digestHex(line)
	}
	sort.Strings(level)
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]string, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, h.digestHex(level[i]+"|"+level[i+1]))
		}
		level = next
	}
	return level[0]
}

// IncrementalHash combines a previous digest with the canonical digest of
// added quads into a new order-independent digest. Adding an empty batch
// returns the previous digest unchanged.
//
// The result is NOT the canonical hash of the union graph; it is a distinct,
// weaker identity for cheap append tracking. Recompute Hash over the full
// quad set whenever the true canonical identity is needed.
func (h *Hasher) IncrementalHash(previous string, added []rdf.Quad) (string, error) {
	if len(added) == 0 {
		return previous, nil
	}
	res, err := h.HashWith(added, Canonical)
	if err != nil {
		return "", err
	}
	pair := []string{previous, res.Digest}
	sort.Strings(pair)
	return h.digestHex(strings.Join(pair, "|")), nil
}

// IDOptions configures ContentID.
type IDOptions struct {
	// Prefix names the artifact class. Default: "graph".
	Prefix string

	// Version tags the identity scheme. Default: "v1".
	Version string

	// Encoding selects how the digest is rendered: "hex" (default) or
	// "base64url".
	Encoding string
}

// ContentID returns a stable content address of the form
// "{prefix}:{version}:{encodedDigest}", using the hasher's configured
// normalization mode.
func (h *Hasher) ContentID(quads []rdf.Quad, opts IDOptions) (string, error) {
	if opts.Prefix == "" {
		opts.Prefix = "graph"
	}
	if opts.Version == "" {
		opts.Version = "v1"
	}
	if opts.Encoding == "" {
		opts.Encoding = "hex"
	}

	res, err := h.Hash(quads)
	if err != nil {
		return "", err
	}

	var encoded string
	switch opts.Encoding {
	case "hex":
		encoded = res.Digest
	case "base64url":
		raw, err := hex.DecodeString(res.Digest)
		if err != nil {
			return "", fmt.Errorf("decode digest: %w", err)
		}
		encoded = base64.RawURLEncoding.EncodeToString(raw)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, opts.Encoding)
	}
	return fmt.Sprintf("%s:%s:%s", opts.Prefix, opts.Version, encoded), nil
}

// ClearCache drops all memoized results.
func (h *Hasher) ClearCache() error {
	return h.memo.Clear(context.Background())
}

// CacheStats returns hit/miss counters of the memoization cache.
func (h *Hasher) CacheStats() cache.Stats {
	return h.memo.Stats()
}

func (h *Hasher) memoGet(key string) (Result, bool) {
	data, ok, err := h.memo.Get(context.Background(), key)
	if err != nil || !ok {
		return Result{}, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, false
	}
	return res, true
}

func (h *Hasher) memoPut(key string, res Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	// Results are only stored after successful computation; an errored hash
	// never reaches this point.
	_ = h.memo.Put(context.Background(), key, data)
}
