package diff

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/knowflow/graphid/canon"
	"github.com/knowflow/graphid/hashing"
	"github.com/knowflow/graphid/rdf"
)

// Options controls what a Diff call materializes.
type Options struct {
	// IncludeTriples requests the added/removed canonical lines in the
	// result. Without it only counts, metrics, and hashes are populated.
	IncludeTriples bool

	// MaxTriples caps the length of each returned line list. Zero or
	// negative means no cap. Counts and metrics always reflect the
	// untruncated totals.
	MaxTriples int
}

// Metrics summarizes the magnitude of a change.
type Metrics struct {
	// OriginalSize and NewSize are the canonical line counts of each side.
	OriginalSize int `json:"original_size"`
	NewSize      int `json:"new_size"`

	// NetChange is NewSize - OriginalSize.
	NetChange int `json:"net_change"`

	// ChangePercentage is 100 * (added + removed) / OriginalSize, or 0 for
	// an empty original.
	ChangePercentage float64 `json:"change_percentage"`

	// Stability is unchanged / max(OriginalSize, NewSize), or 0 when both
	// sides are empty.
	Stability float64 `json:"stability"`
}

// Hashes carries the canonical-mode hash of each side.
type Hashes struct {
	Original  string `json:"original"`
	New       string `json:"new"`
	Identical bool   `json:"identical"`
}

// Result is the outcome of comparing two graph states. It is a plain
// serializable record; callers wanting to cache diffs should key on the pair
// of input hashes.
type Result struct {
	// Added and Removed hold canonical lines, sorted, possibly truncated to
	// Options.MaxTriples. Empty unless IncludeTriples was set.
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`

	// AddedCount and RemovedCount are always the untruncated totals.
	AddedCount     int `json:"added_count"`
	RemovedCount   int `json:"removed_count"`
	UnchangedCount int `json:"unchanged_count"`

	// Truncated reports whether Added or Removed was capped.
	Truncated bool `json:"truncated,omitempty"`

	// ImpactedSubjects lists every subject token appearing in at least one
	// added or removed line, sorted.
	ImpactedSubjects []string `json:"impacted_subjects"`

	Metrics Metrics `json:"metrics"`
	Hashes  Hashes  `json:"hashes"`
}

// Engine computes graph diffs. Safe for concurrent use.
type Engine struct {
	hasher *hashing.Hasher
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithHasher sets the hasher used for the per-side canonical hashes.
func WithHasher(h *hashing.Hasher) Option {
	return func(e *Engine) { e.hasher = h }
}

// WithLogger sets a structured logger. If not provided, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New returns a diff Engine. Without WithHasher, a default canonical sha256
// hasher is created.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.hasher == nil {
		h, err := hashing.New()
		if err != nil {
			return nil, err
		}
		e.hasher = h
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e, nil
}

// Diff compares original and updated quad collections. Serialization or
// hashing errors from either side abort the diff; there is no partial
// result.
func (e *Engine) Diff(original, updated []rdf.Quad, opts Options) (*Result, error) {
	linesA, err := canonicalLineSet(original)
	if err != nil {
		return nil, fmt.Errorf("original graph: %w", err)
	}
	linesB, err := canonicalLineSet(updated)
	if err != nil {
		return nil, fmt.Errorf("updated graph: %w", err)
	}

	added := subtract(linesB, linesA)
	removed := subtract(linesA, linesB)
	unchanged := 0
	for line := range linesA {
		if _, ok := linesB[line]; ok {
			unchanged++
		}
	}

	hashA, err := e.hasher.HashWith(original, hashing.Canonical)
	if err != nil {
		return nil, fmt.Errorf("original graph: %w", err)
	}
	hashB, err := e.hasher.HashWith(updated, hashing.Canonical)
	if err != nil {
		return nil, fmt.Errorf("updated graph: %w", err)
	}

	res := &Result{
		AddedCount:       len(added),
		RemovedCount:     len(removed),
		UnchangedCount:   unchanged,
		ImpactedSubjects: impactedSubjects(added, removed),
		Metrics:          computeMetrics(len(linesA), len(linesB), len(added), len(removed), unchanged),
		Hashes: Hashes{
			Original:  hashA.Digest,
			New:       hashB.Digest,
			Identical: hashA.Digest == hashB.Digest,
		},
	}

	if opts.IncludeTriples {
		res.Added, res.Removed = added, removed
		if opts.MaxTriples > 0 {
			if len(res.Added) > opts.MaxTriples {
				res.Added = res.Added[:opts.MaxTriples]
				res.Truncated = true
			}
			if len(res.Removed) > opts.MaxTriples {
				res.Removed = res.Removed[:opts.MaxTriples]
				res.Truncated = true
			}
		}
	}

	e.logger.Debug("graphs diffed",
		"added", res.AddedCount,
		"removed", res.RemovedCount,
		"unchanged", res.UnchangedCount,
		"identical", res.Hashes.Identical)
	return res, nil
}

// canonicalLineSet reduces quads to their canonical line set. Relabeling is
// applied per side; the two sides of a diff are never correlated.
func canonicalLineSet(quads []rdf.Quad) (map[string]struct{}, error) {
	rewritten, err := canon.Canonicalize(quads)
	if err != nil {
		return nil, err
	}
	lines, err := canon.Lines(rewritten)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	return set, nil
}

// subtract returns the sorted lines of a not present in b.
func subtract(a, b map[string]struct{}) []string {
	var out []string
	for line := range a {
		if _, ok := b[line]; !ok {
			out = append(out, line)
		}
	}
	sort.Strings(out)
	return out
}

// impactedSubjects extracts the leading subject token of each changed line.
// This is a fixed-format prefix match over the canonical line (the format is
// under our control), not a re-parse: IRIs run through the closing '>',
// blank nodes through the first space.
func impactedSubjects(added, removed []string) []string {
	set := make(map[string]struct{})
	for _, lines := range [][]string{added, removed} {
		for _, line := range lines {
			if subject, ok := leadingSubject(line); ok {
				set[subject] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func leadingSubject(line string) (string, bool) {
	switch {
	case strings.HasPrefix(line, "<"):
		if i := strings.Index(line, ">"); i > 0 {
			return line[:i+1], true
		}
	case strings.HasPrefix(line, "_:"):
		if i := strings.Index(line, " "); i > 0 {
			return line[:i], true
		}
	}
	return "", false
}

func computeMetrics(sizeA, sizeB, added, removed, unchanged int) Metrics {
	m := Metrics{
		OriginalSize: sizeA,
		NewSize:      sizeB,
		NetChange:    sizeB - sizeA,
	}
	if sizeA > 0 {
		m.ChangePercentage = 100 * float64(added+removed) / float64(sizeA)
	}
	if larger := max(sizeA, sizeB); larger > 0 {
		m.Stability = float64(unchanged) / float64(larger)
	}
	return m
}
