package diff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowflow/graphid/canon"
	"github.com/knowflow/graphid/rdf"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func line(t *testing.T, q rdf.Quad) string {
	t.Helper()
	s, err := canon.Quad(q)
	require.NoError(t, err)
	return s
}

func TestDiffIdentity(t *testing.T) {
	e := newEngine(t)
	g := []rdf.Quad{
		rdf.NewQuad(rdf.IRI("ex:s"), rdf.IRI("ex:p"), rdf.Literal("o")),
		rdf.NewQuad(rdf.Blank("b"), rdf.IRI("ex:q"), rdf.Literal("x")),
	}

	res, err := e.Diff(g, g, Options{IncludeTriples: true})
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	assert.Empty(t, res.Removed)
	assert.Equal(t, 0, res.AddedCount)
	assert.Equal(t, 0, res.RemovedCount)
	assert.Equal(t, 2, res.UnchangedCount)
	assert.Zero(t, res.Metrics.ChangePercentage)
	assert.Equal(t, 1.0, res.Metrics.Stability)
	assert.True(t, res.Hashes.Identical)
	assert.Equal(t, res.Hashes.Original, res.Hashes.New)
	assert.Empty(t, res.ImpactedSubjects)
}

func TestDiffAddition(t *testing.T) {
	e := newEngine(t)
	t1 := rdf.NewQuad(rdf.IRI("ex:s"), rdf.IRI("ex:p"), rdf.Literal("1"))
	t2 := rdf.NewQuad(rdf.IRI("ex:s2"), rdf.IRI("ex:p"), rdf.Literal("2"))

	res, err := e.Diff([]rdf.Quad{t1}, []rdf.Quad{t1, t2}, Options{IncludeTriples: true})
	require.NoError(t, err)
	assert.Equal(t, []string{line(t, t2)}, res.Added)
	assert.Empty(t, res.Removed)
	assert.Equal(t, 1, res.Metrics.NetChange)
	assert.Equal(t, 1, res.UnchangedCount)
	assert.False(t, res.Hashes.Identical)
	assert.Equal(t, []string{"<ex:s2>"}, res.ImpactedSubjects)
}

func TestDiffAntisymmetry(t *testing.T) {
	e := newEngine(t)
	a := []rdf.Quad{
		rdf.NewQuad(rdf.IRI("ex:a"), rdf.IRI("ex:p"), rdf.Literal("1")),
		rdf.NewQuad(rdf.IRI("ex:b"), rdf.IRI("ex:p"), rdf.Literal("2")),
	}
	b := []rdf.Quad{
		rdf.NewQuad(rdf.IRI("ex:b"), rdf.IRI("ex:p"), rdf.Literal("2")),
		rdf.NewQuad(rdf.IRI("ex:c"), rdf.IRI("ex:p"), rdf.Literal("3")),
	}

	ab, err := e.Diff(a, b, Options{IncludeTriples: true})
	require.NoError(t, err)
	ba, err := e.Diff(b, a, Options{IncludeTriples: true})
	require.NoError(t, err)

	assert.Equal(t, ab.Added, ba.Removed)
	assert.Equal(t, ab.Removed, ba.Added)
	assert.Equal(t, -ab.Metrics.NetChange, ba.Metrics.NetChange)
}

func TestDiffBlankNodeRelabelingUncorrelated(t *testing.T) {
	// Blank labels are canonicalized per side, so graphs that differ only
	// in deep blank structure beyond the signature's reach may pair up as
	// add+remove. Here the structures match, so the canonical lines do too.
	e := newEngine(t)
	a := []rdf.Quad{rdf.NewQuad(rdf.Blank("x"), rdf.IRI("ex:p"), rdf.Literal("v"))}
	b := []rdf.Quad{rdf.NewQuad(rdf.Blank("y"), rdf.IRI("ex:p"), rdf.Literal("v"))}

	res, err := e.Diff(a, b, Options{IncludeTriples: true})
	require.NoError(t, err)
	assert.True(t, res.Hashes.Identical)
	assert.Empty(t, res.Added)
	assert.Empty(t, res.Removed)
}

func TestDiffImpactedSubjects(t *testing.T) {
	e := newEngine(t)
	a := []rdf.Quad{
		rdf.NewQuad(rdf.IRI("ex:keep"), rdf.IRI("ex:p"), rdf.Literal("same")),
		rdf.NewQuad(rdf.IRI("ex:gone"), rdf.IRI("ex:p"), rdf.Literal("old")),
		rdf.NewQuad(rdf.Blank("b"), rdf.IRI("ex:p"), rdf.Literal("blank-old")),
	}
	b := []rdf.Quad{
		rdf.NewQuad(rdf.IRI("ex:keep"), rdf.IRI("ex:p"), rdf.Literal("same")),
		rdf.NewQuad(rdf.IRI("ex:fresh"), rdf.IRI("ex:p"), rdf.Literal("new")),
	}

	res, err := e.Diff(a, b, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"<ex:fresh>", "<ex:gone>", "_:b00000000"}, res.ImpactedSubjects)
}

func TestDiffMetrics(t *testing.T) {
	e := newEngine(t)
	a := []rdf.Quad{
		rdf.NewQuad(rdf.IRI("ex:a"), rdf.IRI("ex:p"), rdf.Literal("1")),
		rdf.NewQuad(rdf.IRI("ex:b"), rdf.IRI("ex:p"), rdf.Literal("2")),
		rdf.NewQuad(rdf.IRI("ex:c"), rdf.IRI("ex:p"), rdf.Literal("3")),
		rdf.NewQuad(rdf.IRI("ex:d"), rdf.IRI("ex:p"), rdf.Literal("4")),
	}
	b := []rdf.Quad{
		rdf.NewQuad(rdf.IRI("ex:a"), rdf.IRI("ex:p"), rdf.Literal("1")),
		rdf.NewQuad(rdf.IRI("ex:b"), rdf.IRI("ex:p"), rdf.Literal("2")),
		rdf.NewQuad(rdf.IRI("ex:e"), rdf.IRI("ex:p"), rdf.Literal("5")),
	}

	res, err := e.Diff(a, b, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Metrics.OriginalSize)
	assert.Equal(t, 3, res.Metrics.NewSize)
	assert.Equal(t, -1, res.Metrics.NetChange)
	// 1 added + 2 removed over 4 original lines.
	assert.InDelta(t, 75.0, res.Metrics.ChangePercentage, 1e-9)
	// 2 unchanged over max(4, 3).
	assert.InDelta(t, 0.5, res.Metrics.Stability, 1e-9)
}

func TestDiffEmptyGraphs(t *testing.T) {
	e := newEngine(t)

	t.Run("both empty", func(t *testing.T) {
		res, err := e.Diff(nil, nil, Options{})
		require.NoError(t, err)
		assert.Zero(t, res.Metrics.ChangePercentage)
		assert.Zero(t, res.Metrics.Stability)
		assert.True(t, res.Hashes.Identical)
	})

	t.Run("empty original", func(t *testing.T) {
		b := []rdf.Quad{rdf.NewQuad(rdf.IRI("ex:s"), rdf.IRI("ex:p"), rdf.Literal("o"))}
		res, err := e.Diff(nil, b, Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.AddedCount)
		// Percentage is defined as 0 for an empty original, not infinity.
		assert.Zero(t, res.Metrics.ChangePercentage)
		assert.Zero(t, res.Metrics.Stability)
	})
}

func TestDiffTruncation(t *testing.T) {
	e := newEngine(t)
	var a, b []rdf.Quad
	for i := 0; i < 10; i++ {
		b = append(b, rdf.NewQuad(rdf.IRI("ex:s"), rdf.IRI("ex:p"), rdf.Literal(string(rune('a'+i)))))
	}

	res, err := e.Diff(a, b, Options{IncludeTriples: true, MaxTriples: 3})
	require.NoError(t, err)
	assert.Len(t, res.Added, 3)
	assert.True(t, res.Truncated)
	// Counts always reflect untruncated totals.
	assert.Equal(t, 10, res.AddedCount)
	assert.Equal(t, 10, res.Metrics.NewSize)
}

func TestDiffWithoutTriples(t *testing.T) {
	e := newEngine(t)
	b := []rdf.Quad{rdf.NewQuad(rdf.IRI("ex:s"), rdf.IRI("ex:p"), rdf.Literal("o"))}

	res, err := e.Diff(nil, b, Options{})
	require.NoError(t, err)
	assert.Nil(t, res.Added)
	assert.Equal(t, 1, res.AddedCount)
}

func TestDiffErrorPropagation(t *testing.T) {
	e := newEngine(t)
	bad := []rdf.Quad{{
		Subject:   rdf.IRI("ex:s"),
		Predicate: rdf.IRI("ex:p"),
		Object:    rdf.Term{Kind: rdf.TermKind(99)},
		Graph:     rdf.DefaultGraph(),
	}}
	good := []rdf.Quad{rdf.NewQuad(rdf.IRI("ex:s"), rdf.IRI("ex:p"), rdf.Literal("o"))}

	t.Run("bad original side", func(t *testing.T) {
		_, err := e.Diff(bad, good, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, canon.ErrUnsupportedTermType)
		assert.Contains(t, err.Error(), "original graph")
	})

	t.Run("bad updated side", func(t *testing.T) {
		_, err := e.Diff(good, bad, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "updated graph")
	})
}

func TestResultJSONRoundTrip(t *testing.T) {
	e := newEngine(t)
	a := []rdf.Quad{rdf.NewQuad(rdf.IRI("ex:a"), rdf.IRI("ex:p"), rdf.Literal("1"))}
	b := []rdf.Quad{rdf.NewQuad(rdf.IRI("ex:b"), rdf.IRI("ex:p"), rdf.Literal("2"))}

	res, err := e.Diff(a, b, Options{IncludeTriples: true})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *res, decoded)
}
