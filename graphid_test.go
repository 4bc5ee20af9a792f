package graphid

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowflow/graphid/cache"
	"github.com/knowflow/graphid/component"
	"github.com/knowflow/graphid/diff"
	"github.com/knowflow/graphid/hashing"
	"github.com/knowflow/graphid/rdf"
)

func testQuads() []rdf.Quad {
	return []rdf.Quad{
		rdf.NewQuad(rdf.IRI("ex:alice"), rdf.IRI("ex:name"), rdf.LangLiteral("Alice", "en")),
		rdf.NewQuad(rdf.IRI("ex:alice"), rdf.IRI("ex:knows"), rdf.Blank("b")),
		rdf.NewQuad(rdf.Blank("b"), rdf.IRI("ex:name"), rdf.Literal("Bob")),
	}
}

func TestNewDefaults(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	ctx := context.Background()
	res, err := engine.Hash(ctx, testQuads())
	require.NoError(t, err)
	assert.Equal(t, "sha256", res.Algorithm)
	assert.Equal(t, hashing.Canonical, res.Normalization)
	assert.Equal(t, 3, res.QuadCount)

	_, isMemory := engine.Cache().(*cache.Memory)
	assert.True(t, isMemory)
}

func TestNewFromConfig(t *testing.T) {
	cfg := &component.Config{
		Algorithm:     "sha512",
		Normalization: "merkle",
		Filters:       map[string]string{"names": `predicate == "<ex:name>"`},
	}
	engine, err := NewFromConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	res, err := engine.Hash(context.Background(), testQuads())
	require.NoError(t, err)
	assert.Equal(t, "sha512", res.Algorithm)
	assert.Equal(t, hashing.Merkle, res.Normalization)

	_, ok := engine.Filter("names")
	assert.True(t, ok)
}

func TestWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graphid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm: sha1\n"), 0o644))

	engine, err := New(WithConfig(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	res, err := engine.Hash(context.Background(), testQuads())
	require.NoError(t, err)
	assert.Equal(t, "sha1", res.Algorithm)

	t.Run("missing config file", func(t *testing.T) {
		_, err := New(WithConfig(filepath.Join(dir, "absent.yaml")))
		require.Error(t, err)
		assert.ErrorIs(t, err, &Error{Kind: KindConfiguration})
	})
}

func TestHashFiltered(t *testing.T) {
	engine, err := New(WithFilter("names", `predicate == "<ex:name>"`))
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	ctx := context.Background()
	full, err := engine.Hash(ctx, testQuads())
	require.NoError(t, err)
	scoped, err := engine.HashFiltered(ctx, "names", testQuads())
	require.NoError(t, err)

	assert.Equal(t, 2, scoped.QuadCount)
	assert.NotEqual(t, full.Digest, scoped.Digest)

	t.Run("unknown filter", func(t *testing.T) {
		_, err := engine.HashFiltered(ctx, "missing", testQuads())
		require.Error(t, err)
		assert.ErrorIs(t, err, &Error{Kind: KindFilter})
	})

	t.Run("invalid filter expression fails construction", func(t *testing.T) {
		_, err := New(WithFilter("bad", `predicate ==`))
		require.Error(t, err)
		assert.ErrorIs(t, err, &Error{Kind: KindFilter})
	})
}

func TestEngineDiff(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	ctx := context.Background()
	a := testQuads()
	b := append(testQuads(), rdf.NewQuad(rdf.IRI("ex:carol"), rdf.IRI("ex:name"), rdf.Literal("Carol")))

	res, err := engine.Diff(ctx, a, b, diff.Options{IncludeTriples: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.AddedCount)
	assert.Equal(t, 1, res.Metrics.NetChange)
	assert.False(t, res.Hashes.Identical)
}

func TestEngineDiffReport(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	rep, err := engine.DiffReport(context.Background(), testQuads(), testQuads(), diff.Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)
	require.NotNil(t, rep.Diff)
	assert.True(t, rep.Diff.Hashes.Identical)
}

func TestEngineIncrementalHash(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	ctx := context.Background()
	base, err := engine.Hash(ctx, testQuads())
	require.NoError(t, err)

	same, err := engine.IncrementalHash(ctx, base.Digest, nil)
	require.NoError(t, err)
	assert.Equal(t, base.Digest, same)
}

func TestEngineContentID(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	id, err := engine.ContentID(context.Background(), testQuads(), hashing.IDOptions{})
	require.NoError(t, err)
	assert.Regexp(t, `^graph:v1:[0-9a-f]{64}$`, id)
}

func TestEngineErrorKinds(t *testing.T) {
	engine, err := New(WithHasher(mustHasher(t, hashing.WithMaxQuads(1))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	_, err = engine.Hash(context.Background(), testQuads())
	require.Error(t, err)
	assert.ErrorIs(t, err, hashing.ErrInputTooLarge)
	assert.ErrorIs(t, err, &Error{Kind: KindInputTooLarge})

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Engine.Hash", e.Op)
}

func TestEngineSharedCache(t *testing.T) {
	shared := cache.NewMemory(8)
	engine, err := New(WithCache(shared))
	require.NoError(t, err)

	assert.Same(t, shared, engine.Cache().(*cache.Memory))
	require.NoError(t, engine.Close())

	_, _, err = shared.Get(context.Background(), "k")
	assert.ErrorIs(t, err, cache.ErrClosed)
}

func mustHasher(t *testing.T, opts ...hashing.Option) *hashing.Hasher {
	t.Helper()
	h, err := hashing.New(opts...)
	require.NoError(t, err)
	return h
}
