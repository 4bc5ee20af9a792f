// Package hashing computes deterministic, content-addressed digests of quad
// collections.
//
// A Hasher digests the canonical textual form of a graph: quads are
// serialized, sorted byte-wise, joined, and fed to the configured digest
// algorithm. Three normalization modes are supported:
//
//   - Simple: serialize and sort as-is. Blank node labels leak into the
//     digest, so two parses of the same document may disagree.
//   - Canonical (default): blank nodes are relabeled by structural signature
//     first, making the digest invariant under quad permutation and blank
//     node renaming.
//   - Merkle: each quad becomes a leaf digest; sorted leaves are paired and
//     hashed level by level into a single root, enabling structural
//     verification of large graphs.
//
// The canonical hash of a graph is a pure function of its semantic content:
// any permutation of the quads and any bijective renaming of blank node
// labels produce the identical digest.
//
// # Incremental hashing
//
// IncrementalHash combines a previous digest with the canonical digest of a
// batch of added quads. It is an order-independent append combinator, not a
// replacement for rehashing: the result is a distinct identity and will not
// equal Hash over the union of the quads. Use it only for cheap append
// tracking.
//
// # Memoization
//
// Hash results are memoized in an instance-owned cache keyed by a digest of
// the actual canonical payload (never by quad count, which collides across
// distinct graphs of equal size). Errored computations are never cached.
package hashing
