// Package graphid computes stable, content-addressed identities for
// RDF-style graphs.
//
// Given an unordered collection of subject-predicate-object-graph statements
// (quads), graphid produces a canonical byte representation, a deterministic
// digest, and a structural difference between two graph states. Identical
// graph content always yields the identical hash, regardless of parse order,
// blank node labeling, or source formatting.
//
// # Architecture
//
// The module is organized around small, composable packages:
//
//   - rdf: the term and quad model
//   - canon: canonical serialization and blank node canonicalization
//   - hashing: graph digests (simple, canonical, and merkle modes)
//   - diff: structural differences between graph revisions
//   - cache: the shared content-addressed artifact cache
//   - filter: CEL expression quad filters
//   - report: persistence envelopes for diff results
//   - component: graphid.yaml configuration
//
// The root package ties them together behind an Engine facade:
//
//	engine, err := graphid.New(
//	    graphid.WithLogger(logger),
//	    graphid.WithFilter("people", `predicate == "<https://example.org/knows>"`),
//	)
//	if err != nil {
//	    // handle error
//	}
//	defer engine.Close()
//
//	res, err := engine.Hash(ctx, quads)
//
// # Scope
//
// graphid consumes quads from an external parser and exposes hashes and
// diffs to outer layers. It never parses RDF text and never performs network
// I/O in the computation path; the optional Redis cache backend is the only
// networked component.
//
// All hash and diff computations are synchronous, CPU-bound pure functions.
// Independent graphs may be processed concurrently; the content cache is the
// only structure designed to be shared between goroutines.
package graphid
