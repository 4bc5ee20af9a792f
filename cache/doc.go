// Package cache provides the content-addressed artifact cache used by the
// hashing and diffing layers.
//
// Keys are content or graph hashes; values are opaque byte artifacts
// (serialized hash results, materialized graphs, reports). The cache
// guarantees at most one stored artifact per key and an atomic
// get/put/evict sequence, making it the only graphid structure that may be
// shared between concurrent callers.
//
// Two implementations are provided:
//
//   - Memory: bounded in-process cache with strict insertion-order (FIFO)
//     eviction. Note this is deliberately not LRU: a Get does not refresh an
//     entry's position, and overwriting an existing key keeps its original
//     position. The oldest surviving insertion is always evicted first.
//   - Redis: cross-process cache on go-redis, for sharing computed artifacts
//     between workers that ingest the same graphs.
package cache
