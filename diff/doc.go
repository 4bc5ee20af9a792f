// Package diff computes the structural difference between two graph states.
//
// Both sides are reduced to canonical line sets (with blank node relabeling
// applied independently per side) and compared as sets: lines only in the
// new graph are additions, lines only in the original are removals.
//
// Because blank node relabeling is not correlated across the two sides,
// statements that differ only in blank node labeling surface as an
// add/remove pair. This is expected: without correlating the two labelings
// (a strictly harder problem), textual identity is the only sound equality.
//
// Beyond the raw line sets, a diff carries the subjects impacted by any
// change, size/stability metrics, and the canonical hash of each side.
package diff
