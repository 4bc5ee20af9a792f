// Package canon produces the canonical textual form of terms and quads and
// assigns canonical labels to blank nodes.
//
// The canonical line format is the hashing and exchange format used by the
// rest of graphid: `subject predicate object [graph] .`, one statement per
// line. It resembles N-Triples but implements only the escaping the hashing
// core needs (backslash and double quote); it is not a standards-compliant
// N-Triples writer.
//
// # Blank node canonicalization
//
// Parser-assigned blank node labels are arbitrary, so two parses of the same
// document can disagree on every label. Canonicalize replaces them with
// labels derived from each node's immediate neighborhood, making the
// serialized form independent of parse order and original labeling.
//
// The signature scheme is a single pass over depth-1 neighborhoods, not an
// iterative refinement: blank nodes whose immediate neighborhoods are
// isomorphic but whose deeper structure differs receive identical signatures
// and are tie-broken by original label order. See Canonicalize for details.
package canon
