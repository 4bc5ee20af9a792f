// Package rdf defines the term and quad model used throughout graphid.
//
// The model is deliberately small: a Term is an immutable value tagged with
// one of four kinds (IRI, blank node, literal, default graph), and a Quad is
// a subject-predicate-object-graph statement built from terms. A Dataset is
// a deduplicating set of quads that remembers insertion order.
//
// # Terms
//
// Terms are constructed through the package constructors rather than struct
// literals, so that normalization rules (such as collapsing an explicit
// xsd:string datatype to a plain literal) are applied consistently:
//
//	s := rdf.IRI("https://example.org/alice")
//	p := rdf.IRI("https://example.org/knows")
//	o := rdf.Blank("b0")
//	lit := rdf.LangLiteral("Alice", "en")
//
// Terms are comparable values; structural equality is the == operator.
//
// # Quads
//
// NewQuad places a statement in the default graph; NewQuadIn targets a named
// graph. Quad.Validate enforces positional rules (predicate must be an IRI,
// graph must be an IRI or the default graph).
//
// # Concurrency
//
// Terms and Quads are immutable values and safe to share. Dataset is not
// internally synchronized: callers that mutate a dataset while reading it
// must serialize access themselves.
package rdf
