// Package filter compiles CEL expressions into quad predicates.
//
// A filter scopes hashing and diffing to a subgraph: compile an expression
// once, then apply it to quad collections before handing them to the hasher
// or diff engine. Expressions see each quad through a fixed set of string
// variables:
//
//	subject    canonical subject token, e.g. "<https://example.org/s>" or "_:b0"
//	predicate  canonical predicate token
//	object     canonical object token, e.g. "\"42\"^^<...integer>"
//	graph      canonical graph token, "" for the default graph
//	objectKind term kind of the object: "iri", "blank", "literal"
//	language   language tag of a literal object, "" otherwise
//	datatype   datatype IRI of a literal object, "" otherwise
//
// Example:
//
//	f, err := filter.Compile(`predicate == "<https://example.org/name>" && language == "en"`)
//	if err != nil { ... }
//	scoped, err := f.Apply(quads)
//
// Expressions must evaluate to a boolean; anything else is rejected at
// compile time.
package filter
