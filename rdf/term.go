package rdf

import (
	"errors"
	"fmt"
)

// XSDString is the datatype IRI implied by a plain literal. Typed literals
// carrying it are normalized to plain literals at construction so that
// structural equality and canonical serialization agree.
const XSDString = "http://www.w3.org/2001/XMLSchema#string"

// ErrInvalidTerm is returned when a term fails validation, for example a
// zero-valued Term or a literal used in predicate position.
var ErrInvalidTerm = errors.New("rdf: invalid term")

// TermKind identifies which variant of the RDF term model a Term holds.
// The zero value is deliberately invalid so that uninitialized terms are
// caught by Validate rather than silently serialized.
type TermKind uint8

const (
	// KindInvalid is the zero value and never a legal term kind.
	KindInvalid TermKind = iota

	// KindIRI is a named node identified by an IRI.
	KindIRI

	// KindBlankNode is an existentially scoped node with a parser-assigned,
	// non-portable label.
	KindBlankNode

	// KindLiteral is a lexical value with an optional language tag or
	// datatype IRI.
	KindLiteral

	// KindDefaultGraph marks the default graph in the graph position of a
	// quad. It carries no value.
	KindDefaultGraph
)

// String returns the kind name for diagnostics.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlankNode:
		return "blank"
	case KindLiteral:
		return "literal"
	case KindDefaultGraph:
		return "default-graph"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(k))
	}
}

// Term is an immutable RDF term value. The meaning of Value depends on Kind:
// the IRI text for KindIRI, the label for KindBlankNode, the lexical form for
// KindLiteral, and empty for KindDefaultGraph. Language and Datatype are only
// populated for literals, and are mutually exclusive.
//
// Terms are comparable; == is structural equality.
type Term struct {
	Kind     TermKind `json:"kind"`
	Value    string   `json:"value,omitempty"`
	Language string   `json:"language,omitempty"`
	Datatype string   `json:"datatype,omitempty"`
}

// IRI returns a named-node term for the given IRI.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Blank returns a blank-node term with the given label. The label is only
// meaningful within a single dataset; canonicalization replaces it.
func Blank(label string) Term {
	return Term{Kind: KindBlankNode, Value: label}
}

// Literal returns a plain literal term (implicit xsd:string datatype).
func Literal(lexical string) Term {
	return Term{Kind: KindLiteral, Value: lexical}
}

// LangLiteral returns a language-tagged literal term.
func LangLiteral(lexical, language string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Language: language}
}

// TypedLiteral returns a literal term with an explicit datatype IRI. An
// xsd:string datatype is dropped so the result equals Literal(lexical).
func TypedLiteral(lexical, datatype string) Term {
	if datatype == XSDString {
		datatype = ""
	}
	return Term{Kind: KindLiteral, Value: lexical, Datatype: datatype}
}

// DefaultGraph returns the term marking the default graph.
func DefaultGraph() Term {
	return Term{Kind: KindDefaultGraph}
}

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlankNode }

// IsDefaultGraph reports whether the term is the default graph marker.
func (t Term) IsDefaultGraph() bool { return t.Kind == KindDefaultGraph }

// Validate checks that the term is a well-formed instance of its kind.
func (t Term) Validate() error {
	switch t.Kind {
	case KindIRI:
		if t.Value == "" {
			return fmt.Errorf("%w: empty IRI", ErrInvalidTerm)
		}
		if t.Language != "" || t.Datatype != "" {
			return fmt.Errorf("%w: IRI with literal facets", ErrInvalidTerm)
		}
	case KindBlankNode:
		if t.Value == "" {
			return fmt.Errorf("%w: empty blank node label", ErrInvalidTerm)
		}
		if t.Language != "" || t.Datatype != "" {
			return fmt.Errorf("%w: blank node with literal facets", ErrInvalidTerm)
		}
	case KindLiteral:
		if t.Language != "" && t.Datatype != "" {
			return fmt.Errorf("%w: literal with both language and datatype", ErrInvalidTerm)
		}
	case KindDefaultGraph:
		if t.Value != "" || t.Language != "" || t.Datatype != "" {
			return fmt.Errorf("%w: default graph carries no value", ErrInvalidTerm)
		}
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidTerm, t.Kind)
	}
	return nil
}
