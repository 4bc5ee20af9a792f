package rdf

import (
	"fmt"
)

// Quad is a single subject-predicate-object-graph statement. Quads are
// comparable values and may be used as map keys; equality is structural.
type Quad struct {
	Subject   Term `json:"subject"`
	Predicate Term `json:"predicate"`
	Object    Term `json:"object"`
	Graph     Term `json:"graph"`
}

// NewQuad returns a quad in the default graph.
func NewQuad(subject, predicate, object Term) Quad {
	return Quad{Subject: subject, Predicate: predicate, Object: object, Graph: DefaultGraph()}
}

// NewQuadIn returns a quad in the given named graph.
func NewQuadIn(subject, predicate, object, graph Term) Quad {
	return Quad{Subject: subject, Predicate: predicate, Object: object, Graph: graph}
}

// Validate checks positional rules: subject is an IRI or blank node,
// predicate is an IRI, object is any term except the default graph marker,
// and graph is an IRI or the default graph.
func (q Quad) Validate() error {
	if err := q.Subject.Validate(); err != nil {
		return fmt.Errorf("subject: %w", err)
	}
	if q.Subject.Kind != KindIRI && q.Subject.Kind != KindBlankNode {
		return fmt.Errorf("subject: %w: %s not allowed", ErrInvalidTerm, q.Subject.Kind)
	}
	if err := q.Predicate.Validate(); err != nil {
		return fmt.Errorf("predicate: %w", err)
	}
	if q.Predicate.Kind != KindIRI {
		return fmt.Errorf("predicate: %w: %s not allowed", ErrInvalidTerm, q.Predicate.Kind)
	}
	if err := q.Object.Validate(); err != nil {
		return fmt.Errorf("object: %w", err)
	}
	if q.Object.Kind == KindDefaultGraph {
		return fmt.Errorf("object: %w: %s not allowed", ErrInvalidTerm, q.Object.Kind)
	}
	if err := q.Graph.Validate(); err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	if q.Graph.Kind != KindIRI && q.Graph.Kind != KindDefaultGraph {
		return fmt.Errorf("graph: %w: %s not allowed", ErrInvalidTerm, q.Graph.Kind)
	}
	return nil
}

// Dataset is a set of quads with insertion-order iteration. Duplicate
// insertions are no-ops; ordering is never semantically significant, it only
// makes iteration deterministic for callers that built the set themselves.
//
// Dataset is not safe for concurrent mutation.
type Dataset struct {
	order []Quad
	index map[Quad]int
}

// NewDataset returns a dataset seeded with the given quads, deduplicated.
func NewDataset(quads ...Quad) *Dataset {
	d := &Dataset{index: make(map[Quad]int, len(quads))}
	for _, q := range quads {
		d.Add(q)
	}
	return d
}

// Add inserts a quad, reporting whether it was not already present.
func (d *Dataset) Add(q Quad) bool {
	if d.index == nil {
		d.index = make(map[Quad]int)
	}
	if _, ok := d.index[q]; ok {
		return false
	}
	d.index[q] = len(d.order)
	d.order = append(d.order, q)
	return true
}

// Remove deletes a quad, reporting whether it was present.
func (d *Dataset) Remove(q Quad) bool {
	i, ok := d.index[q]
	if !ok {
		return false
	}
	delete(d.index, q)
	d.order = append(d.order[:i], d.order[i+1:]...)
	for j := i; j < len(d.order); j++ {
		d.index[d.order[j]] = j
	}
	return true
}

// Contains reports whether the quad is present.
func (d *Dataset) Contains(q Quad) bool {
	_, ok := d.index[q]
	return ok
}

// Len returns the number of distinct quads.
func (d *Dataset) Len() int { return len(d.order) }

// Quads returns a copy of the quads in insertion order.
func (d *Dataset) Quads() []Quad {
	out := make([]Quad, len(d.order))
	copy(out, d.order)
	return out
}

// Clone returns an independent copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	return NewDataset(d.order...)
}
