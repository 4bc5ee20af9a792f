package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/knowflow/graphid/rdf"
)

// neighborhood accumulates the depth-1 adjacency of one blank node label:
// outgoing edges as (predicate, object signature) and incoming edges as
// (subject signature, predicate).
type neighborhood struct {
	outgoing []string
	incoming []string
}

// termSignature is the depth-1 signature of a term as seen from an adjacent
// blank node. Blank nodes stay unexpanded (_:label) so signatures never
// recurse.
func termSignature(t rdf.Term) (string, error) {
	return Term(t)
}

// signature renders the neighborhood into the canonical signature string and
// hashes it for compactness. Two blank nodes with identical depth-1
// neighborhoods produce identical signatures.
func (n *neighborhood) signature() string {
	sort.Strings(n.outgoing)
	sort.Strings(n.incoming)
	raw := "OUT:" + strings.Join(n.outgoing, ";") + "||IN:" + strings.Join(n.incoming, ";")
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Canonicalize rewrites every blank node label in quads to a canonical label
// of the form b00000000, b00000001, ... assigned by ascending structural
// signature. The returned slice preserves input order; non-blank terms are
// untouched. A quad set without blank nodes is returned as a plain copy.
//
// The signature covers only each blank node's immediate neighborhood. Blank
// nodes whose depth-1 neighborhoods are isomorphic but whose deeper structure
// differs collide and are ordered by their original labels, which makes that
// corner of the labeling arbitrary. Callers needing full isomorphism
// resolution should apply an iterative refinement pass before hashing; this
// package intentionally does not.
func Canonicalize(quads []rdf.Quad) ([]rdf.Quad, error) {
	hoods := make(map[string]*neighborhood)
	hood := func(label string) *neighborhood {
		h, ok := hoods[label]
		if !ok {
			h = &neighborhood{}
			hoods[label] = h
		}
		return h
	}

	for _, q := range quads {
		if !q.Subject.IsBlank() && !q.Object.IsBlank() {
			continue
		}
		pred, err := Term(q.Predicate)
		if err != nil {
			return nil, err
		}
		if q.Subject.IsBlank() {
			objSig, err := termSignature(q.Object)
			if err != nil {
				return nil, err
			}
			h := hood(q.Subject.Value)
			h.outgoing = append(h.outgoing, pred+"->"+objSig)
		}
		if q.Object.IsBlank() {
			subSig, err := termSignature(q.Subject)
			if err != nil {
				return nil, err
			}
			h := hood(q.Object.Value)
			h.incoming = append(h.incoming, subSig+"->"+pred)
		}
	}

	out := make([]rdf.Quad, len(quads))
	copy(out, quads)
	if len(hoods) == 0 {
		return out, nil
	}

	type labelSig struct {
		label string
		sig   string
	}
	sigs := make([]labelSig, 0, len(hoods))
	for label, h := range hoods {
		sigs = append(sigs, labelSig{label: label, sig: h.signature()})
	}
	// Original label order is the documented tie-break for colliding
	// depth-1 signatures.
	sort.Slice(sigs, func(i, j int) bool {
		if sigs[i].sig != sigs[j].sig {
			return sigs[i].sig < sigs[j].sig
		}
		return sigs[i].label < sigs[j].label
	})

	rename := make(map[string]string, len(sigs))
	for i, ls := range sigs {
		rename[ls.label] = fmt.Sprintf("b%08d", i)
	}

	for i, q := range out {
		if q.Subject.IsBlank() {
			q.Subject = rdf.Blank(rename[q.Subject.Value])
		}
		if q.Object.IsBlank() {
			q.Object = rdf.Blank(rename[q.Object.Value])
		}
		out[i] = q
	}
	return out, nil
}
