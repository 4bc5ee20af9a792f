package canon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knowflow/graphid/rdf"
)

// ErrUnsupportedTermType is returned when a term with an unknown kind reaches
// the serializer. This is always a caller bug; there is no fallback
// stringification, since a guessed token would corrupt every downstream hash.
var ErrUnsupportedTermType = errors.New("canon: unsupported term type")

// escapeLiteral applies the canonical two-step literal escaping: backslashes
// first, then double quotes. The order matters; reversed, the backslashes
// inserted by quote escaping would be escaped again.
func escapeLiteral(lexical string) string {
	s := strings.ReplaceAll(lexical, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Term renders a single term as its canonical token: <iri>, _:label, a quoted
// literal with optional @lang or ^^<datatype> suffix, or the empty string for
// the default graph. The xsd:string datatype is never emitted.
func Term(t rdf.Term) (string, error) {
	switch t.Kind {
	case rdf.KindIRI:
		return "<" + t.Value + ">", nil
	case rdf.KindBlankNode:
		return "_:" + t.Value, nil
	case rdf.KindLiteral:
		tok := `"` + escapeLiteral(t.Value) + `"`
		if t.Language != "" {
			return tok + "@" + t.Language, nil
		}
		if t.Datatype != "" && t.Datatype != rdf.XSDString {
			return tok + "^^<" + t.Datatype + ">", nil
		}
		return tok, nil
	case rdf.KindDefaultGraph:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedTermType, t.Kind)
	}
}

// Quad renders a quad as a canonical line. Quads in the default graph carry
// no graph token.
func Quad(q rdf.Quad) (string, error) {
	s, err := Term(q.Subject)
	if err != nil {
		return "", fmt.Errorf("subject: %w", err)
	}
	p, err := Term(q.Predicate)
	if err != nil {
		return "", fmt.Errorf("predicate: %w", err)
	}
	o, err := Term(q.Object)
	if err != nil {
		return "", fmt.Errorf("object: %w", err)
	}
	g, err := Term(q.Graph)
	if err != nil {
		return "", fmt.Errorf("graph: %w", err)
	}
	if g == "" {
		return fmt.Sprintf("%s %s %s .", s, p, o), nil
	}
	return fmt.Sprintf("%s %s %s %s .", s, p, o, g), nil
}

// Lines serializes every quad, in input order. The first serialization error
// aborts the whole batch.
func Lines(quads []rdf.Quad) ([]string, error) {
	lines := make([]string, 0, len(quads))
	for _, q := range quads {
		line, err := Quad(q)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
