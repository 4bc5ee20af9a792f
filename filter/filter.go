package filter

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/knowflow/graphid/canon"
	"github.com/knowflow/graphid/rdf"
)

// ErrInvalidExpression is returned when a filter expression fails to
// compile, does not type-check, or does not produce a boolean.
var ErrInvalidExpression = errors.New("filter: invalid expression")

// Filter is a compiled quad predicate. Compile once, apply many times; a
// Filter is safe for concurrent use.
type Filter struct {
	expr    string
	program cel.Program
}

// Compile builds a Filter from a CEL boolean expression over the quad
// variables documented in the package comment.
func Compile(expr string) (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("subject", cel.StringType),
		cel.Variable("predicate", cel.StringType),
		cel.Variable("object", cel.StringType),
		cel.Variable("graph", cel.StringType),
		cel.Variable("objectKind", cel.StringType),
		cel.Variable("language", cel.StringType),
		cel.Variable("datatype", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("filter: create environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression yields %s, want bool", ErrInvalidExpression, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return &Filter{expr: expr, program: program}, nil
}

// Expression returns the source expression the filter was compiled from.
func (f *Filter) Expression() string { return f.expr }

// Matches evaluates the filter against a single quad.
func (f *Filter) Matches(q rdf.Quad) (bool, error) {
	vars, err := quadVars(q)
	if err != nil {
		return false, err
	}
	out, _, err := f.program.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("filter: evaluate %q: %w", f.expr, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: evaluation yielded %T, want bool", ErrInvalidExpression, out.Value())
	}
	return matched, nil
}

// Apply returns the quads matching the filter, preserving input order.
func (f *Filter) Apply(quads []rdf.Quad) ([]rdf.Quad, error) {
	out := make([]rdf.Quad, 0, len(quads))
	for _, q := range quads {
		matched, err := f.Matches(q)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, q)
		}
	}
	return out, nil
}

// quadVars renders a quad into the CEL variable bindings.
func quadVars(q rdf.Quad) (map[string]any, error) {
	subject, err := canon.Term(q.Subject)
	if err != nil {
		return nil, err
	}
	predicate, err := canon.Term(q.Predicate)
	if err != nil {
		return nil, err
	}
	object, err := canon.Term(q.Object)
	if err != nil {
		return nil, err
	}
	graph, err := canon.Term(q.Graph)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"subject":    subject,
		"predicate":  predicate,
		"object":     object,
		"graph":      graph,
		"objectKind": q.Object.Kind.String(),
		"language":   q.Object.Language,
		"datatype":   q.Object.Datatype,
	}, nil
}
