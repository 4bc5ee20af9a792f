package graphid

import (
	"errors"
	"fmt"

	"github.com/knowflow/graphid/cache"
	"github.com/knowflow/graphid/canon"
	"github.com/knowflow/graphid/filter"
	"github.com/knowflow/graphid/hashing"
	"github.com/knowflow/graphid/rdf"
)

// Error kinds categorize errors by their type.
const (
	// KindUnsupportedTerm indicates an unrecognized term variant reached
	// the serializer.
	KindUnsupportedTerm = "unsupported_term"

	// KindUnsupportedNormalization indicates an unknown normalization mode.
	KindUnsupportedNormalization = "unsupported_normalization"

	// KindUnsupportedAlgorithm indicates an unavailable digest algorithm.
	KindUnsupportedAlgorithm = "unsupported_algorithm"

	// KindInputTooLarge indicates the quad count exceeded the safety cap.
	KindInputTooLarge = "input_too_large"

	// KindValidation indicates invalid input (malformed terms or quads).
	KindValidation = "validation"

	// KindFilter indicates a filter expression failed to compile or
	// evaluate.
	KindFilter = "filter"

	// KindCache indicates a content cache failure.
	KindCache = "cache"

	// KindConfiguration indicates invalid configuration.
	KindConfiguration = "configuration"

	// KindInternal indicates an internal graphid error.
	KindInternal = "internal"
)

// Error is a structured error wrapping an underlying failure with the
// operation that produced it and a machine-readable kind.
//
// Error supports errors.Is and errors.As through Unwrap, so callers can
// still match the subpackage sentinels (hashing.ErrInputTooLarge,
// canon.ErrUnsupportedTermType, ...) on a wrapped error.
type Error struct {
	// Op is the operation that failed (e.g., "Engine.Hash").
	Op string

	// Kind categorizes the error.
	Kind string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("graphid: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("graphid: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches either the underlying error or another *Error with the same
// kind (and, when set on the target, the same op).
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind != t.Kind {
			return false
		}
		if t.Op != "" && e.Op != t.Op {
			return false
		}
		return t.Kind != "" || t.Op != ""
	}
	return false
}

// wrapError classifies err under op. A nil err returns nil.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Op: op, Kind: kindOf(err), Err: err}
}

// kindOf maps subpackage sentinels onto error kinds.
func kindOf(err error) string {
	switch {
	case errors.Is(err, canon.ErrUnsupportedTermType):
		return KindUnsupportedTerm
	case errors.Is(err, hashing.ErrUnsupportedNormalization):
		return KindUnsupportedNormalization
	case errors.Is(err, hashing.ErrUnsupportedAlgorithm):
		return KindUnsupportedAlgorithm
	case errors.Is(err, hashing.ErrInputTooLarge):
		return KindInputTooLarge
	case errors.Is(err, hashing.ErrUnsupportedEncoding):
		return KindConfiguration
	case errors.Is(err, filter.ErrInvalidExpression):
		return KindFilter
	case errors.Is(err, rdf.ErrInvalidTerm):
		return KindValidation
	case errors.Is(err, cache.ErrInvalidKey), errors.Is(err, cache.ErrClosed):
		return KindCache
	default:
		return KindInternal
	}
}
