package hashing

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
)

// Errors returned by the hashing layer. All fail fast: no partial or
// degraded digest is ever produced.
var (
	// ErrUnsupportedNormalization is returned for an unknown normalization
	// mode.
	ErrUnsupportedNormalization = errors.New("hashing: unsupported normalization mode")

	// ErrUnsupportedAlgorithm is returned when the requested digest
	// algorithm is not registered.
	ErrUnsupportedAlgorithm = errors.New("hashing: unsupported digest algorithm")

	// ErrUnsupportedEncoding is returned for an unknown content ID encoding.
	ErrUnsupportedEncoding = errors.New("hashing: unsupported encoding")

	// ErrInputTooLarge is returned when the quad count exceeds the
	// configured safety cap. The input is rejected before any processing.
	ErrInputTooLarge = errors.New("hashing: input exceeds maximum quad count")
)

// Normalization selects how a quad collection is normalized before
// digesting.
type Normalization string

const (
	// Simple serializes and sorts quads without blank node relabeling.
	Simple Normalization = "simple"

	// Canonical relabels blank nodes by structural signature before the
	// simple procedure. This is the default and the only mode whose digest
	// is invariant under blank node renaming.
	Canonical Normalization = "canonical"

	// Merkle builds a binary hash tree over per-quad leaf digests.
	Merkle Normalization = "merkle"
)

// ParseNormalization converts a mode string into a Normalization, failing
// fast on anything unknown.
func ParseNormalization(s string) (Normalization, error) {
	switch Normalization(s) {
	case Simple, Canonical, Merkle:
		return Normalization(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNormalization, s)
	}
}

// algorithms registers the digest constructors available to Hashers. sha1 is
// kept for interoperability with git-style object stores, not for security.
var algorithms = map[string]func() hash.Hash{
	"sha256": sha256.New,
	"sha512": sha512.New,
	"sha1":   sha1.New,
}

// newDigest returns a fresh digest for the named algorithm.
func newDigest(algorithm string) (hash.Hash, error) {
	newFn, ok := algorithms[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return newFn(), nil
}
