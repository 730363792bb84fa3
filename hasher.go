package bok

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
)

// HashHexSize is the length of a hex-encoded entry hash. All supported
// digest algorithms produce 32-byte digests, so stored hashes are always
// 64 hex characters.
const HashHexSize = 64

// Hasher implements an interface to create a new instance of a hash
// function used to compute entry hashes. The hash function must produce
// a 32-byte digest.
type Hasher interface {
	New() hash.Hash
	Algorithm() string
}

// SHA256Hasher implements the Hasher interface for SHA-256
type SHA256Hasher struct{}

// New returns a new instance of a SHA-256 hasher
func (hasher *SHA256Hasher) New() hash.Hash {
	return sha256.New()
}

// Algorithm returns the hashing algorithm the hasher implements
func (hasher *SHA256Hasher) Algorithm() string {
	return "sha256"
}

// Blake3Hasher implements the Hasher interface for BLAKE3
type Blake3Hasher struct{}

// New returns a new instance of a BLAKE3 hasher
func (hasher *Blake3Hasher) New() hash.Hash {
	return blake3.New()
}

// Algorithm returns the hashing algorithm the hasher implements
func (hasher *Blake3Hasher) Algorithm() string {
	return "blake3"
}

// HasherForAlgorithm returns the Hasher for the given algorithm name. It
// is used when opening an existing ledger whose manifest records the
// algorithm its hashes were computed with.
func HasherForAlgorithm(name string) (Hasher, error) {
	switch name {
	case "sha256":
		return &SHA256Hasher{}, nil
	case "blake3":
		return &Blake3Hasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %q", name)
	}
}
