package dlog

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
)

// Hasher maps a canonical point encoding to the key of the baby-step
// table. Collisions are tolerated: every table hit is re-verified by
// exact point comparison before it is accepted.
type Hasher interface {
	Key(encoding []byte) [32]byte
}

// SHA256Hasher keys the table with SHA-256.
// This is the default hasher.
type SHA256Hasher struct{}

// Key implements Hasher.Key.
func (h *SHA256Hasher) Key(encoding []byte) [32]byte {
	return sha256.Sum256(encoding)
}

// Blake2bHasher keys the table with BLAKE2b-256, which is noticeably
// faster than SHA-256 on hardware without SHA extensions.
type Blake2bHasher struct{}

// Key implements Hasher.Key.
func (h *Blake2bHasher) Key(encoding []byte) [32]byte {
	return blake2b.Sum256(encoding)
}
