package elgamal

import (
	"fmt"
	"io"

	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/randutil"
)

// KeyPair is an ElGamal key pair with Public = Secret*G and Secret in
// [1, order).
type KeyPair struct {
	Secret group.Scalar
	Public group.Point
}

// GenerateKey draws a key pair from rng, or from crypto/rand when rng
// is nil.
func GenerateKey(g group.Group, rng io.Reader) (*KeyPair, error) {
	sk, err := group.RandomNonZeroScalar(g, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to sample secret key: %w", err)
	}
	return &KeyPair{
		Secret: sk,
		Public: group.BaseMult(g, sk),
	}, nil
}

// GenerateKeyFromSeed derives a key pair from seed. The same seed always
// yields the same pair; use it for fixtures, never for production keys.
func GenerateKeyFromSeed(g group.Group, seed int64) (*KeyPair, error) {
	return GenerateKey(g, randutil.NewSeeded(seed))
}

// PublicFromSecret recomputes the public key for sk, rejecting zero.
func PublicFromSecret(g group.Group, sk group.Scalar) (*KeyPair, error) {
	if sk.IsZero() {
		return nil, ErrInvalidNonce
	}
	return &KeyPair{Secret: sk, Public: group.BaseMult(g, sk)}, nil
}
