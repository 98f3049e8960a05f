package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/elshare"
	"github.com/f3rmion/elshare/dlog"
	"github.com/f3rmion/elshare/group"
)

var (
	// ErrMessageOutOfRange is returned when a message is not below the
	// encryption limit.
	ErrMessageOutOfRange = fmt.Errorf("%w: message must be below the limit", elshare.ErrValidation)

	// ErrInvalidNonce is returned for a zero ephemeral scalar.
	ErrInvalidNonce = fmt.Errorf("%w: ephemeral scalar must be non-zero", elshare.ErrValidation)

	// ErrDecryptionFailed is returned when the decrypted point has no
	// discrete log below the limit. A wrong key and an out-of-range
	// message both end here.
	ErrDecryptionFailed = fmt.Errorf("%w: discrete log not found", elshare.ErrDecryption)
)

// Ciphertext is an ElGamal ciphertext of a bounded message:
// C = r*PK + m*G and R = r*G.
type Ciphertext struct {
	C group.Point
	R group.Point
}

// Equal reports whether both components of c and o are equal.
func (c *Ciphertext) Equal(o *Ciphertext) bool {
	return c.C.Equal(o.C) && c.R.Equal(o.R)
}

// Ephemeral is a precomputed encryption nonce bound to one public key:
// R = r*G and S = r*PK. Sealing several messages with one Ephemeral
// reuses r for all of them.
type Ephemeral struct {
	R group.Point
	S group.Point
}

// Cipher encrypts messages in [0, limit) under a public key and decrypts
// them by solving a bounded discrete log.
//
// A Cipher is safe for concurrent use.
type Cipher struct {
	group  group.Group
	solver *dlog.Solver
}

// New returns a cipher over g using the default discrete log solver.
func New(g group.Group) *Cipher {
	return NewWithSolver(dlog.New(g))
}

// NewWithSolver returns a cipher that decrypts with s.
func NewWithSolver(s *dlog.Solver) *Cipher {
	return &Cipher{group: s.Group(), solver: s}
}

// Group returns the group the cipher operates in.
func (c *Cipher) Group() group.Group {
	return c.group
}

// Encrypt encrypts message under pk with a fresh ephemeral scalar drawn
// from rng (crypto/rand when nil). Two encryptions of the same message
// differ with overwhelming probability.
func (c *Cipher) Encrypt(rng io.Reader, pk group.Point, message, limit uint64) (*Ciphertext, error) {
	if message >= limit {
		return nil, ErrMessageOutOfRange
	}
	r, err := group.RandomNonZeroScalar(c.group, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to sample ephemeral scalar: %w", err)
	}
	eph, err := c.NewEphemeral(pk, r)
	if err != nil {
		return nil, err
	}
	return c.Seal(eph, message, limit)
}

// NewEphemeral precomputes R = r*G and S = r*pk.
func (c *Cipher) NewEphemeral(pk group.Point, r group.Scalar) (*Ephemeral, error) {
	if r.IsZero() {
		return nil, ErrInvalidNonce
	}
	return &Ephemeral{
		R: group.BaseMult(c.group, r),
		S: c.group.NewPoint().ScalarMult(r, pk),
	}, nil
}

// Seal encrypts message with a precomputed ephemeral: C = S + message*G.
// The returned ciphertext shares eph.R.
func (c *Cipher) Seal(eph *Ephemeral, message, limit uint64) (*Ciphertext, error) {
	if message >= limit {
		return nil, ErrMessageOutOfRange
	}
	m := group.BaseMult(c.group, c.group.NewScalar().SetUint64(message))
	return &Ciphertext{
		C: c.group.NewPoint().Add(eph.S, m),
		R: eph.R,
	}, nil
}

// Decrypt recovers the message from ct with sk, searching [0, limit).
func (c *Cipher) Decrypt(sk group.Scalar, ct *Ciphertext, limit uint64) (uint64, error) {
	shared := c.group.NewPoint().ScalarMult(sk, ct.R)
	masked := c.group.NewPoint().Sub(ct.C, shared)

	m, err := c.solver.Solve(c.group.Generator(), masked, limit)
	if errors.Is(err, dlog.ErrNotFound) {
		return 0, ErrDecryptionFailed
	}
	if err != nil {
		return 0, err
	}
	return m, nil
}
