package group

import (
	"errors"
	"io"
	"math/big"

	"github.com/f3rmion/elshare/randutil"
)

// ModScalar is a [Scalar] backed by big.Int arithmetic modulo a fixed
// prime order. Curve backends whose native scalar type does not fit the
// mutable receiver pattern share this implementation.
//
// All arithmetic operations reduce results modulo the order, so a
// ModScalar is always in [0, order).
type ModScalar struct {
	inner *big.Int
	order *big.Int
	size  int
}

// NewModScalar returns a zero scalar for the given order. The order is
// not copied and must not be modified afterwards.
func NewModScalar(order *big.Int) *ModScalar {
	return &ModScalar{
		inner: new(big.Int),
		order: order,
		size:  (order.BitLen() + 7) / 8,
	}
}

// RandomModScalar draws a scalar uniformly from [0, order) using r.
// A nil reader selects crypto/rand.
func RandomModScalar(r io.Reader, order *big.Int) (Scalar, error) {
	v, err := randutil.Int(r, order)
	if err != nil {
		return nil, err
	}
	s := NewModScalar(order)
	s.inner.Set(v)
	return s, nil
}

func (s *ModScalar) reduce() {
	s.inner.Mod(s.inner, s.order)
}

// value extracts the integer behind any Scalar. ModScalars are read
// directly; other implementations go through BigInt.
func value(a Scalar) *big.Int {
	if m, ok := a.(*ModScalar); ok {
		return m.inner
	}
	return a.BigInt()
}

// Add sets s to a + b (mod order) and returns s.
func (s *ModScalar) Add(a, b Scalar) Scalar {
	s.inner.Add(value(a), value(b))
	s.reduce()
	return s
}

// Sub sets s to a - b (mod order) and returns s.
func (s *ModScalar) Sub(a, b Scalar) Scalar {
	s.inner.Sub(value(a), value(b))
	s.reduce()
	return s
}

// Mul sets s to a * b (mod order) and returns s.
func (s *ModScalar) Mul(a, b Scalar) Scalar {
	s.inner.Mul(value(a), value(b))
	s.reduce()
	return s
}

// Negate sets s to -a (mod order) and returns s.
func (s *ModScalar) Negate(a Scalar) Scalar {
	s.inner.Neg(value(a))
	s.reduce()
	return s
}

// Invert sets s to a^(-1) (mod order) and returns s.
// Returns an error if a is zero, as zero has no multiplicative inverse.
func (s *ModScalar) Invert(a Scalar) (Scalar, error) {
	if a.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	if s.inner.ModInverse(value(a), s.order) == nil {
		return nil, errors.New("scalar is not invertible")
	}
	return s, nil
}

// Set copies the value of a into s and returns s.
func (s *ModScalar) Set(a Scalar) Scalar {
	s.inner.Set(value(a))
	s.reduce()
	return s
}

// SetUint64 sets s to v (mod order) and returns s.
func (s *ModScalar) SetUint64(v uint64) Scalar {
	s.inner.SetUint64(v)
	s.reduce()
	return s
}

// SetBigInt sets s to v (mod order) and returns s. Negative values are
// mapped to their non-negative representative.
func (s *ModScalar) SetBigInt(v *big.Int) Scalar {
	s.inner.Set(v)
	s.reduce()
	return s
}

// BigInt returns a copy of the scalar value.
func (s *ModScalar) BigInt() *big.Int {
	return new(big.Int).Set(s.inner)
}

// Bytes returns the scalar as a fixed-width big-endian byte slice whose
// length is the byte length of the order.
func (s *ModScalar) Bytes() []byte {
	return s.inner.FillBytes(make([]byte, s.size))
}

// SetBytes sets s from a big-endian byte slice and returns s.
// The value is reduced modulo the order.
func (s *ModScalar) SetBytes(data []byte) (Scalar, error) {
	s.inner.SetBytes(data)
	s.reduce()
	return s, nil
}

// Equal reports whether s and b represent the same scalar value.
func (s *ModScalar) Equal(b Scalar) bool {
	return s.inner.Cmp(value(b)) == 0
}

// IsZero reports whether s is the zero scalar.
func (s *ModScalar) IsZero() bool {
	return s.inner.Sign() == 0
}
