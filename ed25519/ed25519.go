package ed25519

import (
	"errors"
	"io"
	"math/big"

	"filippo.io/edwards25519"

	"github.com/f3rmion/elshare/group"
)

// curveOrder is the order l of the prime-order subgroup,
// 2^252 + 27742317777372353535851937790883648493.
var curveOrder, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// toScalar converts a group scalar into an edwards25519 scalar. The value
// is already reduced, so the canonical little-endian form always parses.
func toScalar(s group.Scalar) *edwards25519.Scalar {
	buf := s.BigInt().FillBytes(make([]byte, 32))
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	k, err := edwards25519.NewScalar().SetCanonicalBytes(buf)
	if err != nil {
		panic("ed25519: reduced scalar rejected: " + err.Error())
	}
	return k
}

// Point represents an element of the prime-order subgroup of the
// edwards25519 curve. It implements [group.Point].
type Point struct {
	inner *edwards25519.Point
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(a.(*Point).inner, b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	p.inner.Subtract(a.(*Point).inner, b.(*Point).inner)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Negate(a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMult(toScalar(s), q.(*Point).inner)
	return p
}

// Set copies the value of a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(a.(*Point).inner)
	return p
}

// Bytes returns the 32-byte canonical encoding.
func (p *Point) Bytes() []byte {
	return p.inner.Bytes()
}

// SetBytes sets p from a 32-byte encoding and returns p. Points outside
// the prime-order subgroup are rejected.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	q, err := edwards25519.NewIdentityPoint().SetBytes(data)
	if err != nil {
		return nil, err
	}
	// l*Q is computed as (l-1)*Q + Q.
	lMinusOne := group.NewModScalar(curveOrder).SetBigInt(big.NewInt(-1))
	check := edwards25519.NewIdentityPoint().ScalarMult(toScalar(lMinusOne), q)
	check.Add(check, q)
	if check.Equal(edwards25519.NewIdentityPoint()) != 1 {
		return nil, errors.New("point is not in the prime-order subgroup")
	}
	p.inner.Set(q)
	return p, nil
}

// Equal reports whether p and b represent the same curve point.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equal(b.(*Point).inner) == 1
}

// IsIdentity reports whether p is the neutral element.
func (p *Point) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

// Curve implements [group.Group] for the prime-order subgroup of
// edwards25519.
type Curve struct{}

// Name returns "ed25519".
func (g *Curve) Name() string {
	return "ed25519"
}

// NewScalar returns a new scalar initialized to zero.
func (g *Curve) NewScalar() group.Scalar {
	return group.NewModScalar(curveOrder)
}

// NewPoint returns the neutral element.
func (g *Curve) NewPoint() group.Point {
	return &Point{inner: edwards25519.NewIdentityPoint()}
}

// Generator returns the standard base point B.
func (g *Curve) Generator() group.Point {
	return &Point{inner: edwards25519.NewGeneratorPoint()}
}

// RandomScalar returns a scalar uniformly distributed in [0, l).
func (g *Curve) RandomScalar(r io.Reader) (group.Scalar, error) {
	return group.RandomModScalar(r, curveOrder)
}

// Order returns l as a big-endian byte slice.
func (g *Curve) Order() []byte {
	return curveOrder.Bytes()
}
