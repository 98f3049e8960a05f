package secp256k1

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/f3rmion/elshare/group"
)

var curveOrder = new(big.Int).Set(btcec.S256().Params().N)

// identityEncoding is the single-byte encoding of the point at infinity,
// which has no SEC1 compressed form.
var identityEncoding = []byte{0x00}

// Point represents a point on secp256k1. It implements [group.Point] by
// wrapping a btcec Jacobian point that is kept in affine form (Z = 1)
// after every operation, or all-zero for the point at infinity.
type Point struct {
	inner btcec.JacobianPoint
}

func (p *Point) normalize() *Point {
	if p.inner.Z.Normalize().IsZero() ||
		(p.inner.X.Normalize().IsZero() && p.inner.Y.Normalize().IsZero()) {
		p.inner.X.Zero()
		p.inner.Y.Zero()
		p.inner.Z.Zero()
		return p
	}
	p.inner.ToAffine()
	return p
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	aPoint := a.(*Point)
	bPoint := b.(*Point)
	var r btcec.JacobianPoint
	btcec.AddNonConst(&aPoint.inner, &bPoint.inner, &r)
	p.inner = r
	return p.normalize()
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var negB Point
	negB.Negate(b)
	return p.Add(a, &negB)
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	aPoint := a.(*Point)
	p.inner.Set(&aPoint.inner)
	if p.IsIdentity() {
		return p
	}
	p.inner.Y.Negate(1).Normalize()
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	qPoint := q.(*Point)
	if s.IsZero() || qPoint.IsIdentity() {
		p.inner = btcec.JacobianPoint{}
		return p
	}
	var k btcec.ModNScalar
	k.SetByteSlice(s.BigInt().FillBytes(make([]byte, 32)))
	var r btcec.JacobianPoint
	btcec.ScalarMultNonConst(&k, &qPoint.inner, &r)
	p.inner = r
	return p.normalize()
}

// Set copies the value of a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	aPoint := a.(*Point)
	p.inner.Set(&aPoint.inner)
	return p
}

// Bytes returns the 33-byte SEC1 compressed encoding, or a single zero
// byte for the point at infinity.
func (p *Point) Bytes() []byte {
	if p.IsIdentity() {
		return append([]byte(nil), identityEncoding...)
	}
	x, y := p.inner.X, p.inner.Y
	return btcec.NewPublicKey(&x, &y).SerializeCompressed()
}

// SetBytes sets p from a SEC1 encoding (compressed or uncompressed) or
// the single-byte identity encoding and returns p.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) == 1 && data[0] == identityEncoding[0] {
		p.inner = btcec.JacobianPoint{}
		return p, nil
	}
	if len(data) != 33 && len(data) != 65 {
		return nil, errors.New("invalid point length")
	}
	pub, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, fmt.Errorf("invalid point: %w", err)
	}
	pub.AsJacobian(&p.inner)
	return p.normalize(), nil
}

// Equal reports whether p and b represent the same curve point.
func (p *Point) Equal(b group.Point) bool {
	bPoint := b.(*Point)
	if p.IsIdentity() || bPoint.IsIdentity() {
		return p.IsIdentity() == bPoint.IsIdentity()
	}
	return p.inner.X.Equals(&bPoint.inner.X) && p.inner.Y.Equals(&bPoint.inner.Y)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.inner.Z.IsZero()
}

// Curve implements [group.Group] for secp256k1.
type Curve struct{}

// Name returns "secp256k1".
func (g *Curve) Name() string {
	return "secp256k1"
}

// NewScalar returns a new scalar initialized to zero.
func (g *Curve) NewScalar() group.Scalar {
	return group.NewModScalar(curveOrder)
}

// NewPoint returns the point at infinity.
func (g *Curve) NewPoint() group.Point {
	return &Point{}
}

// Generator returns the standard base point G.
func (g *Curve) Generator() group.Point {
	var one btcec.ModNScalar
	one.SetInt(1)
	var p Point
	btcec.ScalarBaseMultNonConst(&one, &p.inner)
	return p.normalize()
}

// RandomScalar returns a scalar uniformly distributed in [0, n).
func (g *Curve) RandomScalar(r io.Reader) (group.Scalar, error) {
	return group.RandomModScalar(r, curveOrder)
}

// Order returns the curve order n as a big-endian byte slice.
func (g *Curve) Order() []byte {
	return curveOrder.Bytes()
}
