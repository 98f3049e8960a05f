package bls12381

import (
	"io"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/f3rmion/elshare/group"
)

// curveOrder is the order r of the G1 subgroup, equal to the modulus of
// the BLS12-381 scalar field.
var curveOrder = fr.Modulus()

// Point represents an element of the BLS12-381 G1 subgroup.
// It implements [group.Point] by wrapping gnark-crypto's G1Affine.
//
// The identity element is the point at infinity, which gnark-crypto
// represents as the zero value (0, 0).
type Point struct {
	inner curve.G1Affine
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	aPoint := a.(*Point)
	bPoint := b.(*Point)
	p.inner.Add(&aPoint.inner, &bPoint.inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	aPoint := a.(*Point)
	bPoint := b.(*Point)
	var negB curve.G1Affine
	negB.Neg(&bPoint.inner)
	p.inner.Add(&aPoint.inner, &negB)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	aPoint := a.(*Point)
	p.inner.Neg(&aPoint.inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	qPoint := q.(*Point)
	k := s.BigInt()
	if k.Sign() == 0 || qPoint.inner.IsInfinity() {
		p.inner = curve.G1Affine{}
		return p
	}
	p.inner.ScalarMultiplication(&qPoint.inner, k)
	return p
}

// Set copies the value of a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	aPoint := a.(*Point)
	p.inner.Set(&aPoint.inner)
	return p
}

// Bytes returns the 48-byte compressed point encoding. The point at
// infinity has its own flagged encoding.
func (p *Point) Bytes() []byte {
	bytes := p.inner.Bytes()
	return bytes[:]
}

// SetBytes sets p from a compressed or uncompressed point encoding and
// returns p. Points outside the G1 subgroup are rejected.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if err := p.inner.Unmarshal(data); err != nil {
		return nil, err
	}
	return p, nil
}

// Equal reports whether p and b represent the same curve point.
func (p *Point) Equal(b group.Point) bool {
	bPoint := b.(*Point)
	return p.inner.Equal(&bPoint.inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// G1 implements [group.Group] for the G1 subgroup of BLS12-381.
//
// G1 is a zero-sized type. Create an instance with &G1{} or new(G1).
type G1 struct{}

// Name returns "bls12-381".
func (g *G1) Name() string {
	return "bls12-381"
}

// NewScalar returns a new scalar initialized to zero.
func (g *G1) NewScalar() group.Scalar {
	return group.NewModScalar(curveOrder)
}

// NewPoint returns a new point initialized to the point at infinity.
func (g *G1) NewPoint() group.Point {
	return &Point{}
}

// Generator returns the standard G1 generator.
func (g *G1) Generator() group.Point {
	_, _, g1, _ := curve.Generators()
	return &Point{inner: g1}
}

// RandomScalar returns a scalar uniformly distributed in [0, r).
func (g *G1) RandomScalar(r io.Reader) (group.Scalar, error) {
	return group.RandomModScalar(r, curveOrder)
}

// Order returns the G1 subgroup order as a big-endian byte slice.
func (g *G1) Order() []byte {
	return curveOrder.Bytes()
}

// Modulus returns a copy of the subgroup order.
func Modulus() *big.Int {
	return new(big.Int).Set(curveOrder)
}
