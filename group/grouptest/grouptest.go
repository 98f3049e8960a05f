// Package grouptest provides a conformance suite for [group.Group]
// implementations.
package grouptest

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/f3rmion/elshare/group"
)

// Run exercises the scalar and point arithmetic of g.
func Run(t *testing.T, g group.Group) {
	t.Helper()
	t.Run("Scalar", func(t *testing.T) { testScalar(t, g) })
	t.Run("Point", func(t *testing.T) { testPoint(t, g) })
}

func randomScalar(t *testing.T, g group.Group) group.Scalar {
	t.Helper()
	s, err := group.RandomNonZeroScalar(g, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testScalar(t *testing.T, g group.Group) {
	order := group.Order(g)

	t.Run("AddSub", func(t *testing.T) {
		a := randomScalar(t, g)
		b := randomScalar(t, g)

		sum := g.NewScalar().Add(a, b)
		diff := g.NewScalar().Sub(sum, b)

		if !diff.Equal(a) {
			t.Error("(a+b)-b != a")
		}
	})

	t.Run("MulInvert", func(t *testing.T) {
		a := randomScalar(t, g)
		aInv, err := g.NewScalar().Invert(a)
		if err != nil {
			t.Fatal(err)
		}

		product := g.NewScalar().Mul(a, aInv)
		if !product.Equal(g.NewScalar().SetUint64(1)) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		if _, err := g.NewScalar().Invert(g.NewScalar()); err == nil {
			t.Error("expected error inverting zero")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		a := randomScalar(t, g)
		negA := g.NewScalar().Negate(a)

		if !g.NewScalar().Add(a, negA).IsZero() {
			t.Error("a + (-a) != 0")
		}
		if a.Equal(negA) {
			t.Error("a should not equal -a")
		}
	})

	t.Run("BigIntReduces", func(t *testing.T) {
		v := new(big.Int).Add(order, big.NewInt(7))
		s := g.NewScalar().SetBigInt(v)
		if s.BigInt().Cmp(big.NewInt(7)) != 0 {
			t.Errorf("order+7 reduced to %s", s.BigInt())
		}

		neg := g.NewScalar().SetBigInt(big.NewInt(-1))
		want := new(big.Int).Sub(order, big.NewInt(1))
		if neg.BigInt().Cmp(want) != 0 {
			t.Error("-1 should reduce to order-1")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a := randomScalar(t, g)

		restored, err := g.NewScalar().SetBytes(a.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})

	t.Run("NewScalarIsZero", func(t *testing.T) {
		if !g.NewScalar().IsZero() {
			t.Error("new scalar should be zero")
		}
	})

	t.Run("RandomScalarInRange", func(t *testing.T) {
		for i := 0; i < 16; i++ {
			s, err := g.RandomScalar(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}
			v := s.BigInt()
			if v.Sign() < 0 || v.Cmp(order) >= 0 {
				t.Fatalf("random scalar %s out of range", v)
			}
		}
	})
}

func testPoint(t *testing.T, g group.Group) {
	t.Run("AddSub", func(t *testing.T) {
		P := group.BaseMult(g, randomScalar(t, g))
		Q := group.BaseMult(g, randomScalar(t, g))

		sum := g.NewPoint().Add(P, Q)
		diff := g.NewPoint().Sub(sum, Q)

		if !diff.Equal(P) {
			t.Error("(P+Q)-Q != P")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		P := group.BaseMult(g, randomScalar(t, g))
		negP := g.NewPoint().Negate(P)

		if !g.NewPoint().Add(P, negP).IsIdentity() {
			t.Error("P + (-P) != identity")
		}
	})

	t.Run("ScalarMultDistributes", func(t *testing.T) {
		a := randomScalar(t, g)
		b := randomScalar(t, g)

		lhs := group.BaseMult(g, g.NewScalar().Add(a, b))
		rhs := g.NewPoint().Add(group.BaseMult(g, a), group.BaseMult(g, b))
		if !lhs.Equal(rhs) {
			t.Error("(a+b)G != aG + bG")
		}
	})

	t.Run("SmallMultiples", func(t *testing.T) {
		acc := g.NewPoint()
		for k := uint64(0); k < 8; k++ {
			want := group.BaseMult(g, g.NewScalar().SetUint64(k))
			if !acc.Equal(want) {
				t.Fatalf("%d additions of G != %dG", k, k)
			}
			acc = g.NewPoint().Add(acc, g.Generator())
		}
	})

	t.Run("OrderTimesGeneratorIsIdentity", func(t *testing.T) {
		minusOne := g.NewScalar().SetBigInt(big.NewInt(-1))
		P := group.BaseMult(g, minusOne)
		if !g.NewPoint().Add(P, g.Generator()).IsIdentity() {
			t.Error("(order-1)G + G != identity")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		P := group.BaseMult(g, randomScalar(t, g))

		restored, err := g.NewPoint().SetBytes(P.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(P) {
			t.Error("point bytes roundtrip failed")
		}
	})

	t.Run("CanonicalEncoding", func(t *testing.T) {
		a := randomScalar(t, g)
		P := group.BaseMult(g, a)
		Q := g.NewPoint().Add(group.BaseMult(g, g.NewScalar().Sub(a, g.NewScalar().SetUint64(1))), g.Generator())

		if string(P.Bytes()) != string(Q.Bytes()) {
			t.Error("equal points have different encodings")
		}
		if string(P.Bytes()) == string(g.Generator().Bytes()) && !P.Equal(g.Generator()) {
			t.Error("distinct points share an encoding")
		}
		if string(g.NewPoint().Bytes()) == string(g.Generator().Bytes()) {
			t.Error("identity and generator share an encoding")
		}
	})

	t.Run("IsIdentity", func(t *testing.T) {
		if !g.NewPoint().IsIdentity() {
			t.Error("new point should be identity")
		}
		if g.Generator().IsIdentity() {
			t.Error("generator should not be identity")
		}
		zero := group.BaseMult(g, g.NewScalar())
		if !zero.IsIdentity() {
			t.Error("0*G should be identity")
		}
	})
}
