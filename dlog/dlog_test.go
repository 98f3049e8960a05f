package dlog

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/elshare/bjj"
	"github.com/f3rmion/elshare/bls12381"
	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/randutil"
)

func mul(g group.Group, x uint64, p group.Point) group.Point {
	return g.NewPoint().ScalarMult(g.NewScalar().SetUint64(x), p)
}

func TestIsqrtCeil(t *testing.T) {
	cases := map[uint64]uint64{
		0: 0, 1: 1, 2: 2, 4: 2, 5: 3, 9: 3, 10: 4,
		1 << 16: 256, 1<<16 + 1: 257,
	}
	for n, want := range cases {
		assert.Equal(t, want, isqrtCeil(n), "isqrtCeil(%d)", n)
	}
}

func TestSolve(t *testing.T) {
	g := &bls12381.G1{}
	s := New(g)
	G := g.Generator()
	const limit = 1 << 16

	t.Run("KnownExponent", func(t *testing.T) {
		x, err := s.Solve(G, mul(g, 0x5678, G), limit)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x5678), x)
	})

	t.Run("Boundaries", func(t *testing.T) {
		for _, want := range []uint64{0, 1, 2, 255, 256, 257, limit - 1} {
			x, err := s.Solve(G, mul(g, want, G), limit)
			require.NoError(t, err, "exponent %d", want)
			assert.Equal(t, want, x)
		}
	})

	t.Run("RandomExponents", func(t *testing.T) {
		r := randutil.NewSeeded(42)
		for i := 0; i < 5; i++ {
			v, err := randutil.Int(r, bigUint(limit))
			require.NoError(t, err)
			want := v.Uint64()
			x, err := s.Solve(G, mul(g, want, G), limit)
			require.NoError(t, err)
			assert.Equal(t, want, x)
		}
	})

	t.Run("OutOfRangeNotFound", func(t *testing.T) {
		_, err := s.Solve(G, mul(g, limit, G), limit)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("NonSquareLimitStaysInBound", func(t *testing.T) {
		// m = 4 covers exponents up to 15; 12 is outside [0, 10).
		_, err := s.Solve(G, mul(g, 12, G), 10)
		assert.ErrorIs(t, err, ErrNotFound)

		x, err := s.Solve(G, mul(g, 9, G), 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(9), x)
	})

	t.Run("ZeroLimit", func(t *testing.T) {
		_, err := s.Solve(G, g.NewPoint(), 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("BaseEqualsTargetNeedsRoom", func(t *testing.T) {
		_, err := s.Solve(G, G, 1)
		assert.ErrorIs(t, err, ErrNotFound)

		x, err := s.Solve(G, G, 2)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), x)
	})

	t.Run("OtherBase", func(t *testing.T) {
		H := mul(g, 987654321, G)
		x, err := s.Solve(H, mul(g, 4242, H), limit)
		require.NoError(t, err)
		assert.Equal(t, uint64(4242), x)
	})
}

func TestHashers(t *testing.T) {
	g := &bjj.BJJ{}
	G := g.Generator()
	target := mul(g, 31337, G)

	for name, h := range map[string]Hasher{
		"sha256":  &SHA256Hasher{},
		"blake2b": &Blake2bHasher{},
	} {
		t.Run(name, func(t *testing.T) {
			x, err := NewWithHasher(g, h).Solve(G, target, 1<<16)
			require.NoError(t, err)
			assert.Equal(t, uint64(31337), x)
		})
	}
}

// collidingHasher maps every point to the same key, so only exact
// verification can tell a real hit from a false one.
type collidingHasher struct{}

func (collidingHasher) Key([]byte) [32]byte { return [32]byte{} }

func TestCollisionsAreVerified(t *testing.T) {
	g := &bjj.BJJ{}
	G := g.Generator()
	s := NewWithHasher(g, collidingHasher{})

	// Every lookup hits j = m-1; only the giant step with i*m + m-1 == x
	// passes verification.
	const limit = 64
	x, err := s.Solve(G, mul(g, 7*8+7, G), limit)
	require.NoError(t, err)
	assert.Equal(t, uint64(63), x)

	_, err = s.Solve(G, mul(g, 5, G), limit)
	assert.ErrorIs(t, err, ErrNotFound)
}

func bigUint(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}
