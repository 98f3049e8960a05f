package shamir

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/elshare"
	"github.com/f3rmion/elshare/bls12381"
	"github.com/f3rmion/elshare/randutil"
)

func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad integer literal %q", s)
	return v
}

// values renders the shares of s as decimal strings for comparison.
func values(s *Sharing) []string {
	out := make([]string, 0, s.Total())
	for _, sh := range s.Shares() {
		out = append(out, fmt.Sprintf("%d:%s", sh.Index, sh.Value))
	}
	return out
}

func testPrime(t *testing.T) *big.Int {
	return mustInt(t, "208351617316091241234326746312124448251235562226470491514186331217050270460481")
}

func testSecret(t *testing.T) *big.Int {
	return mustInt(t, "156402071732811106507596152138279689577457410967997136623970051482223809533794")
}

func TestNew(t *testing.T) {
	prime := testPrime(t)
	secret := testSecret(t)

	s, err := New(randutil.NewSeeded(42), secret, 5, 10, prime)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Threshold())
	assert.Equal(t, 10, s.Total())
	assert.Equal(t, 0, secret.Cmp(s.Secret()))
	assert.Equal(t, 0, prime.Cmp(s.Prime()))

	shares := s.Shares()
	require.Len(t, shares, 10)
	for k, sh := range shares {
		assert.Equal(t, k+1, sh.Index)
		assert.True(t, sh.Value.Sign() >= 0 && sh.Value.Cmp(prime) < 0)
	}

	t.Run("Deterministic", func(t *testing.T) {
		again, err := New(randutil.NewSeeded(42), secret, 5, 10, prime)
		require.NoError(t, err)
		assert.Equal(t, values(s), values(again))

		other, err := New(randutil.NewSeeded(43), secret, 5, 10, prime)
		require.NoError(t, err)
		assert.NotEqual(t, values(s), values(other))
	})

	t.Run("ThresholdOne", func(t *testing.T) {
		one, err := New(nil, secret, 1, 3, prime)
		require.NoError(t, err)
		for _, sh := range one.Shares() {
			assert.Equal(t, 0, secret.Cmp(sh.Value), "degree-0 polynomial is constant")
		}
	})

	t.Run("ZeroSecret", func(t *testing.T) {
		z, err := New(nil, big.NewInt(0), 3, 5, prime)
		require.NoError(t, err)
		got, err := z.Reconstruct()
		require.NoError(t, err)
		assert.Equal(t, 0, got.Sign())
	})
}

func TestNewValidation(t *testing.T) {
	prime := testPrime(t)
	secret := testSecret(t)

	cases := []struct {
		name   string
		secret *big.Int
		t, n   int
		prime  *big.Int
		want   error
	}{
		{"ThresholdAboveTotal", secret, 6, 5, prime, ErrInvalidThreshold},
		{"ZeroThreshold", secret, 0, 5, prime, ErrInvalidThreshold},
		{"TotalNotBelowPrime", big.NewInt(1), 2, 13, big.NewInt(13), ErrInvalidThreshold},
		{"SecretTooLarge", prime, 2, 3, prime, ErrInvalidSecret},
		{"NegativeSecret", big.NewInt(-1), 2, 3, prime, ErrInvalidSecret},
		{"NilSecret", nil, 2, 3, prime, ErrInvalidSecret},
		{"CompositeModulus", big.NewInt(1), 2, 3, big.NewInt(15), ErrInvalidPrime},
		{"NilModulus", big.NewInt(1), 2, 3, nil, ErrInvalidPrime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(nil, tc.secret, tc.t, tc.n, tc.prime)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, elshare.ErrValidation)
		})
	}
}

func TestReconstruct(t *testing.T) {
	prime := testPrime(t)
	secret := testSecret(t)

	s, err := New(randutil.NewSeeded(42), secret, 5, 10, prime)
	require.NoError(t, err)

	t.Run("AllShares", func(t *testing.T) {
		got, err := s.Reconstruct()
		require.NoError(t, err)
		assert.Equal(t, 0, secret.Cmp(got))
	})

	t.Run("AnyThresholdSubset", func(t *testing.T) {
		subsets := [][]int{
			{1, 2, 3, 4, 5},
			{6, 7, 8, 9, 10},
			{1, 3, 5, 7, 9},
			{2, 4, 6, 8, 10},
			{10, 1, 9, 2, 5},
		}
		for _, idx := range subsets {
			sub, err := s.Subset(idx...)
			require.NoError(t, err, "subset %v", idx)
			assert.Equal(t, 0, secret.Cmp(sub.Secret()), "subset %v", idx)
		}
	})

	t.Run("BelowThreshold", func(t *testing.T) {
		_, err := s.Subset(1, 2, 3, 4)
		assert.ErrorIs(t, err, ErrInsufficientShares)
		assert.ErrorIs(t, err, elshare.ErrInsufficientShares)
	})

	t.Run("UnknownIndex", func(t *testing.T) {
		_, err := s.Subset(1, 2, 3, 4, 11)
		assert.ErrorIs(t, err, ErrUnknownShare)
	})
}

func TestFromShares(t *testing.T) {
	prime := testPrime(t)
	secret := testSecret(t)

	s, err := New(randutil.NewSeeded(42), secret, 5, 10, prime)
	require.NoError(t, err)

	restored, err := FromShares(s.Map(), 5, prime)
	require.NoError(t, err)
	assert.Equal(t, 0, secret.Cmp(restored.Secret()))
	assert.Equal(t, 10, restored.Total())

	t.Run("TooFew", func(t *testing.T) {
		few := map[int]*big.Int{}
		for _, sh := range s.Shares()[:4] {
			few[sh.Index] = sh.Value
		}
		_, err := FromShares(few, 5, prime)
		assert.ErrorIs(t, err, ErrInsufficientShares)
	})

	t.Run("InvalidIndex", func(t *testing.T) {
		_, err := FromShares(map[int]*big.Int{0: big.NewInt(1)}, 1, prime)
		assert.ErrorIs(t, err, ErrInvalidIndex)
		_, err = FromShares(map[int]*big.Int{-3: big.NewInt(1)}, 1, prime)
		assert.ErrorIs(t, err, ErrInvalidIndex)
	})

	t.Run("InvalidValue", func(t *testing.T) {
		_, err := FromShares(map[int]*big.Int{1: prime}, 1, prime)
		assert.ErrorIs(t, err, ErrInvalidShare)
	})

	t.Run("InputNotAliased", func(t *testing.T) {
		m := s.Map()
		view, err := FromShares(m, 5, prime)
		require.NoError(t, err)
		m[1].SetInt64(0)
		v, ok := view.Share(1)
		require.True(t, ok)
		assert.NotEqual(t, 0, v.Sign())
	})

	t.Run("SmallField", func(t *testing.T) {
		// f(x) = 7 + 3x mod 11: f(1) = 10, f(2) = 2.
		view, err := FromShares(map[int]*big.Int{1: big.NewInt(10), 2: big.NewInt(2)}, 2, big.NewInt(11))
		require.NoError(t, err)
		assert.Equal(t, int64(7), view.Secret().Int64())
	})
}

func TestSelectThresholdShares(t *testing.T) {
	prime := testPrime(t)
	secret := testSecret(t)

	s, err := New(randutil.NewSeeded(42), secret, 5, 10, prime)
	require.NoError(t, err)

	rng := randutil.NewSeeded(7)
	for i := 0; i < 10; i++ {
		sel, err := s.SelectThresholdShares(rng)
		require.NoError(t, err)

		assert.Equal(t, 5, sel.Total())
		assert.Equal(t, 5, sel.Threshold())
		require.Len(t, sel.Shares(), 5)

		for _, sh := range sel.Shares() {
			orig, ok := s.Share(sh.Index)
			require.True(t, ok)
			assert.Equal(t, 0, orig.Cmp(sh.Value))
		}

		got, err := sel.Reconstruct()
		require.NoError(t, err)
		assert.Equal(t, 0, secret.Cmp(got))
	}

	assert.Equal(t, 10, s.Total(), "source sharing must not change")

	t.Run("Deterministic", func(t *testing.T) {
		a, err := s.SelectThresholdShares(randutil.NewSeeded(1))
		require.NoError(t, err)
		b, err := s.SelectThresholdShares(randutil.NewSeeded(1))
		require.NoError(t, err)
		assert.Equal(t, values(a), values(b))
	})

	t.Run("CoversAllIndices", func(t *testing.T) {
		seen := map[int]bool{}
		rng := randutil.NewSeeded(99)
		for i := 0; i < 50; i++ {
			sel, err := s.SelectThresholdShares(rng)
			require.NoError(t, err)
			for _, sh := range sel.Shares() {
				seen[sh.Index] = true
			}
		}
		assert.Len(t, seen, 10)
	})
}

func TestReshare(t *testing.T) {
	prime := testPrime(t)
	secret := testSecret(t)

	s, err := New(randutil.NewSeeded(42), secret, 5, 10, prime)
	require.NoError(t, err)

	r, err := s.Reshare(randutil.NewSeeded(53), 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Threshold())
	assert.Equal(t, 10, r.Total())
	assert.Equal(t, 0, secret.Cmp(r.Secret()))
	assert.NotEqual(t, values(s), values(r), "reshared values should be fresh")

	got, err := r.Reconstruct()
	require.NoError(t, err)
	assert.Equal(t, 0, secret.Cmp(got))

	sel, err := r.SelectThresholdShares(randutil.NewSeeded(1))
	require.NoError(t, err)
	assert.Equal(t, 0, secret.Cmp(sel.Secret()))

	t.Run("Deterministic", func(t *testing.T) {
		again, err := s.Reshare(randutil.NewSeeded(53), 5, 10)
		require.NoError(t, err)
		assert.Equal(t, values(r), values(again))
	})

	t.Run("ChangeParameters", func(t *testing.T) {
		for _, p := range [][2]int{{3, 7}, {7, 12}, {1, 1}, {10, 10}} {
			r, err := s.Reshare(nil, p[0], p[1])
			require.NoError(t, err, "reshare to %v", p)
			assert.Equal(t, p[0], r.Threshold())
			assert.Equal(t, p[1], r.Total())

			sub, err := r.SelectThresholdShares(nil)
			require.NoError(t, err)
			got, err := sub.Reconstruct()
			require.NoError(t, err)
			assert.Equal(t, 0, secret.Cmp(got), "reshare to %v", p)
		}
	})

	t.Run("FromThresholdSubset", func(t *testing.T) {
		sub, err := s.Subset(2, 4, 6, 8, 10)
		require.NoError(t, err)
		r, err := sub.Reshare(nil, 4, 6)
		require.NoError(t, err)
		assert.Equal(t, 0, secret.Cmp(r.Secret()))
	})

	t.Run("Chained", func(t *testing.T) {
		cur := s
		for i := 0; i < 3; i++ {
			cur, err = cur.Reshare(nil, 3+i, 6+i)
			require.NoError(t, err)
		}
		assert.Equal(t, 0, secret.Cmp(cur.Secret()))
	})

	t.Run("InvalidParameters", func(t *testing.T) {
		_, err := s.Reshare(nil, 4, 3)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})
}

func TestCurveOrderField(t *testing.T) {
	order := bls12381.Modulus()
	secret, err := randutil.Int(randutil.NewSeeded(5), order)
	require.NoError(t, err)

	s, err := New(nil, secret, 3, 5, order)
	require.NoError(t, err)
	sub, err := s.Subset(1, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, secret.Cmp(sub.Secret()))
}
