package shamir

import (
	"fmt"
	"io"
	"math/big"
	"slices"

	"github.com/f3rmion/elshare"
	"github.com/f3rmion/elshare/randutil"
)

var (
	// ErrInvalidThreshold is returned when t < 1, t > n, or n does not
	// fit below the prime.
	ErrInvalidThreshold = fmt.Errorf("%w: threshold must satisfy 1 <= t <= n < prime", elshare.ErrValidation)

	// ErrInvalidSecret is returned for a secret outside [0, prime).
	ErrInvalidSecret = fmt.Errorf("%w: secret must be in [0, prime)", elshare.ErrValidation)

	// ErrInvalidPrime is returned when the modulus is not a prime.
	ErrInvalidPrime = fmt.Errorf("%w: modulus must be prime", elshare.ErrValidation)

	// ErrInvalidIndex is returned for a share index outside [1, prime).
	ErrInvalidIndex = fmt.Errorf("%w: share index must be in [1, prime)", elshare.ErrValidation)

	// ErrInvalidShare is returned for a share value outside [0, prime).
	ErrInvalidShare = fmt.Errorf("%w: share value must be in [0, prime)", elshare.ErrValidation)

	// ErrUnknownShare is returned when a requested share index is not held.
	ErrUnknownShare = fmt.Errorf("%w: share index not held", elshare.ErrValidation)

	// ErrInsufficientShares is returned when fewer than t shares are held.
	ErrInsufficientShares = fmt.Errorf("%w: fewer shares than the threshold", elshare.ErrInsufficientShares)
)

// Share is one evaluation f(Index) = Value of the sharing polynomial.
type Share struct {
	Index int
	Value *big.Int
}

// Sharing is a (t, n) Shamir sharing of a secret modulo a prime.
//
// A Sharing is created either by splitting a secret ([New]) or from a
// set of existing shares ([FromShares]); in both cases the secret is
// known once construction succeeds. Derived sharings are new values and
// never modify their source, so a Sharing is safe for concurrent reads.
type Sharing struct {
	shares    map[int]*big.Int
	threshold int
	total     int
	prime     *big.Int
	secret    *big.Int
}

func checkPrime(prime *big.Int) error {
	if prime == nil || prime.Cmp(big.NewInt(2)) < 0 || !prime.ProbablyPrime(20) {
		return ErrInvalidPrime
	}
	return nil
}

// New splits secret into n shares with threshold t by evaluating a random
// polynomial of degree t-1 with constant term secret at x = 1..n.
//
// The t-1 higher coefficients are drawn uniformly from [0, prime) out of
// rng, or crypto/rand when rng is nil. A seeded rng makes the sharing
// reproducible.
func New(rng io.Reader, secret *big.Int, t, n int, prime *big.Int) (*Sharing, error) {
	if err := checkPrime(prime); err != nil {
		return nil, err
	}
	if t < 1 || t > n || big.NewInt(int64(n)).Cmp(prime) >= 0 {
		return nil, ErrInvalidThreshold
	}
	if secret == nil || secret.Sign() < 0 || secret.Cmp(prime) >= 0 {
		return nil, ErrInvalidSecret
	}

	coeffs := make([]*big.Int, t)
	coeffs[0] = new(big.Int).Set(secret)
	for i := 1; i < t; i++ {
		c, err := randutil.Int(rng, prime)
		if err != nil {
			return nil, fmt.Errorf("failed to sample coefficient: %w", err)
		}
		coeffs[i] = c
	}

	shares := make(map[int]*big.Int, n)
	for x := 1; x <= n; x++ {
		shares[x] = evalPolynomial(coeffs, big.NewInt(int64(x)), prime)
	}

	return &Sharing{
		shares:    shares,
		threshold: t,
		total:     n,
		prime:     new(big.Int).Set(prime),
		secret:    coeffs[0],
	}, nil
}

// FromShares wraps existing shares (index to value) as a sharing with
// threshold t and reconstructs the secret. The share count becomes n.
// It fails with [ErrInsufficientShares] if fewer than t shares are given.
//
// t may exceed the number of shares only in the sense that the error is
// reported by reconstruction, not by parameter validation.
func FromShares(shares map[int]*big.Int, t int, prime *big.Int) (*Sharing, error) {
	if err := checkPrime(prime); err != nil {
		return nil, err
	}
	if t < 1 {
		return nil, ErrInvalidThreshold
	}

	held := make(map[int]*big.Int, len(shares))
	for i, v := range shares {
		if i < 1 || big.NewInt(int64(i)).Cmp(prime) >= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, i)
		}
		if v == nil || v.Sign() < 0 || v.Cmp(prime) >= 0 {
			return nil, fmt.Errorf("%w: index %d", ErrInvalidShare, i)
		}
		held[i] = new(big.Int).Set(v)
	}

	s := &Sharing{
		shares:    held,
		threshold: t,
		total:     len(held),
		prime:     new(big.Int).Set(prime),
	}
	secret, err := s.Reconstruct()
	if err != nil {
		return nil, err
	}
	s.secret = secret
	return s, nil
}

// evalPolynomial returns sum(coeffs[i] * x^i) mod prime by Horner's rule.
func evalPolynomial(coeffs []*big.Int, x, prime *big.Int) *big.Int {
	y := new(big.Int)
	for i := len(coeffs) - 1; i >= 0; i-- {
		y.Mul(y, x)
		y.Add(y, coeffs[i])
		y.Mod(y, prime)
	}
	return y
}

// indices returns the held share indices in ascending order.
func (s *Sharing) indices() []int {
	idx := make([]int, 0, len(s.shares))
	for i := range s.shares {
		idx = append(idx, i)
	}
	slices.Sort(idx)
	return idx
}

// Reconstruct interpolates the sharing polynomial at zero over every held
// share:
//
//	secret = sum_j y_j * prod_{m != j} (-x_m) / (x_j - x_m)  mod prime
//
// It fails with [ErrInsufficientShares] when fewer than t shares are held.
func (s *Sharing) Reconstruct() (*big.Int, error) {
	if len(s.shares) < s.threshold {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(s.shares), s.threshold)
	}

	p := s.prime
	idx := s.indices()
	secret := new(big.Int)
	num := new(big.Int)
	den := new(big.Int)
	term := new(big.Int)
	for _, j := range idx {
		xj := big.NewInt(int64(j))
		num.SetInt64(1)
		den.SetInt64(1)
		for _, m := range idx {
			if m == j {
				continue
			}
			xm := big.NewInt(int64(m))
			num.Mul(num, term.Neg(xm))
			num.Mod(num, p)
			den.Mul(den, term.Sub(xj, xm))
			den.Mod(den, p)
		}
		if den.ModInverse(den, p) == nil {
			// distinct indices below a prime always invert
			return nil, fmt.Errorf("%w: duplicate index %d", ErrInvalidIndex, j)
		}
		term.Mul(num, den)
		term.Mul(term, s.shares[j])
		secret.Add(secret, term)
		secret.Mod(secret, p)
	}
	return secret, nil
}

// SelectThresholdShares returns a new sharing holding exactly t shares
// chosen uniformly at random, without replacement, from the held ones.
// The secret carries over.
func (s *Sharing) SelectThresholdShares(rng io.Reader) (*Sharing, error) {
	if s.threshold > len(s.shares) {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(s.shares), s.threshold)
	}
	idx := s.indices()
	picks, err := randutil.Sample(rng, len(idx), s.threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to select shares: %w", err)
	}

	selected := make(map[int]*big.Int, len(picks))
	for _, k := range picks {
		i := idx[k]
		selected[i] = new(big.Int).Set(s.shares[i])
	}
	return &Sharing{
		shares:    selected,
		threshold: s.threshold,
		total:     len(selected),
		prime:     s.prime,
		secret:    new(big.Int).Set(s.secret),
	}, nil
}

// Subset returns a new sharing over the named shares only. It fails with
// [ErrUnknownShare] if an index is not held and with
// [ErrInsufficientShares] if fewer than t indices are named.
func (s *Sharing) Subset(indices ...int) (*Sharing, error) {
	selected := make(map[int]*big.Int, len(indices))
	for _, i := range indices {
		v, ok := s.shares[i]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownShare, i)
		}
		selected[i] = v
	}
	return FromShares(selected, s.threshold, s.prime)
}

// Reshare converts the sharing into a fresh (newT, newN) sharing of the
// same secret without reconstructing it.
//
// Every held share v_i is itself split into newN sub-shares with
// threshold newT. For each new index j, the sub-shares {(i, sub_i(j))}
// form a sharing of the new share j in the old indices, which is
// interpolated with the threshold of s. The new shares are the results.
//
// All sub-sharings draw from the one rng in ascending order of the old
// index, so a seeded rng reproduces the result exactly.
func (s *Sharing) Reshare(rng io.Reader, newT, newN int) (*Sharing, error) {
	if s.threshold > len(s.shares) {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(s.shares), s.threshold)
	}

	// columns[j][i] is sub-share j of old share i.
	columns := make(map[int]map[int]*big.Int, newN)
	for _, i := range s.indices() {
		sub, err := New(rng, s.shares[i], newT, newN, s.prime)
		if err != nil {
			return nil, fmt.Errorf("failed to split share %d: %w", i, err)
		}
		for j, v := range sub.shares {
			if columns[j] == nil {
				columns[j] = make(map[int]*big.Int, len(s.shares))
			}
			columns[j][i] = v
		}
	}

	reshared := make(map[int]*big.Int, newN)
	for j, col := range columns {
		c, err := FromShares(col, s.threshold, s.prime)
		if err != nil {
			return nil, fmt.Errorf("failed to combine sub-shares for index %d: %w", j, err)
		}
		reshared[j] = c.secret
	}
	return FromShares(reshared, newT, s.prime)
}

// Secret returns a copy of the shared secret.
func (s *Sharing) Secret() *big.Int {
	return new(big.Int).Set(s.secret)
}

// Threshold returns t.
func (s *Sharing) Threshold() int {
	return s.threshold
}

// Total returns n, the number of shares the sharing holds.
func (s *Sharing) Total() int {
	return s.total
}

// Prime returns a copy of the field modulus.
func (s *Sharing) Prime() *big.Int {
	return new(big.Int).Set(s.prime)
}

// Share returns a copy of share i.
func (s *Sharing) Share(i int) (*big.Int, bool) {
	v, ok := s.shares[i]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Shares returns copies of all held shares in ascending index order.
func (s *Sharing) Shares() []Share {
	idx := s.indices()
	out := make([]Share, len(idx))
	for k, i := range idx {
		out[k] = Share{Index: i, Value: new(big.Int).Set(s.shares[i])}
	}
	return out
}

// Map returns a copy of the held shares keyed by index, in the form
// accepted by [FromShares].
func (s *Sharing) Map() map[int]*big.Int {
	out := make(map[int]*big.Int, len(s.shares))
	for i, v := range s.shares {
		out[i] = new(big.Int).Set(v)
	}
	return out
}
