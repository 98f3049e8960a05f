package dlog

import (
	"errors"

	"github.com/f3rmion/elshare/group"
)

// ErrNotFound is returned when no exponent in [0, limit) maps base to
// target. It is an expected outcome, not a malfunction.
var ErrNotFound = errors.New("dlog: no discrete logarithm within bound")

// Solver computes bounded discrete logarithms in a group with the
// baby-step giant-step method.
//
// A Solver holds no per-call state and is safe for concurrent use.
type Solver struct {
	group  group.Group
	hasher Hasher
}

// New returns a solver for g that keys its baby-step table with SHA-256.
func New(g group.Group) *Solver {
	return NewWithHasher(g, &SHA256Hasher{})
}

// NewWithHasher returns a solver that keys its baby-step table with h.
func NewWithHasher(g group.Group, h Hasher) *Solver {
	return &Solver{group: g, hasher: h}
}

// Group returns the group the solver operates in.
func (s *Solver) Group() group.Group {
	return s.group
}

// isqrtCeil returns the smallest m with m*m >= n.
func isqrtCeil(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	lo, hi := uint64(1), uint64(1)<<32
	for lo < hi {
		mid := lo + (hi-lo)/2
		if mid*mid >= n {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// Solve returns the unique x in [0, limit) with x*base == target, or
// ErrNotFound.
//
// The search costs O(sqrt(limit)) group operations and keeps a table of
// ceil(sqrt(limit)) entries for the duration of the call. It is
// deterministic in its inputs.
func (s *Solver) Solve(base, target group.Point, limit uint64) (uint64, error) {
	if limit == 0 {
		return 0, ErrNotFound
	}
	if target.IsIdentity() {
		return 0, nil
	}
	if limit > 1 && target.Equal(base) {
		return 1, nil
	}

	g := s.group
	m := isqrtCeil(limit)

	// Baby steps: j*base for j in [0, m).
	table := make(map[[32]byte]uint64, m)
	current := g.NewPoint()
	for j := uint64(0); j < m; j++ {
		table[s.hasher.Key(current.Bytes())] = j
		current = g.NewPoint().Add(current, base)
	}

	// Giant stride: -m*base.
	stride := g.NewPoint().ScalarMult(g.NewScalar().SetUint64(m), base)
	stride = g.NewPoint().Negate(stride)

	current = g.NewPoint().Set(target)
	for i := uint64(0); i < m; i++ {
		if j, ok := table[s.hasher.Key(current.Bytes())]; ok {
			x := i*m + j
			if x < limit && s.verify(base, target, x) {
				return x, nil
			}
		}
		current = g.NewPoint().Add(current, stride)
	}

	return 0, ErrNotFound
}

// verify checks x*base == target by exact point equality.
func (s *Solver) verify(base, target group.Point, x uint64) bool {
	candidate := s.group.NewPoint().ScalarMult(s.group.NewScalar().SetUint64(x), base)
	return candidate.Equal(target)
}
