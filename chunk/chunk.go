// Package chunk splits field elements into fixed-base digits and joins
// them back.
//
// A value v in [0, P) is written as m little-endian digits in base B,
// where m = ceil(log_B P) is fixed by the modulus, so every value maps to
// a digit vector of the same length:
//
//	v = d_0 + d_1*B + ... + d_{m-1}*B^{m-1}
//
// Each digit is small enough for a bounded discrete log, which is what
// lets ElGamal carry full-size shares.
package chunk

import (
	"fmt"
	"math/big"

	"github.com/f3rmion/elshare"
)

var (
	// ErrInvalidBase is returned for a base below 2.
	ErrInvalidBase = fmt.Errorf("%w: chunk base must be at least 2", elshare.ErrValidation)
	// ErrInvalidModulus is returned for a modulus below 2.
	ErrInvalidModulus = fmt.Errorf("%w: chunk modulus must be at least 2", elshare.ErrValidation)
)

// Chunker converts between values modulo P and their base-B digits.
// A Chunker is immutable and safe for concurrent use.
type Chunker struct {
	base    uint64
	bigBase *big.Int
	modulus *big.Int
	count   int
}

// New returns a chunker for base b and modulus p.
func New(b uint64, p *big.Int) (*Chunker, error) {
	if b < 2 {
		return nil, ErrInvalidBase
	}
	if p == nil || p.Cmp(big.NewInt(2)) < 0 {
		return nil, ErrInvalidModulus
	}

	bigBase := new(big.Int).SetUint64(b)

	// count is the smallest m with b^m >= p.
	count := 0
	for pow := big.NewInt(1); pow.Cmp(p) < 0; pow.Mul(pow, bigBase) {
		count++
	}

	return &Chunker{
		base:    b,
		bigBase: bigBase,
		modulus: new(big.Int).Set(p),
		count:   count,
	}, nil
}

// Base returns B.
func (c *Chunker) Base() uint64 {
	return c.base
}

// Modulus returns a copy of P.
func (c *Chunker) Modulus() *big.Int {
	return new(big.Int).Set(c.modulus)
}

// Count returns the number of digits m every value is split into.
func (c *Chunker) Count() int {
	return c.count
}

// Chunk returns the m base-B digits of v, least significant first.
// v is expected to lie in [0, P); digits beyond position m-1 are dropped.
func (c *Chunker) Chunk(v *big.Int) []uint64 {
	digits := make([]uint64, c.count)
	rest := new(big.Int).Set(v)
	digit := new(big.Int)
	for j := range digits {
		rest.DivMod(rest, c.bigBase, digit)
		digits[j] = digit.Uint64()
	}
	return digits
}

// Reassemble returns sum(digits[j] * B^j) mod P.
//
// The reduction is applied unconditionally: digit vectors that did not
// come from Chunk may sum past P and still map into the field.
func (c *Chunker) Reassemble(digits []uint64) *big.Int {
	v := new(big.Int)
	weight := big.NewInt(1)
	term := new(big.Int)
	for _, d := range digits {
		term.SetUint64(d)
		term.Mul(term, weight)
		v.Add(v, term)
		weight.Mul(weight, c.bigBase)
	}
	return v.Mod(v, c.modulus)
}
