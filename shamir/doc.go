// Package shamir implements Shamir threshold secret sharing over a prime
// field, with re-randomizing resharing.
//
// A secret s in [0, P) is the constant term of a random polynomial f of
// degree t-1; share x is f(x) for x = 1..n. Any t shares determine f and
// therefore s = f(0) by Lagrange interpolation, while t-1 shares reveal
// nothing about s.
//
// # Construction
//
// [New] splits a secret. [FromShares] wraps shares received from
// elsewhere and reconstructs the secret immediately, failing with
// [ErrInsufficientShares] if fewer than t are given. Both return a
// [Sharing], and every derived sharing is a new value:
//
//	s, _ := shamir.New(nil, secret, 5, 10, prime)
//	sub, _ := s.SelectThresholdShares(nil) // 5 random shares
//	r, _ := s.Reshare(nil, 3, 7)           // fresh (3, 7) sharing of the same secret
//
// # Resharing
//
// [Sharing.Reshare] splits every held share again and recombines the
// sub-shares column by column, so the new shares are computed without
// the secret ever being assembled. The old and new sharings are
// independent: shares from one cannot be mixed with shares of the other.
//
// # Randomness
//
// Coefficients and subset choices are drawn from an explicit io.Reader.
// Passing nil selects crypto/rand; passing a randutil.Seeded reader makes
// every operation reproducible.
//
// The modulus is an arbitrary prime, independent of any curve. To encrypt
// shares with package encshare, use the group order as the prime.
package shamir
