// Package ed25519 provides the prime-order subgroup of the edwards25519
// curve as a [group.Group], backed by filippo.io/edwards25519.
//
// Only the ElGamal arithmetic is offered here; this is not an Ed25519
// signature implementation. Decoding rejects points with a torsion
// component so that every decoded point lies in the subgroup of order l.
package ed25519
