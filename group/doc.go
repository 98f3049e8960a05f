// Package group defines abstract interfaces for the prime-order
// cryptographic groups that carry ElGamal share encryption.
//
// This package provides three core interfaces that abstract over the
// mathematical operations needed by the cipher and the discrete log
// solver:
//
//   - [Scalar]: Elements of the scalar field (integers modulo the group order)
//   - [Point]: Elements of the group (points on an elliptic curve)
//   - [Group]: Factory and utility methods for creating scalars and points
//
// # Design Philosophy
//
// The interfaces use a mutable receiver pattern for efficiency. Operations
// like Add, Mul, and ScalarMult set the receiver to the result and return it,
// allowing method chaining while minimizing allocations:
//
//	// Compute a + b*c
//	result := g.NewScalar().Mul(b, c)
//	result = g.NewScalar().Add(a, result)
//
// All operations that can fail return errors rather than panicking, making
// error handling explicit and predictable.
//
// # Implementing a Group
//
// To implement these interfaces for a new elliptic curve:
//
//  1. Use [ModScalar] for scalars, or wrap a native field element that
//     implements [Scalar]
//  2. Create a Point type that wraps your curve point and implements [Point]
//  3. Create a Group type that implements [Group] as a factory
//  4. Run the conformance suite in package grouptest from your tests
//
// See the bls12381, bjj, secp256k1 and ed25519 packages for complete
// implementations.
//
// # Encoding Requirements
//
// [Point.Bytes] must be canonical: the discrete log solver hashes the
// encoding of every baby step, so equal points must encode identically.
// The identity element must have an encoding of its own.
package group
