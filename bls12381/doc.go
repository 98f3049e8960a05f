// Package bls12381 provides the G1 subgroup of the BLS12-381 pairing
// curve as a [group.Group].
//
// This is the default group for share encryption. Its order r is a
// 255-bit prime:
//
//	52435875175126190479447740508185965837690552500527637822603658699938581184513
//
// so a share chunked in base 2^16 occupies 16 ciphertexts.
//
// The curve arithmetic is delegated to gnark-crypto. Points are kept in
// affine form and encoded in the 48-byte compressed format of the
// ZCash serialization, which is canonical and therefore suitable for the
// baby-step table of the discrete log solver.
package bls12381
