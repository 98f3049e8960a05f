// Package secp256k1 provides the secp256k1 curve as a [group.Group],
// backed by btcec.
//
// Points are encoded in SEC1 compressed form. The point at infinity,
// which SEC1 cannot express in compressed form, is encoded as a single
// zero byte so that every group element has a canonical encoding.
package secp256k1
