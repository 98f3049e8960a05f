// Package elshare declares the error categories shared by the elshare
// packages.
//
// The module splits secrets with Shamir threshold sharing (package
// shamir), reshares them to new thresholds without reconstructing them,
// and carries individual shares to their holders encrypted under
// exponential ElGamal (packages elgamal and encshare). Shares larger
// than a discrete log can recover are split into base-B digits (package
// chunk) and each digit is recovered by a baby-step giant-step search
// (package dlog).
//
// Curves plug in through the interfaces in package group; bls12381,
// bjj, secp256k1 and ed25519 provide implementations. Package session
// ties everything into a dealer and participant flow.
package elshare
