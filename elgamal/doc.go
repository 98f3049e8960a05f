// Package elgamal implements additively homomorphic ("exponential")
// ElGamal over a [group.Group] for messages in a small range.
//
// A message m is encoded as the point m*G, so decryption yields m*G and
// must solve a discrete log to return m. The message space is bounded by
// a caller-chosen limit; the dlog package solves the log in
// O(sqrt(limit)). Larger values are carried by the encshare package,
// which splits them into digits below the limit.
//
// # Encryption
//
//	R = r*G
//	C = r*PK + m*G
//
// with r uniform in [1, order). [Cipher.Encrypt] draws a fresh r per
// call. [Cipher.NewEphemeral] and [Cipher.Seal] split the computation so
// that callers can supply r and reuse R and r*PK across messages.
//
// # Decryption
//
//	m*G = C - sk*R
//
// followed by a bounded discrete log. If no m below the limit exists,
// [Cipher.Decrypt] returns [ErrDecryptionFailed]; this happens both with
// the wrong key and with an out-of-range message, and the two cases
// cannot be told apart.
//
// # Keys
//
// [GenerateKey] draws sk uniformly from [1, order) and sets PK = sk*G.
// [GenerateKeyFromSeed] derives the same pair for the same seed.
package elgamal
