// Package encshare encrypts Shamir shares, or any value below the group
// order, under ElGamal public keys.
//
// Exponential ElGamal only decrypts small messages, so a share v is first
// split into m = ceil(log_B P) base-B digits by package chunk and each
// digit is encrypted on its own:
//
//	v = d_0 + d_1*B + ... + d_{m-1}*B^{m-1}
//	C_j = r_j*PK + d_j*G,  R_j = r_j*G
//
// Decryption solves m discrete logs below B and reassembles the digits.
// With B = 2^16 over BLS12-381 a share becomes 16 ciphertexts.
//
// # Randomness
//
// Two encryption modes are offered and neither is a default:
//
//   - [Encryptor.EncryptDistinctRandomness] draws a fresh r_j for every
//     digit.
//   - [Encryptor.EncryptSharedRandomness] reuses one caller-supplied r
//     for all digits, so all chunks carry the same R.
//
// [Encryptor.EncryptMultiReceiver] extends the shared mode to a list of
// recipients: one r and one R for every chunk of every share, which is
// how a dealer distributes a whole sharing in one message.
//
// # Wire format
//
// [Ciphertext] and [MultiCiphertext] marshal to JSON with hex-encoded
// canonical point encodings; [Encryptor.ParseCiphertext] and
// [Encryptor.ParseMultiCiphertext] read them back, validating every point
// against the encryptor's group.
package encshare
