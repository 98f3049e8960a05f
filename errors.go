package elshare

import "errors"

// Error categories. Every error returned by the packages in this module
// wraps exactly one of these, so callers can branch with [errors.Is]
// without knowing the package-specific sentinel.
var (
	// ErrValidation marks out-of-range inputs: messages, thresholds,
	// nonces, share indices, and mismatched list lengths.
	ErrValidation = errors.New("elshare: invalid input")

	// ErrDecryption marks a failed bounded discrete log during decryption.
	// The cause is deliberately ambiguous: a wrong key and an out-of-range
	// plaintext are indistinguishable.
	ErrDecryption = errors.New("elshare: decryption failed")

	// ErrInsufficientShares marks a reconstruction attempted with fewer
	// shares than the threshold.
	ErrInsufficientShares = errors.New("elshare: insufficient shares")
)
