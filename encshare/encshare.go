package encshare

import (
	"fmt"
	"io"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/elshare"
	"github.com/f3rmion/elshare/chunk"
	"github.com/f3rmion/elshare/elgamal"
	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/randutil"
)

var (
	// ErrInvalidShare is returned for a share outside [0, order).
	ErrInvalidShare = fmt.Errorf("%w: share must be in [0, order)", elshare.ErrValidation)

	// ErrInvalidRandomness is returned for a shared nonce outside
	// [1, order).
	ErrInvalidRandomness = fmt.Errorf("%w: nonce must be in [1, order)", elshare.ErrValidation)

	// ErrLengthMismatch is returned when the public key and share lists
	// of a multi-receiver encryption differ in length.
	ErrLengthMismatch = fmt.Errorf("%w: public key and share counts differ", elshare.ErrValidation)

	// ErrMalformedCiphertext is returned when a chunked ciphertext does not
	// hold exactly one entry per digit.
	ErrMalformedCiphertext = fmt.Errorf("%w: wrong number of chunks", elshare.ErrValidation)
)

// Ciphertext is a chunked share encryption: one ElGamal ciphertext per
// base-B digit, least significant digit first.
type Ciphertext []elgamal.Ciphertext

// MultiCiphertext holds the encryptions of several shares that share one
// nonce. R is common to every chunk of every recipient; Ciphertexts is
// keyed by the recipient's position in the public key list.
type MultiCiphertext struct {
	R           group.Point
	Ciphertexts map[int]Ciphertext
}

// Encryptor encrypts field elements of any size below the group order by
// splitting them into base-B digits and encrypting each digit separately.
//
// An Encryptor is immutable and safe for concurrent use.
type Encryptor struct {
	group   group.Group
	order   *big.Int
	chunker *chunk.Chunker
	cipher  *elgamal.Cipher
}

// New returns an encryptor over g with digit base b. Decryption solves
// one discrete log below b per digit, so b is usually 2^16.
func New(g group.Group, b uint64) (*Encryptor, error) {
	order := group.Order(g)
	c, err := chunk.New(b, order)
	if err != nil {
		return nil, err
	}
	return &Encryptor{
		group:   g,
		order:   order,
		chunker: c,
		cipher:  elgamal.New(g),
	}, nil
}

// Group returns the group the encryptor operates in.
func (e *Encryptor) Group() group.Group {
	return e.group
}

// Chunker returns the digit codec used by e.
func (e *Encryptor) Chunker() *chunk.Chunker {
	return e.chunker
}

func (e *Encryptor) checkShare(share *big.Int) error {
	if share == nil || share.Sign() < 0 || share.Cmp(e.order) >= 0 {
		return ErrInvalidShare
	}
	return nil
}

func (e *Encryptor) nonce(r *big.Int) (group.Scalar, error) {
	if r == nil || r.Sign() <= 0 || r.Cmp(e.order) >= 0 {
		return nil, ErrInvalidRandomness
	}
	return e.group.NewScalar().SetBigInt(r), nil
}

// RandomNonce draws a nonce uniformly from [1, order) for use with
// EncryptSharedRandomness or EncryptMultiReceiver. A nil rng selects
// crypto/rand.
func (e *Encryptor) RandomNonce(rng io.Reader) (*big.Int, error) {
	return randutil.NonZeroInt(rng, e.order)
}

func (e *Encryptor) seal(eph *elgamal.Ephemeral, share *big.Int) (Ciphertext, error) {
	digits := e.chunker.Chunk(share)
	ct := make(Ciphertext, len(digits))
	for j, d := range digits {
		c, err := e.cipher.Seal(eph, d, e.chunker.Base())
		if err != nil {
			return nil, fmt.Errorf("failed to seal chunk %d: %w", j, err)
		}
		ct[j] = *c
	}
	return ct, nil
}

// EncryptSharedRandomness encrypts share under pk reusing the nonce r for
// every digit: R = r*G is computed once and every chunk carries it.
//
// Sharing r makes the ciphertext cheaper to produce and, since R repeats,
// smaller to store. The price is weaker per-chunk independence: the
// chunks are no longer independently randomized, and anyone who learns r
// learns every digit. Prefer EncryptDistinctRandomness unless the size
// or speed matters.
func (e *Encryptor) EncryptSharedRandomness(pk group.Point, share, r *big.Int) (Ciphertext, error) {
	if err := e.checkShare(share); err != nil {
		return nil, err
	}
	k, err := e.nonce(r)
	if err != nil {
		return nil, err
	}
	eph, err := e.cipher.NewEphemeral(pk, k)
	if err != nil {
		return nil, err
	}
	return e.seal(eph, share)
}

// EncryptDistinctRandomness encrypts share under pk with a fresh nonce
// per digit drawn from rng (crypto/rand when nil). Every chunk has its
// own R.
func (e *Encryptor) EncryptDistinctRandomness(rng io.Reader, pk group.Point, share *big.Int) (Ciphertext, error) {
	if err := e.checkShare(share); err != nil {
		return nil, err
	}
	digits := e.chunker.Chunk(share)
	ct := make(Ciphertext, len(digits))
	for j, d := range digits {
		c, err := e.cipher.Encrypt(rng, pk, d, e.chunker.Base())
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt chunk %d: %w", j, err)
		}
		ct[j] = *c
	}
	return ct, nil
}

// Decrypt recovers a share from ct with sk. Chunks are decrypted in
// order; if any chunk fails the whole call fails with
// [elgamal.ErrDecryptionFailed] and no partial value is returned.
func (e *Encryptor) Decrypt(sk group.Scalar, ct Ciphertext) (*big.Int, error) {
	if len(ct) != e.chunker.Count() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrMalformedCiphertext, len(ct), e.chunker.Count())
	}
	digits := make([]uint64, len(ct))
	for j := range ct {
		d, err := e.cipher.Decrypt(sk, &ct[j], e.chunker.Base())
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", j, err)
		}
		digits[j] = d
	}
	return e.chunker.Reassemble(digits), nil
}

// EncryptMultiReceiver encrypts shares[i] under pks[i] for every i with
// one nonce r shared by all recipients and all chunks. The result for
// recipient i equals EncryptSharedRandomness(pks[i], shares[i], r).
//
// Recipients are encrypted concurrently, at most GOMAXPROCS at a time.
func (e *Encryptor) EncryptMultiReceiver(pks []group.Point, shares []*big.Int, r *big.Int) (*MultiCiphertext, error) {
	if len(pks) != len(shares) {
		return nil, fmt.Errorf("%w: %d keys, %d shares", ErrLengthMismatch, len(pks), len(shares))
	}
	k, err := e.nonce(r)
	if err != nil {
		return nil, err
	}
	for i, s := range shares {
		if err := e.checkShare(s); err != nil {
			return nil, fmt.Errorf("recipient %d: %w", i, err)
		}
	}

	R := group.BaseMult(e.group, k)
	results := make([]Ciphertext, len(pks))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range pks {
		eg.Go(func() error {
			eph := &elgamal.Ephemeral{
				R: R,
				S: e.group.NewPoint().ScalarMult(k, pks[i]),
			}
			ct, err := e.seal(eph, shares[i])
			if err != nil {
				return fmt.Errorf("recipient %d: %w", i, err)
			}
			results[i] = ct
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &MultiCiphertext{
		R:           R,
		Ciphertexts: make(map[int]Ciphertext, len(results)),
	}
	for i, ct := range results {
		out.Ciphertexts[i] = ct
	}
	return out, nil
}

// DecryptMultiReceiver decrypts the ciphertext addressed to recipient
// index in mc.
func (e *Encryptor) DecryptMultiReceiver(sk group.Scalar, mc *MultiCiphertext, index int) (*big.Int, error) {
	ct, ok := mc.Ciphertexts[index]
	if !ok {
		return nil, fmt.Errorf("%w: no ciphertext for recipient %d", elshare.ErrValidation, index)
	}
	return e.Decrypt(sk, ct)
}
