package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/f3rmion/elshare"
	"github.com/f3rmion/elshare/elgamal"
	"github.com/f3rmion/elshare/encshare"
	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/shamir"
)

// DefaultBase is the chunk base used when Config.Base is zero.
const DefaultBase = 1 << 16

// ErrStaleDistribution is returned when a participant is handed a
// distribution older than the one it already holds a share from.
var ErrStaleDistribution = fmt.Errorf("%w: distribution is older than the held share", elshare.ErrValidation)

// Config holds the sharing parameters common to a dealer and its
// participants.
type Config struct {
	// Threshold is the number of shares needed to reconstruct (t).
	Threshold int
	// Total is the number of participants (n).
	Total int
	// Base is the chunk base for share encryption. Zero means DefaultBase.
	Base uint64
	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

func (c Config) validate() error {
	if c.Threshold < 1 || c.Total < c.Threshold {
		return fmt.Errorf("%w: need 1 <= threshold <= total, got %d of %d",
			elshare.ErrValidation, c.Threshold, c.Total)
	}
	return nil
}

func (c Config) base() uint64 {
	if c.Base == 0 {
		return DefaultBase
	}
	return c.Base
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Participant is one recipient of a dealt sharing. It holds an ElGamal
// key pair and the latest share it received. Create instances using
// [NewParticipant].
//
// A Participant is safe for concurrent use.
type Participant struct {
	mu     sync.Mutex
	index  int
	key    *elgamal.KeyPair
	enc    *encshare.Encryptor
	logger *slog.Logger

	share *shamir.Share
	epoch uint64
}

// NewParticipant creates the participant holding share index (1 to
// cfg.Total) and decrypting with key.
func NewParticipant(g group.Group, cfg Config, index int, key *elgamal.KeyPair) (*Participant, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if index < 1 || index > cfg.Total {
		return nil, fmt.Errorf("%w: participant index must be between 1 and %d, got %d",
			elshare.ErrValidation, cfg.Total, index)
	}
	if key == nil {
		return nil, errors.New("participant key is required")
	}

	enc, err := encshare.New(g, cfg.base())
	if err != nil {
		return nil, fmt.Errorf("failed to create encryptor: %w", err)
	}

	return &Participant{
		index:  index,
		key:    key,
		enc:    enc,
		logger: cfg.logger().With("participant", index),
	}, nil
}

// Index returns this participant's share index.
func (p *Participant) Index() int {
	return p.index
}

// PublicKey returns the key the dealer must encrypt to.
func (p *Participant) PublicKey() group.Point {
	return p.key.Public
}

// Receive decrypts this participant's share from d and keeps it.
//
// A distribution from an earlier epoch than the held share is rejected
// with [ErrStaleDistribution]; one from the same or a later epoch
// replaces it.
func (p *Participant) Receive(d *Distribution) (shamir.Share, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.share != nil && d.Epoch < p.epoch {
		return shamir.Share{}, fmt.Errorf("%w: epoch %d, holding %d", ErrStaleDistribution, d.Epoch, p.epoch)
	}

	v, err := p.enc.DecryptMultiReceiver(p.key.Secret, d.Ciphertext, p.index-1)
	if err != nil {
		return shamir.Share{}, fmt.Errorf("failed to decrypt share %d: %w", p.index, err)
	}

	p.share = &shamir.Share{Index: p.index, Value: v}
	p.epoch = d.Epoch
	p.logger.Debug("share received", "epoch", d.Epoch, "chunks", len(d.Ciphertext.Ciphertexts[p.index-1]))
	return shamir.Share{Index: p.index, Value: new(big.Int).Set(v)}, nil
}

// Share returns the held share and true, or false if none was received.
func (p *Participant) Share() (shamir.Share, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.share == nil {
		return shamir.Share{}, false
	}
	return shamir.Share{Index: p.share.Index, Value: new(big.Int).Set(p.share.Value)}, true
}

// Epoch returns the epoch of the held share.
func (p *Participant) Epoch() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.epoch
}

// Combine reconstructs the secret from shares collected from
// participants. It fails with [shamir.ErrInsufficientShares] if fewer than
// threshold shares are given.
func Combine(shares []shamir.Share, threshold int, prime *big.Int) (*big.Int, error) {
	m := make(map[int]*big.Int, len(shares))
	for _, s := range shares {
		if _, dup := m[s.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate share index %d", elshare.ErrValidation, s.Index)
		}
		m[s.Index] = s.Value
	}
	sharing, err := shamir.FromShares(m, threshold, prime)
	if err != nil {
		return nil, err
	}
	return sharing.Secret(), nil
}
