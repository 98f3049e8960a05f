package session

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"

	"github.com/f3rmion/elshare"
	"github.com/f3rmion/elshare/encshare"
	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/shamir"
)

// Distribution is what a dealer sends out: one multi-receiver ciphertext
// carrying share i+1 to the recipient at position i.
type Distribution struct {
	// Epoch counts the deals made by the dealer, starting at 1.
	Epoch      uint64
	Threshold  int
	Total      int
	Ciphertext *encshare.MultiCiphertext
}

type distributionJSON struct {
	Epoch      uint64          `json:"epoch"`
	Threshold  int             `json:"threshold"`
	Total      int             `json:"total"`
	Ciphertext json.RawMessage `json:"ciphertext"`
}

// MarshalJSON encodes d with its ciphertext in the encshare wire format.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	ct, err := json.Marshal(d.Ciphertext)
	if err != nil {
		return nil, err
	}
	return json.Marshal(distributionJSON{
		Epoch:      d.Epoch,
		Threshold:  d.Threshold,
		Total:      d.Total,
		Ciphertext: ct,
	})
}

// ParseDistribution decodes a distribution produced by
// Distribution.MarshalJSON, validating every point against g. base is the
// chunk base the dealer used; zero means DefaultBase.
func ParseDistribution(g group.Group, base uint64, data []byte) (*Distribution, error) {
	enc, err := encshare.New(g, Config{Base: base}.base())
	if err != nil {
		return nil, err
	}
	var in distributionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse distribution: %w", err)
	}
	ct, err := enc.ParseMultiCiphertext(in.Ciphertext)
	if err != nil {
		return nil, err
	}
	return &Distribution{
		Epoch:      in.Epoch,
		Threshold:  in.Threshold,
		Total:      in.Total,
		Ciphertext: ct,
	}, nil
}

// Dealer splits secrets and distributes the shares encrypted to the
// participants' public keys. The field is the order of the group, so
// every share fits the encryptor. Create instances using [NewDealer].
//
// A Dealer is safe for concurrent use.
type Dealer struct {
	mu     sync.Mutex
	group  group.Group
	cfg    Config
	enc    *encshare.Encryptor
	logger *slog.Logger
	epoch  uint64
}

// NewDealer creates a dealer for (cfg.Threshold, cfg.Total) sharings over g.
func NewDealer(g group.Group, cfg Config) (*Dealer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	enc, err := encshare.New(g, cfg.base())
	if err != nil {
		return nil, fmt.Errorf("failed to create encryptor: %w", err)
	}
	return &Dealer{
		group:  g,
		cfg:    cfg,
		enc:    enc,
		logger: cfg.logger().With("role", "dealer"),
	}, nil
}

// Prime returns the field modulus of the sharings the dealer produces.
func (d *Dealer) Prime() *big.Int {
	return group.Order(d.group)
}

// Deal splits secret into a fresh sharing and encrypts share i+1 to
// pks[i] under one nonce. Randomness comes from rng, or crypto/rand when
// nil. The returned sharing stays with the dealer.
func (d *Dealer) Deal(rng io.Reader, secret *big.Int, pks []group.Point) (*Distribution, *shamir.Sharing, error) {
	if err := d.checkRecipients(pks); err != nil {
		return nil, nil, err
	}
	s, err := shamir.New(rng, secret, d.cfg.Threshold, d.cfg.Total, d.Prime())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to split secret: %w", err)
	}
	dist, err := d.distribute(rng, s, pks)
	if err != nil {
		return nil, nil, err
	}
	return dist, s, nil
}

// Redeal reshares s to the dealer's parameters and distributes the new
// shares. Shares from s cannot be combined with the new ones.
func (d *Dealer) Redeal(rng io.Reader, s *shamir.Sharing, pks []group.Point) (*Distribution, *shamir.Sharing, error) {
	if err := d.checkRecipients(pks); err != nil {
		return nil, nil, err
	}
	if s.Prime().Cmp(d.Prime()) != 0 {
		return nil, nil, fmt.Errorf("%w: sharing field differs from the group order", elshare.ErrValidation)
	}
	r, err := s.Reshare(rng, d.cfg.Threshold, d.cfg.Total)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reshare: %w", err)
	}
	d.logger.Debug("reshared",
		"from_threshold", s.Threshold(), "from_total", s.Total(),
		"threshold", r.Threshold(), "total", r.Total())
	dist, err := d.distribute(rng, r, pks)
	if err != nil {
		return nil, nil, err
	}
	return dist, r, nil
}

func (d *Dealer) checkRecipients(pks []group.Point) error {
	if len(pks) != d.cfg.Total {
		return fmt.Errorf("%w: %d public keys for %d participants", encshare.ErrLengthMismatch, len(pks), d.cfg.Total)
	}
	return nil
}

func (d *Dealer) distribute(rng io.Reader, s *shamir.Sharing, pks []group.Point) (*Distribution, error) {
	shares := s.Shares()
	values := make([]*big.Int, len(shares))
	for i, sh := range shares {
		values[i] = sh.Value
	}

	r, err := d.enc.RandomNonce(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to sample nonce: %w", err)
	}
	ct, err := d.enc.EncryptMultiReceiver(pks, values, r)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt shares: %w", err)
	}

	d.mu.Lock()
	d.epoch++
	epoch := d.epoch
	d.mu.Unlock()

	d.logger.Debug("shares distributed",
		"epoch", epoch, "threshold", s.Threshold(), "total", s.Total(),
		"chunks", d.enc.Chunker().Count())

	return &Distribution{
		Epoch:      epoch,
		Threshold:  s.Threshold(),
		Total:      s.Total(),
		Ciphertext: ct,
	}, nil
}
