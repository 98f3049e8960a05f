package cli

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/shamir"
)

// shareInput collects the flags of commands that operate on existing
// shares: a sharing document, individual shares, and overrides.
type shareInput struct {
	in        string
	shares    []string
	threshold int
	prime     string
}

func (si *shareInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&si.in, "in", "", "sharing document (JSON output of split), - for stdin")
	cmd.Flags().StringArrayVar(&si.shares, "share", nil, "share as index:value (repeatable)")
	cmd.Flags().IntVarP(&si.threshold, "threshold", "t", 0, "threshold (default from --in)")
	cmd.Flags().StringVar(&si.prime, "prime", "", "field prime (default from --in, else the group order)")
}

// parseShare parses "index:value".
func parseShare(s string) (int, *big.Int, error) {
	idx, val, ok := strings.Cut(s, ":")
	if !ok {
		return 0, nil, fmt.Errorf("invalid share %q: want index:value", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return 0, nil, fmt.Errorf("invalid share index %q", idx)
	}
	v, err := parseInt("share value", val)
	if err != nil {
		return 0, nil, err
	}
	return i, v, nil
}

// load resolves the shares, threshold and prime from the flags.
func (si *shareInput) load(cmd *cobra.Command, g group.Group) (map[int]*big.Int, int, *big.Int, error) {
	shares := map[int]*big.Int{}
	threshold := 0
	var prime *big.Int

	if si.in != "" {
		data, err := readInput(cmd, si.in)
		if err != nil {
			return nil, 0, nil, err
		}
		shares, threshold, prime, err = parseSharing(data)
		if err != nil {
			return nil, 0, nil, err
		}
	}

	for _, s := range si.shares {
		i, v, err := parseShare(s)
		if err != nil {
			return nil, 0, nil, err
		}
		shares[i] = v
	}

	if cmd.Flags().Changed("threshold") {
		threshold = si.threshold
	}
	if threshold == 0 {
		return nil, 0, nil, fmt.Errorf("threshold is required")
	}

	if si.prime != "" {
		p, err := parseInt("prime", si.prime)
		if err != nil {
			return nil, 0, nil, err
		}
		prime = p
	}
	if prime == nil {
		prime = group.Order(g)
	}

	if len(shares) == 0 {
		return nil, 0, nil, fmt.Errorf("no shares given: use --in or --share")
	}
	return shares, threshold, prime, nil
}

func (si *shareInput) sharing(cmd *cobra.Command, g group.Group) (*shamir.Sharing, error) {
	shares, threshold, prime, err := si.load(cmd, g)
	if err != nil {
		return nil, err
	}
	return shamir.FromShares(shares, threshold, prime)
}

func (a *app) newSplitCommand() *cobra.Command {
	var (
		secretStr, primeStr string
		threshold, total    int
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into Shamir shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.group()
			if err != nil {
				return err
			}
			secret, err := parseInt("secret", secretStr)
			if err != nil {
				return err
			}
			prime := group.Order(g)
			if primeStr != "" {
				if prime, err = parseInt("prime", primeStr); err != nil {
					return err
				}
			}
			rng, err := seededReader(cmd)
			if err != nil {
				return err
			}

			s, err := shamir.New(rng, secret, threshold, total, prime)
			if err != nil {
				return err
			}
			a.logger.Debug("secret split", "threshold", threshold, "total", total, "prime_bits", prime.BitLen())
			return a.printer(cmd).PrintSharing(s)
		},
	}

	cmd.Flags().StringVar(&secretStr, "secret", "", "secret to split")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "shares needed to reconstruct")
	cmd.Flags().IntVarP(&total, "total", "n", 0, "number of shares")
	cmd.Flags().StringVar(&primeStr, "prime", "", "field prime (default: the group order)")
	addSeedFlag(cmd)
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("threshold")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

func (a *app) newCombineCommand() *cobra.Command {
	var si shareInput

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Reconstruct a secret from shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.group()
			if err != nil {
				return err
			}
			s, err := si.sharing(cmd, g)
			if err != nil {
				return err
			}
			a.logger.Debug("secret reconstructed", "shares", s.Total(), "threshold", s.Threshold())
			return a.printer(cmd).PrintValue("secret", s.Secret())
		},
	}
	si.bind(cmd)
	return cmd
}

func (a *app) newReshareCommand() *cobra.Command {
	var (
		si         shareInput
		newT, newN int
	)

	cmd := &cobra.Command{
		Use:   "reshare",
		Short: "Reshare to a new threshold and share count",
		Long: `Reshare converts a sharing into a fresh sharing of the same secret,
possibly with a different threshold and number of shares. The new shares
cannot be combined with the old ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.group()
			if err != nil {
				return err
			}
			s, err := si.sharing(cmd, g)
			if err != nil {
				return err
			}
			rng, err := seededReader(cmd)
			if err != nil {
				return err
			}
			r, err := s.Reshare(rng, newT, newN)
			if err != nil {
				return err
			}
			a.logger.Debug("reshared",
				"from_threshold", s.Threshold(), "from_total", s.Total(),
				"threshold", newT, "total", newN)
			return a.printer(cmd).PrintSharing(r)
		},
	}

	si.bind(cmd)
	cmd.Flags().IntVar(&newT, "new-threshold", 0, "threshold of the new sharing")
	cmd.Flags().IntVar(&newN, "new-total", 0, "share count of the new sharing")
	addSeedFlag(cmd)
	_ = cmd.MarkFlagRequired("new-threshold")
	_ = cmd.MarkFlagRequired("new-total")
	return cmd
}

func (a *app) newSelectCommand() *cobra.Command {
	var si shareInput

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick a random threshold-sized subset of shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.group()
			if err != nil {
				return err
			}
			s, err := si.sharing(cmd, g)
			if err != nil {
				return err
			}
			rng, err := seededReader(cmd)
			if err != nil {
				return err
			}
			sub, err := s.SelectThresholdShares(rng)
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintSharing(sub)
		},
	}

	si.bind(cmd)
	addSeedFlag(cmd)
	return cmd
}
