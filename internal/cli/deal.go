package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/elshare/elgamal"
	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/session"
)

func (a *app) newDealCommand() *cobra.Command {
	var (
		pkHexes   []string
		secretStr string
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Split a secret and encrypt every share to its participant",
		Long: `Deal splits a secret into one share per --pk and encrypts share i to
the i-th public key under a single nonce. The output is a distribution
document that each participant decrypts with "receive".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.group()
			if err != nil {
				return err
			}
			pks := make([]group.Point, len(pkHexes))
			for i, s := range pkHexes {
				if pks[i], err = parsePoint(g, s); err != nil {
					return fmt.Errorf("participant %d: %w", i+1, err)
				}
			}
			secret, err := parseInt("secret", secretStr)
			if err != nil {
				return err
			}
			rng, err := seededReader(cmd)
			if err != nil {
				return err
			}

			dealer, err := session.NewDealer(g, session.Config{
				Threshold: threshold,
				Total:     len(pks),
				Base:      a.cfg.Base,
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			dist, _, err := dealer.Deal(rng, secret, pks)
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintDocument(dist)
		},
	}

	cmd.Flags().StringArrayVar(&pkHexes, "pk", nil, "participant public key (hex), in share order (repeatable)")
	cmd.Flags().StringVar(&secretStr, "secret", "", "secret to deal")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "shares needed to reconstruct")
	addSeedFlag(cmd)
	_ = cmd.MarkFlagRequired("pk")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("threshold")
	return cmd
}

func (a *app) newReceiveCommand() *cobra.Command {
	var (
		skHex, in string
		index     int
	)

	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Decrypt this participant's share from a distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.group()
			if err != nil {
				return err
			}
			sk, err := parseSecretKey(g, skHex)
			if err != nil {
				return err
			}
			kp, err := elgamal.PublicFromSecret(g, sk)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			dist, err := session.ParseDistribution(g, a.cfg.Base, data)
			if err != nil {
				return err
			}

			p, err := session.NewParticipant(g, session.Config{
				Threshold: dist.Threshold,
				Total:     dist.Total,
				Base:      a.cfg.Base,
				Logger:    a.logger,
			}, index, kp)
			if err != nil {
				return err
			}
			share, err := p.Receive(dist)
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintShare(share)
		},
	}

	cmd.Flags().StringVar(&skHex, "sk", "", "participant secret key (hex)")
	cmd.Flags().IntVar(&index, "index", 0, "participant share index (1-based)")
	cmd.Flags().StringVar(&in, "in", "-", "distribution file, - for stdin")
	_ = cmd.MarkFlagRequired("sk")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}
