package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/elshare/elgamal"
	"github.com/f3rmion/elshare/encshare"
	"github.com/f3rmion/elshare/group"
)

func parsePoint(g group.Group, s string) (group.Point, error) {
	data, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid public key encoding: %w", err)
	}
	p, err := g.NewPoint().SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	return p, nil
}

func parseSecretKey(g group.Group, s string) (group.Scalar, error) {
	data, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid secret key encoding: %w", err)
	}
	sk, err := g.NewScalar().SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("invalid secret key: %w", err)
	}
	if sk.IsZero() {
		return nil, errors.New("invalid secret key: zero")
	}
	return sk, nil
}

func (a *app) encryptor() (*encshare.Encryptor, error) {
	g, err := a.group()
	if err != nil {
		return nil, err
	}
	return encshare.New(g, a.cfg.Base)
}

func (a *app) newKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an ElGamal key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.group()
			if err != nil {
				return err
			}
			rng, err := seededReader(cmd)
			if err != nil {
				return err
			}
			kp, err := elgamal.GenerateKey(g, rng)
			if err != nil {
				return err
			}
			a.logger.Debug("key pair generated", "curve", g.Name(), "seeded", rng != nil)
			return a.printer(cmd).PrintKeyPair(g.Name(), kp)
		},
	}
	addSeedFlag(cmd)
	return cmd
}

func (a *app) newEncryptCommand() *cobra.Command {
	var pkHex, shareStr, nonceStr string

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a share to a public key",
		Long: `Encrypt a share, or any value below the group order, to a public key.

By default every chunk gets its own nonce. With --nonce, one nonce is
shared by all chunks: smaller and faster, but the chunks are no longer
independently randomized.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := a.encryptor()
			if err != nil {
				return err
			}
			pk, err := parsePoint(enc.Group(), pkHex)
			if err != nil {
				return err
			}
			share, err := parseInt("share", shareStr)
			if err != nil {
				return err
			}

			var ct encshare.Ciphertext
			if cmd.Flags().Changed("nonce") {
				r, err := parseInt("nonce", nonceStr)
				if err != nil {
					return err
				}
				ct, err = enc.EncryptSharedRandomness(pk, share, r)
				if err != nil {
					return err
				}
			} else {
				rng, err := seededReader(cmd)
				if err != nil {
					return err
				}
				ct, err = enc.EncryptDistinctRandomness(rng, pk, share)
				if err != nil {
					return err
				}
			}
			a.logger.Debug("share encrypted", "chunks", len(ct), "shared_nonce", cmd.Flags().Changed("nonce"))
			return a.printer(cmd).PrintDocument(ct)
		},
	}

	cmd.Flags().StringVar(&pkHex, "pk", "", "recipient public key (hex)")
	cmd.Flags().StringVar(&shareStr, "share", "", "value to encrypt")
	cmd.Flags().StringVar(&nonceStr, "nonce", "", "shared nonce in [1, order)")
	addSeedFlag(cmd)
	_ = cmd.MarkFlagRequired("pk")
	_ = cmd.MarkFlagRequired("share")
	return cmd
}

func (a *app) newDecryptCommand() *cobra.Command {
	var skHex, in string

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a share ciphertext",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := a.encryptor()
			if err != nil {
				return err
			}
			sk, err := parseSecretKey(enc.Group(), skHex)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			ct, err := enc.ParseCiphertext(data)
			if err != nil {
				return err
			}
			v, err := enc.Decrypt(sk, ct)
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintValue("share", v)
		},
	}

	cmd.Flags().StringVar(&skHex, "sk", "", "secret key (hex)")
	cmd.Flags().StringVar(&in, "in", "-", "ciphertext file, - for stdin")
	_ = cmd.MarkFlagRequired("sk")
	return cmd
}
