// Package session provides a high-level API for dealing a secret to a
// group of participants. It wraps the [shamir] and [encshare] packages
// with an interface that keeps share indices, recipients, and epochs
// consistent.
//
// The session package is designed for application developers who want to
// distribute a secret without handling chunking, nonces, or index
// bookkeeping. For full control, use the lower-level packages directly.
//
// # Dealing
//
// Every participant generates an ElGamal key pair and publishes the public
// key. The dealer then splits the secret and encrypts every share in one
// step:
//
//	dealer, err := session.NewDealer(g, session.Config{Threshold: 3, Total: 5})
//	if err != nil {
//		return err
//	}
//
//	// pks[i] belongs to the participant holding share i+1
//	dist, sharing, err := dealer.Deal(rand.Reader, secret, pks)
//
//	// Send dist to every participant
//
// # Receiving
//
// Each participant decrypts only its own share:
//
//	p, err := session.NewParticipant(g, cfg, myIndex, myKey)
//	share, err := p.Receive(dist)
//
// Any threshold-sized set of shares recombines with [Combine], using the
// group order as the prime.
//
// # Resharing
//
// [Dealer.Redeal] re-randomizes an existing sharing, optionally to a new
// threshold and size, and distributes the result with a higher epoch.
// Participants drop their old share on receipt and refuse older epochs.
//
// # Transport Agnostic
//
// This package does not handle network communication. A [Distribution]
// marshals to JSON; moving it between parties is up to the caller.
package session
