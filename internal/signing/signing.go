// Package signing produces and verifies detached signatures for identities
// held in a credential store.
//
// Sign scans an ordered list of candidate owners and signs with the first one
// the store holds a signing secret for. The signature names that owner, so
// the verifier learns exactly who signed. Sign hands back a Pending result so
// that a signer backed by a remote or hardware key can resolve later without
// changing the call contract; the store-backed signer resolves immediately.
package signing

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/sigil/internal/credentials"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	logger "github.com/PolarWolf314/sigil/internal/logging"
	"github.com/PolarWolf314/sigil/internal/wire"
)

// Pending is a signature that may not be ready yet.
type Pending struct {
	done chan struct{}
	sig  wire.Signature
	err  error
}

func resolved(sig wire.Signature, err error) *Pending {
	p := &Pending{done: make(chan struct{}), sig: sig, err: err}
	close(p.done)
	return p
}

// Wait blocks until the signature is ready or ctx is done.
func (p *Pending) Wait(ctx context.Context) (wire.Signature, error) {
	select {
	case <-p.done:
		return p.sig, p.err
	default:
	}
	select {
	case <-p.done:
		return p.sig, p.err
	case <-ctx.Done():
		return wire.Signature{}, ctx.Err()
	}
}

// Signer signs and verifies with the credentials of a store.
type Signer struct {
	store *credentials.Store
	log   logger.Logger
}

// NewSigner returns a Signer over store.
func NewSigner(store *credentials.Store, log logger.Logger) *Signer {
	return &Signer{store: store, log: log}
}

// Sign signs payload as the first owner in owners that has a signing secret
// in the store. Text payloads should be passed through codec.UTF8.
func (s *Signer) Sign(ctx context.Context, owners []string, payload []byte) *Pending {
	if err := ctx.Err(); err != nil {
		return resolved(wire.Signature{}, err)
	}
	for _, owner := range owners {
		rec, ok := s.store.Lookup(owner)
		if !ok || !rec.CanSign() {
			continue
		}
		s.log.Debugf("Signing as %s", credentials.ShortID(owner))
		sig, err := s.store.Suite().DetachedSign(payload, rec.SignSecret)
		if err != nil {
			return resolved(wire.Signature{}, fmt.Errorf("signing as %s: %w", credentials.ShortID(owner), err))
		}
		return resolved(wire.Signature{Scheme: wire.SchemeEd25519, Owner: owner, Bytes: sig}, nil)
	}
	return resolved(wire.Signature{}, fmt.Errorf("%w among %d candidates", kerrors.ErrNoOwner, len(owners)))
}

// Verify checks sigText over payload. It returns the signing identity and
// true for a valid signature, and false with a nil error for one that does
// not verify. Unknown schemes fail with ErrInvalidScheme.
func (s *Signer) Verify(payload []byte, sigText string) (string, bool, error) {
	sig, err := wire.ParseSignature(sigText)
	if err != nil {
		return "", false, err
	}
	identity, err := wire.ParseIdentity(sig.Owner)
	if err != nil {
		return "", false, fmt.Errorf("signature owner: %w", err)
	}
	if !s.store.Suite().DetachedVerify(payload, sig.Bytes, identity.SignPublicKey) {
		s.log.Debugf("Signature by %s did not verify", credentials.ShortID(sig.Owner))
		return "", false, nil
	}
	return sig.Owner, true, nil
}
