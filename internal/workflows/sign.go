package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/sigil/internal/audit"
	logger "github.com/PolarWolf314/sigil/internal/logging"
	"github.com/PolarWolf314/sigil/internal/signing"
)

// SignOptions configures the sign workflow.
type SignOptions struct {
	// Owners are candidate signers in priority order. If empty, the default
	// identity is used.
	Owners []string

	// Payload is the message. Text should already be UTF-8 encoded.
	Payload []byte

	Passwords PasswordFunc
	Log       logger.Logger
}

// SignResult contains a detached signature.
type SignResult struct {
	Signature string

	// Owner is the identity that signed; Label its keyring label.
	Owner string
	Label string
}

// Sign signs the payload as the first owner the keyring can sign for.
//
// Returns ErrNoDefaultIdentity if no owners are given and no default is set.
// Returns ErrNoOwner if no candidate is usable.
func Sign(ctx context.Context, opts SignOptions) (*SignResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}
	refs, err := s.defaultRefs(opts.Owners)
	if err != nil {
		return nil, err
	}

	store := s.newStore()
	owners := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, entry, err := s.resolve(ref)
		if err != nil {
			s.log.Infof("Skipping unknown owner %s", ref)
			continue
		}
		owners = append(owners, id)
		if entry == nil {
			continue
		}
		if _, err := s.load(store, entry, opts.Passwords); err != nil {
			return nil, err
		}
	}

	sig, err := signing.NewSigner(store, s.log).Sign(ctx, owners, opts.Payload).Wait(ctx)
	if err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("sign")
	auditEntry.Identity = sig.Owner
	auditEntry.Label = s.labelFor(sig.Owner)
	s.audit(auditEntry)

	return &SignResult{Signature: sig.String(), Owner: sig.Owner, Label: s.labelFor(sig.Owner)}, nil
}

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	Payload   []byte
	Signature string
	Log       logger.Logger
}

// VerifyResult contains the outcome of a verification.
type VerifyResult struct {
	Valid bool

	// Owner is the identity named by the signature; Label is its keyring
	// label if the identity is saved.
	Owner string
	Label string
}

// Verify checks a detached signature against its named owner. An invalid
// signature is reported through Valid, not as an error.
//
// Returns ErrInvalidScheme or ErrMalformed if the signature cannot be parsed.
func Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}

	owner, ok, err := signing.NewSigner(s.newStore(), s.log).Verify(opts.Payload, opts.Signature)
	if err != nil {
		return nil, fmt.Errorf("verifying signature: %w", err)
	}

	auditEntry := audit.LogWithUser("verify")
	auditEntry.Owner = owner
	auditEntry.OK = audit.Result(ok)
	s.audit(auditEntry)

	return &VerifyResult{Valid: ok, Owner: owner, Label: s.labelFor(owner)}, nil
}
