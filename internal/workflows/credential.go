package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/sigil/internal/audit"
	"github.com/PolarWolf314/sigil/internal/configs"
	"github.com/PolarWolf314/sigil/internal/credentials"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	logger "github.com/PolarWolf314/sigil/internal/logging"
	"github.com/PolarWolf314/sigil/internal/primitives"
	"github.com/PolarWolf314/sigil/internal/utils"
)

// CreateCredentialOptions configures the create workflow.
type CreateCredentialOptions struct {
	// Label names the keyring entry. If empty, one is derived from the hostname.
	Label string

	// Password locks the new credential. Empty stores the secrets in cleartext.
	Password string

	// SetDefault makes the new credential the default identity. The first
	// credential becomes the default regardless.
	SetDefault bool

	Log logger.Logger
}

// CreateCredentialResult contains the outcome of a create operation.
type CreateCredentialResult struct {
	Entry configs.KeyringEntry

	// IsDefault is true if the credential is now the default identity.
	IsDefault bool
}

// CreateCredential generates a credential and saves it to the keyring.
//
// Returns ErrInvalidLabel if the label has unsupported characters.
// Returns ErrCredentialExists if the label is already taken.
func CreateCredential(ctx context.Context, opts CreateCredentialOptions) (*CreateCredentialResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}

	label := opts.Label
	if label == "" {
		label = utils.GenerateLabel(s.ring.Labels())
	}
	if !utils.IsValidLabel(label) {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidLabel, label)
	}

	cred, err := credentials.New(primitives.Default(), opts.Password)
	if err != nil {
		return nil, fmt.Errorf("generating credential: %w", err)
	}

	entry := configs.EntryFromCredential(label, cred)
	if err := s.ring.Add(entry); err != nil {
		return nil, err
	}
	if err := configs.SaveKeyring(s.ring); err != nil {
		return nil, err
	}
	s.log.Infof("Saved credential %s to %s", label, configs.UserSigilSettings.KeyringPath)

	result := &CreateCredentialResult{Entry: entry}
	if opts.SetDefault || s.config.User.DefaultIdentity == "" {
		s.config.User.DefaultIdentity = label
		if err := configs.SaveUserConfig(s.config); err != nil {
			return nil, err
		}
		result.IsDefault = true
	}

	auditEntry := audit.LogWithUser("create")
	auditEntry.Label = label
	auditEntry.Identity = entry.ID
	s.audit(auditEntry)

	return result, nil
}

// ListCredentialsOptions configures the list workflow.
type ListCredentialsOptions struct {
	Log logger.Logger
}

// ListCredentialsResult contains the keyring entries in keyring order.
type ListCredentialsResult struct {
	Entries         []configs.KeyringEntry
	DefaultIdentity string
}

// ListCredentials returns every keyring entry.
func ListCredentials(ctx context.Context, opts ListCredentialsOptions) (*ListCredentialsResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}
	return &ListCredentialsResult{
		Entries:         s.ring.Entries,
		DefaultIdentity: s.config.User.DefaultIdentity,
	}, nil
}

// ShowCredentialOptions configures the show workflow.
type ShowCredentialOptions struct {
	// Ref is a label, UUID or identity. Empty means the default identity.
	Ref string

	Log logger.Logger
}

// ShowCredentialResult describes one keyring entry.
type ShowCredentialResult struct {
	Entry     configs.KeyringEntry
	IsDefault bool
}

// ShowCredential looks up one keyring entry.
//
// Returns ErrNoDefaultIdentity if Ref is empty and no default is configured.
// Returns ErrCredentialNotFound if nothing matches.
func ShowCredential(ctx context.Context, opts ShowCredentialOptions) (*ShowCredentialResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}
	refs, err := s.defaultRefs(nonEmpty(opts.Ref))
	if err != nil {
		return nil, err
	}
	entry, err := s.ring.Find(refs[0])
	if err != nil {
		return nil, err
	}
	return &ShowCredentialResult{Entry: *entry, IsDefault: s.isDefault(entry)}, nil
}

// RemoveCredentialOptions configures the remove workflow.
type RemoveCredentialOptions struct {
	Ref string
	Log logger.Logger
}

// RemoveCredentialResult contains the removed entry.
type RemoveCredentialResult struct {
	Removed configs.KeyringEntry

	// WasDefault is true if the default identity was cleared.
	WasDefault bool
}

// RemoveCredential deletes a credential from the keyring. If it was the
// default identity the default is cleared.
//
// Returns ErrCredentialNotFound if nothing matches.
func RemoveCredential(ctx context.Context, opts RemoveCredentialOptions) (*RemoveCredentialResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}

	entry, err := s.ring.Find(opts.Ref)
	if err != nil {
		return nil, err
	}
	wasDefault := s.isDefault(entry)

	removed, err := s.ring.Remove(opts.Ref)
	if err != nil {
		return nil, err
	}
	if err := configs.SaveKeyring(s.ring); err != nil {
		return nil, err
	}

	if wasDefault {
		s.config.User.DefaultIdentity = ""
		if err := configs.SaveUserConfig(s.config); err != nil {
			return nil, err
		}
	}

	auditEntry := audit.LogWithUser("remove")
	auditEntry.Label = removed.Label
	auditEntry.Identity = removed.ID
	s.audit(auditEntry)

	return &RemoveCredentialResult{Removed: removed, WasDefault: wasDefault}, nil
}

// ChangePasswordOptions configures the passwd workflow.
type ChangePasswordOptions struct {
	Ref string

	// OldPassword unlocks the credential. Ignored for cleartext entries.
	OldPassword string

	// NewPassword locks the credential. Empty stores it in cleartext.
	NewPassword string

	Log logger.Logger
}

// ChangePasswordResult contains the updated entry.
type ChangePasswordResult struct {
	Entry configs.KeyringEntry
}

// ChangePassword relocks a credential under a new password. The identity
// does not change.
//
// Returns ErrAuthentication if OldPassword is wrong.
func ChangePassword(ctx context.Context, opts ChangePasswordOptions) (*ChangePasswordResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}

	entry, err := s.ring.Find(opts.Ref)
	if err != nil {
		return nil, err
	}
	cred, err := entry.Credential()
	if err != nil {
		return nil, err
	}

	relocked, err := credentials.Relock(primitives.Default(), cred, opts.OldPassword, opts.NewPassword)
	if err != nil {
		return nil, err
	}

	updated := configs.EntryFromCredential(entry.Label, relocked)
	updated.UUID = entry.UUID
	updated.CreatedAt = entry.CreatedAt
	*entry = updated

	if err := configs.SaveKeyring(s.ring); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("passwd")
	auditEntry.Label = entry.Label
	auditEntry.Identity = entry.ID
	s.audit(auditEntry)

	return &ChangePasswordResult{Entry: updated}, nil
}

func (s *session) isDefault(entry *configs.KeyringEntry) bool {
	def := s.config.User.DefaultIdentity
	return def != "" && (strings.EqualFold(def, entry.Label) || def == entry.UUID || def == entry.ID)
}

func nonEmpty(ref string) []string {
	if ref == "" {
		return nil
	}
	return []string{ref}
}
