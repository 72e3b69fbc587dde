package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/sigil/internal/codec"
	"github.com/PolarWolf314/sigil/internal/credentials"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
)

// Keyring is the content of keyring.toml.
type Keyring struct {
	Entries []KeyringEntry `toml:"entries"`
}

// KeyringEntry is one saved credential.
type KeyringEntry struct {
	UUID          string    `toml:"uuid"`
	Label         string    `toml:"label"`
	ID            string    `toml:"id"`
	Locked        string    `toml:"locked,omitempty"`
	SignSecret    string    `toml:"sign_secret,omitempty"`
	EncryptSecret string    `toml:"encrypt_secret,omitempty"`
	CreatedAt     time.Time `toml:"created_at"`
}

// GenerateEntryUUID returns a fresh UUID for a keyring entry.
func GenerateEntryUUID() string {
	return uuid.New().String()
}

// EntryFromCredential wraps a credential for saving under label.
func EntryFromCredential(label string, cred credentials.Credential) KeyringEntry {
	return KeyringEntry{
		UUID:          GenerateEntryUUID(),
		Label:         label,
		ID:            cred.ID,
		Locked:        cred.Locked,
		SignSecret:    encodeSecret(cred.SignSecret),
		EncryptSecret: encodeSecret(cred.EncryptSecret),
		CreatedAt:     time.Now().UTC(),
	}
}

func encodeSecret(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return codec.Base64(b)
}

func decodeSecret(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return codec.FromBase64(s)
}

// Credential returns the credential stored in the entry.
func (e KeyringEntry) Credential() (credentials.Credential, error) {
	signSecret, err := decodeSecret(e.SignSecret)
	if err != nil {
		return credentials.Credential{}, fmt.Errorf("entry %q sign_secret: %w", e.Label, err)
	}
	encryptSecret, err := decodeSecret(e.EncryptSecret)
	if err != nil {
		return credentials.Credential{}, fmt.Errorf("entry %q encrypt_secret: %w", e.Label, err)
	}
	return credentials.Credential{
		ID:            e.ID,
		SignSecret:    signSecret,
		EncryptSecret: encryptSecret,
		Locked:        e.Locked,
	}, nil
}

// IsLocked reports whether the entry needs a password.
func (e KeyringEntry) IsLocked() bool {
	return e.Locked != ""
}

// LoadKeyring reads the keyring. A missing file is an empty keyring.
func LoadKeyring() (*Keyring, error) {
	return LoadKeyringFrom(UserSigilSettings.KeyringPath)
}

// LoadKeyringFrom reads the keyring at path.
func LoadKeyringFrom(path string) (*Keyring, error) {
	ring := &Keyring{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ring, nil
	}

	if err := LoadTOML(path, ring); err != nil {
		return nil, fmt.Errorf("failed to load keyring: %w", err)
	}

	return ring, nil
}

// SaveKeyring writes the keyring.
func SaveKeyring(ring *Keyring) error {
	return SaveKeyringTo(UserSigilSettings.KeyringPath, ring)
}

// SaveKeyringTo writes the keyring to path.
func SaveKeyringTo(path string, ring *Keyring) error {
	if err := SaveTOML(path, ring); err != nil {
		return fmt.Errorf("failed to save keyring: %w", err)
	}
	return nil
}

// Find returns the entry whose label, UUID or identity matches ref.
// Labels compare case-insensitively.
func (k *Keyring) Find(ref string) (*KeyringEntry, error) {
	for i := range k.Entries {
		e := &k.Entries[i]
		if strings.EqualFold(e.Label, ref) || e.UUID == ref || e.ID == ref {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", kerrors.ErrCredentialNotFound, ref)
}

// Add appends entry. Labels and identities must be unique in the keyring.
func (k *Keyring) Add(entry KeyringEntry) error {
	for _, e := range k.Entries {
		if strings.EqualFold(e.Label, entry.Label) {
			return fmt.Errorf("%w: label %q is taken", kerrors.ErrCredentialExists, entry.Label)
		}
		if e.ID == entry.ID {
			return fmt.Errorf("%w: identity already saved as %q", kerrors.ErrCredentialExists, e.Label)
		}
	}
	k.Entries = append(k.Entries, entry)
	return nil
}

// Remove deletes the entry matching ref and returns it.
func (k *Keyring) Remove(ref string) (KeyringEntry, error) {
	target, err := k.Find(ref)
	if err != nil {
		return KeyringEntry{}, err
	}
	removed := *target
	for i := range k.Entries {
		if k.Entries[i].UUID == removed.UUID {
			k.Entries = append(k.Entries[:i], k.Entries[i+1:]...)
			break
		}
	}
	return removed, nil
}

// Labels returns every label in keyring order.
func (k *Keyring) Labels() []string {
	labels := make([]string, 0, len(k.Entries))
	for _, e := range k.Entries {
		labels = append(labels, e.Label)
	}
	return labels
}
