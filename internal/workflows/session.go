package workflows

import (
	"fmt"

	"github.com/PolarWolf314/sigil/internal/audit"
	"github.com/PolarWolf314/sigil/internal/configs"
	"github.com/PolarWolf314/sigil/internal/credentials"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	logger "github.com/PolarWolf314/sigil/internal/logging"
	"github.com/PolarWolf314/sigil/internal/primitives"
	"github.com/PolarWolf314/sigil/internal/wire"
)

// PasswordFunc returns the password for a locked keyring entry.
type PasswordFunc func(entry configs.KeyringEntry) (string, error)

// session is the on-disk state a workflow runs against.
type session struct {
	config *configs.UserConfig
	ring   *configs.Keyring
	log    logger.Logger
}

func openSession(log logger.Logger) (*session, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil, err
	}
	ring, err := configs.LoadKeyring()
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d keyring entries from %s", len(ring.Entries), configs.UserSigilSettings.KeyringPath)
	return &session{config: config, ring: ring, log: log}, nil
}

func (s *session) newStore() *credentials.Store {
	opts := []credentials.Option{credentials.WithLogger(s.log)}
	if s.config.Store.RejectDuplicates {
		opts = append(opts, credentials.RejectDuplicates())
	}
	return credentials.NewStore(primitives.Default(), opts...)
}

// defaultRefs returns refs, or the configured default identity when refs is empty.
func (s *session) defaultRefs(refs []string) ([]string, error) {
	if len(refs) > 0 {
		return refs, nil
	}
	if s.config.User.DefaultIdentity == "" {
		return nil, kerrors.ErrNoDefaultIdentity
	}
	return []string{s.config.User.DefaultIdentity}, nil
}

// resolve maps a label, UUID or identity to an identity. References that are
// not in the keyring must themselves parse as identities.
func (s *session) resolve(ref string) (string, *configs.KeyringEntry, error) {
	if entry, err := s.ring.Find(ref); err == nil {
		return entry.ID, entry, nil
	}
	if _, err := wire.ParseIdentity(ref); err != nil {
		return "", nil, fmt.Errorf("%w: %s", kerrors.ErrCredentialNotFound, ref)
	}
	return ref, nil, nil
}

// load adds entry to store, asking passwords for locked entries. It reports
// whether the entry was added.
func (s *session) load(store *credentials.Store, entry *configs.KeyringEntry, passwords PasswordFunc) (bool, error) {
	cred, err := entry.Credential()
	if err != nil {
		return false, err
	}
	password := ""
	if cred.IsLocked() {
		if passwords == nil {
			s.log.Infof("Skipping locked credential %s", entry.Label)
			return false, nil
		}
		password, err = passwords(*entry)
		if err != nil {
			return false, err
		}
	}
	if err := store.Add(cred, password); err != nil {
		return false, fmt.Errorf("loading %s: %w", entry.Label, err)
	}
	return true, nil
}

// labelFor returns the keyring label for id, or "" if it is not saved.
func (s *session) labelFor(id string) string {
	for _, e := range s.ring.Entries {
		if e.ID == id {
			return e.Label
		}
	}
	return ""
}

func (s *session) audit(entry audit.Entry) {
	if s.config.Audit.Enabled {
		audit.Log(entry)
	}
}
