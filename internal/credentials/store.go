package credentials

import (
	"bytes"
	"fmt"
	"sync"

	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	logger "github.com/PolarWolf314/sigil/internal/logging"
	"github.com/PolarWolf314/sigil/internal/passlock"
	"github.com/PolarWolf314/sigil/internal/primitives"
	"github.com/PolarWolf314/sigil/internal/wire"
)

// Record is the cleartext secret material held for one identity.
type Record struct {
	ID            string
	SignSecret    []byte
	EncryptSecret []byte
}

// CanSign reports whether the record holds a usable signing secret.
func (r Record) CanSign() bool {
	return len(r.SignSecret) == primitives.SignSecretKeySize
}

// CanDecrypt reports whether the record holds a usable encryption secret.
func (r Record) CanDecrypt() bool {
	return len(r.EncryptSecret) == primitives.KeySize
}

// Option configures a Store.
type Option func(*Store)

// RejectDuplicates makes Add fail with ErrCredentialExists instead of
// replacing an existing entry.
func RejectDuplicates() Option {
	return func(s *Store) {
		s.rejectDuplicates = true
	}
}

// WithLogger sets the logger used for store events.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// Store is the in-memory credential store.
type Store struct {
	mu               sync.RWMutex
	suite            primitives.Suite
	log              logger.Logger
	rejectDuplicates bool
	records          map[string]Record
	order            []string
}

// NewStore returns an empty store backed by suite.
func NewStore(suite primitives.Suite, opts ...Option) *Store {
	s := &Store{
		suite:   suite,
		records: make(map[string]Record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suite returns the primitive suite the store was created with.
func (s *Store) Suite() primitives.Suite {
	return s.suite
}

// Add registers cred. A locked credential needs its password and is
// verified against the box public key in its identity.
func (s *Store) Add(cred Credential, password string) error {
	bundle, err := unlockBundle(s.suite, cred, password)
	if err != nil {
		return err
	}
	if cred.IsLocked() {
		if err := checkBoxKey(s.suite, cred.ID, bundle.BoxSecretKey); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[cred.ID]; exists {
		if s.rejectDuplicates {
			return fmt.Errorf("adding %s: %w", ShortID(cred.ID), kerrors.ErrCredentialExists)
		}
		s.log.Debugf("Replacing secrets for credential %s", ShortID(cred.ID))
	} else {
		s.order = append(s.order, cred.ID)
	}
	s.records[cred.ID] = Record{
		ID:            cred.ID,
		SignSecret:    bundle.SignSecretKey,
		EncryptSecret: bundle.BoxSecretKey,
	}
	s.log.Debugf("Added credential %s (locked=%t)", ShortID(cred.ID), cred.IsLocked())
	return nil
}

// Remove deletes the entry for id. Removing an absent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return
	}
	zeroBytes(rec.SignSecret)
	zeroBytes(rec.EncryptSecret)
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Debugf("Removed credential %s", ShortID(id))
}

// Lookup returns a copy of the record for id.
func (s *Store) Lookup(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return Record{
		ID:            rec.ID,
		SignSecret:    append([]byte(nil), rec.SignSecret...),
		EncryptSecret: append([]byte(nil), rec.EncryptSecret...),
	}, true
}

// IDs returns the stored identities in insertion order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of stored credentials.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func unlockBundle(suite primitives.Suite, cred Credential, password string) (wire.SecretBundle, error) {
	if !cred.IsLocked() {
		return wire.SecretBundle{
			SignSecretKey: append([]byte(nil), cred.SignSecret...),
			BoxSecretKey:  append([]byte(nil), cred.EncryptSecret...),
		}, nil
	}
	if password == "" {
		return wire.SecretBundle{}, kerrors.ErrPasswordRequired
	}
	text, err := passlock.Unlock(suite, password, cred.Locked)
	if err != nil {
		return wire.SecretBundle{}, fmt.Errorf("unlocking %s: %w", ShortID(cred.ID), err)
	}
	bundle, err := wire.ParseSecretBundle(text)
	if err != nil {
		// Authenticated but not a bundle: report it like a failed unlock.
		return wire.SecretBundle{}, fmt.Errorf("unlocking %s: %w", ShortID(cred.ID), kerrors.ErrAuthentication)
	}
	return bundle, nil
}

func checkBoxKey(suite primitives.Suite, id string, boxSecret []byte) error {
	identity, err := wire.ParseIdentity(id)
	if err != nil {
		return fmt.Errorf("credential identity: %w", err)
	}
	derived, err := suite.BoxPublicFromSecret(boxSecret)
	if err != nil || !bytes.Equal(derived, identity.BoxPublicKey) {
		return fmt.Errorf("unlocking %s: %w", ShortID(id), kerrors.ErrAuthentication)
	}
	return nil
}

// ShortID trims an identity for log output.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12] + "…"
}
