package credentials

import (
	"fmt"

	"github.com/PolarWolf314/sigil/internal/passlock"
	"github.com/PolarWolf314/sigil/internal/primitives"
	"github.com/PolarWolf314/sigil/internal/wire"
)

// Credential is key material as handed to and from callers.
type Credential struct {
	ID string

	// SignSecret and EncryptSecret are set only in cleartext form.
	SignSecret    []byte
	EncryptSecret []byte

	// Locked is the password-locked secret bundle, set instead of the secrets.
	Locked string
}

// IsLocked reports whether the credential holds a locked blob.
func (c Credential) IsLocked() bool {
	return c.Locked != ""
}

// New generates a credential. With a non-empty password the secrets are
// returned only in locked form.
func New(suite primitives.Suite, password string) (Credential, error) {
	signPub, signSec, err := suite.GenSignKeypair()
	if err != nil {
		return Credential{}, err
	}
	boxPub, boxSec, err := suite.GenBoxKeypair()
	if err != nil {
		return Credential{}, err
	}
	id := wire.Identity{SignPublicKey: signPub, BoxPublicKey: boxPub}.String()

	if password == "" {
		return Credential{ID: id, SignSecret: signSec, EncryptSecret: boxSec}, nil
	}

	bundle := wire.SecretBundle{SignSecretKey: signSec, BoxSecretKey: boxSec}.String()
	locked, err := passlock.Lock(suite, password, bundle)
	zeroBytes(signSec)
	zeroBytes(boxSec)
	if err != nil {
		return Credential{}, fmt.Errorf("locking new credential: %w", err)
	}
	return Credential{ID: id, Locked: locked}, nil
}

// Relock unlocks a locked credential with oldPassword and locks it again
// under newPassword. The identity does not change.
func Relock(suite primitives.Suite, cred Credential, oldPassword, newPassword string) (Credential, error) {
	bundle, err := unlockBundle(suite, cred, oldPassword)
	if err != nil {
		return Credential{}, err
	}
	if newPassword == "" {
		return Credential{ID: cred.ID, SignSecret: bundle.SignSecretKey, EncryptSecret: bundle.BoxSecretKey}, nil
	}
	locked, err := passlock.Lock(suite, newPassword, bundle.String())
	zeroBytes(bundle.SignSecretKey)
	zeroBytes(bundle.BoxSecretKey)
	if err != nil {
		return Credential{}, fmt.Errorf("relocking credential: %w", err)
	}
	return Credential{ID: cred.ID, Locked: locked}, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
