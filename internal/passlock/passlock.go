// Package passlock protects secret key bundles at rest under a password.
//
// The key-encryption key is the first 32 bytes of SHA-512(password || nonce).
// The derived key is only ever used to lock credentials, never documents.
// Decryption failure is the only wrong-password signal: a corrupted blob is
// reported exactly like a wrong password.
package passlock

import (
	"fmt"

	"github.com/PolarWolf314/sigil/internal/codec"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	"github.com/PolarWolf314/sigil/internal/primitives"
	"github.com/PolarWolf314/sigil/internal/wire"
)

// Derive returns the key-encryption key for a password and nonce.
func Derive(suite primitives.Suite, password string, nonce []byte) []byte {
	input := make([]byte, 0, len(password)+len(nonce))
	input = append(input, codec.UTF8(password)...)
	input = append(input, nonce...)
	digest := suite.Hash(input)
	zeroBytes(input)
	return digest[:primitives.KeySize]
}

// Lock encrypts bundle under a key derived from password and a fresh nonce.
func Lock(suite primitives.Suite, password, bundle string) (string, error) {
	nonce, err := suite.RandomBytes(primitives.NonceSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate lock nonce: %w", err)
	}
	key := Derive(suite, password, nonce)
	defer zeroBytes(key)

	ct, err := suite.SecretEncrypt(codec.UTF8(bundle), nonce, key)
	if err != nil {
		return "", fmt.Errorf("failed to lock secret bundle: %w", err)
	}
	return wire.LockedSecret{Nonce: nonce, Ciphertext: ct}.String(), nil
}

// Unlock reverses Lock. A wrong password returns ErrAuthentication.
func Unlock(suite primitives.Suite, password, locked string) (string, error) {
	blob, err := wire.ParseLockedSecret(locked)
	if err != nil {
		return "", fmt.Errorf("parsing locked secret: %w", err)
	}
	key := Derive(suite, password, blob.Nonce)
	defer zeroBytes(key)

	plaintext, ok := suite.SecretDecrypt(blob.Ciphertext, blob.Nonce, key)
	if !ok {
		return "", kerrors.ErrAuthentication
	}
	return codec.FromUTF8(plaintext)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
