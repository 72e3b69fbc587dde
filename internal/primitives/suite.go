package primitives

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/sigil/internal/errors"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the length of a secretbox key and of box keys.
	KeySize = 32

	// NonceSize is shared by secretbox and box.
	NonceSize = 24

	// SignPublicKeySize is the length of an Ed25519 public key.
	SignPublicKeySize = ed25519.PublicKeySize

	// SignSecretKeySize is the length of an Ed25519 secret key (seed and public key).
	SignSecretKeySize = ed25519.PrivateKeySize

	// SignatureSize is the length of a detached Ed25519 signature.
	SignatureSize = ed25519.SignatureSize

	// HashSize is the digest length of Hash.
	HashSize = sha512.Size
)

// Suite is the set of primitives the credential and envelope layers consume.
type Suite interface {
	GenSignKeypair() (publicKey, secretKey []byte, err error)
	GenBoxKeypair() (publicKey, secretKey []byte, err error)

	DetachedSign(message, secretKey []byte) ([]byte, error)
	DetachedVerify(message, signature, publicKey []byte) bool

	SecretEncrypt(message, nonce, key []byte) ([]byte, error)
	SecretDecrypt(ciphertext, nonce, key []byte) ([]byte, bool)

	BoxEncrypt(message, nonce, theirPublicKey, mySecretKey []byte) ([]byte, error)
	BoxOpen(ciphertext, nonce, theirPublicKey, mySecretKey []byte) ([]byte, bool)

	Hash(data []byte) []byte
	RandomBytes(n int) ([]byte, error)

	// BoxPublicFromSecret derives the Curve25519 public key of a box secret key.
	BoxPublicFromSecret(secretKey []byte) ([]byte, error)
}

// NaCl implements Suite with golang.org/x/crypto and crypto/ed25519.
type NaCl struct {
	// Rand is the entropy source. If nil, crypto/rand.Reader is used.
	Rand io.Reader
}

// Default returns a NaCl suite reading from crypto/rand.
func Default() *NaCl {
	return &NaCl{}
}

func (n *NaCl) random() io.Reader {
	if n.Rand != nil {
		return n.Rand
	}
	return rand.Reader
}

func (n *NaCl) GenSignKeypair() ([]byte, []byte, error) {
	pub, sec, err := ed25519.GenerateKey(n.random())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate signing key pair: %w", err)
	}
	return pub, sec, nil
}

func (n *NaCl) GenBoxKeypair() ([]byte, []byte, error) {
	pub, sec, err := box.GenerateKey(n.random())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate box key pair: %w", err)
	}
	return pub[:], sec[:], nil
}

func (n *NaCl) DetachedSign(message, secretKey []byte) ([]byte, error) {
	if len(secretKey) != SignSecretKeySize {
		return nil, fmt.Errorf("%w: signing secret must be %d bytes, got %d", kerrors.ErrMalformed, SignSecretKeySize, len(secretKey))
	}
	return ed25519.Sign(ed25519.PrivateKey(secretKey), message), nil
}

func (n *NaCl) DetachedVerify(message, signature, publicKey []byte) bool {
	if len(publicKey) != SignPublicKeySize || len(signature) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}

func (n *NaCl) SecretEncrypt(message, nonce, key []byte) ([]byte, error) {
	k, err := toKey(key)
	if err != nil {
		return nil, err
	}
	nn, err := toNonce(nonce)
	if err != nil {
		return nil, err
	}
	return secretbox.Seal(nil, message, nn, k), nil
}

func (n *NaCl) SecretDecrypt(ciphertext, nonce, key []byte) ([]byte, bool) {
	k, err := toKey(key)
	if err != nil {
		return nil, false
	}
	nn, err := toNonce(nonce)
	if err != nil {
		return nil, false
	}
	return secretbox.Open(nil, ciphertext, nn, k)
}

func (n *NaCl) BoxEncrypt(message, nonce, theirPublicKey, mySecretKey []byte) ([]byte, error) {
	peer, err := toKey(theirPublicKey)
	if err != nil {
		return nil, err
	}
	own, err := toKey(mySecretKey)
	if err != nil {
		return nil, err
	}
	nn, err := toNonce(nonce)
	if err != nil {
		return nil, err
	}
	return box.Seal(nil, message, nn, peer, own), nil
}

func (n *NaCl) BoxOpen(ciphertext, nonce, theirPublicKey, mySecretKey []byte) ([]byte, bool) {
	peer, err := toKey(theirPublicKey)
	if err != nil {
		return nil, false
	}
	own, err := toKey(mySecretKey)
	if err != nil {
		return nil, false
	}
	nn, err := toNonce(nonce)
	if err != nil {
		return nil, false
	}
	return box.Open(nil, ciphertext, nn, peer, own)
}

func (n *NaCl) Hash(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}

func (n *NaCl) RandomBytes(size int) ([]byte, error) {
	out := make([]byte, size)
	if _, err := io.ReadFull(n.random(), out); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return out, nil
}

func (n *NaCl) BoxPublicFromSecret(secretKey []byte) ([]byte, error) {
	if len(secretKey) != KeySize {
		return nil, fmt.Errorf("%w: box secret must be %d bytes, got %d", kerrors.ErrMalformed, KeySize, len(secretKey))
	}
	pub, err := curve25519.X25519(secretKey, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive box public key: %w", err)
	}
	return pub, nil
}

func toKey(b []byte) (*[KeySize]byte, error) {
	if len(b) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", kerrors.ErrMalformed, KeySize, len(b))
	}
	var k [KeySize]byte
	copy(k[:], b)
	return &k, nil
}

func toNonce(b []byte) (*[NonceSize]byte, error) {
	if len(b) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrMalformed, NonceSize, len(b))
	}
	var nn [NonceSize]byte
	copy(nn[:], b)
	return &nn, nil
}
