package wire

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/sigil/internal/codec"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	"github.com/PolarWolf314/sigil/internal/primitives"
)

// Scheme tags the format version of a signature or envelope.
type Scheme string

const (
	SchemeEd25519 Scheme = "ed25519-1"
	SchemeNaClBox Scheme = "naclbox-1"
)

const (
	fieldSep    = ":"
	pairSep     = "_"
	wrappedSep  = ","
	keyTagGlued = string(SchemeNaClBox) + fieldSep
)

// Identity is the pair of public keys an identity string is made of.
type Identity struct {
	SignPublicKey []byte
	BoxPublicKey  []byte
}

// ParseIdentity splits an identity string into its public keys.
func ParseIdentity(s string) (Identity, error) {
	parts := strings.Split(s, pairSep)
	if len(parts) != 2 {
		return Identity{}, fmt.Errorf("%w: identity must have two parts", kerrors.ErrMalformed)
	}
	signPub, err := codec.FromBase64(parts[0])
	if err != nil {
		return Identity{}, fmt.Errorf("identity signing key: %w", err)
	}
	boxPub, err := codec.FromBase64(parts[1])
	if err != nil {
		return Identity{}, fmt.Errorf("identity box key: %w", err)
	}
	if len(signPub) != primitives.SignPublicKeySize || len(boxPub) != primitives.KeySize {
		return Identity{}, fmt.Errorf("%w: identity key sizes %d/%d", kerrors.ErrMalformed, len(signPub), len(boxPub))
	}
	return Identity{SignPublicKey: signPub, BoxPublicKey: boxPub}, nil
}

func (id Identity) String() string {
	return codec.Base64(id.SignPublicKey) + pairSep + codec.Base64(id.BoxPublicKey)
}

// Signature is a detached signature tagged with the identity that made it.
type Signature struct {
	Scheme Scheme
	Owner  string
	Bytes  []byte
}

// ParseSignature parses "ed25519-1:<identity>:<b64 signature>".
func ParseSignature(s string) (Signature, error) {
	parts := strings.Split(s, fieldSep)
	if Scheme(parts[0]) != SchemeEd25519 {
		return Signature{}, fmt.Errorf("%w: signature scheme %q", kerrors.ErrInvalidScheme, parts[0])
	}
	if len(parts) != 3 {
		return Signature{}, fmt.Errorf("%w: signature must have 3 fields, got %d", kerrors.ErrMalformed, len(parts))
	}
	sig, err := codec.FromBase64(parts[2])
	if err != nil {
		return Signature{}, fmt.Errorf("signature bytes: %w", err)
	}
	return Signature{Scheme: SchemeEd25519, Owner: parts[1], Bytes: sig}, nil
}

func (s Signature) String() string {
	return string(s.Scheme) + fieldSep + s.Owner + fieldSep + codec.Base64(s.Bytes)
}

// Envelope is the parsed form of an encrypted, multi-recipient message.
type Envelope struct {
	Scheme      Scheme
	Writer      string
	Nonce       []byte
	WrappedKeys [][]byte
	Ciphertext  []byte
}

// ParseEnvelope parses "naclbox-1:<writer>:<nonce>:<w1>,...:<ciphertext>".
func ParseEnvelope(s string) (Envelope, error) {
	parts := strings.Split(s, fieldSep)
	if Scheme(parts[0]) != SchemeNaClBox {
		return Envelope{}, fmt.Errorf("%w: envelope scheme %q", kerrors.ErrInvalidScheme, parts[0])
	}
	if len(parts) != 5 {
		return Envelope{}, fmt.Errorf("%w: envelope must have 5 fields, got %d", kerrors.ErrMalformed, len(parts))
	}
	nonce, err := codec.FromBase64(parts[2])
	if err != nil {
		return Envelope{}, fmt.Errorf("envelope nonce: %w", err)
	}
	if len(nonce) != primitives.NonceSize {
		return Envelope{}, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrMalformed, primitives.NonceSize, len(nonce))
	}
	var wrapped [][]byte
	if parts[3] != "" {
		for i, w := range strings.Split(parts[3], wrappedSep) {
			b, err := codec.FromBase64(w)
			if err != nil {
				return Envelope{}, fmt.Errorf("wrapped key %d: %w", i, err)
			}
			wrapped = append(wrapped, b)
		}
	}
	ct, err := codec.FromBase64(parts[4])
	if err != nil {
		return Envelope{}, fmt.Errorf("envelope ciphertext: %w", err)
	}
	return Envelope{
		Scheme:      SchemeNaClBox,
		Writer:      parts[1],
		Nonce:       nonce,
		WrappedKeys: wrapped,
		Ciphertext:  ct,
	}, nil
}

func (e Envelope) String() string {
	wrapped := make([]string, len(e.WrappedKeys))
	for i, w := range e.WrappedKeys {
		wrapped[i] = codec.Base64(w)
	}
	return strings.Join([]string{
		string(e.Scheme),
		e.Writer,
		codec.Base64(e.Nonce),
		strings.Join(wrapped, wrappedSep),
		codec.Base64(e.Ciphertext),
	}, fieldSep)
}

// LockedSecret is a password-locked secret bundle.
type LockedSecret struct {
	Nonce      []byte
	Ciphertext []byte
}

// ParseLockedSecret parses "<b64 nonce>_<b64 ciphertext>".
func ParseLockedSecret(s string) (LockedSecret, error) {
	parts := strings.Split(s, pairSep)
	if len(parts) != 2 {
		return LockedSecret{}, fmt.Errorf("%w: locked secret must have two parts", kerrors.ErrMalformed)
	}
	nonce, err := codec.FromBase64(parts[0])
	if err != nil {
		return LockedSecret{}, fmt.Errorf("locked secret nonce: %w", err)
	}
	if len(nonce) != primitives.NonceSize {
		return LockedSecret{}, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrMalformed, primitives.NonceSize, len(nonce))
	}
	ct, err := codec.FromBase64(parts[1])
	if err != nil {
		return LockedSecret{}, fmt.Errorf("locked secret ciphertext: %w", err)
	}
	return LockedSecret{Nonce: nonce, Ciphertext: ct}, nil
}

func (l LockedSecret) String() string {
	return codec.Base64(l.Nonce) + pairSep + codec.Base64(l.Ciphertext)
}

// SecretBundle is the cleartext secret material of a credential.
type SecretBundle struct {
	SignSecretKey []byte
	BoxSecretKey  []byte
}

// ParseSecretBundle parses "<b64 signSecret>_<b64 boxSecret>".
func ParseSecretBundle(s string) (SecretBundle, error) {
	parts := strings.Split(s, pairSep)
	if len(parts) != 2 {
		return SecretBundle{}, fmt.Errorf("%w: secret bundle must have two parts", kerrors.ErrMalformed)
	}
	signSec, err := codec.FromBase64(parts[0])
	if err != nil {
		return SecretBundle{}, fmt.Errorf("signing secret: %w", err)
	}
	boxSec, err := codec.FromBase64(parts[1])
	if err != nil {
		return SecretBundle{}, fmt.Errorf("box secret: %w", err)
	}
	if len(signSec) != primitives.SignSecretKeySize || len(boxSec) != primitives.KeySize {
		return SecretBundle{}, fmt.Errorf("%w: secret key sizes %d/%d", kerrors.ErrMalformed, len(signSec), len(boxSec))
	}
	return SecretBundle{SignSecretKey: signSec, BoxSecretKey: boxSec}, nil
}

func (b SecretBundle) String() string {
	return codec.Base64(b.SignSecretKey) + pairSep + codec.Base64(b.BoxSecretKey)
}

// WrapKeyPlaintext tags a one-time content key before it is boxed for a reader.
func WrapKeyPlaintext(key []byte) []byte {
	return codec.UTF8(keyTagGlued + codec.Base64(key))
}

// UnwrapKeyPlaintext checks the tag of an opened wrapped key and returns the key.
func UnwrapKeyPlaintext(plaintext []byte) ([]byte, error) {
	text, err := codec.FromUTF8(plaintext)
	if err != nil {
		return nil, err
	}
	encoded, ok := strings.CutPrefix(text, keyTagGlued)
	if !ok {
		return nil, fmt.Errorf("%w: wrapped key tag", kerrors.ErrInvalidScheme)
	}
	key, err := codec.FromBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("wrapped key: %w", err)
	}
	if len(key) != primitives.KeySize {
		return nil, fmt.Errorf("%w: one-time key must be %d bytes, got %d", kerrors.ErrMalformed, primitives.KeySize, len(key))
	}
	return key, nil
}
