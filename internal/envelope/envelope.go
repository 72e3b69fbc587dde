package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/sigil/internal/credentials"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	logger "github.com/PolarWolf314/sigil/internal/logging"
	"github.com/PolarWolf314/sigil/internal/primitives"
	"github.com/PolarWolf314/sigil/internal/wire"
)

// Opened is the result of a successful Open.
type Opened struct {
	// Reader is the candidate identity whose wrapped key opened.
	Reader    string
	Plaintext []byte
}

// Sealer encrypts and decrypts envelopes with the credentials of a store.
type Sealer struct {
	store *credentials.Store
	log   logger.Logger
}

// NewSealer returns a Sealer over store.
func NewSealer(store *credentials.Store, log logger.Logger) *Sealer {
	return &Sealer{store: store, log: log}
}

// Encrypt seals content for readers as writerID and returns the envelope text.
func (s *Sealer) Encrypt(content any, writerID string, readers []string) (string, error) {
	writer, ok := s.store.Lookup(writerID)
	if !ok || !writer.CanDecrypt() {
		return "", fmt.Errorf("encrypting as %s: %w", credentials.ShortID(writerID), kerrors.ErrUnknownWriter)
	}
	plaintext, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return s.seal(plaintext, writer, readers)
}

// EncryptBytes seals raw bytes instead of a JSON value. Decrypt it with Open.
func (s *Sealer) EncryptBytes(plaintext []byte, writerID string, readers []string) (string, error) {
	writer, ok := s.store.Lookup(writerID)
	if !ok || !writer.CanDecrypt() {
		return "", fmt.Errorf("encrypting as %s: %w", credentials.ShortID(writerID), kerrors.ErrUnknownWriter)
	}
	return s.seal(plaintext, writer, readers)
}

func (s *Sealer) seal(plaintext []byte, writer credentials.Record, readers []string) (string, error) {
	suite := s.store.Suite()
	if _, err := wire.ParseIdentity(writer.ID); err != nil {
		return "", fmt.Errorf("writer: %w", err)
	}

	readerKeys := make([][]byte, len(readers))
	for i, reader := range readers {
		identity, err := wire.ParseIdentity(reader)
		if err != nil {
			return "", fmt.Errorf("reader %d: %w", i, err)
		}
		readerKeys[i] = identity.BoxPublicKey
	}

	key, err := suite.RandomBytes(primitives.KeySize)
	if err != nil {
		return "", fmt.Errorf("generating content key: %w", err)
	}
	defer zeroBytes(key)
	nonce, err := suite.RandomBytes(primitives.NonceSize)
	if err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	ct, err := suite.SecretEncrypt(plaintext, nonce, key)
	if err != nil {
		return "", fmt.Errorf("sealing content: %w", err)
	}

	tagged := wire.WrapKeyPlaintext(key)
	defer zeroBytes(tagged)
	wrapped := make([][]byte, len(readerKeys))
	for i, readerKey := range readerKeys {
		wrapped[i], err = suite.BoxEncrypt(tagged, nonce, readerKey, writer.EncryptSecret)
		if err != nil {
			return "", fmt.Errorf("wrapping key for reader %d: %w", i, err)
		}
	}
	s.log.Debugf("Sealed %d bytes for %d readers", len(plaintext), len(readers))

	return wire.Envelope{
		Scheme:      wire.SchemeNaClBox,
		Writer:      writer.ID,
		Nonce:       nonce,
		WrappedKeys: wrapped,
		Ciphertext:  ct,
	}.String(), nil
}

// Open recovers the plaintext of an envelope for the first candidate reader
// that can unwrap its key. A nil readers slice means every stored identity.
func (s *Sealer) Open(text string, readers []string) (Opened, bool, error) {
	env, err := wire.ParseEnvelope(text)
	if err != nil {
		return Opened{}, false, err
	}
	writer, err := wire.ParseIdentity(env.Writer)
	if err != nil {
		return Opened{}, false, fmt.Errorf("envelope writer: %w", err)
	}
	if readers == nil {
		readers = s.store.IDs()
	}

	suite := s.store.Suite()
	candidates := s.candidates(readers)
	for _, wrappedKey := range env.WrappedKeys {
		for _, reader := range candidates {
			tagged, ok := suite.BoxOpen(wrappedKey, env.Nonce, writer.BoxPublicKey, reader.EncryptSecret)
			if !ok {
				continue
			}
			key, err := wire.UnwrapKeyPlaintext(tagged)
			if err != nil {
				return Opened{}, false, err
			}
			plaintext, ok := suite.SecretDecrypt(env.Ciphertext, env.Nonce, key)
			zeroBytes(key)
			if !ok {
				s.log.Debugf("Key unwrapped for %s but content did not authenticate", credentials.ShortID(reader.ID))
				return Opened{}, false, nil
			}
			return Opened{Reader: reader.ID, Plaintext: plaintext}, true, nil
		}
	}
	s.log.Debugf("No wrapped key opened for %d candidate readers", len(candidates))
	return Opened{}, false, nil
}

// Decrypt opens an envelope and unmarshals its JSON content into v.
func (s *Sealer) Decrypt(text string, readers []string, v any) (string, bool, error) {
	opened, ok, err := s.Open(text, readers)
	if err != nil || !ok {
		return "", ok, err
	}
	if err := json.Unmarshal(opened.Plaintext, v); err != nil {
		return "", false, fmt.Errorf("%w: envelope content: %v", kerrors.ErrMalformed, err)
	}
	return opened.Reader, true, nil
}

// candidates resolves reader identities to records that hold a box secret.
func (s *Sealer) candidates(readers []string) []credentials.Record {
	out := make([]credentials.Record, 0, len(readers))
	for _, id := range readers {
		rec, ok := s.store.Lookup(id)
		if ok && rec.CanDecrypt() {
			out = append(out, rec)
		}
	}
	return out
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
