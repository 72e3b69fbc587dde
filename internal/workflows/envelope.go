package workflows

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/sigil/internal/audit"
	"github.com/PolarWolf314/sigil/internal/codec"
	"github.com/PolarWolf314/sigil/internal/envelope"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	logger "github.com/PolarWolf314/sigil/internal/logging"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Writer is the sealing identity. If empty, the default identity is used.
	Writer string

	// Readers are the recipients: labels, UUIDs or identities that need not
	// be in the keyring. If empty, the envelope is sealed for the writer.
	Readers []string

	// Content is sealed as a JSON string unless JSON is set, in which case
	// it must already be a JSON document.
	Content []byte
	JSON    bool

	Passwords PasswordFunc
	Log       logger.Logger
}

// EncryptResult contains a sealed envelope.
type EncryptResult struct {
	Envelope string
	Writer   string
	Readers  []string
}

// Encrypt seals content for the readers as the writer.
//
// Returns ErrUnknownWriter if the writer's secrets are not available.
// Returns ErrCredentialNotFound if a reader is neither saved nor an identity.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}

	refs, err := s.defaultRefs(nonEmpty(opts.Writer))
	if err != nil {
		return nil, err
	}
	writerID, writerEntry, err := s.resolve(refs[0])
	if err != nil {
		return nil, err
	}

	store := s.newStore()
	if writerEntry != nil {
		if _, err := s.load(store, writerEntry, opts.Passwords); err != nil {
			return nil, err
		}
	}

	readerRefs := opts.Readers
	if len(readerRefs) == 0 {
		readerRefs = []string{writerID}
	}
	readers := make([]string, 0, len(readerRefs))
	for _, ref := range readerRefs {
		id, _, err := s.resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("reader: %w", err)
		}
		readers = append(readers, id)
	}

	content, err := envelopeContent(opts.Content, opts.JSON)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := envelope.NewSealer(store, s.log).Encrypt(content, writerID, readers)
	if err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("encrypt")
	auditEntry.Identity = writerID
	auditEntry.Label = s.labelFor(writerID)
	auditEntry.Readers = readers
	s.audit(auditEntry)

	return &EncryptResult{Envelope: text, Writer: writerID, Readers: readers}, nil
}

func envelopeContent(data []byte, isJSON bool) (any, error) {
	if isJSON {
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: content is not a JSON document", kerrors.ErrMalformed)
		}
		return json.RawMessage(data), nil
	}
	text, err := codec.FromUTF8(data)
	if err != nil {
		return nil, err
	}
	return text, nil
}

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	Envelope string

	// Readers are the candidate identities to try. Nil means every keyring
	// entry; candidates that are not in the keyring are ignored.
	Readers []string

	Passwords PasswordFunc
	Log       logger.Logger
}

// DecryptResult contains the outcome of a decryption.
type DecryptResult struct {
	// Opened is false when no candidate could open the envelope or its
	// content failed to authenticate.
	Opened bool

	Reader string
	Label  string

	// Content is the JSON document inside the envelope. When it is a JSON
	// string, IsText is set and Text holds the decoded string.
	Content json.RawMessage
	Text    string
	IsText  bool
}

// Decrypt opens an envelope with the first candidate reader that can.
//
// Returns ErrInvalidScheme or ErrMalformed if the envelope cannot be parsed.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	s, err := openSession(opts.Log)
	if err != nil {
		return nil, err
	}

	store := s.newStore()
	var readers []string
	if opts.Readers == nil {
		if len(s.ring.Entries) == 0 {
			return nil, kerrors.ErrKeyringNotFound
		}
		for i := range s.ring.Entries {
			if _, err := s.load(store, &s.ring.Entries[i], opts.Passwords); err != nil {
				return nil, err
			}
		}
	} else {
		readers = make([]string, 0, len(opts.Readers))
		for _, ref := range opts.Readers {
			id, entry, err := s.resolve(ref)
			if err != nil || entry == nil {
				s.log.Infof("Skipping reader %s: not in keyring", ref)
				continue
			}
			if _, err := s.load(store, entry, opts.Passwords); err != nil {
				return nil, err
			}
			readers = append(readers, id)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var content json.RawMessage
	reader, ok, err := envelope.NewSealer(store, s.log).Decrypt(opts.Envelope, readers, &content)
	if err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("decrypt")
	auditEntry.Reader = reader
	auditEntry.Label = s.labelFor(reader)
	auditEntry.OK = audit.Result(ok)
	s.audit(auditEntry)

	result := &DecryptResult{Opened: ok}
	if !ok {
		return result, nil
	}
	result.Reader = reader
	result.Label = s.labelFor(reader)
	result.Content = content
	if err := json.Unmarshal(content, &result.Text); err == nil {
		result.IsText = true
	}
	return result, nil
}
