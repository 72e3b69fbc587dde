package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	"github.com/PolarWolf314/sigil/internal/primitives"
)

func fill(n int, b byte) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func testIdentity() Identity {
	return Identity{
		SignPublicKey: fill(primitives.SignPublicKeySize, 1),
		BoxPublicKey:  fill(primitives.KeySize, 2),
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	id := testIdentity()
	text := id.String()
	if strings.Count(text, "_") != 1 {
		t.Fatalf("Expected exactly one separator in %q", text)
	}
	parsed, err := ParseIdentity(text)
	if err != nil {
		t.Fatalf("ParseIdentity failed: %v", err)
	}
	if !bytes.Equal(parsed.SignPublicKey, id.SignPublicKey) || !bytes.Equal(parsed.BoxPublicKey, id.BoxPublicKey) {
		t.Error("Parsed identity does not match original")
	}
}

func TestParseIdentity_Malformed(t *testing.T) {
	tests := []string{
		"",
		"unrelated_id",
		"AAAA",
		testIdentity().String() + "_AAAA",
	}
	for _, input := range tests {
		if _, err := ParseIdentity(input); !errors.Is(err, kerrors.ErrMalformed) {
			t.Errorf("ParseIdentity(%q): expected ErrMalformed, got %v", input, err)
		}
	}
}

func TestSignatureRoundTrip(t *testing.T) {
	sig := Signature{Scheme: SchemeEd25519, Owner: testIdentity().String(), Bytes: fill(primitives.SignatureSize, 9)}
	text := sig.String()
	if !strings.HasPrefix(text, "ed25519-1:") {
		t.Fatalf("Expected ed25519-1 prefix, got %q", text)
	}
	parsed, err := ParseSignature(text)
	if err != nil {
		t.Fatalf("ParseSignature failed: %v", err)
	}
	if parsed.Owner != sig.Owner || !bytes.Equal(parsed.Bytes, sig.Bytes) {
		t.Error("Parsed signature does not match original")
	}
}

func TestParseSignature_Errors(t *testing.T) {
	if _, err := ParseSignature("rsa-1:owner:AAAA"); !errors.Is(err, kerrors.ErrInvalidScheme) {
		t.Errorf("Expected ErrInvalidScheme, got %v", err)
	}
	if _, err := ParseSignature("ed25519-1:owner"); !errors.Is(err, kerrors.ErrMalformed) {
		t.Errorf("Expected ErrMalformed for missing field, got %v", err)
	}
	if _, err := ParseSignature("ed25519-1:owner:***"); !errors.Is(err, kerrors.ErrMalformed) {
		t.Errorf("Expected ErrMalformed for bad base64, got %v", err)
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := Envelope{
		Scheme:      SchemeNaClBox,
		Writer:      testIdentity().String(),
		Nonce:       fill(primitives.NonceSize, 3),
		WrappedKeys: [][]byte{fill(40, 4), fill(40, 5)},
		Ciphertext:  fill(30, 6),
	}
	text := env.String()
	if got := strings.Count(text, ":"); got != 4 {
		t.Fatalf("Expected 4 field separators, got %d in %q", got, text)
	}
	parsed, err := ParseEnvelope(text)
	if err != nil {
		t.Fatalf("ParseEnvelope failed: %v", err)
	}
	if parsed.Writer != env.Writer || len(parsed.WrappedKeys) != 2 {
		t.Fatalf("Unexpected parsed envelope: %+v", parsed)
	}
	if !bytes.Equal(parsed.WrappedKeys[1], env.WrappedKeys[1]) || !bytes.Equal(parsed.Ciphertext, env.Ciphertext) {
		t.Error("Parsed envelope bytes do not match original")
	}
}

func TestParseEnvelope_NoReaders(t *testing.T) {
	env := Envelope{Scheme: SchemeNaClBox, Writer: testIdentity().String(), Nonce: fill(primitives.NonceSize, 3), Ciphertext: fill(20, 1)}
	parsed, err := ParseEnvelope(env.String())
	if err != nil {
		t.Fatalf("ParseEnvelope failed: %v", err)
	}
	if len(parsed.WrappedKeys) != 0 {
		t.Errorf("Expected no wrapped keys, got %d", len(parsed.WrappedKeys))
	}
}

func TestParseEnvelope_Errors(t *testing.T) {
	good := Envelope{Scheme: SchemeNaClBox, Writer: "w", Nonce: fill(primitives.NonceSize, 3), Ciphertext: fill(20, 1)}.String()
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"foreign scheme", strings.Replace(good, "naclbox-1", "naclbox-2", 1), kerrors.ErrInvalidScheme},
		{"missing field", "naclbox-1:w:AAAA", kerrors.ErrMalformed},
		{"short nonce", "naclbox-1:w:AAAA::AAAA", kerrors.ErrMalformed},
		{"bad wrapped key", strings.Replace(good, "::", ":***:", 1), kerrors.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEnvelope(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLockedSecretRoundTrip(t *testing.T) {
	l := LockedSecret{Nonce: fill(primitives.NonceSize, 1), Ciphertext: fill(50, 2)}
	parsed, err := ParseLockedSecret(l.String())
	if err != nil {
		t.Fatalf("ParseLockedSecret failed: %v", err)
	}
	if !bytes.Equal(parsed.Nonce, l.Nonce) || !bytes.Equal(parsed.Ciphertext, l.Ciphertext) {
		t.Error("Parsed locked secret does not match original")
	}
	if _, err := ParseLockedSecret("nonce-only"); !errors.Is(err, kerrors.ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}

func TestSecretBundleRoundTrip(t *testing.T) {
	b := SecretBundle{SignSecretKey: fill(primitives.SignSecretKeySize, 1), BoxSecretKey: fill(primitives.KeySize, 2)}
	parsed, err := ParseSecretBundle(b.String())
	if err != nil {
		t.Fatalf("ParseSecretBundle failed: %v", err)
	}
	if !bytes.Equal(parsed.SignSecretKey, b.SignSecretKey) || !bytes.Equal(parsed.BoxSecretKey, b.BoxSecretKey) {
		t.Error("Parsed bundle does not match original")
	}
	if _, err := ParseSecretBundle("AAAA_AAAA"); !errors.Is(err, kerrors.ErrMalformed) {
		t.Errorf("Expected ErrMalformed for short keys, got %v", err)
	}
}

func TestWrappedKeyTag(t *testing.T) {
	key := fill(primitives.KeySize, 8)
	plaintext := WrapKeyPlaintext(key)
	if !bytes.HasPrefix(plaintext, []byte("naclbox-1:")) {
		t.Fatalf("Expected naclbox-1 tag, got %q", plaintext)
	}
	got, err := UnwrapKeyPlaintext(plaintext)
	if err != nil {
		t.Fatalf("UnwrapKeyPlaintext failed: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Error("Unwrapped key does not match")
	}
	if _, err := UnwrapKeyPlaintext([]byte("other-1:AAAA")); !errors.Is(err, kerrors.ErrInvalidScheme) {
		t.Errorf("Expected ErrInvalidScheme, got %v", err)
	}
}
