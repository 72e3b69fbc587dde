// Package codec converts between text and bytes for the wire formats.
//
// All binary fields on the wire use standard base64 with padding.
package codec

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/sigil/internal/errors"
)

// UTF8 returns the UTF-8 encoding of s.
func UTF8(s string) []byte {
	return []byte(s)
}

// FromUTF8 decodes UTF-8 bytes into text.
func FromUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", kerrors.ErrInvalidUTF8
	}
	return string(b), nil
}

// Base64 encodes data with the standard padded alphabet.
func Base64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard padded base64.
func FromBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformed, err)
	}
	return data, nil
}
