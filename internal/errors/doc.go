// Package errors provides typed error values for sigil.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Ownership errors: no usable key material (ErrNoOwner, ErrUnknownWriter)
//   - Cryptographic errors: unlocking failures (ErrAuthentication)
//   - Format errors: foreign or broken wire records (ErrInvalidScheme, ErrMalformed)
//   - Keyring errors: CLI keyring state (ErrKeyringNotFound)
//
// # Negative Results
//
// A signature that does not verify, or an envelope that is not addressed to
// any of the candidate readers, is not an error. Those operations report
// ok == false with a nil error; the errors in this package are reserved for
// caller bugs and bad input.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("unlocking credential %s: %w", id, errors.ErrAuthentication)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrAuthentication) {
//	    // Ask for the password again
//	}
package errors
