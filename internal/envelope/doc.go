// Package envelope implements hybrid multi-recipient encryption.
//
// # Encryption
//
// Encrypt serializes the content to JSON, seals it with secretbox under a
// fresh one-time key and nonce, then wraps the one-time key once per reader
// with box, keyed by the writer's box secret and the reader's box public key.
// Every wrap reuses the content nonce; each (writer secret, reader public)
// pair yields its own shared key, so no keystream is repeated.
//
// # Decryption
//
// There is no recipient index in an envelope. Open tries every wrapped key
// against every candidate reader that the store holds a box secret for, and
// stops at the first wrap that opens. The scan is
// O(wrapped keys × candidate readers), which is fine for small reader lists.
//
// An envelope that is not addressed to any candidate, or whose content does
// not authenticate, yields ok == false and a nil error. Foreign schemes and
// broken structure are errors.
//
// A nil reader list means "every identity in the store"; an empty, non-nil
// list means "nobody" and always yields false.
package envelope
