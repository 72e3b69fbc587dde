// Package credentials manages credential lifecycle and the in-memory
// credential store.
//
// # Credentials
//
// A Credential is an Ed25519 signing key pair plus a Curve25519 box key
// pair. Its identity is the two public keys, base64 encoded and joined by
// '_', so an identity is unique unless both public keys collide.
//
// New returns either cleartext secrets or, when a password is given, a
// Locked blob holding the password-locked secret bundle. Never both.
//
// # Store
//
// Store maps identities to cleartext secret material. Adding a locked
// credential unlocks it and checks that the recovered box secret derives
// the box public key embedded in the identity; a mismatch means the password
// was wrong. Cleartext credentials are taken as given.
//
// Identities are remembered in insertion order so that "every identity in the
// store" is a deterministic candidate list. A second Add for the same
// identity replaces the secrets and keeps the original position, unless the
// store was created with RejectDuplicates.
//
// The store is safe for concurrent use.
package credentials
