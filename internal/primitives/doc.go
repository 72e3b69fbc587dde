// Package primitives defines the narrow contract sigil needs from a
// public-key cryptography library, and a NaCl implementation of it.
//
// # Contract
//
// Suite exposes key generation for signing (Ed25519) and public-key
// encryption (Curve25519), detached signatures, secret-key authenticated
// encryption (XSalsa20-Poly1305), public-key authenticated encryption
// (Curve25519-XSalsa20-Poly1305), SHA-512 hashing and secure random bytes.
//
// Everything above this package treats keys as opaque byte slices and relies
// on the sizes exported here. Secretbox and box share the same 24-byte nonce
// size, which is what lets an envelope reuse one nonce for the content and for
// every wrapped key.
package primitives
