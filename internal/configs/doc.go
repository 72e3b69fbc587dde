// Package configs manages sigil's files on disk.
//
// Everything lives under one directory, SIGIL_HOME if set and otherwise
// <user config dir>/sigil:
//
//   - config.toml: default identity, store behaviour, audit switch
//   - keyring.toml: saved credentials, one entry per label
//   - audit.jsonl: append-only operation log (see package audit)
//
// Files holding secrets are written with mode 0600.
//
// # Keyring
//
// A keyring entry carries a human label, a UUID and the credential's
// identity. Unlocked credentials store both secrets; password-locked ones
// store only the locked blob. Entries are found by label, UUID or identity.
package configs
