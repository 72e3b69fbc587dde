// Package workflows provides high-level orchestration for sigil commands.
//
// Workflows tie the keyring and user config (package configs) to the
// credential store, signer and sealer, and record audit entries. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners and output formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - CreateCredential, ListCredentials, ShowCredential, RemoveCredential,
//     ChangePassword: keyring management
//   - Sign, Verify: detached signatures
//   - Encrypt, Decrypt: multi-recipient envelopes
//   - Log: reading the audit trail
//
// # Identity References
//
// Wherever a workflow takes an identity it accepts a keyring label, an
// entry UUID or the identity string itself. Envelope readers may also be
// identities that are not in the keyring.
//
// # Locked Credentials
//
// A store is built per call from the keyring entries the operation needs.
// Locked entries are unlocked through the caller's PasswordFunc; when that
// is nil, locked entries are skipped.
//
// # Error Handling
//
// Workflows return sentinel errors from internal/errors wrapped with %w.
// Negative outcomes (a signature that does not verify, an envelope no
// candidate can open) are results, not errors.
package workflows
