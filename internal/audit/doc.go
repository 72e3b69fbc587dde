// Package audit records sigil operations.
//
// Credential changes, signatures, verifications and envelope operations
// are appended to a JSON Lines file in the sigil home directory:
//
//	audit.jsonl
//
// Each entry has an ID, a UTC timestamp, the OS user and the operation
// name, plus whichever of label, identity, owner, reader, readers and ok
// apply. Secrets, passwords and payloads are never logged.
//
// # Usage
//
//	entry := audit.LogWithUser("encrypt")
//	entry.Identity = writer
//	entry.Readers = readers
//	audit.Log(entry)
//
// Logging is best-effort: a failed write never fails the operation.
// ReadEntries skips malformed lines to tolerate partial writes.
package audit
