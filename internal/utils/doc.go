// Package utils provides shared helpers for the sigil CLI.
//
// # System Utilities
//
//   - GetUsername, GetHostname: OS identity
//   - SanitizeLabel, GenerateLabel, UniqueLabel: keyring label handling
//
// # String Utilities
//
//   - IsValidLabel, SplitList, FormatList
//
// # I/O Utilities
//
//   - ReadStdin, ReadInput: payloads from stdin or files
//
// # Terminal Utilities
//
//   - ReadPassword, ReadNewPassword: hidden password prompts, overridable
//     with SIGIL_PASSWORD
//   - IsTerminal, IsStdoutTerminal
package utils
