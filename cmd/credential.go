package cmd

import (
	"github.com/spf13/cobra"
)

// CredentialCmd groups keyring management commands.
var CredentialCmd = &cobra.Command{
	Use:     "credential",
	Aliases: []string{"cred"},
	Short:   "Create and manage credentials in your keyring",
	Long: `Manages the credentials in your keyring.

A credential is a signing key pair and an encryption key pair, identified by
one identity string. Share the identity with people who encrypt for you or
verify your signatures; keep the keyring to yourself.

Examples:
  # Create a credential locked with a password
  sigil credential new work-laptop --lock

  # List saved credentials
  sigil credential list

  # Print the identity to share
  sigil credential show work-laptop --full`,
}

func init() {
	CredentialCmd.AddCommand(credentialNewCmd)
	CredentialCmd.AddCommand(credentialListCmd)
	CredentialCmd.AddCommand(credentialShowCmd)
	CredentialCmd.AddCommand(credentialRemoveCmd)
	CredentialCmd.AddCommand(credentialPasswdCmd)
}

func resetCredentialState() {
	resetCredentialNewState()
	resetCredentialListState()
	resetCredentialShowState()
	resetCredentialPasswdState()
}
