package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/utils"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var (
	newLock       bool
	newSetDefault bool
)

func init() {
	credentialNewCmd.Flags().BoolVar(&newLock, "lock", false, "lock the credential with a password")
	credentialNewCmd.Flags().BoolVar(&newSetDefault, "default", false, "make this the default identity")
}

func resetCredentialNewState() {
	newLock = false
	newSetDefault = false
}

var credentialNewCmd = &cobra.Command{
	Use:   "new [label]",
	Short: "Generate a credential and save it to your keyring",
	Long: `Generates a new credential and saves it under a label.

Without a label one is derived from the hostname. With --lock the secrets are
stored only in password-locked form; set SIGIL_PASSWORD to avoid the prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential new command")

		opts := workflows.CreateCredentialOptions{
			SetDefault: newSetDefault,
			Log:        Logger,
		}
		if len(args) == 1 {
			opts.Label = args[0]
		}

		if newLock {
			password, err := utils.ReadNewPassword("New password: ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read password: %v", err)
			}
			opts.Password = password
		}

		spinner, cleanup := startSpinner("Generating credential...")
		defer cleanup()

		result, err := workflows.CreateCredential(context.Background(), opts)
		if err != nil {
			return fail(spinner, err)
		}

		msg := ui.Success.Sprint("✓") + " Created credential " + ui.Highlight.Sprint(result.Entry.Label) + "\n" +
			"  identity: " + result.Entry.ID
		if result.Entry.IsLocked() {
			msg += "\n  " + ui.Muted.Sprint("locked with a password")
		}
		if result.IsDefault {
			msg += "\n" + ui.Info.Sprint("→") + " This is now your default identity"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
