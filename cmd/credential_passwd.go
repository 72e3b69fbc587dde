package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/utils"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var passwdUnlock bool

func init() {
	credentialPasswdCmd.Flags().BoolVar(&passwdUnlock, "unlock", false, "store the credential without a password")
}

func resetCredentialPasswdState() {
	passwdUnlock = false
}

var credentialPasswdCmd = &cobra.Command{
	Use:   "passwd <label|uuid|identity>",
	Short: "Change, add or remove a credential's password",
	Long: `Relocks a credential under a new password. The identity does not change.

Use --unlock to store the credential in cleartext instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential passwd command")
		ctx := context.Background()

		shown, err := workflows.ShowCredential(ctx, workflows.ShowCredentialOptions{Ref: args[0], Log: Logger})
		if err != nil {
			fmt.Println(formatError(err))
			return shownError{err}
		}

		opts := workflows.ChangePasswordOptions{Ref: args[0], Log: Logger}
		if shown.Entry.IsLocked() {
			if opts.OldPassword, err = utils.ReadPassword("Current password: "); err != nil {
				return Logger.ErrorfAndReturn("Failed to read password: %v", err)
			}
		}
		if !passwdUnlock {
			if opts.NewPassword, err = utils.ReadNewPassword("New password: "); err != nil {
				return Logger.ErrorfAndReturn("Failed to read password: %v", err)
			}
		}

		result, err := workflows.ChangePassword(ctx, opts)
		if err != nil {
			fmt.Println(formatError(err))
			return shownError{err}
		}

		if result.Entry.IsLocked() {
			fmt.Println(ui.Success.Sprint("✓") + " Locked " + ui.Highlight.Sprint(result.Entry.Label) + " with the new password")
		} else {
			fmt.Println(ui.Success.Sprint("✓") + " Stored " + ui.Highlight.Sprint(result.Entry.Label) + " without a password")
		}
		return nil
	},
}
