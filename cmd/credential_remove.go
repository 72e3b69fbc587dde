package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var credentialRemoveCmd = &cobra.Command{
	Use:     "remove <label|uuid|identity>",
	Aliases: []string{"rm"},
	Short:   "Remove a credential from your keyring",
	Long: `Removes a credential from your keyring. This cannot be undone: envelopes
sealed only for this identity can no longer be opened.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential remove command")

		result, err := workflows.RemoveCredential(context.Background(), workflows.RemoveCredentialOptions{
			Ref: args[0],
			Log: Logger,
		})
		if err != nil {
			fmt.Println(formatError(err))
			return shownError{err}
		}

		fmt.Println(ui.Success.Sprint("✓") + " Removed credential " + ui.Highlight.Sprint(result.Removed.Label))
		if result.WasDefault {
			fmt.Println(ui.Warning.Sprint("⚠") + " You no longer have a default identity")
		}
		return nil
	},
}
