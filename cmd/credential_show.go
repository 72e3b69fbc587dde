package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/configs"
	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var (
	showFull bool
	showJSON bool
)

func init() {
	credentialShowCmd.Flags().BoolVar(&showFull, "full", false, "print only the full identity string")
	credentialShowCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
}

func resetCredentialShowState() {
	showFull = false
	showJSON = false
}

var credentialShowCmd = &cobra.Command{
	Use:   "show [label|uuid|identity]",
	Short: "Show a credential's public identity",
	Long: `Shows a credential from your keyring. Without an argument the default
identity is shown. Use --full to print just the identity, ready to share.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential show command")

		opts := workflows.ShowCredentialOptions{Log: Logger}
		if len(args) == 1 {
			opts.Ref = args[0]
		}

		result, err := workflows.ShowCredential(context.Background(), opts)
		if err != nil {
			fmt.Println(formatError(err))
			return shownError{err}
		}

		e := result.Entry
		switch {
		case showFull:
			fmt.Println(e.ID)
		case showJSON:
			return outputJSON(publicEntries([]configs.KeyringEntry{e})[0])
		default:
			fmt.Printf("  %-10s %s\n", "Label:", ui.Highlight.Sprint(e.Label))
			fmt.Printf("  %-10s %s\n", "UUID:", e.UUID)
			fmt.Printf("  %-10s %s\n", "Identity:", e.ID)
			fmt.Printf("  %-10s %t\n", "Locked:", e.IsLocked())
			fmt.Printf("  %-10s %t\n", "Default:", result.IsDefault)
			fmt.Printf("  %-10s %s\n", "Created:", e.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}
