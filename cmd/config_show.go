package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/configs"
	"github.com/PolarWolf314/sigil/internal/ui"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		settings := configs.UserSigilSettings
		Logger.Debugf("Loading user config from %s", settings.ConfigPath())
		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		if configShowJSON {
			return outputJSON(map[string]any{
				"default_identity":  config.User.DefaultIdentity,
				"reject_duplicates": config.Store.RejectDuplicates,
				"audit":             config.Audit.Enabled,
				"config_path":       settings.ConfigPath(),
				"keyring_path":      settings.KeyringPath,
				"audit_log_path":    settings.AuditLogPath,
			})
		}

		defaultIdentity := ui.Muted.Sprint("none")
		if config.User.DefaultIdentity != "" {
			defaultIdentity = ui.Highlight.Sprint(config.User.DefaultIdentity)
		}

		fmt.Println(ui.Info.Sprint("Configuration") + " " + ui.Path.Sprint(settings.ConfigPath()) + ":")
		fmt.Println()
		fmt.Printf("  %-18s %s\n", "default_identity:", defaultIdentity)
		fmt.Printf("  %-18s %t\n", "reject_duplicates:", config.Store.RejectDuplicates)
		fmt.Printf("  %-18s %t\n", "audit:", config.Audit.Enabled)
		fmt.Println()
		fmt.Printf("  %-18s %s\n", "keyring:", ui.Path.Sprint(settings.KeyringPath))
		fmt.Printf("  %-18s %s\n", "audit log:", ui.Path.Sprint(settings.AuditLogPath))
		return nil
	},
}
