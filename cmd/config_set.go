package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/configs"
	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Changes one setting in config.toml.

Keys:
  default_identity    label, uuid or identity of a saved credential
  reject_duplicates   true or false
  audit               true or false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config set command")
		key, value := args[0], args[1]

		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		switch key {
		case "default_identity":
			shown, err := workflows.ShowCredential(context.Background(), workflows.ShowCredentialOptions{Ref: value, Log: Logger})
			if err != nil {
				fmt.Println(formatError(err))
				return shownError{err}
			}
			config.User.DefaultIdentity = shown.Entry.Label
		case "reject_duplicates", "audit":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s must be true or false, got %q", key, value)
			}
			if key == "audit" {
				config.Audit.Enabled = b
			} else {
				config.Store.RejectDuplicates = b
			}
		default:
			return fmt.Errorf("unknown setting %q", key)
		}

		if err := configs.SaveUserConfig(config); err != nil {
			return Logger.ErrorfAndReturn("Failed to save user config: %v", err)
		}
		Logger.Debugf("Saved %s=%s to %s", key, value, configs.UserSigilSettings.ConfigPath())

		fmt.Println(ui.Success.Sprint("✓") + " Set " + ui.Code.Sprint(key) + " to " + ui.Highlight.Sprint(value))
		return nil
	},
}
