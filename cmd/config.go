package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change sigil settings",
	Long: `Provides commands for viewing and changing the settings in config.toml.

Files live in $SIGIL_HOME, or in the sigil directory of your user config
directory when it is not set.

Examples:
  # Show the current settings and file locations
  sigil config show

  # Sign and seal as work-laptop unless told otherwise
  sigil config set default_identity work-laptop

  # Turn off the audit log
  sigil config set audit false`,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetCmd)
}

func resetConfigState() {
	configShowJSON = false
}
