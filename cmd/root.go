package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	logger "github.com/PolarWolf314/sigil/internal/logging"
	"github.com/PolarWolf314/sigil/internal/ui"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "sigil",
		Short: "Sign and encrypt with locally held credentials",
		Long: `sigil keeps signing and encryption credentials in a local keyring and uses
them to produce detached signatures and multi-recipient envelopes.

Usage:
  sigil <command> [flags]

Available Commands:
  credential   Create and manage credentials
  sign         Sign a message as the first usable owner
  verify       Verify a detached signature
  encrypt      Seal a message for a set of readers
  decrypt      Open an envelope with a local credential
  log          View the audit log
  config       View and change settings

Run 'sigil help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			figure.NewColorFigure("sigil", "alligator2", "green", true).Print()
			fmt.Println()
			fmt.Println("Run " + ui.Code.Sprint("sigil --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(CredentialCmd)
	RootCmd.AddCommand(signCmd)
	RootCmd.AddCommand(verifyCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the root command. Errors that were not already shown to
// the user are printed to stderr.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil && !errors.As(err, new(shownError)) {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
	}
	return err
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetCredentialState()
	resetSignState()
	resetVerifyState()
	resetEncryptState()
	resetDecryptState()
	resetLogCommandState()
	resetConfigState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed bit on every flag so a reused
// command tree does not leak flag state between runs.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) { flag.Changed = false }
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
