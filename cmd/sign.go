package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/workflows"
)

var (
	signAs   []string
	signFile string
)

func init() {
	signCmd.Flags().StringSliceVar(&signAs, "as", nil, "candidate owners in priority order (label, uuid or identity)")
	signCmd.Flags().StringVarP(&signFile, "file", "f", "", "sign the contents of a file (- for stdin)")
}

func resetSignState() {
	signAs = nil
	signFile = ""
}

var signCmd = &cobra.Command{
	Use:   "sign [text]",
	Short: "Sign a message as the first usable owner",
	Long: `Produces a detached signature over a message.

The message is the positional text, the contents of --file, or stdin. The
signer is the first of the --as candidates that has a signing secret in your
keyring; without --as the default identity signs. The signature names its
owner and is printed on stdout.

Examples:
  sigil sign "release v1.2.0"
  sigil sign --file release.tar.gz --as ci,work-laptop`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sign command")

		payload, err := readPayload(signFile, args)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Signing...")
		defer cleanup()

		result, err := workflows.Sign(context.Background(), workflows.SignOptions{
			Owners:    signAs,
			Payload:   payload,
			Passwords: promptPasswords(spinner),
			Log:       Logger,
		})
		if err != nil {
			return fail(spinner, err)
		}

		Logger.Infof("Signed as %s", result.Label)
		spinner.FinalMSG = result.Signature
		return nil
	},
}
