package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/workflows"
)

var (
	encryptAs   string
	encryptTo   []string
	encryptFile string
	encryptJSON bool
)

func init() {
	encryptCmd.Flags().StringVar(&encryptAs, "as", "", "writer identity (label, uuid or identity)")
	encryptCmd.Flags().StringSliceVar(&encryptTo, "to", nil, "readers (labels, uuids or shared identities)")
	encryptCmd.Flags().StringVarP(&encryptFile, "file", "f", "", "encrypt the contents of a file (- for stdin)")
	encryptCmd.Flags().BoolVar(&encryptJSON, "json", false, "the input is a JSON document rather than text")
}

func resetEncryptState() {
	encryptAs = ""
	encryptTo = nil
	encryptFile = ""
	encryptJSON = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [text]",
	Short: "Seal a message for a set of readers",
	Long: `Seals a message into an envelope that any of the readers can open.

Readers may be keyring labels or identities other people shared with you.
Without --to the envelope is sealed for the writer alone. The envelope is
printed on stdout.

Examples:
  sigil encrypt "meet at noon" --to bob,carol
  sigil encrypt --json --file settings.json --as ci --to "$OPS_IDENTITY"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		content, err := readPayload(encryptFile, args)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Encrypting...")
		defer cleanup()

		result, err := workflows.Encrypt(context.Background(), workflows.EncryptOptions{
			Writer:    encryptAs,
			Readers:   encryptTo,
			Content:   content,
			JSON:      encryptJSON,
			Passwords: promptPasswords(spinner),
			Log:       Logger,
		})
		if err != nil {
			return fail(spinner, err)
		}

		Logger.Infof("Sealed for %d readers", len(result.Readers))
		spinner.FinalMSG = result.Envelope
		return nil
	},
}
