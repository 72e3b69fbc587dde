package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var (
	decryptAs   []string
	decryptFile string
	decryptRaw  bool
)

// errNotOpened makes an envelope nobody could open exit non-zero.
var errNotOpened = errors.New("envelope could not be opened")

func init() {
	decryptCmd.Flags().StringSliceVar(&decryptAs, "as", nil, "candidate readers to try (default: every credential)")
	decryptCmd.Flags().StringVarP(&decryptFile, "file", "f", "", "read the envelope from a file (- for stdin)")
	decryptCmd.Flags().BoolVar(&decryptRaw, "raw", false, "print the JSON content even when it is text")
}

func resetDecryptState() {
	decryptAs = nil
	decryptFile = ""
	decryptRaw = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [envelope]",
	Short: "Open an envelope with a local credential",
	Long: `Opens an envelope with the first candidate reader that can, and prints
the content. Without --as every credential in the keyring is tried; locked
ones prompt for their password. Exits non-zero if nobody can open it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		data, err := readPayload(decryptFile, args)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Decrypting...")
		defer cleanup()

		opts := workflows.DecryptOptions{
			Envelope:  strings.TrimSpace(string(data)),
			Passwords: promptPasswords(spinner),
			Log:       Logger,
		}
		if cmd.Flags().Changed("as") {
			opts.Readers = append([]string{}, decryptAs...)
		}

		result, err := workflows.Decrypt(context.Background(), opts)
		if err != nil {
			return fail(spinner, err)
		}

		if !result.Opened {
			spinner.FinalMSG = ui.Outcome(false) + " None of the candidate readers can open this envelope"
			return shownError{errNotOpened}
		}

		Logger.Infof("Opened as %s", result.Label)
		if result.IsText && !decryptRaw {
			spinner.FinalMSG = result.Text
		} else {
			spinner.FinalMSG = string(result.Content)
		}
		return nil
	},
}
