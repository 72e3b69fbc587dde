package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/utils"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var (
	verifyFile      string
	verifySignature string
)

// errNotVerified makes a failed verification exit non-zero.
var errNotVerified = errors.New("signature did not verify")

func init() {
	verifyCmd.Flags().StringVarP(&verifyFile, "file", "f", "", "verify the contents of a file (- for stdin)")
	verifyCmd.Flags().StringVarP(&verifySignature, "signature", "s", "", "read the signature from a file")
}

func resetVerifyState() {
	verifyFile = ""
	verifySignature = ""
}

var verifyCmd = &cobra.Command{
	Use:   "verify <signature> [text]",
	Short: "Verify a detached signature",
	Long: `Checks a detached signature against the owner it names and reports who
signed. Exits non-zero if the signature does not verify.

Examples:
  sigil verify "$SIG" "release v1.2.0"
  sigil verify --signature release.sig --file release.tar.gz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting verify command")

		signature, rest, err := takeSignature(args)
		if err != nil {
			return err
		}
		payload, err := readPayload(verifyFile, rest)
		if err != nil {
			return err
		}

		result, err := workflows.Verify(context.Background(), workflows.VerifyOptions{
			Payload:   payload,
			Signature: signature,
			Log:       Logger,
		})
		if err != nil {
			fmt.Println(formatError(err))
			return shownError{err}
		}

		if !result.Valid {
			fmt.Println(ui.Outcome(false) + " Signature is not valid for this message")
			return shownError{errNotVerified}
		}

		who := ui.Identity(result.Owner, true)
		if result.Label != "" {
			who = ui.Highlight.Sprint(result.Label) + " " + who
		}
		fmt.Println(ui.Outcome(true) + " Signed by " + who)
		return nil
	},
}

func takeSignature(args []string) (string, []string, error) {
	if verifySignature != "" {
		data, err := utils.ReadInput(verifySignature)
		if err != nil {
			return "", nil, err
		}
		return strings.TrimSpace(string(data)), args, nil
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("a signature is required (argument or --signature)")
	}
	return args[0], args[1:], nil
}
