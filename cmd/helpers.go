package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/PolarWolf314/sigil/internal/configs"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/utils"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines; the cleanup function
// adds one before printing.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// promptPasswords asks for the password of each locked entry a workflow
// needs. The spinner is stopped first so it does not draw over the prompt.
func promptPasswords(s *spinner.Spinner) workflows.PasswordFunc {
	return func(entry configs.KeyringEntry) (string, error) {
		if s != nil {
			s.Stop()
		}
		Logger.Debugf("Prompting for password of %s", entry.Label)
		return utils.ReadPassword(fmt.Sprintf("Password for %s: ", ui.Highlight.Sprint(entry.Label)))
	}
}

// readPayload returns the message from --file, the positional text, or stdin.
func readPayload(file string, args []string) ([]byte, error) {
	switch {
	case file != "":
		Logger.Debugf("Reading payload from %s", file)
		return utils.ReadInput(file)
	case len(args) > 0:
		return []byte(strings.Join(args, " ")), nil
	default:
		Logger.Debugf("Reading payload from stdin")
		return utils.ReadStdin()
	}
}

// shownError marks an error whose message has already been printed.
type shownError struct{ err error }

func (e shownError) Error() string { return e.err.Error() }
func (e shownError) Unwrap() error { return e.err }

// fail sets the spinner's final message for err and returns err marked as shown.
func fail(s *spinner.Spinner, err error) error {
	s.FinalMSG = formatError(err)
	return shownError{err}
}

// formatError formats a workflow error for display to the user.
func formatError(err error) string {
	cross := ui.Error.Sprint("✗") + " "
	hint := ui.Info.Sprint("→") + " "

	switch {
	case errors.Is(err, kerrors.ErrNoDefaultIdentity):
		return cross + "No identity given and no default identity is set\n" +
			hint + "Run " + ui.Code.Sprint("sigil credential new") + " or pass " + ui.Flag.Sprint("--as")

	case errors.Is(err, kerrors.ErrKeyringNotFound):
		return cross + "Your keyring has no credentials\n" +
			hint + "Run " + ui.Code.Sprint("sigil credential new") + " first"

	case errors.Is(err, kerrors.ErrCredentialNotFound):
		return cross + "No such credential: " + err.Error() + "\n" +
			hint + "Run " + ui.Code.Sprint("sigil credential list") + " to see saved credentials"

	case errors.Is(err, kerrors.ErrAuthentication):
		return cross + "Wrong password"

	case errors.Is(err, kerrors.ErrPasswordRequired):
		return cross + "A password is required to unlock this credential"

	case errors.Is(err, kerrors.ErrNoOwner):
		return cross + "None of the candidate owners can sign from this keyring"

	case errors.Is(err, kerrors.ErrUnknownWriter):
		return cross + "The writer's encryption secret is not available"

	case errors.Is(err, kerrors.ErrInvalidScheme):
		return cross + "Unsupported scheme: " + err.Error()

	case errors.Is(err, kerrors.ErrMalformed), errors.Is(err, kerrors.ErrInvalidUTF8):
		return cross + "Input is malformed: " + err.Error()

	case errors.Is(err, kerrors.ErrNoAuditLog):
		return ui.Info.Sprint("ℹ") + " No audit log found. Operations are logged once you run a command."

	default:
		return cross + err.Error()
	}
}
