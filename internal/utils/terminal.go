package utils

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// PasswordEnv, when set, is used instead of prompting for a password.
const PasswordEnv = "SIGIL_PASSWORD"

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}

// ReadPassword returns the password from SIGIL_PASSWORD, or prompts for it
// without echo. Stdin is used when it is a terminal, /dev/tty otherwise, so
// that piped payloads and password prompts do not collide.
func ReadPassword(prompt string) (string, error) {
	if pw, ok := os.LookupEnv(PasswordEnv); ok {
		return pw, nil
	}

	var (
		pw  []byte
		err error
	)
	if IsTerminal() {
		pw, err = readHidden(int(os.Stdin.Fd()), prompt)
	} else {
		pw, err = ReadPasswordFromTTY(prompt)
	}
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// ReadNewPassword prompts for a new password twice and checks that both
// entries match. An empty password is allowed and means no lock.
func ReadNewPassword(prompt string) (string, error) {
	if pw, ok := os.LookupEnv(PasswordEnv); ok {
		return pw, nil
	}

	first, err := ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	second, err := ReadPassword("Confirm: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passwords do not match")
	}
	return first, nil
}

// ReadPasswordFromTTY prompts on /dev/tty (or CON on Windows).
func ReadPasswordFromTTY(prompt string) ([]byte, error) {
	path := ttyPath()

	tty, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for password input: %w", path, err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", path)
	}

	return readHidden(fd, prompt)
}

func readHidden(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return pw, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTerminal returns true if stdout is a terminal.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
