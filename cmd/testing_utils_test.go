package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/PolarWolf314/sigil/internal/configs"
)

// setupTestHome points sigil at a fresh temporary home for one test.
func setupTestHome(t *testing.T) {
	t.Helper()
	original := configs.UserSigilSettings
	configs.UserSigilSettings = configs.SettingsFor(t.TempDir(), "testuser")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() {
		configs.UserSigilSettings = original
		ResetGlobalState()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		stdoutChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// runCLI executes the sigil command tree with args and returns its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	// A nil slice would make cobra fall back to os.Args.
	RootCmd.SetArgs(append([]string{}, args...))
	return captureOutput(func() error {
		return RootCmd.Execute()
	})
}

// mustRun is runCLI for commands expected to succeed. It returns the
// trimmed output.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("sigil %s failed: %v\noutput: %s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(out)
}
