package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/audit"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logIdentity  string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logIdentity, "identity", "", "filter by label or identity")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logIdentity = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of sigil operations.

Examples:
  sigil log                              # View full log
  sigil log -n 10                        # Last 10 entries
  sigil log --reverse                    # Most recent first
  sigil log --operation sign,verify      # Filter by operation
  sigil log --identity work-laptop       # Filter by credential
  sigil log --since 2026-01-01           # Filter by date
  sigil log --json                       # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		result, err := workflows.Log(context.Background(), workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			Identity:   logIdentity,
			Operations: logOperation,
			Since:      logSince,
			Until:      logUntil,
		})
		if err != nil {
			fmt.Println(formatError(err))
			if errors.Is(err, kerrors.ErrNoAuditLog) {
				return nil
			}
			return shownError{err}
		}

		Logger.Debugf("Parsed %d entries, %d after filtering", result.TotalEntriesBeforeFilter, len(result.Entries))

		if logJSON {
			return outputJSON(result.Entries)
		}

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Println("No audit log entries found.")
			} else {
				fmt.Println("No audit log entries found matching the filters.")
			}
			return nil
		}

		for _, e := range result.Entries {
			fmt.Printf("%-19s  %-12s  %-8s  %s\n", formatLogTime(e.Timestamp), e.User, e.Operation, formatLogDetails(e))
		}
		return nil
	},
}

func formatLogTime(ts string) string {
	if len(ts) >= 19 {
		return strings.Replace(ts[:19], "T", " ", 1)
	}
	return ts
}

func formatLogDetails(e audit.Entry) string {
	var parts []string
	if e.Label != "" {
		parts = append(parts, ui.Highlight.Sprint(e.Label))
	}
	for _, id := range []string{e.Identity, e.Owner, e.Reader} {
		if id != "" {
			parts = append(parts, ui.Identity(id, false))
		}
	}
	if len(e.Readers) > 0 {
		parts = append(parts, fmt.Sprintf("readers=%d", len(e.Readers)))
	}
	if e.OK != nil {
		parts = append(parts, ui.Outcome(*e.OK))
	}
	return strings.Join(parts, " ")
}
