package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/sigil/internal/configs"
	"github.com/PolarWolf314/sigil/internal/ui"
	"github.com/PolarWolf314/sigil/internal/workflows"
)

var listJSON bool

func init() {
	credentialListCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
}

func resetCredentialListState() {
	listJSON = false
}

var credentialListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the credentials in your keyring",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential list command")

		result, err := workflows.ListCredentials(context.Background(), workflows.ListCredentialsOptions{Log: Logger})
		if err != nil {
			return err
		}

		if listJSON {
			return outputJSON(publicEntries(result.Entries))
		}

		if len(result.Entries) == 0 {
			fmt.Println("No credentials found.")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("sigil credential new") + " to create one")
			return nil
		}

		for _, e := range result.Entries {
			marker := " "
			if strings.EqualFold(result.DefaultIdentity, e.Label) || result.DefaultIdentity == e.UUID || result.DefaultIdentity == e.ID {
				marker = ui.Success.Sprint("*")
			}
			state := ""
			if e.IsLocked() {
				state = ui.Muted.Sprint("locked")
			}
			fmt.Printf("%s %-20s %s  %s %s\n", marker, e.Label, ui.Identity(e.ID, false), e.CreatedAt.Format("2006-01-02"), state)
		}
		return nil
	},
}

// publicEntry is a keyring entry without secret material.
type publicEntry struct {
	UUID      string `json:"uuid"`
	Label     string `json:"label"`
	ID        string `json:"id"`
	Locked    bool   `json:"locked"`
	CreatedAt string `json:"created_at"`
}

func publicEntries(entries []configs.KeyringEntry) []publicEntry {
	out := make([]publicEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, publicEntry{
			UUID:      e.UUID,
			Label:     e.Label,
			ID:        e.ID,
			Locked:    e.IsLocked(),
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out
}

func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
