package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/PolarWolf314/sigil/internal/audit"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
)

func seedAudit(t *testing.T) {
	t.Helper()
	for _, e := range []audit.Entry{
		{Operation: "create", Label: "alice", Timestamp: "2026-01-01T10:00:00.000000Z"},
		{Operation: "sign", Identity: "id-a", Timestamp: "2026-01-02T10:00:00.000000Z"},
		{Operation: "verify", Owner: "id-a", Timestamp: "2026-01-03T10:00:00.000000Z"},
		{Operation: "decrypt", Reader: "id-b", Timestamp: "2026-01-04T10:00:00.000000Z"},
	} {
		audit.Log(e)
	}
}

func TestLog_Filters(t *testing.T) {
	setupHome(t)
	seedAudit(t)

	tests := []struct {
		name string
		opts LogOptions
		want []string
	}{
		{"all", LogOptions{}, []string{"create", "sign", "verify", "decrypt"}},
		{"operations", LogOptions{Operations: "sign, VERIFY"}, []string{"sign", "verify"}},
		{"identity", LogOptions{Identity: "id-a"}, []string{"sign", "verify"}},
		{"label", LogOptions{Identity: "Alice"}, []string{"create"}},
		{"since", LogOptions{Since: "2026-01-03"}, []string{"verify", "decrypt"}},
		{"until inclusive", LogOptions{Until: "2026-01-02"}, []string{"create", "sign"}},
		{"limit keeps latest", LogOptions{Limit: 2}, []string{"verify", "decrypt"}},
		{"reverse with limit", LogOptions{Limit: 2, Reverse: true}, []string{"decrypt", "verify"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Log(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if result.TotalEntriesBeforeFilter != 4 {
				t.Errorf("Expected 4 entries before filtering, got %d", result.TotalEntriesBeforeFilter)
			}
			if len(result.Entries) != len(tt.want) {
				t.Fatalf("Expected %v, got %d entries", tt.want, len(result.Entries))
			}
			for i, op := range tt.want {
				if result.Entries[i].Operation != op {
					t.Errorf("entry %d: expected %s, got %s", i, op, result.Entries[i].Operation)
				}
			}
		})
	}
}

func TestLog_InvalidDate(t *testing.T) {
	setupHome(t)
	seedAudit(t)

	for _, opts := range []LogOptions{{Since: "01/02/2026"}, {Until: "yesterday"}} {
		if _, err := Log(context.Background(), opts); !errors.Is(err, kerrors.ErrInvalidDateFormat) {
			t.Errorf("Expected ErrInvalidDateFormat for %+v, got %v", opts, err)
		}
	}
}

func TestLog_NoAuditLog(t *testing.T) {
	setupHome(t)

	if _, err := Log(context.Background(), LogOptions{}); !errors.Is(err, kerrors.ErrNoAuditLog) {
		t.Errorf("Expected ErrNoAuditLog, got %v", err)
	}
}
