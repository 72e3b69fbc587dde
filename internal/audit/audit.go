package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/sigil/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`   // Unique per entry.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS user running sigil.
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Label    string   `json:"label,omitempty"`    // Keyring label involved.
	Identity string   `json:"identity,omitempty"` // Writer, signer or created identity.
	Owner    string   `json:"owner,omitempty"`    // Signature owner reported by verify.
	Reader   string   `json:"reader,omitempty"`   // Reader that opened an envelope.
	Readers  []string `json:"readers,omitempty"`  // Recipients of an envelope.
	OK       *bool    `json:"ok,omitempty"`       // Outcome of verify/decrypt.
}

// Result returns a pointer for Entry.OK.
func Result(ok bool) *bool {
	return &ok
}

// Log appends an entry to the audit log.
// Operations should not fail just because audit logging failed, so errors
// are dropped.
func Log(entry Entry) {
	logPath := LogPath()
	if logPath == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry for op with the user field filled in.
func LogWithUser(op string) Entry {
	return Entry{Operation: op, User: configs.UserSigilSettings.Username}
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return configs.UserSigilSettings.AuditLogPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}
