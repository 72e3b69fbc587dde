package configs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/PolarWolf314/sigil/internal/credentials"
	kerrors "github.com/PolarWolf314/sigil/internal/errors"
	"github.com/PolarWolf314/sigil/internal/primitives"
)

func newTestCredential(t *testing.T, password string) credentials.Credential {
	t.Helper()
	cred, err := credentials.New(primitives.Default(), password)
	if err != nil {
		t.Fatalf("credentials.New failed: %v", err)
	}
	return cred
}

func TestKeyringRoundTrip(t *testing.T) {
	useTempSettings(t)

	plain := newTestCredential(t, "")
	locked := newTestCredential(t, "hunter2")

	ring := &Keyring{}
	if err := ring.Add(EntryFromCredential("plain", plain)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := ring.Add(EntryFromCredential("locked", locked)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := SaveKeyring(ring); err != nil {
		t.Fatalf("SaveKeyring failed: %v", err)
	}

	loaded, err := LoadKeyring()
	if err != nil {
		t.Fatalf("LoadKeyring failed: %v", err)
	}
	if len(loaded.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(loaded.Entries))
	}

	entry, err := loaded.Find("plain")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	got, err := entry.Credential()
	if err != nil {
		t.Fatalf("Credential failed: %v", err)
	}
	if got.ID != plain.ID || !bytes.Equal(got.SignSecret, plain.SignSecret) || !bytes.Equal(got.EncryptSecret, plain.EncryptSecret) {
		t.Error("cleartext credential did not survive the round trip")
	}

	entry, err = loaded.Find("locked")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if !entry.IsLocked() {
		t.Fatal("Expected locked entry")
	}
	if entry.SignSecret != "" || entry.EncryptSecret != "" {
		t.Error("locked entry must not store cleartext secrets")
	}
	got, err = entry.Credential()
	if err != nil {
		t.Fatalf("Credential failed: %v", err)
	}
	if got.Locked != locked.Locked {
		t.Error("locked blob changed in the round trip")
	}
}

func TestLoadKeyringMissingFile(t *testing.T) {
	useTempSettings(t)

	ring, err := LoadKeyring()
	if err != nil {
		t.Fatalf("LoadKeyring failed: %v", err)
	}
	if len(ring.Entries) != 0 {
		t.Errorf("Expected empty keyring, got %d entries", len(ring.Entries))
	}
}

func TestKeyringFind(t *testing.T) {
	cred := newTestCredential(t, "")
	entry := EntryFromCredential("Work", cred)
	ring := &Keyring{Entries: []KeyringEntry{entry}}

	for _, ref := range []string{"Work", "work", entry.UUID, cred.ID} {
		if _, err := ring.Find(ref); err != nil {
			t.Errorf("Find(%q) failed: %v", ref, err)
		}
	}

	if _, err := ring.Find("missing"); !errors.Is(err, kerrors.ErrCredentialNotFound) {
		t.Errorf("Expected ErrCredentialNotFound, got %v", err)
	}
}

func TestKeyringAddRejectsDuplicates(t *testing.T) {
	cred := newTestCredential(t, "")
	ring := &Keyring{}
	if err := ring.Add(EntryFromCredential("one", cred)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	tests := []struct {
		name  string
		entry KeyringEntry
	}{
		{"same label", EntryFromCredential("ONE", newTestCredential(t, ""))},
		{"same identity", EntryFromCredential("two", cred)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ring.Add(tt.entry); !errors.Is(err, kerrors.ErrCredentialExists) {
				t.Errorf("Expected ErrCredentialExists, got %v", err)
			}
		})
	}
}

func TestKeyringRemove(t *testing.T) {
	ring := &Keyring{}
	for _, label := range []string{"a", "b", "c"} {
		if err := ring.Add(EntryFromCredential(label, newTestCredential(t, ""))); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	removed, err := ring.Remove("b")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.Label != "b" {
		t.Errorf("Expected to remove b, removed %q", removed.Label)
	}

	labels := ring.Labels()
	if len(labels) != 2 || labels[0] != "a" || labels[1] != "c" {
		t.Errorf("Expected [a c], got %v", labels)
	}

	if _, err := ring.Remove("b"); !errors.Is(err, kerrors.ErrCredentialNotFound) {
		t.Errorf("Expected ErrCredentialNotFound, got %v", err)
	}
}

func TestEntryCredentialRejectsBadSecret(t *testing.T) {
	entry := KeyringEntry{Label: "broken", ID: "x_y", SignSecret: "not base64!"}
	if _, err := entry.Credential(); !errors.Is(err, kerrors.ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}
