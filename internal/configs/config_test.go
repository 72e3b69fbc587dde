package configs

import (
	"path/filepath"
	"testing"
)

func useTempSettings(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := UserSigilSettings
	UserSigilSettings = SettingsFor(dir, "tester")
	t.Cleanup(func() { UserSigilSettings = old })
	return dir
}

func TestSettingsFor(t *testing.T) {
	s := SettingsFor("/tmp/sigil-home", "alice")

	if s.KeyringPath != filepath.Join("/tmp/sigil-home", "keyring.toml") {
		t.Errorf("unexpected keyring path %q", s.KeyringPath)
	}
	if s.AuditLogPath != filepath.Join("/tmp/sigil-home", "audit.jsonl") {
		t.Errorf("unexpected audit path %q", s.AuditLogPath)
	}
	if s.ConfigPath() != filepath.Join("/tmp/sigil-home", "config.toml") {
		t.Errorf("unexpected config path %q", s.ConfigPath())
	}
}

func TestDefaultUserSettingsHonoursHomeEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	s := DefaultUserSettings()
	if s.UserConfigsPath != dir {
		t.Errorf("Expected %q, got %q", dir, s.UserConfigsPath)
	}
}

func TestLoadUserConfigMissingFileUsesDefaults(t *testing.T) {
	useTempSettings(t)

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if !config.Audit.Enabled {
		t.Error("Expected audit to be enabled by default")
	}
	if config.Store.RejectDuplicates {
		t.Error("Expected duplicates to be allowed by default")
	}
}

func TestSaveAndLoadUserConfig(t *testing.T) {
	useTempSettings(t)

	config := &UserConfig{
		User:  User{DefaultIdentity: "laptop"},
		Store: StoreConfig{RejectDuplicates: true},
		Audit: AuditConfig{Enabled: false},
	}

	if err := SaveUserConfig(config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}
