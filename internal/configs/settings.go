package configs

import (
	"os"
	"path/filepath"

	"github.com/PolarWolf314/sigil/internal/utils"
)

// HomeEnv overrides the directory sigil keeps its files in.
const HomeEnv = "SIGIL_HOME"

type UserSettings struct {
	UserConfigsPath string
	KeyringPath     string
	AuditLogPath    string
	Username        string
}

var UserSigilSettings *UserSettings

func init() {
	UserSigilSettings = DefaultUserSettings()
}

// DefaultUserSettings resolves paths from SIGIL_HOME, falling back to the
// user config directory, and then to ./.sigil if neither is available.
func DefaultUserSettings() *UserSettings {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(configDir, "sigil")
		} else {
			dir = ".sigil"
		}
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	return SettingsFor(dir, username)
}

// SettingsFor lays out sigil's files under dir.
func SettingsFor(dir, username string) *UserSettings {
	return &UserSettings{
		UserConfigsPath: dir,
		KeyringPath:     filepath.Join(dir, "keyring.toml"),
		AuditLogPath:    filepath.Join(dir, "audit.jsonl"),
		Username:        username,
	}
}

// ConfigPath returns the path of config.toml.
func (s *UserSettings) ConfigPath() string {
	return filepath.Join(s.UserConfigsPath, "config.toml")
}
