package configs

import (
	"fmt"
	"os"
)

// UserConfig is the content of config.toml.
type UserConfig struct {
	User  User        `toml:"user"`
	Store StoreConfig `toml:"store"`
	Audit AuditConfig `toml:"audit"`
}

type User struct {
	// DefaultIdentity is a keyring label, UUID or identity used when a
	// command is not given one explicitly.
	DefaultIdentity string `toml:"default_identity"`
}

type StoreConfig struct {
	// RejectDuplicates makes adding an identity twice an error.
	RejectDuplicates bool `toml:"reject_duplicates"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultUserConfig returns the configuration used when none is saved.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{Audit: AuditConfig{Enabled: true}}
}

// LoadUserConfig loads the user configuration from the config file.
func LoadUserConfig() (*UserConfig, error) {
	configPath := UserSigilSettings.ConfigPath()

	config := DefaultUserConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(UserSigilSettings.ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}
