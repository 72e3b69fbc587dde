package utils

import (
	"os"
	"os/user"
	"regexp"
	"strconv"
	"strings"
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}

var (
	labelInvalidChars = regexp.MustCompile(`[^a-z0-9\-_]`)
	labelHyphenRuns   = regexp.MustCompile(`-+`)
)

// SanitizeLabel turns arbitrary text into a keyring label.
func SanitizeLabel(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = labelInvalidChars.ReplaceAllString(name, "")
	name = labelHyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_")

	if name == "" {
		name = "sigil"
	}

	return name
}

// GenerateLabel derives a keyring label from the hostname, appending -2,
// -3, ... until it does not clash with taken (compared case-insensitively).
func GenerateLabel(taken []string) string {
	hostname, err := GetHostname()
	if err != nil {
		// Fallback to username if hostname is unavailable.
		username, userErr := GetUsername()
		if userErr != nil {
			hostname = "sigil"
		} else {
			hostname = username
		}
	}

	return UniqueLabel(SanitizeLabel(hostname), taken)
}

// UniqueLabel returns base, or base with the lowest numeric suffix not in taken.
func UniqueLabel(base string, taken []string) string {
	seen := make(map[string]bool, len(taken))
	for _, name := range taken {
		seen[strings.ToLower(name)] = true
	}

	label := base
	for suffix := 2; seen[strings.ToLower(label)]; suffix++ {
		label = base + "-" + strconv.Itoa(suffix)
	}
	return label
}
