package utils

import (
	"regexp"
	"strings"

	"github.com/PolarWolf314/sigil/internal/ui"
)

var labelPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// FormatList formats values as an indented bullet list.
func FormatList(values []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, v := range values {
		b.WriteString("    - ")
		b.WriteString(ui.Highlight.Sprint(v))
		b.WriteString("\n")
	}
	return b.String()
}

// IsValidLabel checks if a keyring label is valid (alphanumeric, hyphens, underscores).
func IsValidLabel(name string) bool {
	return labelPattern.MatchString(name)
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
