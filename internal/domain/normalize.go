package domain

import (
	"strings"
)

// NormalizeEmail prepares an email address for identity derivation:
//   - trims leading/trailing whitespace
//   - converts to lowercase
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SplitLines splits multi-line text into trimmed, non-empty lines.
// Both "\n" and "\r\n" line endings are accepted.
func SplitLines(text string) []string {
	return splitNonEmpty(text, "\n")
}

// SplitTags splits comma-separated text into trimmed, non-empty tags.
func SplitTags(text string) []string {
	return splitNonEmpty(text, ",")
}

// CleanList trims every item and drops empty ones. Never returns nil.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}

func splitNonEmpty(text, sep string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	return CleanList(strings.Split(text, sep))
}
