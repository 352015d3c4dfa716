package utils

import "strings"

// FindColumnIndex returns the index of the first header matching any of the
// given names (case-insensitive), or -1 if none matches.
func FindColumnIndex(header []string, names []string) int {
	for i, col := range header {
		col = strings.TrimSpace(col)
		for _, name := range names {
			if strings.EqualFold(col, name) {
				return i
			}
		}
	}
	return -1
}

// CleanName trims surrounding whitespace and collapses inner runs of
// whitespace in a contestant name.
func CleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NameKey returns the case-insensitive dedup key for a contestant name.
func NameKey(name string) string {
	return strings.ToLower(CleanName(name))
}
