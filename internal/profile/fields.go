package profile

import "strings"

// SplitCommaList derives a list from comma-delimited free text. Entries are
// trimmed and empty results dropped. The derivation is pure: re-deriving from
// an already-split list joined back together reproduces the same list.
func SplitCommaList(s string) []string {
	return splitAndTrim(s, ",")
}

// SplitLineList derives a list from newline-delimited free text, one entry
// per line.
func SplitLineList(s string) []string {
	return splitAndTrim(s, "\n")
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
