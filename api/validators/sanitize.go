package validators

import (
	"strings"
	"unicode"
)

// SanitizeString trims input, drops control characters other than newline
// and tab, and cuts the result to at most maxLen runes when maxLen > 0.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) && r != '\r' {
			return -1
		}
		return r
	}, input)
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "\r", "\n"))
	if maxLen > 0 {
		if runes := []rune(cleaned); len(runes) > maxLen {
			return strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return cleaned
}
