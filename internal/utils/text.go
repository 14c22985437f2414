package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanText trims surrounding whitespace and drops NUL bytes and invalid UTF-8.
func CleanText(input string) string {
	if strings.Contains(input, "\x00") || !utf8.ValidString(input) {
		input = strings.ToValidUTF8(input, "")
		input = strings.ReplaceAll(input, "\x00", "")
	}
	return strings.TrimSpace(input)
}

// SplitList splits a comma separated query value, dropping empty entries.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
