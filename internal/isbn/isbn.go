// Package isbn normalizes raw ISBN strings into their canonical form.
package isbn

import "strings"

// Normalize strips everything except digits and the letter X (upper-casing
// first) and accepts only the canonical lengths of 10 or 13 characters. Any
// other length yields the empty string, meaning no usable ISBN is present.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= '0' && r <= '9') || r == 'X' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if len(cleaned) == 10 || len(cleaned) == 13 {
		return cleaned
	}
	return ""
}
