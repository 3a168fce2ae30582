package isbn

import (
	"regexp"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "hyphenated ISBN-13",
			raw:      "978-0-13-468599-1",
			expected: "9780134685991",
		},
		{
			name:     "plain ISBN-10",
			raw:      "0441013597",
			expected: "0441013597",
		},
		{
			name:     "ISBN-10 with lowercase check digit",
			raw:      "155404295x",
			expected: "155404295X",
		},
		{
			name:     "spaces and prefix text",
			raw:      "ISBN 978 0 441 01359 3",
			expected: "9780441013593",
		},
		{
			name:     "letters only",
			raw:      "abc",
			expected: "",
		},
		{
			name:     "empty string",
			raw:      "",
			expected: "",
		},
		{
			name:     "too short",
			raw:      "12345",
			expected: "",
		},
		{
			name:     "eleven digits",
			raw:      "12345678901",
			expected: "",
		},
		{
			name:     "too long",
			raw:      "97804410135931234",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.raw)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestNormalizeShape(t *testing.T) {
	// Whatever goes in, the result is empty or canonical.
	canonical := regexp.MustCompile(`^([0-9]{9}[0-9X]|[0-9]{12}[0-9X])$`)

	inputs := []string{
		"978-0-13-468599-1",
		"0-13-468599-X",
		"garbage 978!!!0134685991",
		"xxxxxxxxxx",
		"XXXXXXXXXX",
		"",
		"no digits at all",
	}

	for _, raw := range inputs {
		result := Normalize(raw)
		if result != "" && !canonical.MatchString(result) {
			t.Errorf("Normalize(%q) = %q, not canonical", raw, result)
		}
	}
}
