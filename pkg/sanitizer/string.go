package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeStringPtr applies fn in place; nil is left alone.
func NormalizeStringPtr(s *string, fn func(string) string) {
	if s != nil {
		*s = fn(*s)
	}
}

// NormalizeKeyword lower-cases enum-like values such as statuses.
func NormalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
