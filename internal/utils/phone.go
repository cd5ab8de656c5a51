package utils

import (
	"regexp"
	"strings"
)

// Local mobile numbers: 01 followed by 9 digits.
var phonePattern = regexp.MustCompile(`^01\d{9}$`)

// NormalizePhone strips separators and the +88/88 country prefix so the
// stored login identity is always the 11-digit local form.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	cleaned = strings.TrimPrefix(cleaned, "+88")
	if len(cleaned) == 13 && strings.HasPrefix(cleaned, "88") {
		cleaned = cleaned[2:]
	}
	return cleaned
}

// IsValidPhone reports whether a normalized phone number is acceptable.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
