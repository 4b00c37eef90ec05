package prompt

import (
	"errors"
	"strings"
	"unicode"
)

// ValidateNotEmpty returns an error if the string is empty or whitespace-only.
func ValidateNotEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value cannot be empty")
	}
	return nil
}

// ValidateAPIKey rejects empty keys and keys with embedded whitespace,
// which usually means a paste picked up extra text.
func ValidateAPIKey(s string) error {
	s = strings.TrimSpace(s)
	if err := ValidateNotEmpty(s); err != nil {
		return err
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return errors.New("API key must not contain spaces")
	}
	if len(s) < 20 {
		return errors.New("API key looks too short")
	}
	return nil
}
