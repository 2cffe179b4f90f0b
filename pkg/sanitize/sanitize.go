// Package sanitize normalizes untrusted request input before validation.
package sanitize

import (
	"html"
	"strings"
)

// String trims whitespace, escapes HTML entities, and strips NUL bytes.
func String(value string) string {
	if value == "" {
		return value
	}
	cleaned := html.EscapeString(strings.TrimSpace(value))
	return strings.ReplaceAll(cleaned, "\x00", "")
}

// Email lowercases, trims, and strips NUL bytes from an email address.
// Format validation happens separately.
func Email(email string) string {
	if email == "" {
		return email
	}
	cleaned := strings.ToLower(strings.TrimSpace(email))
	return strings.ReplaceAll(cleaned, "\x00", "")
}
