// Package email normalizes and masks email addresses used as lookup keys and
// notification recipients.
package email

import (
	"net/mail"
	"strings"
)

// Normalize lowercases and trims an address so lookups are case-insensitive.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsValid reports whether address is a bare RFC 5322 address (no display name).
func IsValid(address string) bool {
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false
	}
	return parsed.Address == strings.TrimSpace(address)
}

// Mask hides most of the local part for logs: "jane.doe@x.org" -> "j*******@x.org".
func Mask(address string) string {
	at := strings.IndexByte(address, '@')
	if at <= 0 {
		return "***"
	}
	local := address[:at]
	return local[:1] + strings.Repeat("*", len(local)-1) + address[at:]
}
