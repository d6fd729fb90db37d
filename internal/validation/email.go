// Package validation holds pure predicates over raw form fields.
package validation

import (
	"net/mail"
	"strings"
)

// maxEmailLength follows RFC 5321 (254 characters including the @).
const maxEmailLength = 254

// ValidateEmail reports whether s looks like a conventional email address:
// a non-empty local part, an @, and a domain with at least one dot.
// Display-name forms such as "Bob <bob@example.com>" are rejected.
func ValidateEmail(s string) bool {
	if s == "" || len(s) > maxEmailLength {
		return false
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
