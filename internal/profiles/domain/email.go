package domain

import (
	"net/mail"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail trims surrounding whitespace, puts the address in NFC and
// case-folds all of it, so "  Alice@Example.COM" and "alice@example.com"
// are the same account.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	// Casers are stateful, so one per call.
	return cases.Fold().String(norm.NFC.String(email))
}

// ValidEmail reports whether email is a bare addr-spec (no display name).
// It expects an already normalized address.
func ValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" && domain != ""
}
