package service

import (
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
)

const (
	maxEmailLen      = 255
	maxNameLen       = 255
	maxPasswordLen   = 128
	maxStatusTextLen = 255

	msgRequired    = "this field is required"
	msgEmailTaken  = "a profile with this email already exists"
	msgEmailFormat = "enter a valid email address"
)

// cleanEmail normalizes email and records any problem under "email".
func cleanEmail(errs fieldErrors, email string) string {
	email = domain.NormalizeEmail(email)
	switch {
	case email == "":
		errs.add("email", msgRequired)
	case utf8.RuneCountInString(email) > maxEmailLen:
		errs.add("email", "too long (max 255)")
	case !domain.ValidEmail(email):
		errs.add("email", msgEmailFormat)
	}
	return email
}

func cleanName(errs fieldErrors, name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs.add("name", msgRequired)
	case utf8.RuneCountInString(name) > maxNameLen:
		errs.add("name", "too long (max 255)")
	}
	return name
}

func checkPassword(errs fieldErrors, password string) {
	switch {
	case password == "":
		errs.add("password", msgRequired)
	case len(password) > maxPasswordLen:
		errs.add("password", "too long (max 128)")
	}
}

func cleanStatusText(errs fieldErrors, text string) string {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		errs.add("status_text", msgRequired)
	case utf8.RuneCountInString(text) > maxStatusTextLen:
		errs.add("status_text", "too long (max 255)")
	}
	return text
}
