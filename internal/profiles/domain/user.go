package domain

import "time"

// User is a registered account. Email is the login identifier and is stored
// normalized (see NormalizeEmail).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // argon2id PHC string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfilePatch carries the user-editable fields of a profile. Nil means
// "not supplied".
type ProfilePatch struct {
	Email    *string
	Name     *string
	Password *string
}
