// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ErrInvalidUsername is returned when a username does not match the allowed pattern or length.
var ErrInvalidUsername = errors.New("username must be 3-50 characters of letters, digits or underscores")

// User is the principal of the system: an account that can log in and own inventory items.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // Unique login name; immutable once registered.
	Email        *string   // Optional unique contact email, also accepted as a login identifier.
	PasswordHash string    // Self-describing bcrypt digest of the user's password.
	IsActive     bool      // Inactive accounts cannot use bearer tokens.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// EmailOrEmpty returns the user's email, or "" when none is set.
func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}

	return *u.Email
}

// UserPatch lists the account fields that may change after registration.
// Username is deliberately absent.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	IsActive     *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.PasswordHash == nil && p.IsActive == nil
}

// Apply merges the set fields into user. An empty email string clears the email.
func (p UserPatch) Apply(user *User) {
	if p.Email != nil {
		if *p.Email == "" {
			user.Email = nil
		} else {
			email := *p.Email
			user.Email = &email
		}
	}
	if p.PasswordHash != nil {
		user.PasswordHash = *p.PasswordHash
	}
	if p.IsActive != nil {
		user.IsActive = *p.IsActive
	}
}

// ValidateUsername checks the username pattern [A-Za-z0-9_]+ and its length.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < UsernameMinLength || n > UsernameMaxLength || !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}

	return nil
}
