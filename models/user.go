package models

import (
	"strings"
	"time"
	"unicode"
)

// Role defines the account types in the system
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleOwner    Role = "OWNER"
	RoleSupport  Role = "SUPPORT"
)

// SelfRegisterable reports whether a role may be chosen at signup.
// STAFF accounts are created only through invitation acceptance and
// SUPPORT accounts only by operators.
func (r Role) SelfRegisterable() bool {
	return r == RoleCustomer || r == RoleOwner
}

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string    `json:"-" gorm:"not null"`
	Role            Role      `json:"role" gorm:"not null;default:'CUSTOMER'"`
	IsEmailVerified bool      `json:"is_email_verified" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NormalizeEmail lowercases and trims an address so uniqueness checks
// and storage agree on one form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const PasswordRule = "Password must be at least 8 chars, with letters and digits."

// ValidPassword enforces the signup password rule: min 8 chars, at
// least one letter and one digit.
func ValidPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, c := range p {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
