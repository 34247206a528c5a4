package domain

import (
	"regexp"
	"strings"
	"time"
)

// Role is the permission tier of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the recognised role tags.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Seed administrator credentials. Reset and SeedAdmin on the store use these.
const (
	SeedAdminName     = "Admin"
	SeedAdminEmail    = "admin@sps.com"
	SeedAdminPassword = "admin123"
)

// User models an account managed by the API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"type"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal is the identity carried by a bearer token. It is rebuilt from the
// token on every request, so a role change only applies after re-login.
type Principal struct {
	Subject string
	Email   string
	Role    Role
}

// IsAdmin reports whether the principal acts with admin rights.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// PrincipalFor builds the token payload for u.
func PrincipalFor(u *User) Principal {
	return Principal{Subject: u.ID, Email: u.Email, Role: u.Role}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail performs the simple local@domain.tld shape check.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail lowercases an address for storage and lookups.
func NormalizeEmail(s string) string {
	return strings.ToLower(s)
}
