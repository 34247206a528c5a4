package ports

import "github.com/sps/users-api/internal/core/domain"

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs principals into bearer tokens and verifies them back.
// Verify returns domain.ErrInvalidToken for tampered, malformed or expired tokens.
type TokenIssuer interface {
	Issue(p domain.Principal) (string, error)
	Verify(token string) (*domain.Principal, error)
}
