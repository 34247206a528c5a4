// Package credentials wraps the cryptographic primitives used by the API:
// bcrypt password hashing and bearer token signing (JWT or PASETO).
package credentials

import (
	"fmt"
	"strings"
	"time"

	"github.com/sps/users-api/internal/core/ports"
)

const (
	FormatJWT    = "jwt"
	FormatPaseto = "paseto"
)

// TokenOptions selects and configures the bearer token format.
type TokenOptions struct {
	Format    string
	JWTSecret string
	PasetoKey string
	TTL       time.Duration
}

// NewTokenIssuer builds the issuer named by opts.Format. Empty means JWT.
func NewTokenIssuer(opts TokenOptions) (ports.TokenIssuer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatJWT:
		if opts.JWTSecret == "" {
			return nil, fmt.Errorf("credentials: jwt secret is empty")
		}
		return NewJWTIssuer(opts.JWTSecret, opts.TTL), nil
	case FormatPaseto:
		issuer, err := NewPasetoIssuer(opts.PasetoKey, opts.TTL)
		if err != nil {
			return nil, err
		}
		return issuer, nil
	default:
		return nil, fmt.Errorf("credentials: unknown token format %q", opts.Format)
	}
}
