package credentials

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/sps/users-api/internal/core/domain"
)

// PasetoIssuer issues v4.local tokens (XChaCha20-Poly1305, symmetric key).
type PasetoIssuer struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
	now func() time.Time
}

// NewPasetoIssuer parses a 32-byte hex key. An empty key generates a random
// one, so tokens do not survive a restart.
func NewPasetoIssuer(keyHex string, ttl time.Duration) (*PasetoIssuer, error) {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	var key paseto.V4SymmetricKey
	if keyHex == "" {
		key = paseto.NewV4SymmetricKey()
	} else {
		k, err := paseto.V4SymmetricKeyFromHex(keyHex)
		if err != nil {
			return nil, fmt.Errorf("paseto key: %w", err)
		}
		key = k
	}

	return &PasetoIssuer{key: key, ttl: ttl, now: time.Now}, nil
}

func (p *PasetoIssuer) Issue(pr domain.Principal) (string, error) {
	now := p.now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(now.Add(p.ttl))
	token.SetSubject(pr.Subject)
	token.SetString("email", pr.Email)
	token.SetString("type", string(pr.Role))

	return token.V4Encrypt(p.key, nil), nil
}

func (p *PasetoIssuer) Verify(token string) (*domain.Principal, error) {
	parser := paseto.NewParser()

	parsed, err := parser.ParseV4Local(p.key, token, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	sub, err := parsed.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrInvalidToken
	}
	email, err := parsed.GetString("email")
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	role, err := parsed.GetString("type")
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{Subject: sub, Email: email, Role: domain.Role(role)}, nil
}
