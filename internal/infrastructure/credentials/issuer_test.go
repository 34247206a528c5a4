package credentials

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sps/users-api/internal/core/domain"
	"github.com/sps/users-api/internal/core/ports"
)

var testPrincipal = domain.Principal{Subject: "abc", Email: "x@y.com", Role: domain.RoleUser}

func testPasetoKey() string {
	return hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

type issuerFactory func(ttl time.Duration, now func() time.Time) ports.TokenIssuer

func issuers(t *testing.T) map[string]issuerFactory {
	t.Helper()
	return map[string]issuerFactory{
		FormatJWT: func(ttl time.Duration, now func() time.Time) ports.TokenIssuer {
			j := NewJWTIssuer("secret", ttl)
			j.now = now
			return j
		},
		FormatPaseto: func(ttl time.Duration, now func() time.Time) ports.TokenIssuer {
			p, err := NewPasetoIssuer(testPasetoKey(), ttl)
			require.NoError(t, err)
			p.now = now
			return p
		},
	}
}

func TestIssuers_RoundTrip(t *testing.T) {
	for name, build := range issuers(t) {
		t.Run(name, func(t *testing.T) {
			iss := build(time.Hour, time.Now)

			tok, err := iss.Issue(testPrincipal)
			require.NoError(t, err)

			got, err := iss.Verify(tok)
			require.NoError(t, err)
			assert.Equal(t, testPrincipal, *got)
		})
	}
}

func TestIssuers_Expired(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	for name, build := range issuers(t) {
		t.Run(name, func(t *testing.T) {
			iss := build(time.Hour, past)

			tok, err := iss.Issue(testPrincipal)
			require.NoError(t, err)

			_, err = iss.Verify(tok)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestIssuers_Tampered(t *testing.T) {
	for name, build := range issuers(t) {
		t.Run(name, func(t *testing.T) {
			iss := build(time.Hour, time.Now)

			tok, err := iss.Issue(testPrincipal)
			require.NoError(t, err)

			i := len(tok) - 10
			repl := byte('A')
			if tok[i] == 'A' {
				repl = 'B'
			}
			_, err = iss.Verify(tok[:i] + string(repl) + tok[i+1:])
			assert.ErrorIs(t, err, domain.ErrInvalidToken)

			_, err = iss.Verify("garbage")
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestJWTIssuer_ExpiresInOneHourByDefault(t *testing.T) {
	iss := NewJWTIssuer("secret", 0)
	tok, err := iss.Issue(testPrincipal)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, 5*time.Second)
	assert.Equal(t, "abc", claims["sub"])
	assert.Equal(t, "user", claims["type"])
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	tok, err := NewJWTIssuer("right", time.Hour).Issue(testPrincipal)
	require.NoError(t, err)

	_, err = NewJWTIssuer("wrong", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTIssuer_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTIssuer("secret", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNewTokenIssuer(t *testing.T) {
	iss, err := NewTokenIssuer(TokenOptions{JWTSecret: "s"})
	require.NoError(t, err)
	assert.IsType(t, &JWTIssuer{}, iss)

	iss, err = NewTokenIssuer(TokenOptions{Format: "PASETO", PasetoKey: testPasetoKey()})
	require.NoError(t, err)
	assert.IsType(t, &PasetoIssuer{}, iss)

	_, err = NewTokenIssuer(TokenOptions{Format: FormatPaseto, PasetoKey: "zz"})
	assert.Error(t, err)

	_, err = NewTokenIssuer(TokenOptions{Format: "saml"})
	assert.Error(t, err)

	_, err = NewTokenIssuer(TokenOptions{Format: FormatJWT})
	assert.Error(t, err)
}

func TestPasetoIssuer_RandomKeyWhenEmpty(t *testing.T) {
	a, err := NewPasetoIssuer("", time.Hour)
	require.NoError(t, err)
	b, err := NewPasetoIssuer("", time.Hour)
	require.NoError(t, err)

	tok, err := a.Issue(testPrincipal)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tok, "v4.local."))

	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
