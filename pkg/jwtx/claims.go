package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminators. A refresh token must never pass where an
// access token is required, so the type rides inside the signed payload.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Default token TTLs. Overridable per-service through configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 12 * time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims is the signed token payload: subject, type discriminator, and the
// registered iat/exp timestamps. Keeping the claim set this small is
// deliberate, the tokens are self-contained and nothing else is trusted.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType is "access" or "refresh".
	TokenType string `json:"type"`
}

// NewClaims builds minimally-correct claims for one token of the pair.
// The caller supplies now so issuance stays a pure function of its inputs.
func NewClaims(subject, tokenType string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	}
}

// ValidateType checks the type discriminator against what the call site
// expects. Signature validity alone is never enough.
func (c *Claims) ValidateType(expected string) error {
	if c.TokenType != expected {
		return ErrTypeMismatch
	}
	return nil
}
