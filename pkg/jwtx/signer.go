package jwtx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign token claims.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HMACSigner signs JWTs with a shared secret (HS256/HS384/HS512).
type HMACSigner struct {
	method *jwt.SigningMethodHMAC
	secret []byte
}

// NewSigner creates an HMAC signer for the given algorithm and secret.
func NewSigner(alg string, secret []byte) (*HMACSigner, error) {
	method, err := hmacMethod(alg)
	if err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}

	return &HMACSigner{method: method, secret: secret}, nil
}

// Alg returns the JOSE algorithm name, e.g. "HS256".
func (s *HMACSigner) Alg() string { return s.method.Alg() }

// Sign produces the compact serialized token.
func (s *HMACSigner) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(s.method, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// hmacMethod resolves an HS-family algorithm name, rejecting everything
// else so a config typo can't silently downgrade to "none".
func hmacMethod(alg string) (*jwt.SigningMethodHMAC, error) {
	switch strings.ToUpper(alg) {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}
}
