package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed      = errors.New("jwtx: malformed token")
	ErrUnsupportedAlg = errors.New("jwtx: unsupported algorithm")
	ErrInvalidSig     = errors.New("jwtx: invalid signature")

	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrTypeMismatch = errors.New("jwtx: token type mismatch")
)

// Verifier validates a JWT of the expected type and gives you back the
// claims if it's legit.
type Verifier interface {
	Verify(token, expectedType string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Leeway allows small clock skew when validating exp/iat.
	// Because time sync is never perfect.
	Leeway time.Duration

	// Now overrides the verification clock. Nil means time.Now, tests
	// advance it to exercise expiry.
	Now func() time.Time
}

// HMACVerifier validates JWTs signed with a shared secret.
type HMACVerifier struct {
	method *jwt.SigningMethodHMAC
	secret []byte
	opts   VerifyOptions
}

// NewVerifier creates an HMAC verifier for the given algorithm and secret.
func NewVerifier(alg string, secret []byte, opts VerifyOptions) (*HMACVerifier, error) {
	method, err := hmacMethod(alg)
	if err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty verification secret")
	}

	return &HMACVerifier{method: method, secret: secret, opts: opts}, nil
}

// Verify validates signature, expiry and the type discriminator, returning
// the parsed claims. Each failure mode maps to its own sentinel so callers
// can log precisely while the HTTP boundary stays generic.
func (v *HMACVerifier) Verify(tokenStr, expectedType string) (Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithLeeway(v.opts.Leeway),
	}
	if v.opts.Now != nil {
		parserOpts = append(parserOpts, jwt.WithTimeFunc(v.opts.Now))
	}
	parser := jwt.NewParser(parserOpts...)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateType(expectedType); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// mapParseError translates jwt/v5 parse failures into our sentinel set.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	default:
		return ErrMalformed
	}
}
