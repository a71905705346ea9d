package identity

import (
	"github.com/duetmatch/duet/pkg/jwtx"
)

// RealStrategy authenticates by verifying the bearer token as a signed access
// token. Refresh tokens are rejected here; they are only good for the refresh
// endpoint.
type RealStrategy struct {
	verifier jwtx.Verifier
}

func NewRealStrategy(v jwtx.Verifier) *RealStrategy {
	return &RealStrategy{verifier: v}
}

func (s *RealStrategy) Authenticate(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrNoToken
	}

	claims, err := s.verifier.Verify(token, jwtx.TokenTypeAccess)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.Subject}, nil
}
