package service

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/duetmatch/duet/internal/auth/domain"
	"github.com/duetmatch/duet/pkg/cryptox"
	"github.com/duetmatch/duet/pkg/jwtx"
	"golang.org/x/sync/semaphore"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
)

// TokenService mints and verifies the paired access/refresh tokens and owns
// password hashing. It is deliberately storage-free: a token is valid iff its
// signature, expiry and type claim check out, so token verification never
// costs a database round trip.
type TokenService struct {
	signer     jwtx.Signer
	verifier   jwtx.Verifier
	accessTTL  time.Duration
	refreshTTL time.Duration

	now func() time.Time

	// hashSem bounds concurrent bcrypt work to the core count so a burst of
	// sign-ups cannot starve every other request.
	hashSem *semaphore.Weighted
}

type TokenConfig struct {
	Algorithm  string // HS256, HS384 or HS512
	Secret     []byte
	AccessTTL  time.Duration // zero means the 12h default
	RefreshTTL time.Duration // zero means the 30d default

	// Now overrides the clock. Tests pin it to exercise expiry.
	Now func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	signer, err := jwtx.NewSigner(cfg.Algorithm, cfg.Secret)
	if err != nil {
		return nil, err
	}

	verifier, err := jwtx.NewVerifier(cfg.Algorithm, cfg.Secret, jwtx.VerifyOptions{Now: cfg.Now})
	if err != nil {
		return nil, err
	}

	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &TokenService{
		signer:     signer,
		verifier:   verifier,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
		hashSem:    semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}, nil
}

// Verifier exposes the configured verifier for wiring the authn strategy.
func (s *TokenService) Verifier() jwtx.Verifier { return s.verifier }

// HashPassword derives a storable bcrypt hash from the plaintext.
func (s *TokenService) HashPassword(ctx context.Context, password string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)

	return cryptox.HashPassword(password)
}

// VerifyPassword reports whether password matches hash. It never errors:
// malformed hashes, cancelled contexts and plain mismatches all read as false.
func (s *TokenService) VerifyPassword(ctx context.Context, password, hash string) bool {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer s.hashSem.Release(1)

	return cryptox.VerifyPassword(password, hash)
}

// IssueTokenPair mints a fresh access/refresh pair for subject. Both tokens
// share the same issue instant.
func (s *TokenService) IssueTokenPair(subject string) (domain.TokenPair, error) {
	now := s.now()

	access, err := s.signer.Sign(jwtx.NewClaims(subject, jwtx.TokenTypeAccess, s.accessTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.signer.Sign(jwtx.NewClaims(subject, jwtx.TokenTypeRefresh, s.refreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyToken validates signature, expiry and the type claim. An access token
// is never accepted where a refresh token is expected, and vice versa.
func (s *TokenService) VerifyToken(token, expectedType string) (jwtx.Claims, error) {
	return s.verifier.Verify(token, expectedType)
}

// Refresh turns a valid refresh token into a brand-new pair for the same
// subject. Stateless: no lookup and no rotation bookkeeping, the old refresh
// token simply ages out.
func (s *TokenService) Refresh(refreshToken string) (domain.TokenPair, error) {
	claims, err := s.verifier.Verify(refreshToken, jwtx.TokenTypeRefresh)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidRefresh
	}
	return s.IssueTokenPair(claims.Subject)
}
