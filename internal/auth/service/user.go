package service

import (
	"context"
	"errors"

	"github.com/duetmatch/duet/internal/auth/domain"
	"github.com/duetmatch/duet/internal/auth/store"
	"github.com/duetmatch/duet/pkg/idx"
	"github.com/duetmatch/duet/pkg/jwtx"
	"github.com/duetmatch/duet/pkg/slogx"
)

// UserService owns the account flows: email sign-up, email login, refresh
// and profile lookup. Token mechanics are delegated to the TokenService so
// this layer only ever thinks in accounts.
type UserService struct {
	Store  store.Store
	Tokens *TokenService
}

// RegisterEmail creates a password-credentialed account and signs it in.
// Email uniqueness is enforced by the store; a duplicate surfaces as
// store.ErrEmailTaken no matter how the race goes.
func (s *UserService) RegisterEmail(ctx context.Context, email, password, username string) (domain.User, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	hash, err := s.Tokens.HashPassword(ctx, password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	u := domain.User{
		ID:         idx.NewWithPrefix("usr"),
		Email:      email,
		Nickname:   username,
		Credential: domain.PasswordCredential(hash),
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	pair, err := s.Tokens.IssueTokenPair(u.ID)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	l.Info("user registered", "user_id", u.ID)
	return u, pair, nil
}

// AuthenticateEmail validates an email/password pair and mints tokens.
// Unknown address, deleted account, social-login account and wrong password
// all collapse into ErrInvalidCredentials so callers can't probe which one it
// was.
func (s *UserService) AuthenticateEmail(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("email login failed", "reason", "unknown_email")
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if u.Credential.Kind != domain.CredentialPassword {
		l.Info("email login failed", "reason", "no_password_credential", "user_id", u.ID)
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	if !s.Tokens.VerifyPassword(ctx, password, u.Credential.PasswordHash) {
		l.Info("email login failed", "reason", "password_mismatch", "user_id", u.ID)
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.Tokens.IssueTokenPair(u.ID)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	return u, pair, nil
}

// Refresh exchanges a refresh token for a brand-new pair, after confirming
// the subject still resolves to a live account. A deleted user keeps a
// syntactically valid refresh token until it expires; this check is what
// actually locks them out.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Tokens.VerifyToken(refreshToken, jwtx.TokenTypeRefresh)
	if err != nil {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, err
	}

	return s.Tokens.IssueTokenPair(u.ID)
}

// ProfileByID fetches the profile backing GET /me.
func (s *UserService) ProfileByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// DeleteAccount soft-deletes the account. The row survives until the
// housekeeping sweep purges it, but every lookup stops seeing it immediately.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.Store.Users().SoftDeleteUser(ctx, userID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user soft deleted", "user_id", userID)
	return nil
}
