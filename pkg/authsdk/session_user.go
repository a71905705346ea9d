package authsdk

import (
	"context"
	"net/http"
)

// LoginEmail signs in with an email and password and adopts the returned
// token pair as the session.
func (s *Session) LoginEmail(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	out, err := s.client.LoginEmail(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(Tokens{AccessToken: out.AppAuthToken, RefreshToken: out.RefreshToken}); err != nil {
		return nil, err
	}
	return out, nil
}

// SignUpEmail registers a new account and adopts the returned token pair as
// the session.
func (s *Session) SignUpEmail(ctx context.Context, req SignUpRequest) (*LoginResponse, error) {
	out, err := s.client.SignUpEmail(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(Tokens{AccessToken: out.AppAuthToken, RefreshToken: out.RefreshToken}); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout clears the session locally and on the cookie mirror. There is no
// server-side session to revoke; outstanding tokens simply age out.
func (s *Session) Logout(ctx context.Context) error {
	s.mirrorClear()
	if err := s.store.Clear(); err != nil {
		return err
	}
	return nil
}

// Me fetches the profile of the signed-in user.
func (s *Session) Me(ctx context.Context) (*UserInfoResponse, error) {
	resp, err := s.Do(ctx, http.MethodGet, "/api/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var out UserInfoResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount soft-deletes the signed-in user's account and clears the
// session.
func (s *Session) DeleteAccount(ctx context.Context) error {
	resp, err := s.Do(ctx, http.MethodDelete, "/api/v1/auth/me", nil)
	if err != nil {
		return err
	}
	if err := checkStatus(resp, http.StatusNoContent); err != nil {
		return err
	}

	s.teardown()
	return nil
}
