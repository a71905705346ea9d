package authsdk

import (
	"context"
	"net/http"
)

// LoginEmail exchanges an email and password for a signed-in session.
// A wrong email and a wrong password are indistinguishable in the returned
// error.
func (c *Client) LoginEmail(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.postJSON(ctx, "/api/v1/auth/email/login", req)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUpEmail registers a new account and signs it straight in.
func (c *Client) SignUpEmail(ctx context.Context, req SignUpRequest) (*LoginResponse, error) {
	resp, err := c.postJSON(ctx, "/api/v1/auth/email/sign-up", req)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a brand new token pair. The old
// access token keeps working until its expiry; discard it anyway.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	resp, err := c.postJSON(ctx, "/api/v1/auth/refresh", RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the profile of the user the access token belongs to.
func (c *Client) Me(ctx context.Context, accessToken string) (*UserInfoResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	if err != nil {
		return nil, err
	}

	var out UserInfoResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount soft-deletes the account the access token belongs to. The
// account disappears from every lookup immediately; tokens already issued
// stop working at the next refresh.
func (c *Client) DeleteAccount(ctx context.Context, accessToken string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}
