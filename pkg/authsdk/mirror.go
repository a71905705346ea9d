package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CookieMirror pushes token changes to a Duet web gateway so browser cookies
// track the native session. The gateway is an advisory cache of the token
// store, never the other way round; Session treats every mirror call as best
// effort.
type CookieMirror struct {
	// BaseURL is the root of the web gateway, without a trailing slash.
	BaseURL string
	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client
}

// NewCookieMirror creates a mirror for the gateway at the given base URL.
func NewCookieMirror(baseURL string) *CookieMirror {
	return &CookieMirror{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Set replaces the gateway's session cookies with the given pair.
func (m *CookieMirror) Set(ctx context.Context, t Tokens) error {
	body, err := json.Marshal(SessionCookieRequest{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/api/auth/session", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	return checkStatus(resp, http.StatusOK)
}

// Clear removes the gateway's session cookies.
func (m *CookieMirror) Clear(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, m.BaseURL+"/api/auth/session", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	return checkStatus(resp, http.StatusOK)
}
