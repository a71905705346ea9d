package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"
)

// Session wires a Client to a TokenStore and keeps the pair fresh without
// the caller thinking about it. Do attaches the stored access token, and on
// a 401 refreshes the pair and retries the request exactly once. Concurrent
// 401s collapse onto a single in-flight refresh.
//
// When the refresh token itself is rejected the session is unrecoverable:
// the store (and mirror, if any) are cleared and calls fail with
// ErrReauthRequired until the user logs in again. Transport failures never
// tear the session down.
//
// A Session is safe for concurrent use.
type Session struct {
	client *Client
	store  TokenStore
	mirror *CookieMirror

	refreshGroup singleflight.Group
}

// NewSession creates a session over the given client and token store.
func NewSession(client *Client, store TokenStore) *Session {
	return &Session{client: client, store: store}
}

// UseMirror attaches a cookie mirror. Every token change from then on is
// pushed to the gateway asynchronously; mirror failures never fail the
// operation that triggered them. Call before the session is shared between
// goroutines.
func (s *Session) UseMirror(m *CookieMirror) {
	s.mirror = m
}

// Do sends an authenticated request to the auth service. body, when not nil,
// is marshalled to JSON once and replayed if the request is retried.
//
// Responses other than 401 are returned as-is with their body open. A 401
// triggers a refresh and a single retry; the retry's response is returned
// whatever its status, so a caller seeing 401 from Do knows the token pair
// was refreshed and still rejected.
func (s *Session) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	tokens, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}

	// Without an access token the first attempt can only 401, so refresh
	// up front instead of spending a round trip to find that out.
	if tokens.AccessToken == "" {
		if tokens, err = s.refresh(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := s.send(ctx, method, path, payload, tokens.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	resp.Body.Close()
	if tokens, err = s.refresh(ctx); err != nil {
		return nil, err
	}
	return s.send(ctx, method, path, payload, tokens.AccessToken)
}

func (s *Session) send(ctx context.Context, method, path string, payload []byte, accessToken string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}
	if payload != nil {
		headers["Content-Type"] = "application/json"
	}
	return s.client.doRequest(ctx, method, path, body, headers)
}

// refresh exchanges the stored refresh token for a new pair. Concurrent
// callers share one exchange through the singleflight group.
func (s *Session) refresh(ctx context.Context) (Tokens, error) {
	v, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		tokens, err := s.store.Load()
		if err != nil {
			return Tokens{}, fmt.Errorf("load tokens: %w", err)
		}
		if tokens.RefreshToken == "" {
			// Nothing to exchange; fail without touching the network.
			s.teardown()
			return Tokens{}, ErrReauthRequired
		}

		out, err := s.client.Refresh(ctx, tokens.RefreshToken)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				// The server rejected the refresh token itself.
				s.teardown()
				return Tokens{}, ErrReauthRequired
			}
			// Transport trouble. The stored pair may still be good, so
			// keep it and surface the error unchanged.
			return Tokens{}, err
		}

		fresh := Tokens{AccessToken: out.AppAuthToken, RefreshToken: out.RefreshToken}
		if err := s.store.Save(fresh); err != nil {
			return Tokens{}, fmt.Errorf("save tokens: %w", err)
		}
		s.mirrorSet(fresh)
		return fresh, nil
	})
	if err != nil {
		return Tokens{}, err
	}
	return v.(Tokens), nil
}

// adopt stores a freshly issued pair and mirrors it.
func (s *Session) adopt(tokens Tokens) error {
	if err := s.store.Save(tokens); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	s.mirrorSet(tokens)
	return nil
}

// teardown wipes all session state. Store failures are ignored; there is no
// better recovery than having tried.
func (s *Session) teardown() {
	_ = s.store.Clear()
	s.mirrorClear()
}

func (s *Session) mirrorSet(t Tokens) {
	if s.mirror == nil {
		return
	}
	go func() {
		_ = s.mirror.Set(context.Background(), t)
	}()
}

func (s *Session) mirrorClear() {
	if s.mirror == nil {
		return
	}
	go func() {
		_ = s.mirror.Clear(context.Background())
	}()
}
