package http

import (
	"encoding/json"
	"net/http"

	"github.com/duetmatch/duet/pkg/authsdk"
	"github.com/duetmatch/duet/pkg/slogx"
)

// SessionHandler relays a token pair into HTTP-only cookies and back out
// again. It is a storage relay, not a verifier: the tokens are trusted
// because the route is same-origin and only reachable from a browser context
// that already holds them. The auth service remains the sole judge of token
// validity.
type SessionHandler struct {
	Cookies CookiePolicy
}

// HandlePut stores the posted token pair as session cookies.
func (h *SessionHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req authsdk.SessionCookieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	h.Cookies.writeSession(w, r, req.AccessToken, req.RefreshToken)
	w.WriteHeader(http.StatusOK)

	log.Debug("session cookies set")
}

// HandleDelete expires both session cookies.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	h.Cookies.clearSession(w, r)
	w.WriteHeader(http.StatusOK)

	log.Debug("session cookies cleared")
}
