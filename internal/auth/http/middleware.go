package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/duetmatch/duet/internal/auth/identity"
	"github.com/duetmatch/duet/pkg/authsdk"
	"github.com/duetmatch/duet/pkg/httpx"
	"github.com/duetmatch/duet/pkg/slogx"
)

// AuthnMiddleware resolves the bearer token through the identity strategy
// and injects the resulting identity into the request context. The strategy
// decides what counts as authenticated, which is how the fixed test identity
// plugs in without the handlers knowing.
func AuthnMiddleware(strategy identity.Strategy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "malformed authorization header")
				return
			}

			id, err := strategy.Authenticate(token)
			if err != nil {
				if errors.Is(err, identity.ErrNoToken) {
					writeBearerError(w, "missing bearer token")
					return
				}
				log.Warn("token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			// Inject into context for downstream handlers.
			ctx = slogx.WithUser(ctx, id.UserID)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, id.UserID)
			ctx = context.WithValue(ctx, httpx.CtxKeyIdentity, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the bearer token from the Authorization header. An
// absent header yields the empty token, which the strategy may still accept;
// a present header with the wrong scheme does not.
func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return "", true
	}
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer")), true
}

// identityFromContext returns the identity placed by AuthnMiddleware.
func identityFromContext(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(httpx.CtxKeyIdentity).(identity.Identity)
	return id, ok
}

// RFC 6750 bearer challenge. The body carries the standard envelope so SDK
// callers can decode it; the header keeps the precise reason.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	authsdk.ErrInvalidToken.WriteError(w)
}
