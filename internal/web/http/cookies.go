package http

import (
	"net/http"
	"strings"
	"time"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

// CookiePolicy decides the attributes of the session cookies the gateway
// writes. The Secure attribute follows the request scheme; behind a TLS
// terminating proxy that scheme is only visible through X-Forwarded-Proto,
// which is honoured when TrustProxyScheme is set and ignored otherwise so an
// untrusted client cannot downgrade its own cookies.
type CookiePolicy struct {
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	TrustProxyScheme bool
}

func (p CookiePolicy) secure(r *http.Request) bool {
	if p.TrustProxyScheme {
		proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")))
		if proto == "https" || proto == "http" {
			return proto == "https"
		}
	}
	return r.TLS != nil
}

// writeSession sets both token cookies with lifetimes matching the tokens
// they carry.
func (p CookiePolicy) writeSession(w http.ResponseWriter, r *http.Request, accessToken, refreshToken string) {
	secure := p.secure(r)
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(p.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(p.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSession expires both token cookies.
func (p CookiePolicy) clearSession(w http.ResponseWriter, r *http.Request) {
	secure := p.secure(r)
	for _, name := range []string{accessCookieName, refreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
