// Package identity decides who a bearer token belongs to. The router picks a
// Strategy at startup: real JWT verification in normal operation, or a fixed
// development identity when mock auth is enabled. Handlers never see the
// difference, they just read the resolved Identity from the request context.
package identity

import "errors"

var (
	// ErrNoToken is returned when the request carried no bearer token at all.
	ErrNoToken = errors.New("identity: no bearer token")

	// ErrFixedIdentityInProduction is the startup refusal for mock auth in a
	// production build. The binary must not be able to serve synthetic
	// identities to real traffic.
	ErrFixedIdentityInProduction = errors.New("identity: fixed identity strategy is not available in production builds")
)

// Fixed development identity, mirrored by the /me handler so no account row
// is needed.
const (
	FixedUserID   = "usr_mock0000000000000000000001"
	FixedNickname = "Test User"
	FixedEmail    = "test@example.com"
	FixedAuthType = "mock"
	FixedIsAdmin  = true
)

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	UserID string

	// Synthetic marks identities minted without verifying anything. Only the
	// fixed development strategy sets it.
	Synthetic bool
}

// Strategy turns the bearer token of a request into an Identity. An empty
// token means the request carried none.
type Strategy interface {
	Authenticate(token string) (Identity, error)
}
