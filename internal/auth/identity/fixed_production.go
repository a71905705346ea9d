//go:build production

package identity

// Production builds carry no fixed identity implementation. Requesting one is
// a configuration error surfaced at startup, before the server binds.
func NewFixedIdentityStrategy() (Strategy, error) {
	return nil, ErrFixedIdentityInProduction
}
