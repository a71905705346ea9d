package domain

import "time"

// CredentialKind discriminates how an account authenticates.
type CredentialKind string

const (
	CredentialNone     CredentialKind = "none"
	CredentialPassword CredentialKind = "password"
	CredentialOAuth    CredentialKind = "oauth"
)

// Credential is an account's single active authentication method. Exactly
// one kind is live at a time, password hash and OAuth identity never share
// a field. Construct through PasswordCredential or OAuthCredential so the
// kind always matches the populated fields.
type Credential struct {
	Kind CredentialKind

	// PasswordHash is set only for CredentialPassword (bcrypt encoded)
	PasswordHash string

	// OAuthProvider and OAuthSubject are set only for CredentialOAuth
	OAuthProvider string
	OAuthSubject  string
}

// PasswordCredential returns a password-based credential.
func PasswordCredential(hash string) Credential {
	return Credential{Kind: CredentialPassword, PasswordHash: hash}
}

// OAuthCredential returns a social-login credential tied to an external
// provider identity.
func OAuthCredential(provider, subject string) Credential {
	return Credential{Kind: CredentialOAuth, OAuthProvider: provider, OAuthSubject: subject}
}

// AuthType renders the credential kind the way clients expect it:
// "email" for password accounts, the provider name for social accounts.
func (c Credential) AuthType() string {
	switch c.Kind {
	case CredentialPassword:
		return "email"
	case CredentialOAuth:
		return c.OAuthProvider
	default:
		return "none"
	}
}

type User struct {
	ID         string // "usr_" + ULID
	Email      string
	Nickname   string
	Credential Credential
	IsAdmin    bool
	IsPremium  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // soft delete marker, nil while the account is live
}

// Deleted reports whether the account has been soft deleted.
func (u User) Deleted() bool { return u.DeletedAt != nil }
