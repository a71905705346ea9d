package auth_test

import (
	"errors"
	"testing"

	"github.com/duetmatch/duet/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestMeRequiresToken verifies the profile endpoint refuses anonymous and
// garbage credentials.
func TestMeRequiresToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Me(t.Context(), "")
	assertAPIStatus(t, err, 401, "missing token")

	_, err = client.Me(t.Context(), "garbage-token")
	assertAPIStatus(t, err, 401, "garbage token")
}

// TestDeleteAccount verifies account deletion invalidates outstanding access
// tokens and a repeat delete reports the account gone.
func TestDeleteAccount(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	signUp := signUpTestUser(t, client)

	require.NoError(t, client.DeleteAccount(t.Context(), signUp.AppAuthToken))

	// The token still verifies cryptographically but the account is gone.
	_, err := client.Me(t.Context(), signUp.AppAuthToken)
	assertAPIStatus(t, err, 401, "profile read after deletion")

	err = client.DeleteAccount(t.Context(), signUp.AppAuthToken)
	assertAPIStatus(t, err, 404, "second delete")

	// The freed email can be registered again.
	reborn, err := client.SignUpEmail(t.Context(), authsdk.SignUpRequest{
		Email:    testEmail,
		Password: testPassword,
		Username: testUsername,
	})
	require.NoError(t, err)
	require.NotEqual(t, signUp.UserID, reborn.UserID, "re-registration must mint a new account")
}

// TestSessionLifecycle runs the managed session against a real service:
// sign-up, authenticated read, logout, then the signal that a login is needed.
func TestSessionLifecycle(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	session := authsdk.NewSession(authsdk.NewClient(baseURL), authsdk.NewMemoryStore())

	signUp, err := session.SignUpEmail(t.Context(), authsdk.SignUpRequest{
		Email:    testEmail,
		Password: testPassword,
		Username: testUsername,
	})
	require.NoError(t, err)

	profile, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, signUp.UserID, profile.ID)

	require.NoError(t, session.Logout(t.Context()))

	_, err = session.Me(t.Context())
	require.True(t, errors.Is(err, authsdk.ErrReauthRequired),
		"a logged-out session should ask for re-authentication, got: %v", err)
}
