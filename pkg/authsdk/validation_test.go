package authsdk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		req := LoginRequest{Email: "robin@example.com", Password: "hunter22"}
		require.Empty(t, req.Validate())
	})

	t.Run("missing everything", func(t *testing.T) {
		problems := LoginRequest{}.Validate()
		require.Equal(t, requiredReason, problems["email"])
		require.Equal(t, requiredReason, problems["password"])
	})

	t.Run("bad email", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "a@b", "two words@example.com", "@example.com"} {
			problems := LoginRequest{Email: email, Password: "hunter22"}.Validate()
			require.Equal(t, emailFormatReason, problems["email"], "email %q", email)
		}
	})

	t.Run("password bounds", func(t *testing.T) {
		short := LoginRequest{Email: "a@b.co", Password: "12345"}
		require.Equal(t, passwordLengthReason, short.Validate()["password"])

		long := LoginRequest{Email: "a@b.co", Password: strings.Repeat("x", 73)}
		require.Equal(t, passwordLengthReason, long.Validate()["password"])

		// 72 bytes is the bcrypt ceiling and still fine.
		max := LoginRequest{Email: "a@b.co", Password: strings.Repeat("x", 72)}
		require.Empty(t, max.Validate())
	})
}

func TestSignUpRequestValidate(t *testing.T) {
	t.Parallel()

	valid := SignUpRequest{Email: "robin@example.com", Password: "hunter22", Username: "Robin"}

	t.Run("valid", func(t *testing.T) {
		require.Empty(t, valid.Validate())
	})

	t.Run("username bounds", func(t *testing.T) {
		req := valid
		req.Username = "x"
		require.Equal(t, usernameLengthReason, req.Validate()["username"])

		req.Username = strings.Repeat("x", 51)
		require.Equal(t, usernameLengthReason, req.Validate()["username"])

		req.Username = ""
		require.Equal(t, requiredReason, req.Validate()["username"])
	})

	t.Run("username length counts runes", func(t *testing.T) {
		req := valid
		req.Username = strings.Repeat("ü", 50)
		require.Empty(t, req.Validate())
	})
}

func TestRefreshRequestValidate(t *testing.T) {
	t.Parallel()

	require.Empty(t, RefreshRequest{RefreshToken: "anything"}.Validate())
	require.Equal(t, requiredReason, RefreshRequest{}.Validate()["refresh_token"])
}
