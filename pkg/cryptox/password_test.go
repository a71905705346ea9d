package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"unicode password", "пароль密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Standard bcrypt encoding with our configured cost
			require.True(t, strings.HasPrefix(hash, "$2a$12$"),
				"hash should carry the bcrypt prefix and cost")
		})
	}
}

func TestHashPassword_RejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHashPassword_RejectsOverlong(t *testing.T) {
	// bcrypt caps input at 72 bytes; anything longer must fail loudly
	// rather than silently truncate
	_, err := HashPassword(strings.Repeat("a", 73))
	require.Error(t, err)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	// Each hash differs due to its embedded random salt
	require.NotEqual(t, hash1, hash2)

	// But both verify the same password
	require.True(t, VerifyPassword(password, hash1))
	require.True(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct password", "correct-password", true},
		{"completely wrong", "wrong-password", false},
		{"case difference", "Correct-Password", false},
		{"trailing space", "correct-password ", false},
		{"empty password", "", false},
		{"near miss", "correct-passwor", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, VerifyPassword(tt.password, hash))
		})
	}
}

func TestVerifyPassword_MalformedHashIsFalse(t *testing.T) {
	// Garbage in the credential column must read as "no match", never panic
	// or surface an error to the login path
	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"not a hash", "hunter2"},
		{"wrong scheme", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"truncated", "$2a$12$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, VerifyPassword("any-password", tt.hash))
		})
	}
}
