package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost trades login latency for brute-force resistance. 12 keeps a
// single verification in the tens of milliseconds on current hardware.
const hashCost = 12

// ErrEmptyPassword reports an attempt to hash an empty password.
var ErrEmptyPassword = errors.New("cryptox: empty password")

// HashPassword generates a salted bcrypt hash safe to persist as-is.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		// bcrypt rejects inputs over 72 bytes
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A malformed or truncated hash verifies as false rather than erroring, so
// callers cannot accidentally treat storage corruption as success.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
