package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSignAndVerify(t *testing.T) {
	signer, err := NewSigner("HS256", testSecret)
	require.NoError(t, err)

	verifier, err := NewVerifier("HS256", testSecret, VerifyOptions{})
	require.NoError(t, err)

	now := time.Now().UTC()
	token, err := signer.Sign(NewClaims("usr_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", TokenTypeAccess, time.Hour, now))
	require.NoError(t, err)

	claims, err := verifier.Verify(token, TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, "usr_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", claims.Subject)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
	require.WithinDuration(t, now, claims.IssuedAt.Time, time.Second)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestVerify_TypeMismatch(t *testing.T) {
	signer, err := NewSigner("HS256", testSecret)
	require.NoError(t, err)

	verifier, err := NewVerifier("HS256", testSecret, VerifyOptions{})
	require.NoError(t, err)

	access, err := signer.Sign(NewClaims("usr_1", TokenTypeAccess, time.Hour, time.Now()))
	require.NoError(t, err)

	refresh, err := signer.Sign(NewClaims("usr_1", TokenTypeRefresh, time.Hour, time.Now()))
	require.NoError(t, err)

	// A perfectly valid signature is not enough, the discriminator decides
	_, err = verifier.Verify(access, TokenTypeRefresh)
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = verifier.Verify(refresh, TokenTypeAccess)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestVerify_Expired(t *testing.T) {
	signer, err := NewSigner("HS256", testSecret)
	require.NoError(t, err)

	issued := time.Now().UTC()

	// Advance the verifier clock past the 12h lifetime instead of sleeping
	future := func() time.Time { return issued.Add(13 * time.Hour) }
	verifier, err := NewVerifier("HS256", testSecret, VerifyOptions{Now: future})
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("usr_1", TokenTypeAccess, 12*time.Hour, issued))
	require.NoError(t, err)

	_, err = verifier.Verify(token, TokenTypeAccess)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerify_StillValidBeforeExpiry(t *testing.T) {
	signer, err := NewSigner("HS256", testSecret)
	require.NoError(t, err)

	issued := time.Now().UTC()

	almost := func() time.Time { return issued.Add(11 * time.Hour) }
	verifier, err := NewVerifier("HS256", testSecret, VerifyOptions{Now: almost})
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("usr_1", TokenTypeAccess, 12*time.Hour, issued))
	require.NoError(t, err)

	_, err = verifier.Verify(token, TokenTypeAccess)
	require.NoError(t, err)
}

func TestVerify_BadTokens(t *testing.T) {
	signer, err := NewSigner("HS256", testSecret)
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("usr_1", TokenTypeAccess, time.Hour, time.Now()))
	require.NoError(t, err)

	verifier, err := NewVerifier("HS256", testSecret, VerifyOptions{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "garbage", token: "not-a-token", want: ErrMalformed},
		{name: "empty", token: "", want: ErrMalformed},
		{name: "truncated signature", token: token[:len(token)-4], want: ErrInvalidSig},
		{name: "tampered signature", token: tamperLastByte(token), want: ErrInvalidSig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token, TokenTypeAccess)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signer, err := NewSigner("HS256", testSecret)
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("usr_1", TokenTypeAccess, time.Hour, time.Now()))
	require.NoError(t, err)

	verifier, err := NewVerifier("HS256", []byte("a completely different secret!!!"), VerifyOptions{})
	require.NoError(t, err)

	_, err = verifier.Verify(token, TokenTypeAccess)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerify_AlgorithmPinned(t *testing.T) {
	// A token signed with a different HS variant must not slip past a
	// verifier pinned to HS256
	signer, err := NewSigner("HS512", testSecret)
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("usr_1", TokenTypeAccess, time.Hour, time.Now()))
	require.NoError(t, err)

	verifier, err := NewVerifier("HS256", testSecret, VerifyOptions{})
	require.NoError(t, err)

	_, err = verifier.Verify(token, TokenTypeAccess)
	require.Error(t, err)
}

func TestHMACVariants(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			signer, err := NewSigner(alg, testSecret)
			require.NoError(t, err)
			require.Equal(t, alg, signer.Alg())

			verifier, err := NewVerifier(alg, testSecret, VerifyOptions{})
			require.NoError(t, err)

			token, err := signer.Sign(NewClaims("usr_1", TokenTypeRefresh, time.Hour, time.Now()))
			require.NoError(t, err)

			claims, err := verifier.Verify(token, TokenTypeRefresh)
			require.NoError(t, err)
			require.Equal(t, "usr_1", claims.Subject)
		})
	}
}

func TestNewSigner_Rejections(t *testing.T) {
	_, err := NewSigner("RS256", testSecret)
	require.ErrorIs(t, err, ErrUnsupportedAlg)

	_, err = NewSigner("none", testSecret)
	require.ErrorIs(t, err, ErrUnsupportedAlg)

	_, err = NewSigner("HS256", nil)
	require.Error(t, err)
}

func tamperLastByte(token string) string {
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	return token[:len(token)-1] + string(replacement)
}
