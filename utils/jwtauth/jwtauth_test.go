package jwtauth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adk-labs/platform/utils/jwtauth"
)

func TestSignAndVerify(t *testing.T) {
	signer := jwtauth.NewSigner("test-secret", 15*time.Minute)

	token, err := signer.Sign("acme", "user-1", "a@acme.test", "member", time.Now().UTC())
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "acme", claims.TenantID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, jwtauth.Issuer, claims.Issuer)
}

func TestVerifyRejections(t *testing.T) {
	signer := jwtauth.NewSigner("test-secret", 15*time.Minute)
	now := time.Now().UTC()

	t.Run("garbage token", func(t *testing.T) {
		_, err := signer.Verify("not-a-token")
		assert.ErrorIs(t, err, jwtauth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := signer.Sign("acme", "user-1", "", "", now)
		require.NoError(t, err)

		other := jwtauth.NewSigner("other-secret", 15*time.Minute)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, jwtauth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		short := jwtauth.NewSigner("test-secret", time.Minute)

		token, err := short.Sign("acme", "user-1", "", "", now.Add(-time.Hour))
		require.NoError(t, err)

		_, err = short.Verify(token)
		assert.ErrorIs(t, err, jwtauth.ErrInvalidToken)
	})
}
