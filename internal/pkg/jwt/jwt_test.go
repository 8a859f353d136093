package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	token, expiresAt, err := svc.GenerateAccessToken("dashboard")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", parsed.Subject())

	tokenType, ok := parsed.Get("type")
	require.True(t, ok)
	assert.Equal(t, TokenTypeAccess, tokenType)
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "forever")

	_, _, err := svc.GenerateAccessToken("dashboard")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	token, _, err := svc.GenerateAccessToken("dashboard")
	require.NoError(t, err)
	other, _, err := svc.GenerateAccessToken("other")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
	assert.False(t, svc.IsTokenRevoked(other))
}

func TestRevokeToken_PrunesExpiredEntries(t *testing.T) {
	svc := NewJWTService(testSecret, "1h").(*JWTService)

	svc.revokedTokens["stale"] = time.Now().Add(-time.Minute).Unix()
	svc.RevokeToken("not-a-jwt")

	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked("not-a-jwt"))
}
