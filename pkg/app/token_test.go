package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerGenerateAndParse(t *testing.T) {
	manager := NewTokenManager(TokenConfig{
		SecretKey: "test-secret",
		Expiry:    time.Hour,
	})

	token, err := manager.Generate("session-1", "desktop", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	entity, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", entity.SessionID)
	assert.Equal(t, "desktop", entity.Client)
	assert.Equal(t, "127.0.0.1", entity.IP)
	assert.Equal(t, DefaultTokenIssuer, entity.Issuer)
}

func TestTokenManagerValidate(t *testing.T) {
	manager := NewTokenManager(TokenConfig{SecretKey: "test-secret"})

	token, err := manager.Generate("session-2", "mobile", "10.0.0.2")
	require.NoError(t, err)

	assert.NoError(t, manager.Validate(token))
	assert.Error(t, manager.Validate(token+"broken"))
	assert.Error(t, manager.Validate("not-a-token"))
}

func TestTokenManagerRejectsWrongKey(t *testing.T) {
	manager := NewTokenManager(TokenConfig{SecretKey: "key-a"})

	token, err := manager.Generate("session-3", "desktop", "127.0.0.1")
	require.NoError(t, err)

	_, err = ParseTokenWithKey(token, "key-b")
	assert.Error(t, err)

	entity, err := ParseTokenWithKey(token, "key-a")
	require.NoError(t, err)
	assert.Equal(t, "session-3", entity.SessionID)
}

func TestTokenManagerDefaults(t *testing.T) {
	manager := NewTokenManager(TokenConfig{SecretKey: "k"})
	assert.Equal(t, "k", manager.GetSecretKey())

	token, err := manager.Generate("session-4", "desktop", "")
	require.NoError(t, err)

	entity, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenIssuer, entity.Issuer)
	assert.True(t, entity.ExpiresAt.After(time.Now().Add(29*24*time.Hour)))
}
