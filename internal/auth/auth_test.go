package auth

import (
	"testing"

	"buspass_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
	assert.False(t, CheckPasswordHash("password123", "not-a-bcrypt-hash"))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
}

func TestGenerateAndParseToken(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "unit-test-secret"
	config.AppConfig.JWT.TTL = 60

	token, err := GenerateToken("user-42", "conductor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "conductor", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "unit-test-secret"
	config.AppConfig.JWT.TTL = 60

	token, err := GenerateToken("user-42", "passenger")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "another-secret"

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "unit-test-secret"

	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
