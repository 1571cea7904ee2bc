package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
	assert.False(t, CheckPasswordHash("correct horse battery staple", "not-a-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWTToken("user-123", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := ParseJWTToken("definitely.not.ajwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWTTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("secret-a")
	token, err := GenerateJWTToken("user-123", "alice@example.com")
	require.NoError(t, err)

	SetJWTSecret("secret-b")
	_, err = ParseJWTToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractNameFromEmail(t *testing.T) {
	assert.Equal(t, "alice", ExtractNameFromEmail("alice@example.com"))
	assert.Equal(t, "bob.smith", ExtractNameFromEmail("bob.smith@mail.org"))
	assert.Equal(t, "noatsign", ExtractNameFromEmail("noatsign"))
}
