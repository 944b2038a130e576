package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.GenerateToken("admin")
	require.NoError(t, err)

	subject, err := tokens.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestValidateTokenRejects(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	other, err := NewTokens("other-secret", time.Hour).GenerateToken("admin")
	require.NoError(t, err)
	_, err = tokens.ValidateToken(other)
	assert.Error(t, err)

	expired, err := NewTokens("test-secret", -time.Minute).GenerateToken("admin")
	require.NoError(t, err)
	_, err = tokens.ValidateToken(expired)
	assert.Error(t, err)

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := noRole.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = tokens.ValidateToken(signed)
	assert.Error(t, err)

	_, err = tokens.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("correct horse"))

	ok, err := p.Matches("correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches("wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = (&Password{}).Matches("anything")
	require.NoError(t, err)
	assert.False(t, ok)
}
