package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "admin", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.TokenID())
	assert.True(t, claims.ExpiresIn() > 59*time.Minute)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	token, err := NewJWTManager("a", time.Hour).GenerateAccessToken(uuid.New(), "u", "cashier")
	require.NoError(t, err)

	_, err = NewJWTManager("b", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("s", -time.Minute)
	token, err := m.GenerateAccessToken(uuid.New(), "u", "cashier")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGeneratePRNumber(t *testing.T) {
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	n := GeneratePRNumber(at)

	assert.Regexp(t, regexp.MustCompile(`^PR-20240309-[0-9A-F]{8}$`), n)
	assert.NotEqual(t, n, GeneratePRNumber(at))
}
