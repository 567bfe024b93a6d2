package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "planner", time.Hour)

	token, err := m.CreateToken("alice")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "planner", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "planner", time.Hour)
	token, err := m.CreateToken("alice")
	require.NoError(t, err)

	_, err = NewTokenManager("other", "planner", time.Hour).ValidateToken(token)
	assert.Error(t, err, "wrong secret")

	_, err = NewTokenManager("secret", "someone-else", time.Hour).ValidateToken(token)
	assert.Error(t, err, "wrong issuer")

	expired := NewTokenManager("secret", "planner", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.CreateToken("alice")
	require.NoError(t, err)
	_, err = m.ValidateToken(old)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "alice"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ValidateToken(unsigned)
	assert.Error(t, err, "alg none")

	_, err = m.ValidateToken("garbage")
	assert.Error(t, err)

	_, err = m.CreateToken("")
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.NoError(t, ComparePasswords(hash, "s3cret!"))
	assert.Error(t, ComparePasswords(hash, "wrong"))
}
