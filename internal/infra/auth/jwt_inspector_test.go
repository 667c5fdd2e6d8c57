package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	return token
}

func TestJWTInspector_ReadsExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signed(t, jwt.MapClaims{
		"sub":   "chef",
		"exp":   exp.Unix(),
		"roles": []string{"ROLE_COOK"},
	})

	claims, err := NewJWTInspector().Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "chef", claims.Subject)
	assert.Equal(t, []string{"ROLE_COOK"}, claims.Roles)
	require.NotNil(t, claims.Expiry())
	assert.True(t, exp.Equal(*claims.Expiry()))
}

func TestJWTInspector_ExpiredTokenStillParses(t *testing.T) {
	token := signed(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})

	claims, err := NewJWTInspector().Inspect(token)
	require.NoError(t, err)
	assert.True(t, claims.Expiry().Before(time.Now()))
}

func TestJWTInspector_NoExpiry(t *testing.T) {
	token := signed(t, jwt.MapClaims{"sub": "ann"})

	claims, err := NewJWTInspector().Inspect(token)
	require.NoError(t, err)
	assert.Nil(t, claims.Expiry())
}

func TestJWTInspector_OpaqueToken(t *testing.T) {
	_, err := NewJWTInspector().Inspect("opaque-session-token")
	assert.Error(t, err)
}
