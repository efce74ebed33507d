package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server_only_secret"))
	require.NoError(t, err)
	return token
}

func TestInspect_ValidCases(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	tests := []struct {
		name     string
		claims   jwt.MapClaims
		userID   string
		email    string
		identity string
	}{
		{
			name:     "numeric user id",
			claims:   jwt.MapClaims{"user_id": 42, "exp": exp.Unix()},
			userID:   "42",
			identity: "user #42",
		},
		{
			name:     "string user id with email",
			claims:   jwt.MapClaims{"user_id": "u-1", "email": "kim@example.com", "exp": exp.Unix()},
			userID:   "u-1",
			email:    "kim@example.com",
			identity: "kim@example.com",
		},
		{
			name:     "subject fallback",
			claims:   jwt.MapClaims{"sub": "77", "exp": exp.Unix()},
			userID:   "77",
			identity: "user #77",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := Inspect(sign(t, tt.claims))
			require.NoError(t, err)

			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.identity, claims.Identity())
			assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
			assert.False(t, claims.Expired(time.Now()))
		})
	}
}

func TestInspect_DoesNotNeedKeyAndAcceptsExpired(t *testing.T) {
	token := sign(t, jwt.MapClaims{"user_id": 1, "exp": time.Now().Add(-time.Hour).Unix()})

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.True(t, claims.Expired(time.Now()))
}

func TestInspect_InvalidTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "opaque token", token: "d41d8cd98f00b204e9800998ecf8427e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := Inspect(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestClaims_NoExpiry(t *testing.T) {
	claims, err := Inspect(sign(t, jwt.MapClaims{"user_id": 5}))
	require.NoError(t, err)

	assert.True(t, claims.ExpiresAt.IsZero())
	assert.False(t, claims.Expired(time.Now().Add(100*365*24*time.Hour)))
}

func TestClaims_IdentityUnknown(t *testing.T) {
	assert.Equal(t, "unknown user", (&Claims{}).Identity())
}
