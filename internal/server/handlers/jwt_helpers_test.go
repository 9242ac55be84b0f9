package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passvault/internal/models"
)

var alice = &models.Identity{ID: "user-1", Email: "alice@example.com"}

func TestGenerateAndValidateSessionToken(t *testing.T) {
	cfg := testJWTConfig()

	token, expiresAt, err := GenerateSessionToken(cfg, alice)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(cfg.SessionTTL), expiresAt, 2*time.Second)

	claims, err := ValidateSessionToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, alice, claims.Identity())
}

func TestValidateSessionToken_Invalid(t *testing.T) {
	cfg := testJWTConfig()

	expired := cfg
	expired.SessionTTL = -time.Minute
	expiredToken, _, err := GenerateSessionToken(expired, alice)
	require.NoError(t, err)

	otherSecret := cfg
	otherSecret.Secret = []byte("other-secret")
	foreignToken, _, err := GenerateSessionToken(otherSecret, alice)
	require.NoError(t, err)

	// Токен с алгоритмом none
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{
		UserID: "user-1",
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    tokenIssuer,
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "expired", token: expiredToken},
		{name: "wrong secret", token: foreignToken},
		{name: "none algorithm", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateSessionToken(cfg, tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestResolveSession(t *testing.T) {
	cfg := testJWTConfig()
	token, _, err := GenerateSessionToken(cfg, alice)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		claims, err := ResolveSession(cfg, req)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		claims, err := ResolveSession(cfg, req)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := ResolveSession(cfg, req)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("malformed header falls back to cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		claims, err := ResolveSession(cfg, req)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Email)
	})
}

func TestIdentityFromContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), &CustomClaims{UserID: "user-1", Email: "alice@example.com"})
	identity, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, alice, identity)
}
