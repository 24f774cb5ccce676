package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("EMP002", "sarah@example.com", user.RoleEmployee)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), parsed, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, Claims{EmployeeID: "EMP002", Email: "sarah@example.com", Role: user.RoleEmployee}, claims)
	assert.False(t, claims.IsAdmin())

	typ, _ := parsed.Get(ClaimType)
	assert.Equal(t, TokenTypeAccess, typ)
}

func TestSSEToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresIn, err := svc.GenerateSSEToken("EMP001")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	id, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", id)

	access, _, err := svc.GenerateAccessToken("EMP001", "admin@geoattend.com", user.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err, "access tokens are not accepted on the stream")

	other := NewJWTService("other-secret", time.Hour)
	_, err = other.ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	token, _, err := svc.GenerateAccessToken("EMP001", "admin@geoattend.com", user.RoleAdmin)
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRevokeToken_PrunesExpired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	svc.revokedTokens["stale"] = time.Now().Add(-time.Minute).Unix()

	svc.RevokeToken("garbage")
	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked("garbage"))
}

func TestContextWithClaims(t *testing.T) {
	ctx := ContextWithClaims(context.Background(), Claims{EmployeeID: "EMP001", Email: "admin@geoattend.com", Role: user.RoleAdmin})
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	_, err = ClaimsFromContext(context.Background())
	assert.Error(t, err)

	bad := ContextWithClaims(context.Background(), Claims{EmployeeID: "EMP001", Role: "BOSS"})
	_, err = ClaimsFromContext(bad)
	assert.ErrorIs(t, err, ErrMissingClaims)
}
