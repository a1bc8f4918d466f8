package auth

import (
	"context"
	"testing"
	"time"

	"github.com/agencydesk/backend/internal/domain/identity"
	"github.com/agencydesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "test-secret-key-for-sessions-0123456789",
		Expiration: time.Hour,
		Issuer:     "agencydesk-test",
	}
}

func testUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Admin", "", "admin@agencydesk.local", "password123")
	require.NoError(t, err)
	user.ID = 7
	return user
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := NewJWTService(testJWTConfig(), nil)
	user := testUser(t)

	token, expiresAt, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "admin@agencydesk.local", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
}

func TestJWTService_Validate_Rejections(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		svc := NewJWTService(testJWTConfig(), nil)

		_, err := svc.Validate(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := testJWTConfig()
		other.Secret = "a-completely-different-secret-value-42"
		token, _, err := NewJWTService(other, nil).Issue(testUser(t))
		require.NoError(t, err)

		_, err = NewJWTService(testJWTConfig(), nil).Validate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.Expiration = -time.Minute
		svc := NewJWTService(cfg, nil)

		token, _, err := svc.Issue(testUser(t))
		require.NoError(t, err)

		_, err = svc.Validate(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects revoked token", func(t *testing.T) {
		revoker := NewInMemoryTokenBlacklist()
		svc := NewJWTService(testJWTConfig(), revoker)

		token, _, err := svc.Issue(testUser(t))
		require.NoError(t, err)

		claims, err := svc.Validate(context.Background(), token)
		require.NoError(t, err)

		require.NoError(t, revoker.Revoke(context.Background(), claims.TokenID, claims.ExpiresAt))

		_, err = svc.Validate(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	revoked, err := blacklist.IsRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// an entry past its TTL is treated as not revoked
	require.NoError(t, blacklist.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))
	revoked, err = blacklist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
