package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/dotmart/backend/internal/infrastructure/auth"
	"github.com/dotmart/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_AddToBlacklist(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Hour))

	isBlacklisted, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, isBlacklisted)

	isBlacklisted, err = blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, isBlacklisted)
}

func TestInMemoryTokenBlacklist_ExpirationCleanup(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-expire", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	isBlacklisted, err := blacklist.IsBlacklisted(ctx, "jti-expire")
	require.NoError(t, err)
	assert.False(t, isBlacklisted)
}

func TestInMemoryTokenBlacklist_UserTokenInvalidation(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()
	issuedAt := time.Now().Add(-time.Hour)

	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedAt)
	require.NoError(t, err)
	assert.False(t, invalidated)

	require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedAt)
	require.NoError(t, err)
	assert.True(t, invalidated)

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(2*time.Second))
	require.NoError(t, err)
	assert.False(t, invalidated)

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-2", issuedAt)
	require.NoError(t, err)
	assert.False(t, invalidated)
}

func TestTokenVerifier(t *testing.T) {
	ctx := context.Background()
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		AccessSecret:           "verifier-access-secret-32-chars!!",
		RefreshSecret:          "verifier-refresh-secret-32-chars!",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
	})
	verifier := auth.NewTokenVerifier(jwtSvc, auth.NewInMemoryTokenBlacklist())
	sub := auth.Subject{UserID: uuid.New(), Email: "jane@example.com", Role: "USER"}

	t.Run("accepts then rejects a revoked token", func(t *testing.T) {
		pair, err := jwtSvc.GenerateTokenPair(sub)
		require.NoError(t, err)

		claims, err := verifier.VerifyAccessToken(ctx, pair.AccessToken)
		require.NoError(t, err)

		require.NoError(t, verifier.RevokeToken(ctx, claims))
		_, err = verifier.VerifyAccessToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, auth.ErrTokenBlacklisted)
	})

	t.Run("revoking a user rejects earlier tokens", func(t *testing.T) {
		other := auth.Subject{UserID: uuid.New(), Email: "sam@example.com", Role: "USER"}
		pair, err := jwtSvc.GenerateTokenPair(other)
		require.NoError(t, err)

		require.NoError(t, verifier.RevokeUser(ctx, other.UserID))
		_, err = verifier.VerifyAccessToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, auth.ErrTokenBlacklisted)
	})

	t.Run("refresh token follows user revocation", func(t *testing.T) {
		other := auth.Subject{UserID: uuid.New(), Email: "kim@example.com", Role: "USER"}
		pair, err := jwtSvc.GenerateTokenPair(other)
		require.NoError(t, err)

		claims, err := verifier.VerifyRefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, other.UserID.String(), claims.Subject)

		_, err = verifier.VerifyRefreshToken(ctx, pair.AccessToken)
		assert.Error(t, err)

		require.NoError(t, verifier.RevokeUser(ctx, other.UserID))
		_, err = verifier.VerifyRefreshToken(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrTokenBlacklisted)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := verifier.VerifyAccessToken(ctx, "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestTokenBlacklist_Implementations(t *testing.T) {
	var _ auth.TokenBlacklist = (*auth.InMemoryTokenBlacklist)(nil)
	var _ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
}
