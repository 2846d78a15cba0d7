package auth

import (
	"context"
	"testing"
	"time"

	"github.com/bizsuite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "bizsuite-test",
		MaxRefreshCount:        2,
	})
}

func newTokenInput() GenerateTokenInput {
	return GenerateTokenInput{
		TenantID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UserID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Username: "owner",
	}
}

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	service := newTestJWTService()
	input := newTokenInput()

	pair, err := service.GenerateTokenPair(input)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.TenantID.String(), claims.TenantID)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "owner", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	tenantID, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, input.TenantID, tenantID)
}

func TestJWTService_AccessTokenRejectedAsRefreshToken(t *testing.T) {
	service := newTestJWTService()

	pair, err := service.GenerateTokenPair(newTokenInput())
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_ValidateAccessToken_Garbage(t *testing.T) {
	service := newTestJWTService()

	_, err := service.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateAccessToken_WrongSecret(t *testing.T) {
	service := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "different-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "bizsuite-test",
	})

	pair, err := other.GenerateTokenPair(newTokenInput())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RefreshTokenPair_RotatesTokens(t *testing.T) {
	service := newTestJWTService()

	pair, err := service.GenerateTokenPair(newTokenInput())
	require.NoError(t, err)

	rotated, err := service.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	claims, err := service.ValidateAccessToken(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Username)
}

func TestJWTService_RefreshTokenPair_MaxRefreshExceeded(t *testing.T) {
	service := newTestJWTService()

	pair, err := service.GenerateTokenPair(newTokenInput())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		pair, err = service.RefreshTokenPair(pair.RefreshToken)
		require.NoError(t, err)
	}

	_, err = service.RefreshTokenPair(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "bizsuite-test",
	})

	pair, err := service.GenerateTokenPair(newTokenInput())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))

	blacklisted, err = blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestInMemoryTokenBlacklist_ExpiredEntryNotBlacklisted(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", -time.Second))

	blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
