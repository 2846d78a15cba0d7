package identity

import (
	"context"
	"testing"
	"time"

	"github.com/bizsuite/backend/internal/domain/identity"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/infrastructure/auth"
	"github.com/bizsuite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "auth-service-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "bizsuite-test",
		MaxRefreshCount:        5,
	})
}

func newAuthServiceForTest(userRepo *MockUserRepository) (*AuthService, *auth.JWTService, *auth.InMemoryTokenBlacklist) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(userRepo, jwtService, blacklist, zap.NewNop()), jwtService, blacklist
}

func createTestUser(t *testing.T, username, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		username,
		"Shop Owner",
		password,
	)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, jwtService, _ := newAuthServiceForTest(userRepo)

	user := createTestUser(t, "owner", "correct-horse")
	userRepo.On("FindByUsername", mock.Anything, "owner").Return(user, nil)

	result, err := service.Login(context.Background(), LoginInput{
		Username: "owner",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, user.TenantID, result.User.TenantID)

	claims, err := jwtService.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.TenantID.String(), claims.TenantID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, _, _ := newAuthServiceForTest(userRepo)

	user := createTestUser(t, "owner", "correct-horse")
	userRepo.On("FindByUsername", mock.Anything, "owner").Return(user, nil)

	_, err := service.Login(context.Background(), LoginInput{
		Username: "owner",
		Password: "wrong-password",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UnknownUserGetsSameError(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, _, _ := newAuthServiceForTest(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	_, err := service.Login(context.Background(), LoginInput{
		Username: "ghost",
		Password: "whatever-pass",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, _, _ := newAuthServiceForTest(userRepo)

	user := createTestUser(t, "owner", "correct-horse")
	user.Active = false
	userRepo.On("FindByUsername", mock.Anything, "owner").Return(user, nil)

	_, err := service.Login(context.Background(), LoginInput{
		Username: "owner",
		Password: "correct-horse",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_RefreshToken_RotatesPair(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, _, _ := newAuthServiceForTest(userRepo)

	user := createTestUser(t, "owner", "correct-horse")
	userRepo.On("FindByUsername", mock.Anything, "owner").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	login, err := service.Login(context.Background(), LoginInput{Username: "owner", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_RefreshToken_Revoked(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, jwtService, blacklist := newAuthServiceForTest(userRepo)

	user := createTestUser(t, "owner", "correct-horse")
	userRepo.On("FindByUsername", mock.Anything, "owner").Return(user, nil)

	login, err := service.Login(context.Background(), LoginInput{Username: "owner", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := jwtService.ValidateRefreshToken(login.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))

	_, err = service.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_RefreshToken_GarbageToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, _, _ := newAuthServiceForTest(userRepo)

	_, err := service.RefreshToken(context.Background(), RefreshTokenInput{
		RefreshToken: "not.a.token",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_Logout_BlacklistsBothTokens(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, jwtService, blacklist := newAuthServiceForTest(userRepo)

	user := createTestUser(t, "owner", "correct-horse")
	userRepo.On("FindByUsername", mock.Anything, "owner").Return(user, nil)

	login, err := service.Login(context.Background(), LoginInput{Username: "owner", Password: "correct-horse"})
	require.NoError(t, err)

	accessClaims, err := jwtService.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := jwtService.ValidateRefreshToken(login.RefreshToken)
	require.NoError(t, err)

	err = service.Logout(context.Background(), LogoutInput{
		AccessTokenJTI: accessClaims.ID,
		AccessTokenTTL: accessClaims.GetRemainingTTL(),
		RefreshToken:   login.RefreshToken,
		UserID:         user.ID,
		TenantID:       user.TenantID,
	})
	require.NoError(t, err)

	blacklisted, err := blacklist.IsBlacklisted(context.Background(), accessClaims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)

	blacklisted, err = blacklist.IsBlacklisted(context.Background(), refreshClaims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestAuthService_GetCurrentUser_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	service, _, _ := newAuthServiceForTest(userRepo)

	userID := uuid.New()
	userRepo.On("FindByID", mock.Anything, userID).Return(nil, nil)

	_, err := service.GetCurrentUser(context.Background(), userID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}
