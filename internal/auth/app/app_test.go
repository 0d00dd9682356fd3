package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lifebook/internal/auth/app"
	"lifebook/internal/auth/domain/entities"
	"lifebook/internal/auth/domain/services"
)

const (
	ErrCreateUser        = "failed to create user"
	ErrFindUserByID      = "failed to find user by id"
	ErrFindUserByEmail   = "failed to find user by email"
	ErrUpdateUser        = "failed to update user"
	ErrDeleteUser        = "failed to delete user"
	ErrStoreRefreshToken = "failed to store refresh token"
	ErrFindToken         = "failed to find token"
	ErrRevokeToken       = "failed to revoke token"
	ErrRevokeUserTokens  = "failed to revoke user tokens"
	ErrCleanupTokens     = "failed to cleanup tokens"
	ErrFindUserTokens    = "failed to find user tokens"
)

var (
	ErrDatabaseOperation = errors.New("database error")
	ErrHashingFailure    = errors.New("hashing failure")
)

func TestRegister(t *testing.T) {
	testEmail := "test@example.com"
	testUsername := "testuser"
	testPassword := "password123"
	userID := "user-123"
	hashedPassword := "hashed_password"

	now := time.Now()
	accessExpiry := now.Add(15 * time.Minute)
	refreshExpiry := now.Add(7 * 24 * time.Hour)
	accessToken := "access-token-123"
	refreshToken := "refresh-token-456"

	createdUser := &entities.User{
		ID:           userID,
		Email:        testEmail,
		Username:     testUsername,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tests := []struct {
		name         string
		email        string
		username     string
		password     string
		setupMocks   func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService)
		expectedErr  error
		errorContext string
	}{
		{
			name:     "success - user registered and tokens issued",
			email:    testEmail,
			username: testUsername,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).
					Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == testEmail && u.Username == testUsername && u.PasswordHash == hashedPassword
				})).Return(createdUser, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, userID, testUsername).
					Return(accessToken, accessExpiry, nil).Once()
				tokenSvc.On("GenerateRefreshToken", mock.Anything, userID).
					Return(refreshToken, refreshExpiry, nil).Once()
				tokenRepo.On("StoreRefreshToken", mock.Anything, mock.MatchedBy(func(rt *services.RefreshToken) bool {
					return rt.UserID == userID && rt.Token == refreshToken && !rt.IsRevoked
				})).Return(nil).Once()
			},
		},
		{
			name:         "error - empty email",
			email:        "",
			username:     testUsername,
			password:     testPassword,
			setupMocks:   func(_ *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {},
			expectedErr:  entities.ErrInvalidEmail,
			errorContext: "validating email",
		},
		{
			name:         "error - malformed email",
			email:        "not-an-email",
			username:     testUsername,
			password:     testPassword,
			setupMocks:   func(_ *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {},
			expectedErr:  entities.ErrInvalidEmail,
			errorContext: "validating email",
		},
		{
			name:         "error - empty username",
			email:        testEmail,
			username:     "",
			password:     testPassword,
			setupMocks:   func(_ *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {},
			expectedErr:  entities.ErrEmptyUsername,
			errorContext: "validating username",
		},
		{
			name:         "error - password too short",
			email:        testEmail,
			username:     testUsername,
			password:     "a1",
			setupMocks:   func(_ *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {},
			expectedErr:  entities.ErrPasswordTooShort,
			errorContext: "validating password",
		},
		{
			name:         "error - password without digits",
			email:        testEmail,
			username:     testUsername,
			password:     "passwordonly",
			setupMocks:   func(_ *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {},
			expectedErr:  entities.ErrPasswordTooWeak,
			errorContext: "validating password",
		},
		{
			name:     "error - email already registered",
			email:    testEmail,
			username: testUsername,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(createdUser, nil).Once()
			},
			expectedErr:  services.ErrEmailAlreadyExists,
			errorContext: "email already registered",
		},
		{
			name:     "error - existing user lookup fails",
			email:    testEmail,
			username: testUsername,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, ErrDatabaseOperation).Once()
			},
			expectedErr:  ErrDatabaseOperation,
			errorContext: "checking existing user",
		},
		{
			name:     "error - password hashing fails",
			email:    testEmail,
			username: testUsername,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, passwordSvc *mockPasswordService, _ *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).
					Return("", ErrHashingFailure).Once()
			},
			expectedErr:  ErrHashingFailure,
			errorContext: "hashing password",
		},
		{
			name:     "error - user creation fails",
			email:    testEmail,
			username: testUsername,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, passwordSvc *mockPasswordService, _ *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).
					Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.Anything).
					Return(nil, ErrDatabaseOperation).Once()
			},
			expectedErr:  ErrDatabaseOperation,
			errorContext: "creating user",
		},
		{
			name:     "error - token generation fails after creation",
			email:    testEmail,
			username: testUsername,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).
					Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.Anything).
					Return(createdUser, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, userID, testUsername).
					Return("", time.Time{}, services.ErrTokenGenerationFailed).Once()
			},
			expectedErr:  services.ErrTokenGenerationFailed,
			errorContext: "generating tokens",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			tokenRepo := new(mockTokenRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			ttt.setupMocks(userRepo, tokenRepo, passwordSvc, tokenSvc)

			authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)
			tokenPair, err := authUseCase.Register(context.Background(), ttt.email, ttt.username, ttt.password)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Contains(t, err.Error(), ttt.errorContext)
				assert.Nil(t, tokenPair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, tokenPair)
				assert.Equal(t, userID, tokenPair.UserID)
				assert.Equal(t, testUsername, tokenPair.Username)
				assert.Equal(t, accessToken, tokenPair.AccessToken)
				assert.Equal(t, refreshToken, tokenPair.RefreshToken)
				assert.Equal(t, accessExpiry, tokenPair.ExpiresAt)
			}

			userRepo.AssertExpectations(t)
			tokenRepo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	testEmail := "test@example.com"
	testPassword := "password123"
	userID := "user-123"
	username := "testuser"
	hashedPassword := "hashed_password"

	now := time.Now()
	accessExpiry := now.Add(15 * time.Minute)
	refreshExpiry := now.Add(7 * 24 * time.Hour)
	accessToken := "access-token-123"
	refreshToken := "refresh-token-456"

	testUser := &entities.User{
		ID:           userID,
		Email:        testEmail,
		Username:     username,
		PasswordHash: hashedPassword,
	}

	tests := []struct {
		name         string
		setupMocks   func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService)
		expectedErr  error
		errorContext string
	}{
		{
			name: "success - valid credentials",
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(testUser, nil).Once()
				passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).
					Return(true, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, userID, username).
					Return(accessToken, accessExpiry, nil).Once()
				tokenSvc.On("GenerateRefreshToken", mock.Anything, userID).
					Return(refreshToken, refreshExpiry, nil).Once()
				tokenRepo.On("StoreRefreshToken", mock.Anything, mock.Anything).
					Return(nil).Once()
			},
		},
		{
			name: "error - unknown email maps to invalid credentials",
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr:  services.ErrInvalidCredentials,
			errorContext: "invalid credentials",
		},
		{
			name: "error - user lookup fails",
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, _ *mockPasswordService, _ *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, ErrDatabaseOperation).Once()
			},
			expectedErr:  ErrDatabaseOperation,
			errorContext: "finding user",
		},
		{
			name: "error - wrong password maps to invalid credentials",
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, passwordSvc *mockPasswordService, _ *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(testUser, nil).Once()
				passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).
					Return(false, nil).Once()
			},
			expectedErr:  services.ErrInvalidCredentials,
			errorContext: "invalid credentials",
		},
		{
			name: "error - password verification fails",
			setupMocks: func(userRepo *mockUserRepository, _ *mockTokenRepository, passwordSvc *mockPasswordService, _ *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(testUser, nil).Once()
				passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).
					Return(false, ErrHashingFailure).Once()
			},
			expectedErr:  ErrHashingFailure,
			errorContext: "verifying password",
		},
		{
			name: "error - storing refresh token fails",
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).
					Return(testUser, nil).Once()
				passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).
					Return(true, nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, userID, username).
					Return(accessToken, accessExpiry, nil).Once()
				tokenSvc.On("GenerateRefreshToken", mock.Anything, userID).
					Return(refreshToken, refreshExpiry, nil).Once()
				tokenRepo.On("StoreRefreshToken", mock.Anything, mock.Anything).
					Return(ErrDatabaseOperation).Once()
			},
			expectedErr:  ErrDatabaseOperation,
			errorContext: "generating tokens",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			tokenRepo := new(mockTokenRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			ttt.setupMocks(userRepo, tokenRepo, passwordSvc, tokenSvc)

			authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)
			tokenPair, err := authUseCase.Login(context.Background(), testEmail, testPassword)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Contains(t, err.Error(), ttt.errorContext)
				assert.Nil(t, tokenPair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, tokenPair)
				assert.Equal(t, userID, tokenPair.UserID)
				assert.Equal(t, accessToken, tokenPair.AccessToken)
				assert.Equal(t, refreshToken, tokenPair.RefreshToken)
			}

			userRepo.AssertExpectations(t)
			tokenRepo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}

func TestRefreshTokens(t *testing.T) {
	oldToken := "old-refresh-token"
	userID := "user-123"
	username := "testuser"

	now := time.Now()
	accessExpiry := now.Add(15 * time.Minute)
	refreshExpiry := now.Add(7 * 24 * time.Hour)
	newAccessToken := "new-access-token"
	newRefreshToken := "new-refresh-token"

	storedToken := &services.RefreshToken{
		ID:        "token-id-1",
		UserID:    userID,
		Token:     oldToken,
		ExpiresAt: refreshExpiry,
		IsRevoked: false,
	}

	revokedToken := &services.RefreshToken{
		ID:        "token-id-2",
		UserID:    userID,
		Token:     oldToken,
		ExpiresAt: refreshExpiry,
		IsRevoked: true,
	}

	testUser := &entities.User{
		ID:       userID,
		Username: username,
		Email:    "test@example.com",
	}

	tests := []struct {
		name         string
		setupMocks   func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, tokenSvc *mockTokenService)
		expectedErr  error
		errorContext string
	}{
		{
			name: "success - tokens rotated",
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, tokenSvc *mockTokenService) {
				tokenRepo.On("FindByToken", mock.Anything, oldToken).
					Return(storedToken, nil).Once()
				userRepo.On("FindByID", mock.Anything, userID).
					Return(testUser, nil).Once()
				tokenRepo.On("RevokeToken", mock.Anything, oldToken).
					Return(nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, userID, username).
					Return(newAccessToken, accessExpiry, nil).Once()
				tokenSvc.On("GenerateRefreshToken", mock.Anything, userID).
					Return(newRefreshToken, refreshExpiry, nil).Once()
				tokenRepo.On("StoreRefreshToken", mock.Anything, mock.Anything).
					Return(nil).Once()
			},
		},
		{
			name: "error - token not found",
			setupMocks: func(_ *mockUserRepository, tokenRepo *mockTokenRepository, _ *mockTokenService) {
				tokenRepo.On("FindByToken", mock.Anything, oldToken).
					Return(nil, ErrDatabaseOperation).Once()
			},
			expectedErr:  services.ErrInvalidRefreshToken,
			errorContext: "finding refresh token",
		},
		{
			name: "error - revoked token rejected",
			setupMocks: func(_ *mockUserRepository, tokenRepo *mockTokenRepository, _ *mockTokenService) {
				tokenRepo.On("FindByToken", mock.Anything, oldToken).
					Return(revokedToken, nil).Once()
			},
			expectedErr:  services.ErrRevokedRefreshToken,
			errorContext: "token revoked",
		},
		{
			name: "error - user lookup fails",
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, _ *mockTokenService) {
				tokenRepo.On("FindByToken", mock.Anything, oldToken).
					Return(storedToken, nil).Once()
				userRepo.On("FindByID", mock.Anything, userID).
					Return(nil, ErrDatabaseOperation).Once()
			},
			expectedErr:  ErrDatabaseOperation,
			errorContext: "finding user",
		},
		{
			name: "error - revoking old token fails",
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, _ *mockTokenService) {
				tokenRepo.On("FindByToken", mock.Anything, oldToken).
					Return(storedToken, nil).Once()
				userRepo.On("FindByID", mock.Anything, userID).
					Return(testUser, nil).Once()
				tokenRepo.On("RevokeToken", mock.Anything, oldToken).
					Return(ErrDatabaseOperation).Once()
			},
			expectedErr:  ErrDatabaseOperation,
			errorContext: "revoking old token",
		},
		{
			name: "error - new token generation fails",
			setupMocks: func(userRepo *mockUserRepository, tokenRepo *mockTokenRepository, tokenSvc *mockTokenService) {
				tokenRepo.On("FindByToken", mock.Anything, oldToken).
					Return(storedToken, nil).Once()
				userRepo.On("FindByID", mock.Anything, userID).
					Return(testUser, nil).Once()
				tokenRepo.On("RevokeToken", mock.Anything, oldToken).
					Return(nil).Once()
				tokenSvc.On("GenerateAccessToken", mock.Anything, userID, username).
					Return("", time.Time{}, services.ErrTokenGenerationFailed).Once()
			},
			expectedErr:  services.ErrTokenGenerationFailed,
			errorContext: "generating new tokens",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			tokenRepo := new(mockTokenRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			ttt.setupMocks(userRepo, tokenRepo, tokenSvc)

			authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)
			tokenPair, err := authUseCase.RefreshTokens(context.Background(), oldToken)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Contains(t, err.Error(), ttt.errorContext)
				assert.Nil(t, tokenPair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, tokenPair)
				assert.Equal(t, newAccessToken, tokenPair.AccessToken)
				assert.Equal(t, newRefreshToken, tokenPair.RefreshToken)
			}

			userRepo.AssertExpectations(t)
			tokenRepo.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}

func TestLogout(t *testing.T) {
	refreshToken := "refresh-token-123"
	userID := "user-123"

	storedToken := &services.RefreshToken{
		ID:     "token-id-1",
		UserID: userID,
		Token:  refreshToken,
	}

	tests := []struct {
		name         string
		setupMocks   func(tokenRepo *mockTokenRepository)
		expectedErr  error
		errorContext string
	}{
		{
			name: "success - token revoked",
			setupMocks: func(tokenRepo *mockTokenRepository) {
				tokenRepo.On("FindByToken", mock.Anything, refreshToken).
					Return(storedToken, nil).Once()
				tokenRepo.On("RevokeToken", mock.Anything, refreshToken).
					Return(nil).Once()
			},
		},
		{
			name: "success - revocation proceeds even when lookup fails",
			setupMocks: func(tokenRepo *mockTokenRepository) {
				tokenRepo.On("FindByToken", mock.Anything, refreshToken).
					Return(nil, ErrDatabaseOperation).Once()
				tokenRepo.On("RevokeToken", mock.Anything, refreshToken).
					Return(nil).Once()
			},
		},
		{
			name: "error - revocation fails",
			setupMocks: func(tokenRepo *mockTokenRepository) {
				tokenRepo.On("FindByToken", mock.Anything, refreshToken).
					Return(storedToken, nil).Once()
				tokenRepo.On("RevokeToken", mock.Anything, refreshToken).
					Return(ErrDatabaseOperation).Once()
			},
			expectedErr:  ErrDatabaseOperation,
			errorContext: "revoking token",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			tokenRepo := new(mockTokenRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			ttt.setupMocks(tokenRepo)

			authUseCase := app.NewAuthUseCase(userRepo, tokenRepo, passwordSvc, tokenSvc)
			err := authUseCase.Logout(context.Background(), refreshToken)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Contains(t, err.Error(), ttt.errorContext)
			} else {
				require.NoError(t, err)
			}

			tokenRepo.AssertExpectations(t)
		})
	}
}

func TestGetUserProfile(t *testing.T) {
	userID := "user-123"

	testUser := &entities.User{
		ID:       userID,
		Email:    "test@example.com",
		Username: "testuser",
	}

	tests := []struct {
		name         string
		userID       string
		setupMocks   func(userRepo *mockUserRepository)
		expectedErr  error
		errorContext string
	}{
		{
			name:   "success - profile returned",
			userID: userID,
			setupMocks: func(userRepo *mockUserRepository) {
				userRepo.On("FindByID", mock.Anything, userID).
					Return(testUser, nil).Once()
			},
		},
		{
			name:         "error - empty user id",
			userID:       "",
			setupMocks:   func(_ *mockUserRepository) {},
			expectedErr:  entities.ErrEmptyUserID,
			errorContext: "validating user ID",
		},
		{
			name:   "error - user not found",
			userID: userID,
			setupMocks: func(userRepo *mockUserRepository) {
				userRepo.On("FindByID", mock.Anything, userID).
					Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr:  entities.ErrUserNotFound,
			errorContext: "fetching user profile",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			ttt.setupMocks(userRepo)

			userUseCase := app.NewUserUseCase(userRepo)
			user, err := userUseCase.GetUserProfile(context.Background(), ttt.userID)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Contains(t, err.Error(), ttt.errorContext)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testUser, user)
			}

			userRepo.AssertExpectations(t)
		})
	}
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		err := args.Error(1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrCreateUser, err)
		}
		return nil, nil
	}
	return args.Get(0).(*entities.User), nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		err := args.Error(1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrFindUserByID, err)
		}
		return nil, nil
	}
	return args.Get(0).(*entities.User), nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		err := args.Error(1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrFindUserByEmail, err)
		}
		return nil, nil
	}
	return args.Get(0).(*entities.User), nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		err := args.Error(1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrUpdateUser, err)
		}
		return nil, nil
	}
	return args.Get(0).(*entities.User), nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if err := m.Called(ctx, id).Error(0); err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteUser, err)
	}
	return nil
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) StoreRefreshToken(ctx context.Context, token *services.RefreshToken) error {
	if err := m.Called(ctx, token).Error(0); err != nil {
		return fmt.Errorf("%s: %w", ErrStoreRefreshToken, err)
	}
	return nil
}

func (m *mockTokenRepository) FindByToken(ctx context.Context, token string) (*services.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		err := args.Error(1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrFindToken, err)
		}
		return nil, nil
	}
	return args.Get(0).(*services.RefreshToken), nil
}

func (m *mockTokenRepository) RevokeToken(ctx context.Context, token string) error {
	if err := m.Called(ctx, token).Error(0); err != nil {
		return fmt.Errorf("%s: %w", ErrRevokeToken, err)
	}
	return nil
}

func (m *mockTokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	if err := m.Called(ctx, userID).Error(0); err != nil {
		return fmt.Errorf("%s: %w", ErrRevokeUserTokens, err)
	}
	return nil
}

func (m *mockTokenRepository) CleanupExpiredTokens(ctx context.Context) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return fmt.Errorf("%s: %w", ErrCleanupTokens, err)
	}
	return nil
}

func (m *mockTokenRepository) FindUserTokens(ctx context.Context, userID string) ([]*services.RefreshToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		err := args.Error(1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrFindUserTokens, err)
		}
		return nil, nil
	}
	return args.Get(0).([]*services.RefreshToken), nil
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID, username string) (string, time.Time, error) {
	args := m.Called(ctx, userID, username)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
