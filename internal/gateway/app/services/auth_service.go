// Package services реализует сервисы HTTP-слоя поверх прикладных портов.
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	authdomain "lifebook/internal/auth/domain/services"
	authapi "lifebook/internal/auth/ports/api"
	authservices "lifebook/internal/auth/ports/services"
	"lifebook/internal/gateway/app/dto"
	"lifebook/internal/gateway/ports/services"
	"lifebook/pkg/logger"
)

// Константы для логирования.
const (
	LogRegisterUser  = "registering user"
	LogLoginUser     = "logging user in"
	LogRefreshTokens = "refreshing tokens" // #nosec G101 - not a credential
	LogLogoutUser    = "logging user out"
	LogGetProfile    = "getting user profile"

	ErrCtxRegister      = "registering user"
	ErrCtxLogin         = "logging in"
	ErrCtxRefreshTokens = "refreshing tokens"
	ErrCtxLogout        = "logging out"
	ErrCtxGetProfile    = "getting user profile"
)

// SessionRegistry закрывает сессию дневника пользователя при выходе из системы.
type SessionRegistry interface {
	Drop(userID string)
}

// AuthServiceImpl реализует интерфейс services.AuthService.
type AuthServiceImpl struct {
	auth     authapi.AuthUseCase
	users    authapi.UserUseCase
	tokens   authservices.TokenService
	sessions SessionRegistry
}

// NewAuthService создает новый сервис авторизации HTTP-слоя.
func NewAuthService(
	auth authapi.AuthUseCase,
	users authapi.UserUseCase,
	tokens authservices.TokenService,
	sessions SessionRegistry,
) services.AuthService {
	return &AuthServiceImpl{
		auth:     auth,
		users:    users,
		tokens:   tokens,
		sessions: sessions,
	}
}

// Register регистрирует нового пользователя и возвращает пару токенов.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "auth"), zap.String("email", req.Email))
	log.Debug(ctx, LogRegisterUser)

	pair, err := s.auth.Register(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCtxRegister, err)
	}

	return tokenPairToResponse(pair), nil
}

// Login выполняет вход пользователя.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "auth"), zap.String("email", req.Email))
	log.Debug(ctx, LogLoginUser)

	pair, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCtxLogin, err)
	}

	return tokenPairToResponse(pair), nil
}

// RefreshTokens обновляет пару токенов по refresh токену.
func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "auth"))
	log.Debug(ctx, LogRefreshTokens)

	pair, err := s.auth.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCtxRefreshTokens, err)
	}

	return tokenPairToResponse(pair), nil
}

// Logout отзывает refresh токен пользователя. Если вместе с запросом передан
// действительный access токен, закрывается и сессия дневника.
func (s *AuthServiceImpl) Logout(ctx context.Context, req *dto.LogoutRequest, accessToken string) error {
	log := logger.Log(ctx).With(zap.String("service", "auth"))
	log.Debug(ctx, LogLogoutUser)

	if err := s.auth.Logout(ctx, req.RefreshToken); err != nil {
		return fmt.Errorf("%s: %w", ErrCtxLogout, err)
	}

	if accessToken != "" {
		if userID, err := s.tokens.ValidateAccessToken(ctx, accessToken); err == nil {
			s.sessions.Drop(userID)
		}
	}

	return nil
}

// GetUserProfile возвращает профиль пользователя.
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	log := logger.Log(ctx).With(zap.String("service", "auth"), zap.String("userID", userID))
	log.Debug(ctx, LogGetProfile)

	user, err := s.users.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCtxGetProfile, err)
	}

	return &dto.UserProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

// tokenPairToResponse преобразует доменную пару токенов в DTO.
func tokenPairToResponse(pair *authdomain.TokenPair) *dto.TokenResponse {
	return &dto.TokenResponse{
		UserID:       pair.UserID,
		Username:     pair.Username,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}
