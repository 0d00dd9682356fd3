// Package services определяет интерфейсы сервисов HTTP-слоя.
package services

import (
	"context"

	"lifebook/internal/gateway/app/dto"
)

// AuthService определяет интерфейс для работы с сервисом авторизации.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)

	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)

	RefreshTokens(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)

	// Logout отзывает refresh токен. Если передан действительный access токен,
	// дополнительно закрывается сессия дневника пользователя.
	Logout(ctx context.Context, req *dto.LogoutRequest, accessToken string) error

	GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
}
