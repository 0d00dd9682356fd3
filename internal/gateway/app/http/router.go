// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	authservices "lifebook/internal/auth/ports/services"
	"lifebook/internal/gateway/app/http/auth"
	"lifebook/internal/gateway/app/http/diary"
	"lifebook/internal/gateway/app/http/middleware"
	"lifebook/internal/gateway/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	authService services.AuthService,
	diaryService services.DiaryService,
	tokens authservices.TokenService,
) {
	authHandler := auth.NewHandler(authService)
	diaryHandler := diary.NewHandler(diaryService)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/logout", authHandler.Logout)

	// Защищенные маршруты.
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(middleware.NewAuthMiddleware(tokens))
	userRoutes.Get("/profile", authHandler.GetProfile)

	diaryRoutes := apiV1.Group("/diary")
	diaryRoutes.Use(middleware.NewAuthMiddleware(tokens))
	diaryRoutes.Post("/draft", diaryHandler.DraftChanged)
	diaryRoutes.Get("/assistant", diaryHandler.AssistantState)
	diaryRoutes.Post("/entries", diaryHandler.SubmitEntry)
	diaryRoutes.Get("/entries", diaryHandler.ListEntries)
	diaryRoutes.Delete("/entries/:entry_id", diaryHandler.DeleteEntry)
	diaryRoutes.Delete("/entries", diaryHandler.DeleteAllEntries)
	diaryRoutes.Get("/moods", diaryHandler.MoodSeries)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
