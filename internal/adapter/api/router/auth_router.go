package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/handler"
	"tripcollab/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
