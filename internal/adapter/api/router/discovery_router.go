package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/handler"
	"tripcollab/internal/adapter/api/middleware"
)

func SetupDiscoveryRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	discoveryHandler := handler.GetDiscoveryHandler()

	creators := e.Group("/v1/creators")
	creators.Use(authMiddleware.Authenticate)

	creators.GET("", discoveryHandler.SearchCreators)
	creators.GET("/:userId", discoveryHandler.GetPublicProfile)
}
