package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/handler"
	"tripcollab/internal/adapter/api/middleware"
)

func SetupTripRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	tripHandler := handler.GetTripHandler()

	trips := e.Group("/v1/trips")
	trips.Use(authMiddleware.Authenticate)
	trips.Use(roleMiddleware.CreatorOnly)

	trips.POST("", tripHandler.CreateTrip)
	trips.GET("", tripHandler.ListTrips)
	trips.GET("/:tripId", tripHandler.GetTrip)
	trips.PUT("/:tripId", tripHandler.UpdateTrip)
	trips.DELETE("/:tripId", tripHandler.DeleteTrip)
}
