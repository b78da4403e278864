package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/handler"
	"tripcollab/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	payments := e.Group("/v1/payments")
	payments.POST("/:orderId/checkout", paymentHandler.CreateCheckout, authMiddleware.Authenticate, roleMiddleware.BrandOnly)
	payments.GET("/:orderId/status", paymentHandler.SyncStatus, authMiddleware.Authenticate)

	// Gateway webhook, authenticated by signature instead of a bearer token.
	e.POST("/v1/payments/notification", paymentHandler.HandleNotification)
}
