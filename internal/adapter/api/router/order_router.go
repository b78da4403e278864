package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/handler"
	"tripcollab/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:orderId", orderHandler.GetOrder)

	orders.POST("/:orderId/start", orderHandler.StartWork, roleMiddleware.CreatorOnly)
	orders.POST("/:orderId/deliverables", orderHandler.AddDeliverable, roleMiddleware.CreatorOnly)
	orders.POST("/:orderId/deliverables/upload-url", orderHandler.CreateDeliverableUploadURL, roleMiddleware.CreatorOnly)
	orders.POST("/:orderId/complete", orderHandler.CompleteOrder, roleMiddleware.CreatorOnly)
}
