package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/handler"
	"tripcollab/internal/adapter/api/middleware"
)

func SetupThreadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	threadHandler := handler.GetThreadHandler()

	threads := e.Group("/v1/threads")
	threads.Use(authMiddleware.Authenticate)

	threads.POST("", threadHandler.CreateThread)
	threads.GET("", threadHandler.ListThreads)
	threads.GET("/:threadId/messages", threadHandler.ListMessages)
	threads.POST("/:threadId/messages", threadHandler.SendMessage)
	threads.POST("/:threadId/read", threadHandler.MarkRead)

	threads.POST("/:threadId/typing", threadHandler.SetTyping)
	threads.GET("/:threadId/typing", threadHandler.ListTyping)

	threads.POST("/:threadId/offers", threadHandler.SendOffer, roleMiddleware.BrandOnly)
	threads.POST("/:threadId/offers/:offerId/accept", threadHandler.AcceptOffer, roleMiddleware.CreatorOnly)
	threads.POST("/:threadId/offers/:offerId/reject", threadHandler.RejectOffer, roleMiddleware.CreatorOnly)
}
