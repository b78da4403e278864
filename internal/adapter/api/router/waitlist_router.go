package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/handler"
)

func SetupWaitlistRouter(e *echo.Echo) {
	waitlistHandler := handler.GetWaitlistHandler()

	e.POST("/v1/waitlist", waitlistHandler.Join)
	e.POST("/v1/waitlist/creator", waitlistHandler.JoinCreator)
	e.POST("/v1/waitlist/brand", waitlistHandler.JoinBrand)
	e.POST("/v1/quick-signup", waitlistHandler.QuickSignup)
}
