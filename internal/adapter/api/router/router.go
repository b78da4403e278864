package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupDiscoveryRouter(e, authMiddleware)
	SetupTripRouter(e, authMiddleware, roleMiddleware)
	SetupThreadRouter(e, authMiddleware, roleMiddleware)
	SetupOrderRouter(e, authMiddleware, roleMiddleware)
	SetupPaymentRouter(e, authMiddleware, roleMiddleware)
	SetupWaitlistRouter(e)
	SetupHealthRouter(e)
}
