package router

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/handler"
)

func SetupDevRouter(e *echo.Echo, environment string) {
	if environment != "development" {
		return
	}
	devTokenHandler := handler.GetDevTokenHandler()

	e.GET("/_dev/token/creator", devTokenHandler.GenerateCreatorToken)
	e.GET("/_dev/token/brand", devTokenHandler.GenerateBrandToken)
}
