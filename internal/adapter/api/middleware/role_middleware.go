package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
)

// RoleMiddleware gates routes by marketplace role. It runs after
// AuthMiddleware, which has already put the uid in context.
type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

func (m *RoleMiddleware) require(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok || uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			user, err := m.userRepo.GetByID(c.Request().Context(), uid)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
			}
			if user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient role")
			}

			c.Set("role", user.Role)
			return next(c)
		}
	}
}

func (m *RoleMiddleware) CreatorOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(entity.RoleCreator)(next)
}

func (m *RoleMiddleware) BrandOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(entity.RoleBrand)(next)
}
