package handler

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/internal/infrastructure/firebase"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/response"
)

// DevTokenHandler mints ID tokens for local testing. Only wired up when the
// environment is development.
type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	userRepo     repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
	}
}

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) {
	devTokenHandler = NewDevTokenHandler(firebaseAuth, userRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) tokenForRole(c echo.Context, role string) error {
	users, _, err := h.userRepo.ListByRole(c.Request().Context(), role, 1, 0)
	if err != nil {
		return response.Error(c, err)
	}
	if len(users) == 0 {
		return response.Error(c, errors.NotFound("User with role "+role, nil))
	}

	token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), users[0].ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":           users[0].ID,
			"email":        users[0].Email,
			"display_name": users[0].DisplayName,
			"role":         users[0].Role,
		},
	})
}

// GenerateCreatorToken returns a token for the first creator account.
func (h *DevTokenHandler) GenerateCreatorToken(c echo.Context) error {
	return h.tokenForRole(c, entity.RoleCreator)
}

// GenerateBrandToken returns a token for the first brand account.
func (h *DevTokenHandler) GenerateBrandToken(c echo.Context) error {
	return h.tokenForRole(c, entity.RoleBrand)
}
