package handler

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/usecase"
	"tripcollab/pkg/response"
)

type WaitlistHandler struct {
	waitlistUseCase *usecase.WaitlistUseCase
	authUseCase     *usecase.AuthUseCase
}

func NewWaitlistHandler(waitlistUseCase *usecase.WaitlistUseCase, authUseCase *usecase.AuthUseCase) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistUseCase: waitlistUseCase,
		authUseCase:     authUseCase,
	}
}

type joinWaitlistRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"omitempty,min=2"`
	Role    string `json:"role" validate:"required,oneof=creator brand"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Socials string `json:"socials" validate:"omitempty,max=500"`
	Source  string `json:"source" validate:"omitempty,max=100"`
}

// Join is the public landing-page signup with the role in the body.
func (h *WaitlistHandler) Join(c echo.Context) error {
	var req joinWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	return h.join(c, req)
}

type joinRoleWaitlistRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"omitempty,min=2"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Socials string `json:"socials" validate:"omitempty,max=500"`
	Source  string `json:"source" validate:"omitempty,max=100"`
}

// JoinCreator and JoinBrand back the per-audience landing pages. The role
// comes from the route, not the payload.
func (h *WaitlistHandler) JoinCreator(c echo.Context) error {
	return h.joinWithRole(c, entity.RoleCreator)
}

func (h *WaitlistHandler) JoinBrand(c echo.Context) error {
	return h.joinWithRole(c, entity.RoleBrand)
}

func (h *WaitlistHandler) joinWithRole(c echo.Context, role string) error {
	var req joinRoleWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	return h.join(c, joinWaitlistRequest{
		Email:   req.Email,
		Name:    req.Name,
		Role:    role,
		Company: req.Company,
		Socials: req.Socials,
		Source:  req.Source,
	})
}

func (h *WaitlistHandler) join(c echo.Context, req joinWaitlistRequest) error {
	entry, err := h.waitlistUseCase.Join(c.Request().Context(), c.RealIP(), usecase.JoinWaitlistInput{
		Email:   req.Email,
		Name:    req.Name,
		Role:    req.Role,
		Company: req.Company,
		Socials: req.Socials,
		Source:  req.Source,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, entry)
}

type quickSignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required,min=2"`
	Role        string `json:"role" validate:"required,oneof=creator brand"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
}

// QuickSignup provisions a full account in one step instead of parking the
// visitor on the waitlist.
func (h *WaitlistHandler) QuickSignup(c echo.Context) error {
	var req quickSignupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"user":  result.User,
		"token": result.Token,
	})
}
