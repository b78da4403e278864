package handler

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/usecase"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
	maxUploadMB int64
}

func NewUserHandler(userUseCase *usecase.UserUseCase, maxUploadMB int64) *UserHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &UserHandler{
		userUseCase: userUseCase,
		maxUploadMB: maxUploadMB,
	}
}

type socialLinksRequest struct {
	Instagram string `json:"instagram" validate:"omitempty,url"`
	TikTok    string `json:"tiktok" validate:"omitempty,url"`
	YouTube   string `json:"youtube" validate:"omitempty,url"`
	Website   string `json:"website" validate:"omitempty,url"`
}

type collabPackageRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type updateCreatorProfileRequest struct {
	DisplayName string                 `json:"display_name" validate:"required,min=2"`
	Bio         string                 `json:"bio" validate:"omitempty,max=1000"`
	HomeCountry string                 `json:"home_country" validate:"omitempty,max=100"`
	Niche       string                 `json:"niche" validate:"omitempty,max=100"`
	Socials     *socialLinksRequest    `json:"socials"`
	Packages    []collabPackageRequest `json:"packages" validate:"omitempty,dive"`
	RatePerPost float64                `json:"rate_per_post" validate:"omitempty,gt=0"`
}

type updateBrandProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2"`
	Bio         string `json:"bio" validate:"omitempty,max=1000"`
	HomeCountry string `json:"home_country" validate:"omitempty,max=100"`
	CompanyName string `json:"company_name" validate:"required,min=2"`
	Website     string `json:"website" validate:"omitempty,url"`
	Industry    string `json:"industry" validate:"omitempty,max=100"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) UpdateCreatorProfile(c echo.Context) error {
	var req updateCreatorProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	input := usecase.UpdateCreatorProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		HomeCountry: req.HomeCountry,
		Niche:       req.Niche,
		RatePerPost: req.RatePerPost,
	}
	if req.Socials != nil {
		input.Socials = &entity.SocialLinks{
			Instagram: req.Socials.Instagram,
			TikTok:    req.Socials.TikTok,
			YouTube:   req.Socials.YouTube,
			Website:   req.Socials.Website,
		}
	}
	for _, p := range req.Packages {
		input.Packages = append(input.Packages, entity.CollabPackage{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
		})
	}

	user, err := h.userUseCase.UpdateCreatorProfile(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) UpdateBrandProfile(c echo.Context) error {
	var req updateBrandProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateBrandProfile(c.Request().Context(), uid, usecase.UpdateBrandProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		HomeCountry: req.HomeCountry,
		CompanyName: req.CompanyName,
		Website:     req.Website,
		Industry:    req.Industry,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

// UploadProfileImage accepts a multipart image and stores it as the avatar
// or brand logo depending on the caller's role.
func (h *UserHandler) UploadProfileImage(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Image file is required", err))
	}
	if fileHeader.Size > h.maxUploadMB*1024*1024 {
		return response.Error(c, errors.BadRequest("Image exceeds the size limit", nil))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif":
	default:
		return response.Error(c, errors.BadRequest("Only JPEG, PNG and GIF images are allowed", nil))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	user, err := h.userUseCase.UploadProfileImage(c.Request().Context(), uid, src, contentType, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
