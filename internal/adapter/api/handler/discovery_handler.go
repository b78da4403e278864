package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"tripcollab/internal/usecase"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/response"
	"tripcollab/pkg/utils"
)

type DiscoveryHandler struct {
	discoveryUseCase *usecase.DiscoveryUseCase
}

func NewDiscoveryHandler(discoveryUseCase *usecase.DiscoveryUseCase) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUseCase: discoveryUseCase,
	}
}

// SearchCreators powers the browse page. All filters are optional query
// params; dates use YYYY-MM-DD.
func (h *DiscoveryHandler) SearchCreators(c echo.Context) error {
	pagination := utils.GetPaginationParams(c, 20)

	input := usecase.CreatorSearchInput{
		Query:       c.QueryParam("q"),
		Destination: c.QueryParam("destination"),
		Country:     c.QueryParam("country"),
		Limit:       pagination.Limit,
		Offset:      pagination.Offset,
	}

	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid from date, use YYYY-MM-DD", err))
		}
		input.From = t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid to date, use YYYY-MM-DD", err))
		}
		input.To = t
	}

	results, total, err := h.discoveryUseCase.SearchCreators(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, results, total, pagination.Limit, pagination.Offset)
}

func (h *DiscoveryHandler) GetPublicProfile(c echo.Context) error {
	userID := c.Param("userId")

	profile, err := h.discoveryUseCase.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}
