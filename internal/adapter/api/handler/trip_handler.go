package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"tripcollab/internal/usecase"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/response"
)

type TripHandler struct {
	tripUseCase *usecase.TripUseCase
}

func NewTripHandler(tripUseCase *usecase.TripUseCase) *TripHandler {
	return &TripHandler{
		tripUseCase: tripUseCase,
	}
}

type tripRequest struct {
	Destination string `json:"destination" validate:"required,min=2"`
	Country     string `json:"country" validate:"omitempty,max=100"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=planned active completed"`
}

func (r *tripRequest) toInput() (usecase.TripInput, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return usecase.TripInput{}, errors.BadRequest("Invalid start date, use YYYY-MM-DD", err)
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return usecase.TripInput{}, errors.BadRequest("Invalid end date, use YYYY-MM-DD", err)
	}

	return usecase.TripInput{
		Destination: r.Destination,
		Country:     r.Country,
		StartDate:   start,
		EndDate:     end,
		Notes:       r.Notes,
		Status:      r.Status,
	}, nil
}

func (h *TripHandler) CreateTrip(c echo.Context) error {
	var req tripRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input, err := req.toInput()
	if err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	trip, err := h.tripUseCase.CreateTrip(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, trip)
}

func (h *TripHandler) ListTrips(c echo.Context) error {
	uid := c.Get("uid").(string)

	trips, err := h.tripUseCase.ListTrips(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, trips)
}

func (h *TripHandler) GetTrip(c echo.Context) error {
	uid := c.Get("uid").(string)

	trip, err := h.tripUseCase.GetTrip(c.Request().Context(), uid, c.Param("tripId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, trip)
}

func (h *TripHandler) UpdateTrip(c echo.Context) error {
	var req tripRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input, err := req.toInput()
	if err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	trip, err := h.tripUseCase.UpdateTrip(c.Request().Context(), uid, c.Param("tripId"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, trip)
}

func (h *TripHandler) DeleteTrip(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.tripUseCase.DeleteTrip(c.Request().Context(), uid, c.Param("tripId")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "deleted"})
}
