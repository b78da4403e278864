package handler

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/usecase"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/response"
	"tripcollab/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
	maxUploadMB  int64
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase, maxUploadMB int64) *OrderHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 100
	}
	return &OrderHandler{
		orderUseCase: orderUseCase,
		maxUploadMB:  maxUploadMB,
	}
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c, 20)

	orders, total, err := h.orderUseCase.ListOrders(c.Request().Context(), uid, c.QueryParam("status"), pagination.Limit, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, orders, total, pagination.Limit, pagination.Offset)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), uid, c.Param("orderId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *OrderHandler) StartWork(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.StartWork(c.Request().Context(), uid, c.Param("orderId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

// AddDeliverable accepts a multipart file plus an optional caption field.
func (h *OrderHandler) AddDeliverable(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Deliverable file is required", err))
	}
	if fileHeader.Size > h.maxUploadMB*1024*1024 {
		return response.Error(c, errors.BadRequest("File exceeds the size limit", nil))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	order, err := h.orderUseCase.AddDeliverable(c.Request().Context(), uid, c.Param("orderId"), usecase.AddDeliverableInput{
		File:     src,
		FileType: fileHeader.Header.Get("Content-Type"),
		Filename: fileHeader.Filename,
		Caption:  c.FormValue("caption"),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, order)
}

type deliverableUploadURLRequest struct {
	FileType string `json:"file_type" validate:"required"`
}

// CreateDeliverableUploadURL hands the creator a signed URL for uploading a
// deliverable straight to storage.
func (h *OrderHandler) CreateDeliverableUploadURL(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req deliverableUploadURLRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	url, err := h.orderUseCase.CreateDeliverableUploadURL(c.Request().Context(), uid, c.Param("orderId"), req.FileType)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"upload_url": url})
}

func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.CompleteOrder(c.Request().Context(), uid, c.Param("orderId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}
