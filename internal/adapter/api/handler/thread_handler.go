package handler

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/usecase"
	"tripcollab/pkg/response"
	"tripcollab/pkg/utils"
)

type ThreadHandler struct {
	messagingUseCase *usecase.MessagingUseCase
}

func NewThreadHandler(messagingUseCase *usecase.MessagingUseCase) *ThreadHandler {
	return &ThreadHandler{
		messagingUseCase: messagingUseCase,
	}
}

type createThreadRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type sendOfferRequest struct {
	TripID      string  `json:"trip_id" validate:"omitempty"`
	Description string  `json:"description" validate:"required,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type typingRequest struct {
	Typing bool `json:"typing"`
}

type markReadRequest struct {
	MessageID string `json:"message_id" validate:"required"`
}

func (h *ThreadHandler) CreateThread(c echo.Context) error {
	var req createThreadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	thread, err := h.messagingUseCase.GetOrCreateThread(c.Request().Context(), uid, req.UserID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, thread)
}

func (h *ThreadHandler) ListThreads(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c, 20)

	threads, total, err := h.messagingUseCase.ListThreads(c.Request().Context(), uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, threads, total, pagination.Limit, pagination.Offset)
}

func (h *ThreadHandler) ListMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c, 50)

	messages, total, err := h.messagingUseCase.ListMessages(c.Request().Context(), uid, c.Param("threadId"), pagination.Limit, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, messages, total, pagination.Limit, pagination.Offset)
}

func (h *ThreadHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	message, err := h.messagingUseCase.SendMessage(c.Request().Context(), uid, usecase.SendMessageInput{
		ThreadID: c.Param("threadId"),
		Content:  req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *ThreadHandler) SendOffer(c echo.Context) error {
	var req sendOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	message, err := h.messagingUseCase.SendOffer(c.Request().Context(), uid, usecase.SendOfferInput{
		ThreadID:    c.Param("threadId"),
		TripID:      req.TripID,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *ThreadHandler) AcceptOffer(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.messagingUseCase.AcceptOffer(c.Request().Context(), uid, c.Param("threadId"), c.Param("offerId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}

func (h *ThreadHandler) RejectOffer(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.messagingUseCase.RejectOffer(c.Request().Context(), uid, c.Param("threadId"), c.Param("offerId")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "rejected"})
}

func (h *ThreadHandler) SetTyping(c echo.Context) error {
	var req typingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	if err := h.messagingUseCase.SetTyping(c.Request().Context(), uid, c.Param("threadId"), req.Typing); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"typing": req.Typing})
}

func (h *ThreadHandler) ListTyping(c echo.Context) error {
	uid := c.Get("uid").(string)

	statuses, err := h.messagingUseCase.ListTyping(c.Request().Context(), uid, c.Param("threadId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, statuses)
}

func (h *ThreadHandler) MarkRead(c echo.Context) error {
	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	if err := h.messagingUseCase.MarkRead(c.Request().Context(), uid, c.Param("threadId"), req.MessageID); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "read"})
}
