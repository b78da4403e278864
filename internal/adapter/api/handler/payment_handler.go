package handler

import (
	"github.com/labstack/echo/v4"

	"tripcollab/internal/usecase"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/logger"
	"tripcollab/pkg/response"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

// CreateCheckout opens a hosted checkout session for the order.
func (h *PaymentHandler) CreateCheckout(c echo.Context) error {
	uid := c.Get("uid").(string)

	checkout, err := h.paymentUseCase.CreateCheckout(c.Request().Context(), uid, c.Param("orderId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, checkout)
}

// HandleNotification is the payment gateway webhook. It is unauthenticated;
// the notification signature is the trust anchor.
func (h *PaymentHandler) HandleNotification(c echo.Context) error {
	var notification map[string]interface{}
	if err := c.Bind(&notification); err != nil {
		return response.Error(c, errors.BadRequest("Invalid notification payload", err))
	}

	logger.Info("Payment notification received for order %v", notification["order_id"])

	if err := h.paymentUseCase.HandleNotification(c.Request().Context(), notification); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "ok"})
}

// SyncStatus lets the redirect landing page poll the gateway when the
// webhook has not landed yet.
func (h *PaymentHandler) SyncStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.paymentUseCase.SyncPaymentStatus(c.Request().Context(), uid, c.Param("orderId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}
