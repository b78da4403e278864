package usecase

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"time"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/internal/domain/service"
	ws "tripcollab/internal/infrastructure/websocket"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/logger"
)

type PaymentUseCase struct {
	orderRepo      repository.OrderRepository
	threadRepo     repository.ThreadRepository
	userRepo       repository.UserRepository
	paymentService service.PaymentService
	wsManager      *ws.Manager
	serverKey      string
}

func NewPaymentUseCase(
	orderRepo repository.OrderRepository,
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	paymentService service.PaymentService,
	wsManager *ws.Manager,
	serverKey string,
) *PaymentUseCase {
	return &PaymentUseCase{
		orderRepo:      orderRepo,
		threadRepo:     threadRepo,
		userRepo:       userRepo,
		paymentService: paymentService,
		wsManager:      wsManager,
		serverKey:      serverKey,
	}
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// CreateCheckout opens a hosted checkout session for a pending order. Brand
// only. Calling it again before paying reuses the stored session.
func (uc *PaymentUseCase) CreateCheckout(ctx context.Context, brandID, orderID string) (*CheckoutResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BrandID != brandID {
		return nil, errors.Forbidden("Only the brand on this order can pay", nil)
	}
	if order.Status != entity.OrderStatusPending {
		return nil, errors.Conflict("Order is not awaiting payment")
	}

	if order.MidtransToken != "" {
		return &CheckoutResponse{
			OrderID:     order.ID,
			Token:       order.MidtransToken,
			RedirectURL: order.MidtransRedirectURL,
		}, nil
	}

	brand, err := uc.userRepo.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}

	itemName := order.Description
	if itemName == "" {
		itemName = "Collaboration with creator"
	}
	resp, err := uc.paymentService.CreatePayment(ctx, service.PaymentGatewayRequest{
		OrderID: order.ID,
		Amount:  order.Amount,
		CustomerDetails: service.CustomerDetails{
			FirstName: brand.DisplayName,
			Email:     brand.Email,
		},
		ItemDetails: []service.PaymentItemDetail{{
			ID:       order.ID,
			Price:    order.Amount,
			Quantity: 1,
			Name:     itemName,
			Category: "collaboration",
		}},
	})
	if err != nil {
		return nil, errors.Internal("Failed to create checkout session", err)
	}

	order.MidtransToken = resp.Token
	order.MidtransRedirectURL = resp.RedirectURL
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return &CheckoutResponse{
		OrderID:     order.ID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// HandleNotification processes a payment gateway webhook. The signature is
// verified before anything is trusted; a successful payment moves the order
// to paid and flips the originating offer message.
func (uc *PaymentUseCase) HandleNotification(ctx context.Context, notification map[string]interface{}) error {
	if !uc.verifySignature(notification) {
		return errors.Unauthorized("Invalid notification signature", nil)
	}

	result, err := uc.paymentService.HandleCallback(ctx, notification)
	if err != nil {
		return errors.BadRequest("Malformed payment notification", err)
	}

	order, err := uc.orderRepo.GetByID(ctx, result.OrderID)
	if err != nil {
		return err
	}

	switch result.Status {
	case "success":
		return uc.markPaid(ctx, order, result.PaymentType)
	case "failure":
		logger.Warn("Payment failed for order %s", order.ID)
		return nil
	default:
		logger.Info("Payment pending for order %s", order.ID)
		return nil
	}
}

// markPaid is idempotent: a duplicate settlement notification for an already
// paid order is acknowledged without side effects.
func (uc *PaymentUseCase) markPaid(ctx context.Context, order *entity.Order, paymentType string) error {
	if order.Status != entity.OrderStatusPending {
		logger.Info("Ignoring settlement for order %s in status %s", order.ID, order.Status)
		return nil
	}

	now := time.Now()
	order.Status = entity.OrderStatusPaid
	order.PaidAt = &now
	order.PaymentType = paymentType
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	// The offer message mirrors the paid state so the conversation shows it
	// inline.
	if message, err := uc.threadRepo.FindOfferMessage(ctx, order.ThreadID, order.ID); err == nil {
		message.Offer.Status = entity.OfferStatusPaid
		if err := uc.threadRepo.UpdateMessage(ctx, order.ThreadID, message); err != nil {
			logger.Error("Failed to flip offer message for order %s: %v", order.ID, err)
		} else if uc.wsManager != nil {
			uc.wsManager.SendToThread(order.ThreadID, ws.NewEvent(ws.EventOfferUpdated, message))
		}
	}

	uc.announcePaid(ctx, order)
	return nil
}

func (uc *PaymentUseCase) announcePaid(ctx context.Context, order *entity.Order) {
	if thread, err := uc.threadRepo.GetByID(ctx, order.ThreadID); err == nil {
		message := &entity.Message{
			ThreadID:    thread.ID,
			SenderID:    "system",
			Type:        entity.MessageTypeSystem,
			Status:      "sent",
			SystemKind:  "payment_received",
			CreatorText: "Payment received. You can start working on the collaboration.",
			BrandText:   "Your payment was received. The creator can now start working.",
		}
		if err := uc.threadRepo.CreateMessage(ctx, message); err == nil {
			thread.LastMessage = "payment_received"
			thread.LastMessageAt = time.Now()
			_ = uc.threadRepo.Update(ctx, thread)
			if uc.wsManager != nil {
				uc.wsManager.SendToThread(thread.ID, ws.NewEvent(ws.EventMessageNew, message))
			}
		}
	}

	if uc.wsManager != nil {
		event := ws.NewEvent(ws.EventOrderUpdated, order)
		uc.wsManager.SendToUser(order.BrandID, event)
		uc.wsManager.SendToUser(order.CreatorID, event)
	}
}

// verifySignature checks the gateway's SHA-512 signature:
// sha512(order_id + status_code + gross_amount + server_key).
func (uc *PaymentUseCase) verifySignature(notification map[string]interface{}) bool {
	orderID, _ := notification["order_id"].(string)
	statusCode, _ := notification["status_code"].(string)
	grossAmount, _ := notification["gross_amount"].(string)
	signature, _ := notification["signature_key"].(string)
	if orderID == "" || signature == "" {
		return false
	}

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + uc.serverKey))
	return hex.EncodeToString(sum[:]) == signature
}

// SyncPaymentStatus queries the gateway directly, for the redirect landing
// page where the webhook may not have arrived yet.
func (uc *PaymentUseCase) SyncPaymentStatus(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BrandID != userID && order.CreatorID != userID {
		return nil, errors.Forbidden("You are not a party to this order", nil)
	}

	if order.Status != entity.OrderStatusPending {
		return order, nil
	}

	status, err := uc.paymentService.GetPaymentStatus(ctx, orderID)
	if err != nil {
		return nil, errors.Internal("Failed to query payment status", err)
	}
	if status.Status == "success" {
		if err := uc.markPaid(ctx, order, status.PaymentType); err != nil {
			return nil, err
		}
	}
	return order, nil
}
