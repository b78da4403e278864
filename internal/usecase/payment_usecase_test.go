package usecase

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcollab/internal/domain/entity"
	"tripcollab/pkg/errors"
)

const testServerKey = "SB-Mid-server-testkey"

func newPaymentFixture(t *testing.T) (*PaymentUseCase, *MessagingUseCase, *fakeOrderRepo, *fakeThreadRepo, *fakePaymentService) {
	t.Helper()

	userRepo := newFakeUserRepo(testCreator("creator-1"), testBrand("brand-1"))
	threadRepo := newFakeThreadRepo()
	tripRepo := newFakeTripRepo()
	orderRepo := newFakeOrderRepo()
	typingRepo := newFakeTypingRepo()
	gateway := &fakePaymentService{}

	messaging := NewMessagingUseCase(threadRepo, userRepo, tripRepo, orderRepo, typingRepo, nil)
	payments := NewPaymentUseCase(orderRepo, threadRepo, userRepo, gateway, nil, testServerKey)
	return payments, messaging, orderRepo, threadRepo, gateway
}

// acceptedOrder drives the messaging flow up to an accepted offer and
// returns the pending order.
func acceptedOrder(t *testing.T, messaging *MessagingUseCase) *entity.Order {
	t.Helper()
	ctx := context.Background()

	thread, err := messaging.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)

	offer, err := messaging.SendOffer(ctx, "brand-1", SendOfferInput{
		ThreadID:    thread.ID,
		Description: "Collab video",
		Price:       250000,
	})
	require.NoError(t, err)

	order, err := messaging.AcceptOffer(ctx, "creator-1", thread.ID, offer.Offer.OfferID)
	require.NoError(t, err)
	return order
}

func signedNotification(orderID, transactionStatus string) map[string]interface{} {
	statusCode := "200"
	grossAmount := "250000.00"
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))

	return map[string]interface{}{
		"order_id":           orderID,
		"status_code":        statusCode,
		"gross_amount":       grossAmount,
		"transaction_status": transactionStatus,
		"payment_type":       "credit_card",
		"signature_key":      hex.EncodeToString(sum[:]),
	}
}

func TestCreateCheckoutStoresSession(t *testing.T) {
	payments, messaging, orderRepo, _, gateway := newPaymentFixture(t)
	ctx := context.Background()
	order := acceptedOrder(t, messaging)

	checkout, err := payments.CreateCheckout(ctx, "brand-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, "snap-token", checkout.Token)
	assert.NotEmpty(t, checkout.RedirectURL)

	stored, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "snap-token", stored.MidtransToken)

	// A second call reuses the stored session instead of opening another.
	_, err = payments.CreateCheckout(ctx, "brand-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.createCalls)
}

func TestCreateCheckoutIsBrandOnly(t *testing.T) {
	payments, messaging, _, _, _ := newPaymentFixture(t)
	order := acceptedOrder(t, messaging)

	_, err := payments.CreateCheckout(context.Background(), "creator-1", order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSettlementNotificationMarksOrderPaid(t *testing.T) {
	payments, messaging, orderRepo, threadRepo, _ := newPaymentFixture(t)
	ctx := context.Background()
	order := acceptedOrder(t, messaging)

	require.NoError(t, payments.HandleNotification(ctx, signedNotification(order.ID, "settlement")))

	paid, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, "credit_card", paid.PaymentType)

	// The offer message in the conversation mirrors the paid state.
	offerMessage, err := threadRepo.FindOfferMessage(ctx, order.ThreadID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusPaid, offerMessage.Offer.Status)

	// And a payment system message landed in the thread.
	last := threadRepo.lastMessage(order.ThreadID)
	require.NotNil(t, last)
	assert.Equal(t, "payment_received", last.SystemKind)
}

func TestDuplicateSettlementIsIdempotent(t *testing.T) {
	payments, messaging, orderRepo, _, _ := newPaymentFixture(t)
	ctx := context.Background()
	order := acceptedOrder(t, messaging)

	notification := signedNotification(order.ID, "settlement")
	require.NoError(t, payments.HandleNotification(ctx, notification))

	paid, _ := orderRepo.GetByID(ctx, order.ID)
	firstPaidAt := *paid.PaidAt

	require.NoError(t, payments.HandleNotification(ctx, notification))
	paid, _ = orderRepo.GetByID(ctx, order.ID)
	assert.Equal(t, entity.OrderStatusPaid, paid.Status)
	assert.Equal(t, firstPaidAt, *paid.PaidAt)
}

func TestNotificationWithBadSignatureIsRejected(t *testing.T) {
	payments, messaging, orderRepo, _, _ := newPaymentFixture(t)
	ctx := context.Background()
	order := acceptedOrder(t, messaging)

	notification := signedNotification(order.ID, "settlement")
	notification["signature_key"] = "forged"

	err := payments.HandleNotification(ctx, notification)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	stored, _ := orderRepo.GetByID(ctx, order.ID)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
}

func TestFailureNotificationLeavesOrderPending(t *testing.T) {
	payments, messaging, orderRepo, _, _ := newPaymentFixture(t)
	ctx := context.Background()
	order := acceptedOrder(t, messaging)

	require.NoError(t, payments.HandleNotification(ctx, signedNotification(order.ID, "expire")))

	stored, _ := orderRepo.GetByID(ctx, order.ID)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
}

func TestSyncPaymentStatusPromotesPaidOrder(t *testing.T) {
	payments, messaging, orderRepo, _, gateway := newPaymentFixture(t)
	ctx := context.Background()
	order := acceptedOrder(t, messaging)

	gateway.status = "success"
	gateway.paymentType = "bank_transfer"

	_, err := payments.SyncPaymentStatus(ctx, "brand-1", order.ID)
	require.NoError(t, err)

	stored, _ := orderRepo.GetByID(ctx, order.ID)
	assert.Equal(t, entity.OrderStatusPaid, stored.Status)
	assert.Equal(t, "bank_transfer", stored.PaymentType)
}
