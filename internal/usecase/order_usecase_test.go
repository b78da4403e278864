package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcollab/internal/domain/entity"
	"tripcollab/pkg/errors"
)

func newOrderFixture(t *testing.T) (*OrderUseCase, *PaymentUseCase, *MessagingUseCase, *fakeThreadRepo) {
	t.Helper()

	userRepo := newFakeUserRepo(testCreator("creator-1"), testBrand("brand-1"))
	threadRepo := newFakeThreadRepo()
	tripRepo := newFakeTripRepo()
	orderRepo := newFakeOrderRepo()
	typingRepo := newFakeTypingRepo()
	fileRepo := newFakeFileMetadataRepo()
	fileService := &fakeFileService{}
	gateway := &fakePaymentService{}

	messaging := NewMessagingUseCase(threadRepo, userRepo, tripRepo, orderRepo, typingRepo, nil)
	payments := NewPaymentUseCase(orderRepo, threadRepo, userRepo, gateway, nil, testServerKey)
	orders := NewOrderUseCase(orderRepo, threadRepo, userRepo, fileService, fileRepo, nil)
	return orders, payments, messaging, threadRepo
}

func paidOrder(t *testing.T, messaging *MessagingUseCase, payments *PaymentUseCase) *entity.Order {
	t.Helper()
	order := acceptedOrder(t, messaging)
	require.NoError(t, payments.HandleNotification(context.Background(), signedNotification(order.ID, "settlement")))
	return order
}

func TestStartWorkRequiresPaidOrder(t *testing.T) {
	orders, _, messaging, _ := newOrderFixture(t)
	ctx := context.Background()

	order := acceptedOrder(t, messaging)

	_, err := orders.StartWork(ctx, "creator-1", order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestFullCollaborationLifecycle(t *testing.T) {
	orders, payments, messaging, threadRepo := newOrderFixture(t)
	ctx := context.Background()

	order := paidOrder(t, messaging, payments)

	started, err := orders.StartWork(ctx, "creator-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)

	delivered, err := orders.AddDeliverable(ctx, "creator-1", order.ID, AddDeliverableInput{
		File:     strings.NewReader("video bytes"),
		FileType: "video/mp4",
		Filename: "lisbon-reel.mp4",
		Caption:  "Final cut",
	})
	require.NoError(t, err)
	require.Len(t, delivered.Deliverables, 1)
	assert.Equal(t, "lisbon-reel.mp4", delivered.Deliverables[0].FileName)

	completed, err := orders.CompleteOrder(ctx, "creator-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	// The thread carries the lifecycle system messages.
	last := threadRepo.lastMessage(order.ThreadID)
	require.NotNil(t, last)
	assert.Equal(t, "order_completed", last.SystemKind)
}

func TestCompleteRequiresDeliverable(t *testing.T) {
	orders, payments, messaging, _ := newOrderFixture(t)
	ctx := context.Background()

	order := paidOrder(t, messaging, payments)
	_, err := orders.StartWork(ctx, "creator-1", order.ID)
	require.NoError(t, err)

	_, err = orders.CompleteOrder(ctx, "creator-1", order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestBrandCannotDriveCreatorTransitions(t *testing.T) {
	orders, payments, messaging, _ := newOrderFixture(t)
	ctx := context.Background()

	order := paidOrder(t, messaging, payments)

	_, err := orders.StartWork(ctx, "brand-1", order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = orders.AddDeliverable(ctx, "brand-1", order.ID, AddDeliverableInput{
		File:     strings.NewReader("x"),
		FileType: "image/png",
		Filename: "fake.png",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeliverableUploadURLFollowsDeliveryGating(t *testing.T) {
	orders, payments, messaging, _ := newOrderFixture(t)
	ctx := context.Background()

	order := acceptedOrder(t, messaging)

	// Not payable yet, so no upload URL either.
	_, err := orders.CreateDeliverableUploadURL(ctx, "creator-1", order.ID, "video/mp4")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))

	require.NoError(t, payments.HandleNotification(ctx, signedNotification(order.ID, "settlement")))

	url, err := orders.CreateDeliverableUploadURL(ctx, "creator-1", order.ID, "video/mp4")
	require.NoError(t, err)
	assert.Contains(t, url, "deliveries/"+order.ID)

	_, err = orders.CreateDeliverableUploadURL(ctx, "brand-1", order.ID, "video/mp4")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestOutsiderCannotSeeOrder(t *testing.T) {
	orders, _, messaging, _ := newOrderFixture(t)
	ctx := context.Background()

	order := acceptedOrder(t, messaging)

	_, err := orders.GetOrder(ctx, "someone-else", order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
