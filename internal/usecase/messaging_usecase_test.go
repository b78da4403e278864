package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcollab/internal/domain/entity"
	"tripcollab/pkg/errors"
)

func newMessagingFixture(t *testing.T) (*MessagingUseCase, *fakeThreadRepo, *fakeOrderRepo, *fakeTripRepo) {
	t.Helper()

	userRepo := newFakeUserRepo(testCreator("creator-1"), testBrand("brand-1"), testBrand("brand-2"))
	threadRepo := newFakeThreadRepo()
	tripRepo := newFakeTripRepo()
	orderRepo := newFakeOrderRepo()
	typingRepo := newFakeTypingRepo()

	uc := NewMessagingUseCase(threadRepo, userRepo, tripRepo, orderRepo, typingRepo, nil)
	return uc, threadRepo, orderRepo, tripRepo
}

func TestGetOrCreateThreadIsDeterministic(t *testing.T) {
	uc, _, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	first, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)

	// Same pair from the other side converges on the same thread.
	second, err := uc.GetOrCreateThread(ctx, "creator-1", "brand-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, entity.ThreadIDFor("brand-1", "creator-1"), first.ID)
}

func TestGetOrCreateThreadRejectsSameRolePair(t *testing.T) {
	uc, _, _, _ := newMessagingFixture(t)

	_, err := uc.GetOrCreateThread(context.Background(), "brand-1", "brand-2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendOfferRequiresBrand(t *testing.T) {
	uc, _, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)

	_, err = uc.SendOffer(ctx, "creator-1", SendOfferInput{
		ThreadID:    thread.ID,
		Description: "Reel from my own trip",
		Price:       100,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendOfferSnapshotsTrip(t *testing.T) {
	uc, _, _, tripRepo := newMessagingFixture(t)
	ctx := context.Background()

	trip := &entity.Trip{
		CreatorID:   "creator-1",
		Destination: "Lisbon",
		Country:     "Portugal",
		StartDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		Status:      entity.TripStatusPlanned,
	}
	require.NoError(t, tripRepo.Create(ctx, trip))

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)

	message, err := uc.SendOffer(ctx, "brand-1", SendOfferInput{
		ThreadID:    thread.ID,
		TripID:      trip.ID,
		Description: "Two reels and a story set",
		Price:       1500,
	})
	require.NoError(t, err)

	require.NotNil(t, message.Offer)
	assert.Equal(t, entity.OfferStatusPending, message.Offer.Status)
	assert.Equal(t, "Lisbon", message.Offer.Trip.Destination)
	assert.NotEmpty(t, message.Offer.OfferID)

	// Editing the plan later must not rewrite the offer snapshot.
	trip.Destination = "Porto"
	require.NoError(t, tripRepo.Update(ctx, trip))
	assert.Equal(t, "Lisbon", message.Offer.Trip.Destination)
}

func sendTestOffer(t *testing.T, uc *MessagingUseCase, threadID string) *MessageResponse {
	t.Helper()
	message, err := uc.SendOffer(context.Background(), "brand-1", SendOfferInput{
		ThreadID:    threadID,
		Description: "Collab video",
		Price:       900,
	})
	require.NoError(t, err)
	return message
}

func TestAcceptOfferCreatesPendingOrderKeyedByOffer(t *testing.T) {
	uc, threadRepo, orderRepo, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)
	offer := sendTestOffer(t, uc, thread.ID)

	order, err := uc.AcceptOffer(ctx, "creator-1", thread.ID, offer.Offer.OfferID)
	require.NoError(t, err)

	// Exactly one order, keyed by the offer ID, pending payment.
	assert.Equal(t, offer.Offer.OfferID, order.ID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "brand-1", order.BrandID)
	assert.Equal(t, "creator-1", order.CreatorID)
	assert.Len(t, orderRepo.orders, 1)

	// The offer message flipped to accepted.
	updated, err := threadRepo.FindOfferMessage(ctx, thread.ID, offer.Offer.OfferID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusAccepted, updated.Offer.Status)
	assert.Equal(t, "creator-1", updated.Offer.RespondedBy)

	// A dual-perspective system message was appended.
	last := threadRepo.lastMessage(thread.ID)
	require.NotNil(t, last)
	assert.Equal(t, entity.MessageTypeSystem, last.Type)
	assert.Equal(t, "offer_accepted", last.SystemKind)
	assert.NotEqual(t, last.CreatorText, last.BrandText)
}

func TestAcceptOfferTwiceConflicts(t *testing.T) {
	uc, _, orderRepo, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)
	offer := sendTestOffer(t, uc, thread.ID)

	_, err = uc.AcceptOffer(ctx, "creator-1", thread.ID, offer.Offer.OfferID)
	require.NoError(t, err)

	_, err = uc.AcceptOffer(ctx, "creator-1", thread.ID, offer.Offer.OfferID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
	assert.Len(t, orderRepo.orders, 1)
}

func TestBrandCannotAcceptOwnOffer(t *testing.T) {
	uc, _, orderRepo, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)
	offer := sendTestOffer(t, uc, thread.ID)

	_, err = uc.AcceptOffer(ctx, "brand-1", thread.ID, offer.Offer.OfferID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Empty(t, orderRepo.orders)
}

func TestRejectOfferCreatesNoOrder(t *testing.T) {
	uc, threadRepo, orderRepo, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)
	offer := sendTestOffer(t, uc, thread.ID)

	require.NoError(t, uc.RejectOffer(ctx, "creator-1", thread.ID, offer.Offer.OfferID))

	updated, err := threadRepo.FindOfferMessage(ctx, thread.ID, offer.Offer.OfferID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusRejected, updated.Offer.Status)
	assert.Empty(t, orderRepo.orders)

	// Accepting after rejection is a conflict.
	_, err = uc.AcceptOffer(ctx, "creator-1", thread.ID, offer.Offer.OfferID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestOfferActionButtonsOnlyForReceivingCreator(t *testing.T) {
	pending := &entity.Message{
		Type:     entity.MessageTypeOffer,
		SenderID: "brand-1",
		Offer:    &entity.OfferDetails{Status: entity.OfferStatusPending},
	}

	// The receiving creator acts on it.
	assert.True(t, newMessageResponse(pending, "creator-1", entity.RoleCreator).ActionRequired)
	// The sending brand never does.
	assert.False(t, newMessageResponse(pending, "brand-1", entity.RoleBrand).ActionRequired)

	accepted := &entity.Message{
		Type:     entity.MessageTypeOffer,
		SenderID: "brand-1",
		Offer:    &entity.OfferDetails{Status: entity.OfferStatusAccepted},
	}
	assert.False(t, newMessageResponse(accepted, "creator-1", entity.RoleCreator).ActionRequired)
}

func TestSendMessageUpdatesThreadSummary(t *testing.T) {
	uc, threadRepo, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "brand-1", SendMessageInput{
		ThreadID: thread.ID,
		Content:  "Hey, love your Lisbon content",
	})
	require.NoError(t, err)

	stored, err := threadRepo.GetByID(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hey, love your Lisbon content", stored.LastMessage)
	assert.Equal(t, 1, stored.UnreadCount["creator-1"])
	assert.Equal(t, 0, stored.UnreadCount["brand-1"])
}

func TestMarkReadClearsUnread(t *testing.T) {
	uc, threadRepo, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)

	message, err := uc.SendMessage(ctx, "brand-1", SendMessageInput{ThreadID: thread.ID, Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, uc.MarkRead(ctx, "creator-1", thread.ID, message.ID))

	stored, err := threadRepo.GetByID(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UnreadCount["creator-1"])

	read, err := threadRepo.GetMessageByID(ctx, thread.ID, message.ID)
	require.NoError(t, err)
	assert.Contains(t, read.ReadBy, "creator-1")
}

func TestTypingSignalExpires(t *testing.T) {
	uc, _, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)

	require.NoError(t, uc.SetTyping(ctx, "brand-1", thread.ID, true))

	// The counterpart sees the signal, the typist does not see their own.
	statuses, err := uc.ListTyping(ctx, "creator-1", thread.ID)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "brand-1", statuses[0].UserID)
	assert.WithinDuration(t, time.Now().Add(typingTTL), statuses[0].ExpiresAt, time.Second)

	own, err := uc.ListTyping(ctx, "brand-1", thread.ID)
	require.NoError(t, err)
	assert.Empty(t, own)

	require.NoError(t, uc.SetTyping(ctx, "brand-1", thread.ID, false))
	statuses, err = uc.ListTyping(ctx, "creator-1", thread.ID)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestNonParticipantCannotReadThread(t *testing.T) {
	uc, _, _, _ := newMessagingFixture(t)
	ctx := context.Background()

	thread, err := uc.GetOrCreateThread(ctx, "brand-1", "creator-1")
	require.NoError(t, err)

	_, _, err = uc.ListMessages(ctx, "brand-2", thread.ID, 50, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
