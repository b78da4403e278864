package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/internal/infrastructure/ratelimit"
	ws "tripcollab/internal/infrastructure/websocket"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/logger"
)

const typingTTL = 3 * time.Second

type MessagingUseCase struct {
	threadRepo  repository.ThreadRepository
	userRepo    repository.UserRepository
	tripRepo    repository.TripRepository
	orderRepo   repository.OrderRepository
	typingRepo  repository.TypingRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewMessagingUseCase(
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	tripRepo repository.TripRepository,
	orderRepo repository.OrderRepository,
	typingRepo repository.TypingRepository,
	wsManager *ws.Manager,
) *MessagingUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	uc := &MessagingUseCase{
		threadRepo:  threadRepo,
		userRepo:    userRepo,
		tripRepo:    tripRepo,
		orderRepo:   orderRepo,
		typingRepo:  typingRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
	if wsManager != nil {
		wsManager.SetEventHandler(uc)
	}
	return uc
}

type ThreadResponse struct {
	*entity.Thread
	OtherUser *entity.ParticipantInfo `json:"other_user,omitempty"`
	Unread    int                     `json:"unread"`
}

// MessageResponse decorates a message with per-viewer fields: the rendered
// text for system messages and whether the viewer should see offer action
// buttons.
type MessageResponse struct {
	*entity.Message
	DisplayText    string `json:"display_text"`
	ActionRequired bool   `json:"action_required"`
}

func newMessageResponse(m *entity.Message, viewerID, viewerRole string) *MessageResponse {
	actionRequired := m.Type == entity.MessageTypeOffer &&
		m.Offer != nil &&
		m.Offer.Status == entity.OfferStatusPending &&
		m.SenderID != viewerID &&
		viewerRole == entity.RoleCreator

	return &MessageResponse{
		Message:        m,
		DisplayText:    m.TextFor(viewerRole),
		ActionRequired: actionRequired,
	}
}

// GetOrCreateThread returns the conversation between the caller and the
// other user, creating it on first contact. Thread IDs are deterministic, so
// two users racing to start a conversation converge on the same document.
func (uc *MessagingUseCase) GetOrCreateThread(ctx context.Context, userID, otherUserID string) (*ThreadResponse, error) {
	if userID == otherUserID {
		return nil, errors.BadRequest("Cannot start a conversation with yourself", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := uc.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if user.Role == other.Role {
		return nil, errors.BadRequest("Conversations connect a creator with a brand", nil)
	}

	threadID := entity.ThreadIDFor(userID, otherUserID)
	thread, err := uc.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		thread = &entity.Thread{
			ID:           threadID,
			Participants: []string{userID, otherUserID},
			Profiles: map[string]entity.ParticipantInfo{
				userID:      participantInfo(user),
				otherUserID: participantInfo(other),
			},
			UnreadCount: map[string]int{userID: 0, otherUserID: 0},
		}
		if err := uc.threadRepo.Create(ctx, thread); err != nil {
			return nil, err
		}
	}

	return uc.threadResponse(thread, userID), nil
}

func participantInfo(u *entity.User) entity.ParticipantInfo {
	info := entity.ParticipantInfo{
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
	}
	if u.IsBrand() && u.LogoURL != "" {
		info.AvatarURL = u.LogoURL
	}
	return info
}

func (uc *MessagingUseCase) threadResponse(thread *entity.Thread, viewerID string) *ThreadResponse {
	resp := &ThreadResponse{
		Thread: thread,
		Unread: thread.UnreadCount[viewerID],
	}
	if otherID := thread.OtherParticipant(viewerID); otherID != "" {
		if info, ok := thread.Profiles[otherID]; ok {
			resp.OtherUser = &info
		}
	}
	return resp
}

func (uc *MessagingUseCase) ListThreads(ctx context.Context, userID string, limit, offset int) ([]*ThreadResponse, int64, error) {
	threads, total, err := uc.threadRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		responses = append(responses, uc.threadResponse(thread, userID))
	}
	return responses, total, nil
}

// requireParticipant loads the thread and checks membership.
func (uc *MessagingUseCase) requireParticipant(ctx context.Context, threadID, userID string) (*entity.Thread, error) {
	thread, err := uc.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}
	return thread, nil
}

func (uc *MessagingUseCase) ListMessages(ctx context.Context, userID, threadID string, limit, offset int) ([]*MessageResponse, int64, error) {
	thread, err := uc.requireParticipant(ctx, threadID, userID)
	if err != nil {
		return nil, 0, err
	}

	viewerRole := thread.Profiles[userID].Role
	messages, total, err := uc.threadRepo.ListMessages(ctx, threadID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, newMessageResponse(m, userID, viewerRole))
	}
	return responses, total, nil
}

type SendMessageInput struct {
	ThreadID string
	Content  string
}

func (uc *MessagingUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*MessageResponse, error) {
	if allowed, wait := uc.rateLimiter.Allow(userID, "send_message"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many messages, retry in %s", wait.Round(time.Second)))
	}
	if input.Content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	thread, err := uc.requireParticipant(ctx, input.ThreadID, userID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ThreadID: input.ThreadID,
		SenderID: userID,
		Type:     entity.MessageTypeText,
		Status:   "sent",
		Content:  input.Content,
	}
	if err := uc.threadRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	uc.bumpThread(ctx, thread, userID, input.Content)
	uc.broadcastMessage(thread, message, userID)

	viewerRole := thread.Profiles[userID].Role
	return newMessageResponse(message, userID, viewerRole), nil
}

// bumpThread refreshes the conversation summary after a new message.
func (uc *MessagingUseCase) bumpThread(ctx context.Context, thread *entity.Thread, senderID, preview string) {
	thread.LastMessage = preview
	thread.LastMessageAt = time.Now()
	if thread.UnreadCount == nil {
		thread.UnreadCount = make(map[string]int)
	}
	if otherID := thread.OtherParticipant(senderID); otherID != "" {
		thread.UnreadCount[otherID]++
	}
	if err := uc.threadRepo.Update(ctx, thread); err != nil {
		logger.Error("Failed to update thread summary %s: %v", thread.ID, err)
	}
}

func (uc *MessagingUseCase) broadcastMessage(thread *entity.Thread, message *entity.Message, senderID string) {
	if uc.wsManager == nil {
		return
	}
	payload := ws.NewEvent(ws.EventMessageNew, message)
	uc.wsManager.BroadcastToThreadExcept(thread.ID, senderID, payload)
	// Participants not currently in the room still get a copy for their
	// inbox badge.
	if otherID := thread.OtherParticipant(senderID); otherID != "" {
		uc.wsManager.SendToUser(otherID, payload)
	}
}

type SendOfferInput struct {
	ThreadID    string
	TripID      string
	Description string
	Price       float64
}

// SendOffer posts a structured offer into the conversation. Brand only; the
// trip snapshot is copied into the message so later plan edits don't rewrite
// the negotiation record.
func (uc *MessagingUseCase) SendOffer(ctx context.Context, brandID string, input SendOfferInput) (*MessageResponse, error) {
	if allowed, wait := uc.rateLimiter.Allow(brandID, "send_offer"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many offers, retry in %s", wait.Round(time.Second)))
	}
	if input.Price <= 0 {
		return nil, errors.BadRequest("Offer price must be positive", nil)
	}

	brand, err := uc.userRepo.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if !brand.IsBrand() {
		return nil, errors.Forbidden("Only brands can send offers", nil)
	}

	thread, err := uc.requireParticipant(ctx, input.ThreadID, brandID)
	if err != nil {
		return nil, err
	}
	creatorID := thread.OtherParticipant(brandID)

	var tripRef entity.TripRef
	if input.TripID != "" {
		trip, err := uc.tripRepo.GetByID(ctx, creatorID, input.TripID)
		if err != nil {
			return nil, err
		}
		tripRef = entity.TripRef{
			TripID:      trip.ID,
			Destination: trip.Destination,
			Country:     trip.Country,
			StartDate:   trip.StartDate,
			EndDate:     trip.EndDate,
		}
	}

	message := &entity.Message{
		ThreadID: input.ThreadID,
		SenderID: brandID,
		Type:     entity.MessageTypeOffer,
		Status:   "sent",
		Offer: &entity.OfferDetails{
			OfferID:     uuid.New().String(),
			Trip:        tripRef,
			Description: input.Description,
			Price:       input.Price,
			Status:      entity.OfferStatusPending,
		},
	}
	if err := uc.threadRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	uc.bumpThread(ctx, thread, brandID, "Sent an offer")
	uc.broadcastMessage(thread, message, brandID)

	return newMessageResponse(message, brandID, entity.RoleBrand), nil
}

// AcceptOffer flips a pending offer to accepted and opens the order. The
// order document is written first, keyed by the offer ID; if the message
// update then fails, a retry rewrites the same order instead of duplicating
// it.
func (uc *MessagingUseCase) AcceptOffer(ctx context.Context, creatorID, threadID, offerID string) (*entity.Order, error) {
	thread, message, err := uc.offerForResponse(ctx, creatorID, threadID, offerID)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:          offerID,
		ThreadID:    threadID,
		MessageID:   message.ID,
		BrandID:     message.SenderID,
		CreatorID:   creatorID,
		Trip:        message.Offer.Trip,
		Description: message.Offer.Description,
		Amount:      message.Offer.Price,
		Status:      entity.OrderStatusPending,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	now := time.Now()
	message.Offer.Status = entity.OfferStatusAccepted
	message.Offer.RespondedBy = creatorID
	message.Offer.RespondedAt = now
	if err := uc.threadRepo.UpdateMessage(ctx, threadID, message); err != nil {
		return nil, err
	}

	uc.postSystemMessage(ctx, thread, "offer_accepted",
		"You accepted the offer. The brand has been asked to complete payment.",
		"Your offer was accepted. Complete the payment to start the collaboration.")
	uc.notifyOfferUpdate(thread, message, order)

	return order, nil
}

// RejectOffer flips a pending offer to rejected. No order is created.
func (uc *MessagingUseCase) RejectOffer(ctx context.Context, creatorID, threadID, offerID string) error {
	thread, message, err := uc.offerForResponse(ctx, creatorID, threadID, offerID)
	if err != nil {
		return err
	}

	message.Offer.Status = entity.OfferStatusRejected
	message.Offer.RespondedBy = creatorID
	message.Offer.RespondedAt = time.Now()
	if err := uc.threadRepo.UpdateMessage(ctx, threadID, message); err != nil {
		return err
	}

	uc.postSystemMessage(ctx, thread, "offer_rejected",
		"You declined the offer.",
		"Your offer was declined.")
	uc.notifyOfferUpdate(thread, message, nil)

	return nil
}

// offerForResponse validates that the caller may respond to the offer:
// participant, creator role, not the sender, and the offer still pending.
func (uc *MessagingUseCase) offerForResponse(ctx context.Context, creatorID, threadID, offerID string) (*entity.Thread, *entity.Message, error) {
	thread, err := uc.requireParticipant(ctx, threadID, creatorID)
	if err != nil {
		return nil, nil, err
	}
	if thread.Profiles[creatorID].Role != entity.RoleCreator {
		return nil, nil, errors.Forbidden("Only the creator can respond to an offer", nil)
	}

	message, err := uc.threadRepo.FindOfferMessage(ctx, threadID, offerID)
	if err != nil {
		return nil, nil, err
	}
	if message.SenderID == creatorID {
		return nil, nil, errors.Forbidden("Cannot respond to your own offer", nil)
	}
	if message.Offer.Status != entity.OfferStatusPending {
		return nil, nil, errors.Conflict("Offer has already been responded to")
	}

	return thread, message, nil
}

// postSystemMessage writes a dual-perspective system message into the
// thread; each side sees its own phrasing.
func (uc *MessagingUseCase) postSystemMessage(ctx context.Context, thread *entity.Thread, kind, creatorText, brandText string) {
	message := &entity.Message{
		ThreadID:    thread.ID,
		SenderID:    "system",
		Type:        entity.MessageTypeSystem,
		Status:      "sent",
		SystemKind:  kind,
		CreatorText: creatorText,
		BrandText:   brandText,
	}
	if err := uc.threadRepo.CreateMessage(ctx, message); err != nil {
		logger.Error("Failed to write system message in thread %s: %v", thread.ID, err)
		return
	}

	thread.LastMessage = kind
	thread.LastMessageAt = time.Now()
	if err := uc.threadRepo.Update(ctx, thread); err != nil {
		logger.Error("Failed to update thread summary %s: %v", thread.ID, err)
	}

	if uc.wsManager != nil {
		uc.wsManager.SendToThread(thread.ID, ws.NewEvent(ws.EventMessageNew, message))
	}
}

func (uc *MessagingUseCase) notifyOfferUpdate(thread *entity.Thread, message *entity.Message, order *entity.Order) {
	if uc.wsManager == nil {
		return
	}
	uc.wsManager.SendToThread(thread.ID, ws.NewEvent(ws.EventOfferUpdated, message))
	if order != nil {
		for _, userID := range thread.Participants {
			uc.wsManager.SendToUser(userID, ws.NewEvent(ws.EventOrderUpdated, order))
		}
	}
}

// SetTyping records a short-lived typing signal and fans it out to the
// thread room.
func (uc *MessagingUseCase) SetTyping(ctx context.Context, userID, threadID string, typing bool) error {
	if allowed, _ := uc.rateLimiter.Allow(userID, "typing"); !allowed {
		return nil // silently dropped, it is only an indicator
	}

	thread, err := uc.requireParticipant(ctx, threadID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	var expiresAt time.Time
	if typing {
		expiresAt = now.Add(typingTTL)
		err = uc.typingRepo.Set(ctx, &entity.TypingStatus{
			ThreadID:  threadID,
			UserID:    userID,
			StartedAt: now,
			ExpiresAt: expiresAt,
		})
	} else {
		err = uc.typingRepo.Clear(ctx, threadID, userID)
	}
	if err != nil {
		return err
	}

	if uc.wsManager != nil {
		data := ws.TypingUpdateData{
			ThreadID: threadID,
			UserID:   userID,
			Typing:   typing,
		}
		if typing {
			data.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
		}
		uc.wsManager.BroadcastToThreadExcept(thread.ID, userID, ws.NewEvent(ws.EventTypingUpdate, data))
	}
	return nil
}

// ListTyping returns who is currently typing in a thread, for clients that
// poll instead of holding a socket.
func (uc *MessagingUseCase) ListTyping(ctx context.Context, userID, threadID string) ([]*entity.TypingStatus, error) {
	if _, err := uc.requireParticipant(ctx, threadID, userID); err != nil {
		return nil, err
	}

	statuses, err := uc.typingRepo.ListActive(ctx, threadID)
	if err != nil {
		return nil, err
	}

	// The caller's own signal is noise to them.
	filtered := statuses[:0]
	for _, s := range statuses {
		if s.UserID != userID {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// MarkRead marks a message read and clears the reader's unread counter.
func (uc *MessagingUseCase) MarkRead(ctx context.Context, userID, threadID, messageID string) error {
	thread, err := uc.requireParticipant(ctx, threadID, userID)
	if err != nil {
		return err
	}

	if err := uc.threadRepo.MarkMessageRead(ctx, threadID, messageID, userID); err != nil {
		return err
	}

	if thread.UnreadCount[userID] != 0 {
		thread.UnreadCount[userID] = 0
		if err := uc.threadRepo.Update(ctx, thread); err != nil {
			logger.Error("Failed to reset unread count in thread %s: %v", thread.ID, err)
		}
	}

	if uc.wsManager != nil {
		receipt := ws.NewEvent(ws.EventReadReceipt, ws.ReadReceiptData{
			ThreadID:  threadID,
			MessageID: messageID,
			ReaderID:  userID,
		})
		if otherID := thread.OtherParticipant(userID); otherID != "" {
			uc.wsManager.SendToUser(otherID, receipt)
		}
	}
	return nil
}

// OnTyping implements ws.EventHandler.
func (uc *MessagingUseCase) OnTyping(ctx context.Context, threadID, userID string, typing bool) {
	if err := uc.SetTyping(ctx, userID, threadID, typing); err != nil {
		logger.Debug("Typing signal rejected for %s in %s: %v", userID, threadID, err)
	}
}

// OnMarkRead implements ws.EventHandler.
func (uc *MessagingUseCase) OnMarkRead(ctx context.Context, threadID, messageID, userID string) {
	if err := uc.MarkRead(ctx, userID, threadID, messageID); err != nil {
		logger.Debug("Mark-read rejected for %s in %s: %v", userID, threadID, err)
	}
}

// OnPresence implements ws.EventHandler. Connection state feeds the profile
// presence fields and the counterpart's header indicator.
func (uc *MessagingUseCase) OnPresence(ctx context.Context, userID string, online bool) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return
	}

	user.LastSeen = time.Now()
	user.OnlineStatus = "offline"
	if online {
		user.OnlineStatus = "online"
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Debug("Failed to update presence for %s: %v", userID, err)
		return
	}

	if uc.wsManager == nil {
		return
	}
	event := ws.NewEvent(ws.EventPresence, ws.PresenceData{
		UserID:   userID,
		IsOnline: online,
		LastSeen: user.LastSeen.UTC().Format(time.RFC3339),
	})
	threads, _, err := uc.threadRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return
	}
	for _, thread := range threads {
		if otherID := thread.OtherParticipant(userID); otherID != "" {
			uc.wsManager.SendToUser(otherID, event)
		}
	}
}
