package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/pkg/errors"
)

// Threads live at messageThreads/{id} with each message as its own document
// in the messages subcollection. Thread IDs are deterministic per participant
// pair, so Create is effectively an upsert.
type firestoreThreadRepository struct {
	client *firestore.Client
}

func NewFirestoreThreadRepository(client *firestore.Client) repository.ThreadRepository {
	return &firestoreThreadRepository{
		client: client,
	}
}

func (r *firestoreThreadRepository) threads() *firestore.CollectionRef {
	return r.client.Collection("messageThreads")
}

func (r *firestoreThreadRepository) messages(threadID string) *firestore.CollectionRef {
	return r.threads().Doc(threadID).Collection("messages")
}

func (r *firestoreThreadRepository) Create(ctx context.Context, thread *entity.Thread) error {
	if thread.ID == "" {
		thread.ID = entity.ThreadIDFor(thread.Participants[0], thread.Participants[1])
	}

	now := time.Now()
	thread.CreatedAt = now
	thread.UpdatedAt = now
	if thread.UnreadCount == nil {
		thread.UnreadCount = make(map[string]int)
	}

	_, err := r.threads().Doc(thread.ID).Set(ctx, thread)
	if err != nil {
		return errors.Internal("Failed to create message thread", err)
	}
	return nil
}

func (r *firestoreThreadRepository) GetByID(ctx context.Context, id string) (*entity.Thread, error) {
	doc, err := r.threads().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message thread", err)
		}
		return nil, errors.Internal("Failed to get message thread", err)
	}

	var thread entity.Thread
	if err := doc.DataTo(&thread); err != nil {
		return nil, errors.Internal("Failed to parse message thread data", err)
	}
	thread.ID = doc.Ref.ID

	return &thread, nil
}

func (r *firestoreThreadRepository) Update(ctx context.Context, thread *entity.Thread) error {
	thread.UpdatedAt = time.Now()

	_, err := r.threads().Doc(thread.ID).Set(ctx, thread)
	if err != nil {
		return errors.Internal("Failed to update message thread", err)
	}
	return nil
}

func (r *firestoreThreadRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Thread, int64, error) {
	// array-contains cannot be combined with an order-by on another field
	// without a composite index, so sort in memory. Thread counts per user
	// stay small enough for that.
	query := r.threads().Where("participants", "array-contains", userID)
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list message threads", err)
	}

	var threads []*entity.Thread
	for _, doc := range allDocs {
		var thread entity.Thread
		if err := doc.DataTo(&thread); err != nil {
			continue
		}
		thread.ID = doc.Ref.ID
		threads = append(threads, &thread)
	}

	sort.Slice(threads, func(i, j int) bool {
		return threads[i].LastMessageAt.After(threads[j].LastMessageAt)
	})

	total := int64(len(threads))
	start := offset
	if start > len(threads) {
		start = len(threads)
	}
	end := len(threads)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return threads[start:end], total, nil
}

func (r *firestoreThreadRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	if message.ReadBy == nil {
		message.ReadBy = []string{message.SenderID}
	}

	_, err := r.messages(message.ThreadID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *firestoreThreadRepository) GetMessageByID(ctx context.Context, threadID, messageID string) (*entity.Message, error) {
	doc, err := r.messages(threadID).Doc(messageID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.Internal("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	message.ID = doc.Ref.ID

	return &message, nil
}

func (r *firestoreThreadRepository) UpdateMessage(ctx context.Context, threadID string, message *entity.Message) error {
	_, err := r.messages(threadID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to update message", err)
	}
	return nil
}

func (r *firestoreThreadRepository) ListMessages(ctx context.Context, threadID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.messages(threadID).OrderBy("createdAt", firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list messages", err)
	}
	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var messages []*entity.Message
	for _, doc := range allDocs[start:end] {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreThreadRepository) FindOfferMessage(ctx context.Context, threadID, offerID string) (*entity.Message, error) {
	query := r.messages(threadID).
		Where("type", "==", entity.MessageTypeOffer).
		Where("offer.offerId", "==", offerID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Offer", nil)
		}
		return nil, errors.Internal("Failed to find offer message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	message.ID = doc.Ref.ID

	return &message, nil
}

func (r *firestoreThreadRepository) MarkMessageRead(ctx context.Context, threadID, messageID, userID string) error {
	ref := r.messages(threadID).Doc(messageID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return err
		}

		for _, reader := range message.ReadBy {
			if reader == userID {
				return nil // already read
			}
		}
		message.ReadBy = append(message.ReadBy, userID)
		message.Status = "read"

		return tx.Set(ref, &message)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Message", err)
		}
		return errors.Internal("Failed to mark message as read", err)
	}
	return nil
}
