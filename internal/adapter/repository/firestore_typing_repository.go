package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/logger"
)

// Typing signals are documents at typingStatus/{threadId_userId}. They are
// never authoritative; readers filter on expiresAt.
type firestoreTypingRepository struct {
	client *firestore.Client
}

func NewFirestoreTypingRepository(client *firestore.Client) repository.TypingRepository {
	return &firestoreTypingRepository{
		client: client,
	}
}

func (r *firestoreTypingRepository) docID(threadID, userID string) string {
	return threadID + "_" + userID
}

func (r *firestoreTypingRepository) Set(ctx context.Context, ts *entity.TypingStatus) error {
	_, err := r.client.Collection("typingStatus").Doc(r.docID(ts.ThreadID, ts.UserID)).Set(ctx, ts)
	if err != nil {
		return errors.Internal("Failed to set typing status", err)
	}
	return nil
}

func (r *firestoreTypingRepository) Clear(ctx context.Context, threadID, userID string) error {
	_, err := r.client.Collection("typingStatus").Doc(r.docID(threadID, userID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to clear typing status", err)
	}
	return nil
}

func (r *firestoreTypingRepository) ListActive(ctx context.Context, threadID string) ([]*entity.TypingStatus, error) {
	now := time.Now()
	iter := r.client.Collection("typingStatus").Where("threadId", "==", threadID).Documents(ctx)

	var active []*entity.TypingStatus
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list typing status", err)
		}

		var ts entity.TypingStatus
		if err := doc.DataTo(&ts); err != nil {
			continue
		}

		if ts.Expired(now) {
			// Sweep stale docs opportunistically; a failed delete is
			// harmless since readers filter anyway.
			if _, err := doc.Ref.Delete(ctx); err != nil {
				logger.Debug("Failed to sweep stale typing doc %s: %v", doc.Ref.ID, err)
			}
			continue
		}
		active = append(active, &ts)
	}

	return active, nil
}
