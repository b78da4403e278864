package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"cloud.google.com/go/firestore"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/pkg/errors"
)

type firestoreWaitlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWaitlistRepository(client *firestore.Client) repository.WaitlistRepository {
	return &firestoreWaitlistRepository{
		client: client,
	}
}

func (r *firestoreWaitlistRepository) Create(ctx context.Context, entry *entity.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.Email = strings.ToLower(strings.TrimSpace(entry.Email))
	entry.CreatedAt = time.Now()

	_, err := r.client.Collection("waitlist").Doc(entry.ID).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to create waitlist entry", err)
	}
	return nil
}

func (r *firestoreWaitlistRepository) GetByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	query := r.client.Collection("waitlist").Where("email", "==", email).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Waitlist entry", nil)
		}
		return nil, errors.Internal("Failed to query waitlist", err)
	}

	var entry entity.WaitlistEntry
	if err := doc.DataTo(&entry); err != nil {
		return nil, errors.Internal("Failed to parse waitlist entry", err)
	}
	entry.ID = doc.Ref.ID

	return &entry, nil
}
