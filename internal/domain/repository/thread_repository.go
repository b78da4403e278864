package repository

import (
	"context"

	"tripcollab/internal/domain/entity"
)

type ThreadRepository interface {
	Create(ctx context.Context, thread *entity.Thread) error
	GetByID(ctx context.Context, id string) (*entity.Thread, error)
	Update(ctx context.Context, thread *entity.Thread) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Thread, int64, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessageByID(ctx context.Context, threadID, messageID string) (*entity.Message, error)
	UpdateMessage(ctx context.Context, threadID string, message *entity.Message) error
	ListMessages(ctx context.Context, threadID string, limit, offset int) ([]*entity.Message, int64, error)
	FindOfferMessage(ctx context.Context, threadID, offerID string) (*entity.Message, error)
	MarkMessageRead(ctx context.Context, threadID, messageID, userID string) error
}
