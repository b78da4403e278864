package repository

import (
	"context"

	"tripcollab/internal/domain/entity"
)

type WaitlistRepository interface {
	Create(ctx context.Context, entry *entity.WaitlistEntry) error
	GetByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error)
}
