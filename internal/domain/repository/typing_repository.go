package repository

import (
	"context"

	"tripcollab/internal/domain/entity"
)

type TypingRepository interface {
	Set(ctx context.Context, status *entity.TypingStatus) error
	Clear(ctx context.Context, threadID, userID string) error
	// ListActive returns non-expired typing signals for a thread and sweeps
	// any stale documents it encounters.
	ListActive(ctx context.Context, threadID string) ([]*entity.TypingStatus, error)
}
