package repository

import (
	"context"

	"tripcollab/internal/domain/entity"
)

type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	GetByID(ctx context.Context, creatorID, tripID string) (*entity.Trip, error)
	Update(ctx context.Context, trip *entity.Trip) error
	Delete(ctx context.Context, creatorID, tripID string) error
	ListByCreator(ctx context.Context, creatorID string) ([]*entity.Trip, error)
}
