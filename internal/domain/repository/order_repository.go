package repository

import (
	"context"

	"tripcollab/internal/domain/entity"
)

type OrderRepository interface {
	// Create writes the order at its fixed document ID (the offer ID);
	// calling it twice for the same offer converges on one document.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	ListByUser(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Order, int64, error)
}
