package repository

import (
	"context"
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

// Travel plans are a subcollection of the creator's user document:
// users/{uid}/travelPlans/{id}.
type firestoreTripRepository struct {
	client *firestore.Client
}

func NewFirestoreTripRepository(client *firestore.Client) repository.TripRepository {
	return &firestoreTripRepository{
		client: client,
	}
}

func (r *firestoreTripRepository) plans(creatorID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(creatorID).Collection("travelPlans")
}

func (r *firestoreTripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}

	now := time.Now()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	_, err := r.plans(trip.CreatorID).Doc(trip.ID).Set(ctx, trip)
	if err != nil {
		return errors.Internal("Failed to create travel plan", err)
	}
	return nil
}

func (r *firestoreTripRepository) GetByID(ctx context.Context, creatorID, tripID string) (*entity.Trip, error) {
	doc, err := r.plans(creatorID).Doc(tripID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Travel plan", err)
		}
		return nil, errors.Internal("Failed to get travel plan", err)
	}

	var trip entity.Trip
	if err := doc.DataTo(&trip); err != nil {
		return nil, errors.Internal("Failed to parse travel plan data", err)
	}
	trip.ID = doc.Ref.ID

	return &trip, nil
}

func (r *firestoreTripRepository) Update(ctx context.Context, trip *entity.Trip) error {
	trip.UpdatedAt = time.Now()

	_, err := r.plans(trip.CreatorID).Doc(trip.ID).Set(ctx, trip)
	if err != nil {
		return errors.Internal("Failed to update travel plan", err)
	}
	return nil
}

func (r *firestoreTripRepository) Delete(ctx context.Context, creatorID, tripID string) error {
	_, err := r.plans(creatorID).Doc(tripID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete travel plan", err)
	}
	return nil
}

func (r *firestoreTripRepository) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Trip, error) {
	iter := r.plans(creatorID).OrderBy("startDate", firestore.Asc).Documents(ctx)

	var trips []*entity.Trip
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate travel plans", err)
		}

		var trip entity.Trip
		if err := doc.DataTo(&trip); err != nil {
			return nil, errors.Internal("Failed to parse travel plan data", err)
		}
		trip.ID = doc.Ref.ID
		trips = append(trips, &trip)
	}

	return trips, nil
}
