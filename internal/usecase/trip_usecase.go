package usecase

import (
	"context"
	"time"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/pkg/errors"
)

type TripUseCase struct {
	tripRepo repository.TripRepository
	userRepo repository.UserRepository
}

func NewTripUseCase(tripRepo repository.TripRepository, userRepo repository.UserRepository) *TripUseCase {
	return &TripUseCase{
		tripRepo: tripRepo,
		userRepo: userRepo,
	}
}

type TripInput struct {
	Destination string
	Country     string
	StartDate   time.Time
	EndDate     time.Time
	Notes       string
	Status      string
}

// TripResponse wraps a trip with its date-derived display status so list
// surfaces never show "planned" for a trip that is underway.
type TripResponse struct {
	*entity.Trip
	DisplayStatus string `json:"display_status"`
}

func newTripResponse(trip *entity.Trip, now time.Time) *TripResponse {
	return &TripResponse{
		Trip:          trip,
		DisplayStatus: trip.DisplayStatus(now),
	}
}

func (uc *TripUseCase) validate(input TripInput) error {
	if input.Destination == "" {
		return errors.BadRequest("Destination is required", nil)
	}
	if input.EndDate.Before(input.StartDate) {
		return errors.BadRequest("End date must not be before start date", nil)
	}
	switch input.Status {
	case "", entity.TripStatusPlanned, entity.TripStatusActive, entity.TripStatusCompleted:
	default:
		return errors.BadRequest("Invalid trip status", nil)
	}
	return nil
}

func (uc *TripUseCase) requireCreator(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsCreator() {
		return errors.Forbidden("Only creators have travel plans", nil)
	}
	return nil
}

func (uc *TripUseCase) CreateTrip(ctx context.Context, creatorID string, input TripInput) (*TripResponse, error) {
	if err := uc.requireCreator(ctx, creatorID); err != nil {
		return nil, err
	}
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = entity.TripStatusPlanned
	}

	trip := &entity.Trip{
		CreatorID:   creatorID,
		Destination: input.Destination,
		Country:     input.Country,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Notes:       input.Notes,
		Status:      status,
	}

	if err := uc.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return newTripResponse(trip, time.Now()), nil
}

func (uc *TripUseCase) GetTrip(ctx context.Context, creatorID, tripID string) (*TripResponse, error) {
	trip, err := uc.tripRepo.GetByID(ctx, creatorID, tripID)
	if err != nil {
		return nil, err
	}
	return newTripResponse(trip, time.Now()), nil
}

func (uc *TripUseCase) UpdateTrip(ctx context.Context, creatorID, tripID string, input TripInput) (*TripResponse, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	trip, err := uc.tripRepo.GetByID(ctx, creatorID, tripID)
	if err != nil {
		return nil, err
	}
	if trip.CreatorID != creatorID {
		return nil, errors.Forbidden("You do not own this travel plan", nil)
	}

	trip.Destination = input.Destination
	trip.Country = input.Country
	trip.StartDate = input.StartDate
	trip.EndDate = input.EndDate
	trip.Notes = input.Notes
	if input.Status != "" {
		trip.Status = input.Status
	}

	if err := uc.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return newTripResponse(trip, time.Now()), nil
}

func (uc *TripUseCase) DeleteTrip(ctx context.Context, creatorID, tripID string) error {
	trip, err := uc.tripRepo.GetByID(ctx, creatorID, tripID)
	if err != nil {
		return err
	}
	if trip.CreatorID != creatorID {
		return errors.Forbidden("You do not own this travel plan", nil)
	}
	return uc.tripRepo.Delete(ctx, creatorID, tripID)
}

func (uc *TripUseCase) ListTrips(ctx context.Context, creatorID string) ([]*TripResponse, error) {
	trips, err := uc.tripRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]*TripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, newTripResponse(trip, now))
	}
	return responses, nil
}
