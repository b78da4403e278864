package usecase

import (
	"context"
	"strings"
	"time"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
)

type DiscoveryUseCase struct {
	userRepo repository.UserRepository
	tripRepo repository.TripRepository
}

func NewDiscoveryUseCase(userRepo repository.UserRepository, tripRepo repository.TripRepository) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		userRepo: userRepo,
		tripRepo: tripRepo,
	}
}

type CreatorSearchInput struct {
	Query       string // matched against display name and niche
	Destination string // matched against upcoming trip destinations
	Country     string
	From        time.Time // availability window, zero means unbounded
	To          time.Time
	Limit       int
	Offset      int
}

// CreatorResult is a creator profile plus the trips that matched the search,
// so a brand browsing "Lisbon in October" sees why the creator showed up.
type CreatorResult struct {
	*entity.User
	UpcomingTrips []*TripResponse `json:"upcoming_trips"`
}

// SearchCreators lists creator profiles, filtered by profile text and by
// travel plans overlapping the requested destination and window. Trip-level
// filters require loading each creator's plans, which is acceptable at the
// directory sizes a marketplace launch sees.
func (uc *DiscoveryUseCase) SearchCreators(ctx context.Context, input CreatorSearchInput) ([]*CreatorResult, int64, error) {
	creators, _, err := uc.userRepo.ListByRole(ctx, entity.RoleCreator, 0, 0)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	query := strings.ToLower(strings.TrimSpace(input.Query))
	destination := strings.ToLower(strings.TrimSpace(input.Destination))
	country := strings.ToLower(strings.TrimSpace(input.Country))
	hasTripFilter := destination != "" || country != "" || !input.From.IsZero() || !input.To.IsZero()

	var results []*CreatorResult
	for _, creator := range creators {
		if query != "" &&
			!strings.Contains(strings.ToLower(creator.DisplayName), query) &&
			!strings.Contains(strings.ToLower(creator.Niche), query) {
			continue
		}

		trips, err := uc.tripRepo.ListByCreator(ctx, creator.ID)
		if err != nil {
			return nil, 0, err
		}

		var matched []*TripResponse
		for _, trip := range trips {
			if trip.DisplayStatus(now) == entity.TripStatusCompleted {
				continue
			}
			if destination != "" && !strings.Contains(strings.ToLower(trip.Destination), destination) {
				continue
			}
			if country != "" && !strings.EqualFold(trip.Country, input.Country) {
				continue
			}
			if !input.From.IsZero() || !input.To.IsZero() {
				from, to := input.From, input.To
				if from.IsZero() {
					from = now
				}
				if to.IsZero() {
					to = from.AddDate(10, 0, 0)
				}
				if !trip.Overlaps(from, to) {
					continue
				}
			}
			matched = append(matched, newTripResponse(trip, now))
		}

		if hasTripFilter && len(matched) == 0 {
			continue
		}

		results = append(results, &CreatorResult{
			User:          creator,
			UpcomingTrips: matched,
		})
	}

	total := int64(len(results))
	start := input.Offset
	if start > len(results) {
		start = len(results)
	}
	end := len(results)
	if input.Limit > 0 && start+input.Limit < end {
		end = start + input.Limit
	}

	return results[start:end], total, nil
}

// GetPublicProfile returns a profile with its travel plans for the profile
// page a brand views before reaching out.
func (uc *DiscoveryUseCase) GetPublicProfile(ctx context.Context, userID string) (*CreatorResult, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &CreatorResult{User: user}
	if user.IsCreator() {
		trips, err := uc.tripRepo.ListByCreator(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		for _, trip := range trips {
			if trip.DisplayStatus(now) == entity.TripStatusCompleted {
				continue
			}
			result.UpcomingTrips = append(result.UpcomingTrips, newTripResponse(trip, now))
		}
	}

	return result, nil
}
