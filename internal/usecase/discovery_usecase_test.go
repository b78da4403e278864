package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcollab/internal/domain/entity"
)

func newDiscoveryFixture(t *testing.T) (*DiscoveryUseCase, *fakeTripRepo) {
	t.Helper()

	ana := testCreator("ana")
	ana.DisplayName = "Ana Travels"
	ana.Niche = "food"
	ben := testCreator("ben")
	ben.DisplayName = "Ben Outdoors"
	ben.Niche = "hiking"

	userRepo := newFakeUserRepo(ana, ben, testBrand("brand-1"))
	tripRepo := newFakeTripRepo()
	return NewDiscoveryUseCase(userRepo, tripRepo), tripRepo
}

func addTrip(t *testing.T, tripRepo *fakeTripRepo, creatorID, destination, country string, start, end time.Time) {
	t.Helper()
	require.NoError(t, tripRepo.Create(context.Background(), &entity.Trip{
		CreatorID:   creatorID,
		Destination: destination,
		Country:     country,
		StartDate:   start,
		EndDate:     end,
		Status:      entity.TripStatusPlanned,
	}))
}

func TestSearchCreatorsByNameAndNiche(t *testing.T) {
	uc, _ := newDiscoveryFixture(t)
	ctx := context.Background()

	results, total, err := uc.SearchCreators(ctx, CreatorSearchInput{Query: "ana"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "ana", results[0].ID)

	// Niche text matches too.
	results, _, err = uc.SearchCreators(ctx, CreatorSearchInput{Query: "hiking"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ben", results[0].ID)
}

func TestSearchCreatorsByDestinationAndWindow(t *testing.T) {
	uc, tripRepo := newDiscoveryFixture(t)
	ctx := context.Background()
	now := time.Now()

	addTrip(t, tripRepo, "ana", "Lisbon", "Portugal", now.AddDate(0, 1, 0), now.AddDate(0, 1, 10))
	addTrip(t, tripRepo, "ben", "Oslo", "Norway", now.AddDate(0, 1, 0), now.AddDate(0, 1, 10))

	results, total, err := uc.SearchCreators(ctx, CreatorSearchInput{
		Destination: "lisbon",
		From:        now,
		To:          now.AddDate(0, 2, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "ana", results[0].ID)
	require.Len(t, results[0].UpcomingTrips, 1)
	assert.Equal(t, "Lisbon", results[0].UpcomingTrips[0].Destination)

	// A window the trip does not touch matches nobody.
	results, _, err = uc.SearchCreators(ctx, CreatorSearchInput{
		Destination: "lisbon",
		From:        now.AddDate(1, 0, 0),
		To:          now.AddDate(1, 1, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchCreatorsByCountry(t *testing.T) {
	uc, tripRepo := newDiscoveryFixture(t)
	ctx := context.Background()
	now := time.Now()

	addTrip(t, tripRepo, "ana", "Porto", "Portugal", now.AddDate(0, 1, 0), now.AddDate(0, 1, 5))

	results, _, err := uc.SearchCreators(ctx, CreatorSearchInput{Country: "portugal"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ana", results[0].ID)
}

func TestSearchCreatorsSkipsCompletedTrips(t *testing.T) {
	uc, tripRepo := newDiscoveryFixture(t)
	ctx := context.Background()
	now := time.Now()

	// Ben was in Lisbon last month; a destination search must not surface
	// a trip that already ended.
	addTrip(t, tripRepo, "ben", "Lisbon", "Portugal", now.AddDate(0, -1, 0), now.AddDate(0, 0, -20))

	results, total, err := uc.SearchCreators(ctx, CreatorSearchInput{Destination: "lisbon"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, results)
}

func TestSearchCreatorsWithoutTripFilterKeepsEveryone(t *testing.T) {
	uc, tripRepo := newDiscoveryFixture(t)
	ctx := context.Background()
	now := time.Now()

	addTrip(t, tripRepo, "ben", "Lisbon", "Portugal", now.AddDate(0, -1, 0), now.AddDate(0, 0, -20))

	results, total, err := uc.SearchCreators(ctx, CreatorSearchInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, results, 2)

	// Ben stays listed even though his only trip is over; it just does not
	// show as upcoming.
	for _, r := range results {
		if r.ID == "ben" {
			assert.Empty(t, r.UpcomingTrips)
		}
	}
}

func TestSearchCreatorsPaginates(t *testing.T) {
	uc, _ := newDiscoveryFixture(t)
	ctx := context.Background()

	results, total, err := uc.SearchCreators(ctx, CreatorSearchInput{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, results, 1)
	assert.Equal(t, "ben", results[0].ID)
}

func TestGetPublicProfileHidesFinishedTrips(t *testing.T) {
	uc, tripRepo := newDiscoveryFixture(t)
	ctx := context.Background()
	now := time.Now()

	addTrip(t, tripRepo, "ana", "Lisbon", "Portugal", now.AddDate(0, 1, 0), now.AddDate(0, 1, 10))
	addTrip(t, tripRepo, "ana", "Rome", "Italy", now.AddDate(0, -2, 0), now.AddDate(0, -1, -20))

	profile, err := uc.GetPublicProfile(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, profile.UpcomingTrips, 1)
	assert.Equal(t, "Lisbon", profile.UpcomingTrips[0].Destination)
}
