package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTripDisplayStatus(t *testing.T) {
	trip := &Trip{
		Destination: "Lisbon",
		StartDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		Status:      TripStatusPlanned,
	}

	before := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	during := time.Date(2026, 10, 7, 12, 0, 0, 0, time.UTC)
	after := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, TripStatusPlanned, trip.DisplayStatus(before))
	assert.Equal(t, TripStatusActive, trip.DisplayStatus(during))
	assert.Equal(t, TripStatusCompleted, trip.DisplayStatus(after))
}

func TestTripDisplayStatusIgnoresStaleStoredStatus(t *testing.T) {
	// The stored status says planned, but the window contains now.
	trip := &Trip{
		StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Status:    TripStatusPlanned,
	}

	now := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, TripStatusActive, trip.DisplayStatus(now))
	// The stored field is untouched.
	assert.Equal(t, TripStatusPlanned, trip.Status)
}

func TestTripOverlaps(t *testing.T) {
	trip := &Trip{
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"window inside trip", "2026-10-05", "2026-10-07", true},
		{"trip inside window", "2026-09-01", "2026-11-01", true},
		{"overlap at start", "2026-09-20", "2026-10-02", true},
		{"overlap at end", "2026-10-13", "2026-10-20", true},
		{"before trip", "2026-09-01", "2026-09-30", false},
		{"after trip", "2026-10-15", "2026-10-31", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, _ := time.Parse("2006-01-02", tt.from)
			to, _ := time.Parse("2006-01-02", tt.to)
			assert.Equal(t, tt.want, trip.Overlaps(from, to))
		})
	}
}
