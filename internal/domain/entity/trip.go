package entity

import "time"

const (
	TripStatusPlanned   = "planned"
	TripStatusActive    = "active"
	TripStatusCompleted = "completed"
)

// Trip is a creator's travel plan, stored under users/{uid}/travelPlans.
type Trip struct {
	ID          string    `json:"id" firestore:"id"`
	CreatorID   string    `json:"creator_id" firestore:"creatorId"`
	Destination string    `json:"destination" firestore:"destination"`
	Country     string    `json:"country" firestore:"country"`
	StartDate   time.Time `json:"start_date" firestore:"startDate"`
	EndDate     time.Time `json:"end_date" firestore:"endDate"`
	Notes       string    `json:"notes,omitempty" firestore:"notes,omitempty"`

	// Status as the creator set it. Display surfaces should prefer
	// DisplayStatus(now), which derives from the dates; the stored value is
	// never rewritten behind the creator's back.
	Status string `json:"status" firestore:"status"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DisplayStatus derives the status from the trip dates. A trip whose window
// contains now is active regardless of the stored field; a trip whose window
// has passed is completed.
func (t *Trip) DisplayStatus(now time.Time) string {
	if now.Before(t.StartDate) {
		return TripStatusPlanned
	}
	if now.After(t.EndDate) {
		return TripStatusCompleted
	}
	return TripStatusActive
}

// Overlaps reports whether the trip window intersects [from, to].
func (t *Trip) Overlaps(from, to time.Time) bool {
	return !t.EndDate.Before(from) && !t.StartDate.After(to)
}
