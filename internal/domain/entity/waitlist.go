package entity

import "time"

// WaitlistEntry is a pre-launch signup from the public landing pages.
type WaitlistEntry struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	Name      string    `json:"name,omitempty" firestore:"name,omitempty"`
	Role      string    `json:"role" firestore:"role"` // "creator" or "brand"
	Company   string    `json:"company,omitempty" firestore:"company,omitempty"`
	Socials   string    `json:"socials,omitempty" firestore:"socials,omitempty"`
	Source    string    `json:"source,omitempty" firestore:"source,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
