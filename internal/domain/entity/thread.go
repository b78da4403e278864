package entity

import (
	"sort"
	"strings"
	"time"
)

// ParticipantInfo is the denormalized profile snapshot a thread keeps for
// each participant so conversation lists render without extra lookups.
type ParticipantInfo struct {
	DisplayName string `json:"display_name" firestore:"displayName"`
	AvatarURL   string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Role        string `json:"role" firestore:"role"`
}

// Thread is the single conversation document between a creator and a brand.
// Messages live in the messages subcollection, one document each.
type Thread struct {
	ID            string                     `json:"id" firestore:"id"`
	Participants  []string                   `json:"participants" firestore:"participants"`
	Profiles      map[string]ParticipantInfo `json:"profiles" firestore:"profiles"`
	LastMessage   string                     `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time                  `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount   map[string]int             `json:"unread_count" firestore:"unreadCount"`
	CreatedAt     time.Time                  `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time                  `json:"updated_at" firestore:"updatedAt"`
}

// ThreadIDFor derives the deterministic thread ID for a pair of users:
// the two IDs sorted and joined. Symmetric in its arguments.
func ThreadIDFor(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

func (t *Thread) HasParticipant(userID string) bool {
	for _, p := range t.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID. Empty string
// when userID is not in the thread.
func (t *Thread) OtherParticipant(userID string) string {
	for _, p := range t.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// TypingStatus is a short-lived signal document at
// typingStatus/{threadId_userId}. Readers must ignore expired entries; a
// client that dies mid-type leaves a doc that ages out instead of a stuck
// indicator.
type TypingStatus struct {
	ThreadID  string    `json:"thread_id" firestore:"threadId"`
	UserID    string    `json:"user_id" firestore:"userId"`
	StartedAt time.Time `json:"started_at" firestore:"startedAt"`
	ExpiresAt time.Time `json:"expires_at" firestore:"expiresAt"`
}

func (ts *TypingStatus) Expired(now time.Time) bool {
	return now.After(ts.ExpiresAt)
}
