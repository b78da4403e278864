package entity

import "time"

const (
	MessageTypeText   = "text"
	MessageTypeOffer  = "offer"
	MessageTypeSystem = "system"
)

const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusRejected = "rejected"
	OfferStatusPaid     = "paid"
)

// TripRef is the trip snapshot embedded in an offer. It is copied at offer
// time so later edits to the travel plan don't rewrite negotiation history.
type TripRef struct {
	TripID      string    `json:"trip_id,omitempty" firestore:"tripId,omitempty"`
	Destination string    `json:"destination" firestore:"destination"`
	Country     string    `json:"country" firestore:"country"`
	StartDate   time.Time `json:"start_date" firestore:"startDate"`
	EndDate     time.Time `json:"end_date" firestore:"endDate"`
}

// OfferDetails is the payload carried by an offer-typed message. OfferID
// doubles as the order document ID once the offer is accepted.
type OfferDetails struct {
	OfferID     string    `json:"offer_id" firestore:"offerId"`
	Trip        TripRef   `json:"trip" firestore:"trip"`
	Description string    `json:"description" firestore:"description"`
	Price       float64   `json:"price" firestore:"price"`
	Status      string    `json:"status" firestore:"status"` // pending, accepted, rejected, paid
	RespondedBy string    `json:"responded_by,omitempty" firestore:"respondedBy,omitempty"`
	RespondedAt time.Time `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
}

// Message is one document in a thread's messages subcollection. The Type tag
// picks the variant: text messages carry Content, offers carry Offer, system
// messages carry the dual-perspective CreatorText/BrandText pair.
type Message struct {
	ID       string `json:"id" firestore:"id"`
	ThreadID string `json:"thread_id" firestore:"threadId"`
	SenderID string `json:"sender_id" firestore:"senderId"`
	Type     string `json:"type" firestore:"type"`     // "text", "offer", "system"
	Status   string `json:"status" firestore:"status"` // "sent", "delivered", "read"

	Content string        `json:"content,omitempty" firestore:"content,omitempty"`
	Offer   *OfferDetails `json:"offer,omitempty" firestore:"offer,omitempty"`

	// System messages render differently per audience.
	CreatorText string `json:"creator_text,omitempty" firestore:"creatorText,omitempty"`
	BrandText   string `json:"brand_text,omitempty" firestore:"brandText,omitempty"`
	SystemKind  string `json:"system_kind,omitempty" firestore:"systemKind,omitempty"`

	ReadBy    []string  `json:"read_by" firestore:"readBy"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// TextFor returns the rendering of a system message for the given audience
// role; other message types just return Content.
func (m *Message) TextFor(role string) string {
	if m.Type != MessageTypeSystem {
		return m.Content
	}
	if role == RoleCreator && m.CreatorText != "" {
		return m.CreatorText
	}
	if role == RoleBrand && m.BrandText != "" {
		return m.BrandText
	}
	return m.Content
}
