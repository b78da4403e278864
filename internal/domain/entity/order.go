package entity

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
)

// Deliverable is one file the creator handed over for an order.
type Deliverable struct {
	ID         string    `json:"id" firestore:"id"`
	FileName   string    `json:"file_name" firestore:"fileName"`
	FileType   string    `json:"file_type" firestore:"fileType"`
	FileSize   int64     `json:"file_size" firestore:"fileSize"`
	URL        string    `json:"url" firestore:"url"`
	Caption    string    `json:"caption,omitempty" firestore:"caption,omitempty"`
	UploadedAt time.Time `json:"uploaded_at" firestore:"uploadedAt"`
}

// Order is the billing/work-tracking record for an accepted offer. Its
// document ID equals the originating offer ID, which makes order creation
// idempotent on accept retries.
type Order struct {
	ID        string `json:"id" firestore:"id"` // == OfferDetails.OfferID
	ThreadID  string `json:"thread_id" firestore:"threadId"`
	MessageID string `json:"message_id" firestore:"messageId"`
	BrandID   string `json:"brand_id" firestore:"brandId"`
	CreatorID string `json:"creator_id" firestore:"creatorId"`

	Trip        TripRef `json:"trip" firestore:"trip"`
	Description string  `json:"description" firestore:"description"`
	Amount      float64 `json:"amount" firestore:"amount"`

	Status string `json:"status" firestore:"status"` // pending -> paid -> in_progress -> completed

	MidtransToken       string `json:"midtrans_token,omitempty" firestore:"midtransToken,omitempty"`
	MidtransRedirectURL string `json:"midtrans_redirect_url,omitempty" firestore:"midtransRedirectUrl,omitempty"`
	PaymentType         string `json:"payment_type,omitempty" firestore:"paymentType,omitempty"`

	Deliverables []Deliverable `json:"deliverables,omitempty" firestore:"deliverables,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	PaidAt      *time.Time `json:"paid_at,omitempty" firestore:"paidAt,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty" firestore:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}

// CanTransitionTo enforces the linear order lifecycle.
func (o *Order) CanTransitionTo(status string) bool {
	switch o.Status {
	case OrderStatusPending:
		return status == OrderStatusPaid
	case OrderStatusPaid:
		return status == OrderStatusInProgress
	case OrderStatusInProgress:
		return status == OrderStatusCompleted
	default:
		return false
	}
}
