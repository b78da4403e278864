package service

import "context"

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type PaymentItemDetail struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	Quantity int32   `json:"quantity"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
}

type PaymentGatewayRequest struct {
	OrderID         string
	Amount          float64
	CustomerDetails CustomerDetails
	ItemDetails     []PaymentItemDetail
}

type PaymentGatewayResponse struct {
	Token       string `json:"token,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
	OrderID     string `json:"order_id"`
	Status      string `json:"status"` // pending, success, failure
	PaymentType string `json:"payment_type,omitempty"`
}

// PaymentService abstracts the hosted checkout provider. The backend only
// ever requests a session and interprets status callbacks; the payment page
// itself is the vendor's.
type PaymentService interface {
	CreatePayment(ctx context.Context, req PaymentGatewayRequest) (*PaymentGatewayResponse, error)
	GetPaymentStatus(ctx context.Context, orderID string) (*PaymentGatewayResponse, error)
	HandleCallback(ctx context.Context, notification map[string]interface{}) (*PaymentGatewayResponse, error)
}
