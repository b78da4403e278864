package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tripcollab/pkg/logger"
)

// MidtransPaymentService talks to the Midtrans Snap HTTP API directly.
type MidtransPaymentService struct {
	serverKey    string
	clientKey    string
	isProduction bool
	snapBaseURL  string
	apiBaseURL   string
	finishURL    string
	httpClient   *http.Client
}

func NewMidtransPaymentService(serverKey, clientKey string, isProduction bool, finishURL string) *MidtransPaymentService {
	snapBaseURL := "https://app.sandbox.midtrans.com/snap/v1"
	apiBaseURL := "https://api.sandbox.midtrans.com/v2"
	if isProduction {
		snapBaseURL = "https://app.midtrans.com/snap/v1"
		apiBaseURL = "https://api.midtrans.com/v2"
	}

	return &MidtransPaymentService{
		serverKey:    serverKey,
		clientKey:    clientKey,
		isProduction: isProduction,
		snapBaseURL:  snapBaseURL,
		apiBaseURL:   apiBaseURL,
		finishURL:    finishURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

type midtransSnapRequest struct {
	TransactionDetails midtransTransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails            `json:"customer_details"`
	ItemDetails        []PaymentItemDetail        `json:"item_details"`
	Callbacks          *midtransCallbacks         `json:"callbacks,omitempty"`
}

type midtransTransactionDetails struct {
	OrderID     string  `json:"order_id"`
	GrossAmount float64 `json:"gross_amount"`
}

type midtransCallbacks struct {
	Finish string `json:"finish"`
}

type midtransSnapResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

func (mps *MidtransPaymentService) CreatePayment(ctx context.Context, req PaymentGatewayRequest) (*PaymentGatewayResponse, error) {
	logger.Info("Creating Midtrans checkout session for order %s, amount %.0f", req.OrderID, req.Amount)

	snapReq := midtransSnapRequest{
		TransactionDetails: midtransTransactionDetails{
			OrderID:     req.OrderID,
			GrossAmount: req.Amount,
		},
		CustomerDetails: req.CustomerDetails,
		ItemDetails:     req.ItemDetails,
	}
	if mps.finishURL != "" {
		snapReq.Callbacks = &midtransCallbacks{Finish: mps.finishURL}
	}

	jsonData, err := json.Marshal(snapReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snap request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, mps.snapBaseURL+"/transactions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	mps.setHeaders(httpReq)

	resp, err := mps.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call midtrans: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		logger.Error("Midtrans snap API error for order %s: %s", req.OrderID, string(body))
		return nil, fmt.Errorf("midtrans API error: %s", string(body))
	}

	var snapResp midtransSnapResponse
	if err := json.Unmarshal(body, &snapResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &PaymentGatewayResponse{
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
		OrderID:     req.OrderID,
		Status:      "pending",
	}, nil
}

func (mps *MidtransPaymentService) GetPaymentStatus(ctx context.Context, orderID string) (*PaymentGatewayResponse, error) {
	statusURL := fmt.Sprintf("%s/%s/status", mps.apiBaseURL, orderID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	mps.setHeaders(httpReq)

	resp, err := mps.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call midtrans: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("Midtrans status API error for order %s: %s", orderID, string(body))
		return nil, fmt.Errorf("midtrans status API error: %s", string(body))
	}

	var statusResp map[string]interface{}
	if err := json.Unmarshal(body, &statusResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	transactionStatus, _ := statusResp["transaction_status"].(string)
	paymentType, _ := statusResp["payment_type"].(string)

	return &PaymentGatewayResponse{
		OrderID:     orderID,
		Status:      mapMidtransStatus(transactionStatus),
		PaymentType: paymentType,
	}, nil
}

func (mps *MidtransPaymentService) HandleCallback(ctx context.Context, notification map[string]interface{}) (*PaymentGatewayResponse, error) {
	orderID, ok := notification["order_id"].(string)
	if !ok {
		return nil, fmt.Errorf("order_id not found in notification")
	}

	transactionStatus, ok := notification["transaction_status"].(string)
	if !ok {
		transactionStatus = "pending"
	}
	paymentType, _ := notification["payment_type"].(string)

	status := mapMidtransStatus(transactionStatus)
	logger.Info("Midtrans callback for order %s: %s -> %s", orderID, transactionStatus, status)

	return &PaymentGatewayResponse{
		OrderID:     orderID,
		Status:      status,
		PaymentType: paymentType,
	}, nil
}

func (mps *MidtransPaymentService) setHeaders(req *http.Request) {
	authHeader := base64.StdEncoding.EncodeToString([]byte(mps.serverKey + ":"))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+authHeader)
}

func mapMidtransStatus(transactionStatus string) string {
	switch transactionStatus {
	case "settlement", "capture":
		return "success"
	case "cancel", "deny", "expire":
		return "failure"
	default:
		return "pending"
	}
}
