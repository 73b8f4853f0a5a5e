package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CheckoutRequest is sent to the gateway to open a hosted checkout.
type CheckoutRequest struct {
	PaymentID   string `json:"payment_id"`
	BookingRef  string `json:"booking_reference"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Method      string `json:"method"`
	Email       string `json:"customer_email"`
	ReturnURL   string `json:"return_url"`
	Description string `json:"description"`
}

// Gateway opens a hosted checkout and returns where to send the traveler
// plus the provider's reference for the webhook.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (redirectURL, providerRef string, err error)
}

type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCheckout makes a single attempt; the traveler retries by paying
// again.
func (g *HTTPGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, string, error) {
	if g.baseURL == "" {
		return "", "", errors.New("missing PAYMENT_GATEWAY_URL")
	}
	if g.apiKey == "" {
		return "", "", errors.New("missing PAYMENT_GATEWAY_KEY")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", "", err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.baseURL+"/checkouts",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Idempotency-Key", req.PaymentID)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", "", fmt.Errorf("payment gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("payment gateway error %d: %s", resp.StatusCode, string(raw))
	}

	var result struct {
		RedirectURL string `json:"redirect_url"`
		Reference   string `json:"reference"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", "", fmt.Errorf("decode gateway response: %w", err)
	}
	if result.RedirectURL == "" || result.Reference == "" {
		return "", "", errors.New("empty gateway response")
	}

	return result.RedirectURL, result.Reference, nil
}
