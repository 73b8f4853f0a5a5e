package payment

import "time"

type Type string

const (
	TypeDeposit Type = "deposit"
	TypeFull    Type = "full"
	TypeBalance Type = "balance"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

type Payment struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	Method      string    `json:"method"`
	Type        Type      `json:"type"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Status      Status    `json:"status"`
	ProviderRef string    `json:"provider_ref"`
	RedirectURL string    `json:"redirect_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Initiation is what the traveler's browser needs next.
type Initiation struct {
	PaymentRequired bool   `json:"payment_required"`
	PaymentID       string `json:"payment_id,omitempty"`
	RedirectURL     string `json:"redirect_url,omitempty"`
	Amount          int64  `json:"amount"`
}

// WebhookEvent is the gateway's callback body.
type WebhookEvent struct {
	Reference string `json:"reference"`
	Status    string `json:"status"` // succeeded | failed
}
