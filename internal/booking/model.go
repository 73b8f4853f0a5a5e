package booking

import (
	"time"

	"github.com/ololchike/test-app--sub000/internal/pricing"
	"github.com/ololchike/test-app--sub000/internal/selection"
)

type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusConfirmed      Status = "CONFIRMED" // deposit paid or pay-later
	StatusPaid           Status = "PAID"
	StatusExpired        Status = "EXPIRED"
)

type Contact struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type Traveler struct {
	FullName    string `json:"full_name"`
	Nationality string `json:"nationality"`
	PassportNo  string `json:"passport_no,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

// Booking keeps the pricing snapshot it was submitted with. Reading a
// booking back never re-runs the engine.
type Booking struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	TourID    string `json:"tour_id"`
	TourTitle string `json:"tour_title"`
	UserID    string `json:"user_id,omitempty"`
	Status    Status `json:"status"`

	Contact   Contact             `json:"contact"`
	Travelers []Traveler          `json:"travelers"`
	Selection selection.Selection `json:"selection"`
	Pricing   pricing.Breakdown   `json:"pricing"`

	PromoCodeID *string `json:"promo_code_id,omitempty"`
	AmountPaid  int64   `json:"amount_paid"`
	VoucherURL  *string `json:"voucher_url,omitempty"`

	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Outstanding is what is still owed on the booking.
func (b *Booking) Outstanding() int64 {
	return max(0, b.Pricing.Total-b.AmountPaid)
}
