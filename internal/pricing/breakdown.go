package pricing

import (
	"github.com/ololchike/test-app--sub000/internal/selection"
	"github.com/ololchike/test-app--sub000/internal/tour"
)

type DiscountKind string

const (
	DiscountGroup     DiscountKind = "group"
	DiscountEarlyBird DiscountKind = "early-bird"
	DiscountPromo     DiscountKind = "promo"
)

type AccommodationLine struct {
	Day             int       `json:"day"`
	AccommodationID string    `json:"accommodation_id"`
	Name            string    `json:"name"`
	Tier            tour.Tier `json:"tier"`
	Amount          int64     `json:"amount"`
}

type AddonLine struct {
	AddonID   string         `json:"addon_id"`
	Name      string         `json:"name"`
	PriceType tour.PriceType `json:"price_type"`
	Quantity  int            `json:"quantity"`
	Day       *int           `json:"day,omitempty"`
	Amount    int64          `json:"amount"`
}

type VehicleLine struct {
	VehicleID string `json:"vehicle_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Days      int    `json:"days"`
	Upgrade   bool   `json:"upgrade"`
	Amount    int64  `json:"amount"`
}

type DiscountLine struct {
	Kind   DiscountKind `json:"kind"`
	Label  string       `json:"label"`
	Amount int64        `json:"amount"`
}

// Breakdown is the itemized result of Compute. Every amount is in whole
// currency units; line slices sum to their matching totals.
type Breakdown struct {
	Currency     string `json:"currency"`
	DurationDays int    `json:"duration_days"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	Infants      int    `json:"infants"`
	GroupSize    int    `json:"group_size"`

	ChildPricePerPerson  int64 `json:"child_price_per_person"`
	InfantPricePerPerson int64 `json:"infant_price_per_person"`

	Base          int64 `json:"base_total"`
	Child         int64 `json:"child_total"`
	Infant        int64 `json:"infant_total"`
	Vehicle       int64 `json:"vehicle_total"`
	Accommodation int64 `json:"accommodation_total"`
	Addons        int64 `json:"addons_total"`
	Subtotal      int64 `json:"subtotal"`
	ServiceFee    int64 `json:"service_fee"`
	Discount      int64 `json:"discount"`
	Total         int64 `json:"total"`
	Deposit       int64 `json:"deposit_amount"`
	Balance       int64 `json:"balance_amount"`
	DueNow        int64 `json:"due_now"`

	PaymentPlan selection.PaymentPlan `json:"payment_plan"`
	PromoCodeID string                `json:"promo_code_id,omitempty"`

	AccommodationLines []AccommodationLine `json:"accommodation_breakdown"`
	AddonLines         []AddonLine         `json:"addons_breakdown"`
	VehicleLines       []VehicleLine       `json:"vehicle_breakdown"`
	DiscountLines      []DiscountLine      `json:"discount_breakdown"`
}
