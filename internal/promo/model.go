package promo

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (d DiscountType) Valid() bool {
	return d == DiscountPercentage || d == DiscountFixed
}

// Code is the promo record handed to the pricing engine. Only ID, Code,
// DiscountAmount and DiscountType take part in pricing; the rest gates
// validation.
type Code struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	DiscountAmount float64      `json:"discount_amount"`
	DiscountType   DiscountType `json:"discount_type"`

	TourID     *string    `json:"tour_id,omitempty"`
	MinAmount  *float64   `json:"min_amount,omitempty"`
	MaxUses    *int       `json:"max_uses,omitempty"`
	Uses       int        `json:"uses"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Active     bool       `json:"active"`
}
