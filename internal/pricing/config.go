package pricing

import "github.com/ololchike/test-app--sub000/internal/tour"

const (
	DefaultChildDiscountPercent = 30
	DefaultServiceFeePercent    = 5
)

// Config is the rule set the engine runs with. Pointer fields are optional
// rules that stay off while nil.
type Config struct {
	ChildDiscountPercent float64  `json:"child_discount_percent"`
	InfantPrice          *float64 `json:"infant_price,omitempty"`
	ServiceFeePercent    float64  `json:"service_fee_percent"`
	ServiceFeeFixed      *float64 `json:"service_fee_fixed,omitempty"`
	DepositPercent       *float64 `json:"deposit_percent,omitempty"`
	DepositMinimum       *float64 `json:"deposit_minimum,omitempty"`

	GroupDiscountThreshold *int     `json:"group_discount_threshold,omitempty"`
	GroupDiscountPercent   *float64 `json:"group_discount_percent,omitempty"`
	EarlyBirdDays          *int     `json:"early_bird_days,omitempty"`
	EarlyBirdPercent       *float64 `json:"early_bird_percent,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		ChildDiscountPercent: DefaultChildDiscountPercent,
		ServiceFeePercent:    DefaultServiceFeePercent,
	}
}

// Merge overlays the fields a tour overrides. A nil override keeps c.
func (c Config) Merge(rules *tour.PricingRules) Config {
	if rules == nil {
		return c
	}
	if rules.ChildDiscountPercent != nil {
		c.ChildDiscountPercent = *rules.ChildDiscountPercent
	}
	if rules.InfantPrice != nil {
		c.InfantPrice = rules.InfantPrice
	}
	if rules.ServiceFeePercent != nil {
		c.ServiceFeePercent = *rules.ServiceFeePercent
	}
	if rules.ServiceFeeFixed != nil {
		c.ServiceFeeFixed = rules.ServiceFeeFixed
	}
	if rules.DepositPercent != nil {
		c.DepositPercent = rules.DepositPercent
	}
	if rules.DepositMinimum != nil {
		c.DepositMinimum = rules.DepositMinimum
	}
	if rules.GroupDiscountThreshold != nil {
		c.GroupDiscountThreshold = rules.GroupDiscountThreshold
	}
	if rules.GroupDiscountPercent != nil {
		c.GroupDiscountPercent = rules.GroupDiscountPercent
	}
	if rules.EarlyBirdDays != nil {
		c.EarlyBirdDays = rules.EarlyBirdDays
	}
	if rules.EarlyBirdPercent != nil {
		c.EarlyBirdPercent = rules.EarlyBirdPercent
	}
	return c
}

// ForTour is the effective config of a loaded registry.
func ForTour(reg *tour.Registry) Config {
	if reg == nil {
		return DefaultConfig()
	}
	return DefaultConfig().Merge(reg.Pricing)
}
