package tour

// Tier is the accommodation category. Ordered budget < mid-range < luxury < ultra-luxury.
type Tier string

const (
	TierBudget      Tier = "budget"
	TierMidRange    Tier = "mid-range"
	TierLuxury      Tier = "luxury"
	TierUltraLuxury Tier = "ultra-luxury"
)

func (t Tier) Valid() bool {
	return t.Rank() > 0
}

// Rank returns 1..4 for known tiers and 0 otherwise.
func (t Tier) Rank() int {
	switch t {
	case TierBudget:
		return 1
	case TierMidRange:
		return 2
	case TierLuxury:
		return 3
	case TierUltraLuxury:
		return 4
	default:
		return 0
	}
}

// PriceType controls how an add-on price scales with quantity.
type PriceType string

const (
	PricePerPerson PriceType = "per-person"
	PricePerGroup  PriceType = "per-group"
	PriceFlat      PriceType = "flat"
)

func (p PriceType) Valid() bool {
	switch p {
	case PricePerPerson, PricePerGroup, PriceFlat:
		return true
	}
	return false
}

type Meal string

const (
	MealBreakfast Meal = "Breakfast"
	MealLunch     Meal = "Lunch"
	MealDinner    Meal = "Dinner"
)

func (m Meal) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

type VehicleType string

const (
	VehicleLandCruiser   VehicleType = "land-cruiser"
	VehicleSafariVan     VehicleType = "safari-van"
	VehicleMinibus       VehicleType = "minibus"
	VehicleOverlandTruck VehicleType = "overland-truck"
	VehiclePrivate4x4    VehicleType = "private-4x4"
)

func (v VehicleType) Valid() bool {
	switch v {
	case VehicleLandCruiser, VehicleSafariVan, VehicleMinibus, VehicleOverlandTruck, VehiclePrivate4x4:
		return true
	}
	return false
}

// Summary is the tour-level data the pricing engine needs.
type Summary struct {
	ID                string   `json:"id"`
	OperatorID        string   `json:"operator_id"`
	Title             string   `json:"title"`
	Slug              string   `json:"slug"`
	Currency          string   `json:"currency"`
	DurationDays      int      `json:"duration_days"`
	BasePrice         float64  `json:"base_price"`
	ChildPrice        *float64 `json:"child_price,omitempty"`
	InfantPrice       *float64 `json:"infant_price,omitempty"`
	MaxGroupSize      int      `json:"max_group_size"`
	DepositEnabled    bool     `json:"deposit_enabled"`
	DepositPercentage float64  `json:"deposit_percentage"`
}

type AccommodationOption struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Tier          Tier     `json:"tier"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
	Rating        *float64 `json:"rating,omitempty"`
	Location      *string  `json:"location,omitempty"`
}

type AddonOption struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	PriceType   PriceType `json:"price_type"`
	ChildPrice  *float64  `json:"child_price,omitempty"`
	Duration    string    `json:"duration"`
	MaxCapacity *int      `json:"max_capacity,omitempty"`
	Days        []int     `json:"days"` // empty = offered on every day
	Popular     bool      `json:"popular"`
}

// OfferedOn reports whether the add-on is offered on the given day.
func (a AddonOption) OfferedOn(day int) bool {
	if len(a.Days) == 0 {
		return true
	}
	for _, d := range a.Days {
		if d == day {
			return true
		}
	}
	return false
}

type VehicleOption struct {
	ID            string      `json:"id"`
	Type          VehicleType `json:"type"`
	Name          string      `json:"name"`
	MaxPassengers int         `json:"max_passengers"`
	PricePerDay   float64     `json:"price_per_day"`
	Features      []string    `json:"features"`
	IsDefault     bool        `json:"is_default"`
}

// ItineraryDay references pool entries by id.
// DefaultAccommodationID is nil or a member of AvailableAccommodationIDs.
type ItineraryDay struct {
	DayNumber                 int      `json:"day_number"`
	Title                     string   `json:"title"`
	Description               string   `json:"description"`
	Location                  string   `json:"location"`
	Overnight                 string   `json:"overnight"`
	Meals                     []Meal   `json:"meals"`
	Activities                []string `json:"activities"`
	AvailableAccommodationIDs []string `json:"available_accommodation_ids"`
	DefaultAccommodationID    *string  `json:"default_accommodation_id"`
	AvailableAddonIDs         []string `json:"available_addon_ids"`
}

// PricingRules is the per-tour pricing override as persisted. Nil fields
// fall back to the engine defaults.
type PricingRules struct {
	ChildDiscountPercent   *float64 `json:"child_discount_percent,omitempty"`
	InfantPrice            *float64 `json:"infant_price,omitempty"`
	ServiceFeePercent      *float64 `json:"service_fee_percent,omitempty"`
	ServiceFeeFixed        *float64 `json:"service_fee_fixed,omitempty"`
	DepositPercent         *float64 `json:"deposit_percent,omitempty"`
	DepositMinimum         *float64 `json:"deposit_minimum,omitempty"`
	GroupDiscountThreshold *int     `json:"group_discount_threshold,omitempty"`
	GroupDiscountPercent   *float64 `json:"group_discount_percent,omitempty"`
	EarlyBirdDays          *int     `json:"early_bird_days,omitempty"`
	EarlyBirdPercent       *float64 `json:"early_bird_percent,omitempty"`
}

// DayPatch carries the free-text day fields the authoring wizard may edit.
type DayPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Meals       []Meal   `json:"meals,omitempty"`
	Activities  []string `json:"activities,omitempty"`
}
