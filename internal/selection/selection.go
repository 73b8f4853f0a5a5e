package selection

import (
	"time"

	"github.com/ololchike/test-app--sub000/internal/promo"
)

type PaymentPlan string

const (
	PlanFull     PaymentPlan = "full"
	PlanDeposit  PaymentPlan = "deposit"
	PlanPayLater PaymentPlan = "pay-later"
)

func (p PaymentPlan) Valid() bool {
	switch p {
	case PlanFull, PlanDeposit, PlanPayLater:
		return true
	}
	return false
}

// DateLayout is the wire format of StartDate.
const DateLayout = "2006-01-02"

type AddonLine struct {
	AddonID   string `json:"addon_id"`
	Quantity  int    `json:"quantity"`
	DayNumber *int   `json:"day_number,omitempty"`
}

type VehicleLine struct {
	VehicleID string `json:"vehicle_id"`
	Quantity  int    `json:"quantity"`
}

// Selection is one traveler's in-progress choices. It is owned by a single
// request or connection and never shared.
type Selection struct {
	Adults         int            `json:"adults"`
	Children       int            `json:"children"`
	Infants        int            `json:"infants"`
	StartDate      string         `json:"start_date,omitempty"`
	Accommodations map[int]string `json:"accommodations"`
	Addons         []AddonLine    `json:"addons"`
	Vehicles       []VehicleLine  `json:"vehicles"`
	Promo          *promo.Code    `json:"promo,omitempty"`
	PaymentPlan    PaymentPlan    `json:"payment_plan"`
}

func New() *Selection {
	return &Selection{
		Adults:         1,
		Accommodations: make(map[int]string),
		PaymentPlan:    PlanFull,
	}
}

// GroupSize counts the seats that matter for capacity and group limits.
// Infants travel on a lap and are not counted.
func (s *Selection) GroupSize() int {
	return s.Adults + s.Children
}

// SetAdults clamps n to [1, maxGroup-children]. maxGroup 0 means unbounded.
func (s *Selection) SetAdults(n, maxGroup int) {
	upper := -1
	if maxGroup > 0 {
		upper = max(1, maxGroup-s.Children)
	}
	s.Adults = clamp(n, 1, upper)
}

// SetChildren clamps n to [0, maxGroup-adults]. maxGroup 0 means unbounded.
func (s *Selection) SetChildren(n, maxGroup int) {
	upper := -1
	if maxGroup > 0 {
		upper = max(0, maxGroup-s.Adults)
	}
	s.Children = clamp(n, 0, upper)
}

func (s *Selection) SetInfants(n int) {
	s.Infants = max(0, n)
}

// SetAccommodationForDay overwrites the night's choice without checking it
// against the day's available set.
func (s *Selection) SetAccommodationForDay(day int, accID string) {
	if s.Accommodations == nil {
		s.Accommodations = make(map[int]string)
	}
	s.Accommodations[day] = accID
}

// ToggleAddon removes the add-on when selected, otherwise appends it with
// quantity, or the current group size when quantity is nil.
func (s *Selection) ToggleAddon(addonID string, quantity, day *int) {
	for i, line := range s.Addons {
		if line.AddonID == addonID {
			s.Addons = append(s.Addons[:i:i], s.Addons[i+1:]...)
			return
		}
	}

	q := s.GroupSize()
	if quantity != nil {
		q = *quantity
	}
	line := AddonLine{AddonID: addonID, Quantity: q}
	if day != nil {
		d := *day
		line.DayNumber = &d
	}
	s.Addons = append(s.Addons, line)
}

// SetVehicleQuantity updates the line in place, appends a new one, or
// removes it when qty <= 0.
func (s *Selection) SetVehicleQuantity(vehicleID string, qty int) {
	for i, line := range s.Vehicles {
		if line.VehicleID != vehicleID {
			continue
		}
		if qty <= 0 {
			s.Vehicles = append(s.Vehicles[:i:i], s.Vehicles[i+1:]...)
			return
		}
		s.Vehicles[i].Quantity = qty
		return
	}
	if qty > 0 {
		s.Vehicles = append(s.Vehicles, VehicleLine{VehicleID: vehicleID, Quantity: qty})
	}
}

func (s *Selection) SetStartDate(date time.Time) {
	s.StartDate = date.Format(DateLayout)
}

// Start parses StartDate; ok is false when it is unset or malformed.
func (s *Selection) Start() (time.Time, bool) {
	if s.StartDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *Selection) SetPromo(code *promo.Code) {
	s.Promo = code
}

func (s *Selection) ClearPromo() {
	s.Promo = nil
}

func (s *Selection) SetPaymentPlan(plan PaymentPlan) {
	if plan.Valid() {
		s.PaymentPlan = plan
	}
}

// Clone returns a copy that shares no slices or maps with s.
func (s *Selection) Clone() *Selection {
	c := *s
	c.Accommodations = make(map[int]string, len(s.Accommodations))
	for k, v := range s.Accommodations {
		c.Accommodations[k] = v
	}
	c.Addons = make([]AddonLine, len(s.Addons))
	for i, line := range s.Addons {
		if line.DayNumber != nil {
			d := *line.DayNumber
			line.DayNumber = &d
		}
		c.Addons[i] = line
	}
	c.Vehicles = append([]VehicleLine(nil), s.Vehicles...)
	if s.Promo != nil {
		p := *s.Promo
		c.Promo = &p
	}
	return &c
}

// clamp bounds n to [lo, hi]; a negative hi leaves the top open.
func clamp(n, lo, hi int) int {
	if hi >= 0 && n > hi {
		n = hi
	}
	if n < lo {
		n = lo
	}
	return n
}
