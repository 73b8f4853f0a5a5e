package tour

// Registry is the per-session catalog of a tour: summary, pools and the
// itinerary template referencing them by id. Checkout code only reads it;
// the authoring wizard edits a Draft built from Clone.
type Registry struct {
	Tour           Summary               `json:"tour"`
	Accommodations []AccommodationOption `json:"accommodations"`
	Addons         []AddonOption         `json:"addons"`
	Vehicles       []VehicleOption       `json:"vehicles"`
	Days           []ItineraryDay        `json:"days"`
	Pricing        *PricingRules         `json:"pricing,omitempty"`
}

func (r *Registry) Accommodation(id string) (AccommodationOption, bool) {
	for _, a := range r.Accommodations {
		if a.ID == id {
			return a, true
		}
	}
	return AccommodationOption{}, false
}

func (r *Registry) Addon(id string) (AddonOption, bool) {
	for _, a := range r.Addons {
		if a.ID == id {
			return a, true
		}
	}
	return AddonOption{}, false
}

func (r *Registry) Vehicle(id string) (VehicleOption, bool) {
	for _, v := range r.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return VehicleOption{}, false
}

// DefaultVehicle returns the vehicle flagged as the included baseline.
func (r *Registry) DefaultVehicle() (VehicleOption, bool) {
	for _, v := range r.Vehicles {
		if v.IsDefault {
			return v, true
		}
	}
	return VehicleOption{}, false
}

func (r *Registry) Day(number int) (ItineraryDay, bool) {
	for _, d := range r.Days {
		if d.DayNumber == number {
			return d, true
		}
	}
	return ItineraryDay{}, false
}

// HasOvernight reports whether the traveler sleeps somewhere at the end of
// the given day. The last day of a tour has no overnight stay.
func (r *Registry) HasOvernight(day int) bool {
	return day >= 1 && day < r.Tour.DurationDays
}

// EffectiveAccommodations returns the accommodations a traveler may pick on
// the given day. An empty available list means every registry accommodation.
func (r *Registry) EffectiveAccommodations(day ItineraryDay) []AccommodationOption {
	if len(day.AvailableAccommodationIDs) == 0 {
		return append([]AccommodationOption(nil), r.Accommodations...)
	}
	out := make([]AccommodationOption, 0, len(day.AvailableAccommodationIDs))
	for _, id := range day.AvailableAccommodationIDs {
		if a, ok := r.Accommodation(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// AddonsForDay returns the add-ons both linked to the day and offered on it.
func (r *Registry) AddonsForDay(day ItineraryDay) []AddonOption {
	out := make([]AddonOption, 0, len(day.AvailableAddonIDs))
	for _, id := range day.AvailableAddonIDs {
		if a, ok := r.Addon(id); ok && a.OfferedOn(day.DayNumber) {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a deep copy; mutating the copy never touches r.
func (r *Registry) Clone() *Registry {
	if r == nil {
		return nil
	}
	c := &Registry{
		Tour:           r.Tour,
		Accommodations: make([]AccommodationOption, len(r.Accommodations)),
		Addons:         make([]AddonOption, len(r.Addons)),
		Vehicles:       make([]VehicleOption, len(r.Vehicles)),
		Days:           make([]ItineraryDay, len(r.Days)),
	}
	c.Tour.ChildPrice = cloneFloat(r.Tour.ChildPrice)
	c.Tour.InfantPrice = cloneFloat(r.Tour.InfantPrice)

	for i, a := range r.Accommodations {
		a.Amenities = cloneStrings(a.Amenities)
		a.Rating = cloneFloat(a.Rating)
		if a.Location != nil {
			loc := *a.Location
			a.Location = &loc
		}
		c.Accommodations[i] = a
	}
	for i, a := range r.Addons {
		a.ChildPrice = cloneFloat(a.ChildPrice)
		if a.MaxCapacity != nil {
			mc := *a.MaxCapacity
			a.MaxCapacity = &mc
		}
		a.Days = append([]int(nil), a.Days...)
		c.Addons[i] = a
	}
	for i, v := range r.Vehicles {
		v.Features = cloneStrings(v.Features)
		c.Vehicles[i] = v
	}
	for i, d := range r.Days {
		c.Days[i] = cloneDay(d)
	}
	if r.Pricing != nil {
		p := *r.Pricing
		c.Pricing = &p
	}
	return c
}

func cloneDay(d ItineraryDay) ItineraryDay {
	d.Meals = append([]Meal(nil), d.Meals...)
	d.Activities = cloneStrings(d.Activities)
	d.AvailableAccommodationIDs = cloneStrings(d.AvailableAccommodationIDs)
	d.AvailableAddonIDs = cloneStrings(d.AvailableAddonIDs)
	if d.DefaultAccommodationID != nil {
		id := *d.DefaultAccommodationID
		d.DefaultAccommodationID = &id
	}
	return d
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
