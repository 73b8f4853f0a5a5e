package selection

import (
	"sort"

	"github.com/ololchike/test-app--sub000/internal/tour"
)

// Seed returns the selection a customize view starts from: one adult, the
// default accommodation on every overnight day and one default vehicle.
func Seed(reg *tour.Registry) *Selection {
	s := New()
	if reg == nil {
		return s
	}

	for _, day := range reg.Days {
		if !reg.HasOvernight(day.DayNumber) {
			continue
		}
		if id, ok := dayDefault(reg, day); ok {
			s.Accommodations[day.DayNumber] = id
		}
	}

	if v, ok := reg.DefaultVehicle(); ok {
		s.Vehicles = []VehicleLine{{VehicleID: v.ID, Quantity: 1}}
	}
	return s
}

// Reconcile heals a selection after the registry it points at changed.
// The input is left untouched.
func Reconcile(in *Selection, reg *tour.Registry) *Selection {
	s := in.Clone()
	if reg == nil {
		return s
	}

	days := make([]int, 0, len(s.Accommodations))
	for day := range s.Accommodations {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, dayNumber := range days {
		accID := s.Accommodations[dayNumber]
		day, ok := reg.Day(dayNumber)
		if !ok || !reg.HasOvernight(dayNumber) {
			delete(s.Accommodations, dayNumber)
			continue
		}
		if offered(reg, day, accID) {
			continue
		}
		if id, ok := dayDefault(reg, day); ok {
			s.Accommodations[dayNumber] = id
		} else {
			delete(s.Accommodations, dayNumber)
		}
	}

	addons := s.Addons[:0]
	for _, line := range s.Addons {
		if _, ok := reg.Addon(line.AddonID); !ok {
			continue
		}
		if line.DayNumber != nil {
			if _, ok := reg.Day(*line.DayNumber); !ok {
				continue
			}
		}
		addons = append(addons, line)
	}
	s.Addons = addons

	vehicles := s.Vehicles[:0]
	for _, line := range s.Vehicles {
		if _, ok := reg.Vehicle(line.VehicleID); ok && line.Quantity > 0 {
			vehicles = append(vehicles, line)
		}
	}
	s.Vehicles = vehicles

	// Adults win over children when the group no longer fits.
	children := s.Children
	s.Children = 0
	s.SetAdults(s.Adults, reg.Tour.MaxGroupSize)
	s.SetChildren(children, reg.Tour.MaxGroupSize)
	s.SetInfants(s.Infants)

	if !s.PaymentPlan.Valid() || (s.PaymentPlan == PlanDeposit && !reg.Tour.DepositEnabled) {
		s.PaymentPlan = PlanFull
	}
	return s
}

func offered(reg *tour.Registry, day tour.ItineraryDay, accID string) bool {
	for _, a := range reg.EffectiveAccommodations(day) {
		if a.ID == accID {
			return true
		}
	}
	return false
}

// dayDefault is the day's default when it still resolves, otherwise the
// first effective accommodation.
func dayDefault(reg *tour.Registry, day tour.ItineraryDay) (string, bool) {
	if day.DefaultAccommodationID != nil {
		if _, ok := reg.Accommodation(*day.DefaultAccommodationID); ok {
			return *day.DefaultAccommodationID, true
		}
	}
	effective := reg.EffectiveAccommodations(day)
	if len(effective) == 0 {
		return "", false
	}
	return effective[0].ID, true
}
