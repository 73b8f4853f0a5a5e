package selection

import (
	"testing"
	"time"

	"github.com/ololchike/test-app--sub000/internal/promo"
	"github.com/ololchike/test-app--sub000/internal/tour"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func testRegistry() *tour.Registry {
	return &tour.Registry{
		Tour: tour.Summary{ID: "t1", DurationDays: 3, BasePrice: 1000, MaxGroupSize: 6, DepositEnabled: false},
		Accommodations: []tour.AccommodationOption{
			{ID: "A", Name: "Acacia Camp", PricePerNight: 200},
			{ID: "B", Name: "Baobab Lodge", PricePerNight: 450},
		},
		Addons: []tour.AddonOption{
			{ID: "balloon", Price: 550, PriceType: tour.PricePerPerson},
		},
		Vehicles: []tour.VehicleOption{
			{ID: "V1", MaxPassengers: 7, PricePerDay: 100, IsDefault: true},
			{ID: "V2", MaxPassengers: 4, PricePerDay: 150},
		},
		Days: []tour.ItineraryDay{
			{DayNumber: 1, AvailableAccommodationIDs: []string{"B"}, DefaultAccommodationID: strPtr("B")},
			{DayNumber: 2, AvailableAccommodationIDs: []string{}},
			{DayNumber: 3},
		},
	}
}

func TestSetAdultsAndChildren_Clamp(t *testing.T) {
	s := New()

	s.SetAdults(0, 6)
	if s.Adults != 1 {
		t.Fatalf("adults must not drop below 1, got %d", s.Adults)
	}

	s.SetAdults(4, 6)
	s.SetChildren(5, 6)
	if s.Children != 2 {
		t.Fatalf("expected children clamped to 2, got %d", s.Children)
	}

	s.SetAdults(10, 6)
	if s.Adults != 4 {
		t.Fatalf("expected adults clamped to 4, got %d", s.Adults)
	}

	s.SetChildren(-3, 6)
	if s.Children != 0 {
		t.Fatalf("expected 0 children, got %d", s.Children)
	}

	s.SetAdults(40, 0)
	if s.Adults != 40 {
		t.Fatalf("max group 0 is unbounded, got %d", s.Adults)
	}

	s.SetInfants(-1)
	if s.Infants != 0 {
		t.Fatalf("expected 0 infants, got %d", s.Infants)
	}
}

func TestToggleAddon(t *testing.T) {
	s := New()
	s.SetAdults(2, 0)
	s.SetChildren(1, 0)

	s.ToggleAddon("balloon", nil, nil)
	if len(s.Addons) != 1 || s.Addons[0].Quantity != 3 {
		t.Fatalf("expected quantity to default to group size, got %+v", s.Addons)
	}

	s.ToggleAddon("boma", intPtr(1), intPtr(2))
	if len(s.Addons) != 2 || *s.Addons[1].DayNumber != 2 {
		t.Fatalf("unexpected addons %+v", s.Addons)
	}

	s.ToggleAddon("balloon", nil, nil)
	if len(s.Addons) != 1 || s.Addons[0].AddonID != "boma" {
		t.Fatalf("expected balloon removed, got %+v", s.Addons)
	}
}

func TestSetVehicleQuantity(t *testing.T) {
	s := New()

	s.SetVehicleQuantity("V1", 1)
	s.SetVehicleQuantity("V2", 2)
	s.SetVehicleQuantity("V1", 3)
	if len(s.Vehicles) != 2 || s.Vehicles[0].VehicleID != "V1" || s.Vehicles[0].Quantity != 3 {
		t.Fatalf("unexpected vehicles %+v", s.Vehicles)
	}

	s.SetVehicleQuantity("V1", 0)
	if len(s.Vehicles) != 1 || s.Vehicles[0].VehicleID != "V2" {
		t.Fatalf("expected V1 removed, got %+v", s.Vehicles)
	}

	s.SetVehicleQuantity("V9", -1)
	if len(s.Vehicles) != 1 {
		t.Fatalf("non-positive quantity must not add a line")
	}
}

func TestStartDate(t *testing.T) {
	s := New()
	if _, ok := s.Start(); ok {
		t.Fatalf("unset start date must not parse")
	}

	s.StartDate = "2026-07-14"
	start, ok := s.Start()
	if !ok || start.Month() != 7 || start.Day() != 14 {
		t.Fatalf("unexpected start %v", start)
	}

	s.StartDate = "14/07/2026"
	if _, ok := s.Start(); ok {
		t.Fatalf("malformed date must not parse")
	}

	s.SetStartDate(time.Date(2027, 1, 5, 15, 30, 0, 0, time.UTC))
	if s.StartDate != "2027-01-05" {
		t.Fatalf("SetStartDate wrote %q", s.StartDate)
	}
}

func TestSeed(t *testing.T) {
	s := Seed(testRegistry())

	if s.Adults != 1 || s.PaymentPlan != PlanFull {
		t.Fatalf("unexpected seed %+v", s)
	}
	if s.Accommodations[1] != "B" {
		t.Fatalf("day 1 should use its default B, got %q", s.Accommodations[1])
	}
	if s.Accommodations[2] != "A" {
		t.Fatalf("day 2 should fall back to the first accommodation, got %q", s.Accommodations[2])
	}
	if _, ok := s.Accommodations[3]; ok {
		t.Fatalf("last day has no overnight")
	}
	if len(s.Vehicles) != 1 || s.Vehicles[0].VehicleID != "V1" {
		t.Fatalf("expected default vehicle, got %+v", s.Vehicles)
	}
}

func TestReconcile(t *testing.T) {
	reg := testRegistry()
	in := &Selection{
		Adults:         5,
		Children:       4,
		Accommodations: map[int]string{1: "A", 2: "ghost", 3: "A", 9: "B"},
		Addons:         []AddonLine{{AddonID: "balloon", Quantity: 2}, {AddonID: "gone", Quantity: 1}, {AddonID: "balloon", Quantity: 1, DayNumber: intPtr(12)}},
		Vehicles:       []VehicleLine{{VehicleID: "V2", Quantity: 1}, {VehicleID: "V9", Quantity: 1}},
		Promo:          &promo.Code{ID: "p1"},
		PaymentPlan:    PlanDeposit,
	}

	out := Reconcile(in, reg)

	if out.Accommodations[1] != "B" {
		t.Fatalf("day 1 choice outside the set should fall back to B, got %q", out.Accommodations[1])
	}
	if out.Accommodations[2] != "A" {
		t.Fatalf("day 2 unknown id should fall back to A, got %q", out.Accommodations[2])
	}
	if len(out.Accommodations) != 2 {
		t.Fatalf("days without overnight must be dropped, got %v", out.Accommodations)
	}
	if len(out.Addons) != 1 || len(out.Vehicles) != 1 {
		t.Fatalf("dangling lines must be dropped, got %+v %+v", out.Addons, out.Vehicles)
	}
	if out.Adults != 5 || out.Children != 1 {
		t.Fatalf("expected 5 adults and 1 child, got %d/%d", out.Adults, out.Children)
	}
	if out.PaymentPlan != PlanFull {
		t.Fatalf("deposit plan must fall back when the tour has no deposit")
	}
	if out.Promo == nil {
		t.Fatalf("promo must be kept")
	}

	if in.Accommodations[2] != "ghost" || len(in.Addons) != 3 {
		t.Fatalf("input must not be modified")
	}
}
