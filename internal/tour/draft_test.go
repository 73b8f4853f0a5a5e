package tour

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func testRegistry() *Registry {
	return &Registry{
		Tour: Summary{ID: "t1", Title: "Serengeti Migration", DurationDays: 3, BasePrice: 1000, MaxGroupSize: 8},
		Accommodations: []AccommodationOption{
			{ID: "A", Name: "Acacia Camp", Tier: TierMidRange, PricePerNight: 200},
			{ID: "B", Name: "Baobab Lodge", Tier: TierLuxury, PricePerNight: 450},
			{ID: "C", Name: "Crater Tents", Tier: TierBudget, PricePerNight: 90},
		},
		Addons: []AddonOption{
			{ID: "balloon", Name: "Balloon safari", Price: 550, PriceType: PricePerPerson},
			{ID: "boma", Name: "Boma dinner", Price: 300, PriceType: PricePerGroup},
		},
		Vehicles: []VehicleOption{
			{ID: "V1", Type: VehicleLandCruiser, MaxPassengers: 7, PricePerDay: 100, IsDefault: true},
			{ID: "V2", Type: VehicleSafariVan, MaxPassengers: 4, PricePerDay: 150},
		},
		Days: []ItineraryDay{
			{DayNumber: 1, Title: "Day 1", AvailableAccommodationIDs: []string{"A"}, DefaultAccommodationID: strPtr("A"), AvailableAddonIDs: []string{"boma"}},
			{DayNumber: 2, Title: "Day 2", AvailableAccommodationIDs: []string{"A", "B"}, DefaultAccommodationID: strPtr("A"), AvailableAddonIDs: []string{"balloon"}},
			{DayNumber: 3, Title: "Ngorongoro Crater", AvailableAccommodationIDs: []string{}},
		},
	}
}

func assertDefaultInvariant(t *testing.T, reg *Registry) {
	t.Helper()
	for _, d := range reg.Days {
		if d.DefaultAccommodationID == nil {
			continue
		}
		if indexOf(d.AvailableAccommodationIDs, *d.DefaultAccommodationID) < 0 {
			t.Fatalf("day %d default %q not in %v", d.DayNumber, *d.DefaultAccommodationID, d.AvailableAccommodationIDs)
		}
	}
}

func TestToggleDayAccommodation_RemovingDefaultReassigns(t *testing.T) {
	d := NewDraft(testRegistry())

	d.ToggleDayAccommodation(2, "A")

	day, _ := d.Registry().Day(2)
	if len(day.AvailableAccommodationIDs) != 1 || day.AvailableAccommodationIDs[0] != "B" {
		t.Fatalf("expected [B], got %v", day.AvailableAccommodationIDs)
	}
	if day.DefaultAccommodationID == nil || *day.DefaultAccommodationID != "B" {
		t.Fatalf("expected default B, got %v", day.DefaultAccommodationID)
	}
}

func TestToggleDayAccommodation_LastRemovedClearsDefault(t *testing.T) {
	d := NewDraft(testRegistry())

	d.ToggleDayAccommodation(1, "A")

	day, _ := d.Registry().Day(1)
	if len(day.AvailableAccommodationIDs) != 0 {
		t.Fatalf("expected empty set, got %v", day.AvailableAccommodationIDs)
	}
	if day.DefaultAccommodationID != nil {
		t.Fatalf("expected nil default, got %q", *day.DefaultAccommodationID)
	}
}

func TestToggleDayAccommodation_AddingFillsEmptyDefault(t *testing.T) {
	d := NewDraft(testRegistry())

	d.ToggleDayAccommodation(3, "C")

	day, _ := d.Registry().Day(3)
	if day.DefaultAccommodationID == nil || *day.DefaultAccommodationID != "C" {
		t.Fatalf("expected default C, got %v", day.DefaultAccommodationID)
	}

	d.ToggleDayAccommodation(3, "B")
	day, _ = d.Registry().Day(3)
	if *day.DefaultAccommodationID != "C" {
		t.Fatalf("adding a second option must not move the default")
	}
}

func TestToggleDayAccommodation_DefaultInvariantHolds(t *testing.T) {
	d := NewDraft(testRegistry())
	ops := []struct {
		day int
		id  string
	}{
		{2, "B"}, {2, "C"}, {2, "A"}, {1, "B"}, {1, "A"}, {2, "B"},
		{3, "A"}, {3, "A"}, {2, "C"}, {1, "B"}, {9, "A"}, {2, ""},
	}
	for _, op := range ops {
		d.ToggleDayAccommodation(op.day, op.id)
		assertDefaultInvariant(t, d.Registry())
	}
}

func TestSetDefaultAccommodation(t *testing.T) {
	d := NewDraft(testRegistry())

	d.SetDefaultAccommodation(2, "C")
	day, _ := d.Registry().Day(2)
	if *day.DefaultAccommodationID != "A" {
		t.Fatalf("non-member must be a no-op, got %q", *day.DefaultAccommodationID)
	}

	d.SetDefaultAccommodation(2, "B")
	day, _ = d.Registry().Day(2)
	if *day.DefaultAccommodationID != "B" {
		t.Fatalf("expected default B, got %q", *day.DefaultAccommodationID)
	}
	if day.Overnight != "Baobab Lodge" {
		t.Fatalf("expected overnight label to follow default, got %q", day.Overnight)
	}
}

func TestRemoveAccommodationFromPool(t *testing.T) {
	d := NewDraft(testRegistry())

	d.RemoveAccommodationFromPool("A")
	reg := d.Registry()

	if _, ok := reg.Accommodation("A"); ok {
		t.Fatalf("accommodation A still in pool")
	}
	for _, day := range reg.Days {
		if indexOf(day.AvailableAccommodationIDs, "A") >= 0 {
			t.Fatalf("day %d still references A", day.DayNumber)
		}
	}
	day1, _ := reg.Day(1)
	if day1.DefaultAccommodationID != nil {
		t.Fatalf("day 1 default should be nil")
	}
	day2, _ := reg.Day(2)
	if day2.DefaultAccommodationID == nil || *day2.DefaultAccommodationID != "B" {
		t.Fatalf("day 2 default should move to B")
	}
	assertDefaultInvariant(t, reg)
}

func TestRemoveAddonFromPool(t *testing.T) {
	d := NewDraft(testRegistry())

	d.RemoveAddonFromPool("balloon")
	d.RemoveAddonFromPool("unknown")
	reg := d.Registry()

	if len(reg.Addons) != 1 {
		t.Fatalf("expected 1 addon left, got %d", len(reg.Addons))
	}
	day2, _ := reg.Day(2)
	if len(day2.AvailableAddonIDs) != 0 {
		t.Fatalf("expected balloon unlinked from day 2, got %v", day2.AvailableAddonIDs)
	}
}

func TestRemoveDay_RenumbersContiguously(t *testing.T) {
	d := NewDraft(testRegistry())
	d.AddDay()
	d.AddDay()

	d.RemoveDay(2)
	reg := d.Registry()

	if len(reg.Days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(reg.Days))
	}
	for i, day := range reg.Days {
		if day.DayNumber != i+1 {
			t.Fatalf("day at %d has number %d", i, day.DayNumber)
		}
	}
	if reg.Days[1].Title != "Ngorongoro Crater" {
		t.Fatalf("edited title must be kept, got %q", reg.Days[1].Title)
	}
	if reg.Days[2].Title != "Day 3" || reg.Days[3].Title != "Day 4" {
		t.Fatalf("generated titles must follow numbers, got %q %q", reg.Days[2].Title, reg.Days[3].Title)
	}
	if reg.Tour.DurationDays != 4 {
		t.Fatalf("expected duration 4, got %d", reg.Tour.DurationDays)
	}
}

func TestAddDay_StartsWithAllAccommodations(t *testing.T) {
	d := NewDraft(testRegistry())

	n := d.AddDay()
	if n != 4 {
		t.Fatalf("expected day 4, got %d", n)
	}

	day, ok := d.Registry().Day(4)
	if !ok {
		t.Fatalf("day 4 missing")
	}
	if day.Title != "Day 4" {
		t.Fatalf("unexpected title %q", day.Title)
	}
	if len(day.AvailableAccommodationIDs) != 3 {
		t.Fatalf("expected all 3 accommodations, got %v", day.AvailableAccommodationIDs)
	}
	if day.DefaultAccommodationID == nil || *day.DefaultAccommodationID != "A" {
		t.Fatalf("expected default A")
	}
}

func TestAddDay_EmptyPool(t *testing.T) {
	d := NewDraft(&Registry{})

	d.AddDay()
	day, _ := d.Registry().Day(1)
	if day.DefaultAccommodationID != nil {
		t.Fatalf("expected nil default with an empty pool")
	}
}

func countDefaults(reg *Registry) int {
	n := 0
	for _, v := range reg.Vehicles {
		if v.IsDefault {
			n++
		}
	}
	return n
}

func TestSetDefaultVehicle_Unique(t *testing.T) {
	d := NewDraft(testRegistry())

	for _, id := range []string{"V2", "unknown", "V1", "V2"} {
		d.SetDefaultVehicle(id)
		if got := countDefaults(d.Registry()); got != 1 {
			t.Fatalf("after %q expected 1 default, got %d", id, got)
		}
	}
	v, _ := d.Registry().DefaultVehicle()
	if v.ID != "V2" {
		t.Fatalf("expected V2 default, got %s", v.ID)
	}
}

func TestUpsertVehicle(t *testing.T) {
	d := NewDraft(&Registry{})

	d.UpsertVehicle(VehicleOption{ID: "V1", MaxPassengers: 7})
	if v, ok := d.Registry().DefaultVehicle(); !ok || v.ID != "V1" {
		t.Fatalf("first vehicle should become default")
	}

	d.UpsertVehicle(VehicleOption{ID: "V2", MaxPassengers: 4, IsDefault: true})
	reg := d.Registry()
	if countDefaults(reg) != 1 {
		t.Fatalf("expected exactly one default")
	}
	if v, _ := reg.DefaultVehicle(); v.ID != "V2" {
		t.Fatalf("expected V2 default, got %s", v.ID)
	}
}

func TestRemoveVehicle_PromotesFirstRemaining(t *testing.T) {
	d := NewDraft(testRegistry())

	d.RemoveVehicle("V1")
	v, ok := d.Registry().DefaultVehicle()
	if !ok || v.ID != "V2" {
		t.Fatalf("expected V2 promoted")
	}
}

func TestUpdateDay(t *testing.T) {
	d := NewDraft(testRegistry())

	d.UpdateDay(1, DayPatch{
		Title: strPtr("  Arrival in Arusha "),
		Meals: []Meal{MealDinner, "Brunch", MealDinner},
	})
	day, _ := d.Registry().Day(1)
	if day.Title != "Arrival in Arusha" {
		t.Fatalf("unexpected title %q", day.Title)
	}
	if len(day.Meals) != 1 || day.Meals[0] != MealDinner {
		t.Fatalf("unexpected meals %v", day.Meals)
	}
}

func TestDraftDoesNotAliasSource(t *testing.T) {
	src := testRegistry()
	d := NewDraft(src)

	d.ToggleDayAccommodation(2, "A")
	d.RemoveAccommodationFromPool("B")

	if len(src.Accommodations) != 3 {
		t.Fatalf("source pool mutated")
	}
	if *src.Days[1].DefaultAccommodationID != "A" {
		t.Fatalf("source day mutated")
	}
}
