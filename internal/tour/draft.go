package tour

import (
	"fmt"
	"strings"
)

// Draft is the authoring copy of a Registry. Every method keeps the
// itinerary referentially consistent with the pools; unknown ids are no-ops.
type Draft struct {
	reg *Registry
}

func NewDraft(reg *Registry) *Draft {
	if reg == nil {
		reg = &Registry{}
	}
	return &Draft{reg: reg.Clone()}
}

// Registry returns a snapshot of the draft for persistence or pricing.
func (d *Draft) Registry() *Registry {
	return d.reg.Clone()
}

func (d *Draft) day(number int) *ItineraryDay {
	for i := range d.reg.Days {
		if d.reg.Days[i].DayNumber == number {
			return &d.reg.Days[i]
		}
	}
	return nil
}

// ToggleDayAccommodation flips accID in the day's available set.
// Adding fills an empty default; removing the default moves it to the first
// remaining member, or clears it.
func (d *Draft) ToggleDayAccommodation(dayNumber int, accID string) {
	day := d.day(dayNumber)
	if day == nil || accID == "" {
		return
	}
	if idx := indexOf(day.AvailableAccommodationIDs, accID); idx >= 0 {
		day.AvailableAccommodationIDs = removeAt(day.AvailableAccommodationIDs, idx)
		repairDefault(day)
		return
	}
	day.AvailableAccommodationIDs = append(day.AvailableAccommodationIDs, accID)
	if day.DefaultAccommodationID == nil {
		id := accID
		day.DefaultAccommodationID = &id
	}
}

// SetDefaultAccommodation requires accID to already be available on the day.
func (d *Draft) SetDefaultAccommodation(dayNumber int, accID string) {
	day := d.day(dayNumber)
	if day == nil || indexOf(day.AvailableAccommodationIDs, accID) < 0 {
		return
	}
	id := accID
	day.DefaultAccommodationID = &id
	if acc, ok := d.reg.Accommodation(accID); ok {
		day.Overnight = acc.Name
	}
}

func (d *Draft) ToggleDayAddon(dayNumber int, addonID string) {
	day := d.day(dayNumber)
	if day == nil || addonID == "" {
		return
	}
	if idx := indexOf(day.AvailableAddonIDs, addonID); idx >= 0 {
		day.AvailableAddonIDs = removeAt(day.AvailableAddonIDs, idx)
		return
	}
	day.AvailableAddonIDs = append(day.AvailableAddonIDs, addonID)
}

// UpsertAccommodation replaces the option with the same id or appends it.
func (d *Draft) UpsertAccommodation(acc AccommodationOption) {
	if acc.ID == "" {
		return
	}
	for i := range d.reg.Accommodations {
		if d.reg.Accommodations[i].ID == acc.ID {
			d.reg.Accommodations[i] = acc
			d.refreshOvernightLabels(acc)
			return
		}
	}
	d.reg.Accommodations = append(d.reg.Accommodations, acc)
}

func (d *Draft) refreshOvernightLabels(acc AccommodationOption) {
	for i := range d.reg.Days {
		def := d.reg.Days[i].DefaultAccommodationID
		if def != nil && *def == acc.ID {
			d.reg.Days[i].Overnight = acc.Name
		}
	}
}

// RemoveAccommodationFromPool unlinks accID from every day before it goes.
func (d *Draft) RemoveAccommodationFromPool(accID string) {
	idx := -1
	for i, a := range d.reg.Accommodations {
		if a.ID == accID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	d.reg.Accommodations = append(d.reg.Accommodations[:idx], d.reg.Accommodations[idx+1:]...)

	for i := range d.reg.Days {
		day := &d.reg.Days[i]
		if j := indexOf(day.AvailableAccommodationIDs, accID); j >= 0 {
			day.AvailableAccommodationIDs = removeAt(day.AvailableAccommodationIDs, j)
		}
		repairDefault(day)
	}
}

func (d *Draft) UpsertAddon(addon AddonOption) {
	if addon.ID == "" {
		return
	}
	for i := range d.reg.Addons {
		if d.reg.Addons[i].ID == addon.ID {
			d.reg.Addons[i] = addon
			return
		}
	}
	d.reg.Addons = append(d.reg.Addons, addon)
}

func (d *Draft) RemoveAddonFromPool(addonID string) {
	idx := -1
	for i, a := range d.reg.Addons {
		if a.ID == addonID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	d.reg.Addons = append(d.reg.Addons[:idx], d.reg.Addons[idx+1:]...)

	for i := range d.reg.Days {
		day := &d.reg.Days[i]
		if j := indexOf(day.AvailableAddonIDs, addonID); j >= 0 {
			day.AvailableAddonIDs = removeAt(day.AvailableAddonIDs, j)
		}
	}
}

// AddDay appends the next day. New days start with every registry
// accommodation available (authors narrow the list down afterwards).
func (d *Draft) AddDay() int {
	n := len(d.reg.Days) + 1
	ids := make([]string, 0, len(d.reg.Accommodations))
	for _, a := range d.reg.Accommodations {
		ids = append(ids, a.ID)
	}
	day := ItineraryDay{
		DayNumber:                 n,
		Title:                     defaultDayTitle(n),
		AvailableAccommodationIDs: ids,
		AvailableAddonIDs:         []string{},
	}
	if len(d.reg.Accommodations) > 0 {
		first := d.reg.Accommodations[0]
		id := first.ID
		day.DefaultAccommodationID = &id
		day.Overnight = first.Name
	}
	d.reg.Days = append(d.reg.Days, day)
	d.syncDuration()
	return n
}

// RemoveDay deletes the day and renumbers the rest from 1. Auto-generated
// "Day N" titles follow the new number; edited titles are kept.
func (d *Draft) RemoveDay(dayNumber int) {
	idx := -1
	for i, day := range d.reg.Days {
		if day.DayNumber == dayNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	d.reg.Days = append(d.reg.Days[:idx], d.reg.Days[idx+1:]...)

	for i := range d.reg.Days {
		day := &d.reg.Days[i]
		newNumber := i + 1
		if day.Title == defaultDayTitle(day.DayNumber) {
			day.Title = defaultDayTitle(newNumber)
		}
		day.DayNumber = newNumber
	}
	d.syncDuration()
}

func (d *Draft) UpdateDay(dayNumber int, patch DayPatch) {
	day := d.day(dayNumber)
	if day == nil {
		return
	}
	if patch.Title != nil {
		day.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		day.Description = *patch.Description
	}
	if patch.Location != nil {
		day.Location = *patch.Location
	}
	if patch.Meals != nil {
		meals := make([]Meal, 0, len(patch.Meals))
		for _, m := range patch.Meals {
			if m.Valid() && !containsMeal(meals, m) {
				meals = append(meals, m)
			}
		}
		day.Meals = meals
	}
	if patch.Activities != nil {
		day.Activities = cloneStrings(patch.Activities)
	}
}

// UpsertVehicle adds or replaces a vehicle. Flagging it default unsets every
// other default; the first vehicle of an empty registry becomes default.
func (d *Draft) UpsertVehicle(v VehicleOption) {
	if v.ID == "" {
		return
	}
	found := false
	for i := range d.reg.Vehicles {
		if d.reg.Vehicles[i].ID == v.ID {
			d.reg.Vehicles[i] = v
			found = true
			break
		}
	}
	if !found {
		d.reg.Vehicles = append(d.reg.Vehicles, v)
	}
	if v.IsDefault {
		d.SetDefaultVehicle(v.ID)
		return
	}
	if _, ok := d.reg.DefaultVehicle(); !ok {
		d.reg.Vehicles[0].IsDefault = true
	}
}

// RemoveVehicle deletes a vehicle; removing the default promotes the first
// remaining vehicle.
func (d *Draft) RemoveVehicle(vehicleID string) {
	idx := -1
	for i, v := range d.reg.Vehicles {
		if v.ID == vehicleID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	wasDefault := d.reg.Vehicles[idx].IsDefault
	d.reg.Vehicles = append(d.reg.Vehicles[:idx], d.reg.Vehicles[idx+1:]...)
	if wasDefault && len(d.reg.Vehicles) > 0 {
		d.reg.Vehicles[0].IsDefault = true
	}
}

// SetDefaultVehicle leaves exactly one default when vehicleID exists.
func (d *Draft) SetDefaultVehicle(vehicleID string) {
	if _, ok := d.reg.Vehicle(vehicleID); !ok {
		return
	}
	for i := range d.reg.Vehicles {
		d.reg.Vehicles[i].IsDefault = d.reg.Vehicles[i].ID == vehicleID
	}
}

func (d *Draft) SetSummary(s Summary) {
	s.ID = d.reg.Tour.ID
	s.OperatorID = d.reg.Tour.OperatorID
	s.DurationDays = len(d.reg.Days)
	d.reg.Tour = s
}

func (d *Draft) SetPricing(rules *PricingRules) {
	if rules == nil {
		d.reg.Pricing = nil
		return
	}
	p := *rules
	d.reg.Pricing = &p
}

func (d *Draft) syncDuration() {
	d.reg.Tour.DurationDays = len(d.reg.Days)
}

// repairDefault restores the day invariant after its available set shrank.
func repairDefault(day *ItineraryDay) {
	if day.DefaultAccommodationID == nil {
		return
	}
	if indexOf(day.AvailableAccommodationIDs, *day.DefaultAccommodationID) >= 0 {
		return
	}
	if len(day.AvailableAccommodationIDs) == 0 {
		day.DefaultAccommodationID = nil
		day.Overnight = ""
		return
	}
	id := day.AvailableAccommodationIDs[0]
	day.DefaultAccommodationID = &id
}

func defaultDayTitle(n int) string {
	return fmt.Sprintf("Day %d", n)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeAt(ids []string, idx int) []string {
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:idx]...)
	return append(out, ids[idx+1:]...)
}

func containsMeal(meals []Meal, m Meal) bool {
	for _, v := range meals {
		if v == m {
			return true
		}
	}
	return false
}
