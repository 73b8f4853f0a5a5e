package tour

import (
	"errors"

	"github.com/google/uuid"
)

var ErrUnknownOp = errors.New("unknown draft operation")

type OpKind string

const (
	OpToggleDayAccommodation  OpKind = "toggle_day_accommodation"
	OpSetDefaultAccommodation OpKind = "set_default_accommodation"
	OpToggleDayAddon          OpKind = "toggle_day_addon"
	OpUpsertAccommodation     OpKind = "upsert_accommodation"
	OpRemoveAccommodation     OpKind = "remove_accommodation"
	OpUpsertAddon             OpKind = "upsert_addon"
	OpRemoveAddon             OpKind = "remove_addon"
	OpUpsertVehicle           OpKind = "upsert_vehicle"
	OpRemoveVehicle           OpKind = "remove_vehicle"
	OpSetDefaultVehicle       OpKind = "set_default_vehicle"
	OpAddDay                  OpKind = "add_day"
	OpRemoveDay               OpKind = "remove_day"
	OpUpdateDay               OpKind = "update_day"
	OpSetSummary              OpKind = "set_summary"
	OpSetPricing              OpKind = "set_pricing"
)

// Op is one wizard edit as it arrives over the wire. Only the fields the
// kind needs are read.
type Op struct {
	Kind          OpKind               `json:"op"`
	Day           int                  `json:"day,omitempty"`
	ID            string               `json:"id,omitempty"`
	Accommodation *AccommodationOption `json:"accommodation,omitempty"`
	Addon         *AddonOption         `json:"addon,omitempty"`
	Vehicle       *VehicleOption       `json:"vehicle,omitempty"`
	Patch         *DayPatch            `json:"patch,omitempty"`
	Summary       *Summary             `json:"summary,omitempty"`
	Pricing       *PricingRules        `json:"pricing,omitempty"`
}

// Apply dispatches op to the matching maintainer method. Missing payloads
// are no-ops like unknown ids; only an unknown kind is an error.
func (d *Draft) Apply(op Op) error {
	switch op.Kind {
	case OpToggleDayAccommodation:
		d.ToggleDayAccommodation(op.Day, op.ID)
	case OpSetDefaultAccommodation:
		d.SetDefaultAccommodation(op.Day, op.ID)
	case OpToggleDayAddon:
		d.ToggleDayAddon(op.Day, op.ID)
	case OpUpsertAccommodation:
		if op.Accommodation != nil {
			acc := *op.Accommodation
			if acc.ID == "" {
				acc.ID = uuid.New().String()
			}
			d.UpsertAccommodation(acc)
		}
	case OpRemoveAccommodation:
		d.RemoveAccommodationFromPool(op.ID)
	case OpUpsertAddon:
		if op.Addon != nil {
			addon := *op.Addon
			if addon.ID == "" {
				addon.ID = uuid.New().String()
			}
			d.UpsertAddon(addon)
		}
	case OpRemoveAddon:
		d.RemoveAddonFromPool(op.ID)
	case OpUpsertVehicle:
		if op.Vehicle != nil {
			v := *op.Vehicle
			if v.ID == "" {
				v.ID = uuid.New().String()
			}
			d.UpsertVehicle(v)
		}
	case OpRemoveVehicle:
		d.RemoveVehicle(op.ID)
	case OpSetDefaultVehicle:
		d.SetDefaultVehicle(op.ID)
	case OpAddDay:
		d.AddDay()
	case OpRemoveDay:
		d.RemoveDay(op.Day)
	case OpUpdateDay:
		if op.Patch != nil {
			d.UpdateDay(op.Day, *op.Patch)
		}
	case OpSetSummary:
		if op.Summary != nil {
			d.SetSummary(*op.Summary)
		}
	case OpSetPricing:
		d.SetPricing(op.Pricing)
	default:
		return ErrUnknownOp
	}
	return nil
}

// Normalize brings a registry received wholesale (PUT of the full draft)
// back to a consistent state: days numbered 1..n, dangling ids dropped,
// defaults repaired and at most one default vehicle.
func (d *Draft) Normalize() {
	reg := d.reg

	for i := range reg.Days {
		day := &reg.Days[i]
		day.DayNumber = i + 1

		kept := day.AvailableAccommodationIDs[:0]
		for _, id := range day.AvailableAccommodationIDs {
			if _, ok := reg.Accommodation(id); ok && indexOf(kept, id) < 0 {
				kept = append(kept, id)
			}
		}
		day.AvailableAccommodationIDs = kept
		repairDefault(day)

		addons := day.AvailableAddonIDs[:0]
		for _, id := range day.AvailableAddonIDs {
			if _, ok := reg.Addon(id); ok && indexOf(addons, id) < 0 {
				addons = append(addons, id)
			}
		}
		day.AvailableAddonIDs = addons
	}

	if len(reg.Vehicles) > 0 {
		target := reg.Vehicles[0].ID
		if v, ok := reg.DefaultVehicle(); ok {
			target = v.ID
		}
		d.SetDefaultVehicle(target)
	}
	d.syncDuration()
}
