package pricing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ololchike/test-app--sub000/internal/promo"
	"github.com/ololchike/test-app--sub000/internal/selection"
	"github.com/ololchike/test-app--sub000/internal/tour"
)

// Input is everything Compute reads. AsOf stands in for "today" in the
// early-bird rule.
type Input struct {
	Registry  *tour.Registry
	Selection *selection.Selection
	Config    Config
	AsOf      time.Time
}

// Compute prices a selection against a registry.
// PURE: no I/O, no clock, never fails. References that do not resolve
// contribute zero.
func Compute(in Input) Breakdown {
	reg := in.Registry
	if reg == nil {
		reg = &tour.Registry{}
	}
	sel := in.Selection
	if sel == nil {
		sel = selection.New()
	}
	cfg := in.Config
	t := reg.Tour

	b := Breakdown{
		Currency:     t.Currency,
		DurationDays: t.DurationDays,
		Adults:       max(0, sel.Adults),
		Children:     max(0, sel.Children),
		Infants:      max(0, sel.Infants),
		PaymentPlan:  sel.PaymentPlan,
	}
	b.GroupSize = b.Adults + b.Children

	// 1. adults at the base price
	b.Base = round(t.BasePrice * float64(b.Adults))

	// 2. children at the tour price or the discounted base price
	if t.ChildPrice != nil {
		b.ChildPricePerPerson = round(*t.ChildPrice)
	} else {
		b.ChildPricePerPerson = round(t.BasePrice * (1 - cfg.ChildDiscountPercent/100))
	}
	b.Child = b.ChildPricePerPerson * int64(b.Children)

	// 3. infants
	switch {
	case cfg.InfantPrice != nil:
		b.InfantPricePerPerson = round(*cfg.InfantPrice)
	case t.InfantPrice != nil:
		b.InfantPricePerPerson = round(*t.InfantPrice)
	}
	b.Infant = b.InfantPricePerPerson * int64(b.Infants)

	// 4. vehicles, priced as the difference to the included default
	b.VehicleLines = vehicleLines(reg, sel)
	for _, l := range b.VehicleLines {
		b.Vehicle += l.Amount
	}

	// 5. accommodation per night, by day
	b.AccommodationLines = accommodationLines(reg, sel)
	for _, l := range b.AccommodationLines {
		b.Accommodation += l.Amount
	}

	// 6. add-ons in selection order
	b.AddonLines = addonLines(reg, sel)
	for _, l := range b.AddonLines {
		b.Addons += l.Amount
	}

	// 7.
	b.Subtotal = b.Base + b.Child + b.Infant + b.Vehicle + b.Accommodation + b.Addons

	// 8.
	if cfg.ServiceFeeFixed != nil {
		b.ServiceFee = round(*cfg.ServiceFeeFixed)
	} else {
		b.ServiceFee = percentOf(b.Subtotal, cfg.ServiceFeePercent)
	}

	// 9. group, early-bird and promo discounts stack
	b.DiscountLines = discountLines(b, cfg, sel, in.AsOf)
	for _, l := range b.DiscountLines {
		b.Discount += l.Amount
	}
	if sel.Promo != nil {
		b.PromoCodeID = sel.Promo.ID
	}

	// 10.
	b.Total = max(0, b.Subtotal+b.ServiceFee-b.Discount)

	// 11-12.
	b.Deposit = deposit(b.Total, t, cfg)
	b.Balance = b.Total - b.Deposit

	switch sel.PaymentPlan {
	case selection.PlanDeposit:
		b.DueNow = b.Deposit
	case selection.PlanPayLater:
		b.DueNow = 0
	default:
		b.DueNow = b.Total
	}

	return b
}

func vehicleLines(reg *tour.Registry, sel *selection.Selection) []VehicleLine {
	days := float64(reg.Tour.DurationDays)
	def, hasDefault := reg.DefaultVehicle()

	lines := make([]VehicleLine, 0, len(sel.Vehicles))
	for _, line := range sel.Vehicles {
		v, ok := reg.Vehicle(line.VehicleID)
		if !ok || line.Quantity <= 0 {
			continue
		}
		perDay := v.PricePerDay
		if hasDefault {
			// may go negative for a cheaper vehicle; not floored
			perDay = v.PricePerDay - def.PricePerDay
		}
		lines = append(lines, VehicleLine{
			VehicleID: v.ID,
			Name:      v.Name,
			Quantity:  line.Quantity,
			Days:      reg.Tour.DurationDays,
			Upgrade:   hasDefault,
			Amount:    round(perDay * days * float64(line.Quantity)),
		})
	}
	return lines
}

func accommodationLines(reg *tour.Registry, sel *selection.Selection) []AccommodationLine {
	days := make([]int, 0, len(sel.Accommodations))
	for day := range sel.Accommodations {
		days = append(days, day)
	}
	sort.Ints(days)

	lines := make([]AccommodationLine, 0, len(days))
	for _, day := range days {
		acc, ok := reg.Accommodation(sel.Accommodations[day])
		if !ok {
			continue
		}
		lines = append(lines, AccommodationLine{
			Day:             day,
			AccommodationID: acc.ID,
			Name:            acc.Name,
			Tier:            acc.Tier,
			Amount:          round(acc.PricePerNight),
		})
	}
	return lines
}

func addonLines(reg *tour.Registry, sel *selection.Selection) []AddonLine {
	lines := make([]AddonLine, 0, len(sel.Addons))
	for _, line := range sel.Addons {
		addon, ok := reg.Addon(line.AddonID)
		if !ok {
			continue
		}
		qty := max(0, line.Quantity)

		var amount int64
		switch addon.PriceType {
		case tour.PricePerPerson:
			amount = round(addon.Price * float64(qty))
		case tour.PricePerGroup, tour.PriceFlat:
			amount = round(addon.Price)
		}

		l := AddonLine{
			AddonID:   addon.ID,
			Name:      addon.Name,
			PriceType: addon.PriceType,
			Quantity:  qty,
			Amount:    amount,
		}
		if line.DayNumber != nil {
			d := *line.DayNumber
			l.Day = &d
		}
		lines = append(lines, l)
	}
	return lines
}

func discountLines(b Breakdown, cfg Config, sel *selection.Selection, asOf time.Time) []DiscountLine {
	var lines []DiscountLine

	if cfg.GroupDiscountThreshold != nil && cfg.GroupDiscountPercent != nil &&
		b.GroupSize >= *cfg.GroupDiscountThreshold {
		lines = append(lines, DiscountLine{
			Kind:   DiscountGroup,
			Label:  fmt.Sprintf("Group of %d+", *cfg.GroupDiscountThreshold),
			Amount: percentOf(b.Subtotal, *cfg.GroupDiscountPercent),
		})
	}

	if cfg.EarlyBirdDays != nil && cfg.EarlyBirdPercent != nil {
		if start, ok := sel.Start(); ok && !asOf.IsZero() &&
			daysBetween(asOf, start) >= *cfg.EarlyBirdDays {
			lines = append(lines, DiscountLine{
				Kind:   DiscountEarlyBird,
				Label:  fmt.Sprintf("Booked %d+ days ahead", *cfg.EarlyBirdDays),
				Amount: percentOf(b.Subtotal, *cfg.EarlyBirdPercent),
			})
		}
	}

	if p := sel.Promo; p != nil {
		var amount int64
		switch p.DiscountType {
		case promo.DiscountPercentage:
			amount = percentOf(b.Subtotal, p.DiscountAmount)
		case promo.DiscountFixed:
			amount = round(p.DiscountAmount)
		}
		lines = append(lines, DiscountLine{
			Kind:   DiscountPromo,
			Label:  p.Code,
			Amount: amount,
		})
	}

	return lines
}

// deposit returns the share due up front. Without the deposit feature the
// whole total is due.
func deposit(total int64, t tour.Summary, cfg Config) int64 {
	if !t.DepositEnabled {
		return total
	}

	pct := t.DepositPercentage
	if cfg.DepositPercent != nil {
		pct = *cfg.DepositPercent
	}
	amount := percentOf(total, pct)

	if cfg.DepositMinimum != nil {
		if minimum := round(*cfg.DepositMinimum); amount < minimum {
			amount = minimum
		}
	}
	return min(max(0, amount), total)
}

// daysBetween counts calendar days from asOf to start, both taken as UTC
// dates.
func daysBetween(asOf, start time.Time) int {
	from := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func percentOf(amount int64, pct float64) int64 {
	return round(float64(amount) * pct / 100)
}

// round is half-up to a whole unit, matching how prices are shown.
func round(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
