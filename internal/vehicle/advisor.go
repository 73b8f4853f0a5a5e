package vehicle

import (
	"sort"

	"github.com/ololchike/test-app--sub000/internal/selection"
	"github.com/ololchike/test-app--sub000/internal/tour"
)

// Advice compares a traveler's vehicle lines with the cheapest cover of the
// group. It is informational only; nothing blocks on it.
type Advice struct {
	Required           int                     `json:"required"`
	Current            int                     `json:"current_capacity"`
	Suggested          []selection.VehicleLine `json:"suggested"`
	SuggestedCapacity  int                     `json:"suggested_capacity"`
	SuggestedDailyCost float64                 `json:"suggested_daily_cost"`
	UnderCapacity      bool                    `json:"under_capacity"`
	MatchesSuggestion  bool                    `json:"matches_suggestion"`
}

// Suggest returns the cheapest per-day combination of vehicles seating at
// least need passengers. On a cost tie it takes one more unit of the larger
// type, which keeps the number of distinct types down.
func Suggest(vehicles []tour.VehicleOption, need int) []selection.VehicleLine {
	if need <= 0 {
		return []selection.VehicleLine{}
	}

	candidates := make([]tour.VehicleOption, 0, len(vehicles))
	for _, v := range vehicles {
		if v.MaxPassengers > 0 {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return []selection.VehicleLine{}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.MaxPassengers != b.MaxPassengers {
			return a.MaxPassengers > b.MaxPassengers
		}
		if a.PricePerDay != b.PricePerDay {
			return a.PricePerDay < b.PricePerDay
		}
		return a.ID < b.ID
	})

	lines, _ := cover(candidates, need)
	return lines
}

// cover assigns full units of the largest type, then settles the remainder
// with whichever is cheaper: one more unit of this type or the cover of the
// remainder by the smaller types. The smallest type rounds up.
func cover(candidates []tour.VehicleOption, need int) ([]selection.VehicleLine, float64) {
	v := candidates[0]
	full := need / v.MaxPassengers
	rem := need % v.MaxPassengers

	if rem == 0 {
		return []selection.VehicleLine{{VehicleID: v.ID, Quantity: full}}, float64(full) * v.PricePerDay
	}

	oneMore := []selection.VehicleLine{{VehicleID: v.ID, Quantity: full + 1}}
	oneMoreCost := float64(full+1) * v.PricePerDay
	if len(candidates) == 1 {
		return oneMore, oneMoreCost
	}

	rest, restCost := cover(candidates[1:], rem)
	splitCost := float64(full)*v.PricePerDay + restCost
	if oneMoreCost <= splitCost {
		return oneMore, oneMoreCost
	}

	lines := make([]selection.VehicleLine, 0, len(rest)+1)
	if full > 0 {
		lines = append(lines, selection.VehicleLine{VehicleID: v.ID, Quantity: full})
	}
	return append(lines, rest...), splitCost
}

// CurrentCapacity sums seats over the lines that resolve to a vehicle.
func CurrentCapacity(lines []selection.VehicleLine, vehicles []tour.VehicleOption) int {
	total := 0
	for _, line := range lines {
		if v, ok := find(vehicles, line.VehicleID); ok && line.Quantity > 0 {
			total += v.MaxPassengers * line.Quantity
		}
	}
	return total
}

func DailyCost(lines []selection.VehicleLine, vehicles []tour.VehicleOption) float64 {
	var total float64
	for _, line := range lines {
		if v, ok := find(vehicles, line.VehicleID); ok && line.Quantity > 0 {
			total += v.PricePerDay * float64(line.Quantity)
		}
	}
	return total
}

// Compare builds the advice for the current lines. A tour without vehicles
// imposes no capacity constraint.
func Compare(lines []selection.VehicleLine, vehicles []tour.VehicleOption, groupSize int) Advice {
	suggested := Suggest(vehicles, groupSize)
	current := CurrentCapacity(lines, vehicles)

	return Advice{
		Required:           groupSize,
		Current:            current,
		Suggested:          suggested,
		SuggestedCapacity:  CurrentCapacity(suggested, vehicles),
		SuggestedDailyCost: DailyCost(suggested, vehicles),
		UnderCapacity:      len(vehicles) > 0 && groupSize > current,
		MatchesSuggestion:  sameLines(lines, suggested),
	}
}

func sameLines(a, b []selection.VehicleLine) bool {
	count := func(lines []selection.VehicleLine) map[string]int {
		m := make(map[string]int)
		for _, l := range lines {
			if l.Quantity > 0 {
				m[l.VehicleID] += l.Quantity
			}
		}
		return m
	}
	ma, mb := count(a), count(b)
	if len(ma) != len(mb) {
		return false
	}
	for id, q := range ma {
		if mb[id] != q {
			return false
		}
	}
	return true
}

func find(vehicles []tour.VehicleOption, id string) (tour.VehicleOption, bool) {
	for _, v := range vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return tour.VehicleOption{}, false
}
