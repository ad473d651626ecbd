package rules

import (
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

type Slot struct {
	Day   domain.DayOfWeek `json:"day"`
	Shift domain.ShiftKind `json:"shift"`
}

// Criticality scores how urgent a slot is to fill: the remaining need
// weighted against how few candidates are left to cover it. Fully
// staffed slots score zero.
func Criticality(avs map[int64]*domain.WeekAvailability, settings *domain.WeekSettings, day domain.DayOfWeek, shift domain.ShiftKind) float64 {
	target, ok := settings.Target(day, shift)
	if !ok || target <= 0 {
		return 0
	}
	need := target - SlotSelectedCount(avs, shift, day)
	if need <= 0 {
		return 0
	}
	candidates := SlotCandidateCount(avs, shift, day)
	denom := float64(candidates+1) * float64(candidates+1)
	return float64(need) / denom
}

// MostCriticalSlots returns the understaffed slots sharing the highest
// criticality score, in week order. An empty result means every slot
// with a target is covered.
func MostCriticalSlots(avs map[int64]*domain.WeekAvailability, settings *domain.WeekSettings) []Slot {
	var (
		best  float64
		slots []Slot
	)
	for _, day := range domain.Days {
		for _, shift := range domain.Shifts {
			score := Criticality(avs, settings, day, shift)
			if score <= 0 {
				continue
			}
			switch {
			case score > best:
				best = score
				slots = []Slot{{Day: day, Shift: shift}}
			case score == best:
				slots = append(slots, Slot{Day: day, Shift: shift})
			}
		}
	}
	return slots
}

// FullyStaffed reports whether every slot with a staffing target has
// exactly that many employees selected. Publishing requires this.
func FullyStaffed(avs map[int64]*domain.WeekAvailability, settings *domain.WeekSettings) bool {
	for day, row := range settings.NecessaryEmployees {
		for shift, target := range row {
			if SlotSelectedCount(avs, shift, day) != target {
				return false
			}
		}
	}
	return true
}

