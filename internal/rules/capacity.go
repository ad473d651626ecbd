package rules

import (
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// CanSelect checks the capacity gates for turning a default cell into a
// selected one. The slot must still need people and the employee must be
// under their weekly quota. A quota of zero means the employee may not be
// scheduled this week; a missing slot target means the slot is closed.
func CanSelect(cell *domain.AvailabilityCell, slotSelected int, slotTarget int, hasSlotTarget bool, userSelected int, userTarget int) error {
	if cell == nil || !cell.IsAvailable {
		return failf("This shift was not marked as available.")
	}
	if !hasSlotTarget || slotTarget <= 0 {
		return failf("No employees are needed for this shift.")
	}
	if slotSelected >= slotTarget {
		return failf("This shift is already fully staffed.")
	}
	if userSelected >= userTarget {
		return failf("This employee already reached their weekly shift target.")
	}
	return nil
}

// SlotSelectedCount counts how many employees are selected for a slot
// across all availabilities of the week.
func SlotSelectedCount(avs map[int64]*domain.WeekAvailability, shift domain.ShiftKind, day domain.DayOfWeek) int {
	count := 0
	for _, av := range avs {
		if av == nil {
			continue
		}
		if cell := av.Grid.Cell(shift, day); cell != nil && cell.Status == domain.StatusSelected {
			count++
		}
	}
	return count
}

// SlotCandidateCount counts employees still able to take a slot: the cell
// is available and neither selected nor blocked by an adjacent selection.
func SlotCandidateCount(avs map[int64]*domain.WeekAvailability, shift domain.ShiftKind, day domain.DayOfWeek) int {
	count := 0
	for _, av := range avs {
		if av == nil {
			continue
		}
		if cell := av.Grid.Cell(shift, day); cell != nil && cell.IsAvailable && cell.Status == domain.StatusDefault {
			count++
		}
	}
	return count
}
