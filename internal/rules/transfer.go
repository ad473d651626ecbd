package rules

import (
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

const maxWeeklyShifts = 6

// EligibleOfferRecipients filters the company's users down to those who
// could take the offered shift: not the giver, under the weekly cap, free
// on that day, and not violating the rest window around a night shift.
// The rest checks stay inside the week, matching how offers are proposed.
func EligibleOfferRecipients(users []*domain.User, avs map[int64]*domain.WeekAvailability, fromUserID int64, shift domain.ShiftKind, day domain.DayOfWeek) []int64 {
	var recipients []int64
	for _, user := range users {
		if user.ID == fromUserID {
			continue
		}

		var grid domain.Grid
		if av := avs[user.ID]; av != nil {
			grid = av.Grid
		}

		if grid.SelectedCount() >= maxWeeklyShifts {
			continue
		}
		if grid.SelectedOnDay(day) {
			continue
		}
		if shift == domain.ShiftMorning || shift == domain.ShiftNoon {
			if prev, ok := domain.DayBefore(day); ok && isSelected(grid, domain.ShiftNight, prev) {
				continue
			}
		}
		if shift == domain.ShiftNight {
			if next, ok := domain.DayAfter(day); ok &&
				(isSelected(grid, domain.ShiftMorning, next) || isSelected(grid, domain.ShiftNoon, next)) {
				continue
			}
		}

		recipients = append(recipients, user.ID)
	}
	return recipients
}

// SwapProposal describes a proposed exchange between two employees,
// each giving up the shift they currently hold.
type SwapProposal struct {
	MyUserID    int64
	MyShift     domain.ShiftKind
	MyDay       domain.DayOfWeek
	TheirUserID int64
	TheirShift  domain.ShiftKind
	TheirDay    domain.DayOfWeek
}

// CheckSwapConflicts validates a proposal before it is submitted for
// approval. Each side must be free on the day they would take over, and
// the rest window around night shifts must hold for the shift received.
func CheckSwapConflicts(avs map[int64]*domain.WeekAvailability, p SwapProposal) error {
	myGrid := gridOf(avs, p.MyUserID)
	theirGrid := gridOf(avs, p.TheirUserID)

	if myGrid.SelectedOnDay(p.TheirDay) {
		return failf("You are already assigned to a shift on %s.", p.TheirDay)
	}
	if theirGrid.SelectedOnDay(p.MyDay) {
		return failf("The other employee is already assigned to a shift on %s.", p.MyDay)
	}

	if err := receiveConflicts(myGrid, p.TheirShift, p.TheirDay, "You"); err != nil {
		return err
	}
	if err := receiveConflicts(theirGrid, p.MyShift, p.MyDay, "The other employee"); err != nil {
		return err
	}
	return nil
}

// receiveConflicts checks the rest rules for one side taking over a shift.
func receiveConflicts(grid domain.Grid, shift domain.ShiftKind, day domain.DayOfWeek, who string) error {
	prev, hasPrev := domain.DayBefore(day)
	next, hasNext := domain.DayAfter(day)

	if shift == domain.ShiftNight {
		if hasNext && (isSelected(grid, domain.ShiftMorning, next) || isSelected(grid, domain.ShiftNoon, next)) {
			return failf("%s would work a morning or noon shift right after that night shift.", who)
		}
		if hasPrev && (isSelected(grid, domain.ShiftMorning, prev) || isSelected(grid, domain.ShiftNoon, prev)) {
			return failf("%s would work a night shift right after a morning or noon shift.", who)
		}
	}
	if shift == domain.ShiftMorning || shift == domain.ShiftNoon {
		if hasPrev && isSelected(grid, domain.ShiftNight, prev) {
			return failf("%s would work a morning or noon shift right after a night shift.", who)
		}
	}
	return nil
}

func gridOf(avs map[int64]*domain.WeekAvailability, userID int64) domain.Grid {
	if av := avs[userID]; av != nil {
		return av.Grid
	}
	return nil
}

func isSelected(grid domain.Grid, shift domain.ShiftKind, day domain.DayOfWeek) bool {
	cell := grid.Cell(shift, day)
	return cell != nil && cell.Status == domain.StatusSelected
}
