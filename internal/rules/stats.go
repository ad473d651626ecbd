package rules

import (
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// shabbatSlots are the shifts that fall within Shabbat: Friday evening
// through Saturday evening. Saturday night is already after Shabbat ends.
var shabbatSlots = map[Slot]struct{}{
	{Day: domain.Friday, Shift: domain.ShiftEvening}:   {},
	{Day: domain.Friday, Shift: domain.ShiftNight}:     {},
	{Day: domain.Saturday, Shift: domain.ShiftMorning}: {},
	{Day: domain.Saturday, Shift: domain.ShiftNoon}:    {},
	{Day: domain.Saturday, Shift: domain.ShiftEvening}: {},
}

// CalculateShiftStats classifies every selected cell in a grid. Shabbat
// takes precedence over night, so Friday's night shift counts as Shabbat.
func CalculateShiftStats(grid domain.Grid) domain.ShiftStats {
	var stats domain.ShiftStats
	for _, day := range domain.Days {
		for _, shift := range domain.Shifts {
			cell := grid.Cell(shift, day)
			if cell == nil || cell.Status != domain.StatusSelected {
				continue
			}
			switch {
			case isShabbat(day, shift):
				stats.ShabbatShifts++
			case shift == domain.ShiftNight:
				stats.NightShifts++
			default:
				stats.RegularShifts++
			}
		}
	}
	return stats
}

func isShabbat(day domain.DayOfWeek, shift domain.ShiftKind) bool {
	_, ok := shabbatSlots[Slot{Day: day, Shift: shift}]
	return ok
}
