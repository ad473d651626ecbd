package rules

import (
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// WeekGrids bundles one employee's grid with the neighbouring weeks, so
// cascades can cross the Saturday/Sunday boundary. Prev and Next are nil
// when the employee has no record for that week.
type WeekGrids struct {
	Key     domain.WeekKey
	Grid    domain.Grid
	PrevKey domain.WeekKey
	Prev    domain.Grid
	NextKey domain.WeekKey
	Next    domain.Grid
}

// cascade accumulates cell changes while mutating cloned grids, so each
// step observes the effect of the previous ones.
type cascade struct {
	w      WeekGrids
	userID int64

	changes []domain.CellChange
}

func newCascade(w WeekGrids, userID int64) *cascade {
	w.Grid = w.Grid.Clone()
	if w.Prev != nil {
		w.Prev = w.Prev.Clone()
	}
	if w.Next != nil {
		w.Next = w.Next.Clone()
	}
	return &cascade{w: w, userID: userID}
}

func (c *cascade) set(key domain.WeekKey, g domain.Grid, shift domain.ShiftKind, day domain.DayOfWeek, status domain.CellStatus) {
	cell := g.Cell(shift, day)
	if cell == nil || cell.Status == status {
		return
	}
	cell.Status = status
	c.changes = append(c.changes, domain.CellChange{
		WeekKey: key,
		UserID:  c.userID,
		Shift:   shift,
		Day:     day,
		Status:  status,
	})
}

func (c *cascade) setCurrent(shift domain.ShiftKind, day domain.DayOfWeek, status domain.CellStatus) {
	c.set(c.w.Key, c.w.Grid, shift, day, status)
}

// SelectionCascade returns the changes implied by selecting a cell: the
// cell itself, the same-day exclusivity locks, and the rest-window lock
// on the adjacent night or morning.
func SelectionCascade(w WeekGrids, userID int64, shift domain.ShiftKind, day domain.DayOfWeek) []domain.CellChange {
	c := newCascade(w, userID)
	c.setCurrent(shift, day, domain.StatusSelected)

	for _, other := range domain.Shifts {
		if other != shift {
			c.setCurrent(other, day, domain.StatusDisabled)
		}
	}

	switch shift {
	case domain.ShiftMorning, domain.ShiftNoon:
		if day == domain.Sunday {
			if c.w.Prev != nil {
				c.set(c.w.PrevKey, c.w.Prev, domain.ShiftNight, domain.Saturday, domain.StatusDisabled)
			}
		} else {
			c.setCurrent(domain.ShiftNight, domain.PreviousDay(day), domain.StatusDisabled)
		}
	case domain.ShiftNight:
		if day == domain.Saturday {
			if c.w.Next != nil {
				c.set(c.w.NextKey, c.w.Next, domain.ShiftMorning, domain.Sunday, domain.StatusDisabled)
				c.set(c.w.NextKey, c.w.Next, domain.ShiftNoon, domain.Sunday, domain.StatusDisabled)
			}
		} else {
			next := domain.NextDay(day)
			c.setCurrent(domain.ShiftMorning, next, domain.StatusDisabled)
			c.setCurrent(domain.ShiftNoon, next, domain.StatusDisabled)
		}
	}

	return c.changes
}

// DeselectionCascade reverses a selection: it re-enables cells that were
// only disabled because of this selection, re-checking the forward
// preconditions so cells still blocked by another selection stay disabled.
func DeselectionCascade(w WeekGrids, userID int64, shift domain.ShiftKind, day domain.DayOfWeek) []domain.CellChange {
	c := newCascade(w, userID)
	c.setCurrent(shift, day, domain.StatusDefault)

	for _, other := range domain.Shifts {
		if other == shift {
			continue
		}
		cell := c.w.Grid.Cell(other, day)
		if cell == nil || cell.Status != domain.StatusDisabled {
			continue
		}
		switch other {
		case domain.ShiftMorning, domain.ShiftNoon:
			if !c.nightSelectedBefore(day) {
				c.setCurrent(other, day, domain.StatusDefault)
			}
		case domain.ShiftNight:
			if !c.morningOrNoonSelectedAfter(day) {
				c.setCurrent(other, day, domain.StatusDefault)
			}
		case domain.ShiftEvening:
			c.setCurrent(other, day, domain.StatusDefault)
		}
	}

	switch shift {
	case domain.ShiftMorning, domain.ShiftNoon:
		c.releasePreviousNight(day)
	case domain.ShiftNight:
		c.releaseNextMorningAndNoon(day)
	}

	return c.changes
}

// nightSelectedBefore reports whether a night shift is selected on the
// evening leading into day.
func (c *cascade) nightSelectedBefore(day domain.DayOfWeek) bool {
	var cell *domain.AvailabilityCell
	if day == domain.Sunday {
		if c.w.Prev == nil {
			return false
		}
		cell = c.w.Prev.Cell(domain.ShiftNight, domain.Saturday)
	} else {
		cell = c.w.Grid.Cell(domain.ShiftNight, domain.PreviousDay(day))
	}
	return cell != nil && cell.Status == domain.StatusSelected
}

// morningOrNoonSelectedAfter reports whether a morning or noon shift is
// selected on the day after day.
func (c *cascade) morningOrNoonSelectedAfter(day domain.DayOfWeek) bool {
	grid := c.w.Grid
	next := domain.NextDay(day)
	if day == domain.Saturday {
		if c.w.Next == nil {
			return false
		}
		grid = c.w.Next
	}
	for _, shift := range []domain.ShiftKind{domain.ShiftMorning, domain.ShiftNoon} {
		if cell := grid.Cell(shift, next); cell != nil && cell.Status == domain.StatusSelected {
			return true
		}
	}
	return false
}

// releasePreviousNight re-enables the night before a deselected morning
// or noon, unless that night is held down by a selection on its own day.
func (c *cascade) releasePreviousNight(day domain.DayOfWeek) {
	key := c.w.Key
	grid := c.w.Grid
	prev := domain.PreviousDay(day)
	if day == domain.Sunday {
		if c.w.Prev == nil {
			return
		}
		key = c.w.PrevKey
		grid = c.w.Prev
	}

	cell := grid.Cell(domain.ShiftNight, prev)
	if cell == nil || cell.Status != domain.StatusDisabled {
		return
	}
	for _, shift := range []domain.ShiftKind{domain.ShiftMorning, domain.ShiftNoon, domain.ShiftEvening} {
		if other := grid.Cell(shift, prev); other != nil && other.Status == domain.StatusSelected {
			return
		}
	}
	c.set(key, grid, domain.ShiftNight, prev, domain.StatusDefault)
}

// releaseNextMorningAndNoon re-enables the morning and noon after a
// deselected night, unless anything on that day is still selected.
func (c *cascade) releaseNextMorningAndNoon(day domain.DayOfWeek) {
	key := c.w.Key
	grid := c.w.Grid
	next := domain.NextDay(day)
	if day == domain.Saturday {
		if c.w.Next == nil {
			return
		}
		key = c.w.NextKey
		grid = c.w.Next
	}

	if grid.SelectedOnDay(next) {
		return
	}
	for _, shift := range []domain.ShiftKind{domain.ShiftMorning, domain.ShiftNoon} {
		if cell := grid.Cell(shift, next); cell != nil && cell.Status == domain.StatusDisabled {
			c.set(key, grid, shift, next, domain.StatusDefault)
		}
	}
}
