package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

const (
	weekCurrent  domain.WeekKey = "week_2025_08_03"
	weekPrevious domain.WeekKey = "week_2025_07_27"
	weekNext     domain.WeekKey = "week_2025_08_10"
)

func currentOnly(grid domain.Grid) WeekGrids {
	return WeekGrids{
		Key:     weekCurrent,
		Grid:    grid,
		PrevKey: weekPrevious,
		NextKey: weekNext,
	}
}

func findChange(changes []domain.CellChange, week domain.WeekKey, shift domain.ShiftKind, day domain.DayOfWeek) (domain.CellChange, bool) {
	for _, ch := range changes {
		if ch.WeekKey == week && ch.Shift == shift && ch.Day == day {
			return ch, true
		}
	}
	return domain.CellChange{}, false
}

func applyChanges(t *testing.T, grids map[domain.WeekKey]domain.Grid, changes []domain.CellChange) {
	t.Helper()
	for _, ch := range changes {
		grid, ok := grids[ch.WeekKey]
		require.True(t, ok, "change targets unknown week %s", ch.WeekKey)
		cell := grid.Cell(ch.Shift, ch.Day)
		require.NotNil(t, cell)
		cell.Status = ch.Status
	}
}

func TestSelectionCascadeMidweekMorning(t *testing.T) {
	grid := domain.NewGrid()
	changes := SelectionCascade(currentOnly(grid), 1, domain.ShiftMorning, domain.Wednesday)

	ch, ok := findChange(changes, weekCurrent, domain.ShiftMorning, domain.Wednesday)
	require.True(t, ok)
	assert.Equal(t, domain.StatusSelected, ch.Status)

	// same-day exclusivity
	for _, shift := range []domain.ShiftKind{domain.ShiftNoon, domain.ShiftEvening, domain.ShiftNight} {
		ch, ok := findChange(changes, weekCurrent, shift, domain.Wednesday)
		require.True(t, ok, "expected %s to be disabled", shift)
		assert.Equal(t, domain.StatusDisabled, ch.Status)
	}

	// the night leading into the morning is blocked
	ch, ok = findChange(changes, weekCurrent, domain.ShiftNight, domain.Tuesday)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDisabled, ch.Status)

	assert.Len(t, changes, 5)
}

func TestSelectionCascadeMidweekNight(t *testing.T) {
	grid := domain.NewGrid()
	changes := SelectionCascade(currentOnly(grid), 1, domain.ShiftNight, domain.Wednesday)

	for _, shift := range []domain.ShiftKind{domain.ShiftMorning, domain.ShiftNoon} {
		ch, ok := findChange(changes, weekCurrent, shift, domain.Thursday)
		require.True(t, ok, "expected %s on Thursday to be disabled", shift)
		assert.Equal(t, domain.StatusDisabled, ch.Status)
	}
	assert.Len(t, changes, 6)
}

func TestSelectionCascadeSundayMorningCrossesWeek(t *testing.T) {
	w := currentOnly(domain.NewGrid())
	w.Prev = domain.NewGrid()

	changes := SelectionCascade(w, 1, domain.ShiftMorning, domain.Sunday)

	ch, ok := findChange(changes, weekPrevious, domain.ShiftNight, domain.Saturday)
	require.True(t, ok, "previous week's Saturday night should be disabled")
	assert.Equal(t, domain.StatusDisabled, ch.Status)
}

func TestSelectionCascadeSundayMorningWithoutPreviousWeek(t *testing.T) {
	changes := SelectionCascade(currentOnly(domain.NewGrid()), 1, domain.ShiftMorning, domain.Sunday)

	for _, ch := range changes {
		assert.Equal(t, weekCurrent, ch.WeekKey)
	}
}

func TestSelectionCascadeSaturdayNightCrossesWeek(t *testing.T) {
	w := currentOnly(domain.NewGrid())
	w.Next = domain.NewGrid()

	changes := SelectionCascade(w, 1, domain.ShiftNight, domain.Saturday)

	for _, shift := range []domain.ShiftKind{domain.ShiftMorning, domain.ShiftNoon} {
		ch, ok := findChange(changes, weekNext, shift, domain.Sunday)
		require.True(t, ok, "next week's Sunday %s should be disabled", shift)
		assert.Equal(t, domain.StatusDisabled, ch.Status)
	}
}

func TestDeselectionCascadeRoundTrip(t *testing.T) {
	grid := domain.NewGrid()
	grids := map[domain.WeekKey]domain.Grid{weekCurrent: grid}

	applyChanges(t, grids, SelectionCascade(currentOnly(grid), 1, domain.ShiftNight, domain.Wednesday))
	applyChanges(t, grids, DeselectionCascade(currentOnly(grid), 1, domain.ShiftNight, domain.Wednesday))

	for _, day := range domain.Days {
		for _, shift := range domain.Shifts {
			assert.Equal(t, domain.StatusDefault, grid.Cell(shift, day).Status,
				"%s %s should be back to default", day, shift)
		}
	}
}

func TestDeselectionCascadeRoundTripAcrossWeeks(t *testing.T) {
	grid := domain.NewGrid()
	prev := domain.NewGrid()
	grids := map[domain.WeekKey]domain.Grid{weekCurrent: grid, weekPrevious: prev}

	w := currentOnly(grid)
	w.Prev = prev

	applyChanges(t, grids, SelectionCascade(w, 1, domain.ShiftMorning, domain.Sunday))
	require.Equal(t, domain.StatusDisabled, prev.Cell(domain.ShiftNight, domain.Saturday).Status)

	applyChanges(t, grids, DeselectionCascade(w, 1, domain.ShiftMorning, domain.Sunday))
	assert.Equal(t, domain.StatusDefault, prev.Cell(domain.ShiftNight, domain.Saturday).Status)
}

func TestDeselectionKeepsNightBlockedByOtherSelection(t *testing.T) {
	// Night on Tuesday stays disabled after deselecting Wednesday morning,
	// because Tuesday evening is still selected.
	grid := gridWith(t,
		cell(domain.ShiftEvening, domain.Tuesday, true, domain.StatusSelected),
		cell(domain.ShiftNight, domain.Tuesday, true, domain.StatusDisabled),
		cell(domain.ShiftMorning, domain.Wednesday, true, domain.StatusSelected),
		cell(domain.ShiftNoon, domain.Wednesday, true, domain.StatusDisabled),
		cell(domain.ShiftEvening, domain.Wednesday, true, domain.StatusDisabled),
		cell(domain.ShiftNight, domain.Wednesday, true, domain.StatusDisabled),
	)

	changes := DeselectionCascade(currentOnly(grid), 1, domain.ShiftMorning, domain.Wednesday)

	_, ok := findChange(changes, weekCurrent, domain.ShiftNight, domain.Tuesday)
	assert.False(t, ok, "Tuesday night must stay disabled")
}

func TestDeselectionKeepsMorningBlockedBySelectedNightBefore(t *testing.T) {
	// Deselecting Wednesday evening re-enables Wednesday night, but the
	// morning and noon stay blocked by Tuesday's selected night.
	grid := gridWith(t,
		cell(domain.ShiftMorning, domain.Tuesday, true, domain.StatusDisabled),
		cell(domain.ShiftNoon, domain.Tuesday, true, domain.StatusDisabled),
		cell(domain.ShiftEvening, domain.Tuesday, true, domain.StatusDisabled),
		cell(domain.ShiftNight, domain.Tuesday, true, domain.StatusSelected),
		cell(domain.ShiftMorning, domain.Wednesday, true, domain.StatusDisabled),
		cell(domain.ShiftNoon, domain.Wednesday, true, domain.StatusDisabled),
		cell(domain.ShiftEvening, domain.Wednesday, true, domain.StatusSelected),
		cell(domain.ShiftNight, domain.Wednesday, true, domain.StatusDisabled),
	)

	changes := DeselectionCascade(currentOnly(grid), 1, domain.ShiftEvening, domain.Wednesday)

	_, ok := findChange(changes, weekCurrent, domain.ShiftMorning, domain.Wednesday)
	assert.False(t, ok, "Wednesday morning must stay disabled")
	_, ok = findChange(changes, weekCurrent, domain.ShiftNoon, domain.Wednesday)
	assert.False(t, ok, "Wednesday noon must stay disabled")

	ch, ok := findChange(changes, weekCurrent, domain.ShiftNight, domain.Wednesday)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDefault, ch.Status)
}

func TestDeselectNightKeepsNextDayBlockedWhileSelected(t *testing.T) {
	// Thursday evening is selected, so deselecting Wednesday night must
	// not re-enable Thursday morning or noon.
	grid := gridWith(t,
		cell(domain.ShiftNight, domain.Wednesday, true, domain.StatusSelected),
		cell(domain.ShiftMorning, domain.Wednesday, true, domain.StatusDisabled),
		cell(domain.ShiftNoon, domain.Wednesday, true, domain.StatusDisabled),
		cell(domain.ShiftEvening, domain.Wednesday, true, domain.StatusDisabled),
		cell(domain.ShiftMorning, domain.Thursday, true, domain.StatusDisabled),
		cell(domain.ShiftNoon, domain.Thursday, true, domain.StatusDisabled),
		cell(domain.ShiftEvening, domain.Thursday, true, domain.StatusSelected),
		cell(domain.ShiftNight, domain.Thursday, true, domain.StatusDisabled),
	)

	changes := DeselectionCascade(currentOnly(grid), 1, domain.ShiftNight, domain.Wednesday)

	_, ok := findChange(changes, weekCurrent, domain.ShiftMorning, domain.Thursday)
	assert.False(t, ok)
	_, ok = findChange(changes, weekCurrent, domain.ShiftNoon, domain.Thursday)
	assert.False(t, ok)
}
