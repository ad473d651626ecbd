package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

func TestSetSlotTarget(t *testing.T) {
	f := newFixture()

	settings, err := f.manager.SetSlotTarget(admin(1), 0, domain.Monday, domain.ShiftMorning, 2)
	require.NoError(t, err)

	target, ok := settings.Target(domain.Monday, domain.ShiftMorning)
	assert.True(t, ok)
	assert.Equal(t, 2, target)
}

func TestSetSlotTargetFloor(t *testing.T) {
	f := newFixture()
	av := f.addAvailability(2, testWeek, true)
	f.selectCell(av, domain.ShiftMorning, domain.Monday)
	other := f.addAvailability(3, testWeek, true)
	f.selectCell(other, domain.ShiftMorning, domain.Monday)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.SetTarget(domain.Monday, domain.ShiftMorning, 2)
	})

	// lowering below the two scheduled employees must fail
	_, err := f.manager.SetSlotTarget(admin(1), 0, domain.Monday, domain.ShiftMorning, 1)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)

	// lowering to exactly the scheduled count is fine
	_, err = f.manager.SetSlotTarget(admin(1), 0, domain.Monday, domain.ShiftMorning, 2)
	assert.NoError(t, err)
}

func TestSetWeeklyShiftTarget(t *testing.T) {
	f := newFixture()

	settings, err := f.manager.SetWeeklyShiftTarget(admin(1), 0, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, settings.WeeklyShiftTargets[2])

	_, err = f.manager.SetWeeklyShiftTarget(admin(1), 0, 2, 7)
	assert.Error(t, err)
	_, err = f.manager.SetWeeklyShiftTarget(admin(1), 0, 2, -1)
	assert.Error(t, err)
}

func TestSetWeeklyShiftTargetFloor(t *testing.T) {
	f := newFixture()
	av := f.addAvailability(2, testWeek, true)
	f.selectCell(av, domain.ShiftMorning, domain.Monday)
	f.selectCell(av, domain.ShiftMorning, domain.Tuesday)

	_, err := f.manager.SetWeeklyShiftTarget(admin(1), 0, 2, 1)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = f.manager.SetWeeklyShiftTarget(admin(1), 0, 2, 2)
	assert.NoError(t, err)
}

func TestSetEditAllowed(t *testing.T) {
	f := newFixture()

	settings, err := f.manager.SetEditAllowed(admin(1), 1, true)
	require.NoError(t, err)
	assert.True(t, settings.IsEditAllowed)
}

func TestSubmitAvailability(t *testing.T) {
	f := newFixture()
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.IsEditAllowed = true
	})

	av, err := f.manager.SubmitAvailability(employee(2), 0, []AvailabilitySlot{
		{Shift: domain.ShiftMorning, Day: domain.Monday},
		{Shift: domain.ShiftNight, Day: domain.Friday},
	}, "prefer mornings")
	require.NoError(t, err)

	assert.True(t, av.Grid.Cell(domain.ShiftMorning, domain.Monday).IsAvailable)
	assert.True(t, av.Grid.Cell(domain.ShiftNight, domain.Friday).IsAvailable)
	assert.False(t, av.Grid.Cell(domain.ShiftNoon, domain.Monday).IsAvailable)
	assert.Equal(t, "prefer mornings", av.Notes)

	// availability marks are immutable once submitted
	_, err = f.manager.SubmitAvailability(employee(2), 0, nil, "")
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestSubmitAvailabilityRequiresOpenWeek(t *testing.T) {
	f := newFixture()

	_, err := f.manager.SubmitAvailability(employee(2), 0, nil, "")
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Availability editing is closed for this week.", vErr.Reason)
}

func TestUpdateNotes(t *testing.T) {
	f := newFixture()
	f.addAvailability(2, testWeek, true)

	require.NoError(t, f.manager.UpdateNotes(employee(2), 0, "changed plans"))
	av := f.store.availabilities[avKey(1, testWeek, 2)]
	assert.Equal(t, "changed plans", av.Notes)

	err := f.manager.UpdateNotes(employee(3), 0, "no record")
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
}
