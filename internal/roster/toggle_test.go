package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

func TestToggleSelectAppliesCascade(t *testing.T) {
	f := newFixture()
	av := f.addAvailability(2, testWeek, true)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.SetTarget(domain.Wednesday, domain.ShiftNight, 1)
		s.WeeklyShiftTargets[2] = 3
	})

	result, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftNight, domain.Wednesday)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSelected, result.Status)

	assert.Equal(t, domain.StatusSelected, av.Grid.Cell(domain.ShiftNight, domain.Wednesday).Status)
	assert.Equal(t, domain.StatusDisabled, av.Grid.Cell(domain.ShiftMorning, domain.Wednesday).Status)
	assert.Equal(t, domain.StatusDisabled, av.Grid.Cell(domain.ShiftMorning, domain.Thursday).Status)
	assert.Equal(t, domain.StatusDisabled, av.Grid.Cell(domain.ShiftNoon, domain.Thursday).Status)
}

func TestToggleDeselectRestoresGrid(t *testing.T) {
	f := newFixture()
	av := f.addAvailability(2, testWeek, true)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.SetTarget(domain.Wednesday, domain.ShiftNight, 1)
		s.WeeklyShiftTargets[2] = 3
	})

	_, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftNight, domain.Wednesday)
	require.NoError(t, err)
	result, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftNight, domain.Wednesday)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDefault, result.Status)

	for _, day := range domain.Days {
		for _, shift := range domain.Shifts {
			assert.Equal(t, domain.StatusDefault, av.Grid.Cell(shift, day).Status)
		}
	}
}

func TestToggleDisabledCellIsNoOp(t *testing.T) {
	f := newFixture()
	av := f.addAvailability(2, testWeek, true)
	av.Grid.Cell(domain.ShiftNoon, domain.Monday).Status = domain.StatusDisabled
	f.settingsWith(testWeek, nil)

	result, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftNoon, domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisabled, result.Status)
	assert.Empty(t, result.Changes)
}

func TestToggleRejectsFullSlot(t *testing.T) {
	f := newFixture()
	first := f.addAvailability(2, testWeek, true)
	f.selectCell(first, domain.ShiftMorning, domain.Monday)
	f.addAvailability(3, testWeek, true)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.SetTarget(domain.Monday, domain.ShiftMorning, 1)
		s.WeeklyShiftTargets[3] = 3
	})

	_, err := f.manager.Toggle(admin(1), 0, 3, domain.ShiftMorning, domain.Monday)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This shift is already fully staffed.", vErr.Reason)
}

func TestToggleRejectsQuotaReached(t *testing.T) {
	f := newFixture()
	av := f.addAvailability(2, testWeek, true)
	f.selectCell(av, domain.ShiftMorning, domain.Monday)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.SetTarget(domain.Tuesday, domain.ShiftMorning, 2)
		s.WeeklyShiftTargets[2] = 1
	})

	_, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftMorning, domain.Tuesday)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This employee already reached their weekly shift target.", vErr.Reason)
}

func TestToggleRejectsZeroQuota(t *testing.T) {
	f := newFixture()
	f.addAvailability(2, testWeek, true)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.SetTarget(domain.Monday, domain.ShiftMorning, 2)
	})

	// no quota entry means a quota of zero
	_, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftMorning, domain.Monday)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This employee already reached their weekly shift target.", vErr.Reason)
}

func TestToggleRejectsUnavailableCell(t *testing.T) {
	f := newFixture()
	f.addAvailability(2, testWeek, false)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.SetTarget(domain.Monday, domain.ShiftMorning, 2)
		s.WeeklyShiftTargets[2] = 3
	})

	_, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftMorning, domain.Monday)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestToggleSundayMorningRoundTripAcrossWeeks(t *testing.T) {
	f := newFixture()
	f.addAvailability(2, testWeek, true)
	prevAv := f.addAvailability(2, "week_2025_07_27", true)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.SetTarget(domain.Sunday, domain.ShiftMorning, 1)
		s.WeeklyShiftTargets[2] = 3
	})

	_, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftMorning, domain.Sunday)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisabled, prevAv.Grid.Cell(domain.ShiftNight, domain.Saturday).Status)

	_, err = f.manager.Toggle(admin(1), 0, 2, domain.ShiftMorning, domain.Sunday)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDefault, prevAv.Grid.Cell(domain.ShiftNight, domain.Saturday).Status)
}

func TestToggleWithoutSubmission(t *testing.T) {
	f := newFixture()
	f.settingsWith(testWeek, nil)

	_, err := f.manager.Toggle(admin(1), 0, 2, domain.ShiftMorning, domain.Monday)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
}
