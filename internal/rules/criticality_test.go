package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func TestCriticality(t *testing.T) {
	settings := domain.NewWeekSettings(1, "week_2025_08_03")
	settings.SetTarget(domain.Monday, domain.ShiftMorning, 2)
	settings.SetTarget(domain.Monday, domain.ShiftNight, 1)

	avs := map[int64]*domain.WeekAvailability{
		// one selected, one candidate for Monday morning
		1: availabilityWith(t, cell(domain.ShiftMorning, domain.Monday, true, domain.StatusSelected)),
		2: availabilityWith(t, cell(domain.ShiftMorning, domain.Monday, true, domain.StatusDefault)),
		// nobody can take Monday night
		3: availabilityWith(t),
	}

	// need 1, candidates 1: 1 / (1+1)^2
	assert.InDelta(t, 0.25, Criticality(avs, settings, domain.Monday, domain.ShiftMorning), 1e-9)
	// need 1, candidates 0: 1 / (0+1)^2
	assert.InDelta(t, 1.0, Criticality(avs, settings, domain.Monday, domain.ShiftNight), 1e-9)
	// no target set
	assert.Zero(t, Criticality(avs, settings, domain.Tuesday, domain.ShiftMorning))
}

func TestCriticalityFullyStaffedSlotIsZero(t *testing.T) {
	settings := domain.NewWeekSettings(1, "week_2025_08_03")
	settings.SetTarget(domain.Monday, domain.ShiftMorning, 1)

	avs := map[int64]*domain.WeekAvailability{
		1: availabilityWith(t, cell(domain.ShiftMorning, domain.Monday, true, domain.StatusSelected)),
	}

	assert.Zero(t, Criticality(avs, settings, domain.Monday, domain.ShiftMorning))
}

func TestMostCriticalSlots(t *testing.T) {
	settings := domain.NewWeekSettings(1, "week_2025_08_03")
	settings.SetTarget(domain.Monday, domain.ShiftMorning, 1)
	settings.SetTarget(domain.Wednesday, domain.ShiftNight, 1)
	settings.SetTarget(domain.Friday, domain.ShiftEvening, 1)

	avs := map[int64]*domain.WeekAvailability{
		// Friday evening has a candidate, the other two slots have none
		1: availabilityWith(t, cell(domain.ShiftEvening, domain.Friday, true, domain.StatusDefault)),
	}

	slots := MostCriticalSlots(avs, settings)

	assert.Equal(t, []Slot{
		{Day: domain.Monday, Shift: domain.ShiftMorning},
		{Day: domain.Wednesday, Shift: domain.ShiftNight},
	}, slots)
}

func TestMostCriticalSlotsEmptyWhenCovered(t *testing.T) {
	settings := domain.NewWeekSettings(1, "week_2025_08_03")
	settings.SetTarget(domain.Monday, domain.ShiftMorning, 1)

	avs := map[int64]*domain.WeekAvailability{
		1: availabilityWith(t, cell(domain.ShiftMorning, domain.Monday, true, domain.StatusSelected)),
	}

	assert.Empty(t, MostCriticalSlots(avs, settings))
}

func TestFullyStaffed(t *testing.T) {
	settings := domain.NewWeekSettings(1, "week_2025_08_03")
	settings.SetTarget(domain.Monday, domain.ShiftMorning, 1)
	settings.SetTarget(domain.Tuesday, domain.ShiftNoon, 2)

	avs := map[int64]*domain.WeekAvailability{
		1: availabilityWith(t,
			cell(domain.ShiftMorning, domain.Monday, true, domain.StatusSelected),
			cell(domain.ShiftNoon, domain.Tuesday, true, domain.StatusSelected),
		),
		2: availabilityWith(t, cell(domain.ShiftNoon, domain.Tuesday, true, domain.StatusSelected)),
	}

	assert.True(t, FullyStaffed(avs, settings))

	// publishing requires an exact match, overstaffing also fails
	avs[3] = availabilityWith(t, cell(domain.ShiftMorning, domain.Monday, true, domain.StatusSelected))
	assert.False(t, FullyStaffed(avs, settings))
}
