package roster

import (
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

const maxWeeklyTarget = 6

// SetSlotTarget sets how many employees a slot needs. The target can
// never drop below the number already selected for that slot.
func (m *Manager) SetSlotTarget(id Identity, offset int, day domain.DayOfWeek, shift domain.ShiftKind, count int) (*domain.WeekSettings, error) {
	if count < 0 {
		return nil, &rules.ValidationError{Reason: "The staffing target cannot be negative."}
	}
	week := domain.WeekKeyFor(m.now(), offset)

	settings, err := m.settingsFor(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	avs, err := m.store.GetWeekAvailabilities(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	if selected := rules.SlotSelectedCount(avs, shift, day); count < selected {
		return nil, &rules.ValidationError{Reason: "The staffing target cannot drop below the employees already scheduled."}
	}

	settings.SetTarget(day, shift, count)
	if err := m.store.PutWeekSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetWeeklyShiftTarget sets an employee's weekly quota (0 to 6). The
// quota can never drop below the shifts the employee already holds.
func (m *Manager) SetWeeklyShiftTarget(id Identity, offset int, userID int64, target int) (*domain.WeekSettings, error) {
	if target < 0 || target > maxWeeklyTarget {
		return nil, &rules.ValidationError{Reason: "The weekly shift target must be between 0 and 6."}
	}
	week := domain.WeekKeyFor(m.now(), offset)

	settings, err := m.settingsFor(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	av, err := m.store.GetWeekAvailability(id.CompanyID, week, userID)
	if err != nil {
		return nil, err
	}
	if av != nil && target < av.Grid.SelectedCount() {
		return nil, &rules.ValidationError{Reason: "The weekly shift target cannot drop below the shifts already scheduled."}
	}

	settings.WeeklyShiftTargets[userID] = target
	if err := m.store.PutWeekSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetEditAllowed opens or closes availability submission for a week.
func (m *Manager) SetEditAllowed(id Identity, offset int, allowed bool) (*domain.WeekSettings, error) {
	week := domain.WeekKeyFor(m.now(), offset)

	settings, err := m.settingsFor(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	settings.IsEditAllowed = allowed
	if err := m.store.PutWeekSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
