package roster

import (
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

// ToggleResult reports what a toggle did. Changes is empty when the
// cell was disabled and the toggle was a no-op.
type ToggleResult struct {
	Status  domain.CellStatus   `json:"status"`
	Changes []domain.CellChange `json:"changes"`
}

// Toggle flips one employee's cell between default and selected, applying
// the adjacency cascade. Toggling a disabled cell does nothing.
func (m *Manager) Toggle(id Identity, offset int, userID int64, shift domain.ShiftKind, day domain.DayOfWeek) (*ToggleResult, error) {
	now := m.now()
	week := domain.WeekKeyFor(now, offset)

	avs, err := m.store.GetWeekAvailabilities(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	av := avs[userID]
	if av == nil {
		return nil, &rules.ValidationError{Reason: "This employee has not submitted availability for this week."}
	}
	cell := av.Grid.Cell(shift, day)
	if cell == nil || !cell.IsAvailable {
		return nil, &rules.ValidationError{Reason: "This shift was not marked as available."}
	}

	grids := rules.WeekGrids{
		Key:     week,
		Grid:    av.Grid,
		PrevKey: domain.WeekKeyFor(now, offset-1),
		NextKey: domain.WeekKeyFor(now, offset+1),
	}
	// cascades only reach the neighbouring week from the boundary days
	if day == domain.Sunday {
		prevAv, err := m.store.GetWeekAvailability(id.CompanyID, grids.PrevKey, userID)
		if err != nil {
			return nil, err
		}
		if prevAv != nil {
			grids.Prev = prevAv.Grid
		}
	}
	if day == domain.Saturday {
		nextAv, err := m.store.GetWeekAvailability(id.CompanyID, grids.NextKey, userID)
		if err != nil {
			return nil, err
		}
		if nextAv != nil {
			grids.Next = nextAv.Grid
		}
	}

	var changes []domain.CellChange
	var status domain.CellStatus

	switch cell.Status {
	case domain.StatusDisabled:
		return &ToggleResult{Status: domain.StatusDisabled}, nil
	case domain.StatusDefault:
		settings, err := m.settingsFor(id.CompanyID, week)
		if err != nil {
			return nil, err
		}
		target, hasTarget := settings.Target(day, shift)
		if err := rules.CanSelect(
			cell,
			rules.SlotSelectedCount(avs, shift, day),
			target,
			hasTarget,
			av.Grid.SelectedCount(),
			settings.WeeklyShiftTargets[userID],
		); err != nil {
			return nil, err
		}
		changes = rules.SelectionCascade(grids, userID, shift, day)
		status = domain.StatusSelected
	case domain.StatusSelected:
		changes = rules.DeselectionCascade(grids, userID, shift, day)
		status = domain.StatusDefault
	}

	if err := m.store.ApplyCellChanges(id.CompanyID, changes); err != nil {
		return nil, err
	}
	return &ToggleResult{Status: status, Changes: changes}, nil
}
