package roster

import (
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

// AvailabilitySlot marks one cell as available in a submission.
type AvailabilitySlot struct {
	Shift domain.ShiftKind `json:"shift"`
	Day   domain.DayOfWeek `json:"day"`
}

// SubmitAvailability records which shifts an employee can work next week.
// The availability marks are immutable once submitted; only the notes can
// change afterwards.
func (m *Manager) SubmitAvailability(id Identity, offset int, slots []AvailabilitySlot, notes string) (*domain.WeekAvailability, error) {
	week := domain.WeekKeyFor(m.now(), offset)

	settings, err := m.settingsFor(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	if !settings.IsEditAllowed {
		return nil, &rules.ValidationError{Reason: "Availability editing is closed for this week."}
	}

	existing, err := m.store.GetWeekAvailability(id.CompanyID, week, id.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &rules.ValidationError{Reason: "You already submitted availability for this week."}
	}

	av := &domain.WeekAvailability{
		CompanyID: id.CompanyID,
		WeekKey:   week,
		UserID:    id.UserID,
		Grid:      domain.NewGrid(),
		Notes:     notes,
	}
	for _, slot := range slots {
		cell := av.Grid.Cell(slot.Shift, slot.Day)
		if cell == nil {
			return nil, &rules.ValidationError{Reason: "Unknown shift or day in submission."}
		}
		cell.IsAvailable = true
	}

	if err := m.store.CreateWeekAvailability(av); err != nil {
		return nil, err
	}
	return av, nil
}

// UpdateNotes replaces the free-text notes on an existing submission.
func (m *Manager) UpdateNotes(id Identity, offset int, notes string) error {
	week := domain.WeekKeyFor(m.now(), offset)

	existing, err := m.store.GetWeekAvailability(id.CompanyID, week, id.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &rules.ValidationError{Reason: "You have not submitted availability for this week."}
	}
	return m.store.UpdateWeekNotes(id.CompanyID, week, id.UserID, notes)
}
