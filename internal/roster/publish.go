package roster

import (
	"fmt"
	"log/slog"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

// Publish locks in a week's schedule. Every slot with a staffing target
// must be staffed exactly; publishing then records the weekly stats for
// every employee and notifies the whole company.
func (m *Manager) Publish(id Identity, offset int) (*domain.WeekSettings, error) {
	now := m.now()
	week := domain.WeekKeyFor(now, offset)

	settings, err := m.settingsFor(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	if settings.IsPublished {
		return nil, &rules.ValidationError{Reason: "This week is already published."}
	}

	avs, err := m.store.GetWeekAvailabilities(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	if !rules.FullyStaffed(avs, settings) {
		return nil, &rules.ValidationError{Reason: "Every shift must reach its staffing target before publishing."}
	}

	settings.IsPublished = true
	if err := m.store.PutWeekSettings(settings); err != nil {
		return nil, err
	}

	users, err := m.store.GetUsersByCompany(id.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := m.recordWeeklyStats(id.CompanyID, week, offset, users, avs); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("The weekly schedule for %s has been published.", domain.WeekRangeFor(now, offset))
	link := fmt.Sprintf("/schedule?weekOffset=%d", offset)
	for _, user := range users {
		if !user.IsActive {
			continue
		}
		m.notify(id.CompanyID, user.ID, message, link, nil)
	}

	return settings, nil
}

// Unpublish reopens a published week. Stats records stay; they are
// rewritten on the next publish.
func (m *Manager) Unpublish(id Identity, offset int) (*domain.WeekSettings, error) {
	week := domain.WeekKeyFor(m.now(), offset)

	settings, err := m.settingsFor(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	if !settings.IsPublished {
		return nil, &rules.ValidationError{Reason: "This week is not published."}
	}
	settings.IsPublished = false
	if err := m.store.PutWeekSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// recordWeeklyStats writes one stats row per employee, keyed by the
// year and month of the week's Sunday. Employees without a submission
// get an all-zero row so monthly aggregates stay complete.
func (m *Manager) recordWeeklyStats(companyID int64, week domain.WeekKey, offset int, users []*domain.User, avs map[int64]*domain.WeekAvailability) error {
	start := domain.WeekStart(m.now(), offset)
	for _, user := range users {
		var stats domain.ShiftStats
		if av := avs[user.ID]; av != nil {
			stats = rules.CalculateShiftStats(av.Grid)
		}
		record := &domain.WeeklyStatsRecord{
			CompanyID: companyID,
			Year:      start.Year(),
			Month:     int(start.Month()),
			WeekKey:   week,
			UserID:    user.ID,
			Stats:     stats,
		}
		if err := m.store.PutWeeklyStats(record); err != nil {
			return err
		}
	}
	return nil
}

// notify delivers best-effort: a failed notification never rolls back
// the scheduling change it reports on.
func (m *Manager) notify(companyID int64, userID int64, message string, link string, meta map[string]string) {
	if err := m.notifier.Send(companyID, userID, message, link, meta); err != nil {
		slog.Error("failed to send notification", "user_id", userID, "error", err)
	}
}
