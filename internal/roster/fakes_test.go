package roster

import (
	"fmt"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/config"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

type fakeStore struct {
	availabilities map[string]*domain.WeekAvailability
	settings       map[string]*domain.WeekSettings
	stats          map[string]*domain.WeeklyStatsRecord
	users          []*domain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		availabilities: make(map[string]*domain.WeekAvailability),
		settings:       make(map[string]*domain.WeekSettings),
		stats:          make(map[string]*domain.WeeklyStatsRecord),
	}
}

func avKey(companyID int64, week domain.WeekKey, userID int64) string {
	return fmt.Sprintf("%d/%s/%d", companyID, week, userID)
}

func settingsKey(companyID int64, week domain.WeekKey) string {
	return fmt.Sprintf("%d/%s", companyID, week)
}

func statsKey(r *domain.WeeklyStatsRecord) string {
	return fmt.Sprintf("%d/%s/%d", r.CompanyID, r.WeekKey, r.UserID)
}

func (s *fakeStore) GetWeekAvailabilities(companyID int64, week domain.WeekKey) (map[int64]*domain.WeekAvailability, error) {
	result := make(map[int64]*domain.WeekAvailability)
	for _, av := range s.availabilities {
		if av.CompanyID == companyID && av.WeekKey == week {
			result[av.UserID] = av
		}
	}
	return result, nil
}

func (s *fakeStore) GetWeekAvailability(companyID int64, week domain.WeekKey, userID int64) (*domain.WeekAvailability, error) {
	return s.availabilities[avKey(companyID, week, userID)], nil
}

func (s *fakeStore) CreateWeekAvailability(av *domain.WeekAvailability) error {
	key := avKey(av.CompanyID, av.WeekKey, av.UserID)
	if _, exists := s.availabilities[key]; exists {
		return fmt.Errorf("availability already exists")
	}
	s.availabilities[key] = av
	return nil
}

func (s *fakeStore) UpdateWeekNotes(companyID int64, week domain.WeekKey, userID int64, notes string) error {
	av := s.availabilities[avKey(companyID, week, userID)]
	if av == nil {
		return fmt.Errorf("availability not found")
	}
	av.Notes = notes
	return nil
}

func (s *fakeStore) ApplyCellChanges(companyID int64, changes []domain.CellChange) error {
	for _, ch := range changes {
		av := s.availabilities[avKey(companyID, ch.WeekKey, ch.UserID)]
		if av == nil {
			return fmt.Errorf("availability not found for change %+v", ch)
		}
		cell := av.Grid.Cell(ch.Shift, ch.Day)
		if cell == nil {
			return fmt.Errorf("cell not found for change %+v", ch)
		}
		cell.Status = ch.Status
	}
	return nil
}

func (s *fakeStore) GetWeekSettings(companyID int64, week domain.WeekKey) (*domain.WeekSettings, error) {
	return s.settings[settingsKey(companyID, week)], nil
}

func (s *fakeStore) PutWeekSettings(settings *domain.WeekSettings) error {
	s.settings[settingsKey(settings.CompanyID, settings.WeekKey)] = settings
	return nil
}

func (s *fakeStore) PutWeeklyStats(record *domain.WeeklyStatsRecord) error {
	s.stats[statsKey(record)] = record
	return nil
}

func (s *fakeStore) GetUsersByCompany(companyID int64) ([]*domain.User, error) {
	var users []*domain.User
	for _, user := range s.users {
		if user.CompanyID == companyID {
			users = append(users, user)
		}
	}
	return users, nil
}

type fakeIntents struct {
	intents map[string]*domain.TransferIntent
}

func newFakeIntents() *fakeIntents {
	return &fakeIntents{intents: make(map[string]*domain.TransferIntent)}
}

func (f *fakeIntents) Save(intent *domain.TransferIntent, _ time.Duration) error {
	f.intents[intent.ID] = intent
	return nil
}

func (f *fakeIntents) Get(id string) (*domain.TransferIntent, error) {
	return f.intents[id], nil
}

func (f *fakeIntents) Take(id string) (*domain.TransferIntent, error) {
	intent := f.intents[id]
	delete(f.intents, id)
	return intent, nil
}

type sentNotification struct {
	UserID  int64
	Message string
	Link    string
	Meta    map[string]string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Send(_ int64, userID int64, message string, link string, meta map[string]string) error {
	f.sent = append(f.sent, sentNotification{UserID: userID, Message: message, Link: link, Meta: meta})
	return nil
}

func (f *fakeNotifier) sentTo(userID int64) []sentNotification {
	var result []sentNotification
	for _, n := range f.sent {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

type fixture struct {
	manager  *Manager
	store    *fakeStore
	intents  *fakeIntents
	notifier *fakeNotifier
	now      time.Time
}

// newFixture pins the clock to a Wednesday so week keys are stable.
func newFixture() *fixture {
	store := newFakeStore()
	intents := newFakeIntents()
	notifier := &fakeNotifier{}

	cfg := &config.Config{}
	cfg.Transfer.IntentExpiration = 3600

	m := NewManager(cfg, store, intents, notifier)
	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	return &fixture{manager: m, store: store, intents: intents, notifier: notifier, now: now}
}

const testWeek domain.WeekKey = "week_2025_08_03"

func (f *fixture) addUser(id int64, name string, role domain.Role) {
	f.store.users = append(f.store.users, &domain.User{
		ID: id, CompanyID: 1, FullName: name, Role: role, IsActive: true,
	})
}

func (f *fixture) addAvailability(userID int64, week domain.WeekKey, availableAll bool) *domain.WeekAvailability {
	av := &domain.WeekAvailability{
		CompanyID: 1,
		WeekKey:   week,
		UserID:    userID,
		Grid:      domain.NewGrid(),
	}
	if availableAll {
		for _, row := range av.Grid {
			for _, cell := range row {
				cell.IsAvailable = true
			}
		}
	}
	f.store.availabilities[avKey(1, week, userID)] = av
	return av
}

func (f *fixture) settingsWith(week domain.WeekKey, mutate func(*domain.WeekSettings)) *domain.WeekSettings {
	settings := domain.NewWeekSettings(1, week)
	if mutate != nil {
		mutate(settings)
	}
	f.store.settings[settingsKey(1, week)] = settings
	return settings
}

func (f *fixture) selectCell(av *domain.WeekAvailability, shift domain.ShiftKind, day domain.DayOfWeek) {
	av.Grid.Cell(shift, day).Status = domain.StatusSelected
}

func employee(id int64) Identity {
	return Identity{CompanyID: 1, UserID: id, Role: domain.RoleEmployee}
}

func admin(id int64) Identity {
	return Identity{CompanyID: 1, UserID: id, Role: domain.RoleAdmin}
}
