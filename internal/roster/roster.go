package roster

import (
	"errors"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/config"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// ErrNoLongerAvailable is returned when a transfer intent has expired,
// was already claimed, or refers to a shift that moved in the meantime.
var ErrNoLongerAvailable = errors.New("shift transfer is no longer available")

// Identity is the authenticated caller of a roster operation.
type Identity struct {
	CompanyID int64
	UserID    int64
	Role      domain.Role
}

func (id Identity) IsAdmin() bool {
	return id.Role == domain.RoleAdmin
}

// Store is the persistence surface the manager needs. GetWeekAvailability
// and GetWeekSettings return nil when no record exists for the week.
type Store interface {
	GetWeekAvailabilities(companyID int64, week domain.WeekKey) (map[int64]*domain.WeekAvailability, error)
	GetWeekAvailability(companyID int64, week domain.WeekKey, userID int64) (*domain.WeekAvailability, error)
	CreateWeekAvailability(av *domain.WeekAvailability) error
	UpdateWeekNotes(companyID int64, week domain.WeekKey, userID int64, notes string) error
	ApplyCellChanges(companyID int64, changes []domain.CellChange) error
	GetWeekSettings(companyID int64, week domain.WeekKey) (*domain.WeekSettings, error)
	PutWeekSettings(settings *domain.WeekSettings) error
	PutWeeklyStats(record *domain.WeeklyStatsRecord) error
	GetUsersByCompany(companyID int64) ([]*domain.User, error)
}

// IntentStore keeps pending transfer intents. Get returns nil when the
// intent is gone; Take atomically consumes it so each intent commits at
// most once.
type IntentStore interface {
	Save(intent *domain.TransferIntent, ttl time.Duration) error
	Get(id string) (*domain.TransferIntent, error)
	Take(id string) (*domain.TransferIntent, error)
}

// Notifier delivers a message to one user, in-app and by mail.
type Notifier interface {
	Send(companyID int64, userID int64, message string, link string, meta map[string]string) error
}

// Manager owns the scheduling workflow: grid toggles, week settings,
// publishing, and shift transfers.
type Manager struct {
	cfg      *config.Config
	store    Store
	intents  IntentStore
	notifier Notifier
	now      func() time.Time
}

func NewManager(cfg *config.Config, store Store, intents IntentStore, notifier Notifier) *Manager {
	return &Manager{
		cfg:      cfg,
		store:    store,
		intents:  intents,
		notifier: notifier,
		now:      time.Now,
	}
}

func (m *Manager) intentTTL() time.Duration {
	return time.Duration(m.cfg.Transfer.IntentExpiration) * time.Second
}

// settingsFor never returns nil: a week without a settings row behaves
// as an empty, unpublished, locked week.
func (m *Manager) settingsFor(companyID int64, week domain.WeekKey) (*domain.WeekSettings, error) {
	settings, err := m.store.GetWeekSettings(companyID, week)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = domain.NewWeekSettings(companyID, week)
	}
	return settings, nil
}

func userNames(users []*domain.User) map[int64]string {
	names := make(map[int64]string, len(users))
	for _, user := range users {
		names[user.ID] = user.FullName
	}
	return names
}

func findAdmin(users []*domain.User) *domain.User {
	for _, user := range users {
		if user.Role == domain.RoleAdmin && user.IsActive {
			return user
		}
	}
	return nil
}
