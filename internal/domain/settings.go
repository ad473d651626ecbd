package domain

import "time"

// WeekSettings holds the per-week staffing targets and flags managed by admins.
type WeekSettings struct {
	CompanyID int64   `json:"companyID"`
	WeekKey   WeekKey `json:"weekKey"`
	// NecessaryEmployees maps day and shift to the staffing target of that slot.
	NecessaryEmployees map[DayOfWeek]map[ShiftKind]int `json:"necessaryEmployees"`
	// WeeklyShiftTargets maps user id to that employee's weekly quota (0-6).
	WeeklyShiftTargets map[int64]int `json:"weeklyShiftTargets"`
	IsPublished        bool          `json:"isPublished"`
	IsEditAllowed      bool          `json:"isEditAllowed"`
	CreatedAt          time.Time     `json:"createdAt"`
	Version            int32         `json:"-"`
}

func NewWeekSettings(companyID int64, week WeekKey) *WeekSettings {
	return &WeekSettings{
		CompanyID:          companyID,
		WeekKey:            week,
		NecessaryEmployees: make(map[DayOfWeek]map[ShiftKind]int),
		WeeklyShiftTargets: make(map[int64]int),
	}
}

// Target returns the staffing target for a slot; ok is false when the
// admin never set one, which gates selection of that slot entirely.
func (s *WeekSettings) Target(day DayOfWeek, shift ShiftKind) (int, bool) {
	row, exists := s.NecessaryEmployees[day]
	if !exists {
		return 0, false
	}
	target, exists := row[shift]
	return target, exists
}

func (s *WeekSettings) SetTarget(day DayOfWeek, shift ShiftKind, count int) {
	if s.NecessaryEmployees == nil {
		s.NecessaryEmployees = make(map[DayOfWeek]map[ShiftKind]int)
	}
	if s.NecessaryEmployees[day] == nil {
		s.NecessaryEmployees[day] = make(map[ShiftKind]int)
	}
	s.NecessaryEmployees[day][shift] = count
}
