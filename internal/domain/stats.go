package domain

import "time"

type ShiftStats struct {
	NightShifts   int `json:"nightShifts"`
	ShabbatShifts int `json:"shabbatShifts"`
	RegularShifts int `json:"regularShifts"`
}

func (s ShiftStats) Total() int {
	return s.NightShifts + s.ShabbatShifts + s.RegularShifts
}

func (s *ShiftStats) Add(other ShiftStats) {
	s.NightShifts += other.NightShifts
	s.ShabbatShifts += other.ShabbatShifts
	s.RegularShifts += other.RegularShifts
}

// WeeklyStatsRecord is one employee's shift breakdown for one published week.
type WeeklyStatsRecord struct {
	CompanyID int64     `json:"companyID"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	WeekKey   WeekKey   `json:"weekKey"`
	UserID    int64     `json:"userID"`
	Stats     ShiftStats `json:"stats"`
	CreatedAt time.Time `json:"createdAt"`
}
