package domain

import (
	"fmt"
	"time"
)

// WeekKey identifies a week by its Sunday, e.g. "week_2025_08_03".
type WeekKey string

// WeekStart returns midnight of the Sunday starting the week that is
// offset weeks away from the week containing now.
func WeekStart(now time.Time, offset int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()-int(now.Weekday())+offset*7, 0, 0, 0, 0, now.Location())
}

func WeekKeyFor(now time.Time, offset int) WeekKey {
	start := WeekStart(now, offset)
	return WeekKey(fmt.Sprintf("week_%04d_%02d_%02d", start.Year(), int(start.Month()), start.Day()))
}

// WeekRangeFor renders the week as "dd/mm/yyyy - dd/mm/yyyy" for messages.
func WeekRangeFor(now time.Time, offset int) string {
	start := WeekStart(now, offset)
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%s - %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
}

type WeekDate struct {
	Day  DayOfWeek `json:"day"`
	Date string    `json:"date"`
}

// WeekDates lists the seven dates of the week in display order.
func WeekDates(now time.Time, offset int) []WeekDate {
	start := WeekStart(now, offset)
	dates := make([]WeekDate, 0, 7)
	for i, day := range Days {
		dates = append(dates, WeekDate{
			Day:  day,
			Date: start.AddDate(0, 0, i).Format("02/01/2006"),
		})
	}
	return dates
}

// Start parses the Sunday a WeekKey points at.
func (k WeekKey) Start() (time.Time, error) {
	return time.Parse("week_2006_01_02", string(k))
}

// Range renders the key's week as "dd/mm/yyyy - dd/mm/yyyy".
func (k WeekKey) Range() (string, error) {
	start, err := k.Start()
	if err != nil {
		return "", err
	}
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%s - %s", start.Format("02/01/2006"), end.Format("02/01/2006")), nil
}
