package domain

type ShiftKind string

const (
	ShiftMorning ShiftKind = "Morning"
	ShiftNoon    ShiftKind = "Noon"
	ShiftEvening ShiftKind = "Evening"
	ShiftNight   ShiftKind = "Night"
)

// Shifts is the fixed ordered set of shifts in a day.
var Shifts = []ShiftKind{ShiftMorning, ShiftNoon, ShiftEvening, ShiftNight}

func IsValidShift(s ShiftKind) bool {
	for _, shift := range Shifts {
		if shift == s {
			return true
		}
	}
	return false
}

type DayOfWeek string

const (
	Sunday    DayOfWeek = "Sunday"
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
)

// Days is ordered Sunday..Saturday, matching the displayed week.
var Days = []DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func IsValidDay(d DayOfWeek) bool {
	return dayIndex(d) >= 0
}

func dayIndex(d DayOfWeek) int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// NextDay is cyclic: Saturday's successor is Sunday of the next week.
func NextDay(d DayOfWeek) DayOfWeek {
	return Days[(dayIndex(d)+1)%7]
}

// PreviousDay is cyclic: Sunday's predecessor is Saturday of the previous week.
func PreviousDay(d DayOfWeek) DayOfWeek {
	return Days[(dayIndex(d)+6)%7]
}

// DayAfter is the bounded variant: it never leaves the week.
func DayAfter(d DayOfWeek) (DayOfWeek, bool) {
	i := dayIndex(d)
	if i >= 6 {
		return "", false
	}
	return Days[i+1], true
}

// DayBefore is the bounded variant: it never leaves the week.
func DayBefore(d DayOfWeek) (DayOfWeek, bool) {
	i := dayIndex(d)
	if i <= 0 {
		return "", false
	}
	return Days[i-1], true
}
