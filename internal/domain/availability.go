package domain

import "time"

type CellStatus string

const (
	StatusDefault  CellStatus = "default"
	StatusSelected CellStatus = "selected"
	StatusDisabled CellStatus = "disabled"
)

type AvailabilityCell struct {
	IsAvailable bool       `json:"isAvailable"`
	Status      CellStatus `json:"status"`
}

// Grid holds one employee's cells for a week, keyed by shift then day.
type Grid map[ShiftKind]map[DayOfWeek]*AvailabilityCell

// NewGrid returns a full grid with every cell unavailable and default.
func NewGrid() Grid {
	g := make(Grid, len(Shifts))
	for _, shift := range Shifts {
		row := make(map[DayOfWeek]*AvailabilityCell, len(Days))
		for _, day := range Days {
			row[day] = &AvailabilityCell{IsAvailable: false, Status: StatusDefault}
		}
		g[shift] = row
	}
	return g
}

// Cell returns the cell at (shift, day), or nil when the grid has no entry.
func (g Grid) Cell(shift ShiftKind, day DayOfWeek) *AvailabilityCell {
	row, ok := g[shift]
	if !ok {
		return nil
	}
	return row[day]
}

func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for shift, row := range g {
		cloneRow := make(map[DayOfWeek]*AvailabilityCell, len(row))
		for day, cell := range row {
			if cell != nil {
				c := *cell
				cloneRow[day] = &c
			}
		}
		clone[shift] = cloneRow
	}
	return clone
}

func (g Grid) SelectedCount() int {
	count := 0
	for _, row := range g {
		for _, cell := range row {
			if cell != nil && cell.Status == StatusSelected {
				count++
			}
		}
	}
	return count
}

func (g Grid) SelectedOnDay(day DayOfWeek) bool {
	for _, shift := range Shifts {
		if cell := g.Cell(shift, day); cell != nil && cell.Status == StatusSelected {
			return true
		}
	}
	return false
}

// WeekAvailability is one employee's submission and live grid for a week.
type WeekAvailability struct {
	CompanyID int64     `json:"companyID"`
	WeekKey   WeekKey   `json:"weekKey"`
	UserID    int64     `json:"userID"`
	Grid      Grid      `json:"grid"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// CellChange is a single status update produced by the roster rules.
// Changes carry their own week key because a cascade may touch the
// adjacent week across the Saturday/Sunday boundary.
type CellChange struct {
	WeekKey WeekKey    `json:"weekKey"`
	UserID  int64      `json:"userID"`
	Shift   ShiftKind  `json:"shift"`
	Day     DayOfWeek  `json:"day"`
	Status  CellStatus `json:"status"`
}
