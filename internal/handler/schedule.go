package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/roster"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

type scheduleSlot struct {
	Selected    int     `json:"selected"`
	Candidates  int     `json:"candidates"`
	Target      *int    `json:"target"`
	Criticality float64 `json:"criticality"`
}

type scheduleView struct {
	WeekKey            domain.WeekKey                                         `json:"weekKey"`
	WeekRange          string                                                 `json:"weekRange"`
	Dates              []domain.WeekDate                                      `json:"dates"`
	IsPublished        bool                                                   `json:"isPublished"`
	IsEditAllowed      bool                                                   `json:"isEditAllowed"`
	Availabilities     []*domain.WeekAvailability                             `json:"availabilities"`
	Slots              map[domain.DayOfWeek]map[domain.ShiftKind]scheduleSlot `json:"slots"`
	SelectedCounts     map[int64]int                                          `json:"selectedCounts"`
	WeeklyShiftTargets map[int64]int                                          `json:"weeklyShiftTargets"`
	MostCritical       []rules.Slot                                           `json:"mostCritical"`
	FullyStaffed       bool                                                   `json:"fullyStaffed"`
}

// GetSchedule assembles the week view. Until the schedule is published,
// employees only see their own grid next to the aggregate counts.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	offset := r.Context().Value(WeekOffsetCtx).(int)

	now := time.Now()
	week := domain.WeekKeyFor(now, offset)

	avs, err := h.repository.GetWeekAvailabilities(myInfo.CompanyID, week)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	settings, err := h.repository.GetWeekSettings(myInfo.CompanyID, week)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if settings == nil {
		settings = domain.NewWeekSettings(myInfo.CompanyID, week)
	}

	view := &scheduleView{
		WeekKey:            week,
		WeekRange:          domain.WeekRangeFor(now, offset),
		Dates:              domain.WeekDates(now, offset),
		IsPublished:        settings.IsPublished,
		IsEditAllowed:      settings.IsEditAllowed,
		Slots:              make(map[domain.DayOfWeek]map[domain.ShiftKind]scheduleSlot),
		SelectedCounts:     make(map[int64]int),
		WeeklyShiftTargets: settings.WeeklyShiftTargets,
		MostCritical:       rules.MostCriticalSlots(avs, settings),
		FullyStaffed:       rules.FullyStaffed(avs, settings),
	}

	for _, day := range domain.Days {
		view.Slots[day] = make(map[domain.ShiftKind]scheduleSlot)
		for _, shift := range domain.Shifts {
			slot := scheduleSlot{
				Selected:    rules.SlotSelectedCount(avs, shift, day),
				Candidates:  rules.SlotCandidateCount(avs, shift, day),
				Criticality: rules.Criticality(avs, settings, day, shift),
			}
			if target, ok := settings.Target(day, shift); ok {
				slot.Target = &target
			}
			view.Slots[day][shift] = slot
		}
	}

	canSeeEveryone := myInfo.Role == domain.RoleAdmin || settings.IsPublished
	for userID, av := range avs {
		if !canSeeEveryone && userID != myInfo.ID {
			continue
		}
		view.Availabilities = append(view.Availabilities, av)
		view.SelectedCounts[userID] = av.Grid.SelectedCount()
	}
	sort.Slice(view.Availabilities, func(i, j int) bool {
		return view.Availabilities[i].UserID < view.Availabilities[j].UserID
	})

	h.successResponse(w, r, "Fetched schedule.", view)
}

func (h *Handler) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	var req struct {
		Slots []roster.AvailabilitySlot `json:"slots" validate:"required"`
		Notes string                    `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	for _, slot := range req.Slots {
		if !domain.IsValidShift(slot.Shift) {
			h.errorResponse(w, r, "Invalid shift.")
			return
		}
		if !domain.IsValidDay(slot.Day) {
			h.errorResponse(w, r, "Invalid day.")
			return
		}
	}

	av, err := h.roster.SubmitAvailability(h.identity(r), offset, req.Slots, req.Notes)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Availability submitted.", av)
}

func (h *Handler) GetMyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	offset := r.Context().Value(WeekOffsetCtx).(int)

	week := domain.WeekKeyFor(time.Now(), offset)

	av, err := h.repository.GetWeekAvailability(myInfo.CompanyID, week, myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if av == nil {
		h.successResponse(w, r, "No availability submitted for this week.", nil)
		return
	}

	h.successResponse(w, r, "Fetched availability.", av)
}

func (h *Handler) UpdateMyNotes(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	var req struct {
		Notes string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.roster.UpdateNotes(h.identity(r), offset, req.Notes); err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Notes updated.", nil)
}

func (h *Handler) ToggleCell(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	var req struct {
		UserID int64  `json:"userID" validate:"required"`
		Shift  string `json:"shift" validate:"required"`
		Day    string `json:"day" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := domain.ShiftKind(req.Shift)
	day := domain.DayOfWeek(req.Day)
	if !domain.IsValidShift(shift) {
		h.errorResponse(w, r, "Invalid shift.")
		return
	}
	if !domain.IsValidDay(day) {
		h.errorResponse(w, r, "Invalid day.")
		return
	}

	result, err := h.roster.Toggle(h.identity(r), offset, req.UserID, shift, day)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Cell toggled.", result)
}

func (h *Handler) SetSlotTarget(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	var req struct {
		Shift string `json:"shift" validate:"required"`
		Day   string `json:"day" validate:"required"`
		Count int    `json:"count" validate:"min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := domain.ShiftKind(req.Shift)
	day := domain.DayOfWeek(req.Day)
	if !domain.IsValidShift(shift) {
		h.errorResponse(w, r, "Invalid shift.")
		return
	}
	if !domain.IsValidDay(day) {
		h.errorResponse(w, r, "Invalid day.")
		return
	}

	settings, err := h.roster.SetSlotTarget(h.identity(r), offset, day, shift, req.Count)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Staffing target updated.", settings)
}

func (h *Handler) SetWeeklyShiftTarget(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Target int `json:"target" validate:"min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings, err := h.roster.SetWeeklyShiftTarget(h.identity(r), offset, userID, req.Target)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Weekly shift target updated.", settings)
}

func (h *Handler) SetEditStatus(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	var req struct {
		IsEditAllowed *bool `json:"isEditAllowed" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings, err := h.roster.SetEditAllowed(h.identity(r), offset, *req.IsEditAllowed)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Edit status updated.", settings)
}

func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	settings, err := h.roster.Publish(h.identity(r), offset)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Schedule published.", settings)
}

func (h *Handler) UnpublishSchedule(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	settings, err := h.roster.Unpublish(h.identity(r), offset)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Schedule unpublished.", settings)
}
