package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

type statsReport struct {
	Weeks  []*domain.WeeklyStatsRecord `json:"weeks"`
	Totals domain.ShiftStats           `json:"totals"`
}

func buildStatsReport(records []*domain.WeeklyStatsRecord) *statsReport {
	report := &statsReport{Weeks: records}
	for _, record := range records {
		report.Totals.Add(record.Stats)
	}
	return report
}

// statsSubject picks whose statistics to report. Employees always get
// their own; admins may ask for anyone via the userID query parameter.
func (h *Handler) statsSubject(w http.ResponseWriter, r *http.Request) (int64, bool) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	param := r.URL.Query().Get("userID")
	if param == "" {
		return myInfo.ID, true
	}

	if myInfo.Role != domain.RoleAdmin {
		h.errorResponse(w, r, "Insufficient permissions.")
		return 0, false
	}

	userID, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "Invalid user id.")
		return 0, false
	}
	return userID, true
}

func (h *Handler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.errorResponse(w, r, "Invalid year.")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		h.errorResponse(w, r, "Invalid month.")
		return
	}

	userID, ok := h.statsSubject(w, r)
	if !ok {
		return
	}

	records, err := h.repository.GetMonthlyStats(myInfo.CompanyID, year, month, userID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Fetched monthly statistics.", buildStatsReport(records))
}

func (h *Handler) GetYearlyStats(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.errorResponse(w, r, "Invalid year.")
		return
	}

	userID, ok := h.statsSubject(w, r)
	if !ok {
		return
	}

	records, err := h.repository.GetYearlyStats(myInfo.CompanyID, year, userID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Fetched yearly statistics.", buildStatsReport(records))
}
