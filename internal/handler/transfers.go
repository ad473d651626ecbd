package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "Invalid user id.")
		return 0, false
	}
	return userID, true
}

func (h *Handler) OfferShift(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	var req struct {
		Shift    string `json:"shift" validate:"required"`
		Day      string `json:"day" validate:"required"`
		ToUserID int64  `json:"toUserID"` // 0 offers to every eligible employee
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

	intent, err := h.roster.OfferShift(h.identity(r), offset, shift, day, req.ToUserID)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Shift offered.", intent)
}

func (h *Handler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	intentID := chi.URLParam(r, "id")

	result, err := h.roster.AcceptOffer(h.identity(r), intentID)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	if result.Committed {
		h.successResponse(w, r, "Shift transferred.", result)
		return
	}
	h.successResponse(w, r, "Acceptance recorded, awaiting approval.", result)
}

func (h *Handler) ProposeSwap(w http.ResponseWriter, r *http.Request) {
	offset := r.Context().Value(WeekOffsetCtx).(int)

	var req struct {
		MyUserID    int64  `json:"myUserID"` // admins may swap on behalf of others
		MyShift     string `json:"myShift" validate:"required"`
		MyDay       string `json:"myDay" validate:"required"`
		TheirUserID int64  `json:"theirUserID" validate:"required"`
		TheirShift  string `json:"theirShift" validate:"required"`
		TheirDay    string `json:"theirDay" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	id := h.identity(r)
	if req.MyUserID == 0 {
		req.MyUserID = id.UserID
	}

	proposal := rules.SwapProposal{
		MyUserID:    req.MyUserID,
		MyShift:     domain.ShiftKind(req.MyShift),
		MyDay:       domain.DayOfWeek(req.MyDay),
		TheirUserID: req.TheirUserID,
		TheirShift:  domain.ShiftKind(req.TheirShift),
		TheirDay:    domain.DayOfWeek(req.TheirDay),
	}
	if !domain.IsValidShift(proposal.MyShift) || !domain.IsValidShift(proposal.TheirShift) {
		h.errorResponse(w, r, "Invalid shift.")
		return
	}
	if !domain.IsValidDay(proposal.MyDay) || !domain.IsValidDay(proposal.TheirDay) {
		h.errorResponse(w, r, "Invalid day.")
		return
	}

	result, err := h.roster.ProposeSwap(id, offset, proposal)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	if result.Committed {
		h.successResponse(w, r, "Shifts swapped.", result)
		return
	}
	h.successResponse(w, r, "Swap proposed, awaiting approval.", result)
}

func (h *Handler) ApproveTransfer(w http.ResponseWriter, r *http.Request) {
	intentID := chi.URLParam(r, "id")

	intent, err := h.roster.ApproveTransfer(h.identity(r), intentID)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Transfer approved.", intent)
}

func (h *Handler) DeclineTransfer(w http.ResponseWriter, r *http.Request) {
	intentID := chi.URLParam(r, "id")

	intent, err := h.roster.DeclineTransfer(h.identity(r), intentID)
	if err != nil {
		h.rosterError(w, r, err)
		return
	}

	h.successResponse(w, r, "Transfer declined.", intent)
}
