package roster

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

// OfferShift creates an offer intent for one of the caller's assigned
// shifts and notifies the recipients. With toUserID zero the offer goes
// to every eligible colleague, otherwise only to the named one.
func (m *Manager) OfferShift(id Identity, offset int, shift domain.ShiftKind, day domain.DayOfWeek, toUserID int64) (*domain.TransferIntent, error) {
	now := m.now()
	week := domain.WeekKeyFor(now, offset)

	avs, err := m.store.GetWeekAvailabilities(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	if !cellSelected(avs, id.UserID, shift, day) {
		return nil, &rules.ValidationError{Reason: "You can only offer a shift you are assigned to."}
	}

	users, err := m.store.GetUsersByCompany(id.CompanyID)
	if err != nil {
		return nil, err
	}

	var recipients []int64
	if toUserID != 0 {
		recipients = []int64{toUserID}
	} else {
		recipients = rules.EligibleOfferRecipients(users, avs, id.UserID, shift, day)
	}
	if len(recipients) == 0 {
		return nil, &rules.ValidationError{Reason: "No colleague is able to take this shift."}
	}

	intent := &domain.TransferIntent{
		ID:         uuid.NewString(),
		Kind:       domain.TransferOffer,
		CompanyID:  id.CompanyID,
		WeekKey:    week,
		WeekOffset: offset,
		FromUserID: id.UserID,
		ToUserID:   toUserID,
		Shift:      shift,
		Day:        day,
		CreatedAt:  now,
	}
	if err := m.intents.Save(intent, m.intentTTL()); err != nil {
		return nil, err
	}

	names := userNames(users)
	message := fmt.Sprintf("You are offered to take the %s shift on %s (Week: %s) from %s.",
		shift, day, domain.WeekRangeFor(now, offset), names[id.UserID])
	link := fmt.Sprintf("/schedule?weekOffset=%d&offer=%s", offset, intent.ID)
	for _, recipient := range recipients {
		m.notify(id.CompanyID, recipient, message, link, intentMeta(intent))
	}

	return intent, nil
}

// AcceptResult tells the caller whether accepting committed the transfer
// right away (admins) or queued it for admin approval (employees).
type AcceptResult struct {
	Committed bool                   `json:"committed"`
	Intent    *domain.TransferIntent `json:"intent"`
}

// AcceptOffer claims an offered shift. An admin accepting commits the
// reassignment immediately; an employee accepting creates an approval
// intent for the admin. Offers that expired or whose shift moved in the
// meantime surface as no longer available.
func (m *Manager) AcceptOffer(id Identity, intentID string) (*AcceptResult, error) {
	intent, err := m.intents.Get(intentID)
	if err != nil {
		return nil, err
	}
	if intent == nil || intent.Kind != domain.TransferOffer || intent.CompanyID != id.CompanyID {
		return nil, ErrNoLongerAvailable
	}
	if intent.ToUserID != 0 && intent.ToUserID != id.UserID {
		return nil, &rules.ValidationError{Reason: "This shift was offered to someone else."}
	}
	if intent.FromUserID == id.UserID {
		return nil, &rules.ValidationError{Reason: "You cannot accept your own offer."}
	}

	avs, err := m.store.GetWeekAvailabilities(id.CompanyID, intent.WeekKey)
	if err != nil {
		return nil, err
	}
	if !cellSelected(avs, intent.FromUserID, intent.Shift, intent.Day) {
		return nil, ErrNoLongerAvailable
	}

	users, err := m.store.GetUsersByCompany(id.CompanyID)
	if err != nil {
		return nil, err
	}
	names := userNames(users)

	if id.IsAdmin() {
		// first acceptor wins: taking the intent closes it for everyone else
		taken, err := m.intents.Take(intentID)
		if err != nil {
			return nil, err
		}
		if taken == nil {
			return nil, ErrNoLongerAvailable
		}
		if err := m.commitMove(intent.CompanyID, intent.WeekKey, avs, intent.FromUserID, id.UserID, intent.Shift, intent.Day); err != nil {
			return nil, err
		}
		m.notify(intent.CompanyID, intent.FromUserID,
			fmt.Sprintf("%s took over your %s shift on %s.", names[id.UserID], intent.Shift, intent.Day),
			fmt.Sprintf("/schedule?weekOffset=%d", intent.WeekOffset), nil)
		return &AcceptResult{Committed: true, Intent: intent}, nil
	}

	admin := findAdmin(users)
	if admin == nil {
		return nil, &rules.ValidationError{Reason: "No admin is available to approve this transfer."}
	}

	approval := &domain.TransferIntent{
		ID:         uuid.NewString(),
		Kind:       domain.TransferApproval,
		CompanyID:  intent.CompanyID,
		WeekKey:    intent.WeekKey,
		WeekOffset: intent.WeekOffset,
		FromUserID: intent.FromUserID,
		ToUserID:   id.UserID,
		Shift:      intent.Shift,
		Day:        intent.Day,
		CreatedAt:  m.now(),
	}
	if err := m.intents.Save(approval, m.intentTTL()); err != nil {
		return nil, err
	}

	m.notify(intent.CompanyID, admin.ID,
		fmt.Sprintf("%s accepted the offer to take %s's %s shift on %s. Please approve the change.",
			names[id.UserID], names[intent.FromUserID], intent.Shift, intent.Day),
		fmt.Sprintf("/schedule?weekOffset=%d&approve=%s", intent.WeekOffset, approval.ID),
		intentMeta(approval))

	return &AcceptResult{Committed: false, Intent: approval}, nil
}

// ProposeSwap validates a shift exchange between two employees and routes
// it for admin approval. An admin proposing commits the swap directly.
func (m *Manager) ProposeSwap(id Identity, offset int, p rules.SwapProposal) (*AcceptResult, error) {
	if !id.IsAdmin() && p.MyUserID != id.UserID {
		return nil, &rules.ValidationError{Reason: "You can only swap a shift of your own."}
	}
	now := m.now()
	week := domain.WeekKeyFor(now, offset)

	avs, err := m.store.GetWeekAvailabilities(id.CompanyID, week)
	if err != nil {
		return nil, err
	}
	if !cellSelected(avs, p.MyUserID, p.MyShift, p.MyDay) {
		return nil, &rules.ValidationError{Reason: "You are not assigned to that shift."}
	}
	if !cellSelected(avs, p.TheirUserID, p.TheirShift, p.TheirDay) {
		return nil, &rules.ValidationError{Reason: "The other employee is not assigned to that shift."}
	}
	if err := rules.CheckSwapConflicts(avs, p); err != nil {
		return nil, err
	}

	users, err := m.store.GetUsersByCompany(id.CompanyID)
	if err != nil {
		return nil, err
	}
	names := userNames(users)

	if id.IsAdmin() {
		if err := m.commitSwap(id.CompanyID, week, avs, p); err != nil {
			return nil, err
		}
		link := fmt.Sprintf("/schedule?weekOffset=%d", offset)
		m.notify(id.CompanyID, p.MyUserID,
			fmt.Sprintf("Your %s shift on %s was swapped with %s's %s shift on %s.",
				p.MyShift, p.MyDay, names[p.TheirUserID], p.TheirShift, p.TheirDay), link, nil)
		m.notify(id.CompanyID, p.TheirUserID,
			fmt.Sprintf("Your %s shift on %s was swapped with %s's %s shift on %s.",
				p.TheirShift, p.TheirDay, names[p.MyUserID], p.MyShift, p.MyDay), link, nil)
		return &AcceptResult{Committed: true}, nil
	}

	admin := findAdmin(users)
	if admin == nil {
		return nil, &rules.ValidationError{Reason: "No admin is available to approve this swap."}
	}

	intent := &domain.TransferIntent{
		ID:         uuid.NewString(),
		Kind:       domain.TransferSwap,
		CompanyID:  id.CompanyID,
		WeekKey:    week,
		WeekOffset: offset,
		FromUserID: p.MyUserID,
		ToUserID:   p.TheirUserID,
		Shift:      p.MyShift,
		Day:        p.MyDay,
		TheirShift: p.TheirShift,
		TheirDay:   p.TheirDay,
		CreatedAt:  now,
	}
	if err := m.intents.Save(intent, m.intentTTL()); err != nil {
		return nil, err
	}

	m.notify(id.CompanyID, admin.ID,
		fmt.Sprintf("%s requested to swap their %s shift on %s with %s's %s shift on %s.",
			names[p.MyUserID], p.MyShift, p.MyDay, names[p.TheirUserID], p.TheirShift, p.TheirDay),
		fmt.Sprintf("/schedule?weekOffset=%d&approve=%s", offset, intent.ID),
		intentMeta(intent))

	return &AcceptResult{Committed: false, Intent: intent}, nil
}

// ApproveTransfer commits a pending approval or swap intent. The intent
// is consumed first, so a replay or a second admin resolves to no longer
// available, and a shift that moved since acceptance discards the intent.
func (m *Manager) ApproveTransfer(id Identity, intentID string) (*domain.TransferIntent, error) {
	intent, err := m.intents.Take(intentID)
	if err != nil {
		return nil, err
	}
	if intent == nil || intent.CompanyID != id.CompanyID {
		return nil, ErrNoLongerAvailable
	}

	avs, err := m.store.GetWeekAvailabilities(id.CompanyID, intent.WeekKey)
	if err != nil {
		return nil, err
	}
	users, err := m.store.GetUsersByCompany(id.CompanyID)
	if err != nil {
		return nil, err
	}
	names := userNames(users)
	link := fmt.Sprintf("/schedule?weekOffset=%d", intent.WeekOffset)

	switch intent.Kind {
	case domain.TransferApproval:
		if !cellSelected(avs, intent.FromUserID, intent.Shift, intent.Day) {
			return nil, ErrNoLongerAvailable
		}
		if err := m.commitMove(intent.CompanyID, intent.WeekKey, avs, intent.FromUserID, intent.ToUserID, intent.Shift, intent.Day); err != nil {
			return nil, err
		}
		m.notify(intent.CompanyID, intent.FromUserID,
			fmt.Sprintf("The admin approved the transfer of your %s shift on %s to %s.",
				intent.Shift, intent.Day, names[intent.ToUserID]), link, nil)
		m.notify(intent.CompanyID, intent.ToUserID,
			fmt.Sprintf("The admin approved your request. You are now assigned to the %s shift on %s.",
				intent.Shift, intent.Day), link, nil)
	case domain.TransferSwap:
		p := rules.SwapProposal{
			MyUserID: intent.FromUserID, MyShift: intent.Shift, MyDay: intent.Day,
			TheirUserID: intent.ToUserID, TheirShift: intent.TheirShift, TheirDay: intent.TheirDay,
		}
		if !cellSelected(avs, p.MyUserID, p.MyShift, p.MyDay) || !cellSelected(avs, p.TheirUserID, p.TheirShift, p.TheirDay) {
			return nil, ErrNoLongerAvailable
		}
		if err := m.commitSwap(intent.CompanyID, intent.WeekKey, avs, p); err != nil {
			return nil, err
		}
		m.notify(intent.CompanyID, p.MyUserID,
			fmt.Sprintf("The admin approved your shift swap. You are now assigned to the %s shift on %s.",
				p.TheirShift, p.TheirDay), link, nil)
		m.notify(intent.CompanyID, p.TheirUserID,
			fmt.Sprintf("The admin approved a shift swap. You are now assigned to the %s shift on %s.",
				p.MyShift, p.MyDay), link, nil)
	default:
		return nil, &rules.ValidationError{Reason: "This transfer has not been accepted yet."}
	}

	return intent, nil
}

// DeclineTransfer consumes a pending intent and tells the parties.
func (m *Manager) DeclineTransfer(id Identity, intentID string) (*domain.TransferIntent, error) {
	intent, err := m.intents.Take(intentID)
	if err != nil {
		return nil, err
	}
	if intent == nil || intent.CompanyID != id.CompanyID {
		return nil, ErrNoLongerAvailable
	}

	link := fmt.Sprintf("/schedule?weekOffset=%d", intent.WeekOffset)
	switch intent.Kind {
	case domain.TransferApproval:
		m.notify(intent.CompanyID, intent.FromUserID,
			fmt.Sprintf("The admin declined the transfer of your %s shift on %s.", intent.Shift, intent.Day), link, nil)
		m.notify(intent.CompanyID, intent.ToUserID,
			fmt.Sprintf("The admin declined your request to take the %s shift on %s.", intent.Shift, intent.Day), link, nil)
	case domain.TransferSwap:
		message := "The admin declined your shift swap request."
		m.notify(intent.CompanyID, intent.FromUserID, message, link, nil)
		m.notify(intent.CompanyID, intent.ToUserID, message, link, nil)
	}

	return intent, nil
}

// commitMove reassigns one shift from one employee to another in a single
// transaction, then refreshes both employees' weekly stats.
func (m *Manager) commitMove(companyID int64, week domain.WeekKey, avs map[int64]*domain.WeekAvailability, fromUserID, toUserID int64, shift domain.ShiftKind, day domain.DayOfWeek) error {
	if err := m.ensureAvailability(companyID, week, avs, toUserID, shift, day); err != nil {
		return err
	}
	changes := []domain.CellChange{
		{WeekKey: week, UserID: fromUserID, Shift: shift, Day: day, Status: domain.StatusDefault},
		{WeekKey: week, UserID: toUserID, Shift: shift, Day: day, Status: domain.StatusSelected},
	}
	if err := m.store.ApplyCellChanges(companyID, changes); err != nil {
		return err
	}
	applyToGrids(avs, changes)
	return m.refreshStats(companyID, week, avs, fromUserID, toUserID)
}

// commitSwap exchanges two shifts in a single transaction, then refreshes
// both employees' weekly stats.
func (m *Manager) commitSwap(companyID int64, week domain.WeekKey, avs map[int64]*domain.WeekAvailability, p rules.SwapProposal) error {
	if err := m.ensureAvailability(companyID, week, avs, p.MyUserID, p.TheirShift, p.TheirDay); err != nil {
		return err
	}
	if err := m.ensureAvailability(companyID, week, avs, p.TheirUserID, p.MyShift, p.MyDay); err != nil {
		return err
	}
	changes := []domain.CellChange{
		{WeekKey: week, UserID: p.MyUserID, Shift: p.MyShift, Day: p.MyDay, Status: domain.StatusDefault},
		{WeekKey: week, UserID: p.TheirUserID, Shift: p.TheirShift, Day: p.TheirDay, Status: domain.StatusDefault},
		{WeekKey: week, UserID: p.MyUserID, Shift: p.TheirShift, Day: p.TheirDay, Status: domain.StatusSelected},
		{WeekKey: week, UserID: p.TheirUserID, Shift: p.MyShift, Day: p.MyDay, Status: domain.StatusSelected},
	}
	if err := m.store.ApplyCellChanges(companyID, changes); err != nil {
		return err
	}
	applyToGrids(avs, changes)
	return m.refreshStats(companyID, week, avs, p.MyUserID, p.TheirUserID)
}

// ensureAvailability guarantees the receiving employee has a week record
// so the reassignment has a cell to land on.
func (m *Manager) ensureAvailability(companyID int64, week domain.WeekKey, avs map[int64]*domain.WeekAvailability, userID int64, shift domain.ShiftKind, day domain.DayOfWeek) error {
	if av := avs[userID]; av != nil {
		return nil
	}
	av := &domain.WeekAvailability{
		CompanyID: companyID,
		WeekKey:   week,
		UserID:    userID,
		Grid:      domain.NewGrid(),
	}
	av.Grid.Cell(shift, day).IsAvailable = true
	if err := m.store.CreateWeekAvailability(av); err != nil {
		return err
	}
	avs[userID] = av
	return nil
}

// refreshStats rewrites the weekly stats rows of the employees touched
// by a transfer, keyed by the calendar position of the week itself.
func (m *Manager) refreshStats(companyID int64, week domain.WeekKey, avs map[int64]*domain.WeekAvailability, userIDs ...int64) error {
	start, err := week.Start()
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		var stats domain.ShiftStats
		if av := avs[userID]; av != nil {
			stats = rules.CalculateShiftStats(av.Grid)
		}
		record := &domain.WeeklyStatsRecord{
			CompanyID: companyID,
			Year:      start.Year(),
			Month:     int(start.Month()),
			WeekKey:   week,
			UserID:    userID,
			Stats:     stats,
		}
		if err := m.store.PutWeeklyStats(record); err != nil {
			return err
		}
	}
	return nil
}

func applyToGrids(avs map[int64]*domain.WeekAvailability, changes []domain.CellChange) {
	for _, ch := range changes {
		av := avs[ch.UserID]
		if av == nil {
			continue
		}
		if cell := av.Grid.Cell(ch.Shift, ch.Day); cell != nil {
			cell.Status = ch.Status
		}
	}
}

func cellSelected(avs map[int64]*domain.WeekAvailability, userID int64, shift domain.ShiftKind, day domain.DayOfWeek) bool {
	av := avs[userID]
	if av == nil {
		return false
	}
	cell := av.Grid.Cell(shift, day)
	return cell != nil && cell.Status == domain.StatusSelected
}

func intentMeta(intent *domain.TransferIntent) map[string]string {
	return map[string]string{
		"intentID": intent.ID,
		"kind":     string(intent.Kind),
	}
}
