package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/rules"
)

// transferFixture sets up an admin (1) and three employees (2, 3, 4)
// where employee 2 holds the Wednesday noon shift.
func transferFixture() *fixture {
	f := newFixture()
	f.addUser(1, "Dana Admin", domain.RoleAdmin)
	f.addUser(2, "Yael", domain.RoleEmployee)
	f.addUser(3, "Noam", domain.RoleEmployee)
	f.addUser(4, "Omer", domain.RoleEmployee)

	av := f.addAvailability(2, testWeek, true)
	f.selectCell(av, domain.ShiftNoon, domain.Wednesday)
	f.addAvailability(3, testWeek, true)
	f.addAvailability(4, testWeek, true)
	f.settingsWith(testWeek, func(s *domain.WeekSettings) {
		s.IsPublished = true
	})
	return f
}

func TestOfferShiftToAllEligible(t *testing.T) {
	f := transferFixture()
	// employee 4 already works that day
	f.selectCell(f.store.availabilities[avKey(1, testWeek, 4)], domain.ShiftEvening, domain.Wednesday)

	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferOffer, intent.Kind)
	assert.Equal(t, testWeek, intent.WeekKey)

	// the admin and employee 3 are eligible, employee 4 is not
	assert.Len(t, f.notifier.sentTo(1), 1)
	require.Len(t, f.notifier.sentTo(3), 1)
	assert.Empty(t, f.notifier.sentTo(4))

	n := f.notifier.sentTo(3)[0]
	assert.Contains(t, n.Message, "Noon shift on Wednesday")
	assert.Contains(t, n.Message, "Yael")
	assert.Equal(t, intent.ID, n.Meta["intentID"])
}

func TestOfferShiftToNamedRecipient(t *testing.T) {
	f := transferFixture()

	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), intent.ToUserID)

	assert.Len(t, f.notifier.sent, 1)
	assert.Equal(t, int64(3), f.notifier.sent[0].UserID)
}

func TestOfferShiftRequiresAssignment(t *testing.T) {
	f := transferFixture()

	_, err := f.manager.OfferShift(employee(3), 0, domain.ShiftNoon, domain.Wednesday, 0)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, f.notifier.sent)
}

func TestAcceptOfferCreatesApproval(t *testing.T) {
	f := transferFixture()
	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 0)
	require.NoError(t, err)
	f.notifier.sent = nil

	result, err := f.manager.AcceptOffer(employee(3), intent.ID)
	require.NoError(t, err)
	assert.False(t, result.Committed)
	assert.Equal(t, domain.TransferApproval, result.Intent.Kind)
	assert.Equal(t, int64(2), result.Intent.FromUserID)
	assert.Equal(t, int64(3), result.Intent.ToUserID)

	// the shift has not moved yet
	av := f.store.availabilities[avKey(1, testWeek, 2)]
	assert.Equal(t, domain.StatusSelected, av.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status)

	// the admin is asked to approve
	notifications := f.notifier.sentTo(1)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "Please approve")
}

func TestAcceptOfferByAdminCommitsImmediately(t *testing.T) {
	f := transferFixture()
	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 0)
	require.NoError(t, err)

	result, err := f.manager.AcceptOffer(admin(1), intent.ID)
	require.NoError(t, err)
	assert.True(t, result.Committed)

	giver := f.store.availabilities[avKey(1, testWeek, 2)]
	assert.Equal(t, domain.StatusDefault, giver.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status)
	taker := f.store.availabilities[avKey(1, testWeek, 1)]
	require.NotNil(t, taker)
	assert.Equal(t, domain.StatusSelected, taker.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status)

	// the offer is consumed, a replay resolves to no longer available
	_, err = f.manager.AcceptOffer(admin(1), intent.ID)
	assert.ErrorIs(t, err, ErrNoLongerAvailable)
}

func TestAcceptOfferAddressedToSomeoneElse(t *testing.T) {
	f := transferFixture()
	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 3)
	require.NoError(t, err)

	_, err = f.manager.AcceptOffer(employee(4), intent.ID)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestAcceptOfferAfterShiftMoved(t *testing.T) {
	f := transferFixture()
	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 0)
	require.NoError(t, err)

	// the giver no longer holds the shift
	av := f.store.availabilities[avKey(1, testWeek, 2)]
	av.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status = domain.StatusDefault

	_, err = f.manager.AcceptOffer(employee(3), intent.ID)
	assert.ErrorIs(t, err, ErrNoLongerAvailable)
}

func TestApproveTransferMovesShiftAndRefreshesStats(t *testing.T) {
	f := transferFixture()
	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 0)
	require.NoError(t, err)
	result, err := f.manager.AcceptOffer(employee(3), intent.ID)
	require.NoError(t, err)
	f.notifier.sent = nil

	_, err = f.manager.ApproveTransfer(admin(1), result.Intent.ID)
	require.NoError(t, err)

	giver := f.store.availabilities[avKey(1, testWeek, 2)]
	assert.Equal(t, domain.StatusDefault, giver.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status)
	taker := f.store.availabilities[avKey(1, testWeek, 3)]
	assert.Equal(t, domain.StatusSelected, taker.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status)

	// stats rows for both parties reflect the move
	assert.Zero(t, f.store.stats["1/week_2025_08_03/2"].Stats)
	assert.Equal(t, domain.ShiftStats{RegularShifts: 1}, f.store.stats["1/week_2025_08_03/3"].Stats)

	// both parties are told
	assert.Len(t, f.notifier.sentTo(2), 1)
	assert.Len(t, f.notifier.sentTo(3), 1)
}

func TestApproveTransferReplayIsNoLongerAvailable(t *testing.T) {
	f := transferFixture()
	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 0)
	require.NoError(t, err)
	result, err := f.manager.AcceptOffer(employee(3), intent.ID)
	require.NoError(t, err)

	_, err = f.manager.ApproveTransfer(admin(1), result.Intent.ID)
	require.NoError(t, err)

	_, err = f.manager.ApproveTransfer(admin(1), result.Intent.ID)
	assert.ErrorIs(t, err, ErrNoLongerAvailable)
}

func TestApproveTransferAfterShiftMovedDiscardsIntent(t *testing.T) {
	f := transferFixture()
	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 0)
	require.NoError(t, err)
	result, err := f.manager.AcceptOffer(employee(3), intent.ID)
	require.NoError(t, err)

	av := f.store.availabilities[avKey(1, testWeek, 2)]
	av.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status = domain.StatusDefault

	_, err = f.manager.ApproveTransfer(admin(1), result.Intent.ID)
	assert.ErrorIs(t, err, ErrNoLongerAvailable)

	// the stale intent was discarded on the failed commit
	stored, _ := f.intents.Get(result.Intent.ID)
	assert.Nil(t, stored)
}

func TestDeclineTransferNotifiesParties(t *testing.T) {
	f := transferFixture()
	intent, err := f.manager.OfferShift(employee(2), 0, domain.ShiftNoon, domain.Wednesday, 0)
	require.NoError(t, err)
	result, err := f.manager.AcceptOffer(employee(3), intent.ID)
	require.NoError(t, err)
	f.notifier.sent = nil

	_, err = f.manager.DeclineTransfer(admin(1), result.Intent.ID)
	require.NoError(t, err)

	assert.Len(t, f.notifier.sentTo(2), 1)
	assert.Len(t, f.notifier.sentTo(3), 1)

	// the shift stayed put
	av := f.store.availabilities[avKey(1, testWeek, 2)]
	assert.Equal(t, domain.StatusSelected, av.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status)
}

func TestProposeSwapConflictSendsNothing(t *testing.T) {
	f := transferFixture()
	// employee 3 holds an evening shift on the same day
	av := f.store.availabilities[avKey(1, testWeek, 3)]
	f.selectCell(av, domain.ShiftEvening, domain.Wednesday)

	_, err := f.manager.ProposeSwap(employee(2), 0, rules.SwapProposal{
		MyUserID: 2, MyShift: domain.ShiftNoon, MyDay: domain.Wednesday,
		TheirUserID: 3, TheirShift: domain.ShiftEvening, TheirDay: domain.Wednesday,
	})
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, f.notifier.sent)
}

func TestProposeSwapRoutedToAdmin(t *testing.T) {
	f := transferFixture()
	av := f.store.availabilities[avKey(1, testWeek, 3)]
	f.selectCell(av, domain.ShiftEvening, domain.Friday)

	result, err := f.manager.ProposeSwap(employee(2), 0, rules.SwapProposal{
		MyUserID: 2, MyShift: domain.ShiftNoon, MyDay: domain.Wednesday,
		TheirUserID: 3, TheirShift: domain.ShiftEvening, TheirDay: domain.Friday,
	})
	require.NoError(t, err)
	assert.False(t, result.Committed)
	assert.Equal(t, domain.TransferSwap, result.Intent.Kind)

	notifications := f.notifier.sentTo(1)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "requested to swap")
}

func TestApproveSwapExchangesShifts(t *testing.T) {
	f := transferFixture()
	av := f.store.availabilities[avKey(1, testWeek, 3)]
	f.selectCell(av, domain.ShiftEvening, domain.Friday)

	result, err := f.manager.ProposeSwap(employee(2), 0, rules.SwapProposal{
		MyUserID: 2, MyShift: domain.ShiftNoon, MyDay: domain.Wednesday,
		TheirUserID: 3, TheirShift: domain.ShiftEvening, TheirDay: domain.Friday,
	})
	require.NoError(t, err)

	_, err = f.manager.ApproveTransfer(admin(1), result.Intent.ID)
	require.NoError(t, err)

	mine := f.store.availabilities[avKey(1, testWeek, 2)]
	theirs := f.store.availabilities[avKey(1, testWeek, 3)]
	assert.Equal(t, domain.StatusDefault, mine.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status)
	assert.Equal(t, domain.StatusSelected, mine.Grid.Cell(domain.ShiftEvening, domain.Friday).Status)
	assert.Equal(t, domain.StatusDefault, theirs.Grid.Cell(domain.ShiftEvening, domain.Friday).Status)
	assert.Equal(t, domain.StatusSelected, theirs.Grid.Cell(domain.ShiftNoon, domain.Wednesday).Status)
}

func TestProposeSwapByAdminCommitsDirectly(t *testing.T) {
	f := transferFixture()
	av := f.store.availabilities[avKey(1, testWeek, 3)]
	f.selectCell(av, domain.ShiftEvening, domain.Friday)

	result, err := f.manager.ProposeSwap(admin(1), 0, rules.SwapProposal{
		MyUserID: 2, MyShift: domain.ShiftNoon, MyDay: domain.Wednesday,
		TheirUserID: 3, TheirShift: domain.ShiftEvening, TheirDay: domain.Friday,
	})
	require.NoError(t, err)
	assert.True(t, result.Committed)

	mine := f.store.availabilities[avKey(1, testWeek, 2)]
	assert.Equal(t, domain.StatusSelected, mine.Grid.Cell(domain.ShiftEvening, domain.Friday).Status)

	// both employees hear about the arbitrated swap
	assert.Len(t, f.notifier.sentTo(2), 1)
	assert.Len(t, f.notifier.sentTo(3), 1)
}

func TestProposeSwapForSomeoneElseRejected(t *testing.T) {
	f := transferFixture()

	_, err := f.manager.ProposeSwap(employee(3), 0, rules.SwapProposal{
		MyUserID: 2, MyShift: domain.ShiftNoon, MyDay: domain.Wednesday,
		TheirUserID: 4, TheirShift: domain.ShiftMorning, TheirDay: domain.Friday,
	})
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
}
