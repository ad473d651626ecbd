package domain

import "time"

type TransferKind string

const (
	// TransferOffer is a pending give-away waiting for a recipient to accept.
	TransferOffer TransferKind = "offer"
	// TransferApproval is an accepted offer waiting for admin approval.
	TransferApproval TransferKind = "approval"
	// TransferSwap is a proposed exchange waiting for admin approval.
	TransferSwap TransferKind = "swap"
)

// TransferIntent is a pending shift transfer kept in the intent store
// until it is committed, declined, or expires.
type TransferIntent struct {
	ID         string       `json:"id"`
	Kind       TransferKind `json:"kind"`
	CompanyID  int64        `json:"companyID"`
	WeekKey    WeekKey      `json:"weekKey"`
	WeekOffset int          `json:"weekOffset"`
	FromUserID int64        `json:"fromUserID"`
	// ToUserID is zero for an open offer, otherwise the single addressee.
	ToUserID int64     `json:"toUserID"`
	Shift    ShiftKind `json:"shift"`
	Day      DayOfWeek `json:"day"`
	// TheirShift and TheirDay are set for swap intents only.
	TheirShift ShiftKind `json:"theirShift,omitempty"`
	TheirDay   DayOfWeek `json:"theirDay,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
