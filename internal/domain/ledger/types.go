package ledger

import "errors"

var (
	ErrInvalidKind   = errors.New("invalid ledger transaction kind")
	ErrInvalidStatus = errors.New("invalid ledger transaction status")
)

type Kind string

const (
	KindRecharge    Kind = "recharge"
	KindSpend       Kind = "spend"
	KindRefund      Kind = "refund"
	KindAdminAdjust Kind = "admin-adjust"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindRecharge, KindSpend, KindRefund, KindAdminAdjust:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
