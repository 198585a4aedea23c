package request

import (
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/pkg/patch"
	"court-booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type LedgerEntryRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	Amount    int64     `json:"amount" binding:"required,min=1"`
	Kind      string    `json:"kind" binding:"required,oneof=recharge spend refund"`
	Reference string    `json:"reference" binding:"max=128"`
	Note      string    `json:"note" binding:"max=500"`
	Bypass    bool      `json:"bypass"`
}

func (r *LedgerEntryRequest) ToInput() (commands.LedgerEntryInput, error) {
	kind, err := ledger.NewKind(r.Kind)
	if err != nil {
		return commands.LedgerEntryInput{}, err
	}
	return commands.LedgerEntryInput{
		UserID:    r.UserID,
		Amount:    r.Amount,
		Kind:      kind,
		Reference: r.Reference,
		Note:      r.Note,
		Bypass:    r.Bypass,
	}, nil
}

type RechargeRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	Amount    int64     `json:"amount" binding:"required,min=1"`
	Reference string    `json:"reference" binding:"max=128"`
	// Status defaults to completed.
	Status *string `json:"status,omitempty" binding:"omitempty,oneof=pending completed"`
}

func (r *RechargeRequest) ToInput() (commands.RechargeInput, error) {
	status, err := ledger.NewStatus(patch.Coalesce(r.Status, string(ledger.StatusCompleted)))
	if err != nil {
		return commands.RechargeInput{}, err
	}
	return commands.RechargeInput{UserID: r.UserID, Amount: r.Amount, Reference: r.Reference, Status: status}, nil
}

type RechargeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed failed cancelled"`
	Bypass bool   `json:"bypass"`
	Reason string `json:"reason" binding:"max=500"`
}

func (r *RechargeStatusRequest) ToInput(txID uuid.UUID) (commands.RechargeStatusInput, error) {
	status, err := ledger.NewStatus(r.Status)
	if err != nil {
		return commands.RechargeStatusInput{}, err
	}
	return commands.RechargeStatusInput{TransactionID: txID, Status: status, Bypass: r.Bypass, Reason: r.Reason}, nil
}

type AdjustRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Delta  int64     `json:"delta" binding:"required"`
	Reason string    `json:"reason" binding:"required,max=500"`
	Bypass bool      `json:"bypass"`
}

func (r *AdjustRequest) ToInput() commands.AdjustInput {
	return commands.AdjustInput{UserID: r.UserID, Delta: r.Delta, Reason: r.Reason, Bypass: r.Bypass}
}
