package response

import (
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/queries"
)

type LedgerTransactionResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Kind      string `json:"kind"`
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func FromLedgerTransaction(t *ledger.Transaction) *LedgerTransactionResponse {
	return &LedgerTransactionResponse{
		ID:        t.ID().String(),
		UserID:    t.AccountID().String(),
		Amount:    t.Amount(),
		Kind:      string(t.Kind()),
		Reference: t.Reference(),
		Status:    string(t.Status()),
		Note:      t.Note(),
		CreatedAt: t.CreatedAt().Unix(),
		UpdatedAt: t.UpdatedAt().Unix(),
	}
}

type LedgerResultResponse struct {
	Transaction *LedgerTransactionResponse `json:"transaction"`
	Balance     int64                      `json:"balance"`
	Replayed    bool                       `json:"replayed"`
	Changed     bool                       `json:"changed"`
}

func FromLedgerResult(r *commands.LedgerResult) *LedgerResultResponse {
	return &LedgerResultResponse{
		Transaction: FromLedgerTransaction(r.Transaction),
		Balance:     r.Balance,
		Replayed:    r.Replayed,
		Changed:     r.Changed,
	}
}

type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
	Version int64  `json:"version"`
}

func FromBalance(b *queries.BalanceView) *BalanceResponse {
	return &BalanceResponse{UserID: b.UserID.String(), Balance: b.Balance, Version: b.Version}
}

type LedgerPageResponse struct {
	Items      []*LedgerTransactionResponse `json:"items"`
	NextCursor string                       `json:"next_cursor,omitempty"`
}

func FromLedgerPage(p *queries.LedgerPage) *LedgerPageResponse {
	items := make([]*LedgerTransactionResponse, len(p.Items))
	for i, t := range p.Items {
		items[i] = FromLedgerTransaction(t)
	}
	return &LedgerPageResponse{Items: items, NextCursor: p.NextCursor}
}
