package response

import (
	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID         string       `json:"id"`
	ResourceID string       `json:"resource_id"`
	UserID     string       `json:"user_id"`
	Slot       SlotResponse `json:"slot"`
	Status     string       `json:"status"`
	Price      int64        `json:"price"`
	BasePrice  int64        `json:"base_price"`
	GroupID    *string      `json:"group_id,omitempty"`
	LedgerTxID *string      `json:"ledger_tx_id,omitempty"`
	RedeemCode *string      `json:"redeem_code,omitempty"`
	Bypassed   bool         `json:"bypassed,omitempty"`
	CreatedAt  int64        `json:"created_at"`
	UpdatedAt  int64        `json:"updated_at"`
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:         r.ID().String(),
		ResourceID: r.ResourceID().String(),
		UserID:     r.UserID().String(),
		Slot:       FromSlot(r.TimeSlot()),
		Status:     r.Status().String(),
		Price:      r.Price(),
		BasePrice:  r.BasePrice(),
		GroupID:    uuidString(r.GroupID()),
		LedgerTxID: uuidString(r.LedgerTxID()),
		RedeemCode: r.RedeemCode(),
		Bypassed:   r.Bypassed(),
		CreatedAt:  r.CreatedAt().Unix(),
		UpdatedAt:  r.UpdatedAt().Unix(),
	}
}

func FromReservations(items []*reservation.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, len(items))
	for i, r := range items {
		out[i] = FromReservation(r)
	}
	return out
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

type ReserveResponse struct {
	Reservation *ReservationResponse `json:"reservation"`
	Price       PriceResponse        `json:"price"`
	Replayed    bool                 `json:"replayed"`
}

func FromReserveResult(r *commands.ReserveResult) (*ReserveResponse, error) {
	price, err := FromPrice(r.Price)
	if err != nil {
		return nil, err
	}
	return &ReserveResponse{Reservation: FromReservation(r.Reservation), Price: price, Replayed: r.Replayed}, nil
}

type ReservationPageResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

func FromReservationPage(p *queries.ReservationPage) *ReservationPageResponse {
	return &ReservationPageResponse{Items: FromReservations(p.Items), NextCursor: p.NextCursor}
}

type FullVenueResponse struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"user_id"`
	ResourceIDs   []string               `json:"resource_ids"`
	Slot          SlotResponse           `json:"slot"`
	Status        string                 `json:"status"`
	Price         int64                  `json:"price"`
	BasePrice     int64                  `json:"base_price"`
	LedgerTxID    *string                `json:"ledger_tx_id,omitempty"`
	RedeemCode    *string                `json:"redeem_code,omitempty"`
	Bypassed      bool                   `json:"bypassed,omitempty"`
	FailureReason string                 `json:"failure_reason,omitempty"`
	Reservations  []*ReservationResponse `json:"reservations"`
	CreatedAt     int64                  `json:"created_at"`
	UpdatedAt     int64                  `json:"updated_at"`
}

func FromFullVenue(t *fullvenue.Transaction, members []*reservation.Reservation) *FullVenueResponse {
	ids := make([]string, len(t.ResourceIDs()))
	for i, id := range t.ResourceIDs() {
		ids[i] = id.String()
	}
	return &FullVenueResponse{
		ID:            t.ID().String(),
		UserID:        t.UserID().String(),
		ResourceIDs:   ids,
		Slot:          FromSlot(t.Slot()),
		Status:        string(t.Status()),
		Price:         t.Price(),
		BasePrice:     t.BasePrice(),
		LedgerTxID:    uuidString(t.LedgerTxID()),
		RedeemCode:    t.RedeemCode(),
		Bypassed:      t.Bypassed(),
		FailureReason: t.FailureReason(),
		Reservations:  FromReservations(members),
		CreatedAt:     t.CreatedAt().Unix(),
		UpdatedAt:     t.UpdatedAt().Unix(),
	}
}

func FromFullVenueView(v *queries.FullVenueView) *FullVenueResponse {
	return FromFullVenue(v.Transaction, v.Reservations)
}

type FullVenueReserveResponse struct {
	Transaction *FullVenueResponse `json:"transaction"`
	Price       PriceResponse      `json:"price"`
	Replayed    bool               `json:"replayed"`
}

func FromFullVenueResult(r *commands.FullVenueResult) (*FullVenueReserveResponse, error) {
	price, err := FromPrice(r.Price)
	if err != nil {
		return nil, err
	}
	return &FullVenueReserveResponse{
		Transaction: FromFullVenue(r.Transaction, r.Reservations),
		Price:       price,
		Replayed:    r.Replayed,
	}, nil
}

type CancelResponse struct {
	Reservation *ReservationResponse `json:"reservation,omitempty"`
	FullVenue   *FullVenueResponse   `json:"full_venue,omitempty"`
	Refunded    int64                `json:"refunded"`
}

func FromCancelResult(r *commands.CancelResult) *CancelResponse {
	out := &CancelResponse{Reservation: FromReservation(r.Reservation), Refunded: r.Refunded}
	if r.FullVenue != nil {
		out.FullVenue = FromFullVenue(r.FullVenue.Transaction, r.FullVenue.Reservations)
	}
	return out
}

func FromCancelFullVenueResult(r *commands.CancelFullVenueResult) *CancelResponse {
	return &CancelResponse{FullVenue: FromFullVenue(r.Transaction, r.Reservations), Refunded: r.Refunded}
}
