package request

import (
	"time"

	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

// SlotRequest is a wall clock interval in the venue time zone, e.g. 2030-06-05 18:00-20:00.
type SlotRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

func (r SlotRequest) ToDomain(loc *time.Location) (reservation.TimeSlot, error) {
	return reservation.ParseTimeSlot(r.Date, r.Start, r.End, loc)
}

type QuoteRequest struct {
	ResourceIDs []uuid.UUID `json:"resource_ids" binding:"required,min=1,dive,required"`
	Slot        SlotRequest `json:"slot" binding:"required"`
	RedeemCode  string      `json:"redeem_code" binding:"omitempty,max=32"`
}

func (r *QuoteRequest) ToInput(loc *time.Location) (queries.QuoteInput, error) {
	slot, err := r.Slot.ToDomain(loc)
	if err != nil {
		return queries.QuoteInput{}, err
	}
	return queries.QuoteInput{ResourceIDs: r.ResourceIDs, Slot: slot, RedeemCode: r.RedeemCode}, nil
}

type AvailabilityRequest struct {
	ResourceID uuid.UUID   `json:"resource_id" binding:"required"`
	Slot       SlotRequest `json:"slot" binding:"required"`
}

type BatchAvailabilityRequest struct {
	ResourceID uuid.UUID     `json:"resource_id" binding:"required"`
	Slots      []SlotRequest `json:"slots" binding:"required,min=1,dive"`
}

func (r *BatchAvailabilityRequest) ToDomain(loc *time.Location) ([]reservation.TimeSlot, error) {
	slots := make([]reservation.TimeSlot, len(r.Slots))
	for i, s := range r.Slots {
		slot, err := s.ToDomain(loc)
		if err != nil {
			return nil, err
		}
		slots[i] = slot
	}
	return slots, nil
}
