package request

import (
	"strings"
	"time"

	"court-booking-engine/internal/usecase/commands"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID uuid.UUID   `json:"resource_id" binding:"required"`
	Slot       SlotRequest `json:"slot" binding:"required"`
	// QuotedPrice is the final price from a previous quote. A mismatch is rejected.
	QuotedPrice *int64 `json:"quoted_price,omitempty" binding:"omitempty,min=0"`
	RedeemCode  string `json:"redeem_code,omitempty" binding:"omitempty,max=32"`
}

func (r *CreateReservationRequest) ToInput(loc *time.Location, requestKey string) (commands.ReserveInput, error) {
	slot, err := r.Slot.ToDomain(loc)
	if err != nil {
		return commands.ReserveInput{}, err
	}
	return commands.ReserveInput{
		ResourceID:  r.ResourceID,
		Slot:        slot,
		QuotedPrice: r.QuotedPrice,
		RedeemCode:  strings.TrimSpace(r.RedeemCode),
		RequestKey:  requestKey,
	}, nil
}

type OverrideRequest struct {
	BypassRestrictions bool   `json:"bypass_restrictions"`
	CustomPoints       *int64 `json:"custom_points,omitempty" binding:"omitempty,min=0"`
	Reason             string `json:"reason" binding:"required,max=500"`
}

func (r OverrideRequest) ToDomain() *shared.AdminOverride {
	return &shared.AdminOverride{
		BypassRestrictions: r.BypassRestrictions,
		CustomPoints:       r.CustomPoints,
		Reason:             strings.TrimSpace(r.Reason),
	}
}

type AdminReservationRequest struct {
	CreateReservationRequest
	OnBehalfOf *uuid.UUID      `json:"on_behalf_of,omitempty"`
	Override   OverrideRequest `json:"override" binding:"required"`
}

func (r *AdminReservationRequest) ToInput(loc *time.Location, requestKey string) (commands.ReserveInput, error) {
	in, err := r.CreateReservationRequest.ToInput(loc, requestKey)
	if err != nil {
		return commands.ReserveInput{}, err
	}
	in.OnBehalfOf = r.OnBehalfOf
	in.Override = r.Override.ToDomain()
	return in, nil
}

type FullVenueRequest struct {
	ResourceIDs []uuid.UUID `json:"resource_ids" binding:"required,min=2,dive,required"`
	Slot        SlotRequest `json:"slot" binding:"required"`
	QuotedTotal *int64      `json:"quoted_total,omitempty" binding:"omitempty,min=0"`
	RedeemCode  string      `json:"redeem_code,omitempty" binding:"omitempty,max=32"`
}

func (r *FullVenueRequest) ToInput(loc *time.Location, requestKey string) (commands.FullVenueInput, error) {
	slot, err := r.Slot.ToDomain(loc)
	if err != nil {
		return commands.FullVenueInput{}, err
	}
	return commands.FullVenueInput{
		ResourceIDs: r.ResourceIDs,
		Slot:        slot,
		QuotedTotal: r.QuotedTotal,
		RedeemCode:  strings.TrimSpace(r.RedeemCode),
		RequestKey:  requestKey,
	}, nil
}

type AdminFullVenueRequest struct {
	FullVenueRequest
	OnBehalfOf *uuid.UUID      `json:"on_behalf_of,omitempty"`
	Override   OverrideRequest `json:"override" binding:"required"`
}

func (r *AdminFullVenueRequest) ToInput(loc *time.Location, requestKey string) (commands.FullVenueInput, error) {
	in, err := r.FullVenueRequest.ToInput(loc, requestKey)
	if err != nil {
		return commands.FullVenueInput{}, err
	}
	in.OnBehalfOf = r.OnBehalfOf
	in.Override = r.Override.ToDomain()
	return in, nil
}
