package response

import (
	"court-booking-engine/internal/domain/pricing"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/queries"
	"court-booking-engine/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func FromSlot(s reservation.TimeSlot) SlotResponse {
	return SlotResponse{Date: s.DateString(), Start: s.StartClock(), End: s.EndClock()}
}

// PriceBreakdownResponse mirrors discount.Result field for field.
type PriceBreakdownResponse struct {
	Base               int64  `json:"base"`
	MembershipPercent  int64  `json:"membership_percent"`
	MembershipDiscount int64  `json:"membership_discount"`
	CodeDiscount       int64  `json:"code_discount"`
	Code               string `json:"code,omitempty"`
	Final              int64  `json:"final"`
	Overridden         bool   `json:"overridden,omitempty"`
}

type HourLineResponse struct {
	Hour    int    `json:"hour"`
	Segment string `json:"segment"`
	DayKind string `json:"day_kind"`
	Points  int64  `json:"points"`
}

type ResourceQuoteResponse struct {
	ResourceID   string             `json:"resource_id"`
	ResourceType string             `json:"resource_type"`
	BasePrice    int64              `json:"base_price"`
	Hours        []HourLineResponse `json:"hours"`
}

type PriceResponse struct {
	Resources []ResourceQuoteResponse `json:"resources"`
	Breakdown PriceBreakdownResponse  `json:"breakdown"`
}

func FromPrice(p shared.PriceResult) (PriceResponse, error) {
	var breakdown PriceBreakdownResponse
	if err := copier.Copy(&breakdown, &p.Discount); err != nil {
		return PriceResponse{}, errs.Wrap(err, "failed to map price breakdown")
	}

	out := PriceResponse{Resources: make([]ResourceQuoteResponse, len(p.Quotes)), Breakdown: breakdown}
	for i, q := range p.Quotes {
		out.Resources[i] = fromQuote(q)
	}
	return out, nil
}

func fromQuote(q pricing.Quote) ResourceQuoteResponse {
	lines := make([]HourLineResponse, len(q.Breakdown))
	for i, l := range q.Breakdown {
		lines[i] = HourLineResponse{Hour: l.Hour, Segment: string(l.Segment), DayKind: string(l.DayKind), Points: l.Points}
	}
	return ResourceQuoteResponse{
		ResourceID:   q.ResourceID.String(),
		ResourceType: string(q.ResourceType),
		BasePrice:    q.BasePrice,
		Hours:        lines,
	}
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func FromAvailability(a reservation.Availability) AvailabilityResponse {
	return AvailabilityResponse{Available: a.Available, Reason: string(a.Reason)}
}

type QuoteResponse struct {
	PriceResponse
	Available []AvailabilityResponse `json:"available"`
}

func FromQuote(q *queries.QuoteResult) (*QuoteResponse, error) {
	price, err := FromPrice(q.PriceResult)
	if err != nil {
		return nil, err
	}
	out := &QuoteResponse{PriceResponse: price, Available: make([]AvailabilityResponse, len(q.Available))}
	for i, a := range q.Available {
		out.Available[i] = FromAvailability(a)
	}
	return out, nil
}

type BatchItemResponse struct {
	Slot SlotResponse `json:"slot"`
	AvailabilityResponse
	BasePrice *int64 `json:"base_price,omitempty"`
}

func FromBatch(items []queries.BatchItem) []BatchItemResponse {
	out := make([]BatchItemResponse, len(items))
	for i, it := range items {
		out[i] = BatchItemResponse{
			Slot:                 FromSlot(it.Slot),
			AvailabilityResponse: FromAvailability(it.Availability),
			BasePrice:            it.BasePrice,
		}
	}
	return out
}
