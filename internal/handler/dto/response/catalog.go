package response

import (
	"strings"

	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
)

type ResourceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Capacity  int    `json:"capacity"`
	Active    bool   `json:"active"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func FromResource(r *resource.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:        r.ID().String(),
		Name:      r.Name(),
		Type:      r.Type().String(),
		Capacity:  r.Capacity(),
		Active:    r.IsActive(),
		CreatedAt: r.CreatedAt().Unix(),
		UpdatedAt: r.UpdatedAt().Unix(),
	}
}

func FromResources(items []*resource.Resource) []*ResourceResponse {
	out := make([]*ResourceResponse, len(items))
	for i, r := range items {
		out[i] = FromResource(r)
	}
	return out
}

type SegmentResponse struct {
	Segment  string `json:"segment"`
	FromHour int    `json:"from_hour"`
	ToHour   int    `json:"to_hour"`
}

type RateTableResponse struct {
	Weekday map[string]int64 `json:"weekday"`
	Weekend map[string]int64 `json:"weekend"`
}

type TariffResponse struct {
	WeekendDays          []string                     `json:"weekend_days"`
	IncludeFridayEvening bool                         `json:"include_friday_evening"`
	FridayEveningHour    int                          `json:"friday_evening_hour"`
	Holidays             []string                     `json:"holidays"`
	Segments             []SegmentResponse            `json:"segments"`
	Rates                map[string]RateTableResponse `json:"rates"`
}

func FromTariff(cfg *tariff.Config) *TariffResponse {
	out := &TariffResponse{
		WeekendDays:          make([]string, len(cfg.WeekendDays)),
		IncludeFridayEvening: cfg.IncludeFridayEvening,
		FridayEveningHour:    cfg.FridayEveningHour,
		Holidays:             cfg.HolidayList(),
		Segments:             make([]SegmentResponse, len(cfg.Segments)),
		Rates:                make(map[string]RateTableResponse, len(cfg.Rates)),
	}
	for i, d := range cfg.WeekendDays {
		out.WeekendDays[i] = strings.ToLower(d.String())
	}
	for i, s := range cfg.Segments {
		out.Segments[i] = SegmentResponse{Segment: string(s.Segment), FromHour: s.FromHour, ToHour: s.ToHour}
	}
	for t, table := range cfg.Rates {
		out.Rates[string(t)] = RateTableResponse{Weekday: segmentRates(table.Weekday), Weekend: segmentRates(table.Weekend)}
	}
	return out
}

func segmentRates(in map[tariff.Segment]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for seg, pts := range in {
		out[string(seg)] = pts
	}
	return out
}

type RedeemCodeResponse struct {
	Code            string   `json:"code"`
	Kind            string   `json:"kind"`
	Value           int64    `json:"value"`
	MinAmount       int64    `json:"min_amount"`
	MaxDiscount     *int64   `json:"max_discount,omitempty"`
	ValidFrom       *int64   `json:"valid_from,omitempty"`
	ValidTo         *int64   `json:"valid_to,omitempty"`
	UsageLimit      *int     `json:"usage_limit,omitempty"`
	PerUserLimit    *int     `json:"per_user_limit,omitempty"`
	Scope           string   `json:"scope"`
	ApplicableTypes []string `json:"applicable_types,omitempty"`
	Active          bool     `json:"active"`
	UsedCount       int      `json:"used_count"`
}

func FromRedeemCode(c *redeem.Code) *RedeemCodeResponse {
	out := &RedeemCodeResponse{
		Code:         c.Code(),
		Kind:         string(c.Discount().Kind()),
		Value:        c.Discount().Value(),
		MinAmount:    c.MinAmount(),
		MaxDiscount:  c.MaxDiscount(),
		UsageLimit:   c.UsageLimit(),
		PerUserLimit: c.PerUserLimit(),
		Scope:        string(c.Scope()),
		Active:       c.IsActive(),
		UsedCount:    c.UsedCount(),
	}
	if c.ValidFrom() != nil {
		v := c.ValidFrom().Unix()
		out.ValidFrom = &v
	}
	if c.ValidTo() != nil {
		v := c.ValidTo().Unix()
		out.ValidTo = &v
	}
	for _, t := range c.ApplicableTypes() {
		out.ApplicableTypes = append(out.ApplicableTypes, t.String())
	}
	return out
}

func FromRedeemCodes(items []*redeem.Code) []*RedeemCodeResponse {
	out := make([]*RedeemCodeResponse, len(items))
	for i, c := range items {
		out[i] = FromRedeemCode(c)
	}
	return out
}
