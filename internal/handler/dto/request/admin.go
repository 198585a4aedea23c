package request

import (
	"strings"
	"time"

	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/pkg/patch"
	"court-booking-engine/internal/usecase/commands"
)

type CreateResourceRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Type     string `json:"type" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

func (r *CreateResourceRequest) ToInput() (commands.CreateResourceInput, error) {
	t, err := resource.NewType(r.Type)
	if err != nil {
		return commands.CreateResourceInput{}, err
	}
	return commands.CreateResourceInput{Name: strings.TrimSpace(r.Name), Type: t, Capacity: r.Capacity}, nil
}

type UpdateResourceRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Active *bool   `json:"active,omitempty"`
}

func (r *UpdateResourceRequest) ToInput() commands.UpdateResourceInput {
	return commands.UpdateResourceInput{Name: r.Name, Active: r.Active}
}

type HolidayRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type WeekendPolicyRequest struct {
	Days                 []string `json:"days" binding:"required,min=1,dive,required"`
	IncludeFridayEvening bool     `json:"include_friday_evening"`
	FridayEveningHour    int      `json:"friday_evening_hour" binding:"min=0,max=23"`
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

func (r *WeekendPolicyRequest) ToInput() (commands.WeekendPolicyInput, error) {
	days := make([]time.Weekday, 0, len(r.Days))
	for _, d := range r.Days {
		wd, ok := weekdays[strings.ToLower(strings.TrimSpace(d))]
		if !ok {
			return commands.WeekendPolicyInput{}, errs.Wrapf(errs.ErrDomainValidation, "unknown weekday %q", d)
		}
		days = append(days, wd)
	}
	return commands.WeekendPolicyInput{
		Days:                 days,
		IncludeFridayEvening: r.IncludeFridayEvening,
		FridayEveningHour:    r.FridayEveningHour,
	}, nil
}

type RateRequest struct {
	ResourceType  string `json:"resource_type" binding:"required"`
	DayKind       string `json:"day_kind" binding:"required,oneof=weekday weekend"`
	Segment       string `json:"segment" binding:"required"`
	PointsPerHour int64  `json:"points_per_hour" binding:"required,min=1"`
}

func (r *RateRequest) ToInput() (commands.RateInput, error) {
	t, err := resource.NewType(r.ResourceType)
	if err != nil {
		return commands.RateInput{}, err
	}
	return commands.RateInput{
		ResourceType:  t,
		DayKind:       tariff.DayKind(r.DayKind),
		Segment:       tariff.Segment(r.Segment),
		PointsPerHour: r.PointsPerHour,
	}, nil
}

type CreateRedeemCodeRequest struct {
	Code            string     `json:"code" binding:"required,min=3,max=32"`
	Kind            string     `json:"kind" binding:"required,oneof=fixed percentage"`
	Value           int64      `json:"value" binding:"required,min=1"`
	MinAmount       int64      `json:"min_amount" binding:"min=0"`
	MaxDiscount     *int64     `json:"max_discount,omitempty" binding:"omitempty,min=1"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidTo         *time.Time `json:"valid_to,omitempty"`
	UsageLimit      *int       `json:"usage_limit,omitempty" binding:"omitempty,min=1"`
	PerUserLimit    *int       `json:"per_user_limit,omitempty" binding:"omitempty,min=1"`
	Scope           *string    `json:"scope,omitempty"`
	ApplicableTypes []string   `json:"applicable_types,omitempty"`
}

func (r *CreateRedeemCodeRequest) ToDomain() (redeem.NewParams, error) {
	scope, err := redeem.NewScope(patch.Coalesce(r.Scope, string(redeem.ScopeBooking)))
	if err != nil {
		return redeem.NewParams{}, err
	}
	types := make([]resource.Type, 0, len(r.ApplicableTypes))
	for _, s := range r.ApplicableTypes {
		t, err := resource.NewType(s)
		if err != nil {
			return redeem.NewParams{}, err
		}
		types = append(types, t)
	}
	return redeem.NewParams{
		Code:            r.Code,
		Kind:            redeem.DiscountKind(r.Kind),
		Value:           r.Value,
		MinAmount:       r.MinAmount,
		MaxDiscount:     r.MaxDiscount,
		ValidFrom:       r.ValidFrom,
		ValidTo:         r.ValidTo,
		UsageLimit:      r.UsageLimit,
		PerUserLimit:    r.PerUserLimit,
		Scope:           scope,
		ApplicableTypes: types,
	}, nil
}
