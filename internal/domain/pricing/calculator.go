package pricing

import (
	"time"

	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Line struct {
	Hour    int
	Segment tariff.Segment
	DayKind tariff.DayKind
	Points  int64
}

type Quote struct {
	ResourceID   uuid.UUID
	ResourceType resource.Type
	Slot         reservation.TimeSlot
	BasePrice    int64
	Duration     time.Duration
	Breakdown    []Line
}

type Calculator interface {
	Quote(res *resource.Resource, slot reservation.TimeSlot, cfg tariff.Config) (Quote, error)
}

// TariffCalculator prices each billed hour from the weekday or weekend table of the
// resource type, choosing the table per hour so a Friday evening boundary splits correctly.
type TariffCalculator struct{}

func NewTariffCalculator() *TariffCalculator {
	return &TariffCalculator{}
}

func (c *TariffCalculator) Quote(res *resource.Resource, slot reservation.TimeSlot, cfg tariff.Config) (Quote, error) {
	if !res.IsActive() {
		return Quote{}, errs.ErrResourceInactive
	}
	if err := slot.ValidateBillable(); err != nil {
		return Quote{}, err
	}

	hours := slot.Hours()
	lines := make([]Line, 0, len(hours))
	var total int64
	for _, h := range hours {
		segment, ok := cfg.SegmentAt(h)
		if !ok {
			return Quote{}, errs.Wrapf(errs.ErrPricingConfig, "no segment covers %02d:00", h)
		}
		kind := tariff.DayKindAt(slot.Date(), h, cfg)
		rate, ok := cfg.Rate(res.Type(), kind, segment)
		if !ok {
			return Quote{}, errs.Wrapf(errs.ErrPricingConfig, "no %s %s rate for %s", kind, segment, res.Type())
		}
		lines = append(lines, Line{Hour: h, Segment: segment, DayKind: kind, Points: rate})
		total += rate
	}
	if total <= 0 {
		return Quote{}, errs.Wrapf(errs.ErrPricingConfig, "zero price for %s", slot)
	}

	return Quote{
		ResourceID:   res.ID(),
		ResourceType: res.Type(),
		Slot:         slot,
		BasePrice:    total,
		Duration:     slot.Duration(),
		Breakdown:    lines,
	}, nil
}

func Total(quotes []Quote) int64 {
	var total int64
	for _, q := range quotes {
		total += q.BasePrice
	}
	return total
}

// Allocate splits amount across quotes in proportion to their base prices, or evenly when
// no quote has a base price. Shares sum to amount; the last quote absorbs the rounding remainder.
func Allocate(amount int64, quotes []Quote) []int64 {
	shares := make([]int64, len(quotes))
	if len(quotes) == 0 {
		return shares
	}
	base := Total(quotes)
	var assigned int64
	for i, q := range quotes {
		if i == len(quotes)-1 {
			shares[i] = amount - assigned
			break
		}
		if base == 0 {
			shares[i] = amount / int64(len(quotes))
		} else {
			shares[i] = amount * q.BasePrice / base
		}
		assigned += shares[i]
	}
	return shares
}
