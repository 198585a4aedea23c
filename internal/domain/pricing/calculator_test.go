//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"court-booking-engine/internal/domain/pricing"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTariffCalculator_Quote(t *testing.T) {
	calc := pricing.NewTariffCalculator()
	court := builder.NewResourceBuilder().MustBuild()
	wednesday := builder.Date(2030, time.June, 5)
	friday := builder.Date(2030, time.June, 7)

	t.Run("segments across a weekday", func(t *testing.T) {
		q, err := calc.Quote(court, builder.Slot(wednesday, 16, 18), tariff.DefaultConfig())
		require.NoError(t, err)

		assert.Equal(t, int64(300+500), q.BasePrice)
		assert.Equal(t, 2*time.Hour, q.Duration)
		want := []pricing.Line{
			{Hour: 16, Segment: tariff.SegmentDay, DayKind: tariff.DayKindWeekday, Points: 300},
			{Hour: 17, Segment: tariff.SegmentPeak, DayKind: tariff.DayKindWeekday, Points: 500},
		}
		if diff := cmp.Diff(want, q.Breakdown); diff != "" {
			t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("holiday uses the weekend table", func(t *testing.T) {
		cfg := tariff.DefaultConfig()
		cfg.AddHoliday(wednesday)

		q, err := calc.Quote(court, builder.Slot(wednesday, 18, 19), cfg)
		require.NoError(t, err)
		assert.Equal(t, int64(600), q.BasePrice)
	})

	t.Run("friday evening switches table per hour", func(t *testing.T) {
		cfg := tariff.DefaultConfig()
		require.NoError(t, cfg.SetWeekendPolicy(cfg.WeekendDays, true, 18))

		q, err := calc.Quote(court, builder.Slot(friday, 17, 19), cfg)
		require.NoError(t, err)
		assert.Equal(t, int64(500+600), q.BasePrice)
		assert.Equal(t, tariff.DayKindWeekday, q.Breakdown[0].DayKind)
		assert.Equal(t, tariff.DayKindWeekend, q.Breakdown[1].DayKind)
	})

	t.Run("misaligned start", func(t *testing.T) {
		slot, err := reservation.NewTimeSlot(wednesday, 18*60+30, 19*60+30)
		require.NoError(t, err)

		_, err = calc.Quote(court, slot, tariff.DefaultConfig())
		assert.ErrorIs(t, err, errs.ErrInvalidInterval)
	})

	t.Run("partial hour duration", func(t *testing.T) {
		slot, err := reservation.NewTimeSlot(wednesday, 18*60, 19*60+30)
		require.NoError(t, err)

		_, err = calc.Quote(court, slot, tariff.DefaultConfig())
		assert.ErrorIs(t, err, errs.ErrInvalidInterval)
	})

	t.Run("missing rate is a configuration error", func(t *testing.T) {
		cfg := tariff.DefaultConfig()
		delete(cfg.Rates[resource.TypeCompetition].Weekday, tariff.SegmentPeak)

		_, err := calc.Quote(court, builder.Slot(wednesday, 18, 19), cfg)
		assert.ErrorIs(t, err, errs.ErrPricingConfig)
	})

	t.Run("zero rate is a configuration error", func(t *testing.T) {
		cfg := tariff.DefaultConfig()
		cfg.Rates[resource.TypeCompetition].Weekday[tariff.SegmentPeak] = 0

		_, err := calc.Quote(court, builder.Slot(wednesday, 18, 19), cfg)
		assert.ErrorIs(t, err, errs.ErrPricingConfig)
	})

	t.Run("inactive resource", func(t *testing.T) {
		inactive := builder.NewResourceBuilder().Inactive().MustBuild()

		_, err := calc.Quote(inactive, builder.Slot(wednesday, 18, 19), tariff.DefaultConfig())
		assert.ErrorIs(t, err, errs.ErrResourceInactive)
	})
}

func TestAllocate(t *testing.T) {
	quotes := []pricing.Quote{{BasePrice: 500}, {BasePrice: 300}, {BasePrice: 200}}

	shares := pricing.Allocate(799, quotes)
	assert.Equal(t, []int64{399, 239, 161}, shares)

	var sum int64
	for _, s := range shares {
		sum += s
	}
	assert.Equal(t, int64(799), sum)
	assert.Equal(t, int64(1000), pricing.Total(quotes))
}
