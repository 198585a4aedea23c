package queries

import (
	"context"

	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type BatchItem struct {
	Slot         reservation.TimeSlot
	Availability reservation.Availability
	// BasePrice is nil when the slot cannot be priced, e.g. it is not aligned to the hour.
	BasePrice *int64
}

type AvailabilityQueries interface {
	IsAvailable(ctx context.Context, resourceID uuid.UUID, slot reservation.TimeSlot) (reservation.Availability, error)
	// CheckBatch answers every slot from one snapshot, exactly as len(slots) IsAvailable calls
	// against that snapshot would.
	CheckBatch(ctx context.Context, resourceID uuid.UUID, slots []reservation.TimeSlot) ([]BatchItem, error)
}

type availabilityQueriesImpl struct {
	uow    shared.UnitOfWork
	pricer *shared.Pricer
	policy shared.BookingPolicy
	clock  clock.Clock
}

func NewAvailabilityQueries(uow shared.UnitOfWork, pricer *shared.Pricer, policy shared.BookingPolicy, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow, pricer: pricer, policy: policy, clock: clk}
}

func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, resourceID uuid.UUID, slot reservation.TimeSlot) (reservation.Availability, error) {
	items, err := q.check(ctx, resourceID, []reservation.TimeSlot{slot}, false)
	if err != nil {
		return reservation.Availability{}, err
	}
	return items[0].Availability, nil
}

func (q *availabilityQueriesImpl) CheckBatch(ctx context.Context, resourceID uuid.UUID, slots []reservation.TimeSlot) ([]BatchItem, error) {
	if len(slots) == 0 {
		return nil, errs.Wrap(errs.ErrDomainValidation, "at least one interval is required")
	}
	if q.policy.MaxBatchIntervals > 0 && len(slots) > q.policy.MaxBatchIntervals {
		return nil, errs.Wrapf(errs.ErrDomainValidation, "at most %d intervals per batch", q.policy.MaxBatchIntervals)
	}
	return q.check(ctx, resourceID, slots, true)
}

func (q *availabilityQueriesImpl) check(ctx context.Context, resourceID uuid.UUID, slots []reservation.TimeSlot, withPrice bool) ([]BatchItem, error) {
	for _, s := range slots {
		if s.IsZero() {
			return nil, errs.Wrap(errs.ErrInvalidInterval, "time slot is required")
		}
	}

	var items []BatchItem
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := shared.LoadResource(ctx, tx, resourceID)
		if err != nil {
			return err
		}
		var cfg tariff.Config
		if withPrice {
			if cfg, err = shared.LoadTariff(ctx, tx); err != nil {
				return err
			}
		}

		now := q.clock.Now()
		byDate := map[string][]*reservation.Reservation{}
		items = make([]BatchItem, len(slots))
		for i, slot := range slots {
			existing, ok := byDate[slot.DateString()]
			if !ok {
				existing, err = tx.Reservations().ListActiveByResourceDate(ctx, resourceID, slot.Date())
				if err != nil {
					return errs.Mark(err, errs.ErrDatabaseOperationFailed)
				}
				byDate[slot.DateString()] = existing
			}
			items[i] = BatchItem{Slot: slot, Availability: q.policy.Checker.Check(res, slot, existing, now)}
			if withPrice {
				items[i].BasePrice = q.basePrice(res, slot, cfg)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (q *availabilityQueriesImpl) basePrice(res *resource.Resource, slot reservation.TimeSlot, cfg tariff.Config) *int64 {
	price, err := q.pricer.Price(cfg, shared.PriceRequest{Resources: []*resource.Resource{res}, Slot: slot, Now: q.clock.Now()})
	if err != nil {
		return nil
	}
	base := price.BasePrice()
	return &base
}
