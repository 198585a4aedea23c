package queries

import (
	"context"

	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type QuoteInput struct {
	// ResourceIDs holds one resource, or several for a full venue quote.
	ResourceIDs []uuid.UUID
	Slot        reservation.TimeSlot
	RedeemCode  string
}

type QuoteResult struct {
	shared.PriceResult
	Available []reservation.Availability
}

type PricingQueries interface {
	Quote(ctx context.Context, actor user.Identity, in QuoteInput) (*QuoteResult, error)
}

type pricingQueriesImpl struct {
	uow    shared.UnitOfWork
	pricer *shared.Pricer
	policy shared.BookingPolicy
	clock  clock.Clock
}

func NewPricingQueries(uow shared.UnitOfWork, pricer *shared.Pricer, policy shared.BookingPolicy, clk clock.Clock) PricingQueries {
	return &pricingQueriesImpl{uow: uow, pricer: pricer, policy: policy, clock: clk}
}

// Quote prices the slot with every discount the caller would get now. The redeem code is
// validated here and again at commit.
func (q *pricingQueriesImpl) Quote(ctx context.Context, actor user.Identity, in QuoteInput) (*QuoteResult, error) {
	ids := fullvenue.SortResourceIDs(in.ResourceIDs)
	if len(ids) == 0 {
		return nil, errs.Wrap(errs.ErrDomainValidation, "at least one resource is required")
	}
	if in.Slot.IsZero() {
		return nil, errs.Wrap(errs.ErrInvalidInterval, "time slot is required")
	}

	var out *QuoteResult
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := q.clock.Now()
		resources := make([]*resource.Resource, 0, len(ids))
		available := make([]reservation.Availability, 0, len(ids))
		for _, id := range ids {
			res, err := shared.LoadResource(ctx, tx, id)
			if err != nil {
				return err
			}
			existing, err := tx.Reservations().ListActiveByResourceDate(ctx, id, in.Slot.Date())
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			resources = append(resources, res)
			available = append(available, q.policy.Checker.Check(res, in.Slot, existing, now))
		}

		cfg, err := shared.LoadTariff(ctx, tx)
		if err != nil {
			return err
		}
		code, uses, err := shared.LoadRedeemCode(ctx, tx, in.RedeemCode, actor.UserID)
		if err != nil {
			return err
		}
		price, err := q.pricer.Price(cfg, shared.PriceRequest{
			Resources: resources,
			Slot:      in.Slot,
			Tier:      actor.Tier,
			Code:      code,
			CodeUses:  uses,
			Now:       now,
		})
		if err != nil {
			return err
		}
		out = &QuoteResult{PriceResult: price, Available: available}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
