package commands

import (
	"context"
	"log/slog"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/fullvenue"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/pricing"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type FullVenueInput struct {
	ResourceIDs []uuid.UUID
	Slot        reservation.TimeSlot
	// QuotedTotal is the aggregate final price the caller saw.
	QuotedTotal *int64
	RedeemCode  string
	RequestKey  string
	OnBehalfOf  *uuid.UUID
	Override    *shared.AdminOverride
}

type FullVenueResult struct {
	Transaction  *fullvenue.Transaction
	Reservations []*reservation.Reservation
	Price        shared.PriceResult
	Replayed     bool
}

type CancelFullVenueResult struct {
	Transaction  *fullvenue.Transaction
	Reservations []*reservation.Reservation
	Refunded     int64
}

type FullVenueCommands interface {
	ReserveFullVenue(ctx context.Context, actor user.Identity, in FullVenueInput) (*FullVenueResult, error)
	CancelFullVenue(ctx context.Context, actor user.Identity, groupID uuid.UUID) (*CancelFullVenueResult, error)
}

type fullVenueCommandsImpl struct {
	uow       shared.UnitOfWork
	pricer    *shared.Pricer
	policy    shared.BookingPolicy
	publisher shared.EventPublisher
	metrics   shared.BookingMetrics
	clock     clock.Clock
}

func NewFullVenueCommands(
	uow shared.UnitOfWork,
	pricer *shared.Pricer,
	policy shared.BookingPolicy,
	publisher shared.EventPublisher,
	metrics shared.BookingMetrics,
	clk clock.Clock,
) FullVenueCommands {
	return &fullVenueCommandsImpl{
		uow:       uow,
		pricer:    pricer,
		policy:    policy,
		publisher: publisher,
		metrics:   metrics,
		clock:     clk,
	}
}

// memberFailure ties a member's error to the resource and marks the whole attempt failed.
func memberFailure(resourceID uuid.UUID, cause error) error {
	return errs.Mark(errs.Wrapf(cause, "resource %s", resourceID), errs.ErrPartialFailure)
}

func (c *fullVenueCommandsImpl) ReserveFullVenue(ctx context.Context, actor user.Identity, in FullVenueInput) (*FullVenueResult, error) {
	if in.Override != nil && !actor.IsAdmin() {
		return nil, errs.Wrap(errs.ErrForbidden, "admin override requires the admin role")
	}
	ownerID, err := resolveOwner(actor.UserID, actor.IsAdmin(), in.OnBehalfOf)
	if err != nil {
		return nil, err
	}
	tier := actor.Tier
	if ownerID != actor.UserID {
		tier = user.TierRegular
	}
	ids := fullvenue.SortResourceIDs(in.ResourceIDs)
	if len(ids) < 2 {
		return nil, errs.Wrap(errs.ErrDomainValidation, "a full venue booking needs at least two resources")
	}
	if err := in.Slot.ValidateBillable(); err != nil {
		return nil, err
	}

	started := c.clock.Now()
	var (
		out   *FullVenueResult
		debit *ledger.Transaction
		base  fullvenue.NewParams
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out, debit = nil, nil
		base = fullvenue.NewParams{UserID: ownerID, ResourceIDs: ids, Slot: in.Slot, Bypassed: in.Override.Bypass()}

		for _, id := range ids {
			if err := tx.Locks().LockResourceDay(ctx, id, in.Slot.Date()); err != nil {
				return dbErr(err)
			}
		}

		if in.RequestKey != "" {
			existing, err := tx.FullVenues().FindByRequestKey(ctx, ownerID, in.RequestKey)
			switch {
			case err == nil:
				members, err := tx.Reservations().ListByGroup(ctx, existing.ID())
				if err != nil {
					return dbErr(err)
				}
				out = &FullVenueResult{Transaction: existing, Reservations: members, Replayed: true}
				return nil
			case !infra.IsKind(err, infra.KindNotFound):
				return dbErr(err)
			}
		}

		now := c.clock.Now()
		bypass := in.Override.Bypass()
		resources := make([]*resource.Resource, 0, len(ids))
		for _, id := range ids {
			res, err := shared.LoadResource(ctx, tx, id)
			if err != nil {
				return memberFailure(id, err)
			}
			if !res.IsActive() {
				return memberFailure(id, errs.ErrResourceInactive)
			}
			if !bypass {
				existing, err := tx.Reservations().ListActiveByResourceDate(ctx, id, in.Slot.Date())
				if err != nil {
					return dbErr(err)
				}
				if err := c.policy.Checker.Check(res, in.Slot, existing, now).Err(); err != nil {
					return memberFailure(id, err)
				}
			}
			resources = append(resources, res)
		}

		cfg, err := shared.LoadTariff(ctx, tx)
		if err != nil {
			return err
		}
		code, uses, err := lockAndLoadCode(ctx, tx, in.RedeemCode, ownerID)
		if err != nil {
			return err
		}
		price, err := c.pricer.Price(cfg, shared.PriceRequest{
			Resources: resources,
			Slot:      in.Slot,
			Tier:      tier,
			Code:      code,
			CodeUses:  uses,
			Now:       now,
			Override:  in.Override.CustomPrice(),
		})
		if err != nil {
			return err
		}
		base.BasePrice, base.Price = price.BasePrice(), price.FinalPrice()
		if in.QuotedTotal != nil && !price.Discount.Overridden && *in.QuotedTotal != price.FinalPrice() {
			return errs.Wrapf(errs.ErrPricingChanged, "quoted %d, current %d", *in.QuotedTotal, price.FinalPrice())
		}

		group, err := fullvenue.NewTransaction(fullvenue.NewParams{
			UserID:      ownerID,
			ResourceIDs: ids,
			Slot:        in.Slot,
			BasePrice:   price.BasePrice(),
			Price:       price.FinalPrice(),
			RedeemCode:  codeName(code),
			RequestKey:  optional(in.RequestKey),
			Bypassed:    bypass,
		}, now)
		if err != nil {
			return err
		}
		if err := tx.FullVenues().Create(ctx, group); err != nil {
			return dbErr(err)
		}

		groupID := group.ID()
		shares := pricing.Allocate(price.FinalPrice(), price.Quotes)
		members := make([]*reservation.Reservation, 0, len(resources))
		for i, res := range resources {
			r, err := reservation.NewReservation(reservation.NewParams{
				ResourceID: res.ID(),
				UserID:     ownerID,
				Slot:       in.Slot,
				Price:      shares[i],
				BasePrice:  price.Quotes[i].BasePrice,
				GroupID:    &groupID,
				RedeemCode: codeName(code),
				Bypassed:   bypass,
			}, now)
			if err != nil {
				return memberFailure(res.ID(), err)
			}
			if err := tx.Reservations().Create(ctx, r); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return memberFailure(res.ID(), errs.ErrSlotTaken)
				}
				return dbErr(err)
			}
			if err := group.AddMember(r); err != nil {
				return memberFailure(res.ID(), err)
			}
			members = append(members, r)
		}

		if err := consumeCode(ctx, tx, code, ownerID, groupID, now); err != nil {
			return err
		}

		var ledgerTxID *uuid.UUID
		if price.FinalPrice() > 0 {
			debit, _, err = debitAccount(ctx, tx, ownerID, price.FinalPrice(), ledger.KindSpend, groupID.String(), "full venue booking", bypass, now)
			if err != nil {
				return err
			}
			id := debit.ID()
			ledgerTxID = &id
		}

		// Members carry no debit of their own; the group holds the single debit.
		for _, r := range members {
			if err := r.Confirm(nil, now); err != nil {
				return memberFailure(r.ResourceID(), err)
			}
			if err := tx.Reservations().Update(ctx, r); err != nil {
				return dbErr(err)
			}
		}
		if err := group.Confirm(ledgerTxID, now); err != nil {
			return err
		}
		if err := tx.FullVenues().Update(ctx, group); err != nil {
			return dbErr(err)
		}

		if in.Override != nil {
			record := audit.NewRecord(actor.UserID, audit.ActionBypassFullVenue, groupID.String(), in.Override.Reason, map[string]any{
				"user_id":    ownerID.String(),
				"resources":  len(ids),
				"slot":       in.Slot.String(),
				"bypass":     bypass,
				"price":      price.FinalPrice(),
				"overridden": price.Discount.Overridden,
			}, now)
			if err := tx.Audit().Append(ctx, record); err != nil {
				return dbErr(err)
			}
		}

		out = &FullVenueResult{Transaction: group, Reservations: members, Price: price}
		return nil
	})
	if err != nil {
		c.metrics.ReservationRejected(bookingKindFullVenue, rejectReason(err))
		if errs.Is(err, errs.ErrPartialFailure) {
			c.recordFailedAttempt(ctx, base, err)
		}
		return nil, err
	}
	if out.Replayed {
		return out, nil
	}

	group := out.Transaction
	c.metrics.ReservationCommitted(bookingKindFullVenue, group.Price(), c.clock.Now().Sub(started))
	if debit != nil {
		c.metrics.LedgerMoved(ledger.KindSpend, group.Price())
	}
	slog.Info("full venue booking confirmed",
		"group_id", group.ID().String(),
		"resources", len(group.ResourceIDs()),
		"slot", group.Slot().String(),
		"price", group.Price())
	publish(ctx, c.publisher, shared.Event{
		Type:        shared.EventFullVenueConfirmed,
		AggregateID: group.ID(),
		UserID:      group.UserID(),
		Payload: map[string]any{
			"reservation_ids": idStrings(group.ReservationIDs()),
			"slot":            group.Slot().String(),
			"price":           group.Price(),
		},
		OccurredAt: group.UpdatedAt(),
	})
	return out, nil
}

// recordFailedAttempt keeps a trace of a rolled back attempt. It runs in its own unit of work
// after the rollback and never changes the caller's error.
func (c *fullVenueCommandsImpl) recordFailedAttempt(ctx context.Context, p fullvenue.NewParams, cause error) {
	if p.UserID == uuid.Nil {
		return
	}
	failed := fullvenue.NewFailedAttempt(p, cause.Error(), c.clock.Now())
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.FullVenues().Create(ctx, failed)
	})
	if err != nil {
		slog.Warn("failed to record failed full venue attempt", "error", err.Error())
	}
}

func (c *fullVenueCommandsImpl) CancelFullVenue(ctx context.Context, actor user.Identity, groupID uuid.UUID) (*CancelFullVenueResult, error) {
	var out *CancelFullVenueResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = cancelFullVenueTx(ctx, tx, actor, groupID, c.policy, c.clock)
		return err
	})
	if err != nil {
		return nil, err
	}
	publishFullVenueCancelled(ctx, c.publisher, c.metrics, out)
	return out, nil
}

// cancelFullVenueTx cancels every member and refunds the single group debit.
func cancelFullVenueTx(
	ctx context.Context,
	tx shared.Tx,
	actor user.Identity,
	groupID uuid.UUID,
	policy shared.BookingPolicy,
	clk clock.Clock,
) (*CancelFullVenueResult, error) {
	group, err := loadFullVenue(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	if group.UserID() != actor.UserID && !actor.IsAdmin() {
		return nil, errs.Wrap(errs.ErrForbidden, "only the owner or an admin may cancel")
	}
	for _, id := range group.ResourceIDs() {
		if err := tx.Locks().LockResourceDay(ctx, id, group.Slot().Date()); err != nil {
			return nil, dbErr(err)
		}
	}
	if group, err = loadFullVenue(ctx, tx, groupID); err != nil {
		return nil, err
	}

	now := clk.Now()
	refund := group.RefundAmount()
	if err := group.Cancel(now); err != nil {
		return nil, err
	}
	if err := tx.FullVenues().Update(ctx, group); err != nil {
		return nil, dbErr(err)
	}

	members, err := tx.Reservations().ListByGroup(ctx, groupID)
	if err != nil {
		return nil, dbErr(err)
	}
	for _, r := range members {
		if r.IsCancelled() {
			continue
		}
		if err := r.Cancel(now); err != nil {
			return nil, err
		}
		if err := tx.Reservations().Update(ctx, r); err != nil {
			return nil, dbErr(err)
		}
	}

	if policy.RefundRestoresRedeemUse && group.RedeemCode() != nil {
		if err := releaseCode(ctx, tx, *group.RedeemCode(), groupID, now); err != nil {
			return nil, err
		}
	}
	if refund > 0 {
		if _, _, err := creditAccount(ctx, tx, group.UserID(), refund, ledger.KindRefund, groupID.String(), "full venue booking cancelled", now); err != nil {
			return nil, err
		}
	}
	return &CancelFullVenueResult{Transaction: group, Reservations: members, Refunded: refund}, nil
}

func loadFullVenue(ctx context.Context, tx shared.Tx, id uuid.UUID) (*fullvenue.Transaction, error) {
	group, err := tx.FullVenues().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrFullVenueNotFound, "full venue booking %s", id)
		}
		return nil, dbErr(err)
	}
	return group, nil
}

func publishFullVenueCancelled(ctx context.Context, publisher shared.EventPublisher, metrics shared.BookingMetrics, out *CancelFullVenueResult) {
	group := out.Transaction
	if out.Refunded > 0 {
		metrics.LedgerMoved(ledger.KindRefund, out.Refunded)
	}
	slog.Info("full venue booking cancelled",
		"group_id", group.ID().String(),
		"refunded", out.Refunded)
	publish(ctx, publisher, shared.Event{
		Type:        shared.EventFullVenueCancelled,
		AggregateID: group.ID(),
		UserID:      group.UserID(),
		Payload:     map[string]any{"refunded": out.Refunded},
		OccurredAt:  group.UpdatedAt(),
	})
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
