package commands

import (
	"context"
	"log/slog"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/ledger"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	bookingKindSingle    = "single"
	bookingKindFullVenue = "full_venue"
)

type ReserveInput struct {
	ResourceID uuid.UUID
	Slot       reservation.TimeSlot
	// QuotedPrice is the final price the caller saw. When set, a different current price
	// fails with ErrPricingChanged.
	QuotedPrice *int64
	RedeemCode  string
	RequestKey  string
	// OnBehalfOf books for another user. Admin only.
	OnBehalfOf *uuid.UUID
	Override   *shared.AdminOverride
}

type ReserveResult struct {
	Reservation *reservation.Reservation
	Price       shared.PriceResult
	Replayed    bool
}

type CancelResult struct {
	Reservation *reservation.Reservation
	// FullVenue is set when the reservation belonged to a full venue booking, which is
	// cancelled as a whole.
	FullVenue *CancelFullVenueResult
	Refunded  int64
}

type ReservationCommands interface {
	Reserve(ctx context.Context, actor user.Identity, in ReserveInput) (*ReserveResult, error)
	Cancel(ctx context.Context, actor user.Identity, reservationID uuid.UUID) (*CancelResult, error)
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	pricer    *shared.Pricer
	policy    shared.BookingPolicy
	publisher shared.EventPublisher
	metrics   shared.BookingMetrics
	clock     clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	pricer *shared.Pricer,
	policy shared.BookingPolicy,
	publisher shared.EventPublisher,
	metrics shared.BookingMetrics,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		pricer:    pricer,
		policy:    policy,
		publisher: publisher,
		metrics:   metrics,
		clock:     clk,
	}
}

func (c *reservationCommandsImpl) Reserve(ctx context.Context, actor user.Identity, in ReserveInput) (*ReserveResult, error) {
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

	started := c.clock.Now()
	var (
		out   *ReserveResult
		debit *ledger.Transaction
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out, debit = nil, nil

		res, err := shared.LoadResource(ctx, tx, in.ResourceID)
		if err != nil {
			return err
		}
		if !res.IsActive() {
			return errs.Wrapf(errs.ErrResourceInactive, "resource %s", res.ID())
		}
		if err := in.Slot.ValidateBillable(); err != nil {
			return err
		}
		if err := tx.Locks().LockResourceDay(ctx, res.ID(), in.Slot.Date()); err != nil {
			return dbErr(err)
		}

		if in.RequestKey != "" {
			existing, err := tx.Reservations().FindByRequestKey(ctx, ownerID, in.RequestKey)
			switch {
			case err == nil:
				out = &ReserveResult{Reservation: existing, Replayed: true}
				return nil
			case !infra.IsKind(err, infra.KindNotFound):
				return dbErr(err)
			}
		}

		now := c.clock.Now()
		bypass := in.Override.Bypass()
		if !bypass {
			existing, err := tx.Reservations().ListActiveByResourceDate(ctx, res.ID(), in.Slot.Date())
			if err != nil {
				return dbErr(err)
			}
			if err := c.policy.Checker.Check(res, in.Slot, existing, now).Err(); err != nil {
				return err
			}
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
			Resources: []*resource.Resource{res},
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
		if in.QuotedPrice != nil && !price.Discount.Overridden && *in.QuotedPrice != price.FinalPrice() {
			return errs.Wrapf(errs.ErrPricingChanged, "quoted %d, current %d", *in.QuotedPrice, price.FinalPrice())
		}

		r, err := reservation.NewReservation(reservation.NewParams{
			ResourceID: res.ID(),
			UserID:     ownerID,
			Slot:       in.Slot,
			Price:      price.FinalPrice(),
			BasePrice:  price.BasePrice(),
			RedeemCode: codeName(code),
			RequestKey: optional(in.RequestKey),
			Bypassed:   bypass,
		}, now)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, r); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Wrap(errs.ErrSlotTaken, "reservation conflicts with an existing one")
			}
			return dbErr(err)
		}

		if err := consumeCode(ctx, tx, code, ownerID, r.ID(), now); err != nil {
			return err
		}

		var ledgerTxID *uuid.UUID
		if price.FinalPrice() > 0 {
			debit, _, err = debitAccount(ctx, tx, ownerID, price.FinalPrice(), ledger.KindSpend, r.ID().String(), "court booking", bypass, now)
			if err != nil {
				return err
			}
			id := debit.ID()
			ledgerTxID = &id
		}

		if err := r.Confirm(ledgerTxID, now); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, r); err != nil {
			return dbErr(err)
		}

		if in.Override != nil {
			record := audit.NewRecord(actor.UserID, audit.ActionBypassReservation, r.ID().String(), in.Override.Reason, map[string]any{
				"user_id":     ownerID.String(),
				"resource_id": res.ID().String(),
				"slot":        in.Slot.String(),
				"bypass":      bypass,
				"price":       price.FinalPrice(),
				"overridden":  price.Discount.Overridden,
			}, now)
			if err := tx.Audit().Append(ctx, record); err != nil {
				return dbErr(err)
			}
		}

		out = &ReserveResult{Reservation: r, Price: price}
		return nil
	})
	if err != nil {
		c.metrics.ReservationRejected(bookingKindSingle, rejectReason(err))
		return nil, err
	}
	if out.Replayed {
		return out, nil
	}

	r := out.Reservation
	c.metrics.ReservationCommitted(bookingKindSingle, r.Price(), c.clock.Now().Sub(started))
	if debit != nil {
		c.metrics.LedgerMoved(ledger.KindSpend, r.Price())
	}
	if in.Override != nil {
		slog.Warn("admin override booking",
			"actor_id", actor.UserID.String(),
			"reservation_id", r.ID().String(),
			"bypass", r.Bypassed(),
			"reason", in.Override.Reason)
	}
	slog.Info("reservation confirmed",
		"reservation_id", r.ID().String(),
		"resource_id", r.ResourceID().String(),
		"slot", r.TimeSlot().String(),
		"price", r.Price())
	publish(ctx, c.publisher, shared.Event{
		Type:        shared.EventReservationConfirmed,
		AggregateID: r.ID(),
		UserID:      r.UserID(),
		Payload: map[string]any{
			"resource_id": r.ResourceID().String(),
			"slot":        r.TimeSlot().String(),
			"price":       r.Price(),
		},
		OccurredAt: r.UpdatedAt(),
	})
	return out, nil
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, actor user.Identity, reservationID uuid.UUID) (*CancelResult, error) {
	var out *CancelResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out = nil

		r, err := loadReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if r.UserID() != actor.UserID && !actor.IsAdmin() {
			return errs.Wrap(errs.ErrForbidden, "only the owner or an admin may cancel")
		}
		if r.IsGroupMember() {
			group, err := cancelFullVenueTx(ctx, tx, actor, *r.GroupID(), c.policy, c.clock)
			if err != nil {
				return err
			}
			out = &CancelResult{Reservation: r, FullVenue: group, Refunded: group.Refunded}
			return nil
		}

		if err := tx.Locks().LockResourceDay(ctx, r.ResourceID(), r.TimeSlot().Date()); err != nil {
			return dbErr(err)
		}
		// Re-read under the lock: a concurrent cancel may have won.
		if r, err = loadReservation(ctx, tx, reservationID); err != nil {
			return err
		}

		now := c.clock.Now()
		refund := r.RefundAmount()
		if err := r.Cancel(now); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, r); err != nil {
			return dbErr(err)
		}

		if c.policy.RefundRestoresRedeemUse && r.RedeemCode() != nil {
			if err := releaseCode(ctx, tx, *r.RedeemCode(), r.ID(), now); err != nil {
				return err
			}
		}
		if refund > 0 {
			if _, _, err := creditAccount(ctx, tx, r.UserID(), refund, ledger.KindRefund, r.ID().String(), "booking cancelled", now); err != nil {
				return err
			}
		}

		out = &CancelResult{Reservation: r, Refunded: refund}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.FullVenue != nil {
		publishFullVenueCancelled(ctx, c.publisher, c.metrics, out.FullVenue)
		return out, nil
	}

	r := out.Reservation
	if out.Refunded > 0 {
		c.metrics.LedgerMoved(ledger.KindRefund, out.Refunded)
	}
	slog.Info("reservation cancelled",
		"reservation_id", r.ID().String(),
		"actor_id", actor.UserID.String(),
		"refunded", out.Refunded)
	publish(ctx, c.publisher, shared.Event{
		Type:        shared.EventReservationCancelled,
		AggregateID: r.ID(),
		UserID:      r.UserID(),
		Payload:     map[string]any{"refunded": out.Refunded},
		OccurredAt:  r.UpdatedAt(),
	})
	return out, nil
}

func codeName(c *redeem.Code) *string {
	if c == nil {
		return nil
	}
	name := c.Code()
	return &name
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
