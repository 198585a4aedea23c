package shared

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/discount"
	"court-booking-engine/internal/domain/pricing"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/reservation"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

// BookingPolicy holds the venue rules shared by commands and queries.
type BookingPolicy struct {
	Location                *time.Location
	Checker                 reservation.Checker
	MaxBatchIntervals       int
	RefundRestoresRedeemUse bool
}

func NewBookingPolicy(cfg config.BookingConfig) (BookingPolicy, error) {
	loc, err := cfg.Location()
	if err != nil {
		return BookingPolicy{}, err
	}
	hours := resource.OperatingHours{
		Default: resource.Hours{Open: cfg.DefaultOpenHour, Close: cfg.DefaultCloseHour},
		ByType: map[resource.Type]resource.Hours{
			resource.TypeSolo: {Open: cfg.SoloOpenHour, Close: cfg.SoloCloseHour},
		},
	}
	return BookingPolicy{
		Location:                loc,
		Checker:                 reservation.NewChecker(cfg.LeadTime, hours),
		MaxBatchIntervals:       cfg.MaxBatchIntervals,
		RefundRestoresRedeemUse: cfg.RefundRestoresRedeemUse,
	}, nil
}

type PriceRequest struct {
	Resources []*resource.Resource
	Slot      reservation.TimeSlot
	Tier      user.Tier
	Code      *redeem.Code
	CodeUses  int
	Now       time.Time
	Override  *int64
}

type PriceResult struct {
	Quotes   []pricing.Quote
	Discount discount.Result
}

func (r PriceResult) BasePrice() int64  { return r.Discount.Base }
func (r PriceResult) FinalPrice() int64 { return r.Discount.Final }

// Pricer quotes one or more resources for the same slot and runs a single discount pass
// over the aggregate.
type Pricer struct {
	calc     pricing.Calculator
	composer *discount.Composer
}

func NewPricer(calc pricing.Calculator, composer *discount.Composer) *Pricer {
	return &Pricer{calc: calc, composer: composer}
}

func (p *Pricer) Price(cfg tariff.Config, req PriceRequest) (PriceResult, error) {
	quotes := make([]pricing.Quote, 0, len(req.Resources))
	types := make([]resource.Type, 0, len(req.Resources))
	for _, res := range req.Resources {
		q, err := p.calc.Quote(res, req.Slot, cfg)
		if err != nil {
			// A custom price does not depend on the tariff.
			if req.Override != nil && errs.Is(err, errs.ErrPricingConfig) {
				q = pricing.Quote{ResourceID: res.ID(), ResourceType: res.Type(), Slot: req.Slot, Duration: req.Slot.Duration()}
			} else {
				return PriceResult{}, err
			}
		}
		quotes = append(quotes, q)
		types = append(types, res.Type())
	}

	result, err := p.composer.Apply(discount.Input{
		Base: pricing.Total(quotes),
		Tier: req.Tier,
		Code: req.Code,
		Target: redeem.Target{
			Now:           req.Now,
			Scope:         redeem.ScopeBooking,
			ResourceTypes: types,
			Usage:         redeem.Usage{ByUser: req.CodeUses},
		},
		Override: req.Override,
	})
	if err != nil {
		return PriceResult{}, err
	}
	return PriceResult{Quotes: quotes, Discount: result}, nil
}

func LoadResource(ctx context.Context, tx Tx, id uuid.UUID) (*resource.Resource, error) {
	res, err := tx.Resources().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrResourceNotFound, "resource %s", id)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

// LoadRedeemCode returns the code and how many unreleased uses userID holds on it.
// An empty code yields nil.
func LoadRedeemCode(ctx context.Context, tx Tx, code string, userID uuid.UUID) (*redeem.Code, int, error) {
	if code == "" {
		return nil, 0, nil
	}
	normalized, err := redeem.NormalizeCode(code)
	if err != nil {
		return nil, 0, errs.Mark(err, errs.ErrRedeemCodeInvalid)
	}
	c, err := tx.RedeemCodes().FindByCode(ctx, normalized)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, 0, errs.Mark(errs.Wrapf(errs.ErrRedeemCodeNotFound, "code %s", normalized), errs.ErrRedeemCodeInvalid)
		}
		return nil, 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	uses, err := tx.RedeemCodes().CountUses(ctx, normalized, userID)
	if err != nil {
		return nil, 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return c, uses, nil
}

func LoadTariff(ctx context.Context, tx Tx) (tariff.Config, error) {
	cfg, err := tx.Tariff().Load(ctx)
	if err != nil {
		return tariff.Config{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return *cfg, nil
}

// IsDomainError reports whether err is one of the business sentinels, which pass through
// the usecase layer unmarked.
func IsDomainError(err error) bool {
	return errs.IsAny(err,
		errs.ErrInvalidInterval, errs.ErrPricingConfig, errs.ErrPricingChanged,
		errs.ErrResourceNotFound, errs.ErrResourceInactive,
		errs.ErrReservationNotFound, errs.ErrSlotTaken, errs.ErrAlreadyCancelled,
		errs.ErrInvalidStatusTransition, errs.ErrPartialFailure, errs.ErrFullVenueNotFound,
		errs.ErrRedeemCodeNotFound, errs.ErrRedeemCodeInvalid, errs.ErrRedeemCodeExhausted,
		errs.ErrRedeemCodeScopeMismatch, errs.ErrRedeemCodeExists,
		errs.ErrInsufficientBalance, errs.ErrLedgerTxNotFound, errs.ErrInvalidAmount,
		errs.ErrNotRechargeTransaction, errs.ErrForbidden, errs.ErrDomainValidation,
	)
}
