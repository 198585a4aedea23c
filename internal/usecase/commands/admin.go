package commands

import (
	"context"
	"log/slog"
	"time"

	"court-booking-engine/internal/domain/audit"
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/clock"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/pkg/patch"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateResourceInput struct {
	Name     string
	Type     resource.Type
	Capacity int
}

// UpdateResourceInput applies only the fields that are set.
type UpdateResourceInput struct {
	Name   *string
	Active *bool
}

type WeekendPolicyInput struct {
	Days                 []time.Weekday
	IncludeFridayEvening bool
	FridayEveningHour    int
}

type RateInput struct {
	ResourceType  resource.Type
	DayKind       tariff.DayKind
	Segment       tariff.Segment
	PointsPerHour int64
}

type AdminCommands interface {
	CreateResource(ctx context.Context, actor user.Identity, in CreateResourceInput) (*resource.Resource, error)
	UpdateResource(ctx context.Context, actor user.Identity, id uuid.UUID, in UpdateResourceInput) (*resource.Resource, error)
	AddHoliday(ctx context.Context, actor user.Identity, date time.Time, reason string) (*tariff.Config, error)
	RemoveHoliday(ctx context.Context, actor user.Identity, date time.Time, reason string) (*tariff.Config, error)
	SetWeekendPolicy(ctx context.Context, actor user.Identity, in WeekendPolicyInput) (*tariff.Config, error)
	SetRate(ctx context.Context, actor user.Identity, in RateInput) (*tariff.Config, error)
	CreateRedeemCode(ctx context.Context, actor user.Identity, in redeem.NewParams) (*redeem.Code, error)
	DeactivateRedeemCode(ctx context.Context, actor user.Identity, code string) (*redeem.Code, error)
}

type adminCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAdminCommands(uow shared.UnitOfWork, clk clock.Clock) AdminCommands {
	return &adminCommandsImpl{uow: uow, clock: clk}
}

func invalid(err error) error {
	if errs.Is(err, errs.ErrDomainValidation) {
		return err
	}
	return errs.Mark(err, errs.ErrDomainValidation)
}

func appendAudit(ctx context.Context, tx shared.Tx, actor user.Identity, action audit.Action, target, reason string, detail map[string]any, now time.Time) error {
	if err := tx.Audit().Append(ctx, audit.NewRecord(actor.UserID, action, target, reason, detail, now)); err != nil {
		return dbErr(err)
	}
	slog.Info("admin action", "action", string(action), "actor_id", actor.UserID.String(), "target", target)
	return nil
}

func (c *adminCommandsImpl) CreateResource(ctx context.Context, actor user.Identity, in CreateResourceInput) (*resource.Resource, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	now := c.clock.Now()
	res, err := resource.NewResource(uuid.Nil, in.Name, in.Type, in.Capacity, now)
	if err != nil {
		return nil, invalid(err)
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Resources().Create(ctx, res); err != nil {
			return dbErr(err)
		}
		return appendAudit(ctx, tx, actor, audit.ActionResourceCreate, res.ID().String(), "", map[string]any{
			"name": res.Name(),
			"type": string(res.Type()),
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *adminCommandsImpl) UpdateResource(ctx context.Context, actor user.Identity, id uuid.UUID, in UpdateResourceInput) (*resource.Resource, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var out *resource.Resource
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockResource(ctx, id); err != nil {
			return dbErr(err)
		}
		res, err := shared.LoadResource(ctx, tx, id)
		if err != nil {
			return err
		}
		now := c.clock.Now()
		changes := patch.Changes{}
		err = patch.Apply(changes, "name", in.Name, func(name string) (any, error) {
			if err := res.Rename(name, now); err != nil {
				return nil, invalid(err)
			}
			return res.Name(), nil
		})
		if err != nil {
			return err
		}
		_ = patch.Apply(changes, "active", in.Active, func(active bool) (any, error) {
			res.SetActive(active, now)
			return res.IsActive(), nil
		})
		if changes.Empty() {
			return errs.Wrap(errs.ErrDomainValidation, "nothing to update")
		}
		if err := tx.Resources().Update(ctx, res); err != nil {
			return dbErr(err)
		}
		out = res
		return appendAudit(ctx, tx, actor, audit.ActionResourceUpdate, res.ID().String(), "", changes, now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// editTariff applies edit to the stored configuration. Stored reservations keep their prices.
func (c *adminCommandsImpl) editTariff(
	ctx context.Context,
	actor user.Identity,
	action audit.Action,
	reason string,
	detail map[string]any,
	edit func(cfg *tariff.Config) error,
) (*tariff.Config, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var out *tariff.Config
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockTariff(ctx); err != nil {
			return dbErr(err)
		}
		current, err := shared.LoadTariff(ctx, tx)
		if err != nil {
			return err
		}
		cfg := current.Clone()
		if err := edit(&cfg); err != nil {
			return invalid(err)
		}
		if err := tx.Tariff().Save(ctx, &cfg); err != nil {
			return dbErr(err)
		}
		out = &cfg
		return appendAudit(ctx, tx, actor, action, "tariff", reason, detail, c.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminCommandsImpl) AddHoliday(ctx context.Context, actor user.Identity, date time.Time, reason string) (*tariff.Config, error) {
	key := tariff.HolidayKey(date)
	return c.editTariff(ctx, actor, audit.ActionHolidayAdd, reason, map[string]any{"date": key}, func(cfg *tariff.Config) error {
		cfg.AddHoliday(date)
		return nil
	})
}

func (c *adminCommandsImpl) RemoveHoliday(ctx context.Context, actor user.Identity, date time.Time, reason string) (*tariff.Config, error) {
	key := tariff.HolidayKey(date)
	return c.editTariff(ctx, actor, audit.ActionHolidayRemove, reason, map[string]any{"date": key}, func(cfg *tariff.Config) error {
		cfg.RemoveHoliday(date)
		return nil
	})
}

func (c *adminCommandsImpl) SetWeekendPolicy(ctx context.Context, actor user.Identity, in WeekendPolicyInput) (*tariff.Config, error) {
	days := make([]string, len(in.Days))
	for i, d := range in.Days {
		days[i] = d.String()
	}
	detail := map[string]any{
		"days":                   days,
		"include_friday_evening": in.IncludeFridayEvening,
		"friday_evening_hour":    in.FridayEveningHour,
	}
	return c.editTariff(ctx, actor, audit.ActionWeekendPolicy, "", detail, func(cfg *tariff.Config) error {
		return cfg.SetWeekendPolicy(in.Days, in.IncludeFridayEvening, in.FridayEveningHour)
	})
}

func (c *adminCommandsImpl) SetRate(ctx context.Context, actor user.Identity, in RateInput) (*tariff.Config, error) {
	detail := map[string]any{
		"resource_type":   string(in.ResourceType),
		"day_kind":        string(in.DayKind),
		"segment":         string(in.Segment),
		"points_per_hour": in.PointsPerHour,
	}
	return c.editTariff(ctx, actor, audit.ActionRateUpdate, "", detail, func(cfg *tariff.Config) error {
		return cfg.SetRate(in.ResourceType, in.DayKind, in.Segment, in.PointsPerHour)
	})
}

func (c *adminCommandsImpl) CreateRedeemCode(ctx context.Context, actor user.Identity, in redeem.NewParams) (*redeem.Code, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	now := c.clock.Now()
	code, err := redeem.NewCode(in, now)
	if err != nil {
		return nil, invalid(err)
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.RedeemCodes().Create(ctx, code); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Wrapf(errs.ErrRedeemCodeExists, "code %s", code.Code())
			}
			return dbErr(err)
		}
		return appendAudit(ctx, tx, actor, audit.ActionRedeemCodeCreate, code.Code(), "", map[string]any{
			"kind":  string(code.Discount().Kind()),
			"value": code.Discount().Value(),
			"scope": string(code.Scope()),
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return code, nil
}

func (c *adminCommandsImpl) DeactivateRedeemCode(ctx context.Context, actor user.Identity, code string) (*redeem.Code, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	normalized, err := redeem.NormalizeCode(code)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrRedeemCodeInvalid)
	}
	var out *redeem.Code
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockRedeemCode(ctx, normalized); err != nil {
			return dbErr(err)
		}
		rc, err := tx.RedeemCodes().FindByCode(ctx, normalized)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrRedeemCodeNotFound, "code %s", normalized)
			}
			return dbErr(err)
		}
		now := c.clock.Now()
		rc.Deactivate(now)
		if err := tx.RedeemCodes().Update(ctx, rc); err != nil {
			return dbErr(err)
		}
		out = rc
		return appendAudit(ctx, tx, actor, audit.ActionRedeemCodeDisabled, normalized, "", nil, now)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
