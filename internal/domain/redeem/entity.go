package redeem

import (
	"slices"
	"time"

	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Code struct {
	code            string
	discount        Discount
	minAmount       int64
	maxDiscount     *int64
	validFrom       *time.Time
	validTo         *time.Time
	usageLimit      *int
	perUserLimit    *int
	scope           Scope
	applicableTypes []resource.Type
	active          bool
	usedCount       int
	createdAt       time.Time
	updatedAt       time.Time
}

type NewParams struct {
	Code            string
	Kind            DiscountKind
	Value           int64
	MinAmount       int64
	MaxDiscount     *int64
	ValidFrom       *time.Time
	ValidTo         *time.Time
	UsageLimit      *int
	PerUserLimit    *int
	Scope           Scope
	ApplicableTypes []resource.Type
}

func NewCode(p NewParams, now time.Time) (*Code, error) {
	code, err := NormalizeCode(p.Code)
	if err != nil {
		return nil, err
	}
	discount, err := NewDiscount(p.Kind, p.Value)
	if err != nil {
		return nil, err
	}
	if p.Scope == "" {
		p.Scope = ScopeAny
	}
	if _, err = NewScope(string(p.Scope)); err != nil {
		return nil, err
	}
	if p.MinAmount < 0 || (p.MaxDiscount != nil && *p.MaxDiscount <= 0) {
		return nil, errs.Wrap(errs.ErrDomainValidation, "min amount and max discount must be positive")
	}
	if p.ValidFrom != nil && p.ValidTo != nil && !p.ValidFrom.Before(*p.ValidTo) {
		return nil, errs.Wrap(errs.ErrDomainValidation, "validity window is empty")
	}
	if (p.UsageLimit != nil && *p.UsageLimit < 1) || (p.PerUserLimit != nil && *p.PerUserLimit < 1) {
		return nil, errs.Wrap(errs.ErrDomainValidation, "usage limits must be at least 1")
	}
	for _, t := range p.ApplicableTypes {
		if !t.IsValid() {
			return nil, resource.ErrInvalidType
		}
	}

	return &Code{
		code:            code,
		discount:        discount,
		minAmount:       p.MinAmount,
		maxDiscount:     p.MaxDiscount,
		validFrom:       p.ValidFrom,
		validTo:         p.ValidTo,
		usageLimit:      p.UsageLimit,
		perUserLimit:    p.PerUserLimit,
		scope:           p.Scope,
		applicableTypes: slices.Clone(p.ApplicableTypes),
		active:          true,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructCode(
	code string,
	discount Discount,
	minAmount int64,
	maxDiscount *int64,
	validFrom, validTo *time.Time,
	usageLimit, perUserLimit *int,
	scope Scope,
	applicableTypes []resource.Type,
	active bool,
	usedCount int,
	createdAt, updatedAt time.Time,
) *Code {
	return &Code{
		code:            code,
		discount:        discount,
		minAmount:       minAmount,
		maxDiscount:     maxDiscount,
		validFrom:       validFrom,
		validTo:         validTo,
		usageLimit:      usageLimit,
		perUserLimit:    perUserLimit,
		scope:           scope,
		applicableTypes: applicableTypes,
		active:          active,
		usedCount:       usedCount,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Usage counts the uses a single user already holds on a code.
type Usage struct {
	ByUser int
}

type Target struct {
	Now           time.Time
	Amount        int64
	Scope         Scope
	ResourceTypes []resource.Type
	Usage         Usage
}

func (c *Code) IsValidAt(t time.Time) bool {
	if c.validFrom != nil && t.Before(*c.validFrom) {
		return false
	}
	if c.validTo != nil && t.After(*c.validTo) {
		return false
	}
	return true
}

// Validate checks whether the code may be applied to target. Both the scope and the
// applicable resource types must admit the target.
func (c *Code) Validate(target Target) error {
	if !c.active {
		return errs.Wrap(errs.ErrRedeemCodeInvalid, "code is inactive")
	}
	if !c.IsValidAt(target.Now) {
		if c.validFrom != nil && target.Now.Before(*c.validFrom) {
			return errs.Wrap(errs.ErrRedeemCodeInvalid, "code is not yet valid")
		}
		return errs.Wrap(errs.ErrRedeemCodeInvalid, "code has expired")
	}
	if !c.scope.Covers(target.Scope) {
		return errs.Wrapf(errs.ErrRedeemCodeScopeMismatch, "code applies to %s only", c.scope)
	}
	if len(c.applicableTypes) > 0 {
		for _, t := range target.ResourceTypes {
			if !slices.Contains(c.applicableTypes, t) {
				return errs.Wrapf(errs.ErrRedeemCodeScopeMismatch, "code does not apply to %s resources", t)
			}
		}
	}
	if c.usageLimit != nil && c.usedCount >= *c.usageLimit {
		return errs.ErrRedeemCodeExhausted
	}
	if c.perUserLimit != nil && target.Usage.ByUser >= *c.perUserLimit {
		return errs.Wrap(errs.ErrRedeemCodeExhausted, "per-user limit reached")
	}
	if target.Amount < c.minAmount {
		return errs.Wrapf(errs.ErrRedeemCodeInvalid, "amount below minimum of %d", c.minAmount)
	}
	return nil
}

// DiscountFor returns the points taken off amount, capped by maxDiscount and by amount itself.
func (c *Code) DiscountFor(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	d := c.discount.Amount(amount)
	if c.maxDiscount != nil && d > *c.maxDiscount {
		d = *c.maxDiscount
	}
	if d > amount {
		d = amount
	}
	return d
}

func (c *Code) Deactivate(now time.Time) {
	if !c.active {
		return
	}
	c.active = false
	c.updatedAt = now
}

func (c *Code) RecordUse(now time.Time) {
	c.usedCount++
	c.updatedAt = now
}

func (c *Code) ReleaseUse(now time.Time) {
	if c.usedCount > 0 {
		c.usedCount--
		c.updatedAt = now
	}
}

func (c *Code) Code() string                     { return c.code }
func (c *Code) Discount() Discount               { return c.discount }
func (c *Code) MinAmount() int64                 { return c.minAmount }
func (c *Code) MaxDiscount() *int64              { return c.maxDiscount }
func (c *Code) ValidFrom() *time.Time            { return c.validFrom }
func (c *Code) ValidTo() *time.Time              { return c.validTo }
func (c *Code) UsageLimit() *int                 { return c.usageLimit }
func (c *Code) PerUserLimit() *int               { return c.perUserLimit }
func (c *Code) Scope() Scope                     { return c.scope }
func (c *Code) ApplicableTypes() []resource.Type { return c.applicableTypes }
func (c *Code) IsActive() bool                   { return c.active }
func (c *Code) UsedCount() int                   { return c.usedCount }
func (c *Code) CreatedAt() time.Time             { return c.createdAt }
func (c *Code) UpdatedAt() time.Time             { return c.updatedAt }

// Use is one consumption of a code, tied to the booking or recharge that consumed it.
type Use struct {
	ID        uuid.UUID
	Code      string
	UserID    uuid.UUID
	Reference uuid.UUID
	Released  bool
	CreatedAt time.Time
}

func NewUse(code string, userID, reference uuid.UUID, now time.Time) Use {
	return Use{ID: uuid.New(), Code: code, UserID: userID, Reference: reference, CreatedAt: now}
}
