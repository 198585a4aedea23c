package discount

import (
	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/errs"
)

// Policy maps a membership tier to a percent off.
type Policy struct {
	TierPercent map[user.Tier]int64
}

func NewPolicy(byTier map[string]int) (Policy, error) {
	p := Policy{TierPercent: make(map[user.Tier]int64, len(byTier))}
	for name, pct := range byTier {
		tier, err := user.NewTier(name)
		if err != nil {
			return Policy{}, err
		}
		if pct < 0 || pct > 100 {
			return Policy{}, errs.Wrapf(errs.ErrDomainValidation, "membership discount for %s must be 0-100", name)
		}
		p.TierPercent[tier] = int64(pct)
	}
	return p, nil
}

func (p Policy) PercentFor(t user.Tier) int64 {
	return p.TierPercent[t]
}

type Input struct {
	Base int64
	Tier user.Tier
	// Code is optional. Target carries everything but the amount, which the composer fills in.
	Code   *redeem.Code
	Target redeem.Target
	// Override replaces the computed final price. Admin only.
	Override *int64
}

type Result struct {
	Base               int64
	MembershipPercent  int64
	MembershipDiscount int64
	CodeDiscount       int64
	Code               string
	Final              int64
	Overridden         bool
}

type Composer struct {
	policy Policy
}

func NewComposer(policy Policy) *Composer {
	return &Composer{policy: policy}
}

// Apply takes the membership discount first and rounds it, then applies the redeem code
// to what remains. The result never drops below zero.
func (c *Composer) Apply(in Input) (Result, error) {
	if in.Base < 0 {
		return Result{}, errs.Wrap(errs.ErrDomainValidation, "base price cannot be negative")
	}

	res := Result{Base: in.Base}
	res.MembershipPercent = c.policy.PercentFor(in.Tier)
	res.MembershipDiscount = redeem.RoundPercent(in.Base, res.MembershipPercent)
	amount := max(in.Base-res.MembershipDiscount, 0)

	if in.Code != nil {
		target := in.Target
		target.Amount = amount
		if err := in.Code.Validate(target); err != nil {
			return Result{}, err
		}
		res.Code = in.Code.Code()
		res.CodeDiscount = in.Code.DiscountFor(amount)
		amount -= res.CodeDiscount
	}
	res.Final = max(amount, 0)

	if in.Override != nil {
		if *in.Override < 0 {
			return Result{}, errs.Wrap(errs.ErrDomainValidation, "custom price cannot be negative")
		}
		res.Final = *in.Override
		res.Overridden = true
	}
	return res, nil
}
