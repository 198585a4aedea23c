//go:build unit || e2e

package builder

import (
	"time"

	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/resource"
)

type RedeemCodeBuilder struct {
	Params redeem.NewParams
	Now    time.Time
}

func NewRedeemCodeBuilder() *RedeemCodeBuilder {
	return &RedeemCodeBuilder{
		Params: redeem.NewParams{
			Code:  "SUMMER50",
			Kind:  redeem.DiscountFixed,
			Value: 50,
			Scope: redeem.ScopeAny,
		},
		Now: Date(2030, time.January, 1),
	}
}

func (b *RedeemCodeBuilder) With(mutate func(*RedeemCodeBuilder)) *RedeemCodeBuilder {
	mutate(b)
	return b
}

func (b *RedeemCodeBuilder) Percentage(pct int64) *RedeemCodeBuilder {
	b.Params.Kind = redeem.DiscountPercentage
	b.Params.Value = pct
	return b
}

func (b *RedeemCodeBuilder) UsageLimit(n int) *RedeemCodeBuilder {
	b.Params.UsageLimit = &n
	return b
}

func (b *RedeemCodeBuilder) PerUserLimit(n int) *RedeemCodeBuilder {
	b.Params.PerUserLimit = &n
	return b
}

func (b *RedeemCodeBuilder) MaxDiscount(n int64) *RedeemCodeBuilder {
	b.Params.MaxDiscount = &n
	return b
}

func (b *RedeemCodeBuilder) ForTypes(types ...resource.Type) *RedeemCodeBuilder {
	b.Params.ApplicableTypes = types
	return b
}

func (b *RedeemCodeBuilder) BuildDomain() (*redeem.Code, error) {
	return redeem.NewCode(b.Params, b.Now)
}

func (b *RedeemCodeBuilder) MustBuild() *redeem.Code {
	c, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return c
}
