package queries

import (
	"context"

	"court-booking-engine/internal/domain/redeem"
	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/domain/user"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"
)

type CatalogQueries interface {
	Resources(ctx context.Context) ([]*resource.Resource, error)
	Tariff(ctx context.Context) (*tariff.Config, error)
	RedeemCodes(ctx context.Context, actor user.Identity) ([]*redeem.Code, error)
}

type catalogQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewCatalogQueries(uow shared.UnitOfWork) CatalogQueries {
	return &catalogQueriesImpl{uow: uow}
}

func (q *catalogQueriesImpl) Resources(ctx context.Context) ([]*resource.Resource, error) {
	var out []*resource.Resource
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, err := tx.Resources().List(ctx)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		out = items
		return nil
	})
	return out, err
}

func (q *catalogQueriesImpl) Tariff(ctx context.Context) (*tariff.Config, error) {
	var out *tariff.Config
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		cfg, err := shared.LoadTariff(ctx, tx)
		if err != nil {
			return err
		}
		out = &cfg
		return nil
	})
	return out, err
}

func (q *catalogQueriesImpl) RedeemCodes(ctx context.Context, actor user.Identity) ([]*redeem.Code, error) {
	if !actor.Role.IsStaff() {
		return nil, errs.Wrap(errs.ErrForbidden, "staff role required")
	}
	var out []*redeem.Code
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, err := tx.RedeemCodes().List(ctx)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		out = items
		return nil
	})
	return out, err
}
