package repository

import (
	"context"
	"time"

	"court-booking-engine/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resourceColumns = `id, name, type, capacity, active, created_at, updated_at`

type ResourceRepository struct {
	db DBTX
}

func NewResourceRepository(db DBTX) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resources (`+resourceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID(), res.Name(), string(res.Type()), res.Capacity(), res.IsActive(), res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return classify("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE resources
		SET name = $2, type = $3, capacity = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		res.ID(), res.Name(), string(res.Type()), res.Capacity(), res.IsActive(), res.UpdatedAt(),
	)
	if err != nil {
		return classify("failed to update resource", err)
	}
	return expectOne(tag, "resource not found")
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id)
	res, err := scanResource(row)
	if err != nil {
		return nil, classify("failed to find resource by ID", err)
	}
	return res, nil
}

func (r *ResourceRepository) List(ctx context.Context) ([]*resource.Resource, error) {
	rows, err := r.db.Query(ctx, `SELECT `+resourceColumns+` FROM resources ORDER BY name, id`)
	if err != nil {
		return nil, classify("failed to list resources", err)
	}
	out, err := collect(rows, func(rows pgx.Rows) (*resource.Resource, error) { return scanResource(rows) })
	if err != nil {
		return nil, classify("failed to scan resources", err)
	}
	return out, nil
}

func scanResource(row pgx.Row) (*resource.Resource, error) {
	var (
		id                   uuid.UUID
		name, resourceType   string
		capacity             int
		active               bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &resourceType, &capacity, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return resource.ReconstructResource(id, name, resource.Type(resourceType), capacity, active, createdAt, updatedAt), nil
}
