package repository

import (
	"context"

	"court-booking-engine/internal/domain/audit"
)

type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, rec audit.Record) error {
	detail := rec.Detail
	if detail == nil {
		detail = map[string]any{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_log (id, actor_id, action, target_id, reason, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.ActorID, string(rec.Action), rec.TargetID, rec.Reason, detail, rec.CreatedAt,
	)
	if err != nil {
		return classify("failed to append audit record", err)
	}
	return nil
}
