package repository

import (
	"context"
	"encoding/json"

	"court-booking-engine/internal/domain/tariff"
	"court-booking-engine/internal/infra"
	"court-booking-engine/internal/pkg/pgconv"
)

// TariffRepository keeps the whole tariff calendar as one JSON document.
type TariffRepository struct {
	db DBTX
}

func NewTariffRepository(db DBTX) *TariffRepository {
	return &TariffRepository{db: db}
}

func (r *TariffRepository) Load(ctx context.Context) (*tariff.Config, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT config FROM tariff_config WHERE id = 1`).Scan(&raw)
	if err != nil {
		if pgconv.IsNoRows(err) {
			cfg := tariff.DefaultConfig()
			return &cfg, nil
		}
		return nil, classify("failed to load tariff config", err)
	}
	var cfg tariff.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, infra.WrapRepoErr("stored tariff config is not valid JSON", err)
	}
	if cfg.Holidays == nil {
		cfg.Holidays = map[string]bool{}
	}
	return &cfg, nil
}

func (r *TariffRepository) Save(ctx context.Context, cfg *tariff.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return infra.WrapRepoErr("failed to encode tariff config", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO tariff_config (id, config, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET config = EXCLUDED.config, updated_at = EXCLUDED.updated_at`,
		raw,
	)
	if err != nil {
		return classify("failed to save tariff config", err)
	}
	return nil
}
