package postgresql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type statutoryRepositoryImpl struct {
	db *database.DB
}

func NewStatutoryRepository(db *database.DB) payroll.StatutoryRepository {
	return &statutoryRepositoryImpl{db: db}
}

func (r *statutoryRepositoryImpl) GetConfig(ctx context.Context) (payroll.StatutoryConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, pf_enabled, pf_wage_ceiling, pf_employee_percent,
		       esi_enabled, esi_wage_ceiling, esi_employee_percent,
		       pt_slabs, created_at, updated_at
		FROM statutory_config
		ORDER BY created_at
		LIMIT 1
	`

	var cfg payroll.StatutoryConfig
	var slabsRaw []byte
	err := q.QueryRow(ctx, query).Scan(
		&cfg.ID,
		&cfg.PFEnabled,
		&cfg.PFWageCeiling,
		&cfg.PFEmployeePercent,
		&cfg.ESIEnabled,
		&cfg.ESIWageCeiling,
		&cfg.ESIEmployeePercent,
		&slabsRaw,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.StatutoryConfig{}, payroll.ErrStatutoryNotFound
		}
		return payroll.StatutoryConfig{}, err
	}
	if err := json.Unmarshal(slabsRaw, &cfg.PTSlabs); err != nil {
		return payroll.StatutoryConfig{}, err
	}

	return cfg, nil
}

func (r *statutoryRepositoryImpl) UpsertConfig(ctx context.Context, cfg payroll.StatutoryConfig) (payroll.StatutoryConfig, error) {
	q := GetQuerier(ctx, r.db)

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	slabsRaw, err := json.Marshal(cfg.PTSlabs)
	if err != nil {
		return payroll.StatutoryConfig{}, err
	}

	query := `
		INSERT INTO statutory_config (
			id, pf_enabled, pf_wage_ceiling, pf_employee_percent,
			esi_enabled, esi_wage_ceiling, esi_employee_percent, pt_slabs
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			pf_enabled = EXCLUDED.pf_enabled,
			pf_wage_ceiling = EXCLUDED.pf_wage_ceiling,
			pf_employee_percent = EXCLUDED.pf_employee_percent,
			esi_enabled = EXCLUDED.esi_enabled,
			esi_wage_ceiling = EXCLUDED.esi_wage_ceiling,
			esi_employee_percent = EXCLUDED.esi_employee_percent,
			pt_slabs = EXCLUDED.pt_slabs,
			updated_at = NOW()
		RETURNING id, pf_enabled, pf_wage_ceiling, pf_employee_percent,
		          esi_enabled, esi_wage_ceiling, esi_employee_percent,
		          pt_slabs, created_at, updated_at
	`

	var saved payroll.StatutoryConfig
	var savedSlabs []byte
	err = q.QueryRow(ctx, query,
		id,
		cfg.PFEnabled,
		cfg.PFWageCeiling,
		cfg.PFEmployeePercent,
		cfg.ESIEnabled,
		cfg.ESIWageCeiling,
		cfg.ESIEmployeePercent,
		slabsRaw,
	).Scan(
		&saved.ID,
		&saved.PFEnabled,
		&saved.PFWageCeiling,
		&saved.PFEmployeePercent,
		&saved.ESIEnabled,
		&saved.ESIWageCeiling,
		&saved.ESIEmployeePercent,
		&savedSlabs,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return payroll.StatutoryConfig{}, err
	}
	if err := json.Unmarshal(savedSlabs, &saved.PTSlabs); err != nil {
		return payroll.StatutoryConfig{}, err
	}

	return saved, nil
}
