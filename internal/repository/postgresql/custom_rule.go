package postgresql

import (
	"context"
	"errors"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type customRuleRepositoryImpl struct {
	db *database.DB
}

func NewCustomRuleRepository(db *database.DB) payroll.CustomRuleRepository {
	return &customRuleRepositoryImpl{db: db}
}

const customRuleColumns = `
	id, name, description, condition_type, operator, threshold,
	action_type, value, apply_per_occurrence, is_active, is_default,
	created_at, updated_at
`

func (r *customRuleRepositoryImpl) Create(ctx context.Context, rule payroll.CustomRule) (payroll.CustomRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO custom_rules (
			id, name, description, condition_type, operator, threshold,
			action_type, value, apply_per_occurrence, is_active, is_default
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + customRuleColumns

	var saved payroll.CustomRule
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		rule.Name,
		rule.Description,
		rule.ConditionType,
		rule.Operator,
		rule.Threshold,
		rule.ActionType,
		rule.Value,
		rule.ApplyPerOccurrence,
		rule.IsActive,
		rule.IsDefault,
	).Scan(scanCustomRuleFields(&saved)...)
	if err != nil {
		return payroll.CustomRule{}, err
	}

	return saved, nil
}

func (r *customRuleRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.CustomRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + customRuleColumns + ` FROM custom_rules WHERE id = $1`

	var rule payroll.CustomRule
	err := q.QueryRow(ctx, query, id).Scan(scanCustomRuleFields(&rule)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.CustomRule{}, payroll.ErrCustomRuleNotFound
		}
		return payroll.CustomRule{}, err
	}

	return rule, nil
}

func (r *customRuleRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]payroll.CustomRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + customRuleColumns + ` FROM custom_rules`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []payroll.CustomRule
	for rows.Next() {
		var rule payroll.CustomRule
		if err := rows.Scan(scanCustomRuleFields(&rule)...); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *customRuleRepositoryImpl) Update(ctx context.Context, rule payroll.CustomRule) (payroll.CustomRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE custom_rules
		SET name = $1, description = $2, condition_type = $3, operator = $4,
		    threshold = $5, action_type = $6, value = $7,
		    apply_per_occurrence = $8, is_active = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING ` + customRuleColumns

	var saved payroll.CustomRule
	err := q.QueryRow(ctx, query,
		rule.Name,
		rule.Description,
		rule.ConditionType,
		rule.Operator,
		rule.Threshold,
		rule.ActionType,
		rule.Value,
		rule.ApplyPerOccurrence,
		rule.IsActive,
		rule.ID,
	).Scan(scanCustomRuleFields(&saved)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.CustomRule{}, payroll.ErrCustomRuleNotFound
		}
		return payroll.CustomRule{}, err
	}

	return saved, nil
}

func (r *customRuleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM custom_rules WHERE id = $1 AND is_default = FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrCustomRuleNotFound
	}
	return nil
}

func scanCustomRuleFields(rule *payroll.CustomRule) []interface{} {
	return []interface{}{
		&rule.ID,
		&rule.Name,
		&rule.Description,
		&rule.ConditionType,
		&rule.Operator,
		&rule.Threshold,
		&rule.ActionType,
		&rule.Value,
		&rule.ApplyPerOccurrence,
		&rule.IsActive,
		&rule.IsDefault,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	}
}
