package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// ========== TYPE RULES ==========

const leaveTypeRuleColumns = `
	id, code, name, is_paid, deduction_percent, annual_quota,
	carry_forward, max_accumulation, is_active, created_at, updated_at
`

func (r *leaveRepositoryImpl) CreateTypeRule(ctx context.Context, rule leave.TypeRule) (leave.TypeRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_type_rules (
			id, code, name, is_paid, deduction_percent, annual_quota,
			carry_forward, max_accumulation, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leaveTypeRuleColumns

	var saved leave.TypeRule
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		rule.Code,
		rule.Name,
		rule.IsPaid,
		rule.DeductionPercent,
		rule.AnnualQuota,
		rule.CarryForward,
		rule.MaxAccumulation,
		rule.IsActive,
	).Scan(scanTypeRuleFields(&saved)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leave.TypeRule{}, leave.ErrTypeRuleCodeExists
		}
		return leave.TypeRule{}, err
	}

	return saved, nil
}

func (r *leaveRepositoryImpl) GetTypeRuleByCode(ctx context.Context, code string) (leave.TypeRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeRuleColumns + ` FROM leave_type_rules WHERE code = $1`

	var rule leave.TypeRule
	err := q.QueryRow(ctx, query, code).Scan(scanTypeRuleFields(&rule)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.TypeRule{}, leave.ErrTypeRuleNotFound
		}
		return leave.TypeRule{}, err
	}

	return rule, nil
}

func (r *leaveRepositoryImpl) ListTypeRules(ctx context.Context, activeOnly bool) ([]leave.TypeRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeRuleColumns + ` FROM leave_type_rules`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []leave.TypeRule
	for rows.Next() {
		var rule leave.TypeRule
		if err := rows.Scan(scanTypeRuleFields(&rule)...); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *leaveRepositoryImpl) UpdateTypeRule(ctx context.Context, rule leave.TypeRule) (leave.TypeRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_type_rules
		SET name = $1, is_paid = $2, deduction_percent = $3, annual_quota = $4,
		    carry_forward = $5, max_accumulation = $6, is_active = $7, updated_at = NOW()
		WHERE code = $8
		RETURNING ` + leaveTypeRuleColumns

	var saved leave.TypeRule
	err := q.QueryRow(ctx, query,
		rule.Name,
		rule.IsPaid,
		rule.DeductionPercent,
		rule.AnnualQuota,
		rule.CarryForward,
		rule.MaxAccumulation,
		rule.IsActive,
		rule.Code,
	).Scan(scanTypeRuleFields(&saved)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.TypeRule{}, leave.ErrTypeRuleNotFound
		}
		return leave.TypeRule{}, err
	}

	return saved, nil
}

func (r *leaveRepositoryImpl) DeleteTypeRule(ctx context.Context, code string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_type_rules WHERE code = $1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrTypeRuleNotFound
	}
	return nil
}

// ========== POLICY CONFIG ==========

func (r *leaveRepositoryImpl) GetPolicyConfig(ctx context.Context) (leave.PolicyConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, fy_start_month, fy_start_day, sunday_rule, created_at, updated_at
		FROM leave_policy_config
		ORDER BY created_at
		LIMIT 1
	`

	var cfg leave.PolicyConfig
	var sundayRaw []byte
	err := q.QueryRow(ctx, query).Scan(
		&cfg.ID,
		&cfg.FinancialYearStartMonth,
		&cfg.FinancialYearStartDay,
		&sundayRaw,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.PolicyConfig{}, leave.ErrPolicyNotFound
		}
		return leave.PolicyConfig{}, err
	}
	if err := json.Unmarshal(sundayRaw, &cfg.Sunday); err != nil {
		return leave.PolicyConfig{}, err
	}

	return cfg, nil
}

func (r *leaveRepositoryImpl) UpsertPolicyConfig(ctx context.Context, cfg leave.PolicyConfig) (leave.PolicyConfig, error) {
	q := GetQuerier(ctx, r.db)

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	sundayRaw, err := json.Marshal(cfg.Sunday)
	if err != nil {
		return leave.PolicyConfig{}, err
	}

	query := `
		INSERT INTO leave_policy_config (id, fy_start_month, fy_start_day, sunday_rule)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			fy_start_month = EXCLUDED.fy_start_month,
			fy_start_day = EXCLUDED.fy_start_day,
			sunday_rule = EXCLUDED.sunday_rule,
			updated_at = NOW()
		RETURNING id, fy_start_month, fy_start_day, sunday_rule, created_at, updated_at
	`

	var saved leave.PolicyConfig
	var savedSunday []byte
	err = q.QueryRow(ctx, query, id, cfg.FinancialYearStartMonth, cfg.FinancialYearStartDay, sundayRaw).Scan(
		&saved.ID,
		&saved.FinancialYearStartMonth,
		&saved.FinancialYearStartDay,
		&savedSunday,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return leave.PolicyConfig{}, err
	}
	if err := json.Unmarshal(savedSunday, &saved.Sunday); err != nil {
		return leave.PolicyConfig{}, err
	}

	return saved, nil
}

// ========== RECORDS ==========

func (r *leaveRepositoryImpl) CreateRecord(ctx context.Context, rec leave.Record) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_records (id, employee_id, leave_code, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, leave_code, start_date, end_date, created_at
	`

	var saved leave.Record
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		rec.EmployeeID,
		rec.LeaveCode,
		rec.StartDate,
		rec.EndDate,
	).Scan(&saved.ID, &saved.EmployeeID, &saved.LeaveCode, &saved.StartDate, &saved.EndDate, &saved.CreatedAt)
	if err != nil {
		return leave.Record{}, err
	}

	return saved, nil
}

func (r *leaveRepositoryImpl) ListRecords(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_code, start_date, end_date, created_at
		FROM leave_records
		WHERE employee_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *leaveRepositoryImpl) ListRecordsForPeriod(ctx context.Context, employeeIDs []string, from, to time.Time) (map[string][]leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_code, start_date, end_date, created_at
		FROM leave_records
		WHERE employee_id = ANY($1) AND start_date <= $3 AND end_date >= $2
		ORDER BY employee_id, start_date
	`

	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]leave.Record)
	for _, rec := range records {
		result[rec.EmployeeID] = append(result[rec.EmployeeID], rec)
	}
	return result, nil
}

// ========== BALANCES ==========

func (r *leaveRepositoryImpl) GetBalance(ctx context.Context, employeeID, leaveCode string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_code, year, opening, quota, consumed, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_code = $2 AND year = $3
	`

	var bal leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveCode, year).Scan(
		&bal.ID, &bal.EmployeeID, &bal.LeaveCode, &bal.Year,
		&bal.Opening, &bal.Quota, &bal.Consumed, &bal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}

	return bal, nil
}

func (r *leaveRepositoryImpl) ListBalances(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_code, year, opening, quota, consumed, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_code
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var bal leave.Balance
		err := rows.Scan(
			&bal.ID, &bal.EmployeeID, &bal.LeaveCode, &bal.Year,
			&bal.Opening, &bal.Quota, &bal.Consumed, &bal.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, bal)
	}

	return balances, rows.Err()
}

func (r *leaveRepositoryImpl) UpsertBalance(ctx context.Context, bal leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_code, year, opening, quota, consumed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, leave_code, year) DO UPDATE SET
			opening = EXCLUDED.opening,
			quota = EXCLUDED.quota,
			consumed = EXCLUDED.consumed,
			updated_at = NOW()
		RETURNING id, employee_id, leave_code, year, opening, quota, consumed, updated_at
	`

	var saved leave.Balance
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		bal.EmployeeID,
		bal.LeaveCode,
		bal.Year,
		bal.Opening,
		bal.Quota,
		bal.Consumed,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.LeaveCode, &saved.Year,
		&saved.Opening, &saved.Quota, &saved.Consumed, &saved.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, err
	}

	return saved, nil
}

func (r *leaveRepositoryImpl) AddConsumed(ctx context.Context, employeeID, leaveCode string, year int, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_code, year, opening, quota, consumed)
		VALUES ($1, $2, $3, $4, 0, 0, $5)
		ON CONFLICT (employee_id, leave_code, year) DO UPDATE SET
			consumed = leave_balances.consumed + EXCLUDED.consumed,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, uuid.NewString(), employeeID, leaveCode, year, days)
	return err
}

// ========== HELPERS ==========

func scanTypeRuleFields(rule *leave.TypeRule) []interface{} {
	return []interface{}{
		&rule.ID,
		&rule.Code,
		&rule.Name,
		&rule.IsPaid,
		&rule.DeductionPercent,
		&rule.AnnualQuota,
		&rule.CarryForward,
		&rule.MaxAccumulation,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	}
}

func collectRecords(rows pgx.Rows) ([]leave.Record, error) {
	var records []leave.Record
	for rows.Next() {
		var rec leave.Record
		err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.LeaveCode, &rec.StartDate, &rec.EndDate, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
