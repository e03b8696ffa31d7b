package postgresql

import (
	"context"
	"errors"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) payroll.AdvanceRepository {
	return &advanceRepositoryImpl{db: db}
}

const advanceColumns = `
	id, employee_id, total_amount, monthly_amount, remaining_amount,
	start_month, start_year, is_active, created_at, updated_at
`

func (r *advanceRepositoryImpl) CreateAdvance(ctx context.Context, adv payroll.SewaAdvance) (payroll.SewaAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sewa_advances (
			id, employee_id, total_amount, monthly_amount, remaining_amount,
			start_month, start_year, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + advanceColumns

	var saved payroll.SewaAdvance
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		adv.EmployeeID,
		adv.TotalAmount,
		adv.MonthlyAmount,
		adv.RemainingAmount,
		adv.StartMonth,
		adv.StartYear,
		adv.IsActive,
	).Scan(scanAdvanceFields(&saved)...)
	if err != nil {
		return payroll.SewaAdvance{}, err
	}

	return saved, nil
}

func (r *advanceRepositoryImpl) GetAdvanceByID(ctx context.Context, id string) (payroll.SewaAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + ` FROM sewa_advances WHERE id = $1`

	var adv payroll.SewaAdvance
	err := q.QueryRow(ctx, query, id).Scan(scanAdvanceFields(&adv)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SewaAdvance{}, payroll.ErrAdvanceNotFound
		}
		return payroll.SewaAdvance{}, err
	}

	return adv, nil
}

func (r *advanceRepositoryImpl) ListAdvances(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.SewaAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + ` FROM sewa_advances WHERE employee_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAdvances(rows)
}

func (r *advanceRepositoryImpl) ListActiveAdvancesForEmployees(ctx context.Context, employeeIDs []string) (map[string][]payroll.SewaAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `
		FROM sewa_advances
		WHERE employee_id = ANY($1) AND is_active = TRUE
		ORDER BY employee_id, created_at
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	advances, err := collectAdvances(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]payroll.SewaAdvance)
	for _, adv := range advances {
		result[adv.EmployeeID] = append(result[adv.EmployeeID], adv)
	}
	return result, nil
}

func (r *advanceRepositoryImpl) UpdateAdvance(ctx context.Context, adv payroll.SewaAdvance) (payroll.SewaAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sewa_advances
		SET monthly_amount = $1, remaining_amount = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + advanceColumns

	var saved payroll.SewaAdvance
	err := q.QueryRow(ctx, query,
		adv.MonthlyAmount,
		adv.RemainingAmount,
		adv.IsActive,
		adv.ID,
	).Scan(scanAdvanceFields(&saved)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SewaAdvance{}, payroll.ErrAdvanceNotFound
		}
		return payroll.SewaAdvance{}, err
	}

	return saved, nil
}

// ApplyToRun deducts one installment inside the caller's transaction. The
// unique (advance_id, run_id) pair makes a repeat call return the existing
// application instead of deducting twice.
func (r *advanceRepositoryImpl) ApplyToRun(ctx context.Context, advanceID, runID, employeeID string) (payroll.AdvanceApplication, error) {
	q := GetQuerier(ctx, r.db)

	existing, err := r.GetApplication(ctx, advanceID, runID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, payroll.ErrApplicationNotFound) {
		return payroll.AdvanceApplication{}, err
	}

	lockQuery := `
		SELECT monthly_amount, remaining_amount
		FROM sewa_advances
		WHERE id = $1
		FOR UPDATE
	`
	var adv payroll.SewaAdvance
	err = q.QueryRow(ctx, lockQuery, advanceID).Scan(&adv.MonthlyAmount, &adv.RemainingAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.AdvanceApplication{}, payroll.ErrAdvanceNotFound
		}
		return payroll.AdvanceApplication{}, err
	}
	if !adv.RemainingAmount.IsPositive() {
		return payroll.AdvanceApplication{}, payroll.ErrAdvanceExhausted
	}

	amount := adv.MonthlyAmount
	if adv.RemainingAmount.LessThan(amount) {
		amount = adv.RemainingAmount
	}

	insertQuery := `
		INSERT INTO advance_applications (id, advance_id, run_id, employee_id, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, advance_id, run_id, employee_id, amount, created_at
	`
	var app payroll.AdvanceApplication
	err = q.QueryRow(ctx, insertQuery, uuid.NewString(), advanceID, runID, employeeID, amount).Scan(
		&app.ID, &app.AdvanceID, &app.RunID, &app.EmployeeID, &app.Amount, &app.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return r.GetApplication(ctx, advanceID, runID)
		}
		return payroll.AdvanceApplication{}, err
	}

	// Exhausted advances deactivate so future periods skip them.
	updateQuery := `
		UPDATE sewa_advances
		SET remaining_amount = remaining_amount - $1,
		    is_active = (remaining_amount - $1 > 0),
		    updated_at = NOW()
		WHERE id = $2
	`
	if _, err := q.Exec(ctx, updateQuery, amount, advanceID); err != nil {
		return payroll.AdvanceApplication{}, err
	}

	return app, nil
}

func (r *advanceRepositoryImpl) GetApplication(ctx context.Context, advanceID, runID string) (payroll.AdvanceApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, advance_id, run_id, employee_id, amount, created_at
		FROM advance_applications
		WHERE advance_id = $1 AND run_id = $2
	`

	var app payroll.AdvanceApplication
	err := q.QueryRow(ctx, query, advanceID, runID).Scan(
		&app.ID, &app.AdvanceID, &app.RunID, &app.EmployeeID, &app.Amount, &app.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.AdvanceApplication{}, payroll.ErrApplicationNotFound
		}
		return payroll.AdvanceApplication{}, err
	}

	return app, nil
}

func (r *advanceRepositoryImpl) ReverseApplications(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, r.db)

	// Restore balances first, reactivating advances that exhaustion had
	// switched off, then drop the applications.
	restoreQuery := `
		UPDATE sewa_advances a
		SET remaining_amount = a.remaining_amount + app.amount,
		    is_active = CASE WHEN a.remaining_amount = 0 THEN TRUE ELSE a.is_active END,
		    updated_at = NOW()
		FROM advance_applications app
		WHERE app.advance_id = a.id AND app.run_id = $1
	`
	if _, err := q.Exec(ctx, restoreQuery, runID); err != nil {
		return err
	}

	_, err := q.Exec(ctx, `DELETE FROM advance_applications WHERE run_id = $1`, runID)
	return err
}

func (r *advanceRepositoryImpl) ReverseApplicationForEmployee(ctx context.Context, runID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	restoreQuery := `
		UPDATE sewa_advances a
		SET remaining_amount = a.remaining_amount + app.amount,
		    is_active = CASE WHEN a.remaining_amount = 0 THEN TRUE ELSE a.is_active END,
		    updated_at = NOW()
		FROM advance_applications app
		WHERE app.advance_id = a.id AND app.run_id = $1 AND app.employee_id = $2
	`
	if _, err := q.Exec(ctx, restoreQuery, runID, employeeID); err != nil {
		return err
	}

	_, err := q.Exec(ctx, `DELETE FROM advance_applications WHERE run_id = $1 AND employee_id = $2`, runID, employeeID)
	return err
}

// ========== ONE-TIME DEDUCTIONS ==========

func (r *advanceRepositoryImpl) CreateOneTime(ctx context.Context, d payroll.OneTimeDeduction) (payroll.OneTimeDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO one_time_deductions (id, employee_id, month, year, amount, category, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, month, year, amount, category, reason, created_at
	`

	var saved payroll.OneTimeDeduction
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		d.EmployeeID,
		d.Month,
		d.Year,
		d.Amount,
		d.Category,
		d.Reason,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Month, &saved.Year,
		&saved.Amount, &saved.Category, &saved.Reason, &saved.CreatedAt,
	)
	if err != nil {
		return payroll.OneTimeDeduction{}, err
	}

	return saved, nil
}

func (r *advanceRepositoryImpl) GetOneTimeByID(ctx context.Context, id string) (payroll.OneTimeDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, amount, category, reason, created_at
		FROM one_time_deductions
		WHERE id = $1
	`

	var d payroll.OneTimeDeduction
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.EmployeeID, &d.Month, &d.Year,
		&d.Amount, &d.Category, &d.Reason, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.OneTimeDeduction{}, payroll.ErrDeductionNotFound
		}
		return payroll.OneTimeDeduction{}, err
	}

	return d, nil
}

func (r *advanceRepositoryImpl) ListOneTime(ctx context.Context, month, year int) ([]payroll.OneTimeDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, amount, category, reason, created_at
		FROM one_time_deductions
		WHERE month = $1 AND year = $2
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []payroll.OneTimeDeduction
	for rows.Next() {
		var d payroll.OneTimeDeduction
		err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.Month, &d.Year,
			&d.Amount, &d.Category, &d.Reason, &d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		deductions = append(deductions, d)
	}

	return deductions, rows.Err()
}

func (r *advanceRepositoryImpl) DeleteOneTime(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM one_time_deductions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDeductionNotFound
	}
	return nil
}

func scanAdvanceFields(adv *payroll.SewaAdvance) []interface{} {
	return []interface{}{
		&adv.ID,
		&adv.EmployeeID,
		&adv.TotalAmount,
		&adv.MonthlyAmount,
		&adv.RemainingAmount,
		&adv.StartMonth,
		&adv.StartYear,
		&adv.IsActive,
		&adv.CreatedAt,
		&adv.UpdatedAt,
	}
}

func collectAdvances(rows pgx.Rows) ([]payroll.SewaAdvance, error) {
	var advances []payroll.SewaAdvance
	for rows.Next() {
		var adv payroll.SewaAdvance
		if err := rows.Scan(scanAdvanceFields(&adv)...); err != nil {
			return nil, err
		}
		advances = append(advances, adv)
	}
	return advances, rows.Err()
}
