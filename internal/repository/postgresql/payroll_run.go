package postgresql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type runRepositoryImpl struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) payroll.RunRepository {
	return &runRepositoryImpl{db: db}
}

const runColumns = `
	id, month, year, status, employee_count, skipped_count,
	total_gross, total_net, warnings, rules_snapshot,
	processed_at, locked_at, created_at, updated_at
`

func (r *runRepositoryImpl) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (id, month, year, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + runColumns

	row := q.QueryRow(ctx, query, uuid.NewString(), run.Month, run.Year, run.Status)
	saved, err := scanRun(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayrollRun{}, payroll.ErrRunAlreadyExists
		}
		return payroll.PayrollRun{}, err
	}

	return saved, nil
}

func (r *runRepositoryImpl) GetRunByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1`

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, err
	}

	return run, nil
}

func (r *runRepositoryImpl) GetRunByPeriod(ctx context.Context, month, year int) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE month = $1 AND year = $2`

	run, err := scanRun(q.QueryRow(ctx, query, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, err
	}

	return run, nil
}

func (r *runRepositoryImpl) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateStatus is a compare-and-swap: the transition only happens when the
// run is still in the expected prior status. Losing a race reports a
// conflict instead of silently double-transitioning.
func (r *runRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to payroll.RunStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $1,
		    processed_at = CASE WHEN $1 = 'processed' THEN NOW() ELSE processed_at END,
		    locked_at = CASE WHEN $1 = 'locked' THEN NOW() ELSE locked_at END,
		    updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	tag, err := q.Exec(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetRunByID(ctx, id); err != nil {
			return err
		}
		return payroll.ErrRunStatusConflict
	}
	return nil
}

func (r *runRepositoryImpl) UpdateRunResults(ctx context.Context, run payroll.PayrollRun) error {
	q := GetQuerier(ctx, r.db)

	warningsRaw, err := json.Marshal(run.Warnings)
	if err != nil {
		return err
	}
	var snapshotRaw []byte
	if run.RulesSnapshot != nil {
		snapshotRaw, err = json.Marshal(run.RulesSnapshot)
		if err != nil {
			return err
		}
	}

	query := `
		UPDATE payroll_runs
		SET employee_count = $1, skipped_count = $2, total_gross = $3, total_net = $4,
		    warnings = $5, rules_snapshot = COALESCE($6, rules_snapshot), updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		run.EmployeeCount,
		run.SkippedCount,
		run.TotalGross,
		run.TotalNet,
		warningsRaw,
		snapshotRaw,
		run.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

func (r *runRepositoryImpl) DeleteRun(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payslips WHERE run_id = $1`, id)
	if err != nil {
		return 0, err
	}
	removed := tag.RowsAffected()

	runTag, err := q.Exec(ctx, `DELETE FROM payroll_runs WHERE id = $1 AND status != 'locked'`, id)
	if err != nil {
		return 0, err
	}
	if runTag.RowsAffected() == 0 {
		return 0, payroll.ErrRunNotFound
	}

	return removed, nil
}

// ========== PAYSLIPS ==========

const payslipColumns = `
	p.id, p.run_id, p.employee_id, p.month, p.year,
	p.working_days, p.paid_days, p.attendance_summary,
	p.fixed_components, p.earnings, p.statutory, p.rule_deductions,
	p.advance_deduction, p.one_time_deductions, p.other_deduction,
	p.gross_salary, p.total_deductions, p.net_salary,
	p.is_manually_edited, p.created_at, p.updated_at,
	e.first_name || ' ' || e.last_name, e.code
`

func (r *runRepositoryImpl) UpsertPayslip(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	attendanceRaw, _ := json.Marshal(slip.Attendance)
	fixedRaw, _ := json.Marshal(slip.FixedComponents)
	earningsRaw, _ := json.Marshal(slip.Earnings)
	statutoryRaw, _ := json.Marshal(slip.Statutory)
	rulesRaw, _ := json.Marshal(slip.RuleDeductions)
	oneTimeRaw, _ := json.Marshal(slip.OneTimeDeductions)

	id := slip.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO payslips (
			id, run_id, employee_id, month, year,
			working_days, paid_days, attendance_summary,
			fixed_components, earnings, statutory, rule_deductions,
			advance_deduction, one_time_deductions, other_deduction,
			gross_salary, total_deductions, net_salary, is_manually_edited
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (run_id, employee_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			paid_days = EXCLUDED.paid_days,
			attendance_summary = EXCLUDED.attendance_summary,
			fixed_components = EXCLUDED.fixed_components,
			earnings = EXCLUDED.earnings,
			statutory = EXCLUDED.statutory,
			rule_deductions = EXCLUDED.rule_deductions,
			advance_deduction = EXCLUDED.advance_deduction,
			one_time_deductions = EXCLUDED.one_time_deductions,
			other_deduction = EXCLUDED.other_deduction,
			gross_salary = EXCLUDED.gross_salary,
			total_deductions = EXCLUDED.total_deductions,
			net_salary = EXCLUDED.net_salary,
			is_manually_edited = EXCLUDED.is_manually_edited,
			updated_at = NOW()
		RETURNING id
	`

	var savedID string
	err := q.QueryRow(ctx, query,
		id, slip.RunID, slip.EmployeeID, slip.Month, slip.Year,
		slip.WorkingDays, slip.PaidDays, attendanceRaw,
		fixedRaw, earningsRaw, statutoryRaw, rulesRaw,
		slip.AdvanceDeduction, oneTimeRaw, slip.OtherDeduction,
		slip.GrossSalary, slip.TotalDeductions, slip.NetSalary, slip.IsManuallyEdited,
	).Scan(&savedID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	return r.GetPayslipByID(ctx, savedID)
}

func (r *runRepositoryImpl) GetPayslipByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, err
	}

	return slip, nil
}

func (r *runRepositoryImpl) ListPayslipsByRun(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.run_id = $1
		ORDER BY e.code
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []payroll.Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}

	return slips, rows.Err()
}

// ========== SCAN HELPERS ==========

func scanRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	var warningsRaw, snapshotRaw []byte

	err := row.Scan(
		&run.ID,
		&run.Month,
		&run.Year,
		&run.Status,
		&run.EmployeeCount,
		&run.SkippedCount,
		&run.TotalGross,
		&run.TotalNet,
		&warningsRaw,
		&snapshotRaw,
		&run.ProcessedAt,
		&run.LockedAt,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	if len(warningsRaw) > 0 {
		if err := json.Unmarshal(warningsRaw, &run.Warnings); err != nil {
			return payroll.PayrollRun{}, err
		}
	}
	if len(snapshotRaw) > 0 {
		var snapshot payroll.RulesSnapshot
		if err := json.Unmarshal(snapshotRaw, &snapshot); err != nil {
			return payroll.PayrollRun{}, err
		}
		run.RulesSnapshot = &snapshot
	}

	return run, nil
}

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var slip payroll.Payslip
	var attendanceRaw, fixedRaw, earningsRaw, statutoryRaw, rulesRaw, oneTimeRaw []byte

	err := row.Scan(
		&slip.ID,
		&slip.RunID,
		&slip.EmployeeID,
		&slip.Month,
		&slip.Year,
		&slip.WorkingDays,
		&slip.PaidDays,
		&attendanceRaw,
		&fixedRaw,
		&earningsRaw,
		&statutoryRaw,
		&rulesRaw,
		&slip.AdvanceDeduction,
		&oneTimeRaw,
		&slip.OtherDeduction,
		&slip.GrossSalary,
		&slip.TotalDeductions,
		&slip.NetSalary,
		&slip.IsManuallyEdited,
		&slip.CreatedAt,
		&slip.UpdatedAt,
		&slip.EmployeeName,
		&slip.EmployeeCode,
	)
	if err != nil {
		return payroll.Payslip{}, err
	}

	for raw, dst := range map[*[]byte]interface{}{
		&attendanceRaw: &slip.Attendance,
		&fixedRaw:      &slip.FixedComponents,
		&earningsRaw:   &slip.Earnings,
		&statutoryRaw:  &slip.Statutory,
		&rulesRaw:      &slip.RuleDeductions,
		&oneTimeRaw:    &slip.OneTimeDeductions,
	} {
		if len(*raw) == 0 {
			continue
		}
		if err := json.Unmarshal(*raw, dst); err != nil {
			return payroll.Payslip{}, err
		}
	}

	return slip, nil
}
