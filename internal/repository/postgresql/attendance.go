package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceDayColumns = `
	id, employee_id, date, source, status, leave_code, first_in, last_out,
	total_hours, is_late, late_minutes, early_departure, manually_edited,
	created_at, updated_at
`

func (r *attendanceRepositoryImpl) UpsertDay(ctx context.Context, day attendance.Day) (attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_days (
			id, employee_id, date, source, status, leave_code, first_in, last_out,
			total_hours, is_late, late_minutes, early_departure, manually_edited
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			source = EXCLUDED.source,
			status = EXCLUDED.status,
			leave_code = EXCLUDED.leave_code,
			first_in = EXCLUDED.first_in,
			last_out = EXCLUDED.last_out,
			total_hours = EXCLUDED.total_hours,
			is_late = EXCLUDED.is_late,
			late_minutes = EXCLUDED.late_minutes,
			early_departure = EXCLUDED.early_departure,
			manually_edited = EXCLUDED.manually_edited,
			updated_at = NOW()
		RETURNING ` + attendanceDayColumns

	var saved attendance.Day
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		day.EmployeeID,
		day.Date,
		day.Source,
		day.Status,
		day.LeaveCode,
		day.FirstIn,
		day.LastOut,
		day.TotalHours,
		day.IsLate,
		day.LateMinutes,
		day.EarlyDeparture,
		day.ManuallyEdited,
	).Scan(scanDayFields(&saved)...)
	if err != nil {
		return attendance.Day{}, err
	}

	return saved, nil
}

func (r *attendanceRepositoryImpl) GetDay(ctx context.Context, employeeID string, date time.Time) (attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceDayColumns + `
		FROM attendance_days
		WHERE employee_id = $1 AND date = $2
	`

	var day attendance.Day
	err := q.QueryRow(ctx, query, employeeID, date).Scan(scanDayFields(&day)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Day{}, attendance.ErrDayNotFound
		}
		return attendance.Day{}, err
	}

	return day, nil
}

func (r *attendanceRepositoryImpl) ListDays(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceDayColumns + `
		FROM attendance_days
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []attendance.Day
	for rows.Next() {
		var day attendance.Day
		if err := rows.Scan(scanDayFields(&day)...); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

func (r *attendanceRepositoryImpl) ListDaysForPeriod(ctx context.Context, employeeIDs []string, month, year int) (map[string][]attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceDayColumns + `
		FROM attendance_days
		WHERE employee_id = ANY($1)
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, employeeIDs, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]attendance.Day)
	for rows.Next() {
		var day attendance.Day
		if err := rows.Scan(scanDayFields(&day)...); err != nil {
			return nil, err
		}
		result[day.EmployeeID] = append(result[day.EmployeeID], day)
	}

	return result, rows.Err()
}

func (r *attendanceRepositoryImpl) GetPolicy(ctx context.Context) (attendance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, grace_cutoff, early_out_cutoff, min_hours_full_day, min_hours_half_day,
		       half_day_deduction_percent, absent_day_multiplier, weekly_off_day,
		       created_at, updated_at
		FROM attendance_policy
		ORDER BY created_at
		LIMIT 1
	`

	var p attendance.Policy
	var weeklyOff int
	err := q.QueryRow(ctx, query).Scan(
		&p.ID,
		&p.GraceCutoff,
		&p.EarlyOutCutoff,
		&p.MinHoursFullDay,
		&p.MinHoursHalfDay,
		&p.HalfDayDeductionPercent,
		&p.AbsentDayMultiplier,
		&weeklyOff,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Policy{}, attendance.ErrPolicyNotFound
		}
		return attendance.Policy{}, err
	}
	p.WeeklyOffDay = time.Weekday(weeklyOff)

	return p, nil
}

func (r *attendanceRepositoryImpl) UpsertPolicy(ctx context.Context, policy attendance.Policy) (attendance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	id := policy.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_policy (
			id, grace_cutoff, early_out_cutoff, min_hours_full_day, min_hours_half_day,
			half_day_deduction_percent, absent_day_multiplier, weekly_off_day
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			grace_cutoff = EXCLUDED.grace_cutoff,
			early_out_cutoff = EXCLUDED.early_out_cutoff,
			min_hours_full_day = EXCLUDED.min_hours_full_day,
			min_hours_half_day = EXCLUDED.min_hours_half_day,
			half_day_deduction_percent = EXCLUDED.half_day_deduction_percent,
			absent_day_multiplier = EXCLUDED.absent_day_multiplier,
			weekly_off_day = EXCLUDED.weekly_off_day,
			updated_at = NOW()
		RETURNING id, grace_cutoff, early_out_cutoff, min_hours_full_day, min_hours_half_day,
		          half_day_deduction_percent, absent_day_multiplier, weekly_off_day,
		          created_at, updated_at
	`

	var saved attendance.Policy
	var weeklyOff int
	err := q.QueryRow(ctx, query,
		id,
		policy.GraceCutoff,
		policy.EarlyOutCutoff,
		policy.MinHoursFullDay,
		policy.MinHoursHalfDay,
		policy.HalfDayDeductionPercent,
		policy.AbsentDayMultiplier,
		int(policy.WeeklyOffDay),
	).Scan(
		&saved.ID,
		&saved.GraceCutoff,
		&saved.EarlyOutCutoff,
		&saved.MinHoursFullDay,
		&saved.MinHoursHalfDay,
		&saved.HalfDayDeductionPercent,
		&saved.AbsentDayMultiplier,
		&weeklyOff,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Policy{}, err
	}
	saved.WeeklyOffDay = time.Weekday(weeklyOff)

	return saved, nil
}

func scanDayFields(day *attendance.Day) []interface{} {
	return []interface{}{
		&day.ID,
		&day.EmployeeID,
		&day.Date,
		&day.Source,
		&day.Status,
		&day.LeaveCode,
		&day.FirstIn,
		&day.LastOut,
		&day.TotalHours,
		&day.IsLate,
		&day.LateMinutes,
		&day.EarlyDeparture,
		&day.ManuallyEdited,
		&day.CreatedAt,
		&day.UpdatedAt,
	}
}
