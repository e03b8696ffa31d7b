package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/actor"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/employee"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/salary"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/Jaidataanalytics/hrms-sub000/internal/repository/postgresql"
	leavesvc "github.com/Jaidataanalytics/hrms-sub000/internal/service/leave"
	"github.com/shopspring/decimal"
)

// SundayPenaltyApplier converts flagged weekly-off days into leave days
// before payslip assembly.
type SundayPenaltyApplier interface {
	ApplySundayPenalties(ctx context.Context, employeeID string, days []attendance.Day, cfg leave.PolicyConfig) ([]leave.SundayPenalty, error)
}

type PayrollServiceImpl struct {
	db             *database.DB
	runRepo        payroll.RunRepository
	statutoryRepo  payroll.StatutoryRepository
	ruleRepo       payroll.CustomRuleRepository
	advanceRepo    payroll.AdvanceRepository
	salaryRepo     salary.SalaryRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	auditRepo      audit.AuditRepository
	sundayRule     SundayPenaltyApplier
	workers        int
	withTx         func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewPayrollService(
	db *database.DB,
	runRepo payroll.RunRepository,
	statutoryRepo payroll.StatutoryRepository,
	ruleRepo payroll.CustomRuleRepository,
	advanceRepo payroll.AdvanceRepository,
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	auditRepo audit.AuditRepository,
	sundayRule SundayPenaltyApplier,
	workers int,
) *PayrollServiceImpl {
	if workers < 1 {
		workers = 1
	}
	return &PayrollServiceImpl{
		db:             db,
		runRepo:        runRepo,
		statutoryRepo:  statutoryRepo,
		ruleRepo:       ruleRepo,
		advanceRepo:    advanceRepo,
		salaryRepo:     salaryRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		auditRepo:      auditRepo,
		sundayRule:     sundayRule,
		workers:        workers,
		withTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// ========== RUN LIFECYCLE ==========

func (s *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	_, err := s.runRepo.GetRunByPeriod(ctx, req.Month, req.Year)
	if err == nil {
		return payroll.RunResponse{}, payroll.ErrRunAlreadyExists
	}
	if !errors.Is(err, payroll.ErrRunNotFound) {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.CreateRun(ctx, payroll.PayrollRun{
		Month:  req.Month,
		Year:   req.Year,
		Status: payroll.RunStatusDraft,
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return mapRunResponse(run, nil), nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetRunByID(ctx, id)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	slips, err := s.runRepo.ListPayslipsByRun(ctx, id)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return mapRunResponse(run, slips), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context) ([]payroll.RunResponse, error) {
	runs, err := s.runRepo.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.RunResponse, 0, len(runs))
	for _, r := range runs {
		result = append(result, mapRunResponse(r, nil))
	}
	return result, nil
}

// ProcessRun computes every payslip of the run. A draft run processes for the
// first time; a processed run reprocesses from scratch, reversing its advance
// applications first. Concurrent calls race on the status transition and the
// loser reports a conflict.
func (s *PayrollServiceImpl) ProcessRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetRunByID(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	prev := run.Status
	switch prev {
	case payroll.RunStatusDraft, payroll.RunStatusProcessed:
		if err := s.runRepo.UpdateStatus(ctx, runID, prev, payroll.RunStatusProcessing); err != nil {
			return payroll.RunResponse{}, err
		}
	case payroll.RunStatusProcessing:
		return payroll.RunResponse{}, payroll.ErrRunStatusConflict
	case payroll.RunStatusLocked:
		return payroll.RunResponse{}, payroll.ErrRunLocked
	}

	processed, err := s.process(ctx, run)
	if err != nil {
		// Hand the run back so it can be retried.
		if rbErr := s.runRepo.UpdateStatus(ctx, runID, payroll.RunStatusProcessing, prev); rbErr != nil {
			slog.Error("Failed to restore run status after processing error",
				"run_id", runID, "error", rbErr)
		}
		return payroll.RunResponse{}, err
	}

	if err := s.runRepo.UpdateStatus(ctx, runID, payroll.RunStatusProcessing, payroll.RunStatusProcessed); err != nil {
		return payroll.RunResponse{}, err
	}

	slips, err := s.runRepo.ListPayslipsByRun(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	processed.Status = payroll.RunStatusProcessed

	return mapRunResponse(processed, slips), nil
}

type employeeResult struct {
	slip     payroll.Payslip
	warnings []string
	err      error
	empID    string
}

func (s *PayrollServiceImpl) process(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	snapshot, snapWarnings, err := s.buildSnapshot(ctx)
	if err != nil {
		return run, err
	}

	periodStart, periodEnd := periodBounds(run.Month, run.Year)

	all, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return run, err
	}
	var employees []employee.Employee
	for _, emp := range all {
		if emp.JoinDate.After(periodEnd) {
			continue
		}
		employees = append(employees, emp)
	}

	// Reprocessing starts clean: prior installments of this run are restored
	// to their advances before any payslip is recomputed.
	if err := s.advanceRepo.ReverseApplications(ctx, run.ID); err != nil {
		return run, err
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	structures, err := s.salaryRepo.GetEffectiveStructures(ctx, ids, periodEnd)
	if err != nil {
		return run, err
	}
	daysByEmp, err := s.attendanceRepo.ListDaysForPeriod(ctx, ids, run.Month, run.Year)
	if err != nil {
		return run, err
	}
	advancesByEmp, err := s.advanceRepo.ListActiveAdvancesForEmployees(ctx, ids)
	if err != nil {
		return run, err
	}
	oneTime, err := s.advanceRepo.ListOneTime(ctx, run.Month, run.Year)
	if err != nil {
		return run, err
	}

	leaveYear := leavesvc.FinancialYearFor(periodStart, snapshot.LeavePolicy)

	jobs := make(chan employee.Employee)
	results := make(chan employeeResult, len(employees))
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for emp := range jobs {
				slip, warnings, err := s.computeEmployee(ctx, run, snapshot, emp, computeInput{
					structure: structures[emp.ID],
					hasSalary: hasStructure(structures, emp.ID),
					days:      daysByEmp[emp.ID],
					advances:  advancesByEmp[emp.ID],
					oneTime:   oneTime,
					leaveYear: leaveYear,
				})
				results <- employeeResult{slip: slip, warnings: warnings, err: err, empID: emp.ID}
			}
		}()
	}

	go func() {
		for _, emp := range employees {
			jobs <- emp
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	warnings := make(map[string]int)
	for _, w := range snapWarnings {
		warnings[w]++
	}

	totalGross := decimal.Zero
	totalNet := decimal.Zero
	processed := 0
	skipped := 0

	for res := range results {
		if res.err != nil {
			skipped++
			warnings["employee_errors"]++
			slog.Error("Payslip computation failed",
				"run_id", run.ID, "employee_id", res.empID, "error", res.err)
			continue
		}
		processed++
		totalGross = totalGross.Add(res.slip.GrossSalary)
		totalNet = totalNet.Add(res.slip.NetSalary)
		for _, w := range res.warnings {
			warnings[w]++
		}
	}

	now := time.Now()
	run.EmployeeCount = processed
	run.SkippedCount = skipped
	run.TotalGross = totalGross
	run.TotalNet = totalNet
	run.Warnings = warnings
	run.RulesSnapshot = snapshot
	run.ProcessedAt = &now
	run.Status = payroll.RunStatusProcessing

	if err := s.runRepo.UpdateRunResults(ctx, run); err != nil {
		return run, err
	}

	slog.Info("Payroll run processed",
		"run_id", run.ID, "month", run.Month, "year", run.Year,
		"employees", processed, "skipped", skipped)

	return run, nil
}

type computeInput struct {
	structure salary.Structure
	hasSalary bool
	days      []attendance.Day
	advances  []payroll.SewaAdvance
	oneTime   []payroll.OneTimeDeduction
	leaveYear int
}

// computeEmployee assembles and persists one payslip. The upsert and advance
// applications commit together so a crash never leaves an installment
// deducted without its payslip.
func (s *PayrollServiceImpl) computeEmployee(ctx context.Context, run payroll.PayrollRun, snapshot *payroll.RulesSnapshot, emp employee.Employee, in computeInput) (payroll.Payslip, []string, error) {
	if !in.hasSalary {
		return payroll.Payslip{}, nil, fmt.Errorf("employee %s: %w", emp.ID, payroll.ErrMissingSalary)
	}

	days := in.days
	if s.sundayRule != nil {
		penalties, err := s.sundayRule.ApplySundayPenalties(ctx, emp.ID, days, snapshot.LeavePolicy)
		if err != nil {
			return payroll.Payslip{}, nil, err
		}
		if snapshot.LeavePolicy.Sunday.AutoApply {
			days = mirrorPenalties(days, penalties)
		}
	}

	remaining, err := s.remainingBalances(ctx, emp.ID, in.leaveYear, snapshot)
	if err != nil {
		return payroll.Payslip{}, nil, err
	}

	installments := DueInstallments(in.advances, run.Month, run.Year)

	slip, warnings := Assemble(snapshot, run.Month, run.Year, EmployeeInput{
		Employee:        emp,
		Structure:       in.structure,
		Days:            days,
		RemainingByCode: remaining,
		AdvanceDue:      TotalDue(installments),
		OneTime:         OneTimeItems(in.oneTime, emp.ID),
	})
	slip.RunID = run.ID

	err = s.withTx(ctx, func(txCtx context.Context) error {
		if _, err := s.runRepo.UpsertPayslip(txCtx, slip); err != nil {
			return err
		}
		for _, inst := range installments {
			if _, err := s.advanceRepo.ApplyToRun(txCtx, inst.Advance.ID, run.ID, emp.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return payroll.Payslip{}, nil, err
	}

	return slip, warnings, nil
}

// ========== SINGLE PAYSLIP RECOMPUTE ==========

// RecomputePayslip reruns one employee's computation against the run's frozen
// snapshot, optionally after applying audited attendance overrides. Locked
// runs reject the edit. Every write — the override rows, the advance ledger
// reversal and reapplication, the payslip and the run totals — happens in one
// transaction that re-checks the lock first, so a concurrent lock rejects the
// edit with nothing mutated.
func (s *PayrollServiceImpl) RecomputePayslip(ctx context.Context, payslipID string, req payroll.EditPayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip, err := s.runRepo.GetPayslipByID(ctx, payslipID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	run, err := s.runRepo.GetRunByID(ctx, slip.RunID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if run.Status == payroll.RunStatusLocked {
		return payroll.PayslipResponse{}, payroll.ErrRunLocked
	}
	if run.RulesSnapshot == nil {
		return payroll.PayslipResponse{}, payroll.ErrSnapshotMissing
	}
	snapshot := run.RulesSnapshot

	var newSlip payroll.Payslip
	var warnings []string
	err = s.withTx(ctx, func(txCtx context.Context) error {
		current, err := s.runRepo.GetRunByID(txCtx, run.ID)
		if err != nil {
			return err
		}
		if current.Status == payroll.RunStatusLocked {
			return payroll.ErrRunLocked
		}

		if err := s.applyOverrides(txCtx, act, slip.EmployeeID, req); err != nil {
			return err
		}

		if err := s.advanceRepo.ReverseApplicationForEmployee(txCtx, run.ID, slip.EmployeeID); err != nil {
			return err
		}

		emp, err := s.employeeRepo.GetByID(txCtx, slip.EmployeeID)
		if err != nil {
			return err
		}

		periodStart, periodEnd := periodBounds(run.Month, run.Year)
		days, err := s.attendanceRepo.ListDays(txCtx, emp.ID, periodStart, periodEnd)
		if err != nil {
			return err
		}
		structure, err := s.salaryRepo.GetEffectiveStructure(txCtx, emp.ID, periodEnd)
		if err != nil {
			if errors.Is(err, salary.ErrStructureNotFound) {
				return payroll.ErrMissingSalary
			}
			return err
		}

		leaveYear := leavesvc.FinancialYearFor(periodStart, snapshot.LeavePolicy)
		remaining, err := s.remainingBalances(txCtx, emp.ID, leaveYear, snapshot)
		if err != nil {
			return err
		}

		advances, err := s.advanceRepo.ListAdvances(txCtx, emp.ID, true)
		if err != nil {
			return err
		}
		installments := DueInstallments(advances, run.Month, run.Year)

		oneTime, err := s.advanceRepo.ListOneTime(txCtx, run.Month, run.Year)
		if err != nil {
			return err
		}

		newSlip, warnings = Assemble(snapshot, run.Month, run.Year, EmployeeInput{
			Employee:        emp,
			Structure:       structure,
			Days:            days,
			RemainingByCode: remaining,
			AdvanceDue:      TotalDue(installments),
			OneTime:         OneTimeItems(oneTime, emp.ID),
		})
		newSlip.ID = slip.ID
		newSlip.RunID = run.ID
		newSlip.IsManuallyEdited = true

		if _, err := s.runRepo.UpsertPayslip(txCtx, newSlip); err != nil {
			return err
		}
		for _, inst := range installments {
			if _, err := s.advanceRepo.ApplyToRun(txCtx, inst.Advance.ID, run.ID, emp.ID); err != nil {
				return err
			}
		}

		current.TotalGross = current.TotalGross.Sub(slip.GrossSalary).Add(newSlip.GrossSalary)
		current.TotalNet = current.TotalNet.Sub(slip.NetSalary).Add(newSlip.NetSalary)
		if err := s.runRepo.UpdateRunResults(txCtx, current); err != nil {
			return err
		}

		before, _ := json.Marshal(mapPayslipResponse(slip))
		after, _ := json.Marshal(mapPayslipResponse(newSlip))

		_, err = s.auditRepo.Append(txCtx, audit.Entry{
			TargetType: audit.TargetPayslip,
			TargetID:   newSlip.ID,
			Actor:      act.UserID,
			Reason:     req.Reason,
			Before:     before,
			After:      after,
		})
		return err
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	for _, w := range warnings {
		slog.Warn("Payslip recomputed with degraded configuration",
			"payslip_id", newSlip.ID, "warning", w)
	}

	return mapPayslipResponse(newSlip), nil
}

func (s *PayrollServiceImpl) applyOverrides(ctx context.Context, act actor.Actor, employeeID string, req payroll.EditPayslipRequest) error {
	for _, o := range req.Overrides {
		status := attendance.DayStatus(o.Status)
		if !status.Valid() {
			return attendance.ErrInvalidStatus
		}
		date, _ := time.Parse("2006-01-02", o.Date)

		day, err := s.attendanceRepo.GetDay(ctx, employeeID, date)
		if err != nil {
			if !errors.Is(err, attendance.ErrDayNotFound) {
				return err
			}
			day = attendance.Day{EmployeeID: employeeID, Date: date}
		}

		before, _ := json.Marshal(day)
		day.Status = status
		day.Source = attendance.SourceManual
		day.ManuallyEdited = true

		saved, err := s.attendanceRepo.UpsertDay(ctx, day)
		if err != nil {
			return err
		}
		after, _ := json.Marshal(saved)

		if _, err := s.auditRepo.Append(ctx, audit.Entry{
			TargetType: audit.TargetAttendanceDay,
			TargetID:   saved.ID,
			Actor:      act.UserID,
			Reason:     req.Reason,
			Before:     before,
			After:      after,
		}); err != nil {
			return err
		}
	}
	return nil
}

// ========== LOCK & DELETE ==========

func (s *PayrollServiceImpl) LockRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	if err := s.runRepo.UpdateStatus(ctx, runID, payroll.RunStatusProcessed, payroll.RunStatusLocked); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.GetRunByID(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	slog.Info("Payroll run locked", "run_id", runID, "month", run.Month, "year", run.Year)
	return mapRunResponse(run, nil), nil
}

// DeleteRun removes a non-locked run with its payslips, restoring every
// advance installment the run had applied.
func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, runID string) (payroll.DeleteRunResponse, error) {
	run, err := s.runRepo.GetRunByID(ctx, runID)
	if err != nil {
		return payroll.DeleteRunResponse{}, err
	}
	if run.Status == payroll.RunStatusLocked {
		return payroll.DeleteRunResponse{}, payroll.ErrRunLocked
	}

	var removed int64
	err = s.withTx(ctx, func(txCtx context.Context) error {
		if err := s.advanceRepo.ReverseApplications(txCtx, runID); err != nil {
			return err
		}
		removed, err = s.runRepo.DeleteRun(txCtx, runID)
		return err
	})
	if err != nil {
		return payroll.DeleteRunResponse{}, err
	}

	return payroll.DeleteRunResponse{RunID: runID, PayslipsRemoved: removed}, nil
}

// ========== PAYSLIP READS ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	slip, err := s.runRepo.GetPayslipByID(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return mapPayslipResponse(slip), nil
}

func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, runID string) ([]payroll.PayslipResponse, error) {
	slips, err := s.runRepo.ListPayslipsByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayslipResponse, 0, len(slips))
	for _, p := range slips {
		result = append(result, mapPayslipResponse(p))
	}
	return result, nil
}

// ========== HELPERS ==========

// buildSnapshot freezes all configuration for a run. Missing configuration
// rows fall back to defaults and leave a warning on the run.
func (s *PayrollServiceImpl) buildSnapshot(ctx context.Context) (*payroll.RulesSnapshot, []string, error) {
	var warnings []string

	statutory, err := s.statutoryRepo.GetConfig(ctx)
	if err != nil {
		if !errors.Is(err, payroll.ErrStatutoryNotFound) {
			return nil, nil, err
		}
		statutory = payroll.DefaultStatutoryConfig()
		warnings = append(warnings, "statutory_defaults")
	}

	policy, err := s.attendanceRepo.GetPolicy(ctx)
	if err != nil {
		if !errors.Is(err, attendance.ErrPolicyNotFound) {
			return nil, nil, err
		}
		policy = attendance.DefaultPolicy()
	}

	leaveTypes, err := s.leaveRepo.ListTypeRules(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	if len(leaveTypes) == 0 {
		warnings = append(warnings, "no_leave_types")
	}

	leavePolicy, err := s.leaveRepo.GetPolicyConfig(ctx)
	if err != nil {
		if !errors.Is(err, leave.ErrPolicyNotFound) {
			return nil, nil, err
		}
		leavePolicy = leave.DefaultPolicyConfig()
	}

	rules, err := s.ruleRepo.List(ctx, false)
	if err != nil {
		return nil, nil, err
	}

	return &payroll.RulesSnapshot{
		Statutory:        statutory,
		AttendancePolicy: policy,
		LeaveTypes:       leaveTypes,
		LeavePolicy:      leavePolicy,
		CustomRules:      rules,
	}, warnings, nil
}

// remainingBalances builds the leave balance map entering the period. An
// employee with no balance row for a code still has the full annual quota.
func (s *PayrollServiceImpl) remainingBalances(ctx context.Context, employeeID string, year int, snapshot *payroll.RulesSnapshot) (map[string]decimal.Decimal, error) {
	balances, err := s.leaveRepo.ListBalances(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]leave.Balance, len(balances))
	for _, b := range balances {
		byCode[b.LeaveCode] = b
	}

	remaining := make(map[string]decimal.Decimal, len(snapshot.LeaveTypes))
	for _, lt := range snapshot.LeaveTypes {
		if bal, ok := byCode[lt.Code]; ok {
			remaining[lt.Code] = bal.Remaining()
		} else {
			remaining[lt.Code] = lt.AnnualQuota
		}
	}
	return remaining, nil
}

// mirrorPenalties applies the persisted weekly-off conversions to the local
// day slice so assembly sees the same month the database now holds.
func mirrorPenalties(days []attendance.Day, penalties []leave.SundayPenalty) []attendance.Day {
	if len(penalties) == 0 {
		return days
	}
	out := make([]attendance.Day, len(days))
	copy(out, days)
	for _, p := range penalties {
		for i := range out {
			if out[i].Date.Equal(p.Date) && out[i].Status == attendance.StatusWeeklyOff {
				code := p.LeaveCode
				out[i].Status = attendance.StatusLeave
				out[i].LeaveCode = &code
			}
		}
	}
	return out
}

func hasStructure(structures map[string]salary.Structure, employeeID string) bool {
	_, ok := structures[employeeID]
	return ok
}

func periodBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func mapRunResponse(run payroll.PayrollRun, slips []payroll.Payslip) payroll.RunResponse {
	resp := payroll.RunResponse{
		ID:            run.ID,
		Month:         run.Month,
		Year:          run.Year,
		Status:        string(run.Status),
		EmployeeCount: run.EmployeeCount,
		SkippedCount:  run.SkippedCount,
		TotalGross:    run.TotalGross,
		TotalNet:      run.TotalNet,
		Warnings:      run.Warnings,
	}
	if run.ProcessedAt != nil {
		t := run.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &t
	}
	if run.LockedAt != nil {
		t := run.LockedAt.Format(time.RFC3339)
		resp.LockedAt = &t
	}
	for _, p := range slips {
		resp.Payslips = append(resp.Payslips, mapPayslipResponse(p))
	}
	return resp
}

func mapPayslipResponse(p payroll.Payslip) payroll.PayslipResponse {
	resp := payroll.PayslipResponse{
		ID:                p.ID,
		RunID:             p.RunID,
		EmployeeID:        p.EmployeeID,
		Month:             p.Month,
		Year:              p.Year,
		WorkingDays:       p.WorkingDays,
		PaidDays:          p.PaidDays,
		Attendance:        p.Attendance,
		FixedComponents:   p.FixedComponents,
		Earnings:          p.Earnings,
		Statutory:         p.Statutory,
		RuleDeductions:    p.RuleDeductions,
		AdvanceDeduction:  p.AdvanceDeduction,
		OneTimeDeductions: p.OneTimeDeductions,
		OtherDeduction:    p.OtherDeduction,
		GrossSalary:       p.GrossSalary,
		TotalDeductions:   p.TotalDeductions,
		NetSalary:         p.NetSalary,
		IsManuallyEdited:  p.IsManuallyEdited,
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	if p.EmployeeCode != nil {
		resp.EmployeeCode = *p.EmployeeCode
	}
	return resp
}
