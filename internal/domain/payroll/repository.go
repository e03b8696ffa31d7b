package payroll

import (
	"context"
)

// RunRepository owns payroll runs and their payslips. Status transitions use
// compare-and-swap semantics: UpdateStatus only succeeds when the run is in
// the expected prior status, and reports ErrRunStatusConflict otherwise.
type RunRepository interface {
	CreateRun(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetRunByID(ctx context.Context, id string) (PayrollRun, error)
	GetRunByPeriod(ctx context.Context, month, year int) (PayrollRun, error)
	ListRuns(ctx context.Context) ([]PayrollRun, error)
	UpdateStatus(ctx context.Context, id string, from, to RunStatus) error
	UpdateRunResults(ctx context.Context, run PayrollRun) error
	// DeleteRun removes a non-locked run and returns the number of payslips
	// removed with it.
	DeleteRun(ctx context.Context, id string) (int64, error)

	UpsertPayslip(ctx context.Context, slip Payslip) (Payslip, error)
	GetPayslipByID(ctx context.Context, id string) (Payslip, error)
	ListPayslipsByRun(ctx context.Context, runID string) ([]Payslip, error)
}

type StatutoryRepository interface {
	GetConfig(ctx context.Context) (StatutoryConfig, error)
	UpsertConfig(ctx context.Context, cfg StatutoryConfig) (StatutoryConfig, error)
}

type CustomRuleRepository interface {
	Create(ctx context.Context, rule CustomRule) (CustomRule, error)
	GetByID(ctx context.Context, id string) (CustomRule, error)
	List(ctx context.Context, activeOnly bool) ([]CustomRule, error)
	Update(ctx context.Context, rule CustomRule) (CustomRule, error)
	Delete(ctx context.Context, id string) error
}

// AdvanceRepository persists advances and their per-run applications.
// ApplyToRun inserts the application and decrements the advance balance in
// one transaction; a second call for the same (advance, run) pair returns
// the existing application untouched.
type AdvanceRepository interface {
	CreateAdvance(ctx context.Context, adv SewaAdvance) (SewaAdvance, error)
	GetAdvanceByID(ctx context.Context, id string) (SewaAdvance, error)
	ListAdvances(ctx context.Context, employeeID string, activeOnly bool) ([]SewaAdvance, error)
	ListActiveAdvancesForEmployees(ctx context.Context, employeeIDs []string) (map[string][]SewaAdvance, error)
	UpdateAdvance(ctx context.Context, adv SewaAdvance) (SewaAdvance, error)

	ApplyToRun(ctx context.Context, advanceID, runID, employeeID string) (AdvanceApplication, error)
	GetApplication(ctx context.Context, advanceID, runID string) (AdvanceApplication, error)
	// ReverseApplications restores balances and removes the applications of
	// a run being recomputed or deleted.
	ReverseApplications(ctx context.Context, runID string) error
	ReverseApplicationForEmployee(ctx context.Context, runID, employeeID string) error

	CreateOneTime(ctx context.Context, d OneTimeDeduction) (OneTimeDeduction, error)
	GetOneTimeByID(ctx context.Context, id string) (OneTimeDeduction, error)
	ListOneTime(ctx context.Context, month, year int) ([]OneTimeDeduction, error)
	DeleteOneTime(ctx context.Context, id string) error
}
