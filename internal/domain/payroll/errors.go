package payroll

import "errors"

var (
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrRunAlreadyExists     = errors.New("payroll run already exists for this period")
	ErrRunStatusConflict    = errors.New("payroll run is not in the expected status")
	ErrRunLocked            = errors.New("payroll run is locked")
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrStatutoryNotFound    = errors.New("statutory config not found")
	ErrCustomRuleNotFound   = errors.New("custom rule not found")
	ErrDefaultRuleDelete    = errors.New("default rules cannot be deleted, only disabled")
	ErrAdvanceNotFound      = errors.New("advance not found")
	ErrAdvanceExhausted     = errors.New("advance is fully recovered")
	ErrDeductionNotFound    = errors.New("one-time deduction not found")
	ErrMissingSalary        = errors.New("employee has no salary structure")
	ErrSnapshotMissing      = errors.New("payroll run has no rules snapshot")
	ErrApplicationNotFound  = errors.New("advance application not found")
)
