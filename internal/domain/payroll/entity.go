package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ========== STATUTORY CONFIGURATION ==========

// PTSlab is one professional-tax bracket. A zero Max means unbounded; slabs
// are matched in order with min <= gross < max.
type PTSlab struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Amount decimal.Decimal `json:"amount"`
}

// StatutoryConfig holds PF/ESI rules and the professional-tax slab table.
// Disabled sections degrade to zero line items rather than failing a run.
type StatutoryConfig struct {
	ID                 string
	PFEnabled          bool
	PFWageCeiling      decimal.Decimal
	PFEmployeePercent  decimal.Decimal
	ESIEnabled         bool
	ESIWageCeiling     decimal.Decimal
	ESIEmployeePercent decimal.Decimal
	PTSlabs            []PTSlab
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultStatutoryConfig matches the statutory rates current at writing:
// PF 12% capped at 15,000 wage, ESI 0.75% up to 21,000 gross.
func DefaultStatutoryConfig() StatutoryConfig {
	return StatutoryConfig{
		PFEnabled:          true,
		PFWageCeiling:      decimal.NewFromInt(15000),
		PFEmployeePercent:  decimal.NewFromInt(12),
		ESIEnabled:         true,
		ESIWageCeiling:     decimal.NewFromInt(21000),
		ESIEmployeePercent: decimal.NewFromFloat(0.75),
		PTSlabs: []PTSlab{
			{Min: decimal.Zero, Max: decimal.NewFromInt(10000), Amount: decimal.Zero},
			{Min: decimal.NewFromInt(10000), Max: decimal.NewFromInt(15000), Amount: decimal.NewFromInt(110)},
			{Min: decimal.NewFromInt(15000), Max: decimal.NewFromInt(25000), Amount: decimal.NewFromInt(130)},
			{Min: decimal.NewFromInt(25000), Max: decimal.Zero, Amount: decimal.NewFromInt(200)},
		},
	}
}

// StatutoryDeductions is the computed statutory line items. All three fields
// are always present; disabled or inapplicable deductions are explicit zeros.
type StatutoryDeductions struct {
	EPF             decimal.Decimal `json:"epf"`
	ESI             decimal.Decimal `json:"esi"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
}

func (s StatutoryDeductions) Total() decimal.Decimal {
	return s.EPF.Add(s.ESI).Add(s.ProfessionalTax)
}

// ========== CUSTOM RULES ==========

type ConditionType string

const (
	ConditionLateCount           ConditionType = "late_count"
	ConditionAbsentCount         ConditionType = "absent_count"
	ConditionAbsentWithoutLeave  ConditionType = "absent_without_leave"
	ConditionEarlyDepartureCount ConditionType = "early_departure_count"
	ConditionHalfDayCount        ConditionType = "half_day_count"
)

func (c ConditionType) Valid() bool {
	switch c {
	case ConditionLateCount, ConditionAbsentCount, ConditionAbsentWithoutLeave,
		ConditionEarlyDepartureCount, ConditionHalfDayCount:
		return true
	}
	return false
}

type Operator string

const (
	OperatorGreaterThan   Operator = "greater_than"
	OperatorGreaterEquals Operator = "greater_equals"
	OperatorEquals        Operator = "equals"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorGreaterThan, OperatorGreaterEquals, OperatorEquals:
		return true
	}
	return false
}

type ActionType string

const (
	ActionPercentageDeduction ActionType = "percentage_deduction"
	ActionFixedDeduction      ActionType = "fixed_deduction"
	ActionHalfDayDeduction    ActionType = "half_day_deduction"
	ActionFullDayDeduction    ActionType = "full_day_deduction"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionPercentageDeduction, ActionFixedDeduction,
		ActionHalfDayDeduction, ActionFullDayDeduction:
		return true
	}
	return false
}

// CustomRule is one admin-defined condition→action deduction rule. Default
// rules ship with the system and cannot be deleted, only disabled.
type CustomRule struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ConditionType      ConditionType   `json:"condition_type"`
	Operator           Operator        `json:"operator"`
	Threshold          int             `json:"threshold"`
	ActionType         ActionType      `json:"action_type"`
	Value              decimal.Decimal `json:"value"`
	ApplyPerOccurrence bool            `json:"apply_per_occurrence"`
	IsActive           bool            `json:"is_active"`
	IsDefault          bool            `json:"is_default"`
	CreatedAt          time.Time       `json:"-"`
	UpdatedAt          time.Time       `json:"-"`
}

// RuleDeduction is one fired rule's contribution to a payslip.
type RuleDeduction struct {
	RuleID      string          `json:"rule_id"`
	RuleName    string          `json:"rule_name"`
	Occurrences int             `json:"occurrences"`
	Amount      decimal.Decimal `json:"amount"`
}

// ========== ADVANCES & ONE-TIME DEDUCTIONS ==========

// SewaAdvance is a recoverable advance repaid in fixed monthly installments.
type SewaAdvance struct {
	ID              string
	EmployeeID      string
	TotalAmount     decimal.Decimal
	MonthlyAmount   decimal.Decimal
	RemainingAmount decimal.Decimal
	StartMonth      int
	StartYear       int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StartedBy reports whether recovery has begun by the given period.
func (a SewaAdvance) StartedBy(month, year int) bool {
	return year > a.StartYear || (year == a.StartYear && month >= a.StartMonth)
}

// AdvanceApplication records one advance installment applied to one run.
// The (AdvanceID, RunID) pair is unique, which makes reapplication after a
// crash idempotent instead of a second decrement.
type AdvanceApplication struct {
	ID         string
	AdvanceID  string
	RunID      string
	EmployeeID string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// OneTimeDeduction applies to exactly one payslip of the named period.
type OneTimeDeduction struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int
	Amount     decimal.Decimal
	Category   string
	Reason     string
	CreatedAt  time.Time
}

// OneTimeItem is the payslip line for an applied one-time deduction.
type OneTimeItem struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Reason   string          `json:"reason"`
	Amount   decimal.Decimal `json:"amount"`
}

// ========== RUNS & PAYSLIPS ==========

type RunStatus string

const (
	RunStatusDraft      RunStatus = "draft"
	RunStatusProcessing RunStatus = "processing"
	RunStatusProcessed  RunStatus = "processed"
	RunStatusLocked     RunStatus = "locked"
)

// PayrollRun is one month/year batch. Transitions are one-directional:
// draft → processing → processed → locked. Deletion is allowed while not
// locked and cascades to payslips.
type PayrollRun struct {
	ID            string
	Month         int
	Year          int
	Status        RunStatus
	EmployeeCount int
	SkippedCount  int
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal
	// Warnings counts degraded configurations and per-employee errors so a
	// silently-zero deduction never goes unnoticed.
	Warnings map[string]int
	// RulesSnapshot freezes the configuration used to produce this run's
	// payslips. Recomputes replay the snapshot, not current config.
	RulesSnapshot *RulesSnapshot
	ProcessedAt   *time.Time
	LockedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Components is a fixed salary component breakdown. Fields are always
// present and explicitly zero when unused, keeping audit trails complete.
type Components struct {
	Basic            decimal.Decimal `json:"basic"`
	DA               decimal.Decimal `json:"da"`
	HRA              decimal.Decimal `json:"hra"`
	Conveyance       decimal.Decimal `json:"conveyance"`
	GradePay         decimal.Decimal `json:"grade_pay"`
	OtherAllowance   decimal.Decimal `json:"other_allowance"`
	MedicalAllowance decimal.Decimal `json:"medical_allowance"`
}

func (c Components) Total() decimal.Decimal {
	return c.Basic.Add(c.DA).Add(c.HRA).Add(c.Conveyance).
		Add(c.GradePay).Add(c.OtherAllowance).Add(c.MedicalAllowance)
}

// Prorate scales every component by paid/working days, rounded to 2 places.
func (c Components) Prorate(paidDays decimal.Decimal, workingDays int) Components {
	if workingDays <= 0 {
		return Components{}
	}
	factor := paidDays.Div(decimal.NewFromInt(int64(workingDays)))
	round := func(d decimal.Decimal) decimal.Decimal { return d.Mul(factor).Round(2) }
	return Components{
		Basic:            round(c.Basic),
		DA:               round(c.DA),
		HRA:              round(c.HRA),
		Conveyance:       round(c.Conveyance),
		GradePay:         round(c.GradePay),
		OtherAllowance:   round(c.OtherAllowance),
		MedicalAllowance: round(c.MedicalAllowance),
	}
}

// AttendanceSummary is the per-payslip attendance digest shown to HR.
type AttendanceSummary struct {
	OfficeDays      int             `json:"office_days"`
	LeaveDays       int             `json:"leave_days"`
	WFHDays         int             `json:"wfh_days"`
	TourDays        int             `json:"tour_days"`
	HalfDays        int             `json:"half_days"`
	AbsentDays      int             `json:"absent_days"`
	LateCount       int             `json:"late_count"`
	UnpaidLeaveDays decimal.Decimal `json:"unpaid_leave_days"`
}

// Payslip is one employee's computed salary for one run. Immutable once the
// owning run is locked.
type Payslip struct {
	ID         string
	RunID      string
	EmployeeID string
	Month      int
	Year       int

	WorkingDays int
	PaidDays    decimal.Decimal
	Attendance  AttendanceSummary

	FixedComponents Components
	Earnings        Components

	Statutory         StatutoryDeductions
	RuleDeductions    []RuleDeduction
	AdvanceDeduction  decimal.Decimal
	OneTimeDeductions []OneTimeItem
	OtherDeduction    decimal.Decimal

	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal

	IsManuallyEdited bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
