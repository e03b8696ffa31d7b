package payroll

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RUN DTOs ==========

type CreateRunRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be 1 through 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID            string          `json:"id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Status        string          `json:"status"`
	EmployeeCount int             `json:"employee_count"`
	SkippedCount  int             `json:"skipped_count"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
	Warnings      map[string]int  `json:"warnings,omitempty"`
	ProcessedAt   *string         `json:"processed_at,omitempty"`
	LockedAt      *string         `json:"locked_at,omitempty"`
	Payslips      []PayslipResponse `json:"payslips,omitempty"`
}

type DeleteRunResponse struct {
	RunID           string `json:"run_id"`
	PayslipsRemoved int64  `json:"payslips_removed"`
}

// ========== PAYSLIP DTOs ==========

// AttendanceOverride replaces the classified status of one date before a
// single-payslip recompute. Applied as an audited manual attendance edit.
type AttendanceOverride struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type EditPayslipRequest struct {
	Overrides []AttendanceOverride `json:"attendance_overrides"`
	Reason    string               `json:"reason"`
}

func (r *EditPayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	for _, o := range r.Overrides {
		if _, ok := validator.IsValidDate(o.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "attendance_overrides", Message: "each date must be YYYY-MM-DD"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID          string `json:"id"`
	RunID       string `json:"run_id"`
	EmployeeID  string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`

	WorkingDays int               `json:"working_days"`
	PaidDays    decimal.Decimal   `json:"paid_days"`
	Attendance  AttendanceSummary `json:"attendance"`

	FixedComponents Components `json:"fixed_components"`
	Earnings        Components `json:"earnings"`

	Statutory         StatutoryDeductions `json:"statutory"`
	RuleDeductions    []RuleDeduction     `json:"rule_deductions"`
	AdvanceDeduction  decimal.Decimal     `json:"advance_deduction"`
	OneTimeDeductions []OneTimeItem       `json:"one_time_deductions"`
	OtherDeduction    decimal.Decimal     `json:"other_deduction"`

	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	IsManuallyEdited bool `json:"is_manually_edited"`
}

// ========== STATUTORY DTOs ==========

type StatutoryConfigResponse struct {
	ID                 string          `json:"id"`
	PFEnabled          bool            `json:"pf_enabled"`
	PFWageCeiling      decimal.Decimal `json:"pf_wage_ceiling"`
	PFEmployeePercent  decimal.Decimal `json:"pf_employee_percent"`
	ESIEnabled         bool            `json:"esi_enabled"`
	ESIWageCeiling     decimal.Decimal `json:"esi_wage_ceiling"`
	ESIEmployeePercent decimal.Decimal `json:"esi_employee_percent"`
	PTSlabs            []PTSlab        `json:"pt_slabs"`
}

type UpdateStatutoryConfigRequest struct {
	PFEnabled          *bool            `json:"pf_enabled,omitempty"`
	PFWageCeiling      *decimal.Decimal `json:"pf_wage_ceiling,omitempty"`
	PFEmployeePercent  *decimal.Decimal `json:"pf_employee_percent,omitempty"`
	ESIEnabled         *bool            `json:"esi_enabled,omitempty"`
	ESIWageCeiling     *decimal.Decimal `json:"esi_wage_ceiling,omitempty"`
	ESIEmployeePercent *decimal.Decimal `json:"esi_employee_percent,omitempty"`
	PTSlabs            []PTSlab         `json:"pt_slabs,omitempty"`
}

func (r *UpdateStatutoryConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PFWageCeiling != nil && r.PFWageCeiling.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "pf_wage_ceiling", Message: "must be non-negative"})
	}
	if r.PFEmployeePercent != nil && r.PFEmployeePercent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "pf_employee_percent", Message: "must be non-negative"})
	}
	if r.ESIWageCeiling != nil && r.ESIWageCeiling.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "esi_wage_ceiling", Message: "must be non-negative"})
	}
	if r.ESIEmployeePercent != nil && r.ESIEmployeePercent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "esi_employee_percent", Message: "must be non-negative"})
	}
	for i, slab := range r.PTSlabs {
		if slab.Min.IsNegative() || slab.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "pt_slabs", Message: "min and amount must be non-negative"})
			break
		}
		// Max zero marks the unbounded top slab; otherwise max must exceed min.
		if !slab.Max.IsZero() && !slab.Max.GreaterThan(slab.Min) {
			errs = append(errs, validator.ValidationError{Field: "pt_slabs", Message: "max must exceed min (or be 0 for unbounded)"})
			break
		}
		if slab.Max.IsZero() && i != len(r.PTSlabs)-1 {
			errs = append(errs, validator.ValidationError{Field: "pt_slabs", Message: "only the last slab may be unbounded"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== CUSTOM RULE DTOs ==========

type CreateCustomRuleRequest struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ConditionType      string          `json:"condition_type"`
	Operator           string          `json:"operator"`
	Threshold          int             `json:"threshold"`
	ActionType         string          `json:"action_type"`
	Value              decimal.Decimal `json:"value"`
	ApplyPerOccurrence bool            `json:"apply_per_occurrence"`
}

func (r *CreateCustomRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !ConditionType(r.ConditionType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "condition_type", Message: "is not a valid condition type"})
	}
	if !Operator(r.Operator).Valid() {
		errs = append(errs, validator.ValidationError{Field: "operator", Message: "is not a valid operator"})
	}
	if r.Threshold < 0 {
		errs = append(errs, validator.ValidationError{Field: "threshold", Message: "must be non-negative"})
	}
	if !ActionType(r.ActionType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "action_type", Message: "is not a valid action type"})
	}
	if r.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCustomRuleRequest struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	ConditionType      *string          `json:"condition_type,omitempty"`
	Operator           *string          `json:"operator,omitempty"`
	Threshold          *int             `json:"threshold,omitempty"`
	ActionType         *string          `json:"action_type,omitempty"`
	Value              *decimal.Decimal `json:"value,omitempty"`
	ApplyPerOccurrence *bool            `json:"apply_per_occurrence,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

func (r *UpdateCustomRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ConditionType != nil && !ConditionType(*r.ConditionType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "condition_type", Message: "is not a valid condition type"})
	}
	if r.Operator != nil && !Operator(*r.Operator).Valid() {
		errs = append(errs, validator.ValidationError{Field: "operator", Message: "is not a valid operator"})
	}
	if r.Threshold != nil && *r.Threshold < 0 {
		errs = append(errs, validator.ValidationError{Field: "threshold", Message: "must be non-negative"})
	}
	if r.ActionType != nil && !ActionType(*r.ActionType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "action_type", Message: "is not a valid action type"})
	}
	if r.Value != nil && r.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADVANCE DTOs ==========

type CreateAdvanceRequest struct {
	EmployeeID    string          `json:"employee_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	StartMonth    int             `json:"start_month"`
	StartYear     int             `json:"start_year"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.TotalAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "total_amount", Message: "must be positive"})
	}
	if !r.MonthlyAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "monthly_amount", Message: "must be positive"})
	}
	if r.MonthlyAmount.GreaterThan(r.TotalAmount) {
		errs = append(errs, validator.ValidationError{Field: "monthly_amount", Message: "must not exceed total_amount"})
	}
	if !validator.IsValidMonth(r.StartMonth) {
		errs = append(errs, validator.ValidationError{Field: "start_month", Message: "must be 1 through 12"})
	}
	if !validator.IsValidYear(r.StartYear) {
		errs = append(errs, validator.ValidationError{Field: "start_year", Message: "must be a valid year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	MonthlyAmount   decimal.Decimal `json:"monthly_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	StartMonth      int             `json:"start_month"`
	StartYear       int             `json:"start_year"`
	IsActive        bool            `json:"is_active"`
}

type CreateOneTimeDeductionRequest struct {
	EmployeeID string          `json:"employee_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Reason     string          `json:"reason"`
}

func (r *CreateOneTimeDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be 1 through 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
