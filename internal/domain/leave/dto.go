package leave

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== TYPE RULE DTOs ==========

type CreateTypeRuleRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	IsPaid           bool            `json:"is_paid"`
	DeductionPercent decimal.Decimal `json:"deduction_percent"`
	AnnualQuota      decimal.Decimal `json:"annual_quota"`
	CarryForward     bool            `json:"carry_forward"`
	MaxAccumulation  decimal.Decimal `json:"max_accumulation"`
}

func (r *CreateTypeRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	hundred := decimal.NewFromInt(100)
	if r.DeductionPercent.IsNegative() || r.DeductionPercent.GreaterThan(hundred) {
		errs = append(errs, validator.ValidationError{Field: "deduction_percent", Message: "must be between 0 and 100"})
	}
	if r.IsPaid && !r.DeductionPercent.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "deduction_percent", Message: "must be 0 for paid leave"})
	}
	if r.AnnualQuota.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "annual_quota", Message: "must be non-negative"})
	}
	if r.MaxAccumulation.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "max_accumulation", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTypeRuleRequest struct {
	Name             *string          `json:"name,omitempty"`
	IsPaid           *bool            `json:"is_paid,omitempty"`
	DeductionPercent *decimal.Decimal `json:"deduction_percent,omitempty"`
	AnnualQuota      *decimal.Decimal `json:"annual_quota,omitempty"`
	CarryForward     *bool            `json:"carry_forward,omitempty"`
	MaxAccumulation  *decimal.Decimal `json:"max_accumulation,omitempty"`
	IsActive         *bool            `json:"is_active,omitempty"`
}

func (r *UpdateTypeRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	hundred := decimal.NewFromInt(100)
	if r.DeductionPercent != nil && (r.DeductionPercent.IsNegative() || r.DeductionPercent.GreaterThan(hundred)) {
		errs = append(errs, validator.ValidationError{Field: "deduction_percent", Message: "must be between 0 and 100"})
	}
	if r.AnnualQuota != nil && r.AnnualQuota.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "annual_quota", Message: "must be non-negative"})
	}
	if r.MaxAccumulation != nil && r.MaxAccumulation.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "max_accumulation", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TypeRuleResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	IsPaid           bool            `json:"is_paid"`
	DeductionPercent decimal.Decimal `json:"deduction_percent"`
	AnnualQuota      decimal.Decimal `json:"annual_quota"`
	CarryForward     bool            `json:"carry_forward"`
	MaxAccumulation  decimal.Decimal `json:"max_accumulation"`
	IsActive         bool            `json:"is_active"`
}

// ========== POLICY CONFIG DTOs ==========

type PolicyConfigResponse struct {
	ID                      string     `json:"id"`
	FinancialYearStartMonth int        `json:"financial_year_start_month"`
	FinancialYearStartDay   int        `json:"financial_year_start_day"`
	Sunday                  SundayRule `json:"sunday_rule"`
}

type UpdatePolicyConfigRequest struct {
	FinancialYearStartMonth *int        `json:"financial_year_start_month,omitempty"`
	FinancialYearStartDay   *int        `json:"financial_year_start_day,omitempty"`
	Sunday                  *SundayRule `json:"sunday_rule,omitempty"`
}

func (r *UpdatePolicyConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FinancialYearStartMonth != nil && !validator.IsValidMonth(*r.FinancialYearStartMonth) {
		errs = append(errs, validator.ValidationError{Field: "financial_year_start_month", Message: "must be 1 through 12"})
	}
	if r.FinancialYearStartDay != nil && (*r.FinancialYearStartDay < 1 || *r.FinancialYearStartDay > 28) {
		errs = append(errs, validator.ValidationError{Field: "financial_year_start_day", Message: "must be 1 through 28"})
	}
	if r.Sunday != nil {
		if r.Sunday.WeeklyThreshold < 0 {
			errs = append(errs, validator.ValidationError{Field: "sunday_rule.weekly_threshold", Message: "must be non-negative"})
		}
		if r.Sunday.MonthlyThreshold < 0 {
			errs = append(errs, validator.ValidationError{Field: "sunday_rule.monthly_threshold", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== BALANCE DTOs ==========

type BalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	LeaveCode  string          `json:"leave_code"`
	Year       int             `json:"year"`
	Opening    decimal.Decimal `json:"opening"`
	Quota      decimal.Decimal `json:"quota"`
	Consumed   decimal.Decimal `json:"consumed"`
	Remaining  decimal.Decimal `json:"remaining"`
	Overdrawn  bool            `json:"overdrawn"`
}
