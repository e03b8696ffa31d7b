package salary

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EditStructureRequest struct {
	Components     payroll.Components `json:"components"`
	EPFApplicable  bool               `json:"epf_applicable"`
	ESIApplicable  bool               `json:"esi_applicable"`
	SewaApplicable bool               `json:"sewa_applicable"`
	SewaAdvance    decimal.Decimal    `json:"sewa_advance"`
	OtherDeduction decimal.Decimal    `json:"other_deduction"`
	EffectiveFrom  string             `json:"effective_from"`
	Reason         string             `json:"reason"`
}

func (r *EditStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]decimal.Decimal{
		"components.basic":             r.Components.Basic,
		"components.da":                r.Components.DA,
		"components.hra":               r.Components.HRA,
		"components.conveyance":        r.Components.Conveyance,
		"components.grade_pay":         r.Components.GradePay,
		"components.other_allowance":   r.Components.OtherAllowance,
		"components.medical_allowance": r.Components.MedicalAllowance,
		"sewa_advance":                 r.SewaAdvance,
		"other_deduction":              r.OtherDeduction,
	} {
		if v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	if r.Components.Total().IsZero() {
		errs = append(errs, validator.ValidationError{Field: "components", Message: "at least one component must be positive"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideChangeRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

func (r *DecideChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Approve && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required when rejecting"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StructureResponse struct {
	ID             string             `json:"id"`
	EmployeeID     string             `json:"employee_id"`
	Components     payroll.Components `json:"components"`
	TotalFixed     decimal.Decimal    `json:"total_fixed"`
	EPFApplicable  bool               `json:"epf_applicable"`
	ESIApplicable  bool               `json:"esi_applicable"`
	SewaApplicable bool               `json:"sewa_applicable"`
	SewaAdvance    decimal.Decimal    `json:"sewa_advance"`
	OtherDeduction decimal.Decimal    `json:"other_deduction"`
	EffectiveFrom  string             `json:"effective_from"`
}

type EditStructureResponse struct {
	// Applied is true when the edit took effect immediately; false when a
	// change request was created instead.
	Applied         bool               `json:"applied"`
	Structure       *StructureResponse `json:"structure,omitempty"`
	ChangeRequestID *string            `json:"change_request_id,omitempty"`
}

type ChangeRequestResponse struct {
	ID             string             `json:"id"`
	EmployeeID     string             `json:"employee_id"`
	Proposed       StructureResponse  `json:"proposed"`
	Previous       *StructureResponse `json:"previous,omitempty"`
	Reason         string             `json:"reason"`
	RequestedBy    string             `json:"requested_by"`
	Status         string             `json:"status"`
	DecidedBy      *string            `json:"decided_by,omitempty"`
	DecisionReason *string            `json:"decision_reason,omitempty"`
}
