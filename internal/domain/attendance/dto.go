package attendance

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CLASSIFICATION DTOs ==========

type ClassifyDayRequest struct {
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date"` // "2006-01-02"
	Punches    []string `json:"punches,omitempty"`
	IsHoliday  bool     `json:"is_holiday,omitempty"`
	LeaveCode  *string  `json:"leave_code,omitempty"`
	OnTour     bool     `json:"on_tour,omitempty"`
	WFHGranted bool     `json:"wfh_granted,omitempty"`
}

func (r *ClassifyDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	for _, p := range r.Punches {
		if _, ok := validator.IsValidClockTime(p); !ok {
			errs = append(errs, validator.ValidationError{Field: "punches", Message: "each punch must be HH:MM"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ManualEditRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`
}

func (r *ManualEditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if !DayStatus(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a valid attendance status"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required for manual edits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Date           string  `json:"date"`
	Source         string  `json:"source"`
	Status         string  `json:"status"`
	LeaveCode      *string `json:"leave_code"`
	FirstIn        *string `json:"first_in"`
	LastOut        *string `json:"last_out"`
	TotalHours     float64 `json:"total_hours"`
	IsLate         bool    `json:"is_late"`
	LateMinutes    int     `json:"late_minutes"`
	EarlyDeparture bool    `json:"early_departure"`
	ManuallyEdited bool    `json:"manually_edited"`
}

// ========== POLICY DTOs ==========

type PolicyResponse struct {
	ID                      string          `json:"id"`
	GraceCutoff             string          `json:"grace_cutoff"`
	EarlyOutCutoff          string          `json:"early_out_cutoff"`
	MinHoursFullDay         float64         `json:"min_hours_full_day"`
	MinHoursHalfDay         float64         `json:"min_hours_half_day"`
	HalfDayDeductionPercent decimal.Decimal `json:"half_day_deduction_percent"`
	AbsentDayMultiplier     decimal.Decimal `json:"absent_day_multiplier"`
	WeeklyOffDay            int             `json:"weekly_off_day"`
}

type UpdatePolicyRequest struct {
	GraceCutoff             *string          `json:"grace_cutoff,omitempty"`
	EarlyOutCutoff          *string          `json:"early_out_cutoff,omitempty"`
	MinHoursFullDay         *float64         `json:"min_hours_full_day,omitempty"`
	MinHoursHalfDay         *float64         `json:"min_hours_half_day,omitempty"`
	HalfDayDeductionPercent *decimal.Decimal `json:"half_day_deduction_percent,omitempty"`
	AbsentDayMultiplier     *decimal.Decimal `json:"absent_day_multiplier,omitempty"`
	WeeklyOffDay            *int             `json:"weekly_off_day,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GraceCutoff != nil {
		if _, ok := validator.IsValidClockTime(*r.GraceCutoff); !ok {
			errs = append(errs, validator.ValidationError{Field: "grace_cutoff", Message: "must be HH:MM"})
		}
	}
	if r.EarlyOutCutoff != nil {
		if _, ok := validator.IsValidClockTime(*r.EarlyOutCutoff); !ok {
			errs = append(errs, validator.ValidationError{Field: "early_out_cutoff", Message: "must be HH:MM"})
		}
	}
	if r.MinHoursFullDay != nil && *r.MinHoursFullDay <= 0 {
		errs = append(errs, validator.ValidationError{Field: "min_hours_full_day", Message: "must be positive"})
	}
	if r.MinHoursHalfDay != nil && *r.MinHoursHalfDay <= 0 {
		errs = append(errs, validator.ValidationError{Field: "min_hours_half_day", Message: "must be positive"})
	}
	if r.HalfDayDeductionPercent != nil &&
		(r.HalfDayDeductionPercent.IsNegative() || r.HalfDayDeductionPercent.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{Field: "half_day_deduction_percent", Message: "must be between 0 and 100"})
	}
	if r.AbsentDayMultiplier != nil && r.AbsentDayMultiplier.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{Field: "absent_day_multiplier", Message: "must be at least 1"})
	}
	if r.WeeklyOffDay != nil && (*r.WeeklyOffDay < 0 || *r.WeeklyOffDay > 6) {
		errs = append(errs, validator.ValidationError{Field: "weekly_off_day", Message: "must be 0 (Sunday) through 6 (Saturday)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
