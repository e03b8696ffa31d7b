package payroll

import (
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/employee"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/salary"
	attendancesvc "github.com/Jaidataanalytics/hrms-sub000/internal/service/attendance"
	"github.com/shopspring/decimal"
)

// EmployeeInput is everything one employee's payslip computation needs,
// gathered before the pure assembly step.
type EmployeeInput struct {
	Employee  employee.Employee
	Structure salary.Structure
	Days      []attendance.Day
	// RemainingByCode is the leave balance entering the period.
	RemainingByCode map[string]decimal.Decimal
	// AdvanceDue is the ledger-driven installment total for the period.
	AdvanceDue decimal.Decimal
	OneTime    []payroll.OneTimeItem
}

// DaysInMonth returns the calendar length of the period.
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Assemble computes one payslip from a frozen rules snapshot. It is pure:
// the same snapshot and inputs always produce the same payslip, which is
// what makes recomputation reproducible.
func Assemble(snapshot *payroll.RulesSnapshot, month, year int, in EmployeeInput) (payroll.Payslip, []string) {
	var warnings []string

	leaveTypes := make(map[string]leave.TypeRule, len(snapshot.LeaveTypes))
	for _, lt := range snapshot.LeaveTypes {
		leaveTypes[lt.Code] = lt
	}

	agg := attendancesvc.BuildAggregate(attendancesvc.AggregateInput{
		Policy:          snapshot.AttendancePolicy,
		Days:            in.Days,
		LeaveTypes:      leaveTypes,
		RemainingByCode: in.RemainingByCode,
		DaysInMonth:     DaysInMonth(month, year),
	})

	earnings := in.Structure.Components.Prorate(agg.PaidDays, agg.WorkingDays)
	gross := earnings.Total()

	earnedBasicDA := earnings.Basic.Add(earnings.DA)
	statutory, statWarnings := CalculateStatutory(snapshot.Statutory, earnedBasicDA, gross,
		in.Structure.EPFApplicable, in.Structure.ESIApplicable)
	warnings = append(warnings, statWarnings...)

	ruleDeductions := EvaluateRules(snapshot.CustomRules, agg, gross, agg.WorkingDays)

	// The advance ledger supersedes the structure's fixed installment; the
	// fixed amount only applies for employees with no tracked advance.
	advance := in.AdvanceDue
	if advance.IsZero() && in.Structure.SewaApplicable && in.Structure.SewaAdvance.IsPositive() {
		advance = in.Structure.SewaAdvance
	}

	total := statutory.Total().Add(advance).Add(in.Structure.OtherDeduction)
	for _, rd := range ruleDeductions {
		total = total.Add(rd.Amount)
	}
	for _, item := range in.OneTime {
		total = total.Add(item.Amount)
	}

	slip := payroll.Payslip{
		EmployeeID:  in.Employee.ID,
		Month:       month,
		Year:        year,
		WorkingDays: agg.WorkingDays,
		PaidDays:    agg.PaidDays,
		Attendance: payroll.AttendanceSummary{
			OfficeDays:      agg.OfficeDays,
			LeaveDays:       agg.LeaveDays,
			WFHDays:         agg.WFHDays,
			TourDays:        agg.TourDays,
			HalfDays:        agg.HalfDayCount,
			AbsentDays:      agg.AbsentCount,
			LateCount:       agg.LateCount,
			UnpaidLeaveDays: agg.UnpaidLeaveDays,
		},
		FixedComponents:   in.Structure.Components,
		Earnings:          earnings,
		Statutory:         statutory,
		RuleDeductions:    ruleDeductions,
		AdvanceDeduction:  advance,
		OneTimeDeductions: in.OneTime,
		OtherDeduction:    in.Structure.OtherDeduction,
		GrossSalary:       gross.Round(2),
		TotalDeductions:   total.Round(2),
		NetSalary:         gross.Sub(total).Round(2),
	}

	return slip, warnings
}
