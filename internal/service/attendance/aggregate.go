package attendance

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// AggregateInput carries one employee's classified month plus the leave
// facts needed to price each day.
type AggregateInput struct {
	Policy attendance.Policy
	Days   []attendance.Day
	// LeaveTypes keyed by leave code; taken from the run's rules snapshot.
	LeaveTypes map[string]leave.TypeRule
	// RemainingByCode is the leave balance entering the period. Paid leave
	// beyond the remaining balance is priced as unpaid (overdrawn leave is
	// permitted but flagged).
	RemainingByCode map[string]decimal.Decimal
	DaysInMonth     int
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// BuildAggregate folds a month of classified days into the counters the
// rule engine and payslip assembler consume. Dates with no record count as
// absent. Paid days = working days minus absence penalties and unpaid leave
// fractions, clamped at zero.
func BuildAggregate(in AggregateInput) attendance.MonthlyAggregate {
	agg := attendance.MonthlyAggregate{
		WorkingDays:     in.DaysInMonth,
		PaidDays:        decimal.Zero,
		UnpaidLeaveDays: decimal.Zero,
	}

	remaining := make(map[string]decimal.Decimal, len(in.RemainingByCode))
	for code, bal := range in.RemainingByCode {
		remaining[code] = bal
	}

	extraAbsencePenalty := decimal.Zero
	seen := 0

	for _, day := range in.Days {
		seen++
		if day.IsLate {
			agg.LateCount++
		}
		if day.EarlyDeparture {
			agg.EarlyDepartureCount++
		}

		switch day.Status {
		case attendance.StatusPresent:
			agg.OfficeDays++
			agg.PaidDays = agg.PaidDays.Add(one)
		case attendance.StatusWFH:
			agg.WFHDays++
			agg.PaidDays = agg.PaidDays.Add(one)
		case attendance.StatusTour:
			agg.TourDays++
			agg.PaidDays = agg.PaidDays.Add(one)
		case attendance.StatusHoliday:
			agg.HolidayDays++
			agg.PaidDays = agg.PaidDays.Add(one)
		case attendance.StatusWeeklyOff:
			agg.WeeklyOffDays++
			agg.PaidDays = agg.PaidDays.Add(one)
		case attendance.StatusHalfDay:
			agg.HalfDayCount++
			paidFraction := one.Sub(in.Policy.HalfDayDeductionPercent.Div(hundred))
			agg.PaidDays = agg.PaidDays.Add(paidFraction)
		case attendance.StatusLeave:
			agg.LeaveDays++
			paid, unpaid := priceLeaveDay(day, in.LeaveTypes, remaining)
			agg.PaidDays = agg.PaidDays.Add(paid)
			agg.UnpaidLeaveDays = agg.UnpaidLeaveDays.Add(unpaid)
		case attendance.StatusAbsent:
			agg.AbsentCount++
			if day.LeaveCode == nil {
				agg.AbsentWithoutLeave++
			}
			if in.Policy.AbsentDayMultiplier.GreaterThan(one) {
				extraAbsencePenalty = extraAbsencePenalty.Add(in.Policy.AbsentDayMultiplier.Sub(one))
			}
		}
	}

	// Dates with no classified record are absences.
	for missing := in.DaysInMonth - seen; missing > 0; missing-- {
		agg.AbsentCount++
		agg.AbsentWithoutLeave++
		if in.Policy.AbsentDayMultiplier.GreaterThan(one) {
			extraAbsencePenalty = extraAbsencePenalty.Add(in.Policy.AbsentDayMultiplier.Sub(one))
		}
	}

	agg.PaidDays = agg.PaidDays.Sub(extraAbsencePenalty)
	if agg.PaidDays.IsNegative() {
		agg.PaidDays = decimal.Zero
	}

	return agg
}

// priceLeaveDay returns (paid fraction, unpaid fraction) for one leave day.
// Paid leave consumes remaining balance; once overdrawn it is priced as a
// fully unpaid day. Unknown codes are fully unpaid.
func priceLeaveDay(day attendance.Day, types map[string]leave.TypeRule, remaining map[string]decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if day.LeaveCode == nil {
		return decimal.Zero, one
	}
	rule, ok := types[*day.LeaveCode]
	if !ok {
		return decimal.Zero, one
	}

	if rule.IsPaid {
		bal := remaining[rule.Code]
		if bal.GreaterThanOrEqual(one) {
			remaining[rule.Code] = bal.Sub(one)
			return one, decimal.Zero
		}
		return decimal.Zero, one
	}

	unpaidFraction := rule.DeductionPercent.Div(hundred)
	return one.Sub(unpaidFraction), unpaidFraction
}
