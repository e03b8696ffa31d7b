package leave

import (
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// CarryForwardOpening computes the opening balance carried into the next
// financial year for one leave code: min(remaining, max accumulation) for
// carry-forward codes, forfeited entirely otherwise.
func CarryForwardOpening(rule leave.TypeRule, remaining decimal.Decimal) decimal.Decimal {
	if !rule.CarryForward {
		return decimal.Zero
	}
	if remaining.IsNegative() {
		return decimal.Zero
	}
	if remaining.GreaterThan(rule.MaxAccumulation) {
		return rule.MaxAccumulation
	}
	return remaining
}

// FinancialYearFor returns the calendar year the financial year containing
// date starts in.
func FinancialYearFor(date time.Time, cfg leave.PolicyConfig) int {
	start := time.Date(date.Year(), time.Month(cfg.FinancialYearStartMonth), cfg.FinancialYearStartDay, 0, 0, 0, 0, date.Location())
	if date.Before(start) {
		return date.Year() - 1
	}
	return date.Year()
}

// EvaluateSundayPenalties finds weekly-off days that the Sunday rule converts
// into leave-consuming days: any weekly-off whose trailing 7-day window holds
// more leave days than the weekly threshold, or whose trailing 30-day window
// exceeds the monthly threshold. The penalty consumes the code of the nearest
// leave day in the window.
func EvaluateSundayPenalties(rule leave.SundayRule, days []attendance.Day) []leave.SundayPenalty {
	if !rule.Enabled {
		return nil
	}

	type leaveDay struct {
		date time.Time
		code string
	}
	var leaveDays []leaveDay
	var offDays []attendance.Day
	for _, d := range days {
		switch d.Status {
		case attendance.StatusLeave:
			code := ""
			if d.LeaveCode != nil {
				code = *d.LeaveCode
			}
			leaveDays = append(leaveDays, leaveDay{date: d.Date, code: code})
		case attendance.StatusWeeklyOff:
			offDays = append(offDays, d)
		}
	}
	if len(leaveDays) == 0 {
		return nil
	}

	countWindow := func(end time.Time, daysBack int) (int, string) {
		start := end.AddDate(0, 0, -(daysBack - 1))
		count := 0
		code := ""
		var nearest time.Time
		for _, ld := range leaveDays {
			if ld.date.Before(start) || ld.date.After(end) {
				continue
			}
			count++
			if code == "" || ld.date.After(nearest) {
				nearest = ld.date
				code = ld.code
			}
		}
		return count, code
	}

	var penalties []leave.SundayPenalty
	for _, off := range offDays {
		if weekly, code := countWindow(off.Date, 7); weekly > rule.WeeklyThreshold {
			penalties = append(penalties, leave.SundayPenalty{
				EmployeeID:  off.EmployeeID,
				Date:        off.Date,
				LeaveCode:   code,
				WindowCount: weekly,
				Window:      "weekly",
			})
			continue
		}
		if monthly, code := countWindow(off.Date, 30); monthly > rule.MonthlyThreshold {
			penalties = append(penalties, leave.SundayPenalty{
				EmployeeID:  off.EmployeeID,
				Date:        off.Date,
				LeaveCode:   code,
				WindowCount: monthly,
				Window:      "monthly",
			})
		}
	}

	return penalties
}
