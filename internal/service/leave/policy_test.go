package leave

import (
	"testing"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarryForwardOpening(t *testing.T) {
	el := leave.TypeRule{
		Code:            "EL",
		CarryForward:    true,
		MaxAccumulation: decimal.NewFromInt(8),
	}
	cl := leave.TypeRule{Code: "CL", CarryForward: false}

	tests := []struct {
		name      string
		rule      leave.TypeRule
		remaining decimal.Decimal
		want      decimal.Decimal
	}{
		{"capped at max accumulation", el, decimal.NewFromInt(10), decimal.NewFromInt(8)},
		{"under the cap carries as is", el, decimal.NewFromInt(5), decimal.NewFromInt(5)},
		{"negative balance carries nothing", el, decimal.NewFromInt(-2), decimal.Zero},
		{"non carry-forward forfeits", cl, decimal.NewFromInt(6), decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CarryForwardOpening(tt.rule, tt.remaining)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func TestFinancialYearFor(t *testing.T) {
	cfg := leave.DefaultPolicyConfig()

	assert.Equal(t, 2026, FinancialYearFor(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), cfg))
	assert.Equal(t, 2025, FinancialYearFor(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), cfg))
	assert.Equal(t, 2026, FinancialYearFor(time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC), cfg))
	assert.Equal(t, 2025, FinancialYearFor(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), cfg))
}

func sundayMonth(leaves []int, offs []int) []attendance.Day {
	cl := "CL"
	var days []attendance.Day
	for _, d := range leaves {
		days = append(days, attendance.Day{
			EmployeeID: "emp-1",
			Date:       time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC),
			Status:     attendance.StatusLeave,
			LeaveCode:  &cl,
		})
	}
	for _, d := range offs {
		days = append(days, attendance.Day{
			EmployeeID: "emp-1",
			Date:       time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC),
			Status:     attendance.StatusWeeklyOff,
		})
	}
	return days
}

func TestEvaluateSundayPenaltiesWeeklyWindow(t *testing.T) {
	rule := leave.SundayRule{Enabled: true, WeeklyThreshold: 2, MonthlyThreshold: 6}

	// June 2026: Sundays fall on 7, 14, 21, 28. Three leave days in the week
	// before the 7th trip the weekly threshold.
	days := sundayMonth([]int{2, 3, 4}, []int{7, 14, 21, 28})

	penalties := EvaluateSundayPenalties(rule, days)
	require.Len(t, penalties, 1)
	assert.Equal(t, 7, penalties[0].Date.Day())
	assert.Equal(t, "weekly", penalties[0].Window)
	assert.Equal(t, 3, penalties[0].WindowCount)
	assert.Equal(t, "CL", penalties[0].LeaveCode)
}

func TestEvaluateSundayPenaltiesMonthlyWindow(t *testing.T) {
	rule := leave.SundayRule{Enabled: true, WeeklyThreshold: 9, MonthlyThreshold: 6}

	// Seven leave days scattered so no single week trips the (raised) weekly
	// threshold, but the trailing 30 days of the last Sunday exceed monthly.
	days := sundayMonth([]int{1, 5, 9, 13, 17, 21, 25}, []int{28})

	penalties := EvaluateSundayPenalties(rule, days)
	require.Len(t, penalties, 1)
	assert.Equal(t, "monthly", penalties[0].Window)
	assert.Equal(t, 7, penalties[0].WindowCount)
}

func TestEvaluateSundayPenaltiesUnderThreshold(t *testing.T) {
	rule := leave.SundayRule{Enabled: true, WeeklyThreshold: 2, MonthlyThreshold: 6}

	days := sundayMonth([]int{2, 3}, []int{7, 14})

	assert.Empty(t, EvaluateSundayPenalties(rule, days))
}

func TestEvaluateSundayPenaltiesDisabled(t *testing.T) {
	rule := leave.SundayRule{Enabled: false, WeeklyThreshold: 0, MonthlyThreshold: 0}

	days := sundayMonth([]int{1, 2, 3, 4, 5}, []int{7})

	assert.Empty(t, EvaluateSundayPenalties(rule, days))
}

func TestEvaluateSundayPenaltiesNoLeaveDays(t *testing.T) {
	rule := leave.SundayRule{Enabled: true, WeeklyThreshold: 0, MonthlyThreshold: 0}

	days := sundayMonth(nil, []int{7, 14})

	assert.Empty(t, EvaluateSundayPenalties(rule, days))
}
