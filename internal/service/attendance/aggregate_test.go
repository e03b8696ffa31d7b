package attendance

import (
	"testing"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func monthOf(year int, month time.Month, statuses map[int]attendance.DayStatus) []attendance.Day {
	days := make([]attendance.Day, 0, len(statuses))
	for dom, status := range statuses {
		days = append(days, attendance.Day{
			EmployeeID: "emp-1",
			Date:       time.Date(year, month, dom, 0, 0, 0, 0, time.UTC),
			Status:     status,
		})
	}
	return days
}

func fullMonth(year int, month time.Month, daysInMonth int, fill attendance.DayStatus) map[int]attendance.DayStatus {
	statuses := make(map[int]attendance.DayStatus, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		statuses[d] = fill
	}
	return statuses
}

func TestBuildAggregateFullAttendance(t *testing.T) {
	statuses := fullMonth(2026, time.June, 30, attendance.StatusPresent)

	agg := BuildAggregate(AggregateInput{
		Policy:      attendance.DefaultPolicy(),
		Days:        monthOf(2026, time.June, statuses),
		DaysInMonth: 30,
	})

	assert.Equal(t, 30, agg.WorkingDays)
	assert.Equal(t, 30, agg.OfficeDays)
	assert.True(t, agg.PaidDays.Equal(decimal.NewFromInt(30)))
	assert.Zero(t, agg.AbsentCount)
}

func TestBuildAggregateMissingDaysAreAbsent(t *testing.T) {
	// Only 28 of 30 dates have a classified record.
	statuses := fullMonth(2026, time.June, 28, attendance.StatusPresent)

	agg := BuildAggregate(AggregateInput{
		Policy:      attendance.DefaultPolicy(),
		Days:        monthOf(2026, time.June, statuses),
		DaysInMonth: 30,
	})

	assert.Equal(t, 2, agg.AbsentCount)
	assert.Equal(t, 2, agg.AbsentWithoutLeave)
	assert.True(t, agg.PaidDays.Equal(decimal.NewFromInt(28)), "paid %s", agg.PaidDays)
}

func TestBuildAggregateHalfDayFraction(t *testing.T) {
	statuses := fullMonth(2026, time.June, 30, attendance.StatusPresent)
	statuses[10] = attendance.StatusHalfDay

	agg := BuildAggregate(AggregateInput{
		Policy:      attendance.DefaultPolicy(),
		Days:        monthOf(2026, time.June, statuses),
		DaysInMonth: 30,
	})

	assert.Equal(t, 1, agg.HalfDayCount)
	assert.True(t, agg.PaidDays.Equal(decimal.NewFromFloat(29.5)), "paid %s", agg.PaidDays)
}

func TestBuildAggregateAbsentMultiplier(t *testing.T) {
	policy := attendance.DefaultPolicy()
	policy.AbsentDayMultiplier = decimal.NewFromFloat(1.5)

	statuses := fullMonth(2026, time.June, 30, attendance.StatusPresent)
	statuses[5] = attendance.StatusAbsent
	statuses[6] = attendance.StatusAbsent

	agg := BuildAggregate(AggregateInput{
		Policy:      policy,
		Days:        monthOf(2026, time.June, statuses),
		DaysInMonth: 30,
	})

	// 28 present; each absent removes an extra half day on top of itself.
	assert.Equal(t, 2, agg.AbsentCount)
	assert.True(t, agg.PaidDays.Equal(decimal.NewFromInt(27)), "paid %s", agg.PaidDays)
}

func TestBuildAggregatePaidDaysClampedAtZero(t *testing.T) {
	policy := attendance.DefaultPolicy()
	policy.AbsentDayMultiplier = decimal.NewFromInt(2)

	agg := BuildAggregate(AggregateInput{
		Policy:      policy,
		Days:        nil,
		DaysInMonth: 30,
	})

	assert.Equal(t, 30, agg.AbsentCount)
	assert.True(t, agg.PaidDays.IsZero())
}

func TestBuildAggregateLeavePricing(t *testing.T) {
	el := "EL"
	lwp := "LWP"
	types := map[string]leave.TypeRule{
		"EL":  {Code: "EL", IsPaid: true, AnnualQuota: decimal.NewFromInt(15)},
		"LWP": {Code: "LWP", IsPaid: false, DeductionPercent: decimal.NewFromInt(100)},
	}

	statuses := fullMonth(2026, time.June, 30, attendance.StatusPresent)
	days := monthOf(2026, time.June, statuses)
	for i := range days {
		switch days[i].Date.Day() {
		case 3, 4:
			days[i].Status = attendance.StatusLeave
			days[i].LeaveCode = &el
		case 5:
			days[i].Status = attendance.StatusLeave
			days[i].LeaveCode = &lwp
		}
	}

	t.Run("paid leave within balance", func(t *testing.T) {
		agg := BuildAggregate(AggregateInput{
			Policy:          attendance.DefaultPolicy(),
			Days:            days,
			LeaveTypes:      types,
			RemainingByCode: map[string]decimal.Decimal{"EL": decimal.NewFromInt(5)},
			DaysInMonth:     30,
		})

		assert.Equal(t, 3, agg.LeaveDays)
		// 27 present + 2 paid EL; the LWP day is fully unpaid.
		assert.True(t, agg.PaidDays.Equal(decimal.NewFromInt(29)), "paid %s", agg.PaidDays)
		assert.True(t, agg.UnpaidLeaveDays.Equal(decimal.NewFromInt(1)))
	})

	t.Run("overdrawn paid leave priced as unpaid", func(t *testing.T) {
		agg := BuildAggregate(AggregateInput{
			Policy:          attendance.DefaultPolicy(),
			Days:            days,
			LeaveTypes:      types,
			RemainingByCode: map[string]decimal.Decimal{"EL": decimal.NewFromInt(1)},
			DaysInMonth:     30,
		})

		// Only one EL day is covered; the second overdraws and goes unpaid.
		assert.True(t, agg.PaidDays.Equal(decimal.NewFromInt(28)), "paid %s", agg.PaidDays)
		assert.True(t, agg.UnpaidLeaveDays.Equal(decimal.NewFromInt(2)))
	})

	t.Run("unknown leave code fully unpaid", func(t *testing.T) {
		agg := BuildAggregate(AggregateInput{
			Policy:          attendance.DefaultPolicy(),
			Days:            days,
			LeaveTypes:      map[string]leave.TypeRule{},
			RemainingByCode: nil,
			DaysInMonth:     30,
		})

		assert.True(t, agg.PaidDays.Equal(decimal.NewFromInt(27)), "paid %s", agg.PaidDays)
		assert.True(t, agg.UnpaidLeaveDays.Equal(decimal.NewFromInt(3)))
	})
}

func TestBuildAggregatePartialUnpaidLeave(t *testing.T) {
	half := "HPL"
	types := map[string]leave.TypeRule{
		"HPL": {Code: "HPL", IsPaid: false, DeductionPercent: decimal.NewFromInt(50)},
	}

	statuses := fullMonth(2026, time.June, 30, attendance.StatusPresent)
	days := monthOf(2026, time.June, statuses)
	for i := range days {
		if days[i].Date.Day() == 10 {
			days[i].Status = attendance.StatusLeave
			days[i].LeaveCode = &half
		}
	}

	agg := BuildAggregate(AggregateInput{
		Policy:      attendance.DefaultPolicy(),
		Days:        days,
		LeaveTypes:  types,
		DaysInMonth: 30,
	})

	assert.True(t, agg.PaidDays.Equal(decimal.NewFromFloat(29.5)), "paid %s", agg.PaidDays)
	assert.True(t, agg.UnpaidLeaveDays.Equal(decimal.NewFromFloat(0.5)))
}
