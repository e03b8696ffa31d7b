package payroll

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EvaluateRules fires every active custom rule against one employee's
// monthly aggregate. Rules are independent: each fired rule contributes its
// own deduction line and amounts simply add up.
func EvaluateRules(rules []payroll.CustomRule, agg attendance.MonthlyAggregate, gross decimal.Decimal, workingDays int) []payroll.RuleDeduction {
	var fired []payroll.RuleDeduction
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}

		value := aggregateValue(rule.ConditionType, agg)
		if !conditionMet(rule.Operator, value, rule.Threshold) {
			continue
		}

		occurrences := 1
		if rule.ApplyPerOccurrence {
			occurrences = occurrenceCount(rule.Operator, value, rule.Threshold)
		}
		if occurrences < 1 {
			continue
		}

		amount := actionAmount(rule, gross, workingDays).
			Mul(decimal.NewFromInt(int64(occurrences))).Round(2)

		fired = append(fired, payroll.RuleDeduction{
			RuleID:      rule.ID,
			RuleName:    rule.Name,
			Occurrences: occurrences,
			Amount:      amount,
		})
	}
	return fired
}

func aggregateValue(cond payroll.ConditionType, agg attendance.MonthlyAggregate) int {
	switch cond {
	case payroll.ConditionLateCount:
		return agg.LateCount
	case payroll.ConditionAbsentCount:
		return agg.AbsentCount
	case payroll.ConditionAbsentWithoutLeave:
		return agg.AbsentWithoutLeave
	case payroll.ConditionEarlyDepartureCount:
		return agg.EarlyDepartureCount
	case payroll.ConditionHalfDayCount:
		return agg.HalfDayCount
	}
	return 0
}

func conditionMet(op payroll.Operator, value, threshold int) bool {
	switch op {
	case payroll.OperatorGreaterThan:
		return value > threshold
	case payroll.OperatorGreaterEquals:
		return value >= threshold
	case payroll.OperatorEquals:
		return value == threshold
	}
	return false
}

// occurrenceCount is the number of occurrences past the threshold: for
// greater_than the excess, for greater_equals the excess plus the threshold
// occurrence itself, for equals always one.
func occurrenceCount(op payroll.Operator, value, threshold int) int {
	switch op {
	case payroll.OperatorGreaterThan:
		return value - threshold
	case payroll.OperatorGreaterEquals:
		return value - threshold + 1
	case payroll.OperatorEquals:
		return 1
	}
	return 0
}

// actionAmount is the per-occurrence deduction. Day-based actions price a day
// at gross / working days; a zero value means one day.
func actionAmount(rule payroll.CustomRule, gross decimal.Decimal, workingDays int) decimal.Decimal {
	switch rule.ActionType {
	case payroll.ActionPercentageDeduction:
		return gross.Mul(rule.Value).Div(hundred)
	case payroll.ActionFixedDeduction:
		return rule.Value
	case payroll.ActionHalfDayDeduction:
		return dayRate(gross, workingDays).Mul(decimal.NewFromFloat(0.5)).Mul(dayCount(rule.Value))
	case payroll.ActionFullDayDeduction:
		return dayRate(gross, workingDays).Mul(dayCount(rule.Value))
	}
	return decimal.Zero
}

func dayRate(gross decimal.Decimal, workingDays int) decimal.Decimal {
	if workingDays <= 0 {
		return decimal.Zero
	}
	return gross.Div(decimal.NewFromInt(int64(workingDays)))
}

func dayCount(value decimal.Decimal) decimal.Decimal {
	if value.IsZero() {
		return decimal.NewFromInt(1)
	}
	return value
}
