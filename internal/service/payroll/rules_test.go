package payroll

import (
	"testing"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateRulesOperators(t *testing.T) {
	agg := attendance.MonthlyAggregate{LateCount: 3}
	gross := decimal.NewFromInt(30000)

	rule := payroll.CustomRule{
		ID:            "r1",
		Name:          "late penalty",
		ConditionType: payroll.ConditionLateCount,
		ActionType:    payroll.ActionFixedDeduction,
		Value:         decimal.NewFromInt(100),
		IsActive:      true,
	}

	tests := []struct {
		name      string
		op        payroll.Operator
		threshold int
		fires     bool
	}{
		{"greater_than met", payroll.OperatorGreaterThan, 2, true},
		{"greater_than at threshold", payroll.OperatorGreaterThan, 3, false},
		{"greater_equals at threshold", payroll.OperatorGreaterEquals, 3, true},
		{"greater_equals above", payroll.OperatorGreaterEquals, 4, false},
		{"equals exact", payroll.OperatorEquals, 3, true},
		{"equals off by one", payroll.OperatorEquals, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rule
			r.Operator = tt.op
			r.Threshold = tt.threshold
			fired := EvaluateRules([]payroll.CustomRule{r}, agg, gross, 30)
			if tt.fires {
				assert.Len(t, fired, 1)
			} else {
				assert.Empty(t, fired)
			}
		})
	}
}

func TestEvaluateRulesPerOccurrence(t *testing.T) {
	agg := attendance.MonthlyAggregate{LateCount: 5}
	gross := decimal.NewFromInt(30000)

	base := payroll.CustomRule{
		ID:                 "r1",
		Name:               "late penalty",
		ConditionType:      payroll.ConditionLateCount,
		Threshold:          3,
		ActionType:         payroll.ActionFixedDeduction,
		Value:              decimal.NewFromInt(100),
		ApplyPerOccurrence: true,
		IsActive:           true,
	}

	t.Run("greater_than charges the excess", func(t *testing.T) {
		r := base
		r.Operator = payroll.OperatorGreaterThan
		fired := EvaluateRules([]payroll.CustomRule{r}, agg, gross, 30)
		require.Len(t, fired, 1)
		assert.Equal(t, 2, fired[0].Occurrences)
		assert.True(t, fired[0].Amount.Equal(decimal.NewFromInt(200)), "amount %s", fired[0].Amount)
	})

	t.Run("greater_equals includes the threshold occurrence", func(t *testing.T) {
		r := base
		r.Operator = payroll.OperatorGreaterEquals
		fired := EvaluateRules([]payroll.CustomRule{r}, agg, gross, 30)
		require.Len(t, fired, 1)
		assert.Equal(t, 3, fired[0].Occurrences)
		assert.True(t, fired[0].Amount.Equal(decimal.NewFromInt(300)), "amount %s", fired[0].Amount)
	})
}

func TestEvaluateRulesActionTypes(t *testing.T) {
	agg := attendance.MonthlyAggregate{AbsentCount: 2}
	gross := decimal.NewFromInt(30000)

	base := payroll.CustomRule{
		ID:            "r1",
		Name:          "absence rule",
		ConditionType: payroll.ConditionAbsentCount,
		Operator:      payroll.OperatorGreaterThan,
		Threshold:     1,
		IsActive:      true,
	}

	t.Run("percentage of gross", func(t *testing.T) {
		r := base
		r.ActionType = payroll.ActionPercentageDeduction
		r.Value = decimal.NewFromInt(5)
		fired := EvaluateRules([]payroll.CustomRule{r}, agg, gross, 30)
		require.Len(t, fired, 1)
		assert.True(t, fired[0].Amount.Equal(decimal.NewFromInt(1500)), "amount %s", fired[0].Amount)
	})

	t.Run("half day at day rate", func(t *testing.T) {
		r := base
		r.ActionType = payroll.ActionHalfDayDeduction
		r.Value = decimal.Zero // zero means one day
		fired := EvaluateRules([]payroll.CustomRule{r}, agg, gross, 30)
		require.Len(t, fired, 1)
		// (30000 / 30) * 0.5
		assert.True(t, fired[0].Amount.Equal(decimal.NewFromInt(500)), "amount %s", fired[0].Amount)
	})

	t.Run("full days", func(t *testing.T) {
		r := base
		r.ActionType = payroll.ActionFullDayDeduction
		r.Value = decimal.NewFromInt(2)
		fired := EvaluateRules([]payroll.CustomRule{r}, agg, gross, 30)
		require.Len(t, fired, 1)
		assert.True(t, fired[0].Amount.Equal(decimal.NewFromInt(2000)), "amount %s", fired[0].Amount)
	})
}

func TestEvaluateRulesStackAdditively(t *testing.T) {
	agg := attendance.MonthlyAggregate{LateCount: 4, AbsentWithoutLeave: 2}
	gross := decimal.NewFromInt(30000)

	rules := []payroll.CustomRule{
		{
			ID: "r1", Name: "late", ConditionType: payroll.ConditionLateCount,
			Operator: payroll.OperatorGreaterThan, Threshold: 3,
			ActionType: payroll.ActionFixedDeduction, Value: decimal.NewFromInt(250),
			IsActive: true,
		},
		{
			ID: "r2", Name: "awol", ConditionType: payroll.ConditionAbsentWithoutLeave,
			Operator: payroll.OperatorGreaterEquals, Threshold: 1,
			ActionType: payroll.ActionFixedDeduction, Value: decimal.NewFromInt(500),
			ApplyPerOccurrence: true, IsActive: true,
		},
		{
			ID: "r3", Name: "inactive", ConditionType: payroll.ConditionLateCount,
			Operator: payroll.OperatorGreaterThan, Threshold: 0,
			ActionType: payroll.ActionFixedDeduction, Value: decimal.NewFromInt(9999),
			IsActive: false,
		},
	}

	fired := EvaluateRules(rules, agg, gross, 30)
	require.Len(t, fired, 2)
	assert.True(t, fired[0].Amount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 2, fired[1].Occurrences)
	assert.True(t, fired[1].Amount.Equal(decimal.NewFromInt(1000)))
}

func TestDueInstallments(t *testing.T) {
	adv := payroll.SewaAdvance{
		ID:              "a1",
		EmployeeID:      "emp-1",
		TotalAmount:     decimal.NewFromInt(9000),
		MonthlyAmount:   decimal.NewFromInt(4000),
		RemainingAmount: decimal.NewFromInt(9000),
		StartMonth:      6,
		StartYear:       2026,
		IsActive:        true,
	}

	t.Run("before start month nothing is due", func(t *testing.T) {
		assert.Empty(t, DueInstallments([]payroll.SewaAdvance{adv}, 5, 2026))
	})

	t.Run("full installment while balance allows", func(t *testing.T) {
		due := DueInstallments([]payroll.SewaAdvance{adv}, 6, 2026)
		require.Len(t, due, 1)
		assert.True(t, due[0].Amount.Equal(decimal.NewFromInt(4000)))
	})

	t.Run("final installment clamps to remaining", func(t *testing.T) {
		last := adv
		last.RemainingAmount = decimal.NewFromInt(1000)
		due := DueInstallments([]payroll.SewaAdvance{last}, 8, 2026)
		require.Len(t, due, 1)
		assert.True(t, due[0].Amount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("exhausted and inactive advances contribute nothing", func(t *testing.T) {
		done := adv
		done.RemainingAmount = decimal.Zero
		inactive := adv
		inactive.IsActive = false
		assert.Empty(t, DueInstallments([]payroll.SewaAdvance{done, inactive}, 7, 2026))
	})
}
