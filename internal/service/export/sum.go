package export

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

func sumRules(deductions []payroll.RuleDeduction) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deductions {
		total = total.Add(d.Amount)
	}
	return total
}

func sumOneTime(items []payroll.OneTimeItem) decimal.Decimal {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(i.Amount)
	}
	return total
}
