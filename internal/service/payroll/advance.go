package payroll

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// AdvanceInstallment is one advance's contribution to a period.
type AdvanceInstallment struct {
	Advance payroll.SewaAdvance
	Amount  decimal.Decimal
}

// DueInstallments returns the installments recoverable from the employee in
// the given period: every active advance whose recovery has started
// contributes min(monthly installment, remaining balance). Exhausted
// advances contribute nothing.
func DueInstallments(advances []payroll.SewaAdvance, month, year int) []AdvanceInstallment {
	var due []AdvanceInstallment
	for _, adv := range advances {
		if !adv.IsActive || !adv.StartedBy(month, year) {
			continue
		}
		if !adv.RemainingAmount.IsPositive() {
			continue
		}
		amount := adv.MonthlyAmount
		if adv.RemainingAmount.LessThan(amount) {
			amount = adv.RemainingAmount
		}
		due = append(due, AdvanceInstallment{Advance: adv, Amount: amount})
	}
	return due
}

// TotalDue sums the installments.
func TotalDue(installments []AdvanceInstallment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(inst.Amount)
	}
	return total
}

// OneTimeItems maps the period's one-time deductions for one employee into
// payslip line items.
func OneTimeItems(deductions []payroll.OneTimeDeduction, employeeID string) []payroll.OneTimeItem {
	var items []payroll.OneTimeItem
	for _, d := range deductions {
		if d.EmployeeID != employeeID {
			continue
		}
		items = append(items, payroll.OneTimeItem{
			ID:       d.ID,
			Category: d.Category,
			Reason:   d.Reason,
			Amount:   d.Amount,
		})
	}
	return items
}
