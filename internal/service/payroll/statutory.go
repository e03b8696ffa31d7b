package payroll

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculateStatutory computes PF, ESI and professional tax for one payslip.
// Missing or disabled configuration degrades to explicit zero line items and
// a warning, never a failed run.
//
// PF applies the employee percentage to earned basic+DA capped at the wage
// ceiling. ESI is all-or-nothing: only employees with gross strictly under
// the ceiling are in scope; at or above it the line is zero. PT takes the
// first slab with min <= gross < max, where a zero max means unbounded.
func CalculateStatutory(cfg payroll.StatutoryConfig, earnedBasicDA, gross decimal.Decimal, epfApplicable, esiApplicable bool) (payroll.StatutoryDeductions, []string) {
	var out payroll.StatutoryDeductions
	var warnings []string

	if cfg.PFEnabled && epfApplicable {
		wage := earnedBasicDA
		if cfg.PFWageCeiling.IsPositive() && wage.GreaterThan(cfg.PFWageCeiling) {
			wage = cfg.PFWageCeiling
		}
		out.EPF = wage.Mul(cfg.PFEmployeePercent).Div(hundred).Round(2)
	} else if !cfg.PFEnabled && epfApplicable {
		warnings = append(warnings, "pf_disabled")
	}

	if cfg.ESIEnabled && esiApplicable {
		if gross.LessThan(cfg.ESIWageCeiling) {
			out.ESI = gross.Mul(cfg.ESIEmployeePercent).Div(hundred).Round(2)
		}
	} else if !cfg.ESIEnabled && esiApplicable {
		warnings = append(warnings, "esi_disabled")
	}

	if len(cfg.PTSlabs) == 0 {
		warnings = append(warnings, "pt_slabs_missing")
	} else {
		for _, slab := range cfg.PTSlabs {
			unbounded := slab.Max.IsZero()
			if gross.GreaterThanOrEqual(slab.Min) && (unbounded || gross.LessThan(slab.Max)) {
				out.ProfessionalTax = slab.Amount
				break
			}
		}
	}

	return out, warnings
}
