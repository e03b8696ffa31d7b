package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

// ExportServiceImpl renders processed payroll data for distribution: a PDF
// payslip per employee and a CSV salary register per run.
type ExportServiceImpl struct {
	runRepo payroll.RunRepository
}

func NewExportService(runRepo payroll.RunRepository) *ExportServiceImpl {
	return &ExportServiceImpl{runRepo: runRepo}
}

// PayslipPDF renders one payslip as a PDF document.
func (s *ExportServiceImpl) PayslipPDF(ctx context.Context, payslipID string) ([]byte, error) {
	slip, err := s.runRepo.GetPayslipByID(ctx, payslipID)
	if err != nil {
		return nil, err
	}

	name := slip.EmployeeID
	if slip.EmployeeName != nil {
		name = *slip.EmployeeName
	}
	code := ""
	if slip.EmployeeCode != nil {
		code = *slip.EmployeeCode
	}
	period := fmt.Sprintf("%s %d", time.Month(slip.Month), slip.Year)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", name, code))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", period))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Paid days: %s of %d", slip.PaidDays.StringFixed(2), slip.WorkingDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line := func(label, amount string) {
		pdf.Cell(100, 6, label)
		pdf.CellFormat(40, 6, amount, "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	line("Basic", slip.Earnings.Basic.StringFixed(2))
	line("DA", slip.Earnings.DA.StringFixed(2))
	line("HRA", slip.Earnings.HRA.StringFixed(2))
	line("Conveyance", slip.Earnings.Conveyance.StringFixed(2))
	line("Grade Pay", slip.Earnings.GradePay.StringFixed(2))
	line("Other Allowance", slip.Earnings.OtherAllowance.StringFixed(2))
	line("Medical Allowance", slip.Earnings.MedicalAllowance.StringFixed(2))
	pdf.SetFont("Helvetica", "B", 11)
	line("Gross", slip.GrossSalary.StringFixed(2))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line("EPF", slip.Statutory.EPF.StringFixed(2))
	line("ESI", slip.Statutory.ESI.StringFixed(2))
	line("Professional Tax", slip.Statutory.ProfessionalTax.StringFixed(2))
	for _, rd := range slip.RuleDeductions {
		line(rd.RuleName, rd.Amount.StringFixed(2))
	}
	line("Advance Recovery", slip.AdvanceDeduction.StringFixed(2))
	for _, ot := range slip.OneTimeDeductions {
		line(ot.Category, ot.Amount.StringFixed(2))
	}
	line("Other Deduction", slip.OtherDeduction.StringFixed(2))
	pdf.SetFont("Helvetica", "B", 11)
	line("Total Deductions", slip.TotalDeductions.StringFixed(2))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	line("Net Pay", slip.NetSalary.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RunCSV renders a run's salary register as CSV, one row per payslip.
func (s *ExportServiceImpl) RunCSV(ctx context.Context, runID string) ([]byte, error) {
	run, err := s.runRepo.GetRunByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	slips, err := s.runRepo.ListPayslipsByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"employee_code", "employee_name", "month", "year",
		"working_days", "paid_days",
		"basic", "da", "hra", "conveyance", "grade_pay", "other_allowance", "medical_allowance",
		"gross", "epf", "esi", "professional_tax",
		"rule_deductions", "advance", "one_time", "other_deduction",
		"total_deductions", "net",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, slip := range slips {
		name := ""
		if slip.EmployeeName != nil {
			name = *slip.EmployeeName
		}
		code := slip.EmployeeID
		if slip.EmployeeCode != nil {
			code = *slip.EmployeeCode
		}

		ruleTotal := sumRules(slip.RuleDeductions)
		oneTimeTotal := sumOneTime(slip.OneTimeDeductions)

		row := []string{
			code, name,
			fmt.Sprintf("%d", run.Month), fmt.Sprintf("%d", run.Year),
			fmt.Sprintf("%d", slip.WorkingDays), slip.PaidDays.StringFixed(2),
			slip.Earnings.Basic.StringFixed(2),
			slip.Earnings.DA.StringFixed(2),
			slip.Earnings.HRA.StringFixed(2),
			slip.Earnings.Conveyance.StringFixed(2),
			slip.Earnings.GradePay.StringFixed(2),
			slip.Earnings.OtherAllowance.StringFixed(2),
			slip.Earnings.MedicalAllowance.StringFixed(2),
			slip.GrossSalary.StringFixed(2),
			slip.Statutory.EPF.StringFixed(2),
			slip.Statutory.ESI.StringFixed(2),
			slip.Statutory.ProfessionalTax.StringFixed(2),
			ruleTotal.StringFixed(2),
			slip.AdvanceDeduction.StringFixed(2),
			oneTimeTotal.StringFixed(2),
			slip.OtherDeduction.StringFixed(2),
			slip.TotalDeductions.StringFixed(2),
			slip.NetSalary.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
