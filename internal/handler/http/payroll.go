package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CreateRun(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	ProcessRun(w http.ResponseWriter, r *http.Request)
	LockRun(w http.ResponseWriter, r *http.Request)
	DeleteRun(w http.ResponseWriter, r *http.Request)

	GetPayslip(w http.ResponseWriter, r *http.Request)
	EditPayslip(w http.ResponseWriter, r *http.Request)

	ExportPayslipPDF(w http.ResponseWriter, r *http.Request)
	ExportRunCSV(w http.ResponseWriter, r *http.Request)
}

type PayrollService interface {
	CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error)
	GetRun(ctx context.Context, id string) (payroll.RunResponse, error)
	ListRuns(ctx context.Context) ([]payroll.RunResponse, error)
	ProcessRun(ctx context.Context, runID string) (payroll.RunResponse, error)
	LockRun(ctx context.Context, runID string) (payroll.RunResponse, error)
	DeleteRun(ctx context.Context, runID string) (payroll.DeleteRunResponse, error)
	GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error)
	RecomputePayslip(ctx context.Context, payslipID string, req payroll.EditPayslipRequest) (payroll.PayslipResponse, error)
}

type ExportService interface {
	PayslipPDF(ctx context.Context, payslipID string) ([]byte, error)
	RunCSV(ctx context.Context, runID string) ([]byte, error)
}

type PayrollHandlerImpl struct {
	payrollService PayrollService
	exportService  ExportService
}

func NewPayrollHandler(payrollService PayrollService, exportService ExportService) PayrollHandler {
	return &PayrollHandlerImpl{
		payrollService: payrollService,
		exportService:  exportService,
	}
}

func (h *PayrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	run, err := h.payrollService.CreateRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run created", run)
}

func (h *PayrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.payrollService.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

func (h *PayrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.payrollService.ListRuns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runs)
}

func (h *PayrollHandlerImpl) ProcessRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.payrollService.ProcessRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run processed", run)
}

func (h *PayrollHandlerImpl) LockRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.payrollService.LockRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run locked", run)
}

func (h *PayrollHandlerImpl) DeleteRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.DeleteRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run deleted", result)
}

func (h *PayrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.payrollService.GetPayslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

func (h *PayrollHandlerImpl) EditPayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.EditPayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	slip, err := h.payrollService.RecomputePayslip(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip recomputed", slip)
}

func (h *PayrollHandlerImpl) ExportPayslipPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pdf, err := h.exportService.PayslipPDF(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *PayrollHandlerImpl) ExportRunCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	register, err := h.exportService.RunCSV(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="salary-register-%s.csv"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(register)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(register)
}
