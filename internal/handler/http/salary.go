package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/salary"
	"github.com/Jaidataanalytics/hrms-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	EditStructure(w http.ResponseWriter, r *http.Request)
	GetStructure(w http.ResponseWriter, r *http.Request)
	ListStructureHistory(w http.ResponseWriter, r *http.Request)

	GetChangeRequest(w http.ResponseWriter, r *http.Request)
	ListChangeRequests(w http.ResponseWriter, r *http.Request)
	DecideChangeRequest(w http.ResponseWriter, r *http.Request)
}

type SalaryService interface {
	EditStructure(ctx context.Context, employeeID string, req salary.EditStructureRequest) (salary.EditStructureResponse, error)
	GetStructure(ctx context.Context, employeeID string, asOf time.Time) (salary.StructureResponse, error)
	ListStructureHistory(ctx context.Context, employeeID string) ([]salary.StructureResponse, error)
	GetChangeRequest(ctx context.Context, id string) (salary.ChangeRequestResponse, error)
	ListChangeRequests(ctx context.Context, status *salary.RequestStatus) ([]salary.ChangeRequestResponse, error)
	DecideChangeRequest(ctx context.Context, requestID string, req salary.DecideChangeRequest) (salary.ChangeRequestResponse, error)
}

type SalaryHandlerImpl struct {
	salaryService SalaryService
}

func NewSalaryHandler(salaryService SalaryService) SalaryHandler {
	return &SalaryHandlerImpl{salaryService: salaryService}
}

func (h *SalaryHandlerImpl) EditStructure(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req salary.EditStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.salaryService.EditStructure(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Applied {
		response.SuccessWithMessage(w, "Salary structure updated", result)
		return
	}
	response.Created(w, "Change request submitted for approval", result)
}

func (h *SalaryHandlerImpl) GetStructure(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	asOf := time.Now()
	if asOfStr := r.URL.Query().Get("as_of"); asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			response.BadRequest(w, "as_of must be YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	structure, err := h.salaryService.GetStructure(r.Context(), employeeID, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, structure)
}

func (h *SalaryHandlerImpl) ListStructureHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	history, err := h.salaryService.ListStructureHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

func (h *SalaryHandlerImpl) GetChangeRequest(w http.ResponseWriter, r *http.Request) {
	cr, err := h.salaryService.GetChangeRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cr)
}

func (h *SalaryHandlerImpl) ListChangeRequests(w http.ResponseWriter, r *http.Request) {
	var status *salary.RequestStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		st := salary.RequestStatus(statusStr)
		status = &st
	}

	requests, err := h.salaryService.ListChangeRequests(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *SalaryHandlerImpl) DecideChangeRequest(w http.ResponseWriter, r *http.Request) {
	var req salary.DecideChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cr, err := h.salaryService.DecideChangeRequest(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Change request decided", cr)
}
