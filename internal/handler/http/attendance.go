package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	GetPolicy(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)
	ClassifyDay(w http.ResponseWriter, r *http.Request)
	ManualEdit(w http.ResponseWriter, r *http.Request)
	ListDays(w http.ResponseWriter, r *http.Request)
}

type AttendanceService interface {
	GetPolicy(ctx context.Context) (attendance.PolicyResponse, error)
	UpdatePolicy(ctx context.Context, req attendance.UpdatePolicyRequest) (attendance.PolicyResponse, error)
	ClassifyDay(ctx context.Context, req attendance.ClassifyDayRequest) (attendance.DayResponse, error)
	ManualEdit(ctx context.Context, req attendance.ManualEditRequest) (attendance.DayResponse, error)
	ListDays(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.DayResponse, error)
}

type AttendanceHandlerImpl struct {
	attendanceService AttendanceService
}

func NewAttendanceHandler(attendanceService AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *AttendanceHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.attendanceService.GetPolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy)
}

func (h *AttendanceHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	policy, err := h.attendanceService.UpdatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance policy updated", policy)
}

func (h *AttendanceHandlerImpl) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClassifyDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := h.attendanceService.ClassifyDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

func (h *AttendanceHandlerImpl) ManualEdit(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	day, err := h.attendanceService.ManualEdit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance day updated", day)
}

func (h *AttendanceHandlerImpl) ListDays(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "from must be YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "to must be YYYY-MM-DD", nil)
		return
	}

	days, err := h.attendanceService.ListDays(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}
