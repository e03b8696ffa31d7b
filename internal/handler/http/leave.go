package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/Jaidataanalytics/hrms-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	GetPolicyConfig(w http.ResponseWriter, r *http.Request)
	UpdatePolicyConfig(w http.ResponseWriter, r *http.Request)

	ListBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveService interface {
	CreateTypeRule(ctx context.Context, req leave.CreateTypeRuleRequest) (leave.TypeRuleResponse, error)
	GetTypeRule(ctx context.Context, code string) (leave.TypeRuleResponse, error)
	ListTypeRules(ctx context.Context, activeOnly bool) ([]leave.TypeRuleResponse, error)
	UpdateTypeRule(ctx context.Context, code string, req leave.UpdateTypeRuleRequest) (leave.TypeRuleResponse, error)
	DeleteTypeRule(ctx context.Context, code string) error

	GetPolicyConfig(ctx context.Context) (leave.PolicyConfigResponse, error)
	UpdatePolicyConfig(ctx context.Context, req leave.UpdatePolicyConfigRequest) (leave.PolicyConfigResponse, error)

	Balances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error)
}

type LeaveHandlerImpl struct {
	leaveService LeaveService
}

func NewLeaveHandler(leaveService LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func (h *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateTypeRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rule, err := h.leaveService.CreateTypeRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created", rule)
}

func (h *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		response.BadRequest(w, "Leave code is required", nil)
		return
	}

	rule, err := h.leaveService.GetTypeRule(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rule)
}

func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	rules, err := h.leaveService.ListTypeRules(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rules)
}

func (h *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req leave.UpdateTypeRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rule, err := h.leaveService.UpdateTypeRule(r.Context(), code, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated", rule)
}

func (h *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.leaveService.DeleteTypeRule(r.Context(), code); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted", nil)
}

func (h *LeaveHandlerImpl) GetPolicyConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.leaveService.GetPolicyConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cfg)
}

func (h *LeaveHandlerImpl) UpdatePolicyConfig(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdatePolicyConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.leaveService.UpdatePolicyConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy updated", cfg)
}

func (h *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	balances, err := h.leaveService.Balances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}
