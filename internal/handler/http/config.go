package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ConfigHandler interface {
	GetStatutoryConfig(w http.ResponseWriter, r *http.Request)
	UpdateStatutoryConfig(w http.ResponseWriter, r *http.Request)

	CreateCustomRule(w http.ResponseWriter, r *http.Request)
	GetCustomRule(w http.ResponseWriter, r *http.Request)
	ListCustomRules(w http.ResponseWriter, r *http.Request)
	UpdateCustomRule(w http.ResponseWriter, r *http.Request)
	DeleteCustomRule(w http.ResponseWriter, r *http.Request)

	CreateAdvance(w http.ResponseWriter, r *http.Request)
	GetAdvance(w http.ResponseWriter, r *http.Request)
	ListAdvances(w http.ResponseWriter, r *http.Request)
	DeactivateAdvance(w http.ResponseWriter, r *http.Request)

	CreateOneTimeDeduction(w http.ResponseWriter, r *http.Request)
	ListOneTimeDeductions(w http.ResponseWriter, r *http.Request)
	DeleteOneTimeDeduction(w http.ResponseWriter, r *http.Request)
}

type ConfigService interface {
	GetStatutoryConfig(ctx context.Context) (payroll.StatutoryConfigResponse, error)
	UpdateStatutoryConfig(ctx context.Context, req payroll.UpdateStatutoryConfigRequest) (payroll.StatutoryConfigResponse, error)

	CreateCustomRule(ctx context.Context, req payroll.CreateCustomRuleRequest) (payroll.CustomRule, error)
	GetCustomRule(ctx context.Context, id string) (payroll.CustomRule, error)
	ListCustomRules(ctx context.Context, activeOnly bool) ([]payroll.CustomRule, error)
	UpdateCustomRule(ctx context.Context, id string, req payroll.UpdateCustomRuleRequest) (payroll.CustomRule, error)
	DeleteCustomRule(ctx context.Context, id string) error

	CreateAdvance(ctx context.Context, req payroll.CreateAdvanceRequest) (payroll.AdvanceResponse, error)
	GetAdvance(ctx context.Context, id string) (payroll.AdvanceResponse, error)
	ListAdvances(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.AdvanceResponse, error)
	DeactivateAdvance(ctx context.Context, id string) (payroll.AdvanceResponse, error)

	CreateOneTimeDeduction(ctx context.Context, req payroll.CreateOneTimeDeductionRequest) (payroll.OneTimeDeduction, error)
	ListOneTimeDeductions(ctx context.Context, month, year int) ([]payroll.OneTimeDeduction, error)
	DeleteOneTimeDeduction(ctx context.Context, id string) error
}

type ConfigHandlerImpl struct {
	configService ConfigService
}

func NewConfigHandler(configService ConfigService) ConfigHandler {
	return &ConfigHandlerImpl{configService: configService}
}

func (h *ConfigHandlerImpl) GetStatutoryConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.GetStatutoryConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cfg)
}

func (h *ConfigHandlerImpl) UpdateStatutoryConfig(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateStatutoryConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.configService.UpdateStatutoryConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Statutory configuration updated", cfg)
}

func (h *ConfigHandlerImpl) CreateCustomRule(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateCustomRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rule, err := h.configService.CreateCustomRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Custom rule created", rule)
}

func (h *ConfigHandlerImpl) GetCustomRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.configService.GetCustomRule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rule)
}

func (h *ConfigHandlerImpl) ListCustomRules(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	rules, err := h.configService.ListCustomRules(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rules)
}

func (h *ConfigHandlerImpl) UpdateCustomRule(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateCustomRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rule, err := h.configService.UpdateCustomRule(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Custom rule updated", rule)
}

func (h *ConfigHandlerImpl) DeleteCustomRule(w http.ResponseWriter, r *http.Request) {
	if err := h.configService.DeleteCustomRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Custom rule deleted", nil)
}

func (h *ConfigHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	adv, err := h.configService.CreateAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance created", adv)
}

func (h *ConfigHandlerImpl) GetAdvance(w http.ResponseWriter, r *http.Request) {
	adv, err := h.configService.GetAdvance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, adv)
}

func (h *ConfigHandlerImpl) ListAdvances(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	activeOnly := r.URL.Query().Get("active") == "true"

	advances, err := h.configService.ListAdvances(r.Context(), employeeID, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, advances)
}

func (h *ConfigHandlerImpl) DeactivateAdvance(w http.ResponseWriter, r *http.Request) {
	adv, err := h.configService.DeactivateAdvance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance deactivated", adv)
}

func (h *ConfigHandlerImpl) CreateOneTimeDeduction(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateOneTimeDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	deduction, err := h.configService.CreateOneTimeDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "One-time deduction created", deduction)
}

func (h *ConfigHandlerImpl) ListOneTimeDeductions(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "month must be a number", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}

	deductions, err := h.configService.ListOneTimeDeductions(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, deductions)
}

func (h *ConfigHandlerImpl) DeleteOneTimeDeduction(w http.ResponseWriter, r *http.Request) {
	if err := h.configService.DeleteOneTimeDeduction(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "One-time deduction deleted", nil)
}
