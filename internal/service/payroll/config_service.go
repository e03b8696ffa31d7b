package payroll

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/actor"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/employee"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
)

// ConfigServiceImpl manages the payroll configuration surface: statutory
// rates, custom deduction rules, advances and one-time deductions. Changes
// here never touch processed runs; those replay their frozen snapshot.
type ConfigServiceImpl struct {
	statutoryRepo payroll.StatutoryRepository
	ruleRepo      payroll.CustomRuleRepository
	advanceRepo   payroll.AdvanceRepository
	employeeRepo  employee.EmployeeRepository
	auditRepo     audit.AuditRepository
}

func NewConfigService(
	statutoryRepo payroll.StatutoryRepository,
	ruleRepo payroll.CustomRuleRepository,
	advanceRepo payroll.AdvanceRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
) *ConfigServiceImpl {
	return &ConfigServiceImpl{
		statutoryRepo: statutoryRepo,
		ruleRepo:      ruleRepo,
		advanceRepo:   advanceRepo,
		employeeRepo:  employeeRepo,
		auditRepo:     auditRepo,
	}
}

// ========== STATUTORY CONFIG ==========

func (s *ConfigServiceImpl) GetStatutoryConfig(ctx context.Context) (payroll.StatutoryConfigResponse, error) {
	cfg, err := s.statutoryRepo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrStatutoryNotFound) {
			return mapStatutoryResponse(payroll.DefaultStatutoryConfig()), nil
		}
		return payroll.StatutoryConfigResponse{}, err
	}
	return mapStatutoryResponse(cfg), nil
}

func (s *ConfigServiceImpl) UpdateStatutoryConfig(ctx context.Context, req payroll.UpdateStatutoryConfigRequest) (payroll.StatutoryConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.StatutoryConfigResponse{}, err
	}

	current, err := s.statutoryRepo.GetConfig(ctx)
	if err != nil {
		if !errors.Is(err, payroll.ErrStatutoryNotFound) {
			return payroll.StatutoryConfigResponse{}, err
		}
		current = payroll.DefaultStatutoryConfig()
	}

	if req.PFEnabled != nil {
		current.PFEnabled = *req.PFEnabled
	}
	if req.PFWageCeiling != nil {
		current.PFWageCeiling = *req.PFWageCeiling
	}
	if req.PFEmployeePercent != nil {
		current.PFEmployeePercent = *req.PFEmployeePercent
	}
	if req.ESIEnabled != nil {
		current.ESIEnabled = *req.ESIEnabled
	}
	if req.ESIWageCeiling != nil {
		current.ESIWageCeiling = *req.ESIWageCeiling
	}
	if req.ESIEmployeePercent != nil {
		current.ESIEmployeePercent = *req.ESIEmployeePercent
	}
	if req.PTSlabs != nil {
		current.PTSlabs = req.PTSlabs
	}

	updated, err := s.statutoryRepo.UpsertConfig(ctx, current)
	if err != nil {
		return payroll.StatutoryConfigResponse{}, err
	}

	return mapStatutoryResponse(updated), nil
}

// ========== CUSTOM RULES ==========

func (s *ConfigServiceImpl) CreateCustomRule(ctx context.Context, req payroll.CreateCustomRuleRequest) (payroll.CustomRule, error) {
	if err := req.Validate(); err != nil {
		return payroll.CustomRule{}, err
	}

	return s.ruleRepo.Create(ctx, payroll.CustomRule{
		Name:               req.Name,
		Description:        req.Description,
		ConditionType:      payroll.ConditionType(req.ConditionType),
		Operator:           payroll.Operator(req.Operator),
		Threshold:          req.Threshold,
		ActionType:         payroll.ActionType(req.ActionType),
		Value:              req.Value,
		ApplyPerOccurrence: req.ApplyPerOccurrence,
		IsActive:           true,
	})
}

func (s *ConfigServiceImpl) GetCustomRule(ctx context.Context, id string) (payroll.CustomRule, error) {
	return s.ruleRepo.GetByID(ctx, id)
}

func (s *ConfigServiceImpl) ListCustomRules(ctx context.Context, activeOnly bool) ([]payroll.CustomRule, error) {
	return s.ruleRepo.List(ctx, activeOnly)
}

func (s *ConfigServiceImpl) UpdateCustomRule(ctx context.Context, id string, req payroll.UpdateCustomRuleRequest) (payroll.CustomRule, error) {
	if err := req.Validate(); err != nil {
		return payroll.CustomRule{}, err
	}

	current, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.CustomRule{}, err
	}

	before, _ := json.Marshal(current)

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.ConditionType != nil {
		current.ConditionType = payroll.ConditionType(*req.ConditionType)
	}
	if req.Operator != nil {
		current.Operator = payroll.Operator(*req.Operator)
	}
	if req.Threshold != nil {
		current.Threshold = *req.Threshold
	}
	if req.ActionType != nil {
		current.ActionType = payroll.ActionType(*req.ActionType)
	}
	if req.Value != nil {
		current.Value = *req.Value
	}
	if req.ApplyPerOccurrence != nil {
		current.ApplyPerOccurrence = *req.ApplyPerOccurrence
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	updated, err := s.ruleRepo.Update(ctx, current)
	if err != nil {
		return payroll.CustomRule{}, err
	}

	if act, actErr := actor.FromContext(ctx); actErr == nil {
		after, _ := json.Marshal(updated)
		_, _ = s.auditRepo.Append(ctx, audit.Entry{
			TargetType: audit.TargetCustomRule,
			TargetID:   updated.ID,
			Actor:      act.UserID,
			Reason:     "custom rule updated",
			Before:     before,
			After:      after,
		})
	}

	return updated, nil
}

// DeleteCustomRule removes an admin-defined rule. Default rules can only be
// disabled.
func (s *ConfigServiceImpl) DeleteCustomRule(ctx context.Context, id string) error {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rule.IsDefault {
		return payroll.ErrDefaultRuleDelete
	}
	return s.ruleRepo.Delete(ctx, id)
}

// ========== ADVANCES ==========

func (s *ConfigServiceImpl) CreateAdvance(ctx context.Context, req payroll.CreateAdvanceRequest) (payroll.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdvanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.AdvanceResponse{}, err
	}

	adv, err := s.advanceRepo.CreateAdvance(ctx, payroll.SewaAdvance{
		EmployeeID:      req.EmployeeID,
		TotalAmount:     req.TotalAmount,
		MonthlyAmount:   req.MonthlyAmount,
		RemainingAmount: req.TotalAmount,
		StartMonth:      req.StartMonth,
		StartYear:       req.StartYear,
		IsActive:        true,
	})
	if err != nil {
		return payroll.AdvanceResponse{}, err
	}

	return mapAdvanceResponse(adv), nil
}

func (s *ConfigServiceImpl) GetAdvance(ctx context.Context, id string) (payroll.AdvanceResponse, error) {
	adv, err := s.advanceRepo.GetAdvanceByID(ctx, id)
	if err != nil {
		return payroll.AdvanceResponse{}, err
	}
	return mapAdvanceResponse(adv), nil
}

func (s *ConfigServiceImpl) ListAdvances(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.AdvanceResponse, error) {
	advances, err := s.advanceRepo.ListAdvances(ctx, employeeID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		result = append(result, mapAdvanceResponse(a))
	}
	return result, nil
}

// DeactivateAdvance halts further recovery without erasing the ledger.
func (s *ConfigServiceImpl) DeactivateAdvance(ctx context.Context, id string) (payroll.AdvanceResponse, error) {
	adv, err := s.advanceRepo.GetAdvanceByID(ctx, id)
	if err != nil {
		return payroll.AdvanceResponse{}, err
	}

	before, _ := json.Marshal(mapAdvanceResponse(adv))
	adv.IsActive = false

	updated, err := s.advanceRepo.UpdateAdvance(ctx, adv)
	if err != nil {
		return payroll.AdvanceResponse{}, err
	}

	if act, actErr := actor.FromContext(ctx); actErr == nil {
		after, _ := json.Marshal(mapAdvanceResponse(updated))
		_, _ = s.auditRepo.Append(ctx, audit.Entry{
			TargetType: audit.TargetSewaAdvance,
			TargetID:   updated.ID,
			Actor:      act.UserID,
			Reason:     "advance deactivated",
			Before:     before,
			After:      after,
		})
	}

	return mapAdvanceResponse(updated), nil
}

// ========== ONE-TIME DEDUCTIONS ==========

func (s *ConfigServiceImpl) CreateOneTimeDeduction(ctx context.Context, req payroll.CreateOneTimeDeductionRequest) (payroll.OneTimeDeduction, error) {
	if err := req.Validate(); err != nil {
		return payroll.OneTimeDeduction{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.OneTimeDeduction{}, err
	}

	return s.advanceRepo.CreateOneTime(ctx, payroll.OneTimeDeduction{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		Amount:     req.Amount,
		Category:   req.Category,
		Reason:     req.Reason,
	})
}

func (s *ConfigServiceImpl) ListOneTimeDeductions(ctx context.Context, month, year int) ([]payroll.OneTimeDeduction, error) {
	return s.advanceRepo.ListOneTime(ctx, month, year)
}

func (s *ConfigServiceImpl) DeleteOneTimeDeduction(ctx context.Context, id string) error {
	if _, err := s.advanceRepo.GetOneTimeByID(ctx, id); err != nil {
		return err
	}
	return s.advanceRepo.DeleteOneTime(ctx, id)
}

// ========== HELPERS ==========

func mapStatutoryResponse(cfg payroll.StatutoryConfig) payroll.StatutoryConfigResponse {
	return payroll.StatutoryConfigResponse{
		ID:                 cfg.ID,
		PFEnabled:          cfg.PFEnabled,
		PFWageCeiling:      cfg.PFWageCeiling,
		PFEmployeePercent:  cfg.PFEmployeePercent,
		ESIEnabled:         cfg.ESIEnabled,
		ESIWageCeiling:     cfg.ESIWageCeiling,
		ESIEmployeePercent: cfg.ESIEmployeePercent,
		PTSlabs:            cfg.PTSlabs,
	}
}

func mapAdvanceResponse(a payroll.SewaAdvance) payroll.AdvanceResponse {
	return payroll.AdvanceResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		TotalAmount:     a.TotalAmount,
		MonthlyAmount:   a.MonthlyAmount,
		RemainingAmount: a.RemainingAmount,
		StartMonth:      a.StartMonth,
		StartYear:       a.StartYear,
		IsActive:        a.IsActive,
	}
}
