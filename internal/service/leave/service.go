package leave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/actor"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/employee"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type LeaveServiceImpl struct {
	db             *database.DB
	leaveRepo      leave.LeaveRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	auditRepo      audit.AuditRepository
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		db:             db,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		auditRepo:      auditRepo,
	}
}

// ========== TYPE RULES ==========

func (s *LeaveServiceImpl) CreateTypeRule(ctx context.Context, req leave.CreateTypeRuleRequest) (leave.TypeRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.TypeRuleResponse{}, err
	}

	rule := leave.TypeRule{
		Code:             req.Code,
		Name:             req.Name,
		IsPaid:           req.IsPaid,
		DeductionPercent: req.DeductionPercent,
		AnnualQuota:      req.AnnualQuota,
		CarryForward:     req.CarryForward,
		MaxAccumulation:  req.MaxAccumulation,
		IsActive:         true,
	}

	created, err := s.leaveRepo.CreateTypeRule(ctx, rule)
	if err != nil {
		return leave.TypeRuleResponse{}, err
	}

	return mapTypeRuleResponse(created), nil
}

func (s *LeaveServiceImpl) GetTypeRule(ctx context.Context, code string) (leave.TypeRuleResponse, error) {
	rule, err := s.leaveRepo.GetTypeRuleByCode(ctx, code)
	if err != nil {
		return leave.TypeRuleResponse{}, err
	}
	return mapTypeRuleResponse(rule), nil
}

func (s *LeaveServiceImpl) ListTypeRules(ctx context.Context, activeOnly bool) ([]leave.TypeRuleResponse, error) {
	rules, err := s.leaveRepo.ListTypeRules(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]leave.TypeRuleResponse, 0, len(rules))
	for _, r := range rules {
		result = append(result, mapTypeRuleResponse(r))
	}
	return result, nil
}

func (s *LeaveServiceImpl) UpdateTypeRule(ctx context.Context, code string, req leave.UpdateTypeRuleRequest) (leave.TypeRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.TypeRuleResponse{}, err
	}

	current, err := s.leaveRepo.GetTypeRuleByCode(ctx, code)
	if err != nil {
		return leave.TypeRuleResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.IsPaid != nil {
		current.IsPaid = *req.IsPaid
		if current.IsPaid {
			current.DeductionPercent = decimal.Zero
		}
	}
	if req.DeductionPercent != nil {
		current.DeductionPercent = *req.DeductionPercent
	}
	if req.AnnualQuota != nil {
		current.AnnualQuota = *req.AnnualQuota
	}
	if req.CarryForward != nil {
		current.CarryForward = *req.CarryForward
	}
	if req.MaxAccumulation != nil {
		current.MaxAccumulation = *req.MaxAccumulation
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	updated, err := s.leaveRepo.UpdateTypeRule(ctx, current)
	if err != nil {
		return leave.TypeRuleResponse{}, err
	}

	return mapTypeRuleResponse(updated), nil
}

func (s *LeaveServiceImpl) DeleteTypeRule(ctx context.Context, code string) error {
	return s.leaveRepo.DeleteTypeRule(ctx, code)
}

// ========== POLICY CONFIG ==========

func (s *LeaveServiceImpl) PolicyConfig(ctx context.Context) (leave.PolicyConfig, error) {
	cfg, err := s.leaveRepo.GetPolicyConfig(ctx)
	if err != nil {
		if errors.Is(err, leave.ErrPolicyNotFound) {
			return leave.DefaultPolicyConfig(), nil
		}
		return leave.PolicyConfig{}, err
	}
	return cfg, nil
}

func (s *LeaveServiceImpl) GetPolicyConfig(ctx context.Context) (leave.PolicyConfigResponse, error) {
	cfg, err := s.PolicyConfig(ctx)
	if err != nil {
		return leave.PolicyConfigResponse{}, err
	}
	return mapPolicyConfigResponse(cfg), nil
}

func (s *LeaveServiceImpl) UpdatePolicyConfig(ctx context.Context, req leave.UpdatePolicyConfigRequest) (leave.PolicyConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.PolicyConfigResponse{}, err
	}

	current, err := s.PolicyConfig(ctx)
	if err != nil {
		return leave.PolicyConfigResponse{}, err
	}

	if req.FinancialYearStartMonth != nil {
		current.FinancialYearStartMonth = *req.FinancialYearStartMonth
	}
	if req.FinancialYearStartDay != nil {
		current.FinancialYearStartDay = *req.FinancialYearStartDay
	}
	if req.Sunday != nil {
		current.Sunday = *req.Sunday
	}

	updated, err := s.leaveRepo.UpsertPolicyConfig(ctx, current)
	if err != nil {
		return leave.PolicyConfigResponse{}, err
	}

	return mapPolicyConfigResponse(updated), nil
}

// ========== BALANCES ==========

// Balances returns the employee's balances for the financial year, creating
// zero-consumption rows from the active type rules when missing.
func (s *LeaveServiceImpl) Balances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	rules, err := s.leaveRepo.ListTypeRules(ctx, true)
	if err != nil {
		return nil, err
	}

	existing, err := s.leaveRepo.ListBalances(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]leave.Balance, len(existing))
	for _, b := range existing {
		byCode[b.LeaveCode] = b
	}

	result := make([]leave.BalanceResponse, 0, len(rules))
	for _, rule := range rules {
		bal, ok := byCode[rule.Code]
		if !ok {
			bal, err = s.leaveRepo.UpsertBalance(ctx, leave.Balance{
				EmployeeID: employeeID,
				LeaveCode:  rule.Code,
				Year:       year,
				Opening:    decimal.Zero,
				Quota:      rule.AnnualQuota,
				Consumed:   decimal.Zero,
			})
			if err != nil {
				return nil, err
			}
		}
		result = append(result, mapBalanceResponse(bal))
	}

	return result, nil
}

// RemainingByCode returns remaining balances keyed by leave code, for the
// payroll pipeline.
func (s *LeaveServiceImpl) RemainingByCode(ctx context.Context, employeeID string, year int) (map[string]decimal.Decimal, error) {
	balances, err := s.Balances(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	remaining := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		remaining[b.LeaveCode] = b.Remaining
	}
	return remaining, nil
}

// ========== SUNDAY PENALTY ==========

// ApplySundayPenalties evaluates the Sunday rule over one employee's
// classified month and, when auto-apply is on, converts the flagged
// weekly-off days into leave days with an audit trail and quota consumption.
// Returns the penalties found (applied or not).
func (s *LeaveServiceImpl) ApplySundayPenalties(ctx context.Context, employeeID string, days []attendance.Day, cfg leave.PolicyConfig) ([]leave.SundayPenalty, error) {
	penalties := EvaluateSundayPenalties(cfg.Sunday, days)
	if len(penalties) == 0 {
		return nil, nil
	}

	if !cfg.Sunday.AutoApply {
		slog.Warn("Sunday leave rule tripped but auto-apply is off",
			"employee_id", employeeID, "count", len(penalties))
		return penalties, nil
	}

	act, err := actor.FromContext(ctx)
	actorID := "system"
	if err == nil {
		actorID = act.UserID
	}

	for _, p := range penalties {
		day, err := s.attendanceRepo.GetDay(ctx, p.EmployeeID, p.Date)
		if err != nil {
			return nil, fmt.Errorf("sunday penalty lookup failed: %w", err)
		}
		if day.Status != attendance.StatusWeeklyOff {
			// Already converted by an earlier pass; conversion is one-shot.
			continue
		}

		before, _ := json.Marshal(day)
		code := p.LeaveCode
		day.Status = attendance.StatusLeave
		day.LeaveCode = &code
		day.Source = attendance.SourceManual

		saved, err := s.attendanceRepo.UpsertDay(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("sunday penalty conversion failed: %w", err)
		}
		after, _ := json.Marshal(saved)

		_, err = s.auditRepo.Append(ctx, audit.Entry{
			TargetType: audit.TargetAttendanceDay,
			TargetID:   saved.ID,
			Actor:      actorID,
			Reason:     fmt.Sprintf("sunday leave rule: %d leave days in %s window", p.WindowCount, p.Window),
			Before:     before,
			After:      after,
		})
		if err != nil {
			return nil, err
		}

		year := FinancialYearFor(p.Date, cfg)
		if err := s.leaveRepo.AddConsumed(ctx, p.EmployeeID, code, year, 1); err != nil {
			return nil, fmt.Errorf("sunday penalty quota consumption failed: %w", err)
		}
	}

	return penalties, nil
}

// ========== CARRY-FORWARD ==========

// RunCarryForward rolls every active employee's balances into the next
// financial year: carry-forward codes keep min(remaining, max accumulation),
// the rest are forfeited.
func (s *LeaveServiceImpl) RunCarryForward(ctx context.Context, fromYear int) error {
	rules, err := s.leaveRepo.ListTypeRules(ctx, true)
	if err != nil {
		return err
	}
	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return err
	}

	for _, emp := range employees {
		for _, rule := range rules {
			bal, err := s.leaveRepo.GetBalance(ctx, emp.ID, rule.Code, fromYear)
			if err != nil {
				if errors.Is(err, leave.ErrBalanceNotFound) {
					continue
				}
				return err
			}

			opening := CarryForwardOpening(rule, bal.Remaining())
			_, err = s.leaveRepo.UpsertBalance(ctx, leave.Balance{
				EmployeeID: emp.ID,
				LeaveCode:  rule.Code,
				Year:       fromYear + 1,
				Opening:    opening,
				Quota:      rule.AnnualQuota,
				Consumed:   decimal.Zero,
			})
			if err != nil {
				return err
			}
		}
	}

	slog.Info("Leave carry-forward completed", "from_year", fromYear, "employees", len(employees))
	return nil
}

// CarryForwardJob runs daily and performs the rollover on the financial-year
// start date. The rollover is an upsert, so repeated runs on the same day
// are harmless.
func (s *LeaveServiceImpl) CarryForwardJob(ctx context.Context) error {
	cfg, err := s.PolicyConfig(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	if int(now.Month()) != cfg.FinancialYearStartMonth || now.Day() != cfg.FinancialYearStartDay {
		return nil
	}

	return s.RunCarryForward(ctx, now.Year()-1)
}

// ========== HELPERS ==========

func mapTypeRuleResponse(r leave.TypeRule) leave.TypeRuleResponse {
	return leave.TypeRuleResponse{
		ID:               r.ID,
		Code:             r.Code,
		Name:             r.Name,
		IsPaid:           r.IsPaid,
		DeductionPercent: r.DeductionPercent,
		AnnualQuota:      r.AnnualQuota,
		CarryForward:     r.CarryForward,
		MaxAccumulation:  r.MaxAccumulation,
		IsActive:         r.IsActive,
	}
}

func mapPolicyConfigResponse(c leave.PolicyConfig) leave.PolicyConfigResponse {
	return leave.PolicyConfigResponse{
		ID:                      c.ID,
		FinancialYearStartMonth: c.FinancialYearStartMonth,
		FinancialYearStartDay:   c.FinancialYearStartDay,
		Sunday:                  c.Sunday,
	}
}

func mapBalanceResponse(b leave.Balance) leave.BalanceResponse {
	remaining := b.Remaining()
	return leave.BalanceResponse{
		EmployeeID: b.EmployeeID,
		LeaveCode:  b.LeaveCode,
		Year:       b.Year,
		Opening:    b.Opening,
		Quota:      b.Quota,
		Consumed:   b.Consumed,
		Remaining:  remaining,
		Overdrawn:  remaining.IsNegative(),
	}
}
