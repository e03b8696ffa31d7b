package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/employee"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// ========== RUN REPO ==========

type fakeRunRepo struct {
	mu       sync.Mutex
	seq      int
	runs     map[string]payroll.PayrollRun
	payslips map[string]payroll.Payslip
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{
		runs:     make(map[string]payroll.PayrollRun),
		payslips: make(map[string]payroll.Payslip),
	}
}

func (r *fakeRunRepo) CreateRun(_ context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.runs {
		if existing.Month == run.Month && existing.Year == run.Year {
			return payroll.PayrollRun{}, payroll.ErrRunAlreadyExists
		}
	}
	r.seq++
	run.ID = fmt.Sprintf("run-%d", r.seq)
	run.CreatedAt = time.Now()
	r.runs[run.ID] = run
	return run, nil
}

func (r *fakeRunRepo) GetRunByID(_ context.Context, id string) (payroll.PayrollRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (r *fakeRunRepo) GetRunByPeriod(_ context.Context, month, year int) (payroll.PayrollRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, run := range r.runs {
		if run.Month == month && run.Year == year {
			return run, nil
		}
	}
	return payroll.PayrollRun{}, payroll.ErrRunNotFound
}

func (r *fakeRunRepo) ListRuns(_ context.Context) ([]payroll.PayrollRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]payroll.PayrollRun, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run)
	}
	return out, nil
}

func (r *fakeRunRepo) UpdateStatus(_ context.Context, id string, from, to payroll.RunStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return payroll.ErrRunNotFound
	}
	if run.Status != from {
		return payroll.ErrRunStatusConflict
	}
	run.Status = to
	now := time.Now()
	switch to {
	case payroll.RunStatusProcessed:
		run.ProcessedAt = &now
	case payroll.RunStatusLocked:
		run.LockedAt = &now
	}
	r.runs[id] = run
	return nil
}

func (r *fakeRunRepo) UpdateRunResults(_ context.Context, run payroll.PayrollRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.runs[run.ID]
	if !ok {
		return payroll.ErrRunNotFound
	}
	stored.EmployeeCount = run.EmployeeCount
	stored.SkippedCount = run.SkippedCount
	stored.TotalGross = run.TotalGross
	stored.TotalNet = run.TotalNet
	stored.Warnings = run.Warnings
	if run.RulesSnapshot != nil {
		stored.RulesSnapshot = run.RulesSnapshot
	}
	stored.ProcessedAt = run.ProcessedAt
	r.runs[run.ID] = stored
	return nil
}

func (r *fakeRunRepo) DeleteRun(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return 0, payroll.ErrRunNotFound
	}
	if run.Status == payroll.RunStatusLocked {
		return 0, payroll.ErrRunLocked
	}
	var removed int64
	for pid, slip := range r.payslips {
		if slip.RunID == id {
			delete(r.payslips, pid)
			removed++
		}
	}
	delete(r.runs, id)
	return removed, nil
}

func (r *fakeRunRepo) UpsertPayslip(_ context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pid, existing := range r.payslips {
		if existing.RunID == slip.RunID && existing.EmployeeID == slip.EmployeeID {
			slip.ID = pid
			r.payslips[pid] = slip
			return slip, nil
		}
	}
	r.seq++
	slip.ID = fmt.Sprintf("slip-%d", r.seq)
	r.payslips[slip.ID] = slip
	return slip, nil
}

func (r *fakeRunRepo) GetPayslipByID(_ context.Context, id string) (payroll.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slip, ok := r.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return slip, nil
}

func (r *fakeRunRepo) ListPayslipsByRun(_ context.Context, runID string) ([]payroll.Payslip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payroll.Payslip
	for _, slip := range r.payslips {
		if slip.RunID == runID {
			out = append(out, slip)
		}
	}
	return out, nil
}

// ========== CONFIG REPOS ==========

type fakeStatutoryRepo struct {
	cfg *payroll.StatutoryConfig
}

func (r *fakeStatutoryRepo) GetConfig(_ context.Context) (payroll.StatutoryConfig, error) {
	if r.cfg == nil {
		return payroll.StatutoryConfig{}, payroll.ErrStatutoryNotFound
	}
	return *r.cfg, nil
}

func (r *fakeStatutoryRepo) UpsertConfig(_ context.Context, cfg payroll.StatutoryConfig) (payroll.StatutoryConfig, error) {
	r.cfg = &cfg
	return cfg, nil
}

type fakeRuleRepo struct {
	rules []payroll.CustomRule
}

func (r *fakeRuleRepo) Create(_ context.Context, rule payroll.CustomRule) (payroll.CustomRule, error) {
	rule.ID = fmt.Sprintf("rule-%d", len(r.rules)+1)
	r.rules = append(r.rules, rule)
	return rule, nil
}

func (r *fakeRuleRepo) GetByID(_ context.Context, id string) (payroll.CustomRule, error) {
	for _, rule := range r.rules {
		if rule.ID == id {
			return rule, nil
		}
	}
	return payroll.CustomRule{}, payroll.ErrCustomRuleNotFound
}

func (r *fakeRuleRepo) List(_ context.Context, activeOnly bool) ([]payroll.CustomRule, error) {
	var out []payroll.CustomRule
	for _, rule := range r.rules {
		if activeOnly && !rule.IsActive {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

func (r *fakeRuleRepo) Update(_ context.Context, rule payroll.CustomRule) (payroll.CustomRule, error) {
	for i := range r.rules {
		if r.rules[i].ID == rule.ID {
			r.rules[i] = rule
			return rule, nil
		}
	}
	return payroll.CustomRule{}, payroll.ErrCustomRuleNotFound
}

func (r *fakeRuleRepo) Delete(_ context.Context, id string) error {
	for i := range r.rules {
		if r.rules[i].ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return payroll.ErrCustomRuleNotFound
}

// ========== ADVANCE REPO ==========

type fakeAdvanceRepo struct {
	mu       sync.Mutex
	seq      int
	advances map[string]payroll.SewaAdvance
	apps     map[string]payroll.AdvanceApplication // advanceID|runID
	oneTime  map[string]payroll.OneTimeDeduction
}

func newFakeAdvanceRepo() *fakeAdvanceRepo {
	return &fakeAdvanceRepo{
		advances: make(map[string]payroll.SewaAdvance),
		apps:     make(map[string]payroll.AdvanceApplication),
		oneTime:  make(map[string]payroll.OneTimeDeduction),
	}
}

func appKey(advanceID, runID string) string { return advanceID + "|" + runID }

func (r *fakeAdvanceRepo) CreateAdvance(_ context.Context, adv payroll.SewaAdvance) (payroll.SewaAdvance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	adv.ID = fmt.Sprintf("adv-%d", r.seq)
	r.advances[adv.ID] = adv
	return adv, nil
}

func (r *fakeAdvanceRepo) GetAdvanceByID(_ context.Context, id string) (payroll.SewaAdvance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	adv, ok := r.advances[id]
	if !ok {
		return payroll.SewaAdvance{}, payroll.ErrAdvanceNotFound
	}
	return adv, nil
}

func (r *fakeAdvanceRepo) ListAdvances(_ context.Context, employeeID string, activeOnly bool) ([]payroll.SewaAdvance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payroll.SewaAdvance
	for _, adv := range r.advances {
		if adv.EmployeeID != employeeID {
			continue
		}
		if activeOnly && !adv.IsActive {
			continue
		}
		out = append(out, adv)
	}
	return out, nil
}

func (r *fakeAdvanceRepo) ListActiveAdvancesForEmployees(_ context.Context, employeeIDs []string) (map[string][]payroll.SewaAdvance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	out := make(map[string][]payroll.SewaAdvance)
	for _, adv := range r.advances {
		if adv.IsActive && wanted[adv.EmployeeID] {
			out[adv.EmployeeID] = append(out[adv.EmployeeID], adv)
		}
	}
	return out, nil
}

func (r *fakeAdvanceRepo) UpdateAdvance(_ context.Context, adv payroll.SewaAdvance) (payroll.SewaAdvance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.advances[adv.ID]; !ok {
		return payroll.SewaAdvance{}, payroll.ErrAdvanceNotFound
	}
	r.advances[adv.ID] = adv
	return adv, nil
}

func (r *fakeAdvanceRepo) ApplyToRun(_ context.Context, advanceID, runID, employeeID string) (payroll.AdvanceApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app, ok := r.apps[appKey(advanceID, runID)]; ok {
		return app, nil
	}
	adv, ok := r.advances[advanceID]
	if !ok {
		return payroll.AdvanceApplication{}, payroll.ErrAdvanceNotFound
	}
	if !adv.RemainingAmount.IsPositive() {
		return payroll.AdvanceApplication{}, payroll.ErrAdvanceExhausted
	}
	amount := adv.MonthlyAmount
	if adv.RemainingAmount.LessThan(amount) {
		amount = adv.RemainingAmount
	}
	r.seq++
	app := payroll.AdvanceApplication{
		ID:         fmt.Sprintf("app-%d", r.seq),
		AdvanceID:  advanceID,
		RunID:      runID,
		EmployeeID: employeeID,
		Amount:     amount,
	}
	r.apps[appKey(advanceID, runID)] = app

	adv.RemainingAmount = adv.RemainingAmount.Sub(amount)
	adv.IsActive = adv.RemainingAmount.IsPositive()
	r.advances[advanceID] = adv
	return app, nil
}

func (r *fakeAdvanceRepo) GetApplication(_ context.Context, advanceID, runID string) (payroll.AdvanceApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[appKey(advanceID, runID)]
	if !ok {
		return payroll.AdvanceApplication{}, payroll.ErrApplicationNotFound
	}
	return app, nil
}

func (r *fakeAdvanceRepo) ReverseApplications(_ context.Context, runID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, app := range r.apps {
		if app.RunID != runID {
			continue
		}
		adv := r.advances[app.AdvanceID]
		if adv.RemainingAmount.IsZero() {
			adv.IsActive = true
		}
		adv.RemainingAmount = adv.RemainingAmount.Add(app.Amount)
		r.advances[app.AdvanceID] = adv
		delete(r.apps, key)
	}
	return nil
}

func (r *fakeAdvanceRepo) ReverseApplicationForEmployee(_ context.Context, runID, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, app := range r.apps {
		if app.RunID != runID || app.EmployeeID != employeeID {
			continue
		}
		adv := r.advances[app.AdvanceID]
		if adv.RemainingAmount.IsZero() {
			adv.IsActive = true
		}
		adv.RemainingAmount = adv.RemainingAmount.Add(app.Amount)
		r.advances[app.AdvanceID] = adv
		delete(r.apps, key)
	}
	return nil
}

func (r *fakeAdvanceRepo) CreateOneTime(_ context.Context, d payroll.OneTimeDeduction) (payroll.OneTimeDeduction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	d.ID = fmt.Sprintf("ded-%d", r.seq)
	r.oneTime[d.ID] = d
	return d, nil
}

func (r *fakeAdvanceRepo) GetOneTimeByID(_ context.Context, id string) (payroll.OneTimeDeduction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.oneTime[id]
	if !ok {
		return payroll.OneTimeDeduction{}, payroll.ErrDeductionNotFound
	}
	return d, nil
}

func (r *fakeAdvanceRepo) ListOneTime(_ context.Context, month, year int) ([]payroll.OneTimeDeduction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payroll.OneTimeDeduction
	for _, d := range r.oneTime {
		if d.Month == month && d.Year == year {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeAdvanceRepo) DeleteOneTime(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.oneTime, id)
	return nil
}

// ========== SALARY REPO ==========

type fakeSalaryRepo struct {
	mu         sync.Mutex
	structures map[string]salary.Structure // keyed by employee ID
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{structures: make(map[string]salary.Structure)}
}

func (r *fakeSalaryRepo) InsertStructure(_ context.Context, s salary.Structure) (salary.Structure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = fmt.Sprintf("struct-%s", s.EmployeeID)
	r.structures[s.EmployeeID] = s
	return s, nil
}

func (r *fakeSalaryRepo) GetEffectiveStructure(_ context.Context, employeeID string, _ time.Time) (salary.Structure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.structures[employeeID]
	if !ok {
		return salary.Structure{}, salary.ErrStructureNotFound
	}
	return s, nil
}

func (r *fakeSalaryRepo) ListStructureHistory(_ context.Context, employeeID string) ([]salary.Structure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.structures[employeeID]; ok {
		return []salary.Structure{s}, nil
	}
	return nil, nil
}

func (r *fakeSalaryRepo) GetEffectiveStructures(_ context.Context, employeeIDs []string, _ time.Time) (map[string]salary.Structure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]salary.Structure)
	for _, id := range employeeIDs {
		if s, ok := r.structures[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (r *fakeSalaryRepo) CreateChangeRequest(_ context.Context, req salary.ChangeRequest) (salary.ChangeRequest, error) {
	return req, nil
}

func (r *fakeSalaryRepo) GetChangeRequestByID(_ context.Context, id string) (salary.ChangeRequest, error) {
	return salary.ChangeRequest{}, salary.ErrChangeRequestNotFound
}

func (r *fakeSalaryRepo) ListChangeRequests(_ context.Context, _ *salary.RequestStatus) ([]salary.ChangeRequest, error) {
	return nil, nil
}

func (r *fakeSalaryRepo) UpdateChangeRequest(_ context.Context, req salary.ChangeRequest) (salary.ChangeRequest, error) {
	return req, nil
}

// ========== EMPLOYEE / ATTENDANCE / LEAVE / AUDIT REPOS ==========

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	mu     sync.Mutex
	seq    int
	days   map[string]attendance.Day // employeeID|date
	policy *attendance.Policy
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{days: make(map[string]attendance.Day)}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) UpsertDay(_ context.Context, day attendance.Day) (attendance.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := dayKey(day.EmployeeID, day.Date)
	if existing, ok := r.days[key]; ok {
		day.ID = existing.ID
	} else {
		r.seq++
		day.ID = fmt.Sprintf("day-%d", r.seq)
	}
	r.days[key] = day
	return day, nil
}

func (r *fakeAttendanceRepo) GetDay(_ context.Context, employeeID string, date time.Time) (attendance.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day, ok := r.days[dayKey(employeeID, date)]
	if !ok {
		return attendance.Day{}, attendance.ErrDayNotFound
	}
	return day, nil
}

func (r *fakeAttendanceRepo) ListDays(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Day
	for _, day := range r.days {
		if day.EmployeeID == employeeID && !day.Date.Before(from) && !day.Date.After(to) {
			out = append(out, day)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListDaysForPeriod(_ context.Context, employeeIDs []string, month, year int) (map[string][]attendance.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	out := make(map[string][]attendance.Day)
	for _, day := range r.days {
		if wanted[day.EmployeeID] && int(day.Date.Month()) == month && day.Date.Year() == year {
			out[day.EmployeeID] = append(out[day.EmployeeID], day)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GetPolicy(_ context.Context) (attendance.Policy, error) {
	if r.policy == nil {
		return attendance.Policy{}, attendance.ErrPolicyNotFound
	}
	return *r.policy, nil
}

func (r *fakeAttendanceRepo) UpsertPolicy(_ context.Context, policy attendance.Policy) (attendance.Policy, error) {
	r.policy = &policy
	return policy, nil
}

type fakeLeaveRepo struct {
	mu        sync.Mutex
	typeRules []leave.TypeRule
	policyCfg *leave.PolicyConfig
	balances  map[string]leave.Balance // employeeID|code|year
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{balances: make(map[string]leave.Balance)}
}

func balKey(employeeID, code string, year int) string {
	return fmt.Sprintf("%s|%s|%d", employeeID, code, year)
}

func (r *fakeLeaveRepo) CreateTypeRule(_ context.Context, rule leave.TypeRule) (leave.TypeRule, error) {
	r.typeRules = append(r.typeRules, rule)
	return rule, nil
}

func (r *fakeLeaveRepo) GetTypeRuleByCode(_ context.Context, code string) (leave.TypeRule, error) {
	for _, rule := range r.typeRules {
		if rule.Code == code {
			return rule, nil
		}
	}
	return leave.TypeRule{}, leave.ErrTypeRuleNotFound
}

func (r *fakeLeaveRepo) ListTypeRules(_ context.Context, activeOnly bool) ([]leave.TypeRule, error) {
	var out []leave.TypeRule
	for _, rule := range r.typeRules {
		if activeOnly && !rule.IsActive {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

func (r *fakeLeaveRepo) UpdateTypeRule(_ context.Context, rule leave.TypeRule) (leave.TypeRule, error) {
	for i := range r.typeRules {
		if r.typeRules[i].Code == rule.Code {
			r.typeRules[i] = rule
			return rule, nil
		}
	}
	return leave.TypeRule{}, leave.ErrTypeRuleNotFound
}

func (r *fakeLeaveRepo) DeleteTypeRule(_ context.Context, code string) error { return nil }

func (r *fakeLeaveRepo) GetPolicyConfig(_ context.Context) (leave.PolicyConfig, error) {
	if r.policyCfg == nil {
		return leave.PolicyConfig{}, leave.ErrPolicyNotFound
	}
	return *r.policyCfg, nil
}

func (r *fakeLeaveRepo) UpsertPolicyConfig(_ context.Context, cfg leave.PolicyConfig) (leave.PolicyConfig, error) {
	r.policyCfg = &cfg
	return cfg, nil
}

func (r *fakeLeaveRepo) CreateRecord(_ context.Context, rec leave.Record) (leave.Record, error) {
	return rec, nil
}

func (r *fakeLeaveRepo) ListRecords(_ context.Context, _ string, _, _ time.Time) ([]leave.Record, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) ListRecordsForPeriod(_ context.Context, _ []string, _, _ time.Time) (map[string][]leave.Record, error) {
	return nil, nil
}

func (r *fakeLeaveRepo) GetBalance(_ context.Context, employeeID, leaveCode string, year int) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bal, ok := r.balances[balKey(employeeID, leaveCode, year)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return bal, nil
}

func (r *fakeLeaveRepo) ListBalances(_ context.Context, employeeID string, year int) ([]leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.Balance
	for _, bal := range r.balances {
		if bal.EmployeeID == employeeID && bal.Year == year {
			out = append(out, bal)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) UpsertBalance(_ context.Context, bal leave.Balance) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[balKey(bal.EmployeeID, bal.LeaveCode, bal.Year)] = bal
	return bal, nil
}

func (r *fakeLeaveRepo) AddConsumed(_ context.Context, employeeID, leaveCode string, year int, days float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balKey(employeeID, leaveCode, year)
	bal := r.balances[key]
	bal.EmployeeID = employeeID
	bal.LeaveCode = leaveCode
	bal.Year = year
	bal.Consumed = bal.Consumed.Add(decimal.NewFromFloat(days))
	r.balances[key] = bal
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *fakeAuditRepo) Append(_ context.Context, entry audit.Entry) (audit.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.Reason == "" {
		return audit.Entry{}, audit.ErrReasonRequired
	}
	entry.ID = fmt.Sprintf("audit-%d", len(r.entries)+1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *fakeAuditRepo) ListByTarget(_ context.Context, targetType audit.TargetType, targetID string) ([]audit.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []audit.Entry
	for _, e := range r.entries {
		if e.TargetType == targetType && e.TargetID == targetID {
			out = append(out, e)
		}
	}
	return out, nil
}
