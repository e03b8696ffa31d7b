package salary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/employee"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/salary"
	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSalaryRepo struct {
	seq        int
	structures []salary.Structure
	requests   map[string]salary.ChangeRequest
}

func newMemSalaryRepo() *memSalaryRepo {
	return &memSalaryRepo{requests: make(map[string]salary.ChangeRequest)}
}

func (r *memSalaryRepo) InsertStructure(_ context.Context, s salary.Structure) (salary.Structure, error) {
	r.seq++
	s.ID = fmt.Sprintf("struct-%d", r.seq)
	r.structures = append(r.structures, s)
	return s, nil
}

func (r *memSalaryRepo) GetEffectiveStructure(_ context.Context, employeeID string, asOf time.Time) (salary.Structure, error) {
	var best *salary.Structure
	for i := range r.structures {
		s := &r.structures[i]
		if s.EmployeeID != employeeID || s.EffectiveFrom.After(asOf) {
			continue
		}
		if best == nil || s.EffectiveFrom.After(best.EffectiveFrom) {
			best = s
		}
	}
	if best == nil {
		return salary.Structure{}, salary.ErrStructureNotFound
	}
	return *best, nil
}

func (r *memSalaryRepo) ListStructureHistory(_ context.Context, employeeID string) ([]salary.Structure, error) {
	var out []salary.Structure
	for _, s := range r.structures {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSalaryRepo) GetEffectiveStructures(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string]salary.Structure, error) {
	out := make(map[string]salary.Structure)
	for _, id := range employeeIDs {
		if s, err := r.GetEffectiveStructure(ctx, id, asOf); err == nil {
			out[id] = s
		}
	}
	return out, nil
}

func (r *memSalaryRepo) CreateChangeRequest(_ context.Context, req salary.ChangeRequest) (salary.ChangeRequest, error) {
	r.seq++
	req.ID = fmt.Sprintf("cr-%d", r.seq)
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return req, nil
}

func (r *memSalaryRepo) GetChangeRequestByID(_ context.Context, id string) (salary.ChangeRequest, error) {
	cr, ok := r.requests[id]
	if !ok {
		return salary.ChangeRequest{}, salary.ErrChangeRequestNotFound
	}
	return cr, nil
}

func (r *memSalaryRepo) ListChangeRequests(_ context.Context, status *salary.RequestStatus) ([]salary.ChangeRequest, error) {
	var out []salary.ChangeRequest
	for _, cr := range r.requests {
		if status != nil && cr.Status != *status {
			continue
		}
		out = append(out, cr)
	}
	return out, nil
}

func (r *memSalaryRepo) UpdateChangeRequest(_ context.Context, req salary.ChangeRequest) (salary.ChangeRequest, error) {
	if _, ok := r.requests[req.ID]; !ok {
		return salary.ChangeRequest{}, salary.ErrChangeRequestNotFound
	}
	r.requests[req.ID] = req
	return req, nil
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type memAuditRepo struct {
	entries []audit.Entry
}

func (r *memAuditRepo) Append(_ context.Context, entry audit.Entry) (audit.Entry, error) {
	if entry.Reason == "" {
		return audit.Entry{}, audit.ErrReasonRequired
	}
	entry.ID = fmt.Sprintf("audit-%d", len(r.entries)+1)
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *memAuditRepo) ListByTarget(_ context.Context, targetType audit.TargetType, targetID string) ([]audit.Entry, error) {
	var out []audit.Entry
	for _, e := range r.entries {
		if e.TargetType == targetType && e.TargetID == targetID {
			out = append(out, e)
		}
	}
	return out, nil
}

type salaryTestEnv struct {
	svc      *SalaryServiceImpl
	salaries *memSalaryRepo
	audits   *memAuditRepo
}

func newSalaryTestEnv() *salaryTestEnv {
	salaries := newMemSalaryRepo()
	audits := &memAuditRepo{}
	employees := &memEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Code: "E-001", IsActive: true},
	}}
	return &salaryTestEnv{
		svc:      NewSalaryService(nil, salaries, employees, audits),
		salaries: salaries,
		audits:   audits,
	}
}

func roleContext(t *testing.T, role string) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("user_id", "user-"+role))
	require.NoError(t, tok.Set("role", role))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func editRequest() salary.EditStructureRequest {
	return salary.EditStructureRequest{
		Components: payroll.Components{
			Basic: decimal.NewFromInt(20000),
			DA:    decimal.NewFromInt(5000),
		},
		EPFApplicable: true,
		EffectiveFrom: "2026-07-01",
		Reason:        "annual revision",
	}
}

func TestEditStructureDirectorAppliesImmediately(t *testing.T) {
	env := newSalaryTestEnv()
	ctx := roleContext(t, "director")

	resp, err := env.svc.EditStructure(ctx, "emp-1", editRequest())
	require.NoError(t, err)

	assert.True(t, resp.Applied)
	require.NotNil(t, resp.Structure)
	assert.Nil(t, resp.ChangeRequestID)
	assert.True(t, resp.Structure.TotalFixed.Equal(decimal.NewFromInt(25000)),
		"total %s", resp.Structure.TotalFixed)
	assert.Equal(t, "2026-07-01", resp.Structure.EffectiveFrom)

	require.Len(t, env.salaries.structures, 1)
	require.Len(t, env.audits.entries, 1)
	assert.Equal(t, audit.TargetSalaryStructure, env.audits.entries[0].TargetType)
	assert.Equal(t, "annual revision", env.audits.entries[0].Reason)
}

func TestEditStructureHRCreatesChangeRequest(t *testing.T) {
	env := newSalaryTestEnv()
	ctx := roleContext(t, "hr")

	resp, err := env.svc.EditStructure(ctx, "emp-1", editRequest())
	require.NoError(t, err)

	assert.False(t, resp.Applied)
	assert.Nil(t, resp.Structure)
	require.NotNil(t, resp.ChangeRequestID)

	cr, err := env.salaries.GetChangeRequestByID(context.Background(), *resp.ChangeRequestID)
	require.NoError(t, err)
	assert.Equal(t, salary.RequestPending, cr.Status)
	assert.Equal(t, "user-hr", cr.RequestedBy)
	assert.Nil(t, cr.Previous)

	// Nothing applied or audited until a director decides.
	assert.Empty(t, env.salaries.structures)
	assert.Empty(t, env.audits.entries)
}

func TestEditStructureUnknownEmployee(t *testing.T) {
	env := newSalaryTestEnv()
	ctx := roleContext(t, "director")

	_, err := env.svc.EditStructure(ctx, "emp-404", editRequest())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEditStructureValidation(t *testing.T) {
	env := newSalaryTestEnv()
	ctx := roleContext(t, "director")

	req := editRequest()
	req.Components = payroll.Components{}
	_, err := env.svc.EditStructure(ctx, "emp-1", req)
	assert.Error(t, err)

	req = editRequest()
	req.Reason = ""
	_, err = env.svc.EditStructure(ctx, "emp-1", req)
	assert.Error(t, err)
}

func TestDecideChangeRequestApproval(t *testing.T) {
	env := newSalaryTestEnv()

	resp, err := env.svc.EditStructure(roleContext(t, "hr"), "emp-1", editRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.ChangeRequestID)

	decided, err := env.svc.DecideChangeRequest(roleContext(t, "director"), *resp.ChangeRequestID,
		salary.DecideChangeRequest{Approve: true})
	require.NoError(t, err)

	assert.Equal(t, string(salary.RequestApproved), decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "user-director", *decided.DecidedBy)

	require.Len(t, env.salaries.structures, 1)
	assert.True(t, env.salaries.structures[0].TotalFixed.Equal(decimal.NewFromInt(25000)))
	assert.Len(t, env.audits.entries, 1)
}

func TestDecideChangeRequestRejection(t *testing.T) {
	env := newSalaryTestEnv()

	resp, err := env.svc.EditStructure(roleContext(t, "hr"), "emp-1", editRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.ChangeRequestID)

	t.Run("rejection requires a reason", func(t *testing.T) {
		_, err := env.svc.DecideChangeRequest(roleContext(t, "director"), *resp.ChangeRequestID,
			salary.DecideChangeRequest{Approve: false})
		assert.Error(t, err)
	})

	t.Run("rejection with reason", func(t *testing.T) {
		decided, err := env.svc.DecideChangeRequest(roleContext(t, "director"), *resp.ChangeRequestID,
			salary.DecideChangeRequest{Approve: false, Reason: "budget freeze"})
		require.NoError(t, err)
		assert.Equal(t, string(salary.RequestRejected), decided.Status)
		require.NotNil(t, decided.DecisionReason)
		assert.Equal(t, "budget freeze", *decided.DecisionReason)

		assert.Empty(t, env.salaries.structures)
	})
}

func TestDecideChangeRequestDirectorOnly(t *testing.T) {
	env := newSalaryTestEnv()

	resp, err := env.svc.EditStructure(roleContext(t, "hr"), "emp-1", editRequest())
	require.NoError(t, err)

	_, err = env.svc.DecideChangeRequest(roleContext(t, "hr"), *resp.ChangeRequestID,
		salary.DecideChangeRequest{Approve: true})
	assert.Error(t, err)
}

func TestDecideChangeRequestAlreadyDecided(t *testing.T) {
	env := newSalaryTestEnv()

	resp, err := env.svc.EditStructure(roleContext(t, "hr"), "emp-1", editRequest())
	require.NoError(t, err)

	_, err = env.svc.DecideChangeRequest(roleContext(t, "director"), *resp.ChangeRequestID,
		salary.DecideChangeRequest{Approve: true})
	require.NoError(t, err)

	_, err = env.svc.DecideChangeRequest(roleContext(t, "director"), *resp.ChangeRequestID,
		salary.DecideChangeRequest{Approve: true})
	assert.ErrorIs(t, err, salary.ErrChangeRequestDecided)
}

func TestGetStructureEffectiveDating(t *testing.T) {
	env := newSalaryTestEnv()
	director := roleContext(t, "director")

	_, err := env.svc.EditStructure(director, "emp-1", editRequest())
	require.NoError(t, err)

	raise := editRequest()
	raise.Components.Basic = decimal.NewFromInt(30000)
	raise.EffectiveFrom = "2026-09-01"
	raise.Reason = "promotion"
	_, err = env.svc.EditStructure(director, "emp-1", raise)
	require.NoError(t, err)

	before, err := env.svc.GetStructure(context.Background(), "emp-1",
		time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, before.Components.Basic.Equal(decimal.NewFromInt(20000)))

	after, err := env.svc.GetStructure(context.Background(), "emp-1",
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, after.Components.Basic.Equal(decimal.NewFromInt(30000)))

	history, err := env.svc.ListStructureHistory(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
