package salary

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/actor"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/employee"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/salary"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
)

type SalaryServiceImpl struct {
	db           *database.DB
	salaryRepo   salary.SalaryRepository
	employeeRepo employee.EmployeeRepository
	auditRepo    audit.AuditRepository
}

func NewSalaryService(
	db *database.DB,
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
) *SalaryServiceImpl {
	return &SalaryServiceImpl{
		db:           db,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
	}
}

// EditStructure applies a salary change. Directors edit directly; everyone
// else produces a pending change request that a director must decide.
func (s *SalaryServiceImpl) EditStructure(ctx context.Context, employeeID string, req salary.EditStructureRequest) (salary.EditStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.EditStructureResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return salary.EditStructureResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return salary.EditStructureResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	proposed := salary.Structure{
		EmployeeID:     employeeID,
		Components:     req.Components,
		EPFApplicable:  req.EPFApplicable,
		ESIApplicable:  req.ESIApplicable,
		SewaApplicable: req.SewaApplicable,
		SewaAdvance:    req.SewaAdvance,
		OtherDeduction: req.OtherDeduction,
		EffectiveFrom:  effectiveFrom,
	}
	proposed.Recalculate()

	previous, err := s.currentStructure(ctx, employeeID)
	if err != nil {
		return salary.EditStructureResponse{}, err
	}

	if act.CanEditSalaryDirectly() {
		applied, err := s.applyStructure(ctx, act, proposed, previous, req.Reason)
		if err != nil {
			return salary.EditStructureResponse{}, err
		}
		resp := mapStructureResponse(applied)
		return salary.EditStructureResponse{Applied: true, Structure: &resp}, nil
	}

	created, err := s.salaryRepo.CreateChangeRequest(ctx, salary.ChangeRequest{
		EmployeeID:  employeeID,
		Proposed:    proposed,
		Previous:    previous,
		Reason:      req.Reason,
		RequestedBy: act.UserID,
		Status:      salary.RequestPending,
	})
	if err != nil {
		return salary.EditStructureResponse{}, err
	}

	return salary.EditStructureResponse{Applied: false, ChangeRequestID: &created.ID}, nil
}

// DecideChangeRequest approves or rejects a pending request. Only directors
// reach this; rejection requires a reason, approval inserts the proposed
// structure as a new version.
func (s *SalaryServiceImpl) DecideChangeRequest(ctx context.Context, requestID string, req salary.DecideChangeRequest) (salary.ChangeRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ChangeRequestResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return salary.ChangeRequestResponse{}, err
	}
	if !act.CanEditSalaryDirectly() {
		return salary.ChangeRequestResponse{}, actor.ErrDirectorAccessRequired
	}

	cr, err := s.salaryRepo.GetChangeRequestByID(ctx, requestID)
	if err != nil {
		return salary.ChangeRequestResponse{}, err
	}
	if cr.Status != salary.RequestPending {
		return salary.ChangeRequestResponse{}, salary.ErrChangeRequestDecided
	}

	now := time.Now()
	cr.DecidedBy = &act.UserID
	cr.DecidedAt = &now
	if req.Reason != "" {
		cr.DecisionReason = &req.Reason
	}

	if req.Approve {
		cr.Status = salary.RequestApproved
		if _, err := s.applyStructure(ctx, act, cr.Proposed, cr.Previous, cr.Reason); err != nil {
			return salary.ChangeRequestResponse{}, err
		}
	} else {
		cr.Status = salary.RequestRejected
	}

	updated, err := s.salaryRepo.UpdateChangeRequest(ctx, cr)
	if err != nil {
		return salary.ChangeRequestResponse{}, err
	}

	return mapChangeRequestResponse(updated), nil
}

func (s *SalaryServiceImpl) GetStructure(ctx context.Context, employeeID string, asOf time.Time) (salary.StructureResponse, error) {
	structure, err := s.salaryRepo.GetEffectiveStructure(ctx, employeeID, asOf)
	if err != nil {
		return salary.StructureResponse{}, err
	}
	return mapStructureResponse(structure), nil
}

func (s *SalaryServiceImpl) ListStructureHistory(ctx context.Context, employeeID string) ([]salary.StructureResponse, error) {
	history, err := s.salaryRepo.ListStructureHistory(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	result := make([]salary.StructureResponse, 0, len(history))
	for _, st := range history {
		result = append(result, mapStructureResponse(st))
	}
	return result, nil
}

func (s *SalaryServiceImpl) GetChangeRequest(ctx context.Context, id string) (salary.ChangeRequestResponse, error) {
	cr, err := s.salaryRepo.GetChangeRequestByID(ctx, id)
	if err != nil {
		return salary.ChangeRequestResponse{}, err
	}
	return mapChangeRequestResponse(cr), nil
}

func (s *SalaryServiceImpl) ListChangeRequests(ctx context.Context, status *salary.RequestStatus) ([]salary.ChangeRequestResponse, error) {
	requests, err := s.salaryRepo.ListChangeRequests(ctx, status)
	if err != nil {
		return nil, err
	}

	result := make([]salary.ChangeRequestResponse, 0, len(requests))
	for _, cr := range requests {
		result = append(result, mapChangeRequestResponse(cr))
	}
	return result, nil
}

// ========== HELPERS ==========

func (s *SalaryServiceImpl) currentStructure(ctx context.Context, employeeID string) (*salary.Structure, error) {
	current, err := s.salaryRepo.GetEffectiveStructure(ctx, employeeID, time.Now())
	if err != nil {
		if errors.Is(err, salary.ErrStructureNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &current, nil
}

func (s *SalaryServiceImpl) applyStructure(ctx context.Context, act actor.Actor, proposed salary.Structure, previous *salary.Structure, reason string) (salary.Structure, error) {
	inserted, err := s.salaryRepo.InsertStructure(ctx, proposed)
	if err != nil {
		return salary.Structure{}, err
	}

	var before json.RawMessage
	if previous != nil {
		before, _ = json.Marshal(mapStructureResponse(*previous))
	}
	after, _ := json.Marshal(mapStructureResponse(inserted))

	_, err = s.auditRepo.Append(ctx, audit.Entry{
		TargetType: audit.TargetSalaryStructure,
		TargetID:   inserted.ID,
		Actor:      act.UserID,
		Reason:     reason,
		Before:     before,
		After:      after,
	})
	if err != nil {
		return salary.Structure{}, err
	}

	return inserted, nil
}

func mapStructureResponse(st salary.Structure) salary.StructureResponse {
	return salary.StructureResponse{
		ID:             st.ID,
		EmployeeID:     st.EmployeeID,
		Components:     st.Components,
		TotalFixed:     st.TotalFixed,
		EPFApplicable:  st.EPFApplicable,
		ESIApplicable:  st.ESIApplicable,
		SewaApplicable: st.SewaApplicable,
		SewaAdvance:    st.SewaAdvance,
		OtherDeduction: st.OtherDeduction,
		EffectiveFrom:  st.EffectiveFrom.Format("2006-01-02"),
	}
}

func mapChangeRequestResponse(cr salary.ChangeRequest) salary.ChangeRequestResponse {
	resp := salary.ChangeRequestResponse{
		ID:             cr.ID,
		EmployeeID:     cr.EmployeeID,
		Proposed:       mapStructureResponse(cr.Proposed),
		Reason:         cr.Reason,
		RequestedBy:    cr.RequestedBy,
		Status:         string(cr.Status),
		DecidedBy:      cr.DecidedBy,
		DecisionReason: cr.DecisionReason,
	}
	if cr.Previous != nil {
		prev := mapStructureResponse(*cr.Previous)
		resp.Previous = &prev
	}
	return resp
}
