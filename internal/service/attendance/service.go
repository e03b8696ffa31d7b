package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/actor"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	auditRepo      audit.AuditRepository
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	auditRepo audit.AuditRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		auditRepo:      auditRepo,
	}
}

// Policy returns the active classification policy, falling back to defaults
// when HR has never edited it.
func (s *AttendanceServiceImpl) Policy(ctx context.Context) (attendance.Policy, error) {
	policy, err := s.attendanceRepo.GetPolicy(ctx)
	if err != nil {
		if errors.Is(err, attendance.ErrPolicyNotFound) {
			return attendance.DefaultPolicy(), nil
		}
		return attendance.Policy{}, err
	}
	return policy, nil
}

func (s *AttendanceServiceImpl) UpdatePolicy(ctx context.Context, req attendance.UpdatePolicyRequest) (attendance.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PolicyResponse{}, err
	}

	current, err := s.Policy(ctx)
	if err != nil {
		return attendance.PolicyResponse{}, err
	}

	if req.GraceCutoff != nil {
		current.GraceCutoff = *req.GraceCutoff
	}
	if req.EarlyOutCutoff != nil {
		current.EarlyOutCutoff = *req.EarlyOutCutoff
	}
	if req.MinHoursFullDay != nil {
		current.MinHoursFullDay = *req.MinHoursFullDay
	}
	if req.MinHoursHalfDay != nil {
		current.MinHoursHalfDay = *req.MinHoursHalfDay
	}
	if req.HalfDayDeductionPercent != nil {
		current.HalfDayDeductionPercent = *req.HalfDayDeductionPercent
	}
	if req.AbsentDayMultiplier != nil {
		current.AbsentDayMultiplier = *req.AbsentDayMultiplier
	}
	if req.WeeklyOffDay != nil {
		current.WeeklyOffDay = time.Weekday(*req.WeeklyOffDay)
	}

	updated, err := s.attendanceRepo.UpsertPolicy(ctx, current)
	if err != nil {
		return attendance.PolicyResponse{}, err
	}

	return mapPolicyResponse(updated), nil
}

func (s *AttendanceServiceImpl) GetPolicy(ctx context.Context) (attendance.PolicyResponse, error) {
	policy, err := s.Policy(ctx)
	if err != nil {
		return attendance.PolicyResponse{}, err
	}
	return mapPolicyResponse(policy), nil
}

// ClassifyDay resolves and persists the single canonical record for an
// employee-date from raw inputs.
func (s *AttendanceServiceImpl) ClassifyDay(ctx context.Context, req attendance.ClassifyDayRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	policy, err := s.Policy(ctx)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	punches := make([]time.Time, 0, len(req.Punches))
	for _, p := range req.Punches {
		clock, _ := time.Parse("15:04", p)
		punches = append(punches, time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location()))
	}

	day := ClassifyDay(policy, attendance.DayInput{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Punches:    punches,
		IsHoliday:  req.IsHoliday,
		LeaveCode:  req.LeaveCode,
		OnTour:     req.OnTour,
		WFHGranted: req.WFHGranted,
	})

	// Manually edited rows win over reclassification; history is preserved
	// and only changes through an audited manual edit.
	if existing, err := s.attendanceRepo.GetDay(ctx, req.EmployeeID, date); err == nil && existing.ManuallyEdited {
		return mapDayResponse(existing), nil
	}

	saved, err := s.attendanceRepo.UpsertDay(ctx, day)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to save attendance day: %w", err)
	}

	return mapDayResponse(saved), nil
}

// ManualEdit overrides a classified day. The reason is mandatory and the
// change is recorded as an audit entry with the before/after values.
func (s *AttendanceServiceImpl) ManualEdit(ctx context.Context, req attendance.ManualEditRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	existing, err := s.attendanceRepo.GetDay(ctx, req.EmployeeID, date)
	if err != nil {
		if !errors.Is(err, attendance.ErrDayNotFound) {
			return attendance.DayResponse{}, err
		}
		existing = attendance.Day{
			EmployeeID: req.EmployeeID,
			Date:       date,
			Source:     attendance.SourceManual,
			Status:     attendance.StatusAbsent,
		}
	}

	before, _ := json.Marshal(mapDayResponse(existing))

	updated := existing
	updated.Status = attendance.DayStatus(req.Status)
	updated.Source = attendance.SourceManual
	updated.ManuallyEdited = true

	saved, err := s.attendanceRepo.UpsertDay(ctx, updated)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to save manual edit: %w", err)
	}

	after, _ := json.Marshal(mapDayResponse(saved))
	_, err = s.auditRepo.Append(ctx, audit.Entry{
		TargetType: audit.TargetAttendanceDay,
		TargetID:   saved.ID,
		Actor:      act.UserID,
		Reason:     req.Reason,
		Before:     before,
		After:      after,
	})
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to append audit entry: %w", err)
	}

	return mapDayResponse(saved), nil
}

func (s *AttendanceServiceImpl) ListDays(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.DayResponse, error) {
	days, err := s.attendanceRepo.ListDays(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.DayResponse, 0, len(days))
	for _, d := range days {
		result = append(result, mapDayResponse(d))
	}
	return result, nil
}

// ========== HELPERS ==========

func mapDayResponse(d attendance.Day) attendance.DayResponse {
	return attendance.DayResponse{
		ID:             d.ID,
		EmployeeID:     d.EmployeeID,
		Date:           d.Date.Format("2006-01-02"),
		Source:         string(d.Source),
		Status:         string(d.Status),
		LeaveCode:      d.LeaveCode,
		FirstIn:        timePtrToString(d.FirstIn),
		LastOut:        timePtrToString(d.LastOut),
		TotalHours:     d.TotalHours,
		IsLate:         d.IsLate,
		LateMinutes:    d.LateMinutes,
		EarlyDeparture: d.EarlyDeparture,
		ManuallyEdited: d.ManuallyEdited,
	}
}

func mapPolicyResponse(p attendance.Policy) attendance.PolicyResponse {
	return attendance.PolicyResponse{
		ID:                      p.ID,
		GraceCutoff:             p.GraceCutoff,
		EarlyOutCutoff:          p.EarlyOutCutoff,
		MinHoursFullDay:         p.MinHoursFullDay,
		MinHoursHalfDay:         p.MinHoursHalfDay,
		HalfDayDeductionPercent: p.HalfDayDeductionPercent,
		AbsentDayMultiplier:     p.AbsentDayMultiplier,
		WeeklyOffDay:            int(p.WeeklyOffDay),
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	str := t.Format("15:04")
	return &str
}
