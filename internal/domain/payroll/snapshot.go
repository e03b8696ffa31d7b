package payroll

import (
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
)

// RulesSnapshot freezes every configuration input of a payroll run at the
// moment processing starts. Processed and locked payslips are always
// reproducible from their run's snapshot, regardless of later config edits.
type RulesSnapshot struct {
	Statutory        StatutoryConfig   `json:"statutory"`
	AttendancePolicy attendance.Policy `json:"attendance_policy"`
	LeaveTypes       []leave.TypeRule  `json:"leave_types"`
	LeavePolicy      leave.PolicyConfig `json:"leave_policy"`
	CustomRules      []CustomRule      `json:"custom_rules"`
}

// LeaveType looks up a frozen leave type rule by code.
func (s *RulesSnapshot) LeaveType(code string) (leave.TypeRule, bool) {
	for _, lt := range s.LeaveTypes {
		if lt.Code == code {
			return lt, true
		}
	}
	return leave.TypeRule{}, false
}
