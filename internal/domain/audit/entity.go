package audit

import (
	"encoding/json"
	"time"
)

// TargetType identifies the record an entry is about.
type TargetType string

const (
	TargetAttendanceDay   TargetType = "attendance_day"
	TargetPayslip         TargetType = "payslip"
	TargetPayrollRun      TargetType = "payroll_run"
	TargetSalaryStructure TargetType = "salary_structure"
	TargetLeaveBalance    TargetType = "leave_balance"
	TargetCustomRule      TargetType = "custom_rule"
	TargetSewaAdvance     TargetType = "sewa_advance"
)

// Entry is one append-only audit record. Reason is mandatory for every
// manual mutation; Before/After hold the JSON-encoded value diff.
type Entry struct {
	ID         string
	TargetType TargetType
	TargetID   string
	Actor      string
	Reason     string
	Before     json.RawMessage
	After      json.RawMessage
	CreatedAt  time.Time
}
