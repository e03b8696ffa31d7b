package response

import (
	"errors"
	"net/http"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/actor"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/audit"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/employee"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/leave"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/salary"
	"github.com/Jaidataanalytics/hrms-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Actor errors
	case errors.Is(err, actor.ErrMissingActor):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, actor.ErrUnknownRole):
		Forbidden(w, "Unknown role")
	case errors.Is(err, actor.ErrDirectorAccessRequired):
		Forbidden(w, "Director access required")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance errors
	case errors.Is(err, attendance.ErrDayNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEditReasonMissing):
		BadRequest(w, "A reason is required for manual edits", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)

	// Leave errors
	case errors.Is(err, leave.ErrTypeRuleNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrTypeRuleCodeExists):
		Conflict(w, "Leave type code already exists")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Payroll errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunAlreadyExists):
		Conflict(w, "A payroll run for this period already exists")
	case errors.Is(err, payroll.ErrRunStatusConflict):
		Conflict(w, "Payroll run is not in the required status")
	case errors.Is(err, payroll.ErrRunLocked):
		Conflict(w, "Payroll run is locked")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrCustomRuleNotFound):
		NotFound(w, "Custom rule not found")
	case errors.Is(err, payroll.ErrDefaultRuleDelete):
		Conflict(w, "Default rules cannot be deleted, only disabled")
	case errors.Is(err, payroll.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, payroll.ErrAdvanceExhausted):
		Conflict(w, "Advance is fully recovered")
	case errors.Is(err, payroll.ErrDeductionNotFound):
		NotFound(w, "One-time deduction not found")
	case errors.Is(err, payroll.ErrMissingSalary):
		BadRequest(w, "Employee has no salary structure", nil)
	case errors.Is(err, payroll.ErrSnapshotMissing):
		Conflict(w, "Run has no rules snapshot; process it first")

	// Salary errors
	case errors.Is(err, salary.ErrStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, salary.ErrChangeRequestNotFound):
		NotFound(w, "Change request not found")
	case errors.Is(err, salary.ErrChangeRequestDecided):
		Conflict(w, "Change request already decided")
	case errors.Is(err, salary.ErrDecisionReasonRequired):
		BadRequest(w, "Rejection requires a reason", nil)

	// Audit errors
	case errors.Is(err, audit.ErrReasonRequired):
		BadRequest(w, "A reason is required", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
