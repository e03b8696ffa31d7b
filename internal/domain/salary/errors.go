package salary

import "errors"

var (
	ErrStructureNotFound       = errors.New("salary structure not found")
	ErrChangeRequestNotFound   = errors.New("salary change request not found")
	ErrChangeRequestDecided    = errors.New("salary change request already decided")
	ErrDecisionReasonRequired  = errors.New("rejection requires a reason")
)
