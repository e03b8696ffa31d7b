package audit

import "errors"

var (
	ErrReasonRequired = errors.New("audit reason is required")
	ErrEntryNotFound  = errors.New("audit entry not found")
)
