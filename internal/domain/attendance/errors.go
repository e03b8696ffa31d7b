package attendance

import "errors"

var (
	ErrDayNotFound       = errors.New("attendance day not found")
	ErrPolicyNotFound    = errors.New("attendance policy not found")
	ErrEditReasonMissing = errors.New("manual attendance edit requires a reason")
	ErrInvalidStatus     = errors.New("invalid attendance status")
)
