package leave

import "errors"

var (
	ErrTypeRuleNotFound   = errors.New("leave type rule not found")
	ErrTypeRuleCodeExists = errors.New("leave type code already exists")
	ErrPolicyNotFound     = errors.New("leave policy config not found")
	ErrBalanceNotFound    = errors.New("leave balance not found")
	ErrRecordNotFound     = errors.New("leave record not found")
)
