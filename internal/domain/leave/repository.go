package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// Type rules
	CreateTypeRule(ctx context.Context, rule TypeRule) (TypeRule, error)
	GetTypeRuleByCode(ctx context.Context, code string) (TypeRule, error)
	ListTypeRules(ctx context.Context, activeOnly bool) ([]TypeRule, error)
	UpdateTypeRule(ctx context.Context, rule TypeRule) (TypeRule, error)
	DeleteTypeRule(ctx context.Context, code string) error

	// Policy config
	GetPolicyConfig(ctx context.Context) (PolicyConfig, error)
	UpsertPolicyConfig(ctx context.Context, cfg PolicyConfig) (PolicyConfig, error)

	// Records
	CreateRecord(ctx context.Context, rec Record) (Record, error)
	ListRecords(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
	ListRecordsForPeriod(ctx context.Context, employeeIDs []string, from, to time.Time) (map[string][]Record, error)

	// Balances
	GetBalance(ctx context.Context, employeeID, leaveCode string, year int) (Balance, error)
	ListBalances(ctx context.Context, employeeID string, year int) ([]Balance, error)
	UpsertBalance(ctx context.Context, bal Balance) (Balance, error)
	AddConsumed(ctx context.Context, employeeID, leaveCode string, year int, days float64) error
}
