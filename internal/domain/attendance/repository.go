package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// UpsertDay writes the single row for employee+date, preserving ID and
	// CreatedAt when the row already exists.
	UpsertDay(ctx context.Context, day Day) (Day, error)
	GetDay(ctx context.Context, employeeID string, date time.Time) (Day, error)
	ListDays(ctx context.Context, employeeID string, from, to time.Time) ([]Day, error)
	ListDaysForPeriod(ctx context.Context, employeeIDs []string, month, year int) (map[string][]Day, error)

	GetPolicy(ctx context.Context) (Policy, error)
	UpsertPolicy(ctx context.Context, policy Policy) (Policy, error)
}
