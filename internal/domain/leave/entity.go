package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// TypeRule defines one leave code: whether days under it are paid, how much
// of a day's pay an unpaid day forfeits, its annual quota and carry-forward
// behavior at financial-year rollover.
type TypeRule struct {
	ID   string
	Code string
	Name string
	// IsPaid leave consumes quota without a pay deduction.
	IsPaid bool
	// DeductionPercent of a day's pay withheld per day of this leave.
	// 0 when paid, 100 when fully unpaid, fractional otherwise.
	DeductionPercent decimal.Decimal
	AnnualQuota      decimal.Decimal
	CarryForward     bool
	// MaxAccumulation caps the balance carried into the next financial year.
	MaxAccumulation decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SundayRule converts an employee's weekly-off into a leave-consuming day
// when surrounding leave density crosses the configured thresholds.
type SundayRule struct {
	Enabled          bool `json:"enabled"`
	WeeklyThreshold  int  `json:"weekly_threshold"`
	MonthlyThreshold int  `json:"monthly_threshold"`
	AutoApply        bool `json:"auto_apply"`
}

// PolicyConfig is the single organization-wide leave policy row.
type PolicyConfig struct {
	ID                      string
	FinancialYearStartMonth int
	FinancialYearStartDay   int
	Sunday                  SundayRule
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultPolicyConfig matches Indian financial-year conventions: year starts
// April 1, Sunday rule at 2/week and 6/month.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		FinancialYearStartMonth: 4,
		FinancialYearStartDay:   1,
		Sunday: SundayRule{
			Enabled:          true,
			WeeklyThreshold:  2,
			MonthlyThreshold: 6,
			AutoApply:        true,
		},
	}
}

// Record is one approved leave grant.
type Record struct {
	ID         string
	EmployeeID string
	LeaveCode  string
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
}

// Days returns the number of calendar days the record spans.
func (r Record) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// Covers reports whether the record spans the given date.
func (r Record) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Balance tracks one employee's quota for one leave code in one financial
// year. Balance may go negative; negative balances surface as unpaid days.
type Balance struct {
	ID         string
	EmployeeID string
	LeaveCode  string
	// Year is the calendar year the financial year starts in.
	Year      int
	Opening   decimal.Decimal
	Quota     decimal.Decimal
	Consumed  decimal.Decimal
	UpdatedAt time.Time
}

// Remaining is opening + quota − consumed.
func (b Balance) Remaining() decimal.Decimal {
	return b.Opening.Add(b.Quota).Sub(b.Consumed)
}

// SundayPenalty is one weekly-off day converted into leave consumption.
type SundayPenalty struct {
	EmployeeID string
	Date       time.Time
	LeaveCode  string
	// WindowCount is the leave count that tripped the threshold.
	WindowCount int
	Window      string // "weekly" or "monthly"
}
