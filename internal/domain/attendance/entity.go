package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayStatus is the single canonical status resolved for an employee-date.
type DayStatus string

const (
	StatusPresent   DayStatus = "present"
	StatusAbsent    DayStatus = "absent"
	StatusHalfDay   DayStatus = "half_day"
	StatusWFH       DayStatus = "wfh"
	StatusTour      DayStatus = "tour"
	StatusLeave     DayStatus = "leave"
	StatusHoliday   DayStatus = "holiday"
	StatusWeeklyOff DayStatus = "weekly_off"
)

// ValidStatuses lists every status a day may carry.
var ValidStatuses = []DayStatus{
	StatusPresent, StatusAbsent, StatusHalfDay, StatusWFH,
	StatusTour, StatusLeave, StatusHoliday, StatusWeeklyOff,
}

func (s DayStatus) Valid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Source records where the classification input came from.
type Source string

const (
	SourceBiometric Source = "biometric"
	SourceManual    Source = "manual"
	SourceTour      Source = "tour"
	SourceWFH       Source = "wfh"
)

// Day is one classified attendance record. Exactly one per employee per
// date; immutable once written except through an audited manual edit.
type Day struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	Source         Source
	Status         DayStatus
	LeaveCode      *string
	FirstIn        *time.Time
	LastOut        *time.Time
	TotalHours     float64
	IsLate         bool
	LateMinutes    int
	EarlyDeparture bool
	ManuallyEdited bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Policy holds the classification knobs. A single row, editable by HR.
type Policy struct {
	ID string
	// GraceCutoff is the local clock time ("15:04") after which a first
	// punch counts as late.
	GraceCutoff string
	// EarlyOutCutoff marks departures before this clock time as early.
	EarlyOutCutoff string
	MinHoursFullDay float64
	MinHoursHalfDay float64
	// HalfDayDeductionPercent of a day's pay withheld for a half day.
	HalfDayDeductionPercent decimal.Decimal
	// AbsentDayMultiplier paid days removed per absent day (1, 1.5 or 2).
	// Composes additively with absent_count custom rules.
	AbsentDayMultiplier decimal.Decimal
	WeeklyOffDay        time.Weekday
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultPolicy returns the classification defaults used until HR edits them.
func DefaultPolicy() Policy {
	return Policy{
		GraceCutoff:             "09:45",
		EarlyOutCutoff:          "17:30",
		MinHoursFullDay:         8,
		MinHoursHalfDay:         4,
		HalfDayDeductionPercent: decimal.NewFromInt(50),
		AbsentDayMultiplier:     decimal.NewFromInt(1),
		WeeklyOffDay:            time.Sunday,
	}
}

// DayInput is everything known about one employee-date before classification.
type DayInput struct {
	EmployeeID string
	Date       time.Time
	Punches    []time.Time
	IsHoliday  bool
	// Leave, Tour and WFH are approved grants overlapping the date.
	LeaveCode      *string
	OnTour         bool
	WFHGranted     bool
	ManualOverride *DayStatus
}

// MonthlyAggregate are the per-employee counters the custom rule engine and
// payslip assembler consume.
type MonthlyAggregate struct {
	WorkingDays         int
	OfficeDays          int
	WFHDays             int
	TourDays            int
	LeaveDays           int
	HolidayDays         int
	WeeklyOffDays       int
	HalfDayCount        int
	AbsentCount         int
	AbsentWithoutLeave  int
	LateCount           int
	EarlyDepartureCount int
	PaidDays            decimal.Decimal
	UnpaidLeaveDays     decimal.Decimal
}
