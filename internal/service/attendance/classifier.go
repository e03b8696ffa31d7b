package attendance

import (
	"math"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
)

// ClassifyDay resolves exactly one status for an employee-date using the
// precedence: manual override > approved leave > approved tour > WFH grant >
// biometric punches > holiday > weekly-off > absent.
func ClassifyDay(policy attendance.Policy, in attendance.DayInput) attendance.Day {
	day := attendance.Day{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		Source:     attendance.SourceBiometric,
	}

	// Punch-derived fields are computed whenever punches exist, even when a
	// grant decides the final status, so lateness history stays complete.
	if len(in.Punches) > 0 {
		applyPunches(policy, &day, in.Punches)
	}

	switch {
	case in.ManualOverride != nil:
		day.Status = *in.ManualOverride
		day.Source = attendance.SourceManual
	case in.LeaveCode != nil:
		day.Status = attendance.StatusLeave
		day.LeaveCode = in.LeaveCode
		day.Source = attendance.SourceManual
	case in.OnTour:
		day.Status = attendance.StatusTour
		day.Source = attendance.SourceTour
	case in.WFHGranted:
		day.Status = attendance.StatusWFH
		day.Source = attendance.SourceWFH
	case len(in.Punches) > 0:
		day.Status = statusFromHours(policy, day.TotalHours)
	case in.IsHoliday:
		day.Status = attendance.StatusHoliday
	case in.Date.Weekday() == policy.WeeklyOffDay:
		day.Status = attendance.StatusWeeklyOff
	default:
		day.Status = attendance.StatusAbsent
	}

	return day
}

// applyPunches pairs the first punch before noon as IN and the last punch
// after noon as OUT, then derives hours, lateness and early departure.
func applyPunches(policy attendance.Policy, day *attendance.Day, punches []time.Time) {
	noon := time.Date(day.Date.Year(), day.Date.Month(), day.Date.Day(), 12, 0, 0, 0, day.Date.Location())

	var firstIn, lastOut *time.Time
	for _, p := range punches {
		p := p
		if p.Before(noon) {
			if firstIn == nil || p.Before(*firstIn) {
				firstIn = &p
			}
		} else {
			if lastOut == nil || p.After(*lastOut) {
				lastOut = &p
			}
		}
	}

	day.FirstIn = firstIn
	day.LastOut = lastOut

	if firstIn != nil && lastOut != nil {
		hours := lastOut.Sub(*firstIn).Hours()
		day.TotalHours = math.Round(hours*100) / 100
	}

	if firstIn != nil {
		cutoff := clockOnDate(day.Date, policy.GraceCutoff)
		if firstIn.After(cutoff) {
			day.IsLate = true
			day.LateMinutes = int(firstIn.Sub(cutoff).Minutes())
		}
	}
	if lastOut != nil {
		earlyCutoff := clockOnDate(day.Date, policy.EarlyOutCutoff)
		if lastOut.Before(earlyCutoff) {
			day.EarlyDeparture = true
		}
	}
}

func statusFromHours(policy attendance.Policy, hours float64) attendance.DayStatus {
	switch {
	case hours >= policy.MinHoursFullDay:
		return attendance.StatusPresent
	case hours >= policy.MinHoursHalfDay:
		return attendance.StatusHalfDay
	default:
		return attendance.StatusAbsent
	}
}

func clockOnDate(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		// Policy rows are validated on write; an unparsable cutoff falls
		// back to the default grace time rather than panicking mid-run.
		t, _ = time.Parse("15:04", attendance.DefaultPolicy().GraceCutoff)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
