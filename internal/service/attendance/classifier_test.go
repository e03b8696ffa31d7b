package attendance

import (
	"testing"
	"time"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punch(date time.Time, clock string) time.Time {
	t, _ := time.Parse("15:04", clock)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func TestClassifyDayPunchDerivedStatus(t *testing.T) {
	policy := attendance.DefaultPolicy()
	monday := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		out     string
		status  attendance.DayStatus
		isLate  bool
		lateMin int
	}{
		{"full day on time", "09:30", "18:00", attendance.StatusPresent, false, 0},
		{"full day but late", "10:15", "18:30", attendance.StatusPresent, true, 30},
		{"half day", "09:30", "14:30", attendance.StatusHalfDay, false, 0},
		{"too few hours", "09:30", "12:30", attendance.StatusAbsent, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := ClassifyDay(policy, attendance.DayInput{
				EmployeeID: "emp-1",
				Date:       monday,
				Punches:    []time.Time{punch(monday, tt.in), punch(monday, tt.out)},
			})

			assert.Equal(t, tt.status, day.Status)
			assert.Equal(t, attendance.SourceBiometric, day.Source)
			assert.Equal(t, tt.isLate, day.IsLate)
			assert.Equal(t, tt.lateMin, day.LateMinutes)
		})
	}
}

func TestClassifyDayPunchPairing(t *testing.T) {
	policy := attendance.DefaultPolicy()
	monday := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

	// Multiple punches: earliest before noon is IN, latest after noon is OUT.
	day := ClassifyDay(policy, attendance.DayInput{
		EmployeeID: "emp-1",
		Date:       monday,
		Punches: []time.Time{
			punch(monday, "13:05"),
			punch(monday, "09:20"),
			punch(monday, "11:45"),
			punch(monday, "18:10"),
		},
	})

	require.NotNil(t, day.FirstIn)
	require.NotNil(t, day.LastOut)
	assert.Equal(t, "09:20", day.FirstIn.Format("15:04"))
	assert.Equal(t, "18:10", day.LastOut.Format("15:04"))
	assert.InDelta(t, 8.83, day.TotalHours, 0.001)
	assert.Equal(t, attendance.StatusPresent, day.Status)
}

func TestClassifyDayMissingOutPunch(t *testing.T) {
	policy := attendance.DefaultPolicy()
	monday := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

	day := ClassifyDay(policy, attendance.DayInput{
		EmployeeID: "emp-1",
		Date:       monday,
		Punches:    []time.Time{punch(monday, "09:30")},
	})

	require.NotNil(t, day.FirstIn)
	assert.Nil(t, day.LastOut)
	assert.Zero(t, day.TotalHours)
	assert.Equal(t, attendance.StatusAbsent, day.Status)
}

func TestClassifyDayEarlyDeparture(t *testing.T) {
	policy := attendance.DefaultPolicy()
	monday := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

	day := ClassifyDay(policy, attendance.DayInput{
		EmployeeID: "emp-1",
		Date:       monday,
		Punches:    []time.Time{punch(monday, "08:30"), punch(monday, "17:00")},
	})

	assert.True(t, day.EarlyDeparture)
	assert.Equal(t, attendance.StatusPresent, day.Status)
}

func TestClassifyDayPrecedence(t *testing.T) {
	policy := attendance.DefaultPolicy()
	monday := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)
	clCode := "CL"
	override := attendance.StatusPresent

	t.Run("manual override beats everything", func(t *testing.T) {
		day := ClassifyDay(policy, attendance.DayInput{
			EmployeeID:     "emp-1",
			Date:           monday,
			LeaveCode:      &clCode,
			ManualOverride: &override,
		})
		assert.Equal(t, attendance.StatusPresent, day.Status)
		assert.Equal(t, attendance.SourceManual, day.Source)
	})

	t.Run("leave beats tour and punches", func(t *testing.T) {
		day := ClassifyDay(policy, attendance.DayInput{
			EmployeeID: "emp-1",
			Date:       monday,
			Punches:    []time.Time{punch(monday, "09:30"), punch(monday, "18:00")},
			LeaveCode:  &clCode,
			OnTour:     true,
		})
		assert.Equal(t, attendance.StatusLeave, day.Status)
		require.NotNil(t, day.LeaveCode)
		assert.Equal(t, "CL", *day.LeaveCode)
		// Punch facts survive so lateness history stays complete.
		assert.NotNil(t, day.FirstIn)
	})

	t.Run("tour beats wfh", func(t *testing.T) {
		day := ClassifyDay(policy, attendance.DayInput{
			EmployeeID: "emp-1",
			Date:       monday,
			OnTour:     true,
			WFHGranted: true,
		})
		assert.Equal(t, attendance.StatusTour, day.Status)
	})

	t.Run("punches beat holiday", func(t *testing.T) {
		day := ClassifyDay(policy, attendance.DayInput{
			EmployeeID: "emp-1",
			Date:       monday,
			Punches:    []time.Time{punch(monday, "09:30"), punch(monday, "18:00")},
			IsHoliday:  true,
		})
		assert.Equal(t, attendance.StatusPresent, day.Status)
	})

	t.Run("weekly off without punches", func(t *testing.T) {
		day := ClassifyDay(policy, attendance.DayInput{
			EmployeeID: "emp-1",
			Date:       sunday,
		})
		assert.Equal(t, attendance.StatusWeeklyOff, day.Status)
	})

	t.Run("nothing at all is absent", func(t *testing.T) {
		day := ClassifyDay(policy, attendance.DayInput{
			EmployeeID: "emp-1",
			Date:       monday,
		})
		assert.Equal(t, attendance.StatusAbsent, day.Status)
	})
}

func TestClassifyDayLateBoundary(t *testing.T) {
	policy := attendance.DefaultPolicy()
	monday := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)

	// Punching exactly at the grace cutoff is not late.
	day := ClassifyDay(policy, attendance.DayInput{
		EmployeeID: "emp-1",
		Date:       monday,
		Punches:    []time.Time{punch(monday, "09:45"), punch(monday, "18:00")},
	})
	assert.False(t, day.IsLate)

	day = ClassifyDay(policy, attendance.DayInput{
		EmployeeID: "emp-1",
		Date:       monday,
		Punches:    []time.Time{punch(monday, "09:46"), punch(monday, "18:00")},
	})
	assert.True(t, day.IsLate)
	assert.Equal(t, 1, day.LateMinutes)
}
