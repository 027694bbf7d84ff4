package payroll

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/engine"
)

func TestRank_GraceBoundary(t *testing.T) {
	// GIVEN arrivals at the grace limit and one minute past it
	in := Input{
		Entries: []DayEntry{
			entry("12", "2024-05-06", "08:10:00", "17:00:00"),
			entry("12", "2024-05-07", "08:11:00", "17:00:00"),
		},
		Employees: []Employee{{ID: 1, Fingerprint: "12", Name: "Ana"}},
	}

	rankings := newReporter().Rank(in)

	// THEN only the post-grace arrival counts as a late day
	require.Len(t, rankings, 1)
	assert.Equal(t, 2, rankings[0].WorkDays)
	assert.Equal(t, 1, rankings[0].LateDays)
}

func TestRank_PercentageAndRating(t *testing.T) {
	// GIVEN one late day out of three
	in := Input{Entries: []DayEntry{
		entry("12", "2024-05-06", "08:00:00", "17:00:00"),
		entry("12", "2024-05-07", "09:30:00", "17:00:00"),
		entry("12", "2024-05-08", "08:05:00", "17:00:00"),
	}}

	rankings := newReporter().Rank(in)

	require.Len(t, rankings, 1)
	assertTotal(t, "33.3", rankings[0].LatePercentage, "late percentage")
	assert.Equal(t, RatingNeedsImprovement, rankings[0].Rating)
}

func TestRank_TenPercentStillRatesGood(t *testing.T) {
	// GIVEN exactly one late day out of ten
	in := Input{}
	for day := 1; day <= 10; day++ {
		checkIn := "08:00:00"
		if day == 10 {
			checkIn = "08:45:00"
		}
		date := fmt.Sprintf("2024-05-%02d", day)
		in.Entries = append(in.Entries, entry("12", date, checkIn, "17:00:00"))
	}

	rankings := newReporter().Rank(in)

	require.Len(t, rankings, 1)
	assertTotal(t, "10.0", rankings[0].LatePercentage, "late percentage")
	assert.Equal(t, RatingGood, rankings[0].Rating)
}

func TestRank_IncompleteDaysExcluded(t *testing.T) {
	// GIVEN a lone punch next to two complete days
	in := Input{Entries: []DayEntry{
		entry("12", "2024-05-06", "09:30:00"),
		entry("12", "2024-05-07", "08:00:00", "17:00:00"),
		entry("12", "2024-05-08", "08:00:00", "17:00:00"),
	}}

	rankings := newReporter().Rank(in)

	require.Len(t, rankings, 1)
	assert.Equal(t, 2, rankings[0].WorkDays)
	assert.Zero(t, rankings[0].LateDays)
	assert.Equal(t, RatingGood, rankings[0].Rating)
}

func TestRank_LatenessAgainstAssignedShift(t *testing.T) {
	// GIVEN a 14:00 shift assignment and a 14:05 arrival
	night := engine.Shift{ID: 2, Date: "2024-05-06", CheckIn: "14:00", CheckOut: "23:00"}
	in := Input{
		Entries:   []DayEntry{entry("12", "2024-05-06", "14:05:00", "23:00:00")},
		Employees: []Employee{{ID: 3, Fingerprint: "12", Name: "Ana"}},
		Assignments: map[string]engine.Shift{
			engine.AssignmentKey(3, "2024-05-06"): night,
		},
	}

	rankings := newReporter().Rank(in)

	// THEN the arrival is within grace for the assigned shift even though
	// it is hours past the default one
	require.Len(t, rankings, 1)
	assert.Zero(t, rankings[0].LateDays)
}

func TestRank_Ordering(t *testing.T) {
	// GIVEN two matched employees and an unmatched fingerprint
	in := Input{
		Entries: []DayEntry{
			entry("30", "2024-05-06", "08:00:00", "17:00:00"),
			entry("12", "2024-05-06", "08:00:00", "17:00:00"),
			entry("99", "2024-05-06", "08:00:00", "17:00:00"),
		},
		Employees: []Employee{
			{ID: 5, Fingerprint: "30", Name: "Bo"},
			{ID: 2, Fingerprint: "12", Name: "Ana"},
		},
	}

	rankings := newReporter().Rank(in)

	// THEN matched employees lead in id order and the unmatched code trails
	require.Len(t, rankings, 3)
	assert.Equal(t, "Ana", rankings[0].EmployeeName)
	assert.Equal(t, "Bo", rankings[1].EmployeeName)
	assert.Equal(t, "99", rankings[2].Fingerprint)
	assert.Zero(t, rankings[2].EmployeeID)
}
