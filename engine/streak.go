package engine

import (
	"sort"
	"time"
)

// =============================================================================
// CONSECUTIVE-DAY STREAK DETECTION
// =============================================================================

const dateLayout = "2006-01-02"

// IsSeventhDay reports whether date is the 7th (14th, 21st, ...) day of an
// unbroken run of calendar days inside workedDates. The worked set is every
// date the employee has any punch for, complete or not.
//
// The run containing the date is found by walking backward while each
// preceding date is exactly one calendar day earlier; the date's 1-based
// position within that run decides the outcome. A gap resets the count, so
// day 8 after a one-day break sits at position 1 of a fresh run.
func (c Calculator) IsSeventhDay(date string, workedDates []string) bool {
	dates := sortedDistinctDates(workedDates)

	idx := -1
	for i, d := range dates {
		if d == date {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	// Walking backward alone suffices: a date's position in its run is
	// fixed by the dates before it, never by the dates after.
	runStart := idx
	for i := idx - 1; i >= 0; i-- {
		if dates[i] != previousDay(dates[i+1]) {
			break
		}
		runStart = i
	}

	position := idx - runStart + 1
	return position%c.Rules.StreakLength == 0
}

func sortedDistinctDates(dates []string) []string {
	out := distinctTimes(dates)
	sort.Strings(out)
	return out
}

// previousDay returns the calendar day before a YYYY-MM-DD date. An
// unparsable date returns the zero-time formatting, which never matches a
// real neighbor and simply breaks the run.
func previousDay(date string) string {
	t, _ := time.Parse(dateLayout, date)
	return t.AddDate(0, 0, -1).Format(dateLayout)
}
