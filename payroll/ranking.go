/* ranking.go - Attendance ranking.

PURPOSE:
  Ranks employees by punctuality over a date range: how many complete
  work days, how many of them started late, and a simple rating.

KEY CONCEPTS:
  - A day counts as late when the actual first punch is past the shift
    check-in by more than the grace period. This is a raw comparison
    against the scheduled time; the payroll-side rounding of effective
    check-ins plays no role here.
  - Rating: "good" at 10% late days or below, "needs_improvement" above.
  - Order: employees with a matched record first, by employee id; then
    unmatched fingerprints in fingerprint order.
*/

package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/engine"
)

type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs_improvement"
)

// goodRatingLimit is the late-day percentage at or below which an
// employee still rates "good".
var goodRatingLimit = decimal.NewFromInt(10)

// Ranking is one row of the attendance ranking.
type Ranking struct {
	Fingerprint    string
	EmployeeID     int64
	EmployeeName   string
	WorkDays       int
	LateDays       int
	LatePercentage decimal.Decimal
	Rating         Rating
}

// Rank computes the attendance ranking for every fingerprint in the input.
func (r *Reporter) Rank(in Input) []Ranking {
	byFingerprint := groupEntries(in.Entries)
	identities := employeeIndex(in.Employees)

	rankings := make([]Ranking, 0, len(byFingerprint))
	for _, group := range byFingerprint {
		emp := identities[group.fingerprint]
		row := Ranking{
			Fingerprint:  group.fingerprint,
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
		}
		for _, day := range group.days {
			if !engine.CompletePunches(day.Times) {
				continue
			}
			row.WorkDays++
			checkIn, _ := r.calc.ExtractCheckInOut(day.Times)
			shift := r.calc.ResolveShiftForEmployee(emp.ID, day.Date, in.Shifts, in.Assignments)
			if r.isLate(checkIn, shift.CheckIn) {
				row.LateDays++
			}
		}
		row.LatePercentage = latePercentage(row.LateDays, row.WorkDays)
		row.Rating = RatingGood
		if row.LatePercentage.GreaterThan(goodRatingLimit) {
			row.Rating = RatingNeedsImprovement
		}
		rankings = append(rankings, row)
	}

	sort.Slice(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		if (a.EmployeeID != 0) != (b.EmployeeID != 0) {
			return a.EmployeeID != 0
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return fingerprintLess(a.Fingerprint, b.Fingerprint)
	})
	return rankings
}

func (r *Reporter) isLate(actualCheckIn, shiftCheckIn string) bool {
	late := engine.ClockToMinutes(engine.NormalizeClock(actualCheckIn)) -
		engine.ClockToMinutes(engine.NormalizeClock(shiftCheckIn))
	return late > r.calc.Rules.GraceMinutes
}

func latePercentage(lateDays, workDays int) decimal.Decimal {
	if workDays == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(lateDays)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(workDays))).
		Round(1)
}
