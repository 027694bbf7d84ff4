/* summary.go - Payroll report over a date range.

PURPOSE:
  Turns raw punch entries into per-employee day lines and range totals.
  One employee-day flows through the engine exactly once; days without a
  complete check-in/check-out pair are listed but contribute nothing.

KEY CONCEPTS:
  - Grouping: entries are grouped by fingerprint, then by date. The
    persistence layer already deduplicates identical punches.
  - Entry dates: the consecutive-day streak is detected against every
    date the employee has any entry for, complete or not. Only a date
    with no punches at all breaks a streak.
  - Totals: per-day results are summed as exact decimals and the sums
    rounded to 1 decimal place at the end.

SEE ALSO:
  - engine/day.go: the per-day calculation
  - ranking.go: lateness ranking over the same input
*/

package payroll

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/engine"
)

// Summarize produces one EmployeeSummary per fingerprint present in the
// input, ordered by fingerprint (numeric codes in numeric order).
func (r *Reporter) Summarize(in Input) []EmployeeSummary {
	byFingerprint := groupEntries(in.Entries)
	identities := employeeIndex(in.Employees)

	summaries := make([]EmployeeSummary, 0, len(byFingerprint))
	for _, group := range byFingerprint {
		summaries = append(summaries, r.summarizeEmployee(group, identities[group.fingerprint], in))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return fingerprintLess(summaries[i].Fingerprint, summaries[j].Fingerprint)
	})
	return summaries
}

func (r *Reporter) summarizeEmployee(group employeeEntries, emp Employee, in Input) EmployeeSummary {
	sum := EmployeeSummary{
		Fingerprint:       group.fingerprint,
		EmployeeID:        emp.ID,
		EmployeeName:      emp.Name,
		TotalWorkDays:     decimal.Zero,
		TotalOTHours:      decimal.Zero,
		TotalLunchBreakOT: decimal.Zero,
	}

	// Every date with any entry feeds the streak, punch pair or not: a
	// lone punch still proves the employee came in that day.
	entryDates := make([]string, 0, len(group.days))
	for _, day := range group.days {
		entryDates = append(entryDates, day.Date)
	}

	for _, day := range group.days {
		line := DayLine{Date: day.Date, Times: normalizedTimes(day.Times)}
		shift := r.calc.ResolveShiftForEmployee(emp.ID, day.Date, in.Shifts, in.Assignments)
		line.Holiday = shift.Holiday

		if !engine.CompletePunches(day.Times) {
			sum.Days = append(sum.Days, line)
			continue
		}
		line.Complete = true

		checkIn, checkOut := r.calc.ExtractCheckInOut(day.Times)
		seventh := r.calc.IsSeventhDay(day.Date, entryDates)
		line.Result = r.calc.DayTotals(engine.DayInput{
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Shift:      shift,
			SeventhDay: seventh,
		})
		line.SeventhDay = line.Result.Class == engine.DaySeventh
		line.OvertimeTagged = line.Result.Class == engine.DayRegular &&
			shift.OvertimeEnabled && line.Result.OTHours.IsPositive()

		sum.TotalWorkDays = sum.TotalWorkDays.Add(line.Result.WorkDays)
		sum.TotalOTHours = sum.TotalOTHours.Add(line.Result.OTHours)
		sum.TotalLunchBreakOT = sum.TotalLunchBreakOT.Add(line.Result.LunchBreakOT)
		sum.Days = append(sum.Days, line)
	}

	sum.TotalWorkDays = sum.TotalWorkDays.Round(1)
	sum.TotalOTHours = sum.TotalOTHours.Round(1)
	sum.TotalLunchBreakOT = sum.TotalLunchBreakOT.Round(1)
	return sum
}

// =============================================================================
// GROUPING
// =============================================================================

type employeeEntries struct {
	fingerprint string
	days        []DayEntry
}

func groupEntries(entries []DayEntry) []employeeEntries {
	index := make(map[string]int)
	groups := make([]employeeEntries, 0)
	for _, entry := range entries {
		i, ok := index[entry.Fingerprint]
		if !ok {
			i = len(groups)
			index[entry.Fingerprint] = i
			groups = append(groups, employeeEntries{fingerprint: entry.Fingerprint})
		}
		groups[i].days = append(groups[i].days, entry)
	}
	for i := range groups {
		sort.Slice(groups[i].days, func(a, b int) bool {
			return groups[i].days[a].Date < groups[i].days[b].Date
		})
	}
	return groups
}

func employeeIndex(employees []Employee) map[string]Employee {
	index := make(map[string]Employee, len(employees))
	for _, emp := range employees {
		index[emp.Fingerprint] = emp
	}
	return index
}

func normalizedTimes(times []string) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, engine.NormalizeClock(t))
	}
	sort.Strings(out)
	return out
}

// fingerprintLess orders numeric fingerprint codes numerically and falls
// back to string order for anything else.
func fingerprintLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}
