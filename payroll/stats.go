package payroll

import (
	"sort"
	"strings"

	"github.com/warp/payroll-engine/engine"
)

// HourCount is one bucket of a punch-hour histogram.
type HourCount struct {
	Hour  string // "08:00"
	Count int
}

// DashboardStats is the at-a-glance view of the punch data.
type DashboardStats struct {
	TotalEmployees    int
	TotalFingerprints int
	TotalDaysWithData int
	LastUpdatedDate   string // empty when there is no data

	// Hour histograms over days with at least two punches: first punch
	// of the day for check-ins, last punch for check-outs.
	CheckInHours  []HourCount
	CheckOutHours []HourCount
}

// Stats summarizes the input for the dashboard.
func (r *Reporter) Stats(in Input) DashboardStats {
	stats := DashboardStats{TotalEmployees: len(in.Employees)}

	fingerprints := make(map[string]struct{})
	dates := make(map[string]struct{})
	checkIns := make(map[string]int)
	checkOuts := make(map[string]int)

	for _, entry := range in.Entries {
		fingerprints[entry.Fingerprint] = struct{}{}
		dates[entry.Date] = struct{}{}
		if entry.Date > stats.LastUpdatedDate {
			stats.LastUpdatedDate = entry.Date
		}
		// Two or more punches are enough to place the bookends; extra
		// mid-day punches do not disqualify the day.
		if len(entry.Times) < 2 {
			continue
		}
		checkIn, checkOut := r.calc.ExtractCheckInOut(entry.Times)
		checkIns[hourBucket(checkIn)]++
		checkOuts[hourBucket(checkOut)]++
	}

	stats.TotalFingerprints = len(fingerprints)
	stats.TotalDaysWithData = len(dates)
	stats.CheckInHours = sortedHourCounts(checkIns)
	stats.CheckOutHours = sortedHourCounts(checkOuts)
	return stats
}

func hourBucket(clock string) string {
	hour, _, found := strings.Cut(engine.NormalizeClock(clock), ":")
	if !found {
		return clock
	}
	return hour + ":00"
}

func sortedHourCounts(counts map[string]int) []HourCount {
	out := make([]HourCount, 0, len(counts))
	for hour, count := range counts {
		out = append(out, HourCount{Hour: hour, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
