package engine

import "sort"

// =============================================================================
// CHECK-IN / CHECK-OUT EXTRACTION
// =============================================================================

// ExtractCheckInOut determines the check-in and check-out pair from one
// day's raw punch times. Times are normalized to minute precision and sorted
// lexicographically (valid for zero-padded 24h clocks): the earliest punch
// is the check-in, the latest the check-out.
//
// Degenerate inputs fall back rather than fail: an empty set yields the
// default shift times, and a single punch pairs with the default check-out.
// Callers gate full calculation on CompletePunches separately.
func (c Calculator) ExtractCheckInOut(times []string) (checkIn, checkOut string) {
	defIn := NormalizeClock(c.Rules.DefaultShift.CheckIn)
	defOut := NormalizeClock(c.Rules.DefaultShift.CheckOut)

	if len(times) == 0 {
		return defIn, defOut
	}

	sorted := make([]string, len(times))
	for i, t := range times {
		sorted[i] = NormalizeClock(t)
	}
	sort.Strings(sorted)

	checkIn = sorted[0]
	checkOut = defOut
	if len(sorted) > 1 {
		checkOut = sorted[len(sorted)-1]
	}
	return checkIn, checkOut
}

// CompletePunches reports whether a day's punches are eligible for full
// calculation: exactly two distinct times. Zero, one, or three-plus punches
// mean the day is incomplete and the engine is not invoked for it.
func CompletePunches(times []string) bool {
	return len(distinctTimes(times)) == 2
}

// distinctTimes deduplicates raw punch times, preserving first-seen order.
func distinctTimes(times []string) []string {
	seen := make(map[string]struct{}, len(times))
	var out []string
	for _, t := range times {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
