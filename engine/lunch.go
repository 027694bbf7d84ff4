package engine

// =============================================================================
// LUNCH-BREAK DETECTION
// =============================================================================

// LunchOverlapHours returns 1 if the work interval [workStart, workEnd)
// overlaps the canonical lunch window, else 0. This interval test is the
// authoritative lunch policy: it superseded punch sampling because a worker
// who never badges during lunch still takes it.
func (c Calculator) LunchOverlapHours(workStartMinutes, workEndMinutes int) int {
	if workStartMinutes < c.Rules.LunchWindowEnd && workEndMinutes > c.Rules.LunchWindowStart {
		return 1
	}
	return 0
}

// HasLunchPunch reports whether any punch lands inside the legacy lunch
// sampling window (inclusive on both ends). Retained for callers that still
// key off individual punches; new code should rely on LunchOverlapHours.
func (c Calculator) HasLunchPunch(times []string) bool {
	for _, t := range times {
		m := ClockToMinutes(t)
		if m >= c.Rules.LunchPunchStart && m <= c.Rules.LunchPunchEnd {
			return true
		}
	}
	return false
}
