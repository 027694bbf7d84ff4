package engine

// =============================================================================
// LATE-ARRIVAL NORMALIZATION
// =============================================================================

// Lateness is the outcome of normalizing an actual check-in against the
// shift's scheduled check-in.
type Lateness struct {
	// EffectiveCheckIn ("HH:MM") replaces the actual check-in in all
	// duration math.
	EffectiveCheckIn string

	// Late marks the hard tier: more than SoftLateLimitMinutes late.
	Late bool

	// LateWarning marks the soft tier: docked half an hour but not
	// stigmatized as late. Drives the warning icon in reports.
	LateWarning bool
}

// EffectiveCheckIn maps an actual check-in time onto the tiered lateness
// policy. Tiers are boundary-inclusive on their upper end:
//
//	late <= 0                 on time; effective = shift check-in
//	0 < late <= grace         grace period, no penalty
//	grace < late <= softLimit effective = shift check-in + soft dock, warning
//	late > softLimit          effective = next full hour after the ACTUAL
//	                          arrival (08:41 -> 09:00, 08:59 -> 09:00), late
//
// The hard tier rounds from the actual arrival, not the shift time, and an
// arrival exactly on the hour still rounds to the following hour.
func (c Calculator) EffectiveCheckIn(actualCheckIn, shiftCheckIn string) Lateness {
	actual := ClockToMinutes(actualCheckIn)
	shift := ClockToMinutes(shiftCheckIn)
	late := actual - shift

	switch {
	case late <= c.Rules.GraceMinutes:
		// Early arrivals land here too: the shift time always wins.
		return Lateness{EffectiveCheckIn: NormalizeClock(shiftCheckIn)}

	case late <= c.Rules.SoftLateLimitMinutes:
		return Lateness{
			EffectiveCheckIn: MinutesToClock(shift + c.Rules.SoftLateRoundMinutes),
			LateWarning:      true,
		}

	default:
		nextHour := (actual/60 + 1) * 60
		return Lateness{
			EffectiveCheckIn: MinutesToClock(nextHour),
			Late:             true,
		}
	}
}
