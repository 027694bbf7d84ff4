package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CLOCK STRING CONVERSIONS
// =============================================================================
// Punch and shift times travel as "HH:MM" or "HH:MM:SS" strings; all math
// happens on integer minutes since midnight. None of these functions
// validate their input: a malformed component reads as zero and the garbage
// flows through, which is the documented contract (upstream ingestion
// rejects bad rows before they reach the engine).

// ClockToMinutes parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are ignored.
func ClockToMinutes(clock string) int {
	parts := strings.Split(clock, ":")
	hour := 0
	minute := 0
	if len(parts) > 0 {
		hour, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour*60 + minute
}

// MinutesToClock formats minutes since midnight as zero-padded "HH:MM".
// No modulo-24 wrap is applied: rounding a late arrival up from 23:xx can
// legitimately produce "24:00", and that raw value is what callers expect.
// Negative input is the caller's problem.
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesToHours converts minutes to decimal hours without rounding.
func MinutesToHours(minutes int) float64 {
	return float64(minutes) / 60
}

// NormalizeClock truncates "HH:MM:SS" to "HH:MM". Inputs already at minute
// precision pass through unchanged.
func NormalizeClock(clock string) string {
	if len(clock) > 5 {
		return clock[:5]
	}
	return clock
}
