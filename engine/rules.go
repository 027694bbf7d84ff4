/*
Package engine converts raw fingerprint punches into payroll figures.

PURPOSE:
  This package is the calculation core of the attendance console. Given a
  pair of punch times (check-in, check-out), the shift scheduled for that
  employee and date, and whether the date is the employee's 7th consecutive
  working day, it derives:
    - fractional work-day credit (0.0 - 1.0)
    - hours counted toward the work day (0.0 - 8.0)
    - overtime hours
    - lunch-break overtime (0 or 0.5, tracked separately)
    - the effective check-in used for all duration math
    - lateness flags for warnings and ranking

KEY CONCEPTS:
  - Clock strings: all punch and shift times are "HH:MM" or "HH:MM:SS";
    calculation happens on integer minutes since midnight.
  - Day classification: every day is exactly one of Regular, Holiday, or
    SeventhDay, checked in that priority order reversed (SeventhDay wins
    over Holiday). See day.go.
  - Rules: every threshold the business tuned over time (grace period,
    lateness tiers, lunch window, overtime blocks) lives in one injectable
    struct instead of constants scattered across branches.

DESIGN PRINCIPLES:
  1. Purity: no I/O, no clock reads, no shared state. Same input, same
     output, safe to call from any number of goroutines.
  2. Precision: reported figures are decimal.Decimal rounded to 1 place,
     never accumulated floats.
  3. Trusting inputs: clock strings are assumed well-formed (see §ERRORS
     below); validation belongs to the ingestion layer.

ERRORS:
  The engine returns no errors. Malformed clock strings degrade to
  zero-valued components and flow through the arithmetic; rejecting them
  is the caller's job before the engine is ever invoked.

SEE ALSO:
  - clock.go:    clock string <-> minutes conversions
  - punch.go:    check-in/check-out extraction from raw punches
  - shift.go:    shift model and resolution
  - lateness.go: tiered late-arrival normalization
  - streak.go:   consecutive 7th-day detection
  - lunch.go:    lunch-break detection
  - day.go:      the work-days / overtime state machine
*/
package engine

// =============================================================================
// RULES - Tunable business thresholds
// =============================================================================

// Rules holds every threshold used by the calculation engine. Callers build
// one (usually DefaultRules) and inject it into a Calculator; nothing in this
// package reads configuration from anywhere else.
type Rules struct {
	// StandardDayMinutes is a full work day before overtime (8h).
	StandardDayMinutes int

	// LunchDeductionMinutes is subtracted from a span that covers a full
	// day (1h).
	LunchDeductionMinutes int

	// Lunch window used by the interval-overlap test, minutes since
	// midnight. A work span earns the deduction iff it overlaps
	// [LunchWindowStart, LunchWindowEnd].
	LunchWindowStart int
	LunchWindowEnd   int

	// Legacy punch-sampling lunch window (inclusive), kept for callers
	// that still probe individual punches. See HasLunchPunch.
	LunchPunchStart int
	LunchPunchEnd   int

	// GraceMinutes of lateness carry no penalty at all.
	GraceMinutes int

	// Lateness in (GraceMinutes, SoftLateLimitMinutes] docks the check-in
	// by SoftLateRoundMinutes and raises a warning; anything beyond the
	// limit rounds the check-in up to the next full hour and flags the
	// day as late.
	SoftLateLimitMinutes int
	SoftLateRoundMinutes int

	// Overtime below OvertimeThresholdMinutes is discarded; the rest is
	// rounded up to the next OvertimeBlockMinutes block. Applies only to
	// regular days with overtime enabled.
	OvertimeThresholdMinutes int
	OvertimeBlockMinutes     int

	// StreakLength is the consecutive-day multiple that turns a whole day
	// into overtime (7th, 14th, ... day of an unbroken run).
	StreakLength int

	// DefaultShift applies whenever no shift is configured for a date.
	DefaultShift Shift
}

// DefaultRules returns the production policy: 8h day, 1h lunch over the
// 12:00-13:00 window, 10min grace, 30min soft dock up to 40min late,
// next-hour dock beyond, 30min overtime threshold and blocks, 7-day streaks,
// and an 08:00-17:00 non-holiday default shift with overtime off.
func DefaultRules() Rules {
	return Rules{
		StandardDayMinutes:       8 * 60,
		LunchDeductionMinutes:    60,
		LunchWindowStart:         12 * 60,
		LunchWindowEnd:           13 * 60,
		LunchPunchStart:          12*60 + 30,
		LunchPunchEnd:            13 * 60,
		GraceMinutes:             10,
		SoftLateLimitMinutes:     40,
		SoftLateRoundMinutes:     30,
		OvertimeThresholdMinutes: 30,
		OvertimeBlockMinutes:     30,
		StreakLength:             7,
		DefaultShift: Shift{
			CheckIn:  "08:00",
			CheckOut: "17:00",
		},
	}
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator applies a Rules set to daily punch data. The zero value is not
// usable; construct with NewCalculator.
type Calculator struct {
	Rules Rules
}

// NewCalculator returns a Calculator bound to the given rules.
func NewCalculator(rules Rules) Calculator {
	return Calculator{Rules: rules}
}
