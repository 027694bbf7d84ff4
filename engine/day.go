/*
day.go - The work-days / overtime state machine

PURPOSE:
  Combines punch extraction, lateness normalization, lunch policy, the
  holiday flag, and the 7-day streak flag into the final per-day payroll
  figures. This is the one function payroll reporting ultimately calls.

THE THREE BRANCHES:
  Every day is classified into exactly one branch, first match wins:

  SeventhDay (beats Holiday):
    The whole day is overtime. Work starts at the SCHEDULED shift check-in
    regardless of lateness (the lateness tiers are still computed for
    reporting, but do not move the start). A span of 8h+ loses the 1h lunch
    deduction, and the post-deduction hours become overtime; a post-
    deduction span still at 8h+ also earns the 0.5h lunch overtime credit.
    Work-day credit is always zero.

  Holiday:
    Same start/end and lunch-credit logic as SeventhDay, but overtime
    counts the FULL worked span without the lunch deduction. Work-day
    credit is always zero.

  Regular:
    The effective (lateness-normalized) check-in is the work start. The
    work end honors the actual check-out only when the shift enables
    overtime; otherwise it is capped at the scheduled check-out. From the
    capped span the lunch-window overlap deducts an hour, and the result
    splits into work hours (max 8), work-day credit (hours/8, max 1), and
    overtime beyond 8h. Overtime on these days is subject to the minimum
    threshold and block rounding; holiday and seventh-day overtime is
    deliberately NOT (a business rule, not an inconsistency).

REGULAR-DAY SUB-CASES:
  C1  overtime disabled and the employee worked to the scheduled end:
      a full net day keeps its 8h plus the lunch credit; a short day
      (late arrival) restores the lunch hour into work hours, but a
      hard-late arrival restores only half of it.
  C2  net span beyond 8h: 8h work day plus overtime for the excess.
  C3  anything else: no overtime, hours capped at 8, fractional day.
*/
package engine

import "github.com/shopspring/decimal"

// =============================================================================
// DAY CLASSIFICATION
// =============================================================================

// DayClass tags which calculation branch applies to a day. Computing it
// once up front keeps the mutual exclusivity of the branches explicit
// instead of re-checking flag combinations mid-calculation.
type DayClass int

const (
	DayRegular DayClass = iota
	DayHoliday
	DaySeventh
)

func (dc DayClass) String() string {
	switch dc {
	case DayHoliday:
		return "holiday"
	case DaySeventh:
		return "seventh_day"
	default:
		return "regular"
	}
}

// ClassifyDay picks the branch for a day. The streak flag wins over the
// holiday flag; a 7th consecutive day on a holiday is calculated as a
// seventh day.
func ClassifyDay(seventhDay, holiday bool) DayClass {
	switch {
	case seventhDay:
		return DaySeventh
	case holiday:
		return DayHoliday
	default:
		return DayRegular
	}
}

// =============================================================================
// INPUT / RESULT
// =============================================================================

// DayInput is one employee-day ready for calculation: the extracted punch
// pair, the resolved shift, and the precomputed streak flag. See
// ExtractCheckInOut, ResolveShiftForEmployee, and IsSeventhDay.
type DayInput struct {
	CheckIn    string // earliest punch, HH:MM[:SS]
	CheckOut   string // latest punch, HH:MM[:SS]
	Shift      Shift
	SeventhDay bool
}

// DayResult is the immutable outcome for one day. All figures are rounded
// to 1 decimal place.
type DayResult struct {
	// WorkDays is the fractional work-day credit, 0.0 - 1.0. Always zero
	// on holidays and seventh days.
	WorkDays decimal.Decimal

	// WorkHours counts toward the work day, 0.0 - 8.0, exclusive of
	// overtime.
	WorkHours decimal.Decimal

	// OTHours is overtime exclusive of the lunch-break credit.
	OTHours decimal.Decimal

	// LunchBreakOT is 0 or 0.5: the credit for a lunch break absorbed
	// into a long work day.
	LunchBreakOT decimal.Decimal

	// EffectiveCheckIn is the lateness-normalized check-in ("HH:MM").
	EffectiveCheckIn string

	// Late marks the hard lateness tier, LateWarning the soft one.
	Late        bool
	LateWarning bool

	// Class records which branch produced this result.
	Class DayClass
}

// lunchOTCredit is the fixed 0.5h lunch overtime figure.
var lunchOTCredit = decimal.New(5, -1)

// =============================================================================
// THE ENGINE
// =============================================================================

// DayTotals runs the three-branch state machine for one day.
func (c Calculator) DayTotals(in DayInput) DayResult {
	shiftIn := NormalizeClock(in.Shift.CheckIn)
	shiftOut := NormalizeClock(in.Shift.CheckOut)

	// Lateness is always computed: branches A/B report it even though
	// they ignore it for the work start.
	late := c.EffectiveCheckIn(NormalizeClock(in.CheckIn), shiftIn)

	actualOut := ClockToMinutes(NormalizeClock(in.CheckOut))
	shiftOutMin := ClockToMinutes(shiftOut)

	// Work end: the actual check-out is honored only with overtime
	// enabled; otherwise capped at the scheduled check-out.
	end := actualOut
	if !in.Shift.OvertimeEnabled && end > shiftOutMin {
		end = shiftOutMin
	}

	res := DayResult{
		WorkDays:         decimal.Zero,
		WorkHours:        decimal.Zero,
		OTHours:          decimal.Zero,
		LunchBreakOT:     decimal.Zero,
		EffectiveCheckIn: late.EffectiveCheckIn,
		Late:             late.Late,
		LateWarning:      late.LateWarning,
		Class:            ClassifyDay(in.SeventhDay, in.Shift.Holiday),
	}

	switch res.Class {
	case DaySeventh:
		c.seventhDay(&res, ClockToMinutes(shiftIn), end)
	case DayHoliday:
		c.holiday(&res, ClockToMinutes(shiftIn), end)
	default:
		c.regularDay(&res, in.Shift, late, end, shiftOutMin)
	}
	return res
}

// seventhDay: the entire (post-lunch) span is overtime, no work-day credit.
func (c Calculator) seventhDay(res *DayResult, start, end int) {
	raw := end - start
	worked := raw
	if raw >= c.Rules.StandardDayMinutes {
		worked = raw - c.Rules.LunchDeductionMinutes
	}
	if worked >= c.Rules.StandardDayMinutes {
		res.LunchBreakOT = lunchOTCredit
	}
	res.OTHours = c.hours(worked)
}

// holiday: like seventhDay, except overtime counts the full span without
// the lunch deduction. The lunch credit still keys off the post-deduction
// span.
func (c Calculator) holiday(res *DayResult, start, end int) {
	raw := end - start
	worked := raw
	if raw >= c.Rules.StandardDayMinutes {
		worked = raw - c.Rules.LunchDeductionMinutes
	}
	if worked >= c.Rules.StandardDayMinutes {
		res.LunchBreakOT = lunchOTCredit
	}
	res.OTHours = c.hours(raw)
}

// regularDay: effective check-in drives the start; sub-cases C1/C2/C3.
func (c Calculator) regularDay(res *DayResult, shift Shift, late Lateness, end, shiftOutMin int) {
	start := ClockToMinutes(late.EffectiveCheckIn)

	raw := end - start
	if raw < 0 {
		raw = 0
	}

	lunchDed := c.LunchOverlapHours(start, end) // 0 or 1
	net := raw - lunchDed*c.Rules.LunchDeductionMinutes
	if net < 0 {
		net = 0
	}

	std := c.Rules.StandardDayMinutes

	switch {
	// C1: capped at the shift and worked all the way to its end.
	case !shift.OvertimeEnabled && end == shiftOutMin:
		if net >= std {
			if lunchDed > 0 {
				res.LunchBreakOT = lunchOTCredit
			}
			res.WorkHours = c.hours(std)
			res.WorkDays = c.days(std)
			return
		}
		// Arrived late but still worked to the scheduled end: the lunch
		// hour folds back into work hours. A hard-late arrival forfeits
		// half of that restoration.
		restore := lunchDed * c.Rules.LunchDeductionMinutes
		if late.Late {
			restore /= 2
		}
		wh := net + restore
		if wh > std {
			wh = std
		}
		res.WorkHours = c.hours(wh)
		res.WorkDays = c.days(wh)

	// C2: worked beyond a full day.
	case net > std:
		if lunchDed > 0 {
			res.LunchBreakOT = lunchOTCredit
		}
		ot := net - std
		if shift.OvertimeEnabled {
			ot = c.roundOvertime(ot)
		}
		res.OTHours = c.hours(ot)
		res.WorkHours = c.hours(std)
		res.WorkDays = c.days(std)

	// C3: a partial day.
	default:
		wh := net + lunchDed*c.Rules.LunchDeductionMinutes
		if wh > std {
			wh = std
		}
		res.WorkHours = c.hours(wh)
		res.WorkDays = c.days(wh)
	}
}

// roundOvertime applies the minimum threshold and block rounding: below the
// threshold overtime is discarded entirely, above it the minutes round UP
// to the next block (35min -> 60min, 61min -> 90min).
func (c Calculator) roundOvertime(otMinutes int) int {
	if otMinutes < c.Rules.OvertimeThresholdMinutes {
		return 0
	}
	block := c.Rules.OvertimeBlockMinutes
	return (otMinutes + block - 1) / block * block
}

// hours renders minutes as decimal hours rounded to 1 place.
func (c Calculator) hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(60)).
		Round(1)
}

// days renders work minutes as a fractional work day rounded to 1 place.
func (c Calculator) days(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(int64(c.Rules.StandardDayMinutes))).
		Round(1)
}
