package engine

import "fmt"

// =============================================================================
// SHIFT MODEL
// =============================================================================

// Shift is a configured work schedule for one date. Times are stored with
// second precision ("HH:MM:SS") but the engine truncates them to minutes.
//
// The engine assumes CheckIn < CheckOut and does not validate it; a
// malformed shift produces nonsensical (possibly negative) durations, which
// is the configuring layer's problem.
type Shift struct {
	ID       int64
	Date     string // YYYY-MM-DD
	Name     string
	CheckIn  string
	CheckOut string

	// Holiday turns all worked time into overtime, uncapped at 8h.
	Holiday bool

	// OvertimeEnabled honors the actual check-out; when false the work end
	// is capped at the shift's scheduled check-out.
	OvertimeEnabled bool
}

// AssignmentKey identifies a per-employee shift assignment for one date.
// Used as the lookup key in employee-aware resolution.
func AssignmentKey(employeeID int64, date string) string {
	return fmt.Sprintf("%d-%s", employeeID, date)
}

// =============================================================================
// SHIFT RESOLUTION
// =============================================================================

// ResolveShiftForDate finds the shift applying to a date. When several
// shifts share the date, the lowest shift ID wins; this replaces the
// insertion-order tie-break of older revisions with a deterministic one.
// With no match, the default shift from the rules applies.
func (c Calculator) ResolveShiftForDate(date string, shifts []Shift) Shift {
	var found *Shift
	for i := range shifts {
		if shifts[i].Date != date {
			continue
		}
		if found == nil || shifts[i].ID < found.ID {
			found = &shifts[i]
		}
	}
	if found == nil {
		return c.Rules.DefaultShift
	}
	return *found
}

// ResolveShiftForEmployee prefers a shift specifically assigned to the
// employee for the date (assigned is keyed by AssignmentKey), then falls
// back to date-level resolution, then to the default shift.
func (c Calculator) ResolveShiftForEmployee(employeeID int64, date string, shifts []Shift, assigned map[string]Shift) Shift {
	if s, ok := assigned[AssignmentKey(employeeID, date)]; ok {
		return s
	}
	return c.ResolveShiftForDate(date, shifts)
}
