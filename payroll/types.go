// Package payroll aggregates per-day engine results into the reports the
// console shows: payroll summaries over a date range, the attendance
// ranking, and dashboard statistics. It owns no calculation rules of its
// own; everything numeric comes from the engine package.
package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// INPUT RECORDS
// =============================================================================
// These are plain records handed over by the persistence layer. The
// aggregator never touches a database.

// Employee links a scanner fingerprint code to an identity.
type Employee struct {
	ID          int64
	Fingerprint string
	Name        string
}

// DayEntry is one employee-day of raw punches, deduplicated, times in
// HH:MM:SS or HH:MM.
type DayEntry struct {
	Fingerprint string
	Date        string // YYYY-MM-DD
	Times       []string
}

// Input bundles everything a report needs for one date range.
type Input struct {
	Entries     []DayEntry
	Shifts      []engine.Shift
	Assignments map[string]engine.Shift // keyed by engine.AssignmentKey
	Employees   []Employee
}

// =============================================================================
// OUTPUT RECORDS
// =============================================================================

// DayLine is one row of the payroll report for one employee-day.
type DayLine struct {
	Date  string
	Times []string // normalized to HH:MM, sorted

	// Complete is true for exactly-two-punch days; only those carry a
	// calculated Result. Incomplete days render as "-".
	Complete bool
	Result   engine.DayResult

	// Badges for rendering.
	Holiday        bool
	SeventhDay     bool
	OvertimeTagged bool // overtime from an overtime-enabled regular day
}

// EmployeeSummary is the per-employee block of the payroll report.
type EmployeeSummary struct {
	Fingerprint  string
	EmployeeID   int64 // 0 when no employee record matches the fingerprint
	EmployeeName string

	Days []DayLine

	// Range totals, each rounded to 1 decimal place.
	TotalWorkDays     decimal.Decimal
	TotalOTHours      decimal.Decimal
	TotalLunchBreakOT decimal.Decimal
}

// =============================================================================
// REPORTER
// =============================================================================

// Reporter runs reports with one rules set. Construct with NewReporter.
type Reporter struct {
	calc engine.Calculator
}

func NewReporter(rules engine.Rules) *Reporter {
	return &Reporter{calc: engine.NewCalculator(rules)}
}
