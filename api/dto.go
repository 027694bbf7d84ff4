/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/types.go: The aggregation results these wrap
*/
package api

import (
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID          int64  `json:"id"`
	Fingerprint string `json:"fingerprint"`
	Name        string `json:"name"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// SaveEmployeeRequest creates or updates an employee.
type SaveEmployeeRequest struct {
	Fingerprint string `json:"fingerprint"`
	Name        string `json:"name"`
}

// =============================================================================
// PUNCHES
// =============================================================================

// PunchDTO represents a stored punch in API responses.
type PunchDTO struct {
	ID          int64  `json:"id"`
	Fingerprint string `json:"fingerprint"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Manual      bool   `json:"manual"`
}

// SavePunchesRequest imports a batch of punches.
type SavePunchesRequest struct {
	Punches []PunchInput `json:"punches"`
}

// PunchInput is one punch row in an import request.
type PunchInput struct {
	Fingerprint string `json:"fingerprint"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Manual      bool   `json:"manual"`
}

// SavePunchesResponse reports how many rows were new.
type SavePunchesResponse struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftDTO represents a shift in API responses.
type ShiftDTO struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	Name            string  `json:"name"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Holiday         bool    `json:"is_holiday"`
	OvertimeEnabled bool    `json:"enable_overtime"`
	EmployeeIDs     []int64 `json:"employee_ids,omitempty"`
}

// SaveShiftRequest creates or updates a shift.
type SaveShiftRequest struct {
	Date            string `json:"date"`
	Name            string `json:"name"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Holiday         bool   `json:"is_holiday"`
	OvertimeEnabled bool   `json:"enable_overtime"`
}

// AssignShiftRequest replaces the employees assigned to a shift.
type AssignShiftRequest struct {
	EmployeeIDs []int64 `json:"employee_ids"`
}

// =============================================================================
// REPORTS
// =============================================================================

// PayrollDayDTO is one employee-day of the payroll report.
type PayrollDayDTO struct {
	Date           string   `json:"date"`
	Times          []string `json:"times"`
	Complete       bool     `json:"complete"`
	WorkDays       string   `json:"work_days,omitempty"`
	WorkHours      string   `json:"work_hours,omitempty"`
	OTHours        string   `json:"ot_hours,omitempty"`
	LunchBreakOT   string   `json:"lunch_break_ot,omitempty"`
	CheckIn        string   `json:"check_in,omitempty"`
	Late           bool     `json:"late"`
	LateWarning    bool     `json:"late_warning"`
	Holiday        bool     `json:"is_holiday"`
	SeventhDay     bool     `json:"is_seventh_day"`
	OvertimeTagged bool     `json:"has_overtime"`
}

// PayrollEmployeeDTO is the per-employee block of the payroll report.
type PayrollEmployeeDTO struct {
	Fingerprint       string          `json:"fingerprint"`
	EmployeeID        int64           `json:"employee_id,omitempty"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	Days              []PayrollDayDTO `json:"days"`
	TotalWorkDays     string          `json:"total_work_days"`
	TotalOTHours      string          `json:"total_ot_hours"`
	TotalLunchBreakOT string          `json:"total_lunch_break_ot"`
}

// PayrollResponse is the full payroll report for a date range.
type PayrollResponse struct {
	Start     string               `json:"start"`
	End       string               `json:"end"`
	Employees []PayrollEmployeeDTO `json:"employees"`
}

// RankingDTO is one row of the attendance ranking.
type RankingDTO struct {
	Fingerprint    string `json:"fingerprint"`
	EmployeeID     int64  `json:"employee_id,omitempty"`
	EmployeeName   string `json:"employee_name,omitempty"`
	WorkDays       int    `json:"work_days"`
	LateDays       int    `json:"late_days"`
	LatePercentage string `json:"late_percentage"`
	Rating         string `json:"rating"`
}

// HourCountDTO is one histogram bucket.
type HourCountDTO struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// DashboardResponse is the dashboard statistics payload.
type DashboardResponse struct {
	TotalEmployees    int            `json:"total_employees"`
	TotalFingerprints int            `json:"total_fingerprints"`
	TotalDaysWithData int            `json:"total_days_with_data"`
	LastUpdatedDate   string         `json:"last_updated_date,omitempty"`
	CheckInHours      []HourCountDTO `json:"check_in_hours"`
	CheckOutHours     []HourCountDTO `json:"check_out_hours"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(e sqlite.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:          e.ID,
		Fingerprint: e.Fingerprint,
		Name:        e.Name,
		CreatedAt:   e.CreatedAt.Format("2006-01-02"),
	}
}

func toShiftDTO(sh sqlite.Shift, employeeIDs []int64) ShiftDTO {
	return ShiftDTO{
		ID:              sh.ID,
		Date:            sh.Date,
		Name:            sh.Name,
		CheckIn:         sh.CheckIn,
		CheckOut:        sh.CheckOut,
		Holiday:         sh.Holiday,
		OvertimeEnabled: sh.OvertimeEnabled,
		EmployeeIDs:     employeeIDs,
	}
}

func toPayrollEmployeeDTO(sum payroll.EmployeeSummary) PayrollEmployeeDTO {
	dto := PayrollEmployeeDTO{
		Fingerprint:       sum.Fingerprint,
		EmployeeID:        sum.EmployeeID,
		EmployeeName:      sum.EmployeeName,
		Days:              make([]PayrollDayDTO, 0, len(sum.Days)),
		TotalWorkDays:     sum.TotalWorkDays.StringFixed(1),
		TotalOTHours:      sum.TotalOTHours.StringFixed(1),
		TotalLunchBreakOT: sum.TotalLunchBreakOT.StringFixed(1),
	}
	for _, day := range sum.Days {
		d := PayrollDayDTO{
			Date:           day.Date,
			Times:          day.Times,
			Complete:       day.Complete,
			Holiday:        day.Holiday,
			SeventhDay:     day.SeventhDay,
			OvertimeTagged: day.OvertimeTagged,
		}
		if day.Complete {
			d.WorkDays = day.Result.WorkDays.StringFixed(1)
			d.WorkHours = day.Result.WorkHours.StringFixed(1)
			d.OTHours = day.Result.OTHours.StringFixed(1)
			d.LunchBreakOT = day.Result.LunchBreakOT.StringFixed(1)
			d.CheckIn = day.Result.EffectiveCheckIn
			d.Late = day.Result.Late
			d.LateWarning = day.Result.LateWarning
		}
		dto.Days = append(dto.Days, d)
	}
	return dto
}

func toRankingDTO(row payroll.Ranking) RankingDTO {
	return RankingDTO{
		Fingerprint:    row.Fingerprint,
		EmployeeID:     row.EmployeeID,
		EmployeeName:   row.EmployeeName,
		WorkDays:       row.WorkDays,
		LateDays:       row.LateDays,
		LatePercentage: row.LatePercentage.StringFixed(1),
		Rating:         string(row.Rating),
	}
}

func toHourCountDTOs(counts []payroll.HourCount) []HourCountDTO {
	out := make([]HourCountDTO, len(counts))
	for i, c := range counts {
		out[i] = HourCountDTO{Hour: c.Hour, Count: c.Count}
	}
	return out
}
