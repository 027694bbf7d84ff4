/*
handlers.go - HTTP API handlers for the payroll console

PURPOSE:
  Exposes the attendance and payroll engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Reports:
    GET    /api/payroll?start&end   Payroll report for a date range
    GET    /api/ranking?start&end   Attendance ranking
    GET    /api/dashboard?start&end Dashboard statistics

  Employees:
    GET    /api/employees           List all employees
    POST   /api/employees           Create employee
    GET    /api/employees/{id}      Get employee
    PUT    /api/employees/{id}      Update employee
    DELETE /api/employees/{id}      Delete employee

  Shifts:
    GET    /api/shifts?start&end    List shifts in a range
    POST   /api/shifts              Create shift
    PUT    /api/shifts/{id}         Update shift
    DELETE /api/shifts/{id}         Delete shift
    PUT    /api/shifts/{id}/assignments  Replace assigned employees

  Punches:
    GET    /api/punches?start&end   List punches in a range
    POST   /api/punches             Import a punch batch
    DELETE /api/punches/{id}        Delete a punch

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (store, reporter)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (duplicate fingerprint)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Reporter *payroll.Reporter
}

// NewHandler creates a new handler with the given store and default
// calculation rules.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		Reporter: payroll.NewReporter(engine.DefaultRules()),
	}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetPayroll returns the payroll report for a date range.
// GET /api/payroll?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	input, err := h.reportInput(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load report data", err)
		return
	}

	summaries := h.Reporter.Summarize(input)
	resp := PayrollResponse{
		Start:     start,
		End:       end,
		Employees: make([]PayrollEmployeeDTO, 0, len(summaries)),
	}
	for _, sum := range summaries {
		resp.Employees = append(resp.Employees, toPayrollEmployeeDTO(sum))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetRanking returns the attendance ranking for a date range.
// GET /api/ranking?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	input, err := h.reportInput(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load report data", err)
		return
	}

	rankings := h.Reporter.Rank(input)
	dtos := make([]RankingDTO, 0, len(rankings))
	for _, row := range rankings {
		dtos = append(dtos, toRankingDTO(row))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetDashboard returns dashboard statistics for a date range.
// GET /api/dashboard?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	input, err := h.reportInput(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load report data", err)
		return
	}

	stats := h.Reporter.Stats(input)
	writeJSON(w, http.StatusOK, DashboardResponse{
		TotalEmployees:    stats.TotalEmployees,
		TotalFingerprints: stats.TotalFingerprints,
		TotalDaysWithData: stats.TotalDaysWithData,
		LastUpdatedDate:   stats.LastUpdatedDate,
		CheckInHours:      toHourCountDTOs(stats.CheckInHours),
		CheckOutHours:     toHourCountDTOs(stats.CheckOutHours),
	})
}

// reportInput assembles everything the reporter needs for one range.
func (h *Handler) reportInput(ctx context.Context, start, end string) (payroll.Input, error) {
	punches, err := h.Store.ListPunchesInRange(ctx, start, end)
	if err != nil {
		return payroll.Input{}, err
	}

	shiftRecords, err := h.Store.ListShiftsInRange(ctx, start, end)
	if err != nil {
		return payroll.Input{}, err
	}
	shifts := make([]engine.Shift, 0, len(shiftRecords))
	for _, sh := range shiftRecords {
		shifts = append(shifts, sh.Engine())
	}

	assigned, err := h.Store.AssignedShiftsInRange(ctx, start, end)
	if err != nil {
		return payroll.Input{}, err
	}

	employeeRecords, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return payroll.Input{}, err
	}
	employees := make([]payroll.Employee, 0, len(employeeRecords))
	for _, e := range employeeRecords {
		employees = append(employees, payroll.Employee{
			ID:          e.ID,
			Fingerprint: e.Fingerprint,
			Name:        e.Name,
		})
	}

	return payroll.Input{
		Entries:     groupPunches(punches),
		Shifts:      shifts,
		Assignments: assigned,
		Employees:   employees,
	}, nil
}

// groupPunches folds punch rows into employee-day entries. Rows arrive
// ordered by fingerprint, date, time, so a new entry starts whenever
// either key changes.
func groupPunches(punches []sqlite.Punch) []payroll.DayEntry {
	var entries []payroll.DayEntry
	for _, p := range punches {
		n := len(entries)
		if n == 0 || entries[n-1].Fingerprint != p.Fingerprint || entries[n-1].Date != p.Date {
			entries = append(entries, payroll.DayEntry{Fingerprint: p.Fingerprint, Date: p.Date})
			n++
		}
		entries[n-1].Times = append(entries[n-1].Times, p.Time)
	}
	return entries
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Fingerprint == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "fingerprint and name are required", nil)
		return
	}

	emp, err := h.Store.CreateEmployee(r.Context(), req.Fingerprint, req.Name)
	if err != nil {
		if errors.Is(err, sqlite.ErrFingerprintTaken) {
			writeError(w, http.StatusConflict, "Fingerprint already registered", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*emp))
}

// GetEmployee returns one employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// UpdateEmployee updates an employee.
// PUT /api/employees/{id}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return
	}

	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Fingerprint == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "fingerprint and name are required", nil)
		return
	}

	existing, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	emp, err := h.Store.UpdateEmployee(r.Context(), id, req.Fingerprint, req.Name)
	if err != nil {
		if errors.Is(err, sqlite.ErrFingerprintTaken) {
			writeError(w, http.StatusConflict, "Fingerprint already registered", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// DeleteEmployee removes an employee.
// DELETE /api/employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return
	}
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns shifts in a date range with their assignments.
// GET /api/shifts?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	shifts, err := h.Store.ListShiftsInRange(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, 0, len(shifts))
	for _, sh := range shifts {
		ids, err := h.Store.ListAssignments(r.Context(), sh.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
			return
		}
		dtos = append(dtos, toShiftDTO(sh, ids))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateShift creates a new shift.
// POST /api/shifts
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req SaveShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateShift(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	shift, err := h.Store.CreateShift(r.Context(), sqlite.Shift{
		Date:            req.Date,
		Name:            req.Name,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Holiday:         req.Holiday,
		OvertimeEnabled: req.OvertimeEnabled,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(*shift, nil))
}

// UpdateShift updates a shift.
// PUT /api/shifts/{id}
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return
	}

	var req SaveShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateShift(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	existing, err := h.Store.GetShift(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}

	shift, err := h.Store.UpdateShift(r.Context(), sqlite.Shift{
		ID:              id,
		Date:            req.Date,
		Name:            req.Name,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Holiday:         req.Holiday,
		OvertimeEnabled: req.OvertimeEnabled,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update shift", err)
		return
	}

	ids, err := h.Store.ListAssignments(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(*shift, ids))
}

// DeleteShift removes a shift.
// DELETE /api/shifts/{id}
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return
	}
	if err := h.Store.DeleteShift(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignShift replaces the employees assigned to a shift.
// PUT /api/shifts/{id}/assignments
func (h *Handler) AssignShift(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return
	}

	var req AssignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	shift, err := h.Store.GetShift(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	if shift == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}

	if err := h.Store.AssignShift(r.Context(), id, req.EmployeeIDs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to assign shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(*shift, req.EmployeeIDs))
}

// =============================================================================
// PUNCH HANDLERS
// =============================================================================

// ListPunches returns punches in a date range.
// GET /api/punches?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) ListPunches(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	punches, err := h.Store.ListPunchesInRange(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list punches", err)
		return
	}

	dtos := make([]PunchDTO, len(punches))
	for i, p := range punches {
		dtos[i] = PunchDTO{
			ID:          p.ID,
			Fingerprint: p.Fingerprint,
			Date:        p.Date,
			Time:        p.Time,
			Manual:      p.Manual,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ImportPunches stores a batch of punches, skipping duplicates.
// POST /api/punches
func (h *Handler) ImportPunches(w http.ResponseWriter, r *http.Request) {
	var req SavePunchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Punches) == 0 {
		writeError(w, http.StatusBadRequest, "No punches in request", nil)
		return
	}

	batch := make([]sqlite.Punch, 0, len(req.Punches))
	for _, p := range req.Punches {
		if p.Fingerprint == "" || !validDate(p.Date) || p.Time == "" {
			writeError(w, http.StatusBadRequest, "Invalid punch row", nil)
			return
		}
		batch = append(batch, sqlite.Punch{
			Fingerprint: p.Fingerprint,
			Date:        p.Date,
			Time:        p.Time,
			Manual:      p.Manual,
		})
	}

	inserted, err := h.Store.SavePunches(r.Context(), batch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save punches", err)
		return
	}
	writeJSON(w, http.StatusCreated, SavePunchesResponse{
		Inserted: inserted,
		Skipped:  len(batch) - inserted,
	})
}

// DeletePunch removes a punch row.
// DELETE /api/punches/{id}
func (h *Handler) DeletePunch(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid punch id", err)
		return
	}
	if err := h.Store.DeletePunch(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete punch", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetDatabase clears all data (dev only).
// POST /api/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseRange(r *http.Request) (start, end string, err error) {
	start = r.URL.Query().Get("start")
	end = r.URL.Query().Get("end")
	if !validDate(start) || !validDate(end) {
		return "", "", errors.New("start and end must be YYYY-MM-DD")
	}
	if end < start {
		return "", "", errors.New("end must not precede start")
	}
	return start, end, nil
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func validateShift(req SaveShiftRequest) error {
	if !validDate(req.Date) {
		return errors.New("date must be YYYY-MM-DD")
	}
	if !validClock(req.CheckIn) || !validClock(req.CheckOut) {
		return errors.New("check_in and check_out must be HH:MM")
	}
	return nil
}

func validClock(clock string) bool {
	_, err := time.Parse("15:04", clock)
	return err == nil
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
