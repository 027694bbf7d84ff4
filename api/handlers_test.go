package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/store/sqlite"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewRouter(NewHandler(store), RouterOptions{
		AllowedOrigins: []string{"*"},
	})
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestEmployeeEndpoints(t *testing.T) {
	router := newTestRouter(t)

	// WHEN creating an employee
	rec := doJSON(t, router, http.MethodPost, "/api/employees", SaveEmployeeRequest{
		Fingerprint: "12", Name: "Ana",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[EmployeeDTO](t, rec)
	assert.NotZero(t, created.ID)

	// THEN a duplicate fingerprint conflicts
	rec = doJSON(t, router, http.MethodPost, "/api/employees", SaveEmployeeRequest{
		Fingerprint: "12", Name: "Bo",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// AND the list contains the record
	rec = doJSON(t, router, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]EmployeeDTO](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Name)

	// AND a missing id is a 404
	rec = doJSON(t, router, http.MethodGet, "/api/employees/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportPunches_ReportsSkipped(t *testing.T) {
	router := newTestRouter(t)

	batch := SavePunchesRequest{Punches: []PunchInput{
		{Fingerprint: "12", Date: "2024-05-06", Time: "08:00:15"},
		{Fingerprint: "12", Date: "2024-05-06", Time: "17:01:02"},
	}}

	rec := doJSON(t, router, http.MethodPost, "/api/punches", batch)
	require.Equal(t, http.StatusCreated, rec.Code)
	first := decode[SavePunchesResponse](t, rec)
	assert.Equal(t, 2, first.Inserted)

	// WHEN re-importing the same batch
	rec = doJSON(t, router, http.MethodPost, "/api/punches", batch)
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[SavePunchesResponse](t, rec)
	assert.Zero(t, second.Inserted)
	assert.Equal(t, 2, second.Skipped)
}

func TestGetPayroll(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/employees", SaveEmployeeRequest{
		Fingerprint: "12", Name: "Ana",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/punches", SavePunchesRequest{Punches: []PunchInput{
		{Fingerprint: "12", Date: "2024-05-06", Time: "08:00:00"},
		{Fingerprint: "12", Date: "2024-05-06", Time: "17:00:00"},
	}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/payroll?start=2024-05-01&end=2024-05-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[PayrollResponse](t, rec)

	require.Len(t, resp.Employees, 1)
	emp := resp.Employees[0]
	assert.Equal(t, "Ana", emp.EmployeeName)
	assert.Equal(t, "1.0", emp.TotalWorkDays)
	assert.Equal(t, "0.5", emp.TotalLunchBreakOT)
	require.Len(t, emp.Days, 1)
	assert.True(t, emp.Days[0].Complete)
	assert.Equal(t, "8.0", emp.Days[0].WorkHours)
}

func TestGetPayroll_InvalidRange(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/payroll?start=2024-05-31&end=2024-05-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/payroll?start=yesterday&end=today", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRanking(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/punches", SavePunchesRequest{Punches: []PunchInput{
		{Fingerprint: "12", Date: "2024-05-06", Time: "08:00:00"},
		{Fingerprint: "12", Date: "2024-05-06", Time: "17:00:00"},
		{Fingerprint: "12", Date: "2024-05-07", Time: "09:30:00"},
		{Fingerprint: "12", Date: "2024-05-07", Time: "17:00:00"},
	}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/ranking?start=2024-05-01&end=2024-05-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rankings := decode[[]RankingDTO](t, rec)

	require.Len(t, rankings, 1)
	assert.Equal(t, 2, rankings[0].WorkDays)
	assert.Equal(t, 1, rankings[0].LateDays)
	assert.Equal(t, "50.0", rankings[0].LatePercentage)
	assert.Equal(t, "needs_improvement", rankings[0].Rating)
}

func TestGetDashboard(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/punches", SavePunchesRequest{Punches: []PunchInput{
		{Fingerprint: "12", Date: "2024-05-06", Time: "08:00:00"},
		{Fingerprint: "12", Date: "2024-05-06", Time: "17:00:00"},
	}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/dashboard?start=2024-05-01&end=2024-05-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[DashboardResponse](t, rec)

	assert.Equal(t, 1, resp.TotalFingerprints)
	assert.Equal(t, 1, resp.TotalDaysWithData)
	assert.Equal(t, "2024-05-06", resp.LastUpdatedDate)
	require.Len(t, resp.CheckInHours, 1)
	assert.Equal(t, "08:00", resp.CheckInHours[0].Hour)
}

func TestShiftEndpoints(t *testing.T) {
	router := newTestRouter(t)

	// GIVEN an employee and a created shift
	rec := doJSON(t, router, http.MethodPost, "/api/employees", SaveEmployeeRequest{
		Fingerprint: "12", Name: "Ana",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	emp := decode[EmployeeDTO](t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/shifts", SaveShiftRequest{
		Date: "2024-05-06", Name: "night", CheckIn: "14:00", CheckOut: "23:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	shift := decode[ShiftDTO](t, rec)
	require.NotZero(t, shift.ID)

	// WHEN assigning the employee
	rec = doJSON(t, router, http.MethodPut,
		"/api/shifts/"+strconv.FormatInt(shift.ID, 10)+"/assignments",
		AssignShiftRequest{EmployeeIDs: []int64{emp.ID}})
	require.Equal(t, http.StatusOK, rec.Code)

	// THEN the listing carries the assignment
	rec = doJSON(t, router, http.MethodGet, "/api/shifts?start=2024-05-01&end=2024-05-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shifts := decode[[]ShiftDTO](t, rec)
	require.Len(t, shifts, 1)
	assert.Equal(t, []int64{emp.ID}, shifts[0].EmployeeIDs)

	// AND a malformed clock is rejected
	rec = doJSON(t, router, http.MethodPost, "/api/shifts", SaveShiftRequest{
		Date: "2024-05-06", CheckIn: "8am", CheckOut: "17:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
