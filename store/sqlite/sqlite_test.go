package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmployeeLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// GIVEN a created employee
	emp, err := store.CreateEmployee(ctx, "12", "Ana")
	require.NoError(t, err)
	require.NotNil(t, emp)
	assert.NotZero(t, emp.ID)
	assert.Equal(t, "12", emp.Fingerprint)

	// WHEN looking it up both ways
	byID, err := store.GetEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	byFingerprint, err := store.GetEmployeeByFingerprint(ctx, "12")
	require.NoError(t, err)
	require.NotNil(t, byFingerprint)
	assert.Equal(t, byID.ID, byFingerprint.ID)

	// WHEN updating
	updated, err := store.UpdateEmployee(ctx, emp.ID, "12", "Ana B")
	require.NoError(t, err)
	assert.Equal(t, "Ana B", updated.Name)

	// WHEN deleting
	require.NoError(t, store.DeleteEmployee(ctx, emp.ID))
	gone, err := store.GetEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCreateEmployee_DuplicateFingerprint(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.CreateEmployee(ctx, "12", "Ana")
	require.NoError(t, err)

	_, err = store.CreateEmployee(ctx, "12", "Bo")
	assert.ErrorIs(t, err, ErrFingerprintTaken)
}

func TestSavePunches_IgnoresDuplicates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	batch := []Punch{
		{Fingerprint: "12", Date: "2024-05-06", Time: "08:00:15"},
		{Fingerprint: "12", Date: "2024-05-06", Time: "17:01:02"},
	}

	// GIVEN a first import
	inserted, err := store.SavePunches(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// WHEN the same file is imported again with one new row
	batch = append(batch, Punch{Fingerprint: "12", Date: "2024-05-07", Time: "08:05:00"})
	inserted, err = store.SavePunches(ctx, batch)
	require.NoError(t, err)

	// THEN only the new row lands
	assert.Equal(t, 1, inserted)
	punches, err := store.ListPunchesInRange(ctx, "2024-05-01", "2024-05-31")
	require.NoError(t, err)
	assert.Len(t, punches, 3)
}

func TestListPunchesInRange_Bounds(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.SavePunches(ctx, []Punch{
		{Fingerprint: "12", Date: "2024-04-30", Time: "08:00:00"},
		{Fingerprint: "12", Date: "2024-05-01", Time: "08:00:00"},
		{Fingerprint: "12", Date: "2024-05-31", Time: "08:00:00"},
		{Fingerprint: "12", Date: "2024-06-01", Time: "08:00:00"},
	})
	require.NoError(t, err)

	punches, err := store.ListPunchesInRange(ctx, "2024-05-01", "2024-05-31")
	require.NoError(t, err)

	// THEN both endpoints are inclusive
	require.Len(t, punches, 2)
	assert.Equal(t, "2024-05-01", punches[0].Date)
	assert.Equal(t, "2024-05-31", punches[1].Date)
}

func TestShiftLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	shift, err := store.CreateShift(ctx, Shift{
		Date: "2024-05-06", Name: "day", CheckIn: "08:00", CheckOut: "17:00",
		OvertimeEnabled: true,
	})
	require.NoError(t, err)
	require.NotNil(t, shift)
	assert.True(t, shift.OvertimeEnabled)

	shift.Holiday = true
	updated, err := store.UpdateShift(ctx, *shift)
	require.NoError(t, err)
	assert.True(t, updated.Holiday)

	require.NoError(t, store.DeleteShift(ctx, shift.ID))
	gone, err := store.GetShift(ctx, shift.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestListShiftsInRange_Order(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// GIVEN two shifts on the same date and one on an earlier date
	_, err := store.CreateShift(ctx, Shift{Date: "2024-05-07", CheckIn: "08:00", CheckOut: "17:00"})
	require.NoError(t, err)
	_, err = store.CreateShift(ctx, Shift{Date: "2024-05-06", Name: "a", CheckIn: "08:00", CheckOut: "17:00"})
	require.NoError(t, err)
	_, err = store.CreateShift(ctx, Shift{Date: "2024-05-06", Name: "b", CheckIn: "09:00", CheckOut: "18:00"})
	require.NoError(t, err)

	shifts, err := store.ListShiftsInRange(ctx, "2024-05-01", "2024-05-31")
	require.NoError(t, err)

	// THEN the order is date ascending, id ascending within a date
	require.Len(t, shifts, 3)
	assert.Equal(t, "a", shifts[0].Name)
	assert.Equal(t, "b", shifts[1].Name)
	assert.Equal(t, "2024-05-07", shifts[2].Date)
}

func TestAssignShift_ReplacesAndCascades(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ana, err := store.CreateEmployee(ctx, "12", "Ana")
	require.NoError(t, err)
	bo, err := store.CreateEmployee(ctx, "30", "Bo")
	require.NoError(t, err)
	shift, err := store.CreateShift(ctx, Shift{Date: "2024-05-06", CheckIn: "14:00", CheckOut: "23:00"})
	require.NoError(t, err)

	// GIVEN both employees assigned
	require.NoError(t, store.AssignShift(ctx, shift.ID, []int64{ana.ID, bo.ID}))
	ids, err := store.ListAssignments(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{ana.ID, bo.ID}, ids)

	// WHEN re-assigning with a shorter list
	require.NoError(t, store.AssignShift(ctx, shift.ID, []int64{bo.ID}))
	ids, err = store.ListAssignments(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{bo.ID}, ids)

	// WHEN deleting the shift
	require.NoError(t, store.DeleteShift(ctx, shift.ID))
	ids, err = store.ListAssignments(ctx, shift.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAssignedShiftsInRange(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ana, err := store.CreateEmployee(ctx, "12", "Ana")
	require.NoError(t, err)
	shift, err := store.CreateShift(ctx, Shift{Date: "2024-05-06", Name: "night", CheckIn: "14:00", CheckOut: "23:00"})
	require.NoError(t, err)
	require.NoError(t, store.AssignShift(ctx, shift.ID, []int64{ana.ID}))

	assigned, err := store.AssignedShiftsInRange(ctx, "2024-05-01", "2024-05-31")
	require.NoError(t, err)

	got, ok := assigned[engine.AssignmentKey(ana.ID, "2024-05-06")]
	require.True(t, ok)
	assert.Equal(t, "night", got.Name)
	assert.Equal(t, "14:00", got.CheckIn)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.CreateEmployee(ctx, "12", "Ana")
	require.NoError(t, err)
	_, err = store.SavePunches(ctx, []Punch{{Fingerprint: "12", Date: "2024-05-06", Time: "08:00:00"}})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))

	employees, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)
	punches, err := store.ListPunchesInRange(ctx, "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Empty(t, punches)
}
