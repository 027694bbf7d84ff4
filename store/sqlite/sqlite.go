/*
Package sqlite provides the SQLite-backed persistence for the payroll
console.

PURPOSE:
  Stores the imported punch data and the shift calendar. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  employees:         Fingerprint-to-identity records
  punches:           Raw scanner punches, one row per punch
  shifts:            Date-level shift definitions
  shift_assignments: Per-employee shift overrides

DUPLICATE HANDLING:
  Scanner exports overlap freely between imports, so punches carry a
  UNIQUE(fingerprint, date, time) index and inserts ignore conflicts.
  Re-importing the same file is a no-op.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/shift.go: shift resolution over these records
  - api/handlers.go: the HTTP surface reading and writing this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payroll-engine/engine"
)

// ErrFingerprintTaken is returned when saving an employee whose
// fingerprint code already belongs to another record.
var ErrFingerprintTaken = fmt.Errorf("fingerprint code already registered")

// Store is the SQLite-backed persistence layer.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employees (fingerprint identities)
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fingerprint TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Punches (raw scanner rows)
	CREATE TABLE IF NOT EXISTS punches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fingerprint TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		is_manual BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	-- CRITICAL: re-imports of overlapping scanner files must be no-ops
	CREATE UNIQUE INDEX IF NOT EXISTS idx_punches_unique
		ON punches(fingerprint, date, time);

	-- Range reads are the hot path
	CREATE INDEX IF NOT EXISTS idx_punches_date
		ON punches(date);
	CREATE INDEX IF NOT EXISTS idx_punches_fingerprint_date
		ON punches(fingerprint, date);

	-- Shifts (date-level schedule)
	CREATE TABLE IF NOT EXISTS shifts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		check_in TEXT NOT NULL,
		check_out TEXT NOT NULL,
		is_holiday BOOLEAN NOT NULL DEFAULT FALSE,
		enable_overtime BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_date
		ON shifts(date);

	-- Shift assignments (per-employee overrides)
	CREATE TABLE IF NOT EXISTS shift_assignments (
		shift_id INTEGER NOT NULL,
		employee_id INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (shift_id, employee_id),
		FOREIGN KEY (shift_id) REFERENCES shifts(id) ON DELETE CASCADE,
		FOREIGN KEY (employee_id) REFERENCES employees(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_employee
		ON shift_assignments(employee_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// Employee is a stored fingerprint identity.
type Employee struct {
	ID          int64
	Fingerprint string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEmployee inserts a new employee and returns it with its id.
func (s *Store) CreateEmployee(ctx context.Context, fingerprint, name string) (*Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO employees (fingerprint, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		fingerprint, name, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrFingerprintTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.getEmployee(ctx, id)
}

// UpdateEmployee updates name and fingerprint of an existing employee.
func (s *Store) UpdateEmployee(ctx context.Context, id int64, fingerprint, name string) (*Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"UPDATE employees SET fingerprint = ?, name = ?, updated_at = ? WHERE id = ?",
		fingerprint, name, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrFingerprintTaken
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return s.getEmployee(ctx, id)
}

// GetEmployee retrieves an employee by ID. Returns nil when absent.
func (s *Store) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getEmployee(ctx, id)
}

func (s *Store) getEmployee(ctx context.Context, id int64) (*Employee, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, fingerprint, name, created_at, updated_at FROM employees WHERE id = ?", id)
	return scanEmployee(row)
}

// GetEmployeeByFingerprint retrieves an employee by fingerprint code.
func (s *Store) GetEmployeeByFingerprint(ctx context.Context, fingerprint string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, fingerprint, name, created_at, updated_at FROM employees WHERE fingerprint = ?",
		fingerprint)
	return scanEmployee(row)
}

func scanEmployee(row *sql.Row) (*Employee, error) {
	var emp Employee
	var createdAt, updatedAt string

	err := row.Scan(&emp.ID, &emp.Fingerprint, &emp.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	emp.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &emp, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, fingerprint, name, created_at, updated_at FROM employees ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		var createdAt, updatedAt string
		if err := rows.Scan(&emp.ID, &emp.Fingerprint, &emp.Name, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		emp.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee and its assignments.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	return err
}

// =============================================================================
// PUNCHES
// =============================================================================

// Punch is one raw scanner row.
type Punch struct {
	ID          int64
	Fingerprint string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM:SS
	Manual      bool
	CreatedAt   time.Time
}

// SavePunches inserts a batch of punches atomically, ignoring rows that
// already exist. Returns the number of rows actually inserted.
func (s *Store) SavePunches(ctx context.Context, punches []Punch) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	query := `
		INSERT INTO punches (fingerprint, date, time, is_manual, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint, date, time) DO NOTHING
	`

	now := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, p := range punches {
		res, err := sqlTx.ExecContext(ctx, query, p.Fingerprint, p.Date, p.Time, p.Manual, now)
		if err != nil {
			return 0, fmt.Errorf("failed to save punch: %w", err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	return inserted, sqlTx.Commit()
}

// ListPunchesInRange returns punches with date in [from, to], ordered by
// fingerprint, date, time.
func (s *Store) ListPunchesInRange(ctx context.Context, from, to string) ([]Punch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, fingerprint, date, time, is_manual, created_at
		FROM punches
		WHERE date >= ? AND date <= ?
		ORDER BY fingerprint ASC, date ASC, time ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	var punches []Punch
	for rows.Next() {
		var p Punch
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Fingerprint, &p.Date, &p.Time, &p.Manual, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

// DeletePunch removes a single punch by ID.
func (s *Store) DeletePunch(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM punches WHERE id = ?", id)
	return err
}

// =============================================================================
// SHIFTS
// =============================================================================

// Shift is a stored shift definition.
type Shift struct {
	ID              int64
	Date            string // YYYY-MM-DD
	Name            string
	CheckIn         string // HH:MM
	CheckOut        string // HH:MM
	Holiday         bool
	OvertimeEnabled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Engine converts the stored record into the calculation-side shape.
func (sh Shift) Engine() engine.Shift {
	return engine.Shift{
		ID:              sh.ID,
		Date:            sh.Date,
		Name:            sh.Name,
		CheckIn:         sh.CheckIn,
		CheckOut:        sh.CheckOut,
		Holiday:         sh.Holiday,
		OvertimeEnabled: sh.OvertimeEnabled,
	}
}

// CreateShift inserts a new shift and returns it with its id.
func (s *Store) CreateShift(ctx context.Context, sh Shift) (*Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (date, name, check_in, check_out, is_holiday, enable_overtime, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sh.Date, sh.Name, sh.CheckIn, sh.CheckOut, sh.Holiday, sh.OvertimeEnabled, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.getShift(ctx, id)
}

// UpdateShift updates all editable fields of a shift.
func (s *Store) UpdateShift(ctx context.Context, sh Shift) (*Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		UPDATE shifts
		SET date = ?, name = ?, check_in = ?, check_out = ?, is_holiday = ?, enable_overtime = ?, updated_at = ?
		WHERE id = ?`,
		sh.Date, sh.Name, sh.CheckIn, sh.CheckOut, sh.Holiday, sh.OvertimeEnabled,
		time.Now().UTC().Format(time.RFC3339), sh.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}
	return s.getShift(ctx, sh.ID)
}

// GetShift retrieves a shift by ID. Returns nil when absent.
func (s *Store) GetShift(ctx context.Context, id int64) (*Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getShift(ctx, id)
}

func (s *Store) getShift(ctx context.Context, id int64) (*Shift, error) {
	var sh Shift
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, name, check_in, check_out, is_holiday, enable_overtime, created_at, updated_at
		FROM shifts WHERE id = ?`, id,
	).Scan(&sh.ID, &sh.Date, &sh.Name, &sh.CheckIn, &sh.CheckOut,
		&sh.Holiday, &sh.OvertimeEnabled, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sh.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sh.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &sh, nil
}

// ListShiftsInRange returns shifts with date in [from, to]. The order,
// date then id ascending, makes the oldest shift of a date win when the
// calculation resolves by date.
func (s *Store) ListShiftsInRange(ctx context.Context, from, to string) ([]Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, date, name, check_in, check_out, is_holiday, enable_overtime, created_at, updated_at
		FROM shifts
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		var sh Shift
		var createdAt, updatedAt string
		if err := rows.Scan(&sh.ID, &sh.Date, &sh.Name, &sh.CheckIn, &sh.CheckOut,
			&sh.Holiday, &sh.OvertimeEnabled, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		sh.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sh.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

// DeleteShift removes a shift and its assignments.
func (s *Store) DeleteShift(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM shifts WHERE id = ?", id)
	return err
}

// =============================================================================
// SHIFT ASSIGNMENTS
// =============================================================================

// AssignShift replaces the assignment list of a shift.
func (s *Store) AssignShift(ctx context.Context, shiftID int64, employeeIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx,
		"DELETE FROM shift_assignments WHERE shift_id = ?", shiftID); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, employeeID := range employeeIDs {
		if _, err := sqlTx.ExecContext(ctx,
			"INSERT INTO shift_assignments (shift_id, employee_id, created_at) VALUES (?, ?, ?)",
			shiftID, employeeID, now); err != nil {
			return fmt.Errorf("failed to assign shift: %w", err)
		}
	}

	return sqlTx.Commit()
}

// ListAssignments returns the employee ids assigned to a shift.
func (s *Store) ListAssignments(ctx context.Context, shiftID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT employee_id FROM shift_assignments WHERE shift_id = ? ORDER BY employee_id", shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AssignedShiftsInRange returns per-employee shift overrides for dates in
// [from, to], keyed the way the calculation expects.
func (s *Store) AssignedShiftsInRange(ctx context.Context, from, to string) (map[string]engine.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT a.employee_id, s.id, s.date, s.name, s.check_in, s.check_out, s.is_holiday, s.enable_overtime
		FROM shift_assignments a
		JOIN shifts s ON s.id = a.shift_id
		WHERE s.date >= ? AND s.date <= ?
		ORDER BY s.date ASC, s.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	assigned := make(map[string]engine.Shift)
	for rows.Next() {
		var employeeID int64
		var sh engine.Shift
		if err := rows.Scan(&employeeID, &sh.ID, &sh.Date, &sh.Name,
			&sh.CheckIn, &sh.CheckOut, &sh.Holiday, &sh.OvertimeEnabled); err != nil {
			return nil, err
		}
		key := engine.AssignmentKey(employeeID, sh.Date)
		// First assignment per employee-day wins, matching date resolution.
		if _, ok := assigned[key]; !ok {
			assigned[key] = sh
		}
	}
	return assigned, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"shift_assignments", "punches", "shifts", "employees"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
