// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk: no network, no separate
// server process, and no installation beyond the driver.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/university/internal/config"
	"github.com/aanand-mishra/university/internal/types"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// schema is idempotent — safe to run on every startup.
//
//	courses / students / professors — one row per entity
//	enrollments                     — student ↔ course (many-to-many)
//	teaching                        — professor ↔ course (many-to-many)
//	grades                          — one grade per (student, course)
//	tax_payments                    — professor tax ledger, seq keeps order
const schema = `
	CREATE TABLE IF NOT EXISTS courses (
		id      TEXT    PRIMARY KEY,
		title   TEXT    NOT NULL,
		credits INTEGER NOT NULL CHECK (credits > 0)
	);
	CREATE TABLE IF NOT EXISTS students (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		major         TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS professors (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		department    TEXT NOT NULL DEFAULT '',
		academic_rank TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS enrollments (
		student_id TEXT NOT NULL REFERENCES students(id),
		course_id  TEXT NOT NULL REFERENCES courses(id),
		PRIMARY KEY (student_id, course_id)
	);
	CREATE TABLE IF NOT EXISTS teaching (
		employee_id TEXT NOT NULL REFERENCES professors(id),
		course_id   TEXT NOT NULL REFERENCES courses(id),
		PRIMARY KEY (employee_id, course_id)
	);
	CREATE TABLE IF NOT EXISTS grades (
		student_id TEXT NOT NULL,
		course_id  TEXT NOT NULL,
		grade      TEXT NOT NULL,
		PRIMARY KEY (student_id, course_id)
	);
	CREATE TABLE IF NOT EXISTS tax_payments (
		id          TEXT    PRIMARY KEY,
		seq         INTEGER NOT NULL,
		employee_id TEXT    NOT NULL REFERENCES professors(id),
		amount      REAL    NOT NULL CHECK (amount >= 0),
		paid_at     TEXT    NOT NULL
	);
`

// New opens the SQLite database at cfg.StoragePath, creates the tables if
// they do not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", cfg.StoragePath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// SaveSnapshot deletes every row and writes snap in one transaction. If any
// statement fails the transaction is rolled back and the previous contents
// stay in place.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) SaveSnapshot(snap types.Snapshot) (err error) {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("SaveSnapshot: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Children first so foreign keys never dangle mid-transaction.
	for _, table := range []string{"tax_payments", "grades", "teaching", "enrollments", "professors", "students", "courses"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("SaveSnapshot: clear %s: %w", table, err)
		}
	}

	if err = insertAll(tx, "INSERT INTO courses (id, title, credits) VALUES (?, ?, ?)",
		len(snap.Courses), func(i int) []any {
			c := snap.Courses[i]
			return []any{c.ID, c.Title, c.Credits}
		}); err != nil {
		return fmt.Errorf("SaveSnapshot: courses: %w", err)
	}

	if err = insertAll(tx, "INSERT INTO students (id, name, date_of_birth, major) VALUES (?, ?, ?, ?)",
		len(snap.Students), func(i int) []any {
			st := snap.Students[i]
			return []any{st.ID, st.Name, st.DateOfBirth, st.Major}
		}); err != nil {
		return fmt.Errorf("SaveSnapshot: students: %w", err)
	}

	if err = insertAll(tx, "INSERT INTO professors (id, name, date_of_birth, department, academic_rank) VALUES (?, ?, ?, ?, ?)",
		len(snap.Professors), func(i int) []any {
			p := snap.Professors[i]
			return []any{p.ID, p.Name, p.DateOfBirth, p.Department, p.Rank}
		}); err != nil {
		return fmt.Errorf("SaveSnapshot: professors: %w", err)
	}

	var enrollments, teaching [][2]string
	for _, st := range snap.Students {
		for _, c := range st.Enrolled {
			enrollments = append(enrollments, [2]string{st.ID, c})
		}
	}
	for _, p := range snap.Professors {
		for _, c := range p.Teaches {
			teaching = append(teaching, [2]string{p.ID, c})
		}
	}

	if err = insertAll(tx, "INSERT INTO enrollments (student_id, course_id) VALUES (?, ?)",
		len(enrollments), func(i int) []any {
			return []any{enrollments[i][0], enrollments[i][1]}
		}); err != nil {
		return fmt.Errorf("SaveSnapshot: enrollments: %w", err)
	}

	if err = insertAll(tx, "INSERT INTO teaching (employee_id, course_id) VALUES (?, ?)",
		len(teaching), func(i int) []any {
			return []any{teaching[i][0], teaching[i][1]}
		}); err != nil {
		return fmt.Errorf("SaveSnapshot: teaching: %w", err)
	}

	if err = insertAll(tx, "INSERT INTO grades (student_id, course_id, grade) VALUES (?, ?, ?)",
		len(snap.Grades), func(i int) []any {
			g := snap.Grades[i]
			return []any{g.StudentID, g.CourseID, g.Grade}
		}); err != nil {
		return fmt.Errorf("SaveSnapshot: grades: %w", err)
	}

	if err = insertAll(tx, "INSERT INTO tax_payments (id, seq, employee_id, amount, paid_at) VALUES (?, ?, ?, ?, ?)",
		len(snap.TaxPayments), func(i int) []any {
			tp := snap.TaxPayments[i]
			return []any{tp.ID, i, tp.EmployeeID, tp.Amount, tp.PaidAt.UTC().Format(time.RFC3339Nano)}
		}); err != nil {
		return fmt.Errorf("SaveSnapshot: tax payments: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("SaveSnapshot: commit: %w", err)
	}
	return nil
}

// insertAll prepares query once and executes it n times with the arguments
// produced by args(i).
func insertAll(tx *sql.Tx, query string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(args(i)...); err != nil {
			return fmt.Errorf("exec row %d: %w", i, err)
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// LoadSnapshot reads every table back into a snapshot. Collections come back
// ordered by id, and tax payments in the order they were saved.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) LoadSnapshot() (types.Snapshot, error) {
	snap := types.Snapshot{
		Courses:     make([]types.Course, 0),
		Students:    make([]types.Student, 0),
		Professors:  make([]types.Professor, 0),
		Grades:      make([]types.Grade, 0),
		TaxPayments: make([]types.TaxPayment, 0),
	}

	err := s.query("SELECT id, title, credits FROM courses ORDER BY id", func(rows *sql.Rows) error {
		var c types.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Credits); err != nil {
			return err
		}
		snap.Courses = append(snap.Courses, c)
		return nil
	})
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("LoadSnapshot: courses: %w", err)
	}

	enrolled, err := s.pairs("SELECT student_id, course_id FROM enrollments ORDER BY student_id, course_id")
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("LoadSnapshot: enrollments: %w", err)
	}
	teaches, err := s.pairs("SELECT employee_id, course_id FROM teaching ORDER BY employee_id, course_id")
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("LoadSnapshot: teaching: %w", err)
	}

	err = s.query("SELECT id, name, date_of_birth, major FROM students ORDER BY id", func(rows *sql.Rows) error {
		var st types.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.DateOfBirth, &st.Major); err != nil {
			return err
		}
		st.Enrolled = append(make([]string, 0), enrolled[st.ID]...)
		snap.Students = append(snap.Students, st)
		return nil
	})
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("LoadSnapshot: students: %w", err)
	}

	err = s.query("SELECT id, name, date_of_birth, department, academic_rank FROM professors ORDER BY id", func(rows *sql.Rows) error {
		var p types.Professor
		if err := rows.Scan(&p.ID, &p.Name, &p.DateOfBirth, &p.Department, &p.Rank); err != nil {
			return err
		}
		p.Teaches = append(make([]string, 0), teaches[p.ID]...)
		snap.Professors = append(snap.Professors, p)
		return nil
	})
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("LoadSnapshot: professors: %w", err)
	}

	err = s.query("SELECT student_id, course_id, grade FROM grades ORDER BY student_id, course_id", func(rows *sql.Rows) error {
		var g types.Grade
		if err := rows.Scan(&g.StudentID, &g.CourseID, &g.Grade); err != nil {
			return err
		}
		snap.Grades = append(snap.Grades, g)
		return nil
	})
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("LoadSnapshot: grades: %w", err)
	}

	err = s.query("SELECT id, employee_id, amount, paid_at FROM tax_payments ORDER BY seq", func(rows *sql.Rows) error {
		var (
			tp     types.TaxPayment
			paidAt string
		)
		if err := rows.Scan(&tp.ID, &tp.EmployeeID, &tp.Amount, &paidAt); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339Nano, paidAt)
		if err != nil {
			return fmt.Errorf("payment %s: paid_at: %w", tp.ID, err)
		}
		tp.PaidAt = t.UTC()
		snap.TaxPayments = append(snap.TaxPayments, tp)
		return nil
	})
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("LoadSnapshot: tax payments: %w", err)
	}

	return snap, nil
}

// query runs a SELECT and calls scan once per row.
func (s *SQLite) query(q string, scan func(*sql.Rows) error) error {
	stmt, err := s.Db.Prepare(q)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}
	return nil
}

// pairs groups a two-column SELECT into owner id → related ids.
func (s *SQLite) pairs(q string) (map[string][]string, error) {
	out := make(map[string][]string)
	err := s.query(q, func(rows *sql.Rows) error {
		var owner, related string
		if err := rows.Scan(&owner, &related); err != nil {
			return err
		}
		out[owner] = append(out[owner], related)
		return nil
	})
	return out, err
}
