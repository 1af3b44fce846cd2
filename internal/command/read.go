package command

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/university/internal/diagram"
	"github.com/aanand-mishra/university/internal/roster"
	"github.com/aanand-mishra/university/internal/storage"
	"github.com/aanand-mishra/university/internal/types"
	"github.com/aanand-mishra/university/internal/university"
)

// ─────────────────────────────────────────────────────────────────────────────
// Courses handles `courses`: every course with its title, credit hours and
// the ids of the people attached to it.
// ─────────────────────────────────────────────────────────────────────────────
func Courses(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		slog.Info("listing courses")

		r, err := load(store, policy)
		if err != nil {
			return err
		}

		out := make([]types.CourseSummary, 0, len(r.Courses()))
		for _, c := range r.Courses() {
			sum := types.CourseSummary{
				ID:          c.ID(),
				Title:       c.CourseTitle(),
				CreditHours: c.CreditHours(),
				Students:    []string{},
				Professors:  []string{},
			}
			for _, s := range r.EnrolledIn(c) {
				sum.Students = append(sum.Students, s.StudentID())
			}
			for _, p := range r.TaughtBy(c) {
				sum.Professors = append(sum.Professors, p.EmployeeID())
			}
			out = append(out, sum)
		}
		return ok(w, out)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Details handles `details`: the one-line summary of every person, students
// first.
// ─────────────────────────────────────────────────────────────────────────────
func Details(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		slog.Info("listing people")

		r, err := load(store, policy)
		if err != nil {
			return err
		}

		out := make([]string, 0)
		for _, p := range r.People() {
			out = append(out, p.Details())
		}
		return ok(w, out)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Grades handles `grades [studentID]`: the whole gradebook, or one student's
// grades.
// ─────────────────────────────────────────────────────────────────────────────
func Grades(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		if len(args) > 1 {
			return usagef("grades [studentID]")
		}
		slog.Info("listing grades")

		r, err := load(store, policy)
		if err != nil {
			return err
		}

		var only *university.Student
		if len(args) == 1 {
			if only, err = r.Student(args[0]); err != nil {
				return err
			}
		}

		out := make([]types.Grade, 0)
		for _, e := range r.Gradebook().Entries() {
			if only != nil && e.Student != only {
				continue
			}
			out = append(out, types.Grade{
				StudentID: e.Student.StudentID(),
				CourseID:  e.Course.ID(),
				Grade:     string(e.Grade),
			})
		}
		return ok(w, out)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Payroll handles `payroll`: salary and tax paid for everyone the university
// pays.
// ─────────────────────────────────────────────────────────────────────────────
func Payroll(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		slog.Info("computing payroll")

		r, err := load(store, policy)
		if err != nil {
			return err
		}

		out := make([]types.Salary, 0)
		for _, p := range r.Professors() {
			out = append(out, types.Salary{
				EmployeeID: p.EmployeeID(),
				Name:       p.Name(),
				Department: p.Department(),
				Rank:       string(p.Rank()),
				Salary:     p.CalculateSalary(),
				TaxPaid:    p.TaxPaid(),
			})
		}
		return ok(w, out)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Diagram handles `diagram [objects]`: PlantUML source, either the class
// diagram or an object diagram of the stored registry. Output is plain text,
// not JSON, so it can be piped straight into plantuml.
// ─────────────────────────────────────────────────────────────────────────────
func Diagram(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		switch {
		case len(args) == 0:
			_, err := io.WriteString(w, diagram.ClassDiagram())
			return err
		case len(args) == 1 && args[0] == "objects":
			r, err := load(store, policy)
			if err != nil {
				return err
			}
			return diagram.ObjectDiagram(w, r.Snapshot())
		default:
			return usagef("diagram [objects]")
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Export handles `export`: the stored registry as a roster YAML document
// that `import` accepts.
// ─────────────────────────────────────────────────────────────────────────────
func Export(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		slog.Info("exporting roster")

		r, err := load(store, policy)
		if err != nil {
			return err
		}
		if err := roster.Write(w, r.Snapshot()); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	}
}
