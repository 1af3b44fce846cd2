package command

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/aanand-mishra/university/internal/roster"
	"github.com/aanand-mishra/university/internal/storage"
	"github.com/aanand-mishra/university/internal/university"
)

// ─────────────────────────────────────────────────────────────────────────────
// Import handles `import <roster.yaml>`: reads a roster file, validates it
// completely and replaces the stored registry with it.
//
// Output:
//
//	{ "status": "ok", "data": { "courses": 2, "students": 3, ... } }
//
// ─────────────────────────────────────────────────────────────────────────────
func Import(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		if len(args) != 1 {
			return usagef("import <roster.yaml>")
		}
		slog.Info("importing roster", slog.String("path", args[0]))

		snap, err := roster.Load(args[0])
		if err != nil {
			return err
		}
		r, err := university.Restore(snap, policy)
		if err != nil {
			return err
		}
		snap = r.Snapshot()
		if err := store.SaveSnapshot(snap); err != nil {
			return err
		}

		slog.Info("roster imported",
			slog.Int("courses", len(snap.Courses)),
			slog.Int("students", len(snap.Students)),
			slog.Int("professors", len(snap.Professors)))

		return ok(w, map[string]int{
			"courses":    len(snap.Courses),
			"students":   len(snap.Students),
			"professors": len(snap.Professors),
			"grades":     len(snap.Grades),
		})
	}
}

// Enroll handles `enroll <studentID> <courseID>`. Enrolling twice succeeds.
func Enroll(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		if len(args) != 2 {
			return usagef("enroll <studentID> <courseID>")
		}
		slog.Info("enrolling student", slog.String("student", args[0]), slog.String("course", args[1]))

		err := mutate(store, policy, func(r *university.Registry) error {
			return r.Enroll(args[0], args[1])
		})
		if err != nil {
			return err
		}
		return ok(w, map[string]string{"student": args[0], "course": args[1]})
	}
}

// Drop handles `drop <studentID> <courseID>`. The grade for the course goes
// with the enrollment.
func Drop(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		if len(args) != 2 {
			return usagef("drop <studentID> <courseID>")
		}
		slog.Info("dropping course", slog.String("student", args[0]), slog.String("course", args[1]))

		err := mutate(store, policy, func(r *university.Registry) error {
			return r.DropCourse(args[0], args[1])
		})
		if err != nil {
			return err
		}
		return ok(w, map[string]string{"student": args[0], "course": args[1], "status": "dropped"})
	}
}

// Teach handles `teach <employeeID> <courseID>`.
func Teach(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		if len(args) != 2 {
			return usagef("teach <employeeID> <courseID>")
		}
		slog.Info("assigning course", slog.String("professor", args[0]), slog.String("course", args[1]))

		err := mutate(store, policy, func(r *university.Registry) error {
			return r.Teach(args[0], args[1])
		})
		if err != nil {
			return err
		}
		return ok(w, map[string]string{"professor": args[0], "course": args[1]})
	}
}

// Grade handles `grade <employeeID> <studentID> <courseID> <grade>`. The
// student must be enrolled in the course.
func Grade(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		if len(args) != 4 {
			return usagef("grade <employeeID> <studentID> <courseID> <grade>")
		}
		slog.Info("assigning grade",
			slog.String("professor", args[0]),
			slog.String("student", args[1]),
			slog.String("course", args[2]))

		var recorded university.Grade
		err := mutate(store, policy, func(r *university.Registry) error {
			if err := r.AssignGrade(args[0], args[1], args[2], university.Grade(args[3])); err != nil {
				return err
			}
			var err error
			recorded, err = r.Grade(args[1], args[2])
			return err
		})
		if err != nil {
			return err
		}
		return ok(w, map[string]string{"student": args[1], "course": args[2], "grade": string(recorded)})
	}
}

// PayTax handles `pay-tax <employeeID> <amount>`.
func PayTax(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		if len(args) != 2 {
			return usagef("pay-tax <employeeID> <amount>")
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return &university.ValidationError{Field: "amount", Msg: "must be a number"}
		}
		slog.Info("paying tax", slog.String("professor", args[0]), slog.Float64("amount", amount))

		var total float64
		err = mutate(store, policy, func(r *university.Registry) error {
			p, err := r.Professor(args[0])
			if err != nil {
				return err
			}
			var payable university.Payable = p
			if err := payable.PayTax(amount); err != nil {
				return err
			}
			total = p.TaxPaid()
			return nil
		})
		if err != nil {
			return err
		}
		return ok(w, map[string]any{"professor": args[0], "paid": amount, "total_paid": total})
	}
}

// RemoveCourse handles `remove-course <courseID>`. Enrollments, teaching
// assignments and grades for the course go with it.
func RemoveCourse(store storage.Storage, policy *university.SalaryPolicy) Handler {
	return func(w io.Writer, args []string) error {
		if len(args) != 1 {
			return usagef("remove-course <courseID>")
		}
		slog.Info("removing course", slog.String("course", args[0]))

		err := mutate(store, policy, func(r *university.Registry) error {
			return r.RemoveCourse(args[0])
		})
		if err != nil {
			return err
		}
		return ok(w, map[string]string{"course": args[0], "status": "removed"})
	}
}
