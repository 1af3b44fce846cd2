package university

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aanand-mishra/university/internal/types"
	"github.com/aanand-mishra/university/internal/validation"
)

// Snapshot copies the registry into plain records, every collection ordered
// by id.
func (r *Registry) Snapshot() types.Snapshot {
	snap := types.Snapshot{
		Courses:     make([]types.Course, 0, len(r.courses)),
		Students:    make([]types.Student, 0, len(r.students)),
		Professors:  make([]types.Professor, 0, len(r.professors)),
		Grades:      make([]types.Grade, 0, r.gradebook.Len()),
		TaxPayments: []types.TaxPayment{},
	}
	for _, c := range r.Courses() {
		snap.Courses = append(snap.Courses, types.Course{ID: c.id, Title: c.title, Credits: c.credits})
	}
	for _, s := range r.Students() {
		snap.Students = append(snap.Students, types.Student{
			ID:          s.studentID,
			Name:        s.name,
			DateOfBirth: s.dob.Format(DateLayout),
			Major:       s.major,
			Enrolled:    courseIDs(s.Courses()),
		})
	}
	for _, p := range r.Professors() {
		snap.Professors = append(snap.Professors, types.Professor{
			ID:          p.employeeID,
			Name:        p.name,
			DateOfBirth: p.dob.Format(DateLayout),
			Department:  p.department,
			Rank:        string(p.rank),
			Teaches:     courseIDs(p.Courses()),
		})
		for _, tp := range p.payments {
			snap.TaxPayments = append(snap.TaxPayments, types.TaxPayment{
				ID:         tp.ID.String(),
				EmployeeID: p.employeeID,
				Amount:     tp.Amount,
				PaidAt:     tp.PaidAt,
			})
		}
	}
	for _, e := range r.gradebook.Entries() {
		snap.Grades = append(snap.Grades, types.Grade{
			StudentID: e.Student.studentID,
			CourseID:  e.Course.id,
			Grade:     string(e.Grade),
		})
	}
	return snap
}

// Restore builds a registry from records. Every record is validated and every
// reference resolved; all problems are reported together. On error no
// registry is returned. A nil policy means DefaultSalaryPolicy. Ranks and
// grades are accepted in any case, as ParseRank and ParseGrade accept them.
func Restore(snap types.Snapshot, policy *SalaryPolicy) (*Registry, error) {
	snap = normalize(snap)
	if err := validation.Validator().Struct(snap); err != nil {
		return nil, recordErrors(err)
	}
	if policy != nil {
		if err := policy.Validate(); err != nil {
			return nil, err
		}
	}

	r := NewRegistry()
	r.UseSalaryPolicy(policy)
	var errs []error

	for i, rec := range snap.Courses {
		c, err := NewCourse(rec.ID, rec.Title, rec.Credits)
		if err == nil {
			err = r.AddCourse(c)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("courses[%d]: %w", i, err))
		}
	}

	for i, rec := range snap.Students {
		if err := restoreStudent(r, rec); err != nil {
			errs = append(errs, fmt.Errorf("students[%d]: %w", i, err))
		}
	}

	for i, rec := range snap.Professors {
		if err := restoreProfessor(r, rec); err != nil {
			errs = append(errs, fmt.Errorf("professors[%d]: %w", i, err))
		}
	}

	for i, rec := range snap.Grades {
		if err := restoreGrade(r, rec); err != nil {
			errs = append(errs, fmt.Errorf("grades[%d]: %w", i, err))
		}
	}

	for i, rec := range snap.TaxPayments {
		if err := restoreTaxPayment(r, rec); err != nil {
			errs = append(errs, fmt.Errorf("tax_payments[%d]: %w", i, err))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

func restoreStudent(r *Registry, rec types.Student) error {
	dob, err := ParseDate("dateOfBirth", rec.DateOfBirth)
	if err != nil {
		return err
	}
	s, err := NewStudent(rec.Name, dob, rec.ID, rec.Major)
	if err != nil {
		return err
	}
	for _, id := range rec.Enrolled {
		c, err := r.Course(id)
		if err != nil {
			return err
		}
		if err := s.EnrollCourse(c); err != nil {
			return err
		}
	}
	return r.AddStudent(s)
}

func restoreProfessor(r *Registry, rec types.Professor) error {
	dob, err := ParseDate("dateOfBirth", rec.DateOfBirth)
	if err != nil {
		return err
	}
	p, err := NewProfessor(rec.Name, dob, rec.ID, rec.Department, Rank(rec.Rank))
	if err != nil {
		return err
	}
	for _, id := range rec.Teaches {
		c, err := r.Course(id)
		if err != nil {
			return err
		}
		if err := p.TeachCourse(c); err != nil {
			return err
		}
	}
	return r.AddProfessor(p)
}

func restoreGrade(r *Registry, rec types.Grade) error {
	s, err := r.Student(rec.StudentID)
	if err != nil {
		return err
	}
	c, err := r.Course(rec.CourseID)
	if err != nil {
		return err
	}
	if !s.IsEnrolled(c) {
		return &PreconditionError{
			Op:  "restore grade",
			Msg: fmt.Sprintf("student %s is not enrolled in %s", s.studentID, c.id),
		}
	}
	g, err := ParseGrade(rec.Grade)
	if err != nil {
		return err
	}
	r.gradebook.Set(s, c, g)
	return nil
}

func restoreTaxPayment(r *Registry, rec types.TaxPayment) error {
	p, err := r.Professor(rec.EmployeeID)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return invalidf("id", "must be a UUID")
	}
	if err := checkTaxAmount(rec.Amount); err != nil {
		return err
	}
	p.payments = append(p.payments, TaxPayment{ID: id, Amount: rec.Amount, PaidAt: rec.PaidAt.UTC()})
	return nil
}

// normalize returns snap with ranks lower-cased and grades upper-cased. The
// caller's slices are not modified.
func normalize(snap types.Snapshot) types.Snapshot {
	snap.Professors = append([]types.Professor(nil), snap.Professors...)
	for i := range snap.Professors {
		snap.Professors[i].Rank = strings.ToLower(strings.TrimSpace(snap.Professors[i].Rank))
	}
	snap.Grades = append([]types.Grade(nil), snap.Grades...)
	for i := range snap.Grades {
		snap.Grades[i].Grade = strings.ToUpper(strings.TrimSpace(snap.Grades[i].Grade))
	}
	return snap
}

// recordErrors turns validator failures into joined *ValidationError values.
func recordErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Msg: err.Error()}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &ValidationError{Field: validation.FieldPath(fe), Msg: validation.Message(fe)})
	}
	return errors.Join(out...)
}

func courseIDs(cs []*Course) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.id)
	}
	return out
}
