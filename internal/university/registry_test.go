package university

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/aanand-mishra/university/internal/types"
)

func seededRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, c := range []*Course{
		mustCourse(t, "CS101", "Intro to CS", 3),
		mustCourse(t, "MA201", "Linear Algebra", 4),
	} {
		if err := r.AddCourse(c); err != nil {
			t.Fatalf("AddCourse: %v", err)
		}
	}
	if err := r.AddStudent(mustStudent(t, "S1")); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if err := r.AddStudent(mustStudent(t, "S2")); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if err := r.AddProfessor(mustProfessor(t, "E1", "Computer Science", RankFull)); err != nil {
		t.Fatalf("AddProfessor: %v", err)
	}

	steps := []error{
		r.Teach("E1", "CS101"),
		r.Teach("E1", "MA201"),
		r.Enroll("S1", "CS101"),
		r.Enroll("S1", "MA201"),
		r.Enroll("S2", "CS101"),
		r.AssignGrade("E1", "S1", "CS101", "A"),
		r.AssignGrade("E1", "S1", "MA201", "B"),
		r.AssignGrade("E1", "S2", "CS101", "C+"),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("seed step %d: %v", i, err)
		}
	}
	return r
}

func TestRegistry_DuplicateIDs(t *testing.T) {
	r := seededRegistry(t)
	if err := r.AddCourse(mustCourse(t, "CS101", "Other", 1)); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate course: expected ErrValidation, got %v", err)
	}
	if err := r.AddStudent(mustStudent(t, "S1")); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate student: expected ErrValidation, got %v", err)
	}
	if err := r.AddProfessor(mustProfessor(t, "E1", "", "")); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate professor: expected ErrValidation, got %v", err)
	}
	// Ids only need to be unique within their own collection.
	if err := r.AddStudent(mustStudent(t, "E1")); err != nil {
		t.Fatalf("student id equal to an employee id: %v", err)
	}
	if err := r.AddCourse(nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("nil course: expected ErrValidation, got %v", err)
	}
}

func TestRegistry_Lookups(t *testing.T) {
	r := seededRegistry(t)
	if _, err := r.Course("XX999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing course: expected ErrNotFound, got %v", err)
	}
	if _, err := r.Student("S9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing student: expected ErrNotFound, got %v", err)
	}
	if _, err := r.Professor("E9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing professor: expected ErrNotFound, got %v", err)
	}
	if g, err := r.Grade("S1", "CS101"); err != nil || g != "A" {
		t.Fatalf("Grade(S1, CS101) = %q, %v", g, err)
	}
	if _, err := r.Grade("S2", "MA201"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ungraded pair: expected ErrNotFound, got %v", err)
	}
	if err := r.AssignGrade("E1", "S2", "MA201", "A"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("grading an unenrolled pair: expected ErrPrecondition, got %v", err)
	}

	if n := len(r.People()); n != 3 {
		t.Fatalf("expected 3 people, got %d", n)
	}
	if n := len(r.Payables()); n != 1 {
		t.Fatalf("expected 1 payable, got %d", n)
	}
	cs101, _ := r.Course("CS101")
	if got := r.EnrolledIn(cs101); len(got) != 2 || got[0].StudentID() != "S1" {
		t.Fatalf("EnrolledIn(CS101) = %v", got)
	}
	if got := r.TaughtBy(cs101); len(got) != 1 || got[0].EmployeeID() != "E1" {
		t.Fatalf("TaughtBy(CS101) = %v", got)
	}
}

func TestRegistry_RemoveCourseCascades(t *testing.T) {
	r := seededRegistry(t)
	cs101, _ := r.Course("CS101")

	if err := r.RemoveCourse("CS101"); err != nil {
		t.Fatalf("RemoveCourse: %v", err)
	}
	if _, err := r.Course("CS101"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("course still registered: %v", err)
	}
	for _, s := range r.Students() {
		if s.IsEnrolled(cs101) {
			t.Fatalf("student %s still enrolled in removed course", s.StudentID())
		}
	}
	for _, p := range r.Professors() {
		if p.Teaches(cs101) {
			t.Fatalf("professor %s still teaches removed course", p.EmployeeID())
		}
	}
	for _, e := range r.Gradebook().Entries() {
		if e.Course == cs101 {
			t.Fatalf("gradebook still references removed course: %+v", e)
		}
	}
	if r.Gradebook().Len() != 1 {
		t.Fatalf("expected the MA201 grade to survive, got %d entries", r.Gradebook().Len())
	}
	if err := r.RemoveCourse("CS101"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second removal: expected ErrNotFound, got %v", err)
	}
}

func TestRegistry_RemoveStudentAndProfessor(t *testing.T) {
	r := seededRegistry(t)
	if err := r.RemoveStudent("S1"); err != nil {
		t.Fatalf("RemoveStudent: %v", err)
	}
	if r.Gradebook().Len() != 1 {
		t.Fatalf("expected only S2's grade left, got %d", r.Gradebook().Len())
	}
	if err := r.RemoveProfessor("E1"); err != nil {
		t.Fatalf("RemoveProfessor: %v", err)
	}
	if len(r.Courses()) != 2 || r.Gradebook().Len() != 1 {
		t.Fatalf("removing a professor must not touch courses or grades")
	}
}

func TestRegistry_RenameCourse(t *testing.T) {
	r := seededRegistry(t)
	if err := r.RenameCourse("CS101", "MA201"); !errors.Is(err, ErrValidation) {
		t.Fatalf("rename onto existing id: expected ErrValidation, got %v", err)
	}
	if err := r.RenameCourse("CS101", "CS100"); err != nil {
		t.Fatalf("RenameCourse: %v", err)
	}
	if _, err := r.Course("CS101"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old id still resolves")
	}
	if g, err := r.Grade("S1", "CS100"); err != nil || g != "A" {
		t.Fatalf("grade lost after rename: %q, %v", g, err)
	}
}

func TestRegistry_AddProfessorMergesPrivateGrades(t *testing.T) {
	r := NewRegistry()
	c := mustCourse(t, "CS101", "Intro", 3)
	s := mustStudent(t, "S1")
	p := mustProfessor(t, "E1", "", "")
	if err := s.EnrollCourse(c); err != nil {
		t.Fatalf("EnrollCourse: %v", err)
	}
	if err := p.AssignGrade(s, c, "A-"); err != nil {
		t.Fatalf("AssignGrade: %v", err)
	}
	for _, err := range []error{r.AddCourse(c), r.AddStudent(s), r.AddProfessor(p)} {
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if p.Gradebook() != r.Gradebook() {
		t.Fatalf("professor does not use the registry gradebook")
	}
	if g, err := r.Grade("S1", "CS101"); err != nil || g != "A-" {
		t.Fatalf("private grade lost: %q, %v", g, err)
	}
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	r := seededRegistry(t)
	e1, _ := r.Professor("E1")
	if err := e1.PayTax(250.5); err != nil {
		t.Fatalf("PayTax: %v", err)
	}

	snap := r.Snapshot()
	restored, err := Restore(snap, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := restored.Snapshot(); !reflect.DeepEqual(got, snap) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
	p, _ := restored.Professor("E1")
	if p.TaxPaid() != 250.5 {
		t.Fatalf("expected restored tax 250.5, got %v", p.TaxPaid())
	}
}

func TestRestore_ReportsEveryProblem(t *testing.T) {
	snap := types.Snapshot{
		Courses: []types.Course{{ID: "CS101", Title: "Intro", Credits: 3}},
		Students: []types.Student{
			{ID: "S1", Name: "Ada", DateOfBirth: "2001-01-01", Enrolled: []string{"CS999"}},
		},
		Professors: []types.Professor{
			{ID: "E1", Name: "Grace", DateOfBirth: "1970-01-01", Teaches: []string{"CS101"}},
		},
		Grades: []types.Grade{{StudentID: "S2", CourseID: "CS101", Grade: "A"}},
	}
	r, err := Restore(snap, nil)
	if r != nil {
		t.Fatalf("expected no registry on error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound in %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"students[0]", "CS999", "grades[0]", "S2"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestRestore_RecordValidation(t *testing.T) {
	snap := types.Snapshot{
		Courses:  []types.Course{{ID: "CS101", Title: "Intro", Credits: 0}},
		Students: []types.Student{{ID: "S1", Name: "Ada", DateOfBirth: "01/02/2001"}},
	}
	_, err := Restore(snap, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"courses[0].credits", "students[0].date_of_birth"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}

	dup := types.Snapshot{Courses: []types.Course{
		{ID: "CS101", Title: "Intro", Credits: 3},
		{ID: "CS101", Title: "Again", Credits: 3},
	}}
	_, err = Restore(dup, nil)
	if err == nil || !strings.Contains(err.Error(), "courses must not contain duplicates") {
		t.Fatalf("expected duplicate course error, got %v", err)
	}
}

func TestRestore_UngradedEnrollmentPrecondition(t *testing.T) {
	snap := types.Snapshot{
		Courses:  []types.Course{{ID: "CS101", Title: "Intro", Credits: 3}},
		Students: []types.Student{{ID: "S1", Name: "Ada", DateOfBirth: "2001-01-01"}},
		Grades:   []types.Grade{{StudentID: "S1", CourseID: "CS101", Grade: "A"}},
	}
	if _, err := Restore(snap, nil); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
}

func TestRegistry_DropCourseRemovesGrade(t *testing.T) {
	r := seededRegistry(t)
	s1, _ := r.Student("S1")
	cs101, _ := r.Course("CS101")

	if err := s1.DropCourse(cs101); err != nil {
		t.Fatalf("DropCourse: %v", err)
	}
	if _, err := r.Grade("S1", "CS101"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("grade outlived the enrollment: %v", err)
	}
	if err := r.DropCourse("S1", "MA201"); err != nil {
		t.Fatalf("Registry.DropCourse: %v", err)
	}
	if err := r.DropCourse("S1", "MA201"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second drop: expected ErrNotFound, got %v", err)
	}
	if r.Gradebook().Len() != 1 {
		t.Fatalf("expected only S2's grade left, got %d", r.Gradebook().Len())
	}

	restored, err := Restore(r.Snapshot(), nil)
	if err != nil {
		t.Fatalf("Restore after drop: %v", err)
	}
	if !reflect.DeepEqual(restored.Snapshot(), r.Snapshot()) {
		t.Fatalf("round trip mismatch after drop")
	}
}

func TestRegistry_StopTeachingKeepsGrades(t *testing.T) {
	r := seededRegistry(t)
	if err := r.StopTeaching("E1", "CS101"); err != nil {
		t.Fatalf("StopTeaching: %v", err)
	}
	if g, err := r.Grade("S1", "CS101"); err != nil || g != "A" {
		t.Fatalf("grade lost: %q, %v", g, err)
	}
	if _, err := Restore(r.Snapshot(), nil); err != nil {
		t.Fatalf("Restore after stop teaching: %v", err)
	}
}

func TestRegistry_RejectsUnregisteredCourses(t *testing.T) {
	r := NewRegistry()
	loose := mustCourse(t, "CS101", "Intro", 3)

	s := mustStudent(t, "S1")
	if err := s.EnrollCourse(loose); err != nil {
		t.Fatalf("EnrollCourse: %v", err)
	}
	if err := r.AddStudent(s); !errors.Is(err, ErrNotFound) {
		t.Fatalf("student with unregistered course: expected ErrNotFound, got %v", err)
	}

	p := mustProfessor(t, "E1", "", "")
	if err := p.TeachCourse(loose); err != nil {
		t.Fatalf("TeachCourse: %v", err)
	}
	if err := r.AddProfessor(p); !errors.Is(err, ErrNotFound) {
		t.Fatalf("professor with unregistered course: expected ErrNotFound, got %v", err)
	}

	// A course with the same id is still a different course.
	if err := r.AddCourse(mustCourse(t, "CS101", "Intro", 3)); err != nil {
		t.Fatalf("AddCourse: %v", err)
	}
	if err := r.AddStudent(s); !errors.Is(err, ErrNotFound) {
		t.Fatalf("student enrolled in a look-alike course: expected ErrNotFound, got %v", err)
	}

	registered := mustStudent(t, "S2")
	if err := r.AddStudent(registered); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if err := registered.EnrollCourse(loose); !errors.Is(err, ErrNotFound) {
		t.Fatalf("registered student, unregistered course: expected ErrNotFound, got %v", err)
	}
	if _, err := Restore(r.Snapshot(), nil); err != nil {
		t.Fatalf("Restore: %v", err)
	}
}

func TestRegistry_AddProfessorChecksPrivateGrades(t *testing.T) {
	r := NewRegistry()
	c := mustCourse(t, "CS101", "Intro", 3)
	if err := r.AddCourse(c); err != nil {
		t.Fatalf("AddCourse: %v", err)
	}

	outsider := mustStudent(t, "S9")
	if err := outsider.EnrollCourse(c); err != nil {
		t.Fatalf("EnrollCourse: %v", err)
	}
	p := mustProfessor(t, "E1", "", "")
	if err := p.AssignGrade(outsider, c, "B"); err != nil {
		t.Fatalf("AssignGrade: %v", err)
	}
	if err := r.AddProfessor(p); !errors.Is(err, ErrNotFound) {
		t.Fatalf("grade for unregistered student: expected ErrNotFound, got %v", err)
	}
	if r.Gradebook().Len() != 0 {
		t.Fatalf("rejected professor leaked grades")
	}

	// Grades for dropped enrollments are discarded on merge.
	if err := outsider.DropCourse(c); err != nil {
		t.Fatalf("DropCourse: %v", err)
	}
	if err := r.AddProfessor(p); err != nil {
		t.Fatalf("AddProfessor: %v", err)
	}
	if r.Gradebook().Len() != 0 {
		t.Fatalf("stale private grade merged")
	}
	if err := r.AddStudent(outsider); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if _, err := Restore(r.Snapshot(), nil); err != nil {
		t.Fatalf("Restore: %v", err)
	}
}

func TestCourseSetID_RoutesThroughRegistry(t *testing.T) {
	r := seededRegistry(t)
	cs101, _ := r.Course("CS101")

	if err := cs101.SetID("MA201"); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetID onto a used id: expected ErrValidation, got %v", err)
	}
	if err := cs101.SetID("CS100"); err != nil {
		t.Fatalf("SetID: %v", err)
	}
	if got, err := r.Course("CS100"); err != nil || got != cs101 {
		t.Fatalf("renamed course not found under new id: %v", err)
	}
	if _, err := r.Course("CS101"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old id still resolves")
	}
	if g, err := r.Grade("S1", "CS100"); err != nil || g != "A" {
		t.Fatalf("grade lost after SetID: %q, %v", g, err)
	}
}

func TestRestore_AcceptsAnyCaseForRankAndGrade(t *testing.T) {
	snap := types.Snapshot{
		Courses:    []types.Course{{ID: "CS101", Title: "Intro", Credits: 3}},
		Students:   []types.Student{{ID: "S1", Name: "Ada", DateOfBirth: "2001-01-01", Enrolled: []string{"CS101"}}},
		Professors: []types.Professor{{ID: "E1", Name: "Grace", DateOfBirth: "1968-12-09", Rank: " Full"}},
		Grades:     []types.Grade{{StudentID: "S1", CourseID: "CS101", Grade: "b+"}},
	}
	r, err := Restore(snap, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if p, _ := r.Professor("E1"); p.Rank() != RankFull {
		t.Fatalf("expected rank full, got %q", p.Rank())
	}
	if g, err := r.Grade("S1", "CS101"); err != nil || g != "B+" {
		t.Fatalf("expected grade B+, got %q, %v", g, err)
	}
	if snap.Professors[0].Rank != " Full" || snap.Grades[0].Grade != "b+" {
		t.Fatalf("Restore modified its input: %+v", snap)
	}
}
