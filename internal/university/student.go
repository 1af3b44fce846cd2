package university

import (
	"fmt"
	"sort"
	"time"
)

// Student is a Person who enrolls in courses.
type Student struct {
	person
	studentID string
	major     string
	courses   map[*Course]struct{}

	registry *Registry
}

var _ Person = (*Student)(nil)

// NewStudent validates and returns a student with no enrollments. major may
// be empty.
func NewStudent(name string, dob time.Time, studentID, major string) (*Student, error) {
	p, err := newPerson(name, dob)
	if err != nil {
		return nil, err
	}
	id, err := requireText("studentId", studentID)
	if err != nil {
		return nil, err
	}
	return &Student{
		person:    p,
		studentID: id,
		major:     major,
		courses:   make(map[*Course]struct{}),
	}, nil
}

func (s *Student) StudentID() string { return s.studentID }
func (s *Student) Major() string     { return s.major }

func (s *Student) SetMajor(major string) { s.major = major }

// EnrollCourse adds course to the student's enrollments. Enrolling twice is a
// no-op. A registered student may only enroll in courses of the same
// registry.
func (s *Student) EnrollCourse(course *Course) error {
	if !course.valid() || !s.registry.holdsCourse(course) {
		return notFound("course", courseRef(course))
	}
	s.courses[course] = struct{}{}
	return nil
}

// DropCourse removes course from the student's enrollments. The grade for
// the course, if any, goes with it.
func (s *Student) DropCourse(course *Course) error {
	if _, ok := s.courses[course]; !ok {
		return &NotFoundError{Entity: "enrollment", ID: s.studentID + "/" + courseRef(course)}
	}
	delete(s.courses, course)
	if s.registry != nil {
		s.registry.gradebook.Remove(s, course)
	}
	return nil
}

func (s *Student) IsEnrolled(course *Course) bool {
	_, ok := s.courses[course]
	return ok
}

// Courses returns the enrolled courses ordered by course id.
func (s *Student) Courses() []*Course { return sortedCourses(s.courses) }

// CreditLoad sums the credit hours of every enrolled course.
func (s *Student) CreditLoad() int {
	total := 0
	for c := range s.courses {
		total += c.CreditHours()
	}
	return total
}

func (s *Student) Details() string {
	major := s.major
	if major == "" {
		major = "undeclared"
	}
	return s.details("student", fmt.Sprintf("id=%s major=%s courses=%d credits=%d",
		s.studentID, major, len(s.courses), s.CreditLoad()))
}

func sortedCourses(set map[*Course]struct{}) []*Course {
	out := make([]*Course, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
