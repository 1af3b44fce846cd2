package university

import (
	"sort"
	"strings"
)

// Registry owns the university's collections and keeps ids unique within
// each of them. All professors added to a registry share its gradebook and
// salary policy.
type Registry struct {
	courses    map[string]*Course
	students   map[string]*Student
	professors map[string]*Professor
	gradebook  *Gradebook
	policy     *SalaryPolicy
}

func NewRegistry() *Registry {
	return &Registry{
		courses:    make(map[string]*Course),
		students:   make(map[string]*Student),
		professors: make(map[string]*Professor),
		gradebook:  NewGradebook(),
	}
}

func (r *Registry) Gradebook() *Gradebook { return r.gradebook }

// holdsCourse reports whether c is the course registered under its id. A nil
// registry holds everything, so unregistered people can relate freely.
func (r *Registry) holdsCourse(c *Course) bool {
	return r == nil || r.courses[c.id] == c
}

func (r *Registry) holdsStudent(s *Student) bool {
	return r == nil || r.students[s.studentID] == s
}

// UseSalaryPolicy applies policy to every current and future professor.
// A nil policy restores DefaultSalaryPolicy.
func (r *Registry) UseSalaryPolicy(policy *SalaryPolicy) {
	r.policy = policy
	for _, p := range r.professors {
		p.UseSalaryPolicy(policy)
	}
}

func (r *Registry) AddCourse(c *Course) error {
	if !c.valid() {
		return invalidf("course", "is required")
	}
	if c.registry != nil {
		return invalidf("courseId", "%q belongs to another registry", c.id)
	}
	if _, ok := r.courses[c.id]; ok {
		return invalidf("courseId", "%q already exists", c.id)
	}
	c.registry = r
	r.courses[c.id] = c
	return nil
}

// AddStudent registers s. Every course s is enrolled in must already be
// registered.
func (r *Registry) AddStudent(s *Student) error {
	if s == nil {
		return invalidf("student", "is required")
	}
	if s.registry != nil {
		return invalidf("studentId", "%q belongs to another registry", s.studentID)
	}
	if _, ok := r.students[s.studentID]; ok {
		return invalidf("studentId", "%q already exists", s.studentID)
	}
	for _, c := range s.Courses() {
		if !r.holdsCourse(c) {
			return notFound("course", c.id)
		}
	}
	s.registry = r
	r.students[s.studentID] = s
	return nil
}

// AddProfessor registers p and moves any grades it recorded privately into
// the registry's gradebook. Taught courses, and the students and courses of
// those grades, must already be registered. Private grades for enrollments
// that have since been dropped are discarded.
func (r *Registry) AddProfessor(p *Professor) error {
	if p == nil {
		return invalidf("professor", "is required")
	}
	if p.registry != nil {
		return invalidf("employeeId", "%q belongs to another registry", p.employeeID)
	}
	if _, ok := r.professors[p.employeeID]; ok {
		return invalidf("employeeId", "%q already exists", p.employeeID)
	}
	for _, c := range p.Courses() {
		if !r.holdsCourse(c) {
			return notFound("course", c.id)
		}
	}
	var merged []GradeEntry
	if p.gradebook != nil && p.gradebook != r.gradebook {
		for _, e := range p.gradebook.Entries() {
			if !e.Student.IsEnrolled(e.Course) {
				continue
			}
			if !r.holdsStudent(e.Student) {
				return notFound("student", e.Student.studentID)
			}
			if !r.holdsCourse(e.Course) {
				return notFound("course", e.Course.id)
			}
			merged = append(merged, e)
		}
	}
	for _, e := range merged {
		r.gradebook.Set(e.Student, e.Course, e.Grade)
	}
	p.UseGradebook(r.gradebook)
	p.UseSalaryPolicy(r.policy)
	p.registry = r
	r.professors[p.employeeID] = p
	return nil
}

func (r *Registry) Course(id string) (*Course, error) {
	c, ok := r.courses[strings.TrimSpace(id)]
	if !ok {
		return nil, notFound("course", id)
	}
	return c, nil
}

func (r *Registry) Student(id string) (*Student, error) {
	s, ok := r.students[strings.TrimSpace(id)]
	if !ok {
		return nil, notFound("student", id)
	}
	return s, nil
}

func (r *Registry) Professor(id string) (*Professor, error) {
	p, ok := r.professors[strings.TrimSpace(id)]
	if !ok {
		return nil, notFound("professor", id)
	}
	return p, nil
}

// RenameCourse changes a registered course's id. The new id must be valid
// and unused; on failure nothing changes.
func (r *Registry) RenameCourse(oldID, newID string) error {
	c, err := r.Course(oldID)
	if err != nil {
		return err
	}
	id, err := requireText("courseId", newID)
	if err != nil {
		return err
	}
	if id == c.id {
		return nil
	}
	if _, ok := r.courses[id]; ok {
		return invalidf("courseId", "%q already exists", id)
	}
	delete(r.courses, c.id)
	c.id = id
	r.courses[id] = c
	return nil
}

// RemoveCourse deletes a course and every reference to it: enrollments,
// teaching assignments and grades.
func (r *Registry) RemoveCourse(id string) error {
	c, err := r.Course(id)
	if err != nil {
		return err
	}
	for _, s := range r.students {
		delete(s.courses, c)
	}
	for _, p := range r.professors {
		delete(p.courses, c)
	}
	r.gradebook.RemoveCourse(c)
	c.registry = nil
	delete(r.courses, c.id)
	return nil
}

// RemoveStudent deletes a student and the student's grades.
func (r *Registry) RemoveStudent(id string) error {
	s, err := r.Student(id)
	if err != nil {
		return err
	}
	r.gradebook.RemoveStudent(s)
	s.registry = nil
	delete(r.students, s.studentID)
	return nil
}

// RemoveProfessor deletes a professor. Courses, students and the grades the
// professor gave are kept.
func (r *Registry) RemoveProfessor(id string) error {
	p, err := r.Professor(id)
	if err != nil {
		return err
	}
	p.registry = nil
	p.UseGradebook(NewGradebook())
	delete(r.professors, p.employeeID)
	return nil
}

// Enroll looks up both ids and enrolls the student.
func (r *Registry) Enroll(studentID, courseID string) error {
	s, err := r.Student(studentID)
	if err != nil {
		return err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	return s.EnrollCourse(c)
}

// DropCourse looks up both ids and ends the enrollment, dropping the grade
// for it.
func (r *Registry) DropCourse(studentID, courseID string) error {
	s, err := r.Student(studentID)
	if err != nil {
		return err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	return s.DropCourse(c)
}

// StopTeaching looks up both ids and ends the teaching assignment. Grades
// the professor gave for the course are kept.
func (r *Registry) StopTeaching(employeeID, courseID string) error {
	p, err := r.Professor(employeeID)
	if err != nil {
		return err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	return p.StopTeaching(c)
}

// Teach looks up both ids and assigns the course to the professor.
func (r *Registry) Teach(employeeID, courseID string) error {
	p, err := r.Professor(employeeID)
	if err != nil {
		return err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	return p.TeachCourse(c)
}

// AssignGrade looks up all three ids and records the grade through the
// professor.
func (r *Registry) AssignGrade(employeeID, studentID, courseID string, grade Grade) error {
	p, err := r.Professor(employeeID)
	if err != nil {
		return err
	}
	s, err := r.Student(studentID)
	if err != nil {
		return err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return err
	}
	return p.AssignGrade(s, c, grade)
}

// Grade returns the grade a student holds in a course.
func (r *Registry) Grade(studentID, courseID string) (Grade, error) {
	s, err := r.Student(studentID)
	if err != nil {
		return "", err
	}
	c, err := r.Course(courseID)
	if err != nil {
		return "", err
	}
	g, ok := r.gradebook.Get(s, c)
	if !ok {
		return "", notFound("grade", s.studentID+"/"+c.id)
	}
	return g, nil
}

// Courses returns every course ordered by id.
func (r *Registry) Courses() []*Course {
	out := make([]*Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Students returns every student ordered by id.
func (r *Registry) Students() []*Student {
	out := make([]*Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].studentID < out[j].studentID })
	return out
}

// Professors returns every professor ordered by id.
func (r *Registry) Professors() []*Professor {
	out := make([]*Professor, 0, len(r.professors))
	for _, p := range r.professors {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].employeeID < out[j].employeeID })
	return out
}

// People lists students first, then professors.
func (r *Registry) People() []Person {
	out := make([]Person, 0, len(r.students)+len(r.professors))
	for _, s := range r.Students() {
		out = append(out, s)
	}
	for _, p := range r.Professors() {
		out = append(out, p)
	}
	return out
}

// Payables lists everyone the university pays.
func (r *Registry) Payables() []Payable {
	out := make([]Payable, 0, len(r.professors))
	for _, p := range r.Professors() {
		out = append(out, p)
	}
	return out
}

// EnrolledIn returns the students enrolled in c, ordered by id.
func (r *Registry) EnrolledIn(c *Course) []*Student {
	var out []*Student
	for _, s := range r.Students() {
		if s.IsEnrolled(c) {
			out = append(out, s)
		}
	}
	return out
}

// TaughtBy returns the professors teaching c, ordered by id.
func (r *Registry) TaughtBy(c *Course) []*Professor {
	var out []*Professor
	for _, p := range r.Professors() {
		if p.Teaches(c) {
			out = append(out, p)
		}
	}
	return out
}
