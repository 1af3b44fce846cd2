package university

import (
	"sort"
	"strings"

	"github.com/aanand-mishra/university/internal/validation"
)

// Grade is a letter grade from A+ down to F.
type Grade string

// ParseGrade validates s as a letter grade. Surrounding blanks are ignored
// and letters are upper-cased, so " b+" parses as "B+".
func ParseGrade(s string) (Grade, error) {
	g := strings.ToUpper(strings.TrimSpace(s))
	if err := checkVar("grade", g, "required,"+validation.GradeTag); err != nil {
		return "", err
	}
	return Grade(g), nil
}

type gradeKey struct {
	student *Student
	course  *Course
}

// GradeEntry is one row of a gradebook.
type GradeEntry struct {
	Student *Student
	Course  *Course
	Grade   Grade
}

// Gradebook maps a (student, course) pair to a grade. Each pair holds at most
// one grade; setting it again overwrites the previous value.
type Gradebook struct {
	grades map[gradeKey]Grade
}

func NewGradebook() *Gradebook {
	return &Gradebook{grades: make(map[gradeKey]Grade)}
}

func (g *Gradebook) Set(s *Student, c *Course, grade Grade) {
	g.grades[gradeKey{s, c}] = grade
}

func (g *Gradebook) Get(s *Student, c *Course) (Grade, bool) {
	grade, ok := g.grades[gradeKey{s, c}]
	return grade, ok
}

func (g *Gradebook) Len() int { return len(g.grades) }

// Entries returns every grade ordered by student id, then course id.
func (g *Gradebook) Entries() []GradeEntry {
	out := make([]GradeEntry, 0, len(g.grades))
	for k, grade := range g.grades {
		out = append(out, GradeEntry{Student: k.student, Course: k.course, Grade: grade})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Student.studentID != out[j].Student.studentID {
			return out[i].Student.studentID < out[j].Student.studentID
		}
		return out[i].Course.id < out[j].Course.id
	})
	return out
}

// Remove drops the grade s holds in c, if any.
func (g *Gradebook) Remove(s *Student, c *Course) {
	delete(g.grades, gradeKey{student: s, course: c})
}

// RemoveStudent drops every grade held by s.
func (g *Gradebook) RemoveStudent(s *Student) {
	for k := range g.grades {
		if k.student == s {
			delete(g.grades, k)
		}
	}
}

// RemoveCourse drops every grade given for c.
func (g *Gradebook) RemoveCourse(c *Course) {
	for k := range g.grades {
		if k.course == c {
			delete(g.grades, k)
		}
	}
}
