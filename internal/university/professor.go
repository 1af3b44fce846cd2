package university

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Professor is a Person who teaches courses, grades students and gets paid.
type Professor struct {
	person
	employeeID string
	department string
	rank       Rank

	courses   map[*Course]struct{}
	gradebook *Gradebook
	policy    *SalaryPolicy
	payments  []TaxPayment

	registry *Registry
}

var (
	_ Person  = (*Professor)(nil)
	_ Payable = (*Professor)(nil)
)

// NewProfessor validates and returns a professor with an empty teaching set
// and a private gradebook. An empty rank means RankAssistant.
func NewProfessor(name string, dob time.Time, employeeID, department string, rank Rank) (*Professor, error) {
	p, err := newPerson(name, dob)
	if err != nil {
		return nil, err
	}
	id, err := requireText("employeeId", employeeID)
	if err != nil {
		return nil, err
	}
	r, err := ParseRank(string(rank))
	if err != nil {
		return nil, err
	}
	return &Professor{
		person:     p,
		employeeID: id,
		department: department,
		rank:       r,
		courses:    make(map[*Course]struct{}),
		gradebook:  NewGradebook(),
	}, nil
}

func (p *Professor) EmployeeID() string { return p.employeeID }
func (p *Professor) Department() string { return p.department }
func (p *Professor) Rank() Rank         { return p.rank }

func (p *Professor) SetDepartment(department string) { p.department = department }

func (p *Professor) SetRank(rank Rank) error {
	r, err := ParseRank(string(rank))
	if err != nil {
		return err
	}
	p.rank = r
	return nil
}

// UseGradebook makes p record grades into g. A Registry points all of its
// professors at one shared gradebook.
func (p *Professor) UseGradebook(g *Gradebook) { p.gradebook = g }

func (p *Professor) Gradebook() *Gradebook { return p.gradebook }

// UseSalaryPolicy overrides DefaultSalaryPolicy for p. A nil policy restores
// the default.
func (p *Professor) UseSalaryPolicy(policy *SalaryPolicy) { p.policy = policy }

// TeachCourse adds course to the teaching set. Teaching a course twice is a
// no-op.
func (p *Professor) TeachCourse(course *Course) error {
	if !course.valid() || !p.registry.holdsCourse(course) {
		return notFound("course", courseRef(course))
	}
	p.courses[course] = struct{}{}
	return nil
}

// StopTeaching removes course from the teaching set.
func (p *Professor) StopTeaching(course *Course) error {
	if _, ok := p.courses[course]; !ok {
		return &NotFoundError{Entity: "teaching assignment", ID: p.employeeID + "/" + courseRef(course)}
	}
	delete(p.courses, course)
	return nil
}

func (p *Professor) Teaches(course *Course) bool {
	_, ok := p.courses[course]
	return ok
}

// Courses returns the taught courses ordered by course id.
func (p *Professor) Courses() []*Course { return sortedCourses(p.courses) }

// AssignGrade records grade for student in course. The student must already
// be enrolled in the course. Grading the same pair again replaces the grade.
func (p *Professor) AssignGrade(student *Student, course *Course, grade Grade) error {
	if student == nil {
		return notFound("student", "")
	}
	if !course.valid() || !p.registry.holdsCourse(course) {
		return notFound("course", courseRef(course))
	}
	if !p.registry.holdsStudent(student) {
		return notFound("student", student.studentID)
	}
	if !student.IsEnrolled(course) {
		return &PreconditionError{
			Op:  "assign grade",
			Msg: fmt.Sprintf("student %s is not enrolled in %s", student.studentID, course.id),
		}
	}
	g, err := ParseGrade(string(grade))
	if err != nil {
		return err
	}
	p.gradebook.Set(student, course, g)
	return nil
}

// Grade looks up the grade recorded for student in course.
func (p *Professor) Grade(student *Student, course *Course) (Grade, bool) {
	return p.gradebook.Get(student, course)
}

// CalculateSalary derives the yearly salary from rank and department only.
func (p *Professor) CalculateSalary() float64 {
	policy := p.policy
	if policy == nil {
		policy = &DefaultSalaryPolicy
	}
	return policy.Salary(p.rank, p.department)
}

// PayTax records a tax payment of amount. Negative and non-finite amounts
// are rejected and nothing is recorded.
func (p *Professor) PayTax(amount float64) error {
	if err := checkTaxAmount(amount); err != nil {
		return err
	}
	p.payments = append(p.payments, TaxPayment{
		ID:     uuid.New(),
		Amount: amount,
		PaidAt: now().UTC(),
	})
	return nil
}

// TaxPaid is the sum of every recorded payment.
func (p *Professor) TaxPaid() float64 {
	total := 0.0
	for _, tp := range p.payments {
		total += tp.Amount
	}
	return total
}

// TaxPayments returns a copy of the payment ledger in the order paid.
func (p *Professor) TaxPayments() []TaxPayment {
	out := make([]TaxPayment, len(p.payments))
	copy(out, p.payments)
	return out
}

func (p *Professor) Details() string {
	dept := p.department
	if dept == "" {
		dept = "none"
	}
	return p.details("professor", fmt.Sprintf("id=%s department=%s rank=%s courses=%d",
		p.employeeID, dept, p.rank, len(p.courses)))
}
