// Package types holds the plain records that cross package boundaries:
// roster files, storage rows and CLI output. Keeping them in one place
// prevents import cycles — storage, roster and the domain model can all
// import types without depending on each other.
//
// Struct tags serve three purposes:
//
//  1. json:"..." / yaml:"..." — key names when encoded for output or read
//     from a roster file.
//
//  2. validate:"..." — rules checked by go-playground/validator before a
//     record set is turned into domain objects.
package types

import "time"

// Course is the record form of a course.
type Course struct {
	ID      string `json:"id"      yaml:"id"      validate:"required"`
	Title   string `json:"title"   yaml:"title"   validate:"required"`
	Credits int    `json:"credits" yaml:"credits" validate:"gt=0"`
}

// Student is the record form of a student. Enrolled lists course ids.
type Student struct {
	ID          string   `json:"id"            yaml:"id"            validate:"required"`
	Name        string   `json:"name"          yaml:"name"          validate:"required"`
	DateOfBirth string   `json:"date_of_birth" yaml:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Major       string   `json:"major,omitempty"    yaml:"major,omitempty"`
	Enrolled    []string `json:"enrolled,omitempty" yaml:"enrolled,omitempty" validate:"dive,required"`
}

// Professor is the record form of a professor. Teaches lists course ids.
type Professor struct {
	ID          string   `json:"id"            yaml:"id"            validate:"required"`
	Name        string   `json:"name"          yaml:"name"          validate:"required"`
	DateOfBirth string   `json:"date_of_birth" yaml:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Department  string   `json:"department,omitempty" yaml:"department,omitempty"`
	Rank        string   `json:"rank,omitempty"       yaml:"rank,omitempty" validate:"omitempty,oneof=assistant associate full"`
	Teaches     []string `json:"teaches,omitempty"    yaml:"teaches,omitempty" validate:"dive,required"`
}

// Grade is one gradebook entry.
type Grade struct {
	StudentID string `json:"student_id" yaml:"student_id" validate:"required"`
	CourseID  string `json:"course_id"  yaml:"course_id"  validate:"required"`
	Grade     string `json:"grade"      yaml:"grade"      validate:"required,oneof=A+ A A- B+ B B- C+ C C- D+ D D- F"`
}

// TaxPayment is one entry of a professor's tax ledger.
type TaxPayment struct {
	ID         string    `json:"id"          yaml:"id"          validate:"required,uuid"`
	EmployeeID string    `json:"employee_id" yaml:"employee_id" validate:"required"`
	Amount     float64   `json:"amount"      yaml:"amount"      validate:"gte=0"`
	PaidAt     time.Time `json:"paid_at"     yaml:"paid_at"`
}

// Snapshot is a complete, serialisable copy of a registry. Ids are unique
// within each collection.
type Snapshot struct {
	Courses     []Course     `json:"courses"      yaml:"courses"      validate:"unique=ID,dive"`
	Students    []Student    `json:"students"     yaml:"students"     validate:"unique=ID,dive"`
	Professors  []Professor  `json:"professors"   yaml:"professors"   validate:"unique=ID,dive"`
	Grades      []Grade      `json:"grades"       yaml:"grades"       validate:"dive"`
	TaxPayments []TaxPayment `json:"tax_payments" yaml:"tax_payments" validate:"unique=ID,dive"`
}

// Salary is one row of the payroll report.
type Salary struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Rank       string  `json:"rank"`
	Salary     float64 `json:"salary"`
	TaxPaid    float64 `json:"tax_paid"`
}

// CourseSummary is one row of the course listing.
type CourseSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	CreditHours int      `json:"credit_hours"`
	Students    []string `json:"students"`
	Professors  []string `json:"professors"`
}
