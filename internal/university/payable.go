package university

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/university/internal/validation"
)

// Payable is implemented by anything the university pays. It is a
// capability, not part of the Person hierarchy: only Professor satisfies it.
type Payable interface {
	CalculateSalary() float64
	PayTax(amount float64) error
}

// Rank is a professor's academic rank.
type Rank string

const (
	RankAssistant Rank = "assistant"
	RankAssociate Rank = "associate"
	RankFull      Rank = "full"
)

// ParseRank accepts a rank name in any case. An empty string means
// RankAssistant.
func ParseRank(s string) (Rank, error) {
	r := strings.ToLower(strings.TrimSpace(s))
	if r == "" {
		return RankAssistant, nil
	}
	if err := checkVar("rank", r, validation.RankTag); err != nil {
		return "", err
	}
	return Rank(r), nil
}

// SalaryPolicy turns a rank and a department into a yearly salary:
// BaseSalary[rank] * multiplier, where the multiplier is looked up by
// department name (case-insensitive) and falls back to DefaultMultiplier.
type SalaryPolicy struct {
	BaseSalary           map[Rank]float64
	DepartmentMultiplier map[string]float64
	DefaultMultiplier    float64
}

// DefaultSalaryPolicy is used by professors that were not given a policy.
var DefaultSalaryPolicy = SalaryPolicy{
	BaseSalary: map[Rank]float64{
		RankAssistant: 70000,
		RankAssociate: 85000,
		RankFull:      105000,
	},
	DepartmentMultiplier: map[string]float64{
		"computer science": 1.15,
		"engineering":      1.10,
		"medicine":         1.25,
		"law":              1.20,
	},
	DefaultMultiplier: 1.0,
}

// Validate checks that every rank has a positive base salary and every
// multiplier is positive.
func (p SalaryPolicy) Validate() error {
	for _, r := range []Rank{RankAssistant, RankAssociate, RankFull} {
		if p.BaseSalary[r] <= 0 {
			return invalidf("baseSalary."+string(r), "must be greater than 0")
		}
	}
	if p.DefaultMultiplier <= 0 {
		return invalidf("defaultMultiplier", "must be greater than 0")
	}
	for dept, m := range p.DepartmentMultiplier {
		if m <= 0 {
			return invalidf("departmentMultiplier."+dept, "must be greater than 0")
		}
	}
	return nil
}

// Salary is a pure function of rank and department.
func (p SalaryPolicy) Salary(rank Rank, department string) float64 {
	return p.BaseSalary[rank] * p.multiplier(department)
}

func (p SalaryPolicy) multiplier(department string) float64 {
	dept := strings.TrimSpace(department)
	if m, ok := p.DepartmentMultiplier[dept]; ok {
		return m
	}
	for name, m := range p.DepartmentMultiplier {
		if strings.EqualFold(name, dept) {
			return m
		}
	}
	return p.DefaultMultiplier
}

// TaxPayment is one recorded call to PayTax.
type TaxPayment struct {
	ID     uuid.UUID
	Amount float64
	PaidAt time.Time
}

func checkTaxAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return invalidf("amount", "must be a finite number")
	}
	if amount < 0 {
		return invalidf("amount", "must not be negative (got %v)", amount)
	}
	return nil
}
