package university

import (
	"fmt"
	"time"
)

// DateLayout is the layout used whenever a date of birth is written out.
const DateLayout = "2006-01-02"

// now is the evaluation time for ages and the "not in the future" check.
var now = time.Now

// Person is the capability set shared by everyone at the university.
// Student and Professor are its only implementations.
type Person interface {
	Name() string
	DateOfBirth() time.Time
	Age() int
	Details() string

	SetName(name string) error
	SetDateOfBirth(dob time.Time) error
}

// person carries the fields common to every Person and is embedded by the
// concrete variants.
type person struct {
	name string
	dob  time.Time
}

func newPerson(name string, dob time.Time) (person, error) {
	n, err := requireText("name", name)
	if err != nil {
		return person{}, err
	}
	d, err := checkDateOfBirth(dob, now())
	if err != nil {
		return person{}, err
	}
	return person{name: n, dob: d}, nil
}

func (p *person) Name() string { return p.name }

// DateOfBirth returns the calendar date at UTC midnight.
func (p *person) DateOfBirth() time.Time { return p.dob }

// Age is the number of whole years lived as of now.
func (p *person) Age() int { return AgeAt(p.dob, now()) }

func (p *person) SetName(name string) error {
	n, err := requireText("name", name)
	if err != nil {
		return err
	}
	p.name = n
	return nil
}

func (p *person) SetDateOfBirth(dob time.Time) error {
	d, err := checkDateOfBirth(dob, now())
	if err != nil {
		return err
	}
	p.dob = d
	return nil
}

// details joins the shared part of a summary with the variant's own part.
func (p *person) details(kind, extra string) string {
	return fmt.Sprintf("%s (age %d, born %s) | %s: %s",
		p.name, p.Age(), p.dob.Format(DateLayout), kind, extra)
}

// AgeAt returns the whole years between dob and t. A year only counts once
// the birthday has been reached in t's year; someone born on 29 February
// turns a year older on 1 March in common years.
func AgeAt(dob, t time.Time) int {
	dob, t = calendarDate(dob), calendarDate(t)
	if t.Before(dob) {
		return 0
	}
	years := t.Year() - dob.Year()
	if t.Month() < dob.Month() || (t.Month() == dob.Month() && t.Day() < dob.Day()) {
		years--
	}
	return years
}
