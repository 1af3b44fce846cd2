package university

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// freezeNow pins the model's clock for the duration of a test.
func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestAgeAt(t *testing.T) {
	cases := []struct {
		name string
		dob  time.Time
		at   time.Time
		want int
	}{
		{"day before birthday", date(2000, 6, 15), date(2024, 6, 14), 23},
		{"on birthday", date(2000, 6, 15), date(2024, 6, 15), 24},
		{"day after birthday", date(2000, 6, 15), date(2024, 6, 16), 24},
		{"earlier month", date(2000, 6, 15), date(2024, 5, 30), 23},
		{"later month", date(2000, 6, 15), date(2024, 7, 1), 24},
		{"born today", date(2024, 3, 3), date(2024, 3, 3), 0},
		{"leap day in common year, Feb 28", date(2000, 2, 29), date(2023, 2, 28), 22},
		{"leap day in common year, Mar 1", date(2000, 2, 29), date(2023, 3, 1), 23},
		{"leap day in leap year", date(2000, 2, 29), date(2024, 2, 29), 24},
		{"new year's eve", date(1999, 12, 31), date(2000, 12, 30), 0},
		{"dob after t", date(2030, 1, 1), date(2024, 1, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeAt(tc.dob, tc.at); got != tc.want {
				t.Fatalf("AgeAt(%s, %s) = %d, want %d",
					tc.dob.Format(DateLayout), tc.at.Format(DateLayout), got, tc.want)
			}
		})
	}
}

func TestAgeAt_IgnoresClock(t *testing.T) {
	dob := time.Date(2000, 6, 15, 23, 59, 0, 0, time.UTC)
	at := time.Date(2024, 6, 15, 0, 1, 0, 0, time.UTC)
	if got := AgeAt(dob, at); got != 24 {
		t.Fatalf("expected 24, got %d", got)
	}
}

func TestPerson_AgeUsesClock(t *testing.T) {
	freezeNow(t, date(2026, 10, 19))
	s, err := NewStudent("Ada", date(2004, 10, 20), "S1", "")
	if err != nil {
		t.Fatalf("NewStudent: %v", err)
	}
	if got := s.Age(); got != 21 {
		t.Fatalf("expected 21, got %d", got)
	}
	freezeNow(t, date(2026, 10, 20))
	if got := s.Age(); got != 22 {
		t.Fatalf("expected 22 on the birthday, got %d", got)
	}
}

func TestPerson_Validation(t *testing.T) {
	freezeNow(t, date(2026, 10, 19))

	if _, err := NewStudent("", date(2000, 1, 1), "S1", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: expected ErrValidation, got %v", err)
	}
	if _, err := NewProfessor("Grace", date(2026, 10, 20), "E1", "CS", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("future dob: expected ErrValidation, got %v", err)
	}
	if _, err := NewProfessor("Grace", time.Time{}, "E1", "CS", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero dob: expected ErrValidation, got %v", err)
	}
	if _, err := NewStudent("Ada", date(2026, 10, 19), "S1", ""); err != nil {
		t.Fatalf("dob today should be accepted, got %v", err)
	}
}

func TestPerson_Setters(t *testing.T) {
	freezeNow(t, date(2026, 10, 19))
	var p Person
	s, err := NewStudent("Ada", date(2000, 1, 1), "S1", "Maths")
	if err != nil {
		t.Fatalf("NewStudent: %v", err)
	}
	p = s

	if err := p.SetName("  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetName blank: expected ErrValidation, got %v", err)
	}
	if err := p.SetDateOfBirth(date(2027, 1, 1)); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetDateOfBirth future: expected ErrValidation, got %v", err)
	}
	if p.Name() != "Ada" || !p.DateOfBirth().Equal(date(2000, 1, 1)) {
		t.Fatalf("failed setters changed the person: %q %s", p.Name(), p.DateOfBirth())
	}

	if err := p.SetName("Ada Lovelace"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := p.SetDateOfBirth(time.Date(1999, 5, 4, 18, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SetDateOfBirth: %v", err)
	}
	if p.Name() != "Ada Lovelace" || !p.DateOfBirth().Equal(date(1999, 5, 4)) {
		t.Fatalf("unexpected person after update: %q %s", p.Name(), p.DateOfBirth())
	}
}

func TestPerson_Details(t *testing.T) {
	freezeNow(t, date(2026, 10, 19))
	s, _ := NewStudent("Ada", date(2000, 1, 1), "S1", "")
	p, _ := NewProfessor("Grace", date(1970, 12, 9), "E1", "Computer Science", RankFull)

	people := []Person{s, p}
	wants := [][]string{
		{"Ada", "age 26", "student", "id=S1", "major=undeclared"},
		{"Grace", "age 55", "professor", "id=E1", "department=Computer Science", "rank=full"},
	}
	for i, person := range people {
		got := person.Details()
		for _, want := range wants[i] {
			if !strings.Contains(got, want) {
				t.Errorf("Details() = %q, missing %q", got, want)
			}
		}
	}
}
