package university

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/university/internal/validation"
)

// checkVar runs a single validator tag against value and reports the first
// failure as a *ValidationError for field.
func checkVar(field string, value any, tag string) error {
	err := validation.Validator().Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: field, Msg: validation.Message(verrs[0])}
	}
	return &ValidationError{Field: field, Msg: err.Error()}
}

// requireText trims s and rejects it when nothing is left.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := checkVar(field, s, "required"); err != nil {
		return "", err
	}
	return s, nil
}

// calendarDate strips the clock part of t, keeping the date as written in
// t's own location.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func checkDateOfBirth(dob time.Time, now time.Time) (time.Time, error) {
	if dob.IsZero() {
		return time.Time{}, invalidf("dateOfBirth", "is required")
	}
	date := calendarDate(dob)
	if date.After(calendarDate(now)) {
		return time.Time{}, invalidf("dateOfBirth", "must not be in the future (got %s)", date.Format(DateLayout))
	}
	return date, nil
}

// ParseDate reads a YYYY-MM-DD calendar date for field.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if err := checkVar(field, s, "required,"+validation.DateTag); err != nil {
		return time.Time{}, err
	}
	return time.Parse(DateLayout, s)
}
