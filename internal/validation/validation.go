// Package validation owns the shared go-playground validator instance and
// turns its field errors into short English sentences.
//
// A *validator.Validate caches struct metadata the first time it sees a
// type, so one instance is created for the whole process instead of calling
// validator.New() for every check.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Tags shared by the domain model and the record types.
const (
	// GradeTag accepts the letter grades a professor may record.
	GradeTag = "oneof=A+ A A- B+ B B- C+ C C- D+ D D- F"

	// DateTag accepts calendar dates written as YYYY-MM-DD.
	DateTag = "datetime=2006-01-02"

	// RankTag accepts the professor ranks.
	RankTag = "oneof=assistant associate full"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the process-wide validator. Field names reported in its
// errors come from the json tag when one is present.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		instance = v
	})
	return instance
}

// Message converts one failed rule into a sentence that reads after the field
// name, e.g. "is required" or "must be greater than 0".
func Message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "dive":
		return "has an invalid element"
	default:
		return fmt.Sprintf("is invalid (%s)", fe.ActualTag())
	}
}

// Messages renders every field error as "field <name> <message>".
func Messages(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fmt.Sprintf("field %s %s", FieldPath(fe), Message(fe)))
	}
	return out
}

// FieldPath drops the top-level struct name from the namespace so nested
// record fields read as "students[0].id".
func FieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
