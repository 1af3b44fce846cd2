// Package diagram renders the university model as PlantUML.
//
// ClassDiagram describes the types; ObjectDiagram describes one registry's
// contents. Both read the model only through its records, so nothing here
// feeds back into the domain package.
package diagram

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/aanand-mishra/university/internal/types"
)

const classDiagram = `@startuml
title University System Class Diagram

skinparam classAttributeIconSize 0

abstract class Person {
  - name: String
  - dateOfBirth: Date
  + {abstract} getAge(): int
  + getDetails(): String
}

class Student {
  - studentId: String
  - major: String
  + enrollCourse(course: Course): void
  + getStudentId(): String
}

class Professor {
  - employeeId: String
  - department: String
  - rank: Rank
  + teachCourse(course: Course): void
  + assignGrade(student: Student, course: Course, grade: String): void
}

class Course {
  - courseId: String
  - title: String
  - credits: int
  + getCourseTitle(): String
  + getCreditHours(): int
}

interface Payable {
  + calculateSalary(): double
  + payTax(amount: double): void
}

Person <|-- Student
Person <|-- Professor

Professor "0..*" o-- "0..*" Course : teaches >
Student "0..*" o-- "0..*" Course : enrolledIn >

Professor ..|> Payable

Professor .> Student : grades
@enduml
`

// ClassDiagram returns the class diagram of the model: Student and Professor
// both extend Person, and only Professor realises Payable.
func ClassDiagram() string { return classDiagram }

var objectTmpl = template.Must(template.New("objects").Funcs(template.FuncMap{
	"alias": alias,
	"quote": quote,
}).Parse(`@startuml
title University Objects

{{range .Courses -}}
object "{{quote .ID}}" as {{alias "c" .ID}} {
  title = {{quote .Title}}
  credits = {{.Credits}}
}
{{end -}}
{{range .Students -}}
object "{{quote .ID}}: Student" as {{alias "s" .ID}} {
  name = {{quote .Name}}
  dateOfBirth = {{.DateOfBirth}}
{{- if .Major}}
  major = {{quote .Major}}
{{- end}}
}
{{end -}}
{{range .Professors -}}
object "{{quote .ID}}: Professor" as {{alias "p" .ID}} {
  name = {{quote .Name}}
  dateOfBirth = {{.DateOfBirth}}
{{- if .Department}}
  department = {{quote .Department}}
{{- end}}
{{- if .Rank}}
  rank = {{.Rank}}
{{- end}}
}
{{end -}}
{{range $s := .Students}}{{range .Enrolled -}}
{{alias "s" $s.ID}} --> {{alias "c" .}} : enrolled
{{end}}{{end -}}
{{range $p := .Professors}}{{range .Teaches -}}
{{alias "p" $p.ID}} --> {{alias "c" .}} : teaches
{{end}}{{end -}}
{{range .Grades -}}
{{alias "s" .StudentID}} ..> {{alias "c" .CourseID}} : grade {{.Grade}}
{{end -}}
@enduml
`))

// ObjectDiagram writes an object diagram of snap to w: one object per
// entity, plus enrollment, teaching and grade links.
func ObjectDiagram(w io.Writer, snap types.Snapshot) error {
	if err := objectTmpl.Execute(w, snap); err != nil {
		return fmt.Errorf("diagram.ObjectDiagram: %w", err)
	}
	return nil
}

// alias turns an id into a PlantUML identifier. Ids may contain characters
// PlantUML does not accept in aliases, so anything outside [A-Za-z0-9_] is
// replaced.
func alias(prefix, id string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('_')
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func quote(s string) string {
	return strings.ReplaceAll(s, `"`, `'`)
}
