// Package roster reads and writes YAML roster files: the hand-edited form of
// a registry snapshot.
//
//	courses:
//	  - {id: CS101, title: Intro to CS, credits: 3}
//	students:
//	  - {id: S1, name: Ada, date_of_birth: 2001-04-02, enrolled: [CS101]}
//	professors:
//	  - {id: E1, name: Grace, date_of_birth: 1968-12-09, rank: full, teaches: [CS101]}
//	grades:
//	  - {student_id: S1, course_id: CS101, grade: A}
package roster

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/university/internal/types"
)

// ErrEmpty is returned for a roster with no documents.
var ErrEmpty = errors.New("roster is empty")

// Read decodes one roster document. Unknown keys are rejected so that a
// misspelt field does not silently drop data.
func Read(r io.Reader) (types.Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var snap types.Snapshot
	if err := dec.Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return types.Snapshot{}, ErrEmpty
		}
		return types.Snapshot{}, fmt.Errorf("roster.Read: decode: %w", err)
	}
	return snap, nil
}

// Load reads the roster file at path.
func Load(path string) (types.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("roster.Load: %w", err)
	}
	defer f.Close()

	snap, err := Read(f)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Write encodes snap as a roster document.
func Write(w io.Writer, snap types.Snapshot) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("roster.Write: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("roster.Write: close: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
