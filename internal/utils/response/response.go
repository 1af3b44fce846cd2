// Package response provides helpers for writing consistent JSON output.
//
// Every command prints JSON. Rather than repeating the encoder setup in
// every command, we centralise it here, and every result or failure has the
// same envelope so scripts always know what to parse.
package response

import (
	"encoding/json"
	"errors"
	"io"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope.
//
//	{ "status": "ok", "data": ... }
//	{ "status": "error", "error": "...", "problems": ["...", "..."] }
//
// Problems is filled when the error joins several failures, e.g. every bad
// record of a roster file.
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status   string   `json:"status"`
	Data     any      `json:"data,omitempty"`
	Error    string   `json:"error,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as indented JSON followed by a newline.
func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// OK wraps a successful result.
func OK(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

// ─────────────────────────────────────────────────────────────────────────────
// GeneralError wraps any Go error into the standard envelope. An error built
// with errors.Join is flattened so each failure gets its own problems entry.
//
//	response.WriteJSON(os.Stdout, response.GeneralError(err))
//
// ─────────────────────────────────────────────────────────────────────────────
func GeneralError(err error) Response {
	resp := Response{Status: StatusError, Error: err.Error()}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range flatten(joined.Unwrap()) {
			resp.Problems = append(resp.Problems, e.Error())
		}
		resp.Error = "multiple problems"
	}
	return resp
}

// flatten expands nested joins, keeping wrapped (non-joined) errors whole.
func flatten(errs []error) []error {
	var out []error
	for _, e := range errs {
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			out = append(out, flatten(j.Unwrap())...)
			continue
		}
		out = append(out, e)
	}
	return out
}
