package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestGeneralError_Single(t *testing.T) {
	resp := GeneralError(errors.New("boom"))
	if resp.Status != StatusError || resp.Error != "boom" || resp.Problems != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGeneralError_Joined(t *testing.T) {
	inner := errors.Join(errors.New("b"), errors.New("c"))
	err := fmt.Errorf("import: %w", errors.Join(errors.New("a"), inner))

	resp := GeneralError(err)
	if resp.Error != "multiple problems" {
		t.Fatalf("expected summary error, got %q", resp.Error)
	}
	want := []string{"a", "b", "c"}
	if len(resp.Problems) != len(want) {
		t.Fatalf("expected %v, got %v", want, resp.Problems)
	}
	for i := range want {
		if resp.Problems[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, resp.Problems)
		}
	}
}

func TestWriteJSON_OK(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, OK(map[string]int{"courses": 2})); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded struct {
		Status string         `json:"status"`
		Data   map[string]int `json:"data"`
		Error  *string        `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Status != StatusOK || decoded.Data["courses"] != 2 || decoded.Error != nil {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
