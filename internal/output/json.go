package output

import (
	"encoding/json"
	"io"

	"github.com/counsyl/gocd-get-test-failures/internal/report"
)

// Renderer serializes failures in one output format.
type Renderer interface {
	Render(failures []report.TestFailure) error
}

// JSONRenderer emits failures as an indented JSON array.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Render encodes the failures as JSON. An empty input renders as [].
func (j *JSONRenderer) Render(failures []report.TestFailure) error {
	if failures == nil {
		failures = []report.TestFailure{}
	}
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(failures)
}
