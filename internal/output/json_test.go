package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/counsyl/gocd-get-test-failures/internal/report"
)

func TestJSONRenderer(t *testing.T) {
	failures := []report.TestFailure{
		{
			Suite:   "tests.test_orders",
			Test:    "test_cancel_order",
			Stage:   "test",
			Job:     "unit",
			Kind:    "failure",
			Message: "False is not true",
			Output:  "Traceback (most recent call last):\nAssertionError: False is not true",
		},
		{
			Suite:  "tests.test_billing",
			Test:   "test_invoice",
			Stage:  "test",
			Job:    "unit",
			Kind:   "error",
			Output: "KeyError: 'invoice_id'",
		},
	}

	buf := &bytes.Buffer{}
	if err := NewJSON(buf).Render(failures); err != nil {
		t.Fatalf("render json: %v", err)
	}

	var decoded []report.TestFailure
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if diff := cmp.Diff(failures, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	if !strings.HasPrefix(buf.String(), "[\n  {\n    \"suite\":") {
		t.Fatalf("expected indented array output, got %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "]\n") {
		t.Fatalf("expected trailing newline, got %q", buf.String())
	}
}

func TestJSONRendererOmitsEmptyKindAndMessage(t *testing.T) {
	failures := []report.TestFailure{
		{Suite: "tests.test_a", Test: "test_one", Stage: "test", Job: "unit", Output: "trace"},
	}

	buf := &bytes.Buffer{}
	if err := NewJSON(buf).Render(failures); err != nil {
		t.Fatalf("render json: %v", err)
	}

	if strings.Contains(buf.String(), "\"type\"") || strings.Contains(buf.String(), "\"message\"") {
		t.Fatalf("expected empty kind and message omitted, got %s", buf.String())
	}
}

func TestJSONRendererEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewJSON(buf).Render(nil); err != nil {
		t.Fatalf("render json: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}
