package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/counsyl/gocd-get-test-failures/internal/report"
)

// OrgRenderer renders failures as an org-mode outline. Each stage/job pair
// becomes a top-level heading, each failing test a second-level heading with
// its captured output quoted in an example block.
type OrgRenderer struct {
	out io.Writer
}

// NewOrg creates an org renderer writing to out.
func NewOrg(out io.Writer) *OrgRenderer {
	return &OrgRenderer{out: out}
}

// Render writes the outline. Failures keep their source order; headings
// appear when the stage/job changes.
func (o *OrgRenderer) Render(failures []report.TestFailure) error {
	type key struct {
		stage string
		job   string
	}

	var current key
	var buffer bytes.Buffer

	flush := func() error {
		if buffer.Len() == 0 {
			return nil
		}
		if _, err := buffer.WriteTo(o.out); err != nil {
			return err
		}
		buffer.Reset()
		return nil
	}

	for _, f := range failures {
		k := key{stage: f.Stage, job: f.Job}
		if current != k {
			if err := flush(); err != nil {
				return err
			}
			current = k
			fmt.Fprintf(&buffer, "* %s/%s\n", f.Stage, f.Job)
		}

		fmt.Fprintf(&buffer, "** %s: %s\n", f.Suite, f.Test)
		fmt.Fprintf(&buffer, "#+begin_example\n")
		if f.Output != "" {
			fmt.Fprintf(&buffer, "%s\n", f.Output)
		}
		fmt.Fprintf(&buffer, "#+end_example\n\n")
	}

	return flush()
}
