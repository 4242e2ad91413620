// internal/pipeline/summary.go

package pipeline

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	okLabel   = color.New(color.FgGreen).SprintFunc()
	skipLabel = color.New(color.FgYellow).SprintFunc()
	failLabel = color.New(color.FgRed).SprintFunc()
)

// Failure records one file a run could not process.
type Failure struct {
	File string
	Err  error
}

// Summary reports what one batch run did.
type Summary struct {
	RunID     string
	Processed int
	Skipped   int
	Failed    int
	Failures  []Failure
}

// Print writes a human-readable run summary, one line per failure.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Run %s: %s processed, %s skipped, %s failed\n",
		s.RunID,
		okLabel(s.Processed),
		skipLabel(s.Skipped),
		failLabel(s.Failed),
	)
	for _, f := range s.Failures {
		fmt.Fprintf(w, "  %s %s: %v\n", failLabel("FAIL"), f.File, f.Err)
	}
}
