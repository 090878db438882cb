package provision

import (
	"fmt"
	"io"
	"time"
)

const (
	glyphStarted   = "▸"
	glyphPerformed = "✓"
	glyphSatisfied = "○"
	glyphFailed    = "✗"
)

// ConsoleReporter prints timestamped progress lines to a writer,
// normally stdout. One line per step event, status glyph first.
type ConsoleReporter struct {
	out io.Writer
	now func() time.Time
}

// NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out, now: time.Now}
}

// StepStarted prints the step announcement line.
func (r *ConsoleReporter) StepStarted(name string) {
	r.line(glyphStarted, name)
}

// StepFinished prints the step outcome line.
func (r *ConsoleReporter) StepFinished(result RunResult) {
	glyph := glyphFailed
	switch result.Outcome {
	case OutcomePerformed:
		glyph = glyphPerformed
	case OutcomeSatisfied:
		glyph = glyphSatisfied
	}

	message := result.StepName
	if result.Message != "" {
		message = fmt.Sprintf("%s: %s", result.StepName, result.Message)
	}
	r.line(glyph, message)
}

func (r *ConsoleReporter) line(glyph, message string) {
	timestamp := r.now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(r.out, "[%s] %s %s\n", timestamp, glyph, message)
}
