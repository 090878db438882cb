package tui

import (
	"cudaprep/internal/provision"
)

// event is the message stream between the orchestrator goroutine and
// the bubbletea model.
type event struct {
	kind     eventKind
	stepName string
	result   provision.RunResult
	report   provision.RunReport
}

type eventKind int

const (
	eventStepStarted eventKind = iota
	eventStepFinished
	eventRunDone
)

// ChannelReporter forwards orchestrator progress into the TUI event
// channel. It implements provision.Reporter.
type ChannelReporter struct {
	events chan event
}

// NewChannelReporter creates a reporter with a buffered event channel.
// The buffer must absorb a whole run's events so the orchestrator never
// blocks when the viewer quits early.
func NewChannelReporter() *ChannelReporter {
	return &ChannelReporter{events: make(chan event, 1024)}
}

// StepStarted forwards a step announcement.
func (r *ChannelReporter) StepStarted(name string) {
	r.events <- event{kind: eventStepStarted, stepName: name}
}

// StepFinished forwards a step outcome.
func (r *ChannelReporter) StepFinished(result provision.RunResult) {
	r.events <- event{kind: eventStepFinished, result: result}
}

// RunDone signals the end of the run with the final report and closes
// the stream.
func (r *ChannelReporter) RunDone(report provision.RunReport) {
	r.events <- event{kind: eventRunDone, report: report}
	close(r.events)
}
