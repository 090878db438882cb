package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cudaprep/internal/provision"
)

// stepLine is one rendered row in the progress list.
type stepLine struct {
	name    string
	running bool
	outcome provision.Outcome
	message string
}

// Model renders a provisioning run live: one line per step, updated as
// the orchestrator reports progress on the event channel.
type Model struct {
	reporter *ChannelReporter

	steps    []stepLine
	done     bool
	report   provision.RunReport
	quitting bool
}

// NewModel creates a TUI model consuming the reporter's event stream.
// The orchestrator must run in a separate goroutine and finish with
// reporter.RunDone.
func NewModel(reporter *ChannelReporter) Model {
	return Model{reporter: reporter}
}

// Init starts listening for run events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.reporter.events)
}

// waitForEvent blocks on the next orchestrator event.
func waitForEvent(events chan event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ev
	}
}

// Update handles run events and quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// The run keeps mutating the machine in the background; the
			// TUI only stops watching.
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case event:
		switch msg.kind {
		case eventStepStarted:
			m.steps = append(m.steps, stepLine{name: msg.stepName, running: true})
		case eventStepFinished:
			for i := len(m.steps) - 1; i >= 0; i-- {
				if m.steps[i].name == msg.result.StepName {
					m.steps[i].running = false
					m.steps[i].outcome = msg.result.Outcome
					m.steps[i].message = msg.result.Message
					break
				}
			}
		case eventRunDone:
			m.done = true
			m.report = msg.report
			return m, nil
		}
		return m, waitForEvent(m.reporter.events)
	}

	return m, nil
}

// View renders the progress list and, once done, the summary.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cudaprep — provisioning"))
	b.WriteString("\n\n")

	for _, step := range m.steps {
		b.WriteString(renderStepLine(step))
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString("\n")
		b.WriteString(RenderSummary(m.report))
		b.WriteString(hintStyle.Render("Press q to exit"))
		b.WriteString("\n")
	}

	return b.String()
}

func renderStepLine(step stepLine) string {
	if step.running {
		return runningStyle.Render("… " + step.name)
	}

	text := step.name
	if step.message != "" {
		text = fmt.Sprintf("%s: %s", step.name, step.message)
	}

	switch step.outcome {
	case provision.OutcomePerformed:
		return performedStyle.Render("✓ " + text)
	case provision.OutcomeSatisfied:
		return satisfiedStyle.Render("○ " + text)
	case provision.OutcomeFailed:
		return failedStyle.Render("✗ " + text)
	default:
		return text
	}
}
