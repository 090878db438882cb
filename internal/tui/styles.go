package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cudaprep/internal/provision"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	runningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700"))
	performedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	satisfiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)
)

// RenderSummary renders the end-of-run summary block shared by the TUI
// and the plain CLI output.
func RenderSummary(report provision.RunReport) string {
	var b strings.Builder

	var performed, satisfied, failed int
	for _, result := range report.Results {
		switch result.Outcome {
		case provision.OutcomePerformed:
			performed++
		case provision.OutcomeSatisfied:
			satisfied++
		case provision.OutcomeFailed:
			failed++
		}
	}

	headline := performedStyle.Render("Provisioning complete")
	if !report.Success {
		headline = failedStyle.Render("Provisioning failed")
	}
	b.WriteString(headline)
	b.WriteString("\n")

	counts := fmt.Sprintf("%d performed, %d already satisfied, %d failed (platform: %s)",
		performed, satisfied, failed, report.Platform)
	b.WriteString(satisfiedStyle.Render(counts))
	b.WriteString("\n")

	if !report.Success && len(report.Results) > 0 {
		last := report.Results[len(report.Results)-1]
		b.WriteString(failedStyle.Render(fmt.Sprintf("✗ %s: %s", last.StepName, last.Message)))
		b.WriteString("\n")
	}

	return b.String()
}
