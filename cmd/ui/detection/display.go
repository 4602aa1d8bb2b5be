// Package detection renders classification results for the terminal.
package detection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"guardrail/pkg/detector"
	"guardrail/pkg/testmap"
)

var (
	titleStyle        = lipgloss.NewStyle().Background(lipgloss.Color("#FF6B35")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B35")).Bold(true)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	successStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderSummary draws the detection box: the stack label and its evidence,
// the effective rule count, and where tests for this stack live.
func RenderSummary(det detector.Detection, set testmap.LocationSet, ruleCount int) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Stack Detection Results"))
	s.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF6B35")).
		Padding(1, 2).
		Width(60)

	var content strings.Builder
	content.WriteString(focusedStyle.Render("Stack: "))
	content.WriteString(selectedItemStyle.Render(det.Stack.String()))
	content.WriteString("\n")

	content.WriteString(focusedStyle.Render("Source: "))
	content.WriteString(selectedItemStyle.Render(det.Source))
	content.WriteString("\n\n")

	if len(det.Signals) > 0 {
		content.WriteString(focusedStyle.Render("Detection signals:"))
		content.WriteString("\n")
		for _, signal := range det.Signals {
			content.WriteString(successStyle.Render("  ✓ "))
			content.WriteString(descriptionStyle.Render(signal))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	content.WriteString(focusedStyle.Render("Checks: "))
	content.WriteString(descriptionStyle.Render(fmt.Sprintf("%d rules active", ruleCount)))
	content.WriteString("\n\n")

	content.WriteString(focusedStyle.Render("Test locations:"))
	content.WriteString("\n")
	content.WriteString(renderEcosystem("backend", set.Backend))
	if set.HasFrontend() {
		content.WriteString(renderEcosystem("frontend", set.Frontend))
	}
	if !set.Required {
		content.WriteString(mutedStyle.Render("  tests are advisory for this stack"))
		content.WriteString("\n")
	}

	s.WriteString(box.Render(strings.TrimRight(content.String(), "\n")))
	return s.String()
}

func renderEcosystem(name string, eco testmap.Ecosystem) string {
	if len(eco.Dirs) == 0 && eco.Command == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(successStyle.Render("  ✓ "))
	b.WriteString(descriptionStyle.Render(name + ": " + strings.Join(eco.Dirs, ", ")))
	b.WriteString("\n")
	if eco.Command != "" {
		b.WriteString(mutedStyle.Render("    runs: " + eco.Command))
		b.WriteString("\n")
	}
	return b.String()
}
