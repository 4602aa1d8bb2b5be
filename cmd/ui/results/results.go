// Package results renders check reports and tool runs for the terminal.
package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"guardrail/pkg/report"
	"guardrail/pkg/rules"
	"guardrail/pkg/runner"
)

var (
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B35")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func glyph(sev rules.Severity) string {
	switch sev {
	case rules.Error:
		return errorStyle.Render("✗")
	case rules.Warn:
		return warnStyle.Render("!")
	default:
		return infoStyle.Render("·")
	}
}

// RenderReport lists findings grouped by file, one glyphed line each, with a
// summary footer. A clean report renders as a single success line.
func RenderReport(rep report.Report) string {
	var s strings.Builder

	if len(rep.Findings) == 0 {
		s.WriteString(successStyle.Render("✓ no findings"))
		s.WriteString(mutedStyle.Render(fmt.Sprintf("  (%s stack, %d files, %dms)", rep.Stack, rep.Summary.FilesChecked, rep.DurationMS)))
		return s.String()
	}

	// Findings arrive sorted by severity; group them by file in order of
	// first appearance so the worst files lead.
	var order []string
	grouped := make(map[string][]rules.Finding)
	for _, f := range rep.Findings {
		if _, ok := grouped[f.File]; !ok {
			order = append(order, f.File)
		}
		grouped[f.File] = append(grouped[f.File], f)
	}

	for _, file := range order {
		s.WriteString(fileStyle.Render(file))
		s.WriteString("\n")
		for _, f := range grouped[file] {
			loc := ""
			if f.Line > 0 {
				loc = fmt.Sprintf(":%d", f.Line)
			}
			s.WriteString(fmt.Sprintf("  %s %s%s  %s %s\n",
				glyph(f.Severity),
				mutedStyle.Render(f.Severity.String()),
				mutedStyle.Render(loc),
				f.Message,
				ruleStyle.Render("("+f.Rule+")")))
		}
		s.WriteString("\n")
	}

	s.WriteString(renderSummary(rep))
	return s.String()
}

func renderSummary(rep report.Report) string {
	parts := []string{
		fmt.Sprintf("%d errors", rep.Summary.Errors),
		fmt.Sprintf("%d warnings", rep.Summary.Warnings),
		fmt.Sprintf("%d infos", rep.Summary.Infos),
	}
	line := fmt.Sprintf("%s · %d files checked · %dms",
		strings.Join(parts, ", "), rep.Summary.FilesChecked, rep.DurationMS)

	if rep.Passed() {
		return successStyle.Render("✓ passed") + "  " + mutedStyle.Render(line)
	}
	return errorStyle.Render("✗ failed") + "  " + mutedStyle.Render(line)
}

// RenderToolResults lists each external tool run with its verdict; output
// from failing tools is shown indented so the fix is one glance away.
func RenderToolResults(results []runner.Result) string {
	if len(results) == 0 {
		return mutedStyle.Render("no external tools configured for this stack")
	}

	var s strings.Builder
	for _, res := range results {
		mark := successStyle.Render("✓")
		if !res.Passed {
			mark = errorStyle.Render("✗")
		}
		s.WriteString(fmt.Sprintf("%s %s %s %s\n",
			mark,
			fileStyle.Render(res.Tool.Name),
			mutedStyle.Render("("+res.Tool.Ecosystem+")"),
			mutedStyle.Render(fmt.Sprintf("%dms", res.DurationMS))))

		if !res.Passed && strings.TrimSpace(res.Output) != "" {
			for _, line := range strings.Split(strings.TrimRight(res.Output, "\n"), "\n") {
				s.WriteString("    " + line + "\n")
			}
		}
	}
	return strings.TrimRight(s.String(), "\n")
}
