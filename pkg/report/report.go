// Package report aggregates findings from one guardrail run into an explicit
// value: counts are computed from the flattened finding list, never
// accumulated in shared state.
package report

import (
	"time"

	"github.com/google/uuid"

	"guardrail/pkg/detector"
	"guardrail/pkg/rules"
)

// Summary counts findings by severity.
type Summary struct {
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Infos        int `json:"infos"`
	FilesChecked int `json:"files_checked"`
}

// Report is the result of checking a set of files against one detection.
type Report struct {
	RunID      string              `json:"run_id"`
	Root       string              `json:"root"`
	Stack      detector.StackLabel `json:"stack"`
	Source     string              `json:"source"`
	Findings   []rules.Finding     `json:"findings"`
	Summary    Summary             `json:"summary"`
	DurationMS int64               `json:"duration_ms"`
}

// Build assembles a report. Findings are deduplicated and stably ordered
// across files so identical runs produce identical reports, modulo the run ID
// and duration.
func Build(root string, det detector.Detection, findings []rules.Finding, filesChecked int, started time.Time) Report {
	normalized := rules.Normalize(findings)
	summary := Summarize(normalized)
	summary.FilesChecked = filesChecked

	return Report{
		RunID:      uuid.NewString(),
		Root:       root,
		Stack:      det.Stack,
		Source:     det.Source,
		Findings:   normalized,
		Summary:    summary,
		DurationMS: time.Since(started).Milliseconds(),
	}
}

// Summarize tallies a finding list.
func Summarize(findings []rules.Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch f.Severity {
		case rules.Error:
			s.Errors++
		case rules.Warn:
			s.Warnings++
		default:
			s.Infos++
		}
	}
	return s
}

// Passed reports whether the run is clean enough to proceed: advisory findings
// never block, only errors do.
func (r Report) Passed() bool {
	return r.Summary.Errors == 0
}
