package rules

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Severity ranks findings. Only Error findings affect exit decisions; Info and
// Warn annotate without blocking.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warn:
		return "warn"
	default:
		return "info"
	}
}

// ParseSeverity maps config input to a severity level.
func ParseSeverity(raw string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("unknown severity %q", raw)
}

// MarshalJSON emits the string form so reports read naturally.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	sev, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// Finding is one observation a rule made about a file. File paths are
// root-relative with forward slashes; Line is 1-based, 0 meaning the whole
// file.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file"`
	Line     int      `json:"line,omitempty"`
}

// CheckFunc inspects one file's content and reports findings. Implementations
// are pure: the same path and content always produce the same findings, and
// nothing is read from disk.
type CheckFunc func(path, content string) []Finding

// Rule is a single check. AppliesTo gates by path before Check runs.
type Rule struct {
	ID       string
	Severity Severity
	Summary  string
	Doc      string

	AppliesTo func(path string) bool
	Check     CheckFunc
}

func (r Rule) applies(path string) bool {
	return r.AppliesTo == nil || r.AppliesTo(path)
}

// Evaluate runs every applicable rule against one file and returns normalized
// findings. Content the caller could not read arrives as the empty string,
// which matches nothing, so evaluation degrades to zero findings for that file
// while other files proceed.
func Evaluate(path, content string, ruleSet []Rule) []Finding {
	var findings []Finding
	for _, r := range ruleSet {
		if r.Check == nil || !r.applies(path) {
			continue
		}
		findings = append(findings, r.Check(path, content)...)
	}
	return Normalize(findings)
}

// Normalize drops exact duplicates and sorts findings by severity (highest
// first), then rule ID, file, and line. Insertion order breaks remaining ties,
// so rule unions that apply a rule twice stay idempotent and output order is
// stable across runs.
func Normalize(findings []Finding) []Finding {
	seen := make(map[Finding]bool, len(findings))
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		if out[i].Rule != out[j].Rule {
			return out[i].Rule < out[j].Rule
		}
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Line < out[j].Line
	})
	return out
}
