package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// matchSuffixes gates a rule to paths ending in any of the given suffixes.
func matchSuffixes(suffixes ...string) func(path string) bool {
	return func(path string) bool {
		lower := strings.ToLower(path)
		for _, s := range suffixes {
			if strings.HasSuffix(lower, s) {
				return true
			}
		}
		return false
	}
}

// notUnder further gates a matcher to paths outside the given directory.
func notUnder(dir string, match func(string) bool) func(path string) bool {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	return func(path string) bool {
		return match(path) && !strings.HasPrefix(path, prefix)
	}
}

// substringRule flags each line containing any needle. One finding per line.
func substringRule(id string, sev Severity, summary, doc, message string, applies func(string) bool, needles ...string) Rule {
	return Rule{
		ID:        id,
		Severity:  sev,
		Summary:   summary,
		Doc:       doc,
		AppliesTo: applies,
		Check: func(path, content string) []Finding {
			var out []Finding
			for _, line := range matchLines(content, containsAny(needles...)) {
				out = append(out, Finding{Rule: id, Severity: sev, Message: message, File: path, Line: line})
			}
			return out
		},
	}
}

// regexRule flags each line where pattern matches. A %s verb in messageFmt
// receives the first capture group, or the whole match when there is none.
func regexRule(id string, sev Severity, summary, doc, messageFmt string, applies func(string) bool, pattern *regexp.Regexp) Rule {
	return Rule{
		ID:        id,
		Severity:  sev,
		Summary:   summary,
		Doc:       doc,
		AppliesTo: applies,
		Check: func(path, content string) []Finding {
			var out []Finding
			for i, line := range splitLines(content) {
				m := pattern.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				msg := messageFmt
				if strings.Contains(messageFmt, "%s") {
					matched := m[0]
					if len(m) > 1 && m[1] != "" {
						matched = m[1]
					}
					msg = fmt.Sprintf(messageFmt, matched)
				}
				out = append(out, Finding{Rule: id, Severity: sev, Message: msg, File: path, Line: i + 1})
			}
			return out
		},
	}
}

// regionRule emits at most one finding per region located by regions. With
// wantAbsent false the finding fires when the region matches; with wantAbsent
// true it fires when the region does not.
func regionRule(id string, sev Severity, summary, doc, message string, applies func(string) bool, regions func(lines []string) []region, match func(line string) bool, wantAbsent bool) Rule {
	return Rule{
		ID:        id,
		Severity:  sev,
		Summary:   summary,
		Doc:       doc,
		AppliesTo: applies,
		Check: func(path, content string) []Finding {
			lines := splitLines(content)
			var out []Finding
			for _, reg := range regions(lines) {
				found := regionContains(lines, reg, match)
				if found == wantAbsent {
					continue
				}
				out = append(out, Finding{Rule: id, Severity: sev, Message: message, File: path, Line: reg.start})
			}
			return out
		},
	}
}
