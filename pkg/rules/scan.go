package rules

import (
	"regexp"
	"strings"
)

// region is a 1-based inclusive line range within a file.
type region struct {
	start int
	end   int
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

// matchLines returns the 1-based numbers of lines where match reports true.
func matchLines(content string, match func(line string) bool) []int {
	var out []int
	for i, line := range splitLines(content) {
		if match(line) {
			out = append(out, i+1)
		}
	}
	return out
}

// braceRegion returns the region opened by the first '{' at or after lines[start-1]
// and closed where curly braces balance again. A region that never closes runs
// to the end of the file.
func braceRegion(lines []string, start int) region {
	depth := 0
	opened := false
	for i := start - 1; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return region{start: start, end: i + 1}
		}
	}
	return region{start: start, end: len(lines)}
}

// directiveRegions pairs opening Blade directives with their closers, tracking
// nesting. Unclosed blocks run to the end of the file.
func directiveRegions(lines []string, open, closing string) []region {
	var regions []region
	var stack []int
	for i, line := range lines {
		if strings.Contains(line, open) {
			stack = append(stack, i+1)
		}
		if strings.Contains(line, closing) && len(stack) > 0 {
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			regions = append(regions, region{start: start, end: i + 1})
		}
	}
	for _, start := range stack {
		regions = append(regions, region{start: start, end: len(lines)})
	}
	return regions
}

// methodRegions returns the body regions of PHP methods with the given name.
func methodRegions(lines []string, name string) []region {
	decl := regexp.MustCompile(`\bfunction\s+` + regexp.QuoteMeta(name) + `\s*\(`)
	var regions []region
	for i, line := range lines {
		if decl.MatchString(line) {
			regions = append(regions, braceRegion(lines, i+1))
		}
	}
	return regions
}

// tagRegions returns, for each line containing marker, the span from that line
// to the line closing the element tag.
func tagRegions(lines []string, marker string) []region {
	var regions []region
	for i, line := range lines {
		if !strings.Contains(line, marker) {
			continue
		}
		end := i + 1
		for j := i; j < len(lines); j++ {
			if strings.Contains(lines[j], ">") {
				end = j + 1
				break
			}
		}
		regions = append(regions, region{start: i + 1, end: end})
	}
	return regions
}

// parenRegions returns, for each occurrence of marker, the span from its line
// until parentheses opened at the marker balance out.
func parenRegions(lines []string, marker string) []region {
	var regions []region
	for i, line := range lines {
		col := strings.Index(line, marker)
		if col < 0 {
			continue
		}
		depth := 0
		end := i + 1
		rest := line[col:]
	scan:
		for j := i; j < len(lines); j++ {
			if j > i {
				rest = lines[j]
			}
			for _, ch := range rest {
				switch ch {
				case '(':
					depth++
				case ')':
					depth--
					if depth <= 0 {
						end = j + 1
						break scan
					}
				}
			}
			end = j + 1
		}
		regions = append(regions, region{start: i + 1, end: end})
	}
	return regions
}

// regionContains reports whether any line of the region matches.
func regionContains(lines []string, reg region, match func(line string) bool) bool {
	for i := reg.start - 1; i < reg.end && i < len(lines); i++ {
		if match(lines[i]) {
			return true
		}
	}
	return false
}

func containsAny(needles ...string) func(line string) bool {
	return func(line string) bool {
		for _, n := range needles {
			if strings.Contains(line, n) {
				return true
			}
		}
		return false
	}
}
