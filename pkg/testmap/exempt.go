package testmap

import (
	"path"
	"strings"

	"guardrail/pkg/detector"
)

// globalExemptions never need tests, whatever the stack: third-party and
// generated code, framework plumbing, declarative configuration, templates,
// and test files themselves.
var globalExemptions = []string{
	"vendor/**",
	"node_modules/**",
	"storage/**",
	"bootstrap/**",
	"public/**",
	"config/**",
	"database/**",
	"routes/**",
	"lang/**",
	"resources/views/**",
	"*.blade.php",
	"*.d.ts",
	"*.config.js",
	"*.config.ts",
	"*.config.mjs",
	"*.config.cjs",
	"tests/**",
	"**/__tests__/**",
	"*Test.php",
	"*.test.*",
	"*.spec.*",
	".*",
	".*/**",
}

// backendExemptions skip backend classes that are data holders or framework
// wiring by Laravel directory convention.
var backendExemptions = []string{
	"app/Models/**",
	"app/Providers/**",
	"app/Console/**",
	"app/Exceptions/**",
}

// frontendExemptions skip JS entry points, generated types, and Inertia page
// shells, which get covered by backend feature tests instead.
var frontendExemptions = []string{
	"resources/js/Pages/**",
	"resources/js/types/**",
	"resources/js/app.*",
	"resources/js/ssr.*",
	"resources/js/bootstrap.*",
}

func labelExemptions(label detector.StackLabel) []string {
	switch label {
	case detector.Livewire, detector.Filament, detector.Inertia, detector.API:
		return backendExemptions
	case detector.InertiaVue, detector.InertiaReact:
		out := make([]string, 0, len(backendExemptions)+len(frontendExemptions))
		out = append(out, backendExemptions...)
		return append(out, frontendExemptions...)
	}
	return nil
}

// Exempt reports whether a file is excused from the missing-test check. The
// global list applies to every label; label lists add ecosystem conventions;
// extra carries project-configured globs.
func Exempt(filePath string, label detector.StackLabel, extra []string) bool {
	for _, pattern := range globalExemptions {
		if matchGlob(pattern, filePath) {
			return true
		}
	}
	for _, pattern := range labelExemptions(label) {
		if matchGlob(pattern, filePath) {
			return true
		}
	}
	for _, pattern := range extra {
		if matchGlob(pattern, filePath) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a glob pattern. * and ?
// stay within one path segment, ** spans segments, and a pattern without a
// slash matches against the base name alone.
func matchGlob(pattern, filePath string) bool {
	filePath = strings.TrimPrefix(path.Clean(filePath), "./")

	if !strings.Contains(pattern, "/") {
		ok, _ := path.Match(pattern, path.Base(filePath))
		return ok
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(filePath, "/"))
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(segments); i++ {
				if matchSegments(pattern[1:], segments[i:]) {
					return true
				}
			}
			return false
		}
		if len(segments) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], segments[0]); !ok {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}
