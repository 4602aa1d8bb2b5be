package testmap

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"guardrail/pkg/detector"
	"guardrail/pkg/rules"
)

// MissingTestRule identifies the finding emitted when a source file that
// should have a test has none.
const MissingTestRule = "tests/missing-test"

type ecosystemKind int

const (
	ecosystemNone ecosystemKind = iota
	ecosystemBackend
	ecosystemFrontend
)

var frontendExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".vue": true, ".mjs": true, ".cjs": true,
}

func ecosystemOf(filePath string) ecosystemKind {
	ext := strings.ToLower(path.Ext(filePath))
	switch {
	case ext == ".php":
		return ecosystemBackend
	case frontendExtensions[ext]:
		return ecosystemFrontend
	}
	return ecosystemNone
}

// testNames returns the candidate test file names for a source file, in
// suffix preference order.
func testNames(eco Ecosystem, srcPath string) []string {
	base := strings.TrimSuffix(path.Base(srcPath), path.Ext(srcPath))
	names := make([]string, 0, len(eco.Suffixes))
	for _, suffix := range eco.Suffixes {
		names = append(names, base+suffix)
	}
	return names
}

// FindTestFile looks for an existing test that covers srcPath. Same-directory
// candidates are tried first when the ecosystem colocates tests, then each
// configured directory is walked lexically; the first hit wins. A missing
// directory is skipped, never an error.
func FindTestFile(fsys fs.FS, set LocationSet, srcPath string) (string, bool) {
	var eco Ecosystem
	switch ecosystemOf(srcPath) {
	case ecosystemBackend:
		eco = set.Backend
	case ecosystemFrontend:
		if !set.HasFrontend() {
			return "", false
		}
		eco = set.Frontend
	default:
		return "", false
	}

	names := testNames(eco, srcPath)

	if eco.SameDir {
		srcDir := path.Dir(srcPath)
		for _, name := range names {
			for _, candidate := range []string{path.Join(srcDir, name), path.Join(srcDir, "__tests__", name)} {
				if _, err := fs.Stat(fsys, candidate); err == nil {
					return candidate, true
				}
			}
		}
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	for _, dir := range eco.Dirs {
		if _, err := fs.Stat(fsys, dir); err != nil {
			continue
		}
		var found string
		fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && wanted[d.Name()] {
				found = p
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, true
		}
	}

	return "", false
}

var (
	backendSourceRoots  = []string{"app"}
	frontendSourceRoots = []string{"resources/js"}
)

func underAny(filePath string, roots []string) bool {
	clean := strings.TrimPrefix(path.Clean(filePath), "./")
	for _, root := range roots {
		if clean == root || strings.HasPrefix(clean, root+"/") {
			return true
		}
	}
	return false
}

// RequiresTest reports whether the set demands a test for this source file.
// Only files under the label's tracked source roots count, and frontend
// sources only when the label carries a frontend ecosystem.
func RequiresTest(set LocationSet, filePath string) bool {
	if !set.Required {
		return false
	}
	switch ecosystemOf(filePath) {
	case ecosystemBackend:
		return underAny(filePath, backendSourceRoots)
	case ecosystemFrontend:
		return set.HasFrontend() && underAny(filePath, frontendSourceRoots)
	}
	return false
}

// MissingTest checks one source file and reports a finding when a required
// test is absent. Exempt files and files with an existing test report nothing.
func MissingTest(fsys fs.FS, label detector.StackLabel, filePath string, extra []string) (rules.Finding, bool) {
	set := LocationsFor(fsys, label)

	if !RequiresTest(set, filePath) || Exempt(filePath, label, extra) {
		return rules.Finding{}, false
	}
	if _, ok := FindTestFile(fsys, set, filePath); ok {
		return rules.Finding{}, false
	}

	eco := set.Backend
	if ecosystemOf(filePath) == ecosystemFrontend {
		eco = set.Frontend
	}
	names := testNames(eco, filePath)

	return rules.Finding{
		Rule:     MissingTestRule,
		Severity: rules.Warn,
		Message:  fmt.Sprintf("no test found; expected %s under %s", names[0], strings.Join(eco.Dirs, " or ")),
		File:     filePath,
	}, true
}
