// Package testmap decides where a stack keeps its tests, which source files
// must have one, and which external command runs them. Like classification it
// never fails: labels without an entry get a generic best-effort set.
package testmap

import (
	"io/fs"
	"strings"

	"guardrail/pkg/detector"
)

// Ecosystem holds one toolchain's test conventions.
type Ecosystem struct {
	Dirs     []string `json:"dirs,omitempty"`     // candidate test directories, in search order
	Suffixes []string `json:"suffixes,omitempty"` // base-name suffix conventions, in preference order
	SameDir  bool     `json:"same_dir,omitempty"` // also look beside the source and in a sibling __tests__
	Command  string   `json:"command,omitempty"`  // external test invocation
}

// LocationSet is the per-label test-location record.
type LocationSet struct {
	Label    detector.StackLabel `json:"label"`
	Backend  Ecosystem           `json:"backend"`
	Frontend Ecosystem           `json:"frontend"`
	Required bool                `json:"required"`
}

// HasFrontend reports whether the set tracks a JavaScript test ecosystem.
func (s LocationSet) HasFrontend() bool {
	return len(s.Frontend.Dirs) > 0 || s.Frontend.SameDir
}

func backendEcosystem() Ecosystem {
	return Ecosystem{
		Dirs:     []string{"tests/Feature", "tests/Unit"},
		Suffixes: []string{"Test.php"},
		Command:  "php artisan test",
	}
}

func frontendEcosystem() Ecosystem {
	return Ecosystem{
		Dirs:    []string{"resources/js/__tests__", "resources/js/tests"},
		SameDir: true,
		Suffixes: []string{
			".test.ts", ".test.tsx", ".test.js", ".test.jsx",
			".spec.ts", ".spec.tsx", ".spec.js", ".spec.jsx",
		},
	}
}

// genericEcosystem is what unregistered labels fall back to. Best-effort: no
// command, nothing required.
func genericEcosystem() Ecosystem {
	return Ecosystem{
		Dirs:     []string{"tests/Unit", "tests/Feature"},
		Suffixes: []string{"Test.php"},
	}
}

// LocationsFor returns the test-location set for a label. The filesystem is
// consulted only to resolve the frontend test command from the project's
// lockfiles; everything else is static. Unknown labels degrade to the generic
// set rather than erroring.
func LocationsFor(fsys fs.FS, label detector.StackLabel) LocationSet {
	set := LocationSet{Label: label}

	switch label {
	case detector.Livewire, detector.Filament, detector.Inertia, detector.API:
		set.Backend = backendEcosystem()
		set.Required = true

	case detector.InertiaVue, detector.InertiaReact:
		set.Backend = backendEcosystem()
		set.Frontend = frontendEcosystem()
		set.Frontend.Command = strings.Join(DetectPackageManager(fsys).RunScript("test"), " ")
		set.Required = true

	default:
		set.Backend = genericEcosystem()
	}

	return set
}
