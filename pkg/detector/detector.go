package detector

import (
	"fmt"
	"io/fs"
)

// Backend packages that mark a stack integration, in precedence order.
const (
	PackageFilament       = "filament/filament"
	PackageLivewire       = "livewire/livewire"
	PackageInertiaLaravel = "inertiajs/inertia-laravel"
)

// Frontend packages that refine the generic inertia label.
const (
	PackageInertiaVue   = "@inertiajs/vue3"
	PackageInertiaReact = "@inertiajs/react"
)

// Detection sources.
const (
	SourceOverride = "override"
	SourceManifest = "manifest"
)

// Detection is the result of classifying a project.
type Detection struct {
	Stack   StackLabel    `json:"stack"`
	Source  string        `json:"source"`
	Signals []string      `json:"signals"`
	Facts   ManifestFacts `json:"facts"`
}

// Detect gathers manifest facts from fsys and classifies them. The override,
// when classifiable, short-circuits manifest evidence entirely.
func Detect(fsys fs.FS, override StackLabel) Detection {
	return Classify(GatherFacts(fsys), override)
}

// Classify maps a fact snapshot to a stack label. It is pure: same facts and
// override always yield the same detection, and no filesystem access happens
// here. Precedence is first-match-wins:
//
//	override > none > filament > livewire > inertia(-vue/-react) > api
//
// An unclassifiable override is silently ignored rather than reported.
func Classify(facts ManifestFacts, override StackLabel) Detection {
	if override.Classifiable() {
		return Detection{
			Stack:   override,
			Source:  SourceOverride,
			Signals: []string{fmt.Sprintf("stack forced to %q", override)},
			Facts:   facts,
		}
	}

	det := Detection{Source: SourceManifest, Facts: facts}

	if !facts.HasMarker && !facts.HasBackendDeps {
		det.Stack = None
		det.Signals = []string{"no artisan", "no composer.json"}
		return det
	}

	if facts.HasMarker {
		det.Signals = append(det.Signals, "artisan")
	}

	switch {
	case facts.HasBackendPackage(PackageFilament):
		det.Stack = Filament
		det.Signals = append(det.Signals, "composer.json: "+PackageFilament)

	case facts.HasBackendPackage(PackageLivewire):
		det.Stack = Livewire
		det.Signals = append(det.Signals, "composer.json: "+PackageLivewire)

	case facts.HasBackendPackage(PackageInertiaLaravel):
		det.Signals = append(det.Signals, "composer.json: "+PackageInertiaLaravel)
		det.Stack, det.Signals = refineInertia(facts, det.Signals)

	case facts.HasMarker || facts.HasBackendDeps:
		det.Stack = API
		det.Signals = append(det.Signals, "no recognized UI integration")

	default:
		// Unreachable: the none branch above covers the remaining case.
		det.Stack = Unknown
	}

	return det
}

// refineInertia narrows the generic inertia label by frontend adapter. A
// missing, unreadable, or unrecognized frontend manifest keeps the generic
// label; it never fails the classification.
func refineInertia(facts ManifestFacts, signals []string) (StackLabel, []string) {
	switch {
	case facts.HasFrontendPackage(PackageInertiaVue):
		return InertiaVue, append(signals, "package.json: "+PackageInertiaVue)
	case facts.HasFrontendPackage(PackageInertiaReact):
		return InertiaReact, append(signals, "package.json: "+PackageInertiaReact)
	}
	return Inertia, append(signals, "no frontend adapter resolved")
}
