package detector

import "strings"

// StackLabel identifies the UI integration of a Laravel project.
type StackLabel string

const (
	// Livewire marks projects rendering through Livewire components.
	Livewire StackLabel = "livewire"
	// Filament marks admin panels built on Filament (a Livewire superset).
	Filament StackLabel = "filament"
	// Inertia marks Inertia.js projects whose frontend adapter is undetermined.
	Inertia StackLabel = "inertia"
	// InertiaVue and InertiaReact refine Inertia by frontend adapter.
	InertiaVue   StackLabel = "inertia-vue"
	InertiaReact StackLabel = "inertia-react"
	// API marks Laravel backends with no recognized UI integration.
	API StackLabel = "api"
	// None marks directories that are not a Laravel project at all.
	None StackLabel = "none"
	// Unknown is the defensive default; it never results from normal classification.
	Unknown StackLabel = "unknown"
)

// Labels returns the closed label set.
func Labels() []StackLabel {
	return []StackLabel{Livewire, Filament, Inertia, InertiaVue, InertiaReact, API, None, Unknown}
}

// ParseLabel normalizes raw input into the closed label set. Anything outside
// the set maps to Unknown with ok=false.
func ParseLabel(raw string) (StackLabel, bool) {
	label := StackLabel(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Labels() {
		if label == known {
			return label, true
		}
	}
	return Unknown, false
}

// ParseOverride maps an explicit stack selection from config or environment
// into a label Classify will honor. Empty or unclassifiable input yields
// ok=false, so callers fall back to manifest evidence.
func ParseOverride(raw string) (StackLabel, bool) {
	label, ok := ParseLabel(raw)
	if !ok || !label.Classifiable() {
		return Unknown, false
	}
	return label, true
}

func (l StackLabel) String() string {
	return string(l)
}

// Known reports whether the label is a member of the closed set.
func (l StackLabel) Known() bool {
	_, ok := ParseLabel(string(l))
	return ok
}

// Classifiable reports whether the label is a valid classification result a
// caller may force via override. Unknown is reserved for the defensive default.
func (l StackLabel) Classifiable() bool {
	return l.Known() && l != Unknown
}

// Backend reports whether the label implies a PHP backend.
func (l StackLabel) Backend() bool {
	switch l {
	case Livewire, Filament, Inertia, InertiaVue, InertiaReact, API:
		return true
	}
	return false
}

// Frontend reports whether the label implies a JavaScript frontend ecosystem.
func (l StackLabel) Frontend() bool {
	return l == InertiaVue || l == InertiaReact
}
