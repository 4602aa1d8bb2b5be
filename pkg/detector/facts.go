package detector

import (
	"encoding/json"
	"io/fs"
	"sort"
)

// Manifest and marker files consulted during fact gathering.
const (
	MarkerFile       = "artisan"
	BackendManifest  = "composer.json"
	FrontendManifest = "package.json"
)

// ManifestFacts is an immutable snapshot of the manifest evidence a single
// invocation classifies from. Gathering never fails: an unreadable manifest is
// recorded as absent, a malformed one as present with no recognized packages.
type ManifestFacts struct {
	HasMarker        bool     `json:"has_artisan"`
	HasBackendDeps   bool     `json:"has_composer_json"`
	HasFrontendDeps  bool     `json:"has_package_json"`
	BackendPackages  []string `json:"backend_packages,omitempty"`
	FrontendPackages []string `json:"frontend_packages,omitempty"`
}

// HasBackendPackage reports whether composer.json declares the package in
// either require or require-dev.
func (f ManifestFacts) HasBackendPackage(name string) bool {
	return containsString(f.BackendPackages, name)
}

// HasFrontendPackage reports whether package.json declares the package in
// either dependencies or devDependencies.
func (f ManifestFacts) HasFrontendPackage(name string) bool {
	return containsString(f.FrontendPackages, name)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type composerManifest struct {
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// GatherFacts reads the marker file and both manifests once and returns the
// snapshot. It never returns an error; every failure degrades to weaker facts.
func GatherFacts(fsys fs.FS) ManifestFacts {
	facts := ManifestFacts{}

	if _, err := fs.Stat(fsys, MarkerFile); err == nil {
		facts.HasMarker = true
	}

	if raw, err := fs.ReadFile(fsys, BackendManifest); err == nil {
		facts.HasBackendDeps = true
		var m composerManifest
		if json.Unmarshal(raw, &m) == nil {
			facts.BackendPackages = packageNames(m.Require, m.RequireDev)
		}
	}

	if raw, err := fs.ReadFile(fsys, FrontendManifest); err == nil {
		facts.HasFrontendDeps = true
		var m packageManifest
		if json.Unmarshal(raw, &m) == nil {
			facts.FrontendPackages = packageNames(m.Dependencies, m.DevDependencies)
		}
	}

	return facts
}

func packageNames(sets ...map[string]string) []string {
	seen := map[string]bool{}
	var names []string
	for _, set := range sets {
		for name := range set {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
