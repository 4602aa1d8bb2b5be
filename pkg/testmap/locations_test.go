package testmap_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guardrail/pkg/detector"
	"guardrail/pkg/testmap"
)

func projectFS(t *testing.T, files map[string]string) fs.FS {
	t.Helper()
	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file %s: %v", path, err)
		}
	}

	return os.DirFS(tmpDir)
}

func TestLocationsForBackendLabels(t *testing.T) {
	fsys := projectFS(t, nil)

	for _, label := range []detector.StackLabel{detector.Livewire, detector.Filament, detector.Inertia, detector.API} {
		set := testmap.LocationsFor(fsys, label)

		if !set.Required {
			t.Errorf("%s: expected tests to be required", label)
		}
		if set.Backend.Command != "php artisan test" {
			t.Errorf("%s: expected artisan test command, got %q", label, set.Backend.Command)
		}
		if len(set.Backend.Dirs) == 0 || set.Backend.Dirs[0] != "tests/Feature" {
			t.Errorf("%s: expected tests/Feature first, got %v", label, set.Backend.Dirs)
		}
		if set.HasFrontend() {
			t.Errorf("%s: backend-only label should not track a frontend ecosystem", label)
		}
	}
}

func TestLocationsForFrontendLabels(t *testing.T) {
	tests := []struct {
		name            string
		files           map[string]string
		expectedCommand string
	}{
		{"npm fallback", nil, "npm run test"},
		{"pnpm lockfile", map[string]string{"pnpm-lock.yaml": ""}, "pnpm run test"},
		{"yarn lockfile", map[string]string{"yarn.lock": ""}, "yarn test"},
		{"bun lockfile", map[string]string{"bun.lockb": ""}, "bun run test"},
		{"bun beats pnpm", map[string]string{"bun.lock": "", "pnpm-lock.yaml": ""}, "bun run test"},
		{"pnpm beats yarn", map[string]string{"pnpm-lock.yaml": "", "yarn.lock": ""}, "pnpm run test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := projectFS(t, tt.files)

			for _, label := range []detector.StackLabel{detector.InertiaVue, detector.InertiaReact} {
				set := testmap.LocationsFor(fsys, label)

				if !set.HasFrontend() {
					t.Fatalf("%s: expected a frontend ecosystem", label)
				}
				if set.Frontend.Command != tt.expectedCommand {
					t.Errorf("%s: expected command %q, got %q", label, tt.expectedCommand, set.Frontend.Command)
				}
				if !set.Frontend.SameDir {
					t.Errorf("%s: frontend tests should also be looked up beside the source", label)
				}
				if set.Backend.Command != "php artisan test" {
					t.Errorf("%s: inertia adapters still run backend tests", label)
				}
			}
		})
	}
}

func TestLocationsForUnknownLabelDegrades(t *testing.T) {
	fsys := projectFS(t, nil)

	for _, label := range []detector.StackLabel{detector.None, detector.Unknown, detector.StackLabel("rails")} {
		set := testmap.LocationsFor(fsys, label)

		if set.Required {
			t.Errorf("%s: generic set must not require tests", label)
		}
		if len(set.Backend.Dirs) != 2 || set.Backend.Dirs[0] != "tests/Unit" {
			t.Errorf("%s: expected generic {tests/Unit, tests/Feature}, got %v", label, set.Backend.Dirs)
		}
		if set.Backend.Command != "" {
			t.Errorf("%s: generic set has no authoritative command, got %q", label, set.Backend.Command)
		}
	}
}

func TestPackageManagerExec(t *testing.T) {
	tests := []struct {
		pm       testmap.PackageManager
		expected string
	}{
		{testmap.Npm, "npx eslint ."},
		{testmap.Pnpm, "pnpm exec eslint ."},
		{testmap.Yarn, "yarn eslint ."},
		{testmap.Bun, "bunx eslint ."},
	}

	for _, tt := range tests {
		argv := tt.pm.Exec("eslint", ".")
		if got := strings.Join(argv, " "); got != tt.expected {
			t.Errorf("%s.Exec = %q, expected %q", tt.pm, got, tt.expected)
		}
	}
}
