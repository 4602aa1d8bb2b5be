package runner_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guardrail/pkg/detector"
	"guardrail/pkg/runner"
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
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	return os.DirFS(tmpDir)
}

func toolNames(tools []runner.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestPlanForBackend(t *testing.T) {
	fsys := projectFS(t, map[string]string{
		"vendor/bin/pint":    "",
		"vendor/bin/phpstan": "",
		"phpstan.neon":       "",
		"rector.php":         "<?php",
	})

	tools := runner.PlanFor(fsys, detector.Livewire)

	expected := []string{"pint", "phpstan", "rector"}
	if got := strings.Join(toolNames(tools), ","); got != strings.Join(expected, ",") {
		t.Errorf("expected plan %v, got %v", expected, toolNames(tools))
	}

	if tools[0].Command != "vendor/bin/pint" || tools[0].Args[0] != "--test" {
		t.Errorf("pint must run in test mode, got %v", tools[0].Argv())
	}
}

func TestPlanSkipsMissingTools(t *testing.T) {
	fsys := projectFS(t, map[string]string{
		"vendor/bin/pint": "",
	})

	tools := runner.PlanFor(fsys, detector.API)
	if len(tools) != 1 || tools[0].Name != "pint" {
		t.Errorf("expected only pint, got %v", toolNames(tools))
	}
}

func TestPlanForFrontendUsesPackageManager(t *testing.T) {
	fsys := projectFS(t, map[string]string{
		"vendor/bin/pint":  "",
		"pnpm-lock.yaml":   "",
		"eslint.config.js": "export default []",
		"vitest.config.ts": "export default {}",
		"package.json":     `{"devDependencies": {"eslint": "^9.0", "vitest": "^2.0"}}`,
	})

	tools := runner.PlanFor(fsys, detector.InertiaVue)

	expected := []string{"pint", "eslint", "vitest"}
	if got := strings.Join(toolNames(tools), ","); got != strings.Join(expected, ",") {
		t.Fatalf("expected plan %v, got %v", expected, toolNames(tools))
	}

	eslint := tools[1]
	if eslint.Command != "pnpm" || strings.Join(eslint.Args, " ") != "exec eslint ." {
		t.Errorf("eslint should run through pnpm, got %v", eslint.Argv())
	}
}

func TestPlanPrefersVitestOverJest(t *testing.T) {
	fsys := projectFS(t, map[string]string{
		"package.json": `{"devDependencies": {"vitest": "^2.0", "jest": "^29.0"}}`,
	})

	tools := runner.PlanFor(fsys, detector.InertiaReact)
	if len(tools) != 1 || tools[0].Name != "vitest" {
		t.Errorf("expected vitest to win, got %v", toolNames(tools))
	}
}

func TestPlanForUnknownLabelIsEmpty(t *testing.T) {
	fsys := projectFS(t, map[string]string{"vendor/bin/pint": ""})

	for _, label := range []detector.StackLabel{detector.None, detector.Unknown, detector.StackLabel("rails")} {
		if tools := runner.PlanFor(fsys, label); len(tools) != 0 {
			t.Errorf("%s: expected empty plan, got %v", label, toolNames(tools))
		}
	}
}

// fakeRunner records invocations and fails selected commands.
type fakeRunner struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)
	if f.fail[name] {
		return []byte("1 problem found"), errors.New("exit status 1")
	}
	return []byte("ok"), nil
}

func (f *fakeRunner) Exists(string) bool { return true }

func TestRunPlanContinuesPastFailures(t *testing.T) {
	tools := []runner.Tool{
		{Name: "pint", Ecosystem: runner.EcosystemBackend, Command: "vendor/bin/pint", Args: []string{"--test"}},
		{Name: "phpstan", Ecosystem: runner.EcosystemBackend, Command: "vendor/bin/phpstan", Args: []string{"analyse", "--no-progress"}},
	}
	fake := &fakeRunner{fail: map[string]bool{"vendor/bin/pint": true}}

	results := runner.RunPlan(context.Background(), fake, "/srv/shop", tools)

	if len(results) != 2 {
		t.Fatalf("expected both tools to run, got %d results", len(results))
	}
	if results[0].Passed {
		t.Error("failing tool should not pass")
	}
	if results[0].Output != "1 problem found" {
		t.Errorf("expected captured output, got %q", results[0].Output)
	}
	if !results[1].Passed {
		t.Error("second tool should still run and pass")
	}
	if len(fake.calls) != 2 {
		t.Errorf("expected 2 invocations, got %v", fake.calls)
	}
}

func TestRunPlanReportsErrorWhenNoOutput(t *testing.T) {
	tools := []runner.Tool{{Name: "missing", Command: "missing"}}
	results := runner.RunPlan(context.Background(), silentFailRunner{}, "", tools)

	if results[0].Passed {
		t.Error("expected failure")
	}
	if results[0].Output == "" {
		t.Error("expected the error text to stand in for missing output")
	}
}

// silentFailRunner emulates a binary that cannot even start.
type silentFailRunner struct{}

func (silentFailRunner) Run(context.Context, string, string, ...string) ([]byte, error) {
	return nil, errors.New("exec: not found")
}
func (silentFailRunner) Exists(string) bool { return false }
