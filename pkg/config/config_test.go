package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, files map[string]string) string {
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

	return tmpDir
}

// isolateUserConfig keeps the developer's real ~/.config out of tests.
func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolateUserConfig(t)
	root := writeProject(t, nil)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Stack != "" {
		t.Errorf("expected no stack override by default, got %q", cfg.Stack)
	}
	if !cfg.TestsRequired() {
		t.Error("tests are required by default")
	}
	if cfg.RulesFile != DefaultRulesFile {
		t.Errorf("expected default rules file, got %q", cfg.RulesFile)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("expected text output, got %q", cfg.Output.Format)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	isolateUserConfig(t)
	root := writeProject(t, map[string]string{
		".guardrail.yml": `stack: livewire
require_tests: false
exempt:
  - app/Generated/**
disabled_rules:
  - php/prefer-enums
output:
  format: json
`,
	})

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Stack != "livewire" {
		t.Errorf("expected stack livewire, got %q", cfg.Stack)
	}
	if cfg.TestsRequired() {
		t.Error("project config disabled required tests")
	}
	if len(cfg.Exempt) != 1 || cfg.Exempt[0] != "app/Generated/**" {
		t.Errorf("unexpected exempt globs: %v", cfg.Exempt)
	}
	if len(cfg.DisabledRules) != 1 || cfg.DisabledRules[0] != "php/prefer-enums" {
		t.Errorf("unexpected disabled rules: %v", cfg.DisabledRules)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("expected json output, got %q", cfg.Output.Format)
	}
}

func TestLoadFindsConfigInParent(t *testing.T) {
	isolateUserConfig(t)
	root := writeProject(t, map[string]string{
		".guardrail.yml":        "stack: filament\n",
		"app/Livewire/.gitkeep": "",
	})

	cfg, err := Load(filepath.Join(root, "app", "Livewire"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Stack != "filament" {
		t.Errorf("expected parent config to apply, got stack %q", cfg.Stack)
	}
}

func TestLoadMalformedProjectConfig(t *testing.T) {
	isolateUserConfig(t)
	root := writeProject(t, map[string]string{
		".guardrail.yml": "stack: [unclosed\n",
	})

	if _, err := Load(root); err == nil {
		t.Fatal("expected an error for malformed project config")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	isolateUserConfig(t)
	root := writeProject(t, map[string]string{
		".guardrail.yml": "output:\n  format: xml\n",
	})

	if _, err := Load(root); err == nil {
		t.Fatal("expected an error for unknown output format")
	}
}

func TestEnvOverridesProjectConfig(t *testing.T) {
	isolateUserConfig(t)
	root := writeProject(t, map[string]string{
		".guardrail.yml": "stack: livewire\n",
	})

	t.Setenv("GUARDRAIL_STACK", "inertia-react")
	t.Setenv("GUARDRAIL_RULES_FILE", "custom/rules.yml")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Stack != "inertia-react" {
		t.Errorf("expected env to outrank project config, got %q", cfg.Stack)
	}
	if cfg.RulesFile != "custom/rules.yml" {
		t.Errorf("expected env rules file, got %q", cfg.RulesFile)
	}
}

func TestEnvRequireTests(t *testing.T) {
	isolateUserConfig(t)
	root := writeProject(t, nil)

	t.Setenv("GUARDRAIL_REQUIRE_TESTS", "false")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TestsRequired() {
		t.Error("expected GUARDRAIL_REQUIRE_TESTS=false to disable the check")
	}
}
