package runner

import (
	"io/fs"

	"guardrail/pkg/detector"
	"guardrail/pkg/testmap"
)

// Ecosystems a tool belongs to.
const (
	EcosystemBackend  = "backend"
	EcosystemFrontend = "frontend"
)

// Tool is one external invocation guardrail delegates to.
type Tool struct {
	Name      string   `json:"name"`
	Ecosystem string   `json:"ecosystem"`
	Command   string   `json:"command"`
	Args      []string `json:"args,omitempty"`
}

// Argv returns the full command line, for display.
func (t Tool) Argv() []string {
	return append([]string{t.Command}, t.Args...)
}

// PlanFor assembles the tool plan for a label by inspecting what the project
// has installed or configured. The order is fixed: backend linters first,
// then frontend linters, then the frontend test runner. A label outside the
// closed set plans nothing.
func PlanFor(fsys fs.FS, label detector.StackLabel) []Tool {
	exists := func(name string) bool {
		_, err := fs.Stat(fsys, name)
		return err == nil
	}
	existsAny := func(names ...string) bool {
		for _, name := range names {
			if exists(name) {
				return true
			}
		}
		return false
	}

	var tools []Tool

	if label.Backend() {
		if exists("vendor/bin/pint") || exists("pint.json") {
			tools = append(tools, Tool{
				Name: "pint", Ecosystem: EcosystemBackend,
				Command: "vendor/bin/pint", Args: []string{"--test"},
			})
		}
		if exists("vendor/bin/phpstan") || existsAny("phpstan.neon", "phpstan.neon.dist", "phpstan.dist.neon") {
			tools = append(tools, Tool{
				Name: "phpstan", Ecosystem: EcosystemBackend,
				Command: "vendor/bin/phpstan", Args: []string{"analyse", "--no-progress"},
			})
		}
		if exists("vendor/bin/rector") || exists("rector.php") {
			tools = append(tools, Tool{
				Name: "rector", Ecosystem: EcosystemBackend,
				Command: "vendor/bin/rector", Args: []string{"process", "--dry-run"},
			})
		}
	}

	if label.Frontend() {
		facts := detector.GatherFacts(fsys)
		pm := testmap.DetectPackageManager(fsys)

		if existsAny("eslint.config.js", "eslint.config.mjs", "eslint.config.ts", ".eslintrc.js", ".eslintrc.cjs", ".eslintrc.json") ||
			facts.HasFrontendPackage("eslint") {
			tools = append(tools, toolFromArgv("eslint", EcosystemFrontend, pm.Exec("eslint", ".")))
		}
		if existsAny(".prettierrc", ".prettierrc.json", ".prettierrc.yml", "prettier.config.js", "prettier.config.mjs") ||
			facts.HasFrontendPackage("prettier") {
			tools = append(tools, toolFromArgv("prettier", EcosystemFrontend, pm.Exec("prettier", "--check", ".")))
		}

		switch {
		case existsAny("vitest.config.ts", "vitest.config.js", "vitest.config.mts") || facts.HasFrontendPackage("vitest"):
			tools = append(tools, toolFromArgv("vitest", EcosystemFrontend, pm.Exec("vitest", "run")))
		case existsAny("jest.config.ts", "jest.config.js", "jest.config.mjs") || facts.HasFrontendPackage("jest"):
			tools = append(tools, toolFromArgv("jest", EcosystemFrontend, pm.Exec("jest")))
		}
	}

	return tools
}

func toolFromArgv(name, ecosystem string, argv []string) Tool {
	return Tool{Name: name, Ecosystem: ecosystem, Command: argv[0], Args: argv[1:]}
}
