package cmd

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"guardrail/pkg/detector"
	"guardrail/pkg/envfile"
	"guardrail/pkg/runner"
	"guardrail/pkg/testmap"
)

const (
	statusPass = "pass"
	statusWarn = "warn"
	statusFail = "fail"
)

var (
	passMark = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true).Render("✓")
	warnMark = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true).Render("!")
	failMark = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render("✗")
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [PROJECT_PATH]",
	Short: "Diagnose the project's readiness for checks",
	Long: `Doctor inspects the project the way every other command will: do the
manifests parse, is there an .env with an APP_KEY, are dependencies
installed, and which external tools are configured. Warnings don't fail
the diagnosis; broken prerequisites do.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDoctor,
}

// diagnosis is one named probe result.
type diagnosis struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) {
	root := resolveProjectOrExit(args)
	cfg := loadConfigOrExit(root)
	fsys := os.DirFS(root)
	reader := detector.NewFSReader(fsys)

	det := detector.Detect(fsys, overrideLabel(cfg))

	checks := []diagnosis{classificationCheck(det)}
	checks = append(checks, manifestCheck(reader, "composer.json", true))
	checks = append(checks, manifestCheck(reader, "package.json", false))
	checks = append(checks, envCheck(root))
	checks = append(checks, dependencyChecks(reader, fsys)...)
	checks = append(checks, toolsCheck(fsys, det.Stack))

	failed := false
	for _, c := range checks {
		if c.Status == statusFail {
			failed = true
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(checks)
	} else {
		fmt.Printf("guardrail doctor: %s\n\n", root)
		for _, c := range checks {
			mark := passMark
			switch c.Status {
			case statusWarn:
				mark = warnMark
			case statusFail:
				mark = failMark
			}
			fmt.Printf("  %s %-14s %s\n", mark, c.Name, c.Detail)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func classificationCheck(det detector.Detection) diagnosis {
	switch det.Stack {
	case detector.None:
		return diagnosis{Name: "stack", Status: statusFail, Detail: "no Laravel project here (no artisan, no composer.json)"}
	case detector.Unknown:
		return diagnosis{Name: "stack", Status: statusFail, Detail: "classification failed"}
	}
	return diagnosis{Name: "stack", Status: statusPass, Detail: fmt.Sprintf("%s (from %s)", det.Stack, det.Source)}
}

// manifestCheck verifies a manifest both exists and parses. Detection folds
// malformed JSON into a softer answer; doctor is where it becomes visible.
func manifestCheck(reader *detector.FSReader, name string, required bool) diagnosis {
	if !reader.Has(name) {
		if required {
			return diagnosis{Name: name, Status: statusFail, Detail: "not found"}
		}
		return diagnosis{Name: name, Status: statusWarn, Detail: "not found (no frontend ecosystem)"}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(reader.Read(name)), &doc); err != nil {
		return diagnosis{Name: name, Status: statusFail, Detail: fmt.Sprintf("does not parse: %v", err)}
	}
	return diagnosis{Name: name, Status: statusPass, Detail: "parses"}
}

func envCheck(root string) diagnosis {
	env, err := envfile.Load(filepath.Join(root, ".env"))
	if err != nil {
		return diagnosis{Name: ".env", Status: statusFail, Detail: "not readable; copy .env.example and configure it"}
	}
	if env.Get("APP_KEY") == "" {
		return diagnosis{Name: ".env", Status: statusFail, Detail: "APP_KEY is empty; run 'php artisan key:generate'"}
	}
	return diagnosis{Name: ".env", Status: statusPass, Detail: fmt.Sprintf("%d keys, APP_KEY set", len(env.Keys()))}
}

func dependencyChecks(reader *detector.FSReader, fsys fs.FS) []diagnosis {
	var out []diagnosis

	if reader.Has("composer.json") {
		if reader.DirExists("vendor") {
			out = append(out, diagnosis{Name: "vendor/", Status: statusPass, Detail: "composer dependencies installed"})
		} else {
			out = append(out, diagnosis{Name: "vendor/", Status: statusFail, Detail: "missing; run 'composer install'"})
		}
	}

	if reader.Has("package.json") {
		if reader.DirExists("node_modules") {
			out = append(out, diagnosis{Name: "node_modules/", Status: statusPass, Detail: "frontend dependencies installed"})
		} else {
			pm := testmap.DetectPackageManager(fsys)
			out = append(out, diagnosis{Name: "node_modules/", Status: statusFail, Detail: fmt.Sprintf("missing; run '%s install'", pm)})
		}
	}

	return out
}

func toolsCheck(fsys fs.FS, label detector.StackLabel) diagnosis {
	plan := runner.PlanFor(fsys, label)
	if len(plan) == 0 {
		return diagnosis{Name: "tools", Status: statusWarn, Detail: "no tool configs found (pint, phpstan, rector, eslint, prettier)"}
	}

	names := make([]string, 0, len(plan))
	for _, tool := range plan {
		names = append(names, tool.Name)
	}
	return diagnosis{Name: "tools", Status: statusPass, Detail: strings.Join(names, ", ")}
}
