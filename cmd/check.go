package cmd

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"guardrail/cmd/ui/results"
	"guardrail/pkg/changes"
	"guardrail/pkg/config"
	"guardrail/pkg/detector"
	"guardrail/pkg/report"
	"guardrail/pkg/rules"
	"guardrail/pkg/runner"
	"guardrail/pkg/testmap"
)

var (
	diffInput bool
	runTools  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [PROJECT_PATH] [FILES...]",
	Short: "Run stack-aware checks over source files",
	Long: `Check evaluates the detected stack's rules against source files and reports
findings by severity. Files can be named directly, read from a unified diff
on stdin (--diff), or defaulted to the stack's source roots.

Only error findings fail the run; warnings and infos annotate without
blocking. With --tools, the external tool plan for the stack (pint, phpstan,
rector, eslint, prettier, vitest/jest) also runs, and a failing tool fails
the run.`,
	Args: cobra.ArbitraryArgs,
	Run:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	started := time.Now()

	path, fileArgs := splitPathArgs(args)
	root := resolveProjectOrExit([]string{path})
	cfg := loadConfigOrExit(root)
	fsys := os.DirFS(root)

	det := detector.Detect(fsys, overrideLabel(cfg))

	ruleSet, err := effectiveRules(root, det.Stack, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading custom rules: %v\n", err)
		os.Exit(1)
	}

	files, err := collectFiles(fsys, det.Stack, root, fileArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	findings := evaluateFiles(fsys, files, ruleSet, det.Stack, cfg)
	rep := report.Build(root, det, findings, len(files), started)

	var toolResults []runner.Result
	if runTools {
		plan := runner.PlanFor(fsys, det.Stack)
		toolResults = runner.RunPlan(cmd.Context(), runner.ExecRunner{}, root, plan)
	}

	renderCheck(cfg, rep, toolResults)

	failed := !rep.Passed()
	for _, res := range toolResults {
		if !res.Passed {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// splitPathArgs decides whether the first argument is the project path or
// the first file to check.
func splitPathArgs(args []string) (string, []string) {
	if len(args) == 0 {
		return ".", nil
	}
	if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
		return args[0], args[1:]
	}
	return ".", args
}

// collectFiles resolves what to check: the diff on stdin, the named files,
// or the stack's default source roots.
func collectFiles(fsys fs.FS, label detector.StackLabel, root string, args []string) ([]string, error) {
	if diffInput {
		paths, err := changes.FromDiff(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("parsing diff: %w", err)
		}
		return existing(fsys, paths), nil
	}

	if len(args) > 0 {
		var rels []string
		for _, arg := range args {
			rel, ok := relativize(root, arg)
			if !ok {
				logger.Warn("skipping file outside the project root", zap.String("path", arg))
				continue
			}
			rels = append(rels, rel)
		}
		return existing(fsys, rels), nil
	}

	return defaultTargets(fsys, label), nil
}

// relativize turns a file argument into a root-relative slash path. Relative
// arguments are taken as relative to the project root.
func relativize(root, path string) (string, bool) {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", false
		}
		return filepath.ToSlash(rel), true
	}

	rel := filepath.ToSlash(filepath.Clean(path))
	if strings.HasPrefix(rel, "..") {
		return "", false
	}
	return rel, true
}

func existing(fsys fs.FS, paths []string) []string {
	reader := detector.NewFSReader(fsys)
	var out []string
	for _, p := range paths {
		if !reader.Has(p) {
			logger.Warn("skipping missing file", zap.String("path", p))
			continue
		}
		out = append(out, p)
	}
	return out
}

var checkExtensions = map[string]bool{
	".php": true,
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".vue": true,
}

// defaultTargets walks the label's source roots when no files are named:
// app/ for PHP, the Blade views for Livewire-family stacks, resources/js for
// frontend stacks.
func defaultTargets(fsys fs.FS, label detector.StackLabel) []string {
	var roots []string
	if label.Backend() {
		roots = append(roots, "app")
	}
	switch label {
	case detector.Livewire, detector.Filament:
		roots = append(roots, "resources/views")
	}
	if label.Frontend() {
		roots = append(roots, "resources/js")
	}

	var files []string
	for _, dir := range roots {
		fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if checkExtensions[filepath.Ext(path)] {
				files = append(files, path)
			}
			return nil
		})
	}
	return files
}

// evaluateFiles runs the rule set over every file in parallel. Results land
// in per-file slots so output never depends on scheduling.
func evaluateFiles(fsys fs.FS, files []string, ruleSet []rules.Rule, label detector.StackLabel, cfg *config.Config) []rules.Finding {
	reader := detector.NewFSReader(fsys)
	perFile := make([][]rules.Finding, len(files))

	var g errgroup.Group
	g.SetLimit(8)
	for i, rel := range files {
		g.Go(func() error {
			content := reader.Read(rel)
			found := rules.Evaluate(rel, content, ruleSet)
			if cfg.TestsRequired() {
				if f, missing := testmap.MissingTest(fsys, label, rel, cfg.Exempt); missing {
					found = append(found, f)
				}
			}
			perFile[i] = found
			return nil
		})
	}
	g.Wait()

	var all []rules.Finding
	for _, found := range perFile {
		all = append(all, found...)
	}
	return all
}

func renderCheck(cfg *config.Config, rep report.Report, toolResults []runner.Result) {
	if jsonOutput || cfg.Output.Format == config.FormatJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if runTools {
			enc.Encode(struct {
				Report report.Report   `json:"report"`
				Tools  []runner.Result `json:"tools"`
			}{rep, toolResults})
			return
		}
		enc.Encode(rep)
		return
	}

	fmt.Println(results.RenderReport(rep))
	if runTools {
		fmt.Println()
		fmt.Println(results.RenderToolResults(toolResults))
	}
}

func init() {
	checkCmd.Flags().BoolVar(&diffInput, "diff", false, "Read a unified diff from stdin and check the touched files")
	checkCmd.Flags().BoolVar(&runTools, "tools", false, "Also run the stack's external tool plan")
}
