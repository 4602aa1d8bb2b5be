package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"guardrail/pkg/detector"
	"guardrail/pkg/testmap"
	"guardrail/pkg/util"
)

var testsCmd = &cobra.Command{
	Use:   "tests FILE",
	Short: "Show where a file's tests belong",
	Long: `Tests maps a source file to its test conventions on the detected stack:
whether a test is required, whether one already exists, which directories
and suffixes are searched, and the command that runs that ecosystem's tests.

The file does not have to exist yet; asking before creating it is the point.`,
	Args: cobra.ExactArgs(1),
	Run:  runTestsCommand,
}

// testsVerdict is the JSON shape for automation.
type testsVerdict struct {
	File     string              `json:"file"`
	Stack    detector.StackLabel `json:"stack"`
	Required bool                `json:"required"`
	Exempt   bool                `json:"exempt"`
	TestFile string              `json:"test_file,omitempty"`
	Set      testmap.LocationSet `json:"locations"`
}

func runTestsCommand(cmd *cobra.Command, args []string) {
	abs, err := filepath.Abs(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	root, err := util.FindRoot(filepath.Dir(abs))
	if err != nil {
		// The file may not exist yet; fall back to the working directory.
		if root, err = util.FindRoot("."); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		fmt.Fprintf(os.Stderr, "Error: '%s' is outside the project root '%s'\n", args[0], root)
		os.Exit(1)
	}
	rel = filepath.ToSlash(rel)

	cfg := loadConfigOrExit(root)
	fsys := os.DirFS(root)

	det := detector.Detect(fsys, overrideLabel(cfg))
	set := testmap.LocationsFor(fsys, det.Stack)

	exempt := testmap.Exempt(rel, det.Stack, cfg.Exempt)
	required := cfg.TestsRequired() && testmap.RequiresTest(set, rel) && !exempt
	testFile, found := testmap.FindTestFile(fsys, set, rel)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(testsVerdict{
			File:     rel,
			Stack:    det.Stack,
			Required: required,
			Exempt:   exempt,
			TestFile: testFile,
			Set:      set,
		})
		return
	}

	fmt.Printf("file:     %s\n", rel)
	fmt.Printf("stack:    %s\n", det.Stack)
	switch {
	case exempt:
		fmt.Printf("required: no (exempt)\n")
	case required:
		fmt.Printf("required: yes\n")
	default:
		fmt.Printf("required: no\n")
	}
	if found {
		fmt.Printf("test:     %s\n", testFile)
	} else {
		fmt.Printf("test:     not found\n")
	}

	fmt.Printf("\nbackend tests:  %s (%s)\n", strings.Join(set.Backend.Dirs, ", "), set.Backend.Command)
	if set.HasFrontend() {
		fmt.Printf("frontend tests: %s (%s)\n", strings.Join(set.Frontend.Dirs, ", "), set.Frontend.Command)
	}
}
