package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"guardrail/cmd/ui/results"
	"guardrail/pkg/detector"
	"guardrail/pkg/report"
	"guardrail/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [PROJECT_PATH]",
	Short: "Re-check files as they change",
	Long: `Watch follows the project tree (minus vendor, node_modules, storage, and
build output), batches filesystem events, and re-checks each batch's files.

A change to composer.json, package.json, or artisan re-detects the stack, so
installing Livewire mid-session switches the active rule set.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
	root := resolveProjectOrExit(args)
	cfg := loadConfigOrExit(root)
	fsys := os.DirFS(root)

	det := detector.Detect(fsys, overrideLabel(cfg))
	ruleSet, err := effectiveRules(root, det.Stack, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading custom rules: %v\n", err)
		os.Exit(1)
	}

	w, err := watcher.New(root, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("watching %s (%s stack, %d rules), Ctrl-C to stop\n", root, det.Stack, len(ruleSet))

	err = w.Run(ctx, func(batch watcher.Batch) {
		if batch.ManifestChanged {
			newDet := detector.Detect(os.DirFS(root), overrideLabel(cfg))
			if newDet.Stack != det.Stack {
				fmt.Printf("\nstack changed: %s is now %s\n", det.Stack, newDet.Stack)
				if newSet, err := effectiveRules(root, newDet.Stack, cfg); err == nil {
					ruleSet = newSet
				}
			}
			det = newDet
		}

		files := checkable(batch.Paths)
		if len(files) == 0 {
			return
		}

		started := time.Now()
		fsys := os.DirFS(root)
		findings := evaluateFiles(fsys, files, ruleSet, det.Stack, cfg)
		rep := report.Build(root, det, findings, len(files), started)

		fmt.Println()
		fmt.Println(results.RenderReport(rep))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching: %v\n", err)
		os.Exit(1)
	}
}

// checkable filters a batch down to the file types rules understand.
func checkable(paths []string) []string {
	var out []string
	for _, p := range paths {
		if checkExtensions[filepath.Ext(p)] {
			out = append(out, p)
		}
	}
	return out
}
