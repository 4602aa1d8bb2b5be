package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// detectCmd classifies a project and prints nothing else, for scripts and
// pipelines that only want the label.
var detectCmd = &cobra.Command{
	Use:   "detect [PROJECT_PATH]",
	Short: "Classify the project's stack",
	Long: `Classify a Laravel project by its manifests: composer.json packages decide
between Filament, Livewire, and Inertia; package.json refines Inertia by
frontend adapter; a project with no recognized integration is an API.

Use --stack to force a label instead of detecting one.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) {
	root := resolveProjectOrExit(args)
	cfg := loadConfigOrExit(root)

	det := detectStack(root, cfg)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(det)
		return
	}

	fmt.Printf("stack:  %s\n", det.Stack)
	fmt.Printf("source: %s\n", det.Source)
	for _, signal := range det.Signals {
		fmt.Printf("  - %s\n", signal)
	}
}
