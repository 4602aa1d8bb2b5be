package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"guardrail/pkg/config"
	"guardrail/pkg/detector"
	"guardrail/pkg/hook"
	"guardrail/pkg/report"
	"guardrail/pkg/util"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Check one edited file from an agent hook event",
	Long: `Hook reads a JSON edit event from stdin (the agent hook contract: the tool
name, the edited file path, and the working directory), checks the file on
the detected stack, and blocks the edit with exit code 2 when an error
finding turns up.

Nothing else ever blocks: advisory findings, unreadable events, and internal
failures all allow the edit, because a broken hook must not stop a session.
With --json the verdict is printed as {"decision": ..., "reason": ...}
instead of using the exit code.`,
	Args: cobra.NoArgs,
	Run:  runHook,
}

func runHook(cmd *cobra.Command, args []string) {
	ev, err := hook.ParseEvent(os.Stdin)
	if err != nil {
		allowHook(fmt.Sprintf("unreadable hook event: %v", err))
		return
	}

	path := ev.Path()
	if path == "" {
		allowHook("")
		return
	}

	start := ev.Cwd
	if start == "" {
		if start, err = os.Getwd(); err != nil {
			allowHook(fmt.Sprintf("no working directory: %v", err))
			return
		}
	}

	root, err := util.FindRoot(start)
	if err != nil {
		allowHook(fmt.Sprintf("cannot resolve project root: %v", err))
		return
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(start, abs)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		// The edit is outside the project; nothing to check.
		allowHook("")
		return
	}
	rel = filepath.ToSlash(rel)

	cfg, err := config.Load(root)
	if err != nil {
		allowHook(fmt.Sprintf("configuration error: %v", err))
		return
	}

	fsys := os.DirFS(root)
	det := detector.Detect(fsys, overrideLabel(cfg))

	ruleSet, err := effectiveRules(root, det.Stack, cfg)
	if err != nil {
		allowHook(fmt.Sprintf("custom rules error: %v", err))
		return
	}

	started := time.Now()
	findings := evaluateFiles(fsys, []string{rel}, ruleSet, det.Stack, cfg)
	rep := report.Build(root, det, findings, 1, started)

	decision := hook.Decide(rep)

	if jsonOutput {
		json.NewEncoder(os.Stdout).Encode(decision)
		return
	}

	if decision.Blocks() {
		fmt.Fprintf(os.Stderr, "guardrail blocked this edit (%s stack):\n%s\n", det.Stack, decision.Reason)
		os.Exit(2)
	}
}

// allowHook reports an allow without blocking the session. The note, when
// present, goes to stderr so the agent log shows why nothing was checked.
func allowHook(note string) {
	if note != "" {
		fmt.Fprintf(os.Stderr, "guardrail: %s (allowing)\n", note)
	}
	if jsonOutput {
		json.NewEncoder(os.Stdout).Encode(hook.Decision{Decision: hook.Allow})
	}
}
