package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"guardrail/pkg/detector"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [STACK]",
	Short: "List the effective rules for a stack",
	Long: `List every rule that applies to a stack, including rules inherited from the
stack it extends (Filament inherits Livewire's set), project-defined custom
rules, and minus anything disabled in the configuration.

With no argument the stack is detected from the current directory.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRules,
}

// ruleInfo is the JSON listing shape; Rule itself carries check functions.
type ruleInfo struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
}

func runRules(cmd *cobra.Command, args []string) {
	root := resolveProjectOrExit(nil)
	cfg := loadConfigOrExit(root)

	var label detector.StackLabel
	if len(args) > 0 {
		parsed, ok := detector.ParseLabel(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown stack '%s'\n", args[0])
			fmt.Fprintf(os.Stderr, "Known stacks: %s\n", knownLabels())
			os.Exit(1)
		}
		label = parsed
	} else {
		label = detectStack(root, cfg).Stack
	}

	ruleSet, err := effectiveRules(root, label, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading custom rules: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		infos := make([]ruleInfo, 0, len(ruleSet))
		for _, r := range ruleSet {
			infos = append(infos, ruleInfo{ID: r.ID, Severity: r.Severity.String(), Summary: r.Summary})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(infos)
		return
	}

	if len(ruleSet) == 0 {
		fmt.Printf("no rules apply to the '%s' stack\n", label)
		return
	}

	fmt.Printf("%d rules for %s\n\n", len(ruleSet), label)
	for _, r := range ruleSet {
		fmt.Printf("  %-7s %-28s %s\n", r.Severity, r.ID, r.Summary)
	}
	fmt.Printf("\nRun 'guardrail explain <rule-id>' for remediation notes.\n")
}

func knownLabels() string {
	var names []string
	for _, l := range detector.Labels() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}
