package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"guardrail/pkg/config"
	"guardrail/pkg/rules"
)

var explainCmd = &cobra.Command{
	Use:   "explain RULE_ID",
	Short: "Show a rule's documentation",
	Long: `Explain prints a rule's remediation notes as rendered markdown: what the
rule flags, why it matters on this stack, and what to write instead.

Built-in rules are found by ID; project-defined rules are read from the
configured rules file.`,
	Args: cobra.ExactArgs(1),
	Run:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) {
	id := args[0]

	rule, ok := rules.Lookup(id)
	if !ok {
		rule, ok = lookupCustom(id)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no rule with id '%s'\n", id)
		fmt.Fprintf(os.Stderr, "\nRun 'guardrail rules' to list the rules for your stack\n")
		os.Exit(1)
	}

	doc := rule.Doc
	if doc == "" {
		doc = "_No further documentation for this rule._"
	}
	markdown := fmt.Sprintf("# %s\n\n**%s**: %s\n\n%s\n", rule.ID, rule.Severity, rule.Summary, doc)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Print(markdown)
		return
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}

// lookupCustom searches the project rules file, so explain also covers rules
// a team defined themselves.
func lookupCustom(id string) (rules.Rule, bool) {
	root, err := os.Getwd()
	if err != nil {
		return rules.Rule{}, false
	}
	cfg, err := config.Load(root)
	if err != nil {
		return rules.Rule{}, false
	}

	custom, err := rules.LoadCustom(os.DirFS(root), cfg.RulesFile)
	if err != nil {
		return rules.Rule{}, false
	}
	for _, r := range custom {
		if r.ID == id {
			return r, true
		}
	}
	return rules.Rule{}, false
}
