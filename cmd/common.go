package cmd

import (
	"fmt"
	"os"

	"guardrail/pkg/config"
	"guardrail/pkg/detector"
	"guardrail/pkg/rules"
	"guardrail/pkg/util"
)

// resolveProjectOrExit validates the optional [PROJECT_PATH] argument and
// exits with an error message when it is unusable
func resolveProjectOrExit(args []string) string {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	root, err := util.Resolve(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// loadConfigOrExit loads the layered configuration and exits when a config
// file exists but does not parse
func loadConfigOrExit(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// overrideLabel resolves the stack override: the --stack flag outranks the
// config file, and anything unclassifiable is ignored so detection falls
// back to manifest evidence.
func overrideLabel(cfg *config.Config) detector.StackLabel {
	raw := stackOverride
	if raw == "" && cfg != nil {
		raw = cfg.Stack
	}

	label, ok := detector.ParseOverride(raw)
	if !ok {
		return detector.Unknown
	}
	return label
}

// detectStack classifies the project at root under the resolved override.
func detectStack(root string, cfg *config.Config) detector.Detection {
	return detector.Detect(os.DirFS(root), overrideLabel(cfg))
}

// effectiveRules assembles the rule set for a label: the built-in set, plus
// project-defined custom rules, minus disabled IDs. A malformed rules file is
// an error for the caller to report; a missing one is not.
func effectiveRules(root string, label detector.StackLabel, cfg *config.Config) ([]rules.Rule, error) {
	set := rules.For(label)

	custom, err := rules.LoadCustom(os.DirFS(root), cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	set = append(set, custom...)

	return rules.Without(set, cfg.DisabledRules), nil
}
