package rules

import (
	"sort"

	"guardrail/pkg/detector"
)

// labelRules binds a label's own rules to the label whose rules it extends.
type labelRules struct {
	extends detector.StackLabel
	rules   []Rule
}

// registry is the static rule table. Lookups resolve extension chains; the
// table itself is never mutated after init.
var registry = map[detector.StackLabel]labelRules{
	detector.Livewire:     {rules: concat(phpRules(), livewireRules())},
	detector.Filament:     {extends: detector.Livewire, rules: filamentRules()},
	detector.Inertia:      {rules: concat(phpRules(), sharedFrontendRules())},
	detector.InertiaVue:   {extends: detector.Inertia, rules: vueRules()},
	detector.InertiaReact: {extends: detector.Inertia, rules: reactRules()},
	detector.API:          {rules: phpRules()},
}

// For returns the effective rule set for a label: inherited rules first, the
// label's own after, duplicate IDs dropped. Labels without an entry, including
// none and unknown, get an empty set. The result is a fresh slice the caller
// may extend.
func For(label detector.StackLabel) []Rule {
	var chain []labelRules
	for cur := label; ; {
		entry, ok := registry[cur]
		if !ok || len(chain) > len(registry) {
			break
		}
		chain = append([]labelRules{entry}, chain...)
		if entry.extends == "" {
			break
		}
		cur = entry.extends
	}

	seen := map[string]bool{}
	var out []Rule
	for _, entry := range chain {
		for _, r := range entry.rules {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
	}
	return out
}

// IDs returns every registered rule ID, sorted.
func IDs() []string {
	seen := map[string]bool{}
	var out []string
	for _, entry := range registry {
		for _, r := range entry.rules {
			if !seen[r.ID] {
				seen[r.ID] = true
				out = append(out, r.ID)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Lookup finds a registered rule by ID.
func Lookup(id string) (Rule, bool) {
	for _, entry := range registry {
		for _, r := range entry.rules {
			if r.ID == id {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// Without filters out rules whose ID appears in disabled.
func Without(ruleSet []Rule, disabled []string) []Rule {
	if len(disabled) == 0 {
		return ruleSet
	}
	drop := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		drop[id] = true
	}
	out := make([]Rule, 0, len(ruleSet))
	for _, r := range ruleSet {
		if !drop[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func concat(sets ...[]Rule) []Rule {
	var out []Rule
	for _, set := range sets {
		out = append(out, set...)
	}
	return out
}
