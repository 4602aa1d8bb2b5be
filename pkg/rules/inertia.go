package rules

import (
	"regexp"
	"strings"
)

var (
	explicitAnyPattern  = regexp.MustCompile(`:\s*any\b|\bas\s+any\b|<any[,>]`)
	classComponentDecl  = regexp.MustCompile(`\bextends\s+(?:React\.)?(?:Pure)?Component\b`)
	untypedFunctionDecl = regexp.MustCompile(`\bfunction\s+[A-Z]\w*\s*\(\s*\{[^}]*\}\s*\)|\bconst\s+[A-Z]\w*\s*=\s*\(\s*\{[^}]*\}\s*\)\s*=>`)
)

// sharedFrontendRules apply to every Inertia flavor, including projects whose
// frontend adapter could not be resolved.
func sharedFrontendRules() []Rule {
	return []Rule{
		regexRule(
			"ts/no-explicit-any", Warn,
			"Explicit any defeats type checking",
			"## ts/no-explicit-any\n\n"+
				"`any` switches the compiler off for everything it touches. Type the value,\n"+
				"or use `unknown` and narrow it where it is consumed.\n",
			"explicit any; type the value or use unknown",
			matchSuffixes(".ts", ".tsx", ".vue"),
			explicitAnyPattern,
		),
	}
}

func vueRules() []Rule {
	vue := matchSuffixes(".vue")

	return []Rule{
		regionRule(
			"vue/missing-v-for-key", Warn,
			"v-for needs a bound :key",
			"## vue/missing-v-for-key\n\n"+
				"Vue reuses DOM nodes in keyless lists, which reorders state along with the\n"+
				"rows. Bind a stable identifier:\n\n"+
				"```vue\n<li v-for=\"post in posts\" :key=\"post.id\">\n```\n",
			"v-for without :key; list diffing needs a stable key",
			vue,
			func(lines []string) []region { return tagRegions(lines, "v-for=") },
			containsAny(":key=", "v-bind:key="),
			true,
		),
		optionsAPIRule(),
		substringLineExcludingRule(
			"vue/untyped-define-props", Warn,
			"defineProps should carry a type argument",
			"## vue/untyped-define-props\n\n"+
				"Runtime prop declarations lose the types Inertia page props already have.\n"+
				"Use the generic form:\n\n"+
				"```ts\nconst props = defineProps<{ post: Post }>()\n```\n",
			"defineProps without a type argument",
			vue,
			"defineProps(",
			"defineProps<",
		),
	}
}

func reactRules() []Rule {
	jsx := matchSuffixes(".jsx", ".tsx")

	return []Rule{
		regionRule(
			"react/missing-list-key", Warn,
			"Lists rendered with map() need key props",
			"## react/missing-list-key\n\n"+
				"React identifies list children by `key`; without one, reordering remounts\n"+
				"components and drops their state. Key each element from the data:\n\n"+
				"```tsx\n{posts.map((post) => (\n  <PostCard key={post.id} post={post} />\n))}\n```\n",
			"map() renders JSX without a key prop",
			jsx,
			jsxMapRegions,
			containsAny("key="),
			true,
		),
		regexRule(
			"react/class-component", Info,
			"Class components predate the current conventions",
			"## react/class-component\n\n"+
				"New code here uses function components with hooks; class components split\n"+
				"related logic across lifecycle methods. Convert when you touch one.\n",
			"class component; prefer a function component",
			jsx,
			classComponentDecl,
		),
		regexRule(
			"react/untyped-props", Warn,
			"Component props should be typed",
			"## react/untyped-props\n\n"+
				"Destructured props without a type annotation degrade to implicit any.\n"+
				"Declare the shape:\n\n"+
				"```tsx\nfunction PostCard({ post }: { post: Post }) {\n```\n",
			"component destructures props without a type",
			matchSuffixes(".tsx"),
			untypedFunctionDecl,
		),
	}
}

// optionsAPIRule fires once per file using the Options API where script setup
// is the convention. Presence-gated so empty or unreadable content never trips it.
func optionsAPIRule() Rule {
	const id = "vue/options-api"
	return Rule{
		ID:       id,
		Severity: Info,
		Summary:  "Components here use script setup",
		Doc: "## vue/options-api\n\n" +
			"This codebase writes single-file components with `<script setup>` and the\n" +
			"Composition API. Options API components work, but mixing both styles makes\n" +
			"shared composables awkward. Convert when you touch one.\n",
		AppliesTo: matchSuffixes(".vue"),
		Check: func(path, content string) []Finding {
			if strings.Contains(content, "<script setup") {
				return nil
			}
			lines := matchLines(content, containsAny("export default {", "export default defineComponent("))
			if len(lines) == 0 {
				return nil
			}
			return []Finding{{
				Rule:     id,
				Severity: Info,
				Message:  "Options API component; prefer script setup",
				File:     path,
				Line:     lines[0],
			}}
		},
	}
}

// substringLineExcludingRule flags lines containing needle but not exclude.
func substringLineExcludingRule(id string, sev Severity, summary, doc, message string, applies func(string) bool, needle, exclude string) Rule {
	return Rule{
		ID:        id,
		Severity:  sev,
		Summary:   summary,
		Doc:       doc,
		AppliesTo: applies,
		Check: func(path, content string) []Finding {
			var out []Finding
			match := func(line string) bool {
				return strings.Contains(line, needle) && !strings.Contains(line, exclude)
			}
			for _, line := range matchLines(content, match) {
				out = append(out, Finding{Rule: id, Severity: sev, Message: message, File: path, Line: line})
			}
			return out
		},
	}
}

// jsxMapRegions spans each map() callback that produces JSX.
func jsxMapRegions(lines []string) []region {
	jsxStart := regexp.MustCompile(`<[A-Za-z]`)
	var out []region
	for _, reg := range parenRegions(lines, ".map(") {
		hasJSX := false
		for i := reg.start - 1; i < reg.end && i < len(lines); i++ {
			if jsxStart.MatchString(lines[i]) {
				hasJSX = true
				break
			}
		}
		if hasJSX {
			out = append(out, reg)
		}
	}
	return out
}
