package rules

// Query markers that have no business inside a Livewire render method.
var queryMarkers = containsAny(
	"DB::",
	"::query(",
	"::all(",
	"::where(",
	"::with(",
	"->where(",
	"->get(",
	"->first(",
	"->paginate(",
	"->count(",
)

func livewireRules() []Rule {
	php := matchSuffixes(".php")
	blade := matchSuffixes(".blade.php")

	return []Rule{
		regionRule(
			"livewire/no-query-in-render", Error,
			"render() must not run database queries",
			"## livewire/no-query-in-render\n\n"+
				"`render()` executes on every request and every Livewire update, so queries\n"+
				"placed there run far more often than intended. Move the query into a\n"+
				"`#[Computed]` property, which Livewire caches for the request.\n\n"+
				"```php\n// bad\npublic function render()\n{\n    return view('posts', ['posts' => Post::where('live', true)->get()]);\n}\n\n// good\n#[Computed]\npublic function posts()\n{\n    return Post::where('live', true)->get();\n}\n```\n",
			"database query inside render(); move it to a computed property",
			php,
			func(lines []string) []region { return methodRegions(lines, "render") },
			queryMarkers,
			false,
		),
		substringRule(
			"livewire/no-polling", Error,
			"wire:poll re-renders the component on a timer",
			"## livewire/no-polling\n\n"+
				"`wire:poll` issues a request per interval per open tab and scales with your\n"+
				"user count, not your data. Push updates with Livewire events (or Echo) and\n"+
				"let the component refresh when something actually changed.\n",
			"wire:poll found; prefer event-driven updates",
			php,
			"wire:poll",
		),
		regionRule(
			"livewire/missing-wire-key", Warn,
			"Loops in Livewire views need wire:key",
			"## livewire/missing-wire-key\n\n"+
				"Without `wire:key`, Livewire cannot track DOM elements across re-renders\n"+
				"and loop items get patched into the wrong place. Give the root element of\n"+
				"each iteration a stable key.\n\n"+
				"```blade\n@foreach ($posts as $post)\n    <div wire:key=\"post-{{ $post->id }}\">...</div>\n@endforeach\n```\n",
			"loop without wire:key; DOM diffing needs a stable key",
			blade,
			bladeLoopRegions,
			containsAny("wire:key"),
			true,
		),
	}
}

func bladeLoopRegions(lines []string) []region {
	regions := directiveRegions(lines, "@foreach", "@endforeach")
	regions = append(regions, directiveRegions(lines, "@forelse", "@endforelse")...)
	return regions
}
