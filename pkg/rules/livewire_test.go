package rules

import (
	"testing"

	"guardrail/pkg/detector"
)

const livewireComponentWithRenderQuery = `<?php

namespace App\Livewire;

use App\Models\Post;
use Livewire\Component;

class PostList extends Component
{
    public string $search = '';

    public function mount(): void
    {
        $this->search = request('q', '');
    }

    public function render()
    {
        return view('livewire.post-list', [
            'posts' => Post::where('published', true)
                ->where('title', 'like', "%{$this->search}%")
                ->get(),
        ]);
    }
}
`

const livewireComponentWithComputed = `<?php

namespace App\Livewire;

use App\Models\Post;
use Livewire\Attributes\Computed;
use Livewire\Component;

class PostList extends Component
{
    #[Computed]
    public function posts()
    {
        return Post::where('published', true)->get();
    }

    public function render()
    {
        return view('livewire.post-list');
    }
}
`

func TestNoQueryInRender(t *testing.T) {
	ruleSet := For(detector.Livewire)

	findings := Evaluate("app/Livewire/PostList.php", livewireComponentWithRenderQuery, ruleSet)
	got := findingsByRule(findings)["livewire/no-query-in-render"]

	if len(got) != 1 {
		t.Fatalf("Expected exactly one region finding despite multiple query markers, got %+v", got)
	}
	if got[0].Line != 17 {
		t.Errorf("Expected the finding at the render() line 17, got %d", got[0].Line)
	}
	if got[0].Severity != Error {
		t.Errorf("Expected error severity, got %v", got[0].Severity)
	}
}

func TestQueryOutsideRenderIsFine(t *testing.T) {
	ruleSet := For(detector.Livewire)

	findings := Evaluate("app/Livewire/PostList.php", livewireComponentWithComputed, ruleSet)
	if got := findingsByRule(findings)["livewire/no-query-in-render"]; len(got) != 0 {
		t.Errorf("Query in a computed property must not be flagged, got %+v", got)
	}
}

func TestNoPolling(t *testing.T) {
	blade := `<div wire:poll.5s>
    <span>{{ $count }}</span>
</div>
`
	findings := Evaluate("resources/views/livewire/counter.blade.php", blade, For(detector.Livewire))
	got := findingsByRule(findings)["livewire/no-polling"]

	if len(got) != 1 || got[0].Line != 1 {
		t.Fatalf("Expected one finding at line 1, got %+v", got)
	}
}

func TestMissingWireKey(t *testing.T) {
	tests := []struct {
		name     string
		blade    string
		expected int
	}{
		{
			name: "loop without wire:key",
			blade: `<ul>
@foreach ($posts as $post)
    <li>{{ $post->title }}</li>
@endforeach
</ul>
`,
			expected: 1,
		},
		{
			name: "loop with wire:key",
			blade: `<ul>
@foreach ($posts as $post)
    <li wire:key="post-{{ $post->id }}">{{ $post->title }}</li>
@endforeach
</ul>
`,
			expected: 0,
		},
		{
			name: "forelse without wire:key",
			blade: `@forelse ($posts as $post)
    <li>{{ $post->title }}</li>
@empty
    <li>Nothing yet.</li>
@endforelse
`,
			expected: 1,
		},
		{
			name:     "no loops at all",
			blade:    `<div>{{ $post->title }}</div>`,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Evaluate("resources/views/livewire/posts.blade.php", tt.blade, For(detector.Livewire))
			got := findingsByRule(findings)["livewire/missing-wire-key"]
			if len(got) != tt.expected {
				t.Errorf("Expected %d findings, got %+v", tt.expected, got)
			}
		})
	}
}

func TestFilamentRules(t *testing.T) {
	resource := `<?php

class ListOrders extends ListRecords
{
    public function table(Table $table): Table
    {
        return $table
            ->poll('10s')
            ->columns([
                SelectColumn::make('status')
                    ->options(['pending' => 'Pending', 'shipped' => 'Shipped']),
            ]);
    }
}
`
	findings := Evaluate("app/Filament/Resources/OrderResource/Pages/ListOrders.php", resource, For(detector.Filament))
	byRule := findingsByRule(findings)

	if got := byRule["filament/no-table-polling"]; len(got) != 1 || got[0].Line != 8 {
		t.Errorf("Expected ->poll( finding at line 8, got %+v", got)
	}
	if got := byRule["filament/options-enum"]; len(got) != 1 || got[0].Line != 11 {
		t.Errorf("Expected ->options([ finding at line 11, got %+v", got)
	}
}

func TestFilamentInheritsLivewireChecks(t *testing.T) {
	findings := Evaluate("app/Livewire/PostList.php", livewireComponentWithRenderQuery, For(detector.Filament))
	if got := findingsByRule(findings)["livewire/no-query-in-render"]; len(got) != 1 {
		t.Errorf("Filament projects must still get livewire findings, got %+v", got)
	}
}
