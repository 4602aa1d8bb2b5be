package testmap

import (
	"testing"

	"guardrail/pkg/detector"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		matches bool
	}{
		{"vendor/**", "vendor/laravel/framework/src/Foo.php", true},
		{"vendor/**", "app/vendor.php", false},
		{"node_modules/**", "node_modules/vue/dist/vue.js", true},
		{"**/__tests__/**", "resources/js/Components/__tests__/Button.test.tsx", true},
		{"**/__tests__/**", "resources/js/Components/Button.tsx", false},
		{"*.blade.php", "resources/views/welcome.blade.php", true},
		{"*.blade.php", "app/Models/User.php", false},
		{"*.test.*", "resources/js/cart.test.ts", true},
		{"*.d.ts", "resources/js/types/generated.d.ts", true},
		{"*.config.js", "tailwind.config.js", true},
		{"app/Models/**", "app/Models/User.php", true},
		{"app/Models/**", "app/Models/Scopes/ActiveScope.php", true},
		{"app/Models/**", "app/Livewire/Dashboard.php", false},
		{"resources/js/app.*", "resources/js/app.ts", true},
		{"resources/js/app.*", "resources/js/Pages/app.ts", false},
		{".*", ".env", true},
		{".*/**", ".github/workflows/ci.yml", true},
		{"tests/**", "tests/Feature/OrderTest.php", true},
		{"routes/**", "routes/web.php", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.path, func(t *testing.T) {
			if got := matchGlob(tt.pattern, tt.path); got != tt.matches {
				t.Errorf("matchGlob(%q, %q) = %v, expected %v", tt.pattern, tt.path, got, tt.matches)
			}
		})
	}
}

func TestExempt(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		label  detector.StackLabel
		extra  []string
		exempt bool
	}{
		{"vendor code", "vendor/livewire/livewire/src/Component.php", detector.Livewire, nil, true},
		{"migration", "database/migrations/0001_create_users.php", detector.Livewire, nil, true},
		{"blade view", "resources/views/livewire/counter.blade.php", detector.Livewire, nil, true},
		{"model is a data holder", "app/Models/Order.php", detector.Filament, nil, true},
		{"provider wiring", "app/Providers/AppServiceProvider.php", detector.API, nil, true},
		{"livewire component needs tests", "app/Livewire/Checkout.php", detector.Livewire, nil, false},
		{"controller needs tests", "app/Http/Controllers/OrderController.php", detector.API, nil, false},
		{"inertia page shell", "resources/js/Pages/Dashboard.vue", detector.InertiaVue, nil, true},
		{"vue component needs tests", "resources/js/Components/Cart.vue", detector.InertiaVue, nil, false},
		{"page exemption is frontend-label only", "resources/js/Pages/Dashboard.vue", detector.Livewire, nil, false},
		{"test file itself", "tests/Feature/CheckoutTest.php", detector.Livewire, nil, true},
		{"colocated test file", "resources/js/Components/Cart.test.ts", detector.InertiaVue, nil, true},
		{"extra project glob", "app/Support/Generated/ApiClient.php", detector.API, []string{"app/Support/Generated/**"}, true},
		{"extra glob does not overreach", "app/Support/Billing.php", detector.API, []string{"app/Support/Generated/**"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Exempt(tt.path, tt.label, tt.extra); got != tt.exempt {
				t.Errorf("Exempt(%q, %s) = %v, expected %v", tt.path, tt.label, got, tt.exempt)
			}
		})
	}
}
