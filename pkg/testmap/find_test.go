package testmap_test

import (
	"testing"

	"guardrail/pkg/detector"
	"guardrail/pkg/testmap"
)

func TestFindTestFileBackend(t *testing.T) {
	fsys := projectFS(t, map[string]string{
		"app/Livewire/Checkout.php":               "<?php",
		"tests/Feature/Livewire/CheckoutTest.php": "<?php",
		"tests/Unit/CartTest.php":                 "<?php",
	})
	set := testmap.LocationsFor(fsys, detector.Livewire)

	tests := []struct {
		src      string
		expected string
		found    bool
	}{
		{"app/Livewire/Checkout.php", "tests/Feature/Livewire/CheckoutTest.php", true},
		{"app/Services/Cart.php", "tests/Unit/CartTest.php", true},
		{"app/Livewire/Untested.php", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, found := testmap.FindTestFile(fsys, set, tt.src)
			if found != tt.found || got != tt.expected {
				t.Errorf("FindTestFile(%q) = (%q, %v), expected (%q, %v)", tt.src, got, found, tt.expected, tt.found)
			}
		})
	}
}

func TestFindTestFileFrontendSameDir(t *testing.T) {
	fsys := projectFS(t, map[string]string{
		"resources/js/Components/Cart.vue":                "<template/>",
		"resources/js/Components/Cart.spec.ts":            "",
		"resources/js/Components/Modal.vue":               "<template/>",
		"resources/js/Components/__tests__/Modal.test.ts": "",
		"resources/js/Stores/checkout.ts":                 "",
		"resources/js/__tests__/checkout.test.ts":         "",
	})
	set := testmap.LocationsFor(fsys, detector.InertiaVue)

	tests := []struct {
		src      string
		expected string
	}{
		{"resources/js/Components/Cart.vue", "resources/js/Components/Cart.spec.ts"},
		{"resources/js/Components/Modal.vue", "resources/js/Components/__tests__/Modal.test.ts"},
		{"resources/js/Stores/checkout.ts", "resources/js/__tests__/checkout.test.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, found := testmap.FindTestFile(fsys, set, tt.src)
			if !found || got != tt.expected {
				t.Errorf("FindTestFile(%q) = (%q, %v), expected %q", tt.src, got, found, tt.expected)
			}
		})
	}
}

func TestFindTestFilePrefersSuffixOrder(t *testing.T) {
	fsys := projectFS(t, map[string]string{
		"resources/js/Components/Cart.vue":     "<template/>",
		"resources/js/Components/Cart.test.ts": "",
		"resources/js/Components/Cart.spec.ts": "",
	})
	set := testmap.LocationsFor(fsys, detector.InertiaVue)

	got, found := testmap.FindTestFile(fsys, set, "resources/js/Components/Cart.vue")
	if !found || got != "resources/js/Components/Cart.test.ts" {
		t.Errorf("expected .test.ts to win over .spec.ts, got %q", got)
	}
}

func TestRequiresTest(t *testing.T) {
	fsys := projectFS(t, nil)
	livewire := testmap.LocationsFor(fsys, detector.Livewire)
	vue := testmap.LocationsFor(fsys, detector.InertiaVue)
	none := testmap.LocationsFor(fsys, detector.None)

	tests := []struct {
		name     string
		set      testmap.LocationSet
		path     string
		required bool
	}{
		{"backend source under app", livewire, "app/Livewire/Checkout.php", true},
		{"php outside app", livewire, "routes/web.php", false},
		{"js not tracked for backend-only label", livewire, "resources/js/cart.js", false},
		{"js tracked for inertia-vue", vue, "resources/js/Components/Cart.vue", true},
		{"js outside resources/js", vue, "public/js/legacy.js", false},
		{"nothing required for none", none, "app/Models/User.php", false},
		{"non-source file", livewire, "composer.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testmap.RequiresTest(tt.set, tt.path); got != tt.required {
				t.Errorf("RequiresTest(%q) = %v, expected %v", tt.path, got, tt.required)
			}
		})
	}
}

func TestMissingTest(t *testing.T) {
	fsys := projectFS(t, map[string]string{
		"app/Livewire/Checkout.php":  "<?php",
		"app/Livewire/Cart.php":      "<?php",
		"tests/Feature/CartTest.php": "<?php",
		"app/Models/Order.php":       "<?php",
	})

	t.Run("untested source reports a finding", func(t *testing.T) {
		finding, ok := testmap.MissingTest(fsys, detector.Livewire, "app/Livewire/Checkout.php", nil)
		if !ok {
			t.Fatal("expected a missing-test finding")
		}
		if finding.Rule != testmap.MissingTestRule {
			t.Errorf("expected rule %s, got %s", testmap.MissingTestRule, finding.Rule)
		}
		if finding.File != "app/Livewire/Checkout.php" {
			t.Errorf("finding names the wrong file: %s", finding.File)
		}
	})

	t.Run("tested source is quiet", func(t *testing.T) {
		if _, ok := testmap.MissingTest(fsys, detector.Livewire, "app/Livewire/Cart.php", nil); ok {
			t.Error("expected no finding when a test exists")
		}
	})

	t.Run("exempt file is quiet regardless of label", func(t *testing.T) {
		for _, label := range []detector.StackLabel{detector.Livewire, detector.Filament, detector.InertiaVue, detector.API} {
			if _, ok := testmap.MissingTest(fsys, label, "app/Models/Order.php", nil); ok {
				t.Errorf("%s: models are exempt by directory convention", label)
			}
		}
	})

	t.Run("unknown label never requires tests", func(t *testing.T) {
		if _, ok := testmap.MissingTest(fsys, detector.Unknown, "app/Livewire/Checkout.php", nil); ok {
			t.Error("unknown label must not demand tests")
		}
	})
}
