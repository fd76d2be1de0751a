package locale

import (
	"testing"
)

func TestTFallsBackToKey(t *testing.T) {
	SetCatalog(nil)

	got := T("analysis.complexity_high", nil)
	if got != "analysis.complexity_high" {
		t.Errorf("expected key fallback, got %q", got)
	}
}

func TestTInterpolatesParams(t *testing.T) {
	SetCatalog(map[string]string{
		"analysis.too_many_params": "function {name} takes {count} parameters",
	})
	defer SetCatalog(nil)

	got := T("analysis.too_many_params", map[string]interface{}{"name": "handler", "count": 8})
	want := "function handler takes 8 parameters"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTInterpolatesIntoFallbackKey(t *testing.T) {
	SetCatalog(nil)

	got := T("unit {name}", map[string]interface{}{"name": "main"})
	if got != "unit main" {
		t.Errorf("expected params applied to fallback, got %q", got)
	}
}

func TestBuiltinCoversDetectorAndPrincipleKeys(t *testing.T) {
	SetCatalog(Builtin())
	defer SetCatalog(nil)

	keys := []string{
		"detector.deprecated-declaration.message",
		"detector.weak-equality.suggestion",
		"metric.nesting.message",
		"principle.single-responsibility.impact",
		"principle.dependency-direction.suggestion",
	}
	for _, key := range keys {
		if got := T(key, nil); got == key {
			t.Errorf("builtin catalog is missing %q", key)
		}
	}
}
