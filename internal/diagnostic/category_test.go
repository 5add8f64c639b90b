package diagnostic

import "testing"

func TestCategoryFromCode(t *testing.T) {
	cases := []struct {
		code string
		cat  Category
		ok   bool
	}{
		{"E0001", CategoryCore, true},
		{"E1001", CategoryNaming, true},
		{"E9001", CategoryInternal, true},
		{"invalid", 0, false},
	}
	for _, c := range cases {
		cat, ok := CategoryFromCode(c.code)
		if ok != c.ok {
			t.Fatalf("%s: expected ok=%v, got %v", c.code, c.ok, ok)
		}
		if ok && cat != c.cat {
			t.Fatalf("%s: expected category %v, got %v", c.code, c.cat, cat)
		}
	}
}

func TestStandardRegistry(t *testing.T) {
	r := StandardRegistry()

	e0001, ok := r.Get("E0001")
	if !ok {
		t.Fatal("expected E0001 to be registered")
	}
	if e0001.Description != "type mismatch" {
		t.Fatalf("unexpected description: %q", e0001.Description)
	}

	e1001, ok := r.Get("E1001")
	if !ok {
		t.Fatal("expected E1001 to be registered")
	}
	if e1001.Category != CategoryNaming {
		t.Fatalf("expected Naming category, got %v", e1001.Category)
	}
}

func TestCodesInCategory(t *testing.T) {
	r := StandardRegistry()
	patternCodes := r.CodesInCategory(CategoryPattern)
	if len(patternCodes) == 0 {
		t.Fatal("expected at least one Pattern category code")
	}
	for _, info := range patternCodes {
		if info.Category != CategoryPattern {
			t.Fatalf("CodesInCategory returned a mismatched category: %v", info)
		}
	}
}
