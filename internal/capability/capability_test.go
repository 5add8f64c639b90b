package capability

import (
	"testing"

	"github.com/cancelei/aria-lang-sub001/internal/mir"
)

func TestForEffectConsoleImports(t *testing.T) {
	imports := ForEffect("Console")
	if len(imports) != 3 {
		t.Fatalf("expected 3 Console imports, got %d", len(imports))
	}
	for _, imp := range imports {
		if imp.Module != "wasi:cli/stdout" && imp.Module != "wasi:cli/stdin" {
			t.Fatalf("unexpected module %q for Console", imp.Module)
		}
	}
}

func TestForEffectUnknownYieldsNoImports(t *testing.T) {
	if imports := ForEffect("Async"); imports != nil {
		t.Fatalf("expected no imports for a non-WASI effect, got %+v", imports)
	}
}

func TestResolveDeduplicatesAcrossEffects(t *testing.T) {
	imports := Resolve([]string{"Console", "Console", "IO"})
	seen := make(map[string]int)
	for _, imp := range imports {
		seen[imp.Module+":"+imp.Name]++
	}
	for k, n := range seen {
		if n != 1 {
			t.Fatalf("import %q registered %d times, want 1", k, n)
		}
	}
	if _, ok := seen["wasi:cli/stdout:print"]; !ok {
		t.Fatalf("expected wasi:cli/stdout:print in resolved imports")
	}
	if _, ok := seen["wasi:io/streams:read"]; !ok {
		t.Fatalf("expected wasi:io/streams:read in resolved imports")
	}
}

func TestResolveProgramUnionsSiblingFunctions(t *testing.T) {
	mkFn := func(id mir.FunctionID, effect string) *mir.Function {
		return &mir.Function{
			ID:        id,
			EffectRow: mir.EffectRow{Effects: []mir.EffectType{{Name: effect}}},
		}
	}
	program := &mir.Program{
		Functions: []*mir.Function{
			mkFn(0, "IO"),
			mkFn(1, "IO"),
			mkFn(2, "FileSystem"),
		},
	}

	imports := ResolveProgram(program)
	var ioCount, fsCount int
	for _, imp := range imports {
		switch imp.Module {
		case "wasi:io/streams":
			ioCount++
		case "wasi:filesystem/types":
			fsCount++
		}
	}
	if ioCount != 2 {
		t.Fatalf("expected 2 wasi:io/streams imports (read, write), got %d", ioCount)
	}
	if fsCount != 3 {
		t.Fatalf("expected 3 wasi:filesystem/types imports, got %d", fsCount)
	}
}

func TestPureFunctionHasNoImports(t *testing.T) {
	if imports := ResolveFunction(mir.EffectRow{}); len(imports) != 0 {
		t.Fatalf("expected no imports for a pure effect row, got %+v", imports)
	}
}
