package wasmgen

import (
	"strings"
	"testing"

	"github.com/cancelei/aria-lang-sub001/internal/capability"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/wasm"
)

// buildAdd constructs `pub fn add(a: Int, b: Int) -> Int { return a + b }`,
// a single-block pure function.
func buildAdd() *mir.Function {
	fn := mir.NewFunction(0, "add", mir.Int())
	a := fn.AddLocal(mir.LocalDecl{Type: mir.Int(), Name: "a"})
	b := fn.AddLocal(mir.LocalDecl{Type: mir.Int(), Name: "b"})
	fn.Params = []mir.LocalID{a, b}
	fn.IsPublic = true

	entry := fn.AddBlock()
	fn.Blocks[entry].Statements = []mir.Statement{
		mir.Assign{
			Place: mir.PlaceOf(mir.ReturnPlace),
			RHS:   mir.BinaryOp{Op: mir.BinAdd, X: mir.Copy{Place: mir.PlaceOf(a)}, Y: mir.Copy{Place: mir.PlaceOf(b)}},
		},
	}
	fn.Blocks[entry].Terminator = mir.Return{}
	return fn
}

// buildAbs constructs `pub fn abs(x: Int) -> Int { if x < 0 { return -x }
// else { return x } }` across three basic blocks, exercising SwitchInt
// (both a matched case and Otherwise) through the loop-switch dispatch.
func buildAbs() *mir.Function {
	fn := mir.NewFunction(1, "abs", mir.Int())
	x := fn.AddLocal(mir.LocalDecl{Type: mir.Int(), Name: "x"})
	fn.Params = []mir.LocalID{x}
	fn.IsPublic = true

	cmp := fn.AddLocal(mir.LocalDecl{Type: mir.Bool()})

	entry := fn.AddBlock()   // 0: cmp = x < 0; switch
	negBlock := fn.AddBlock() // 1: return -x
	posBlock := fn.AddBlock() // 2: return x

	fn.Blocks[entry].Statements = []mir.Statement{
		mir.Assign{
			Place: mir.PlaceOf(cmp),
			RHS: mir.BinaryOp{
				Op: mir.BinLt,
				X:  mir.Copy{Place: mir.PlaceOf(x)},
				Y:  mir.Constant{Type: mir.Int(), Value: int64(0)},
			},
		},
	}
	fn.Blocks[entry].Terminator = mir.SwitchInt{
		Discriminant: mir.Copy{Place: mir.PlaceOf(cmp)},
		Cases:        []mir.SwitchCase{{Value: 1, Target: negBlock}},
		Otherwise:    posBlock,
	}

	fn.Blocks[negBlock].Statements = []mir.Statement{
		mir.Assign{
			Place: mir.PlaceOf(mir.ReturnPlace),
			RHS:   mir.UnaryOp{Op: mir.UnNeg, X: mir.Copy{Place: mir.PlaceOf(x)}},
		},
	}
	fn.Blocks[negBlock].Terminator = mir.Return{}

	fn.Blocks[posBlock].Statements = []mir.Statement{
		mir.Assign{Place: mir.PlaceOf(mir.ReturnPlace), RHS: mir.Use{Operand: mir.Copy{Place: mir.PlaceOf(x)}}},
	}
	fn.Blocks[posBlock].Terminator = mir.Return{}

	return fn
}

func TestBuildModulePureFunctionHasNoImports(t *testing.T) {
	program := &mir.Program{Functions: []*mir.Function{buildAdd()}}
	m, err := BuildModule(program)
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	if len(m.Imports) != 0 {
		t.Fatalf("expected 0 imports for a pure function, got %d", len(m.Imports))
	}
	if len(m.Funcs) != 1 || len(m.Code) != 1 {
		t.Fatalf("expected 1 function, got Funcs=%d Code=%d", len(m.Funcs), len(m.Code))
	}
	if len(m.Exports) != 1 || m.Exports[0].Name != "add" {
		t.Fatalf("expected export named add, got %+v", m.Exports)
	}
}

func TestBuildModuleMultiBlockFunctionCompiles(t *testing.T) {
	program := &mir.Program{Functions: []*mir.Function{buildAbs()}}
	m, err := BuildModule(program)
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	if len(m.Code) != 1 {
		t.Fatalf("expected 1 compiled body, got %d", len(m.Code))
	}
	if len(m.Code[0].Code) == 0 {
		t.Fatalf("expected non-empty encoded function body")
	}
	// Encode must not panic on a well-formed module.
	_ = m.Encode()
}

func TestBuildModuleImportsShiftExportIndices(t *testing.T) {
	effectful := mir.NewFunction(2, "greet", mir.Unit())
	effectful.IsPublic = true
	effectful.EffectRow = mir.EffectRow{Effects: []mir.EffectType{{Name: "Console"}}}
	blk := effectful.AddBlock()
	effectful.Blocks[blk].Terminator = mir.Return{}

	program := &mir.Program{Functions: []*mir.Function{effectful}}
	m, err := BuildModule(program)
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	wantImports := len(capability.ForEffect("Console"))
	if len(m.Imports) != wantImports {
		t.Fatalf("expected %d imports, got %d", wantImports, len(m.Imports))
	}
	if len(m.Exports) != 1 {
		t.Fatalf("expected 1 export, got %d", len(m.Exports))
	}
	if got := m.Exports[0].Idx; got != uint32(wantImports) {
		t.Fatalf("expected exported func index shifted by import count (%d), got %d", wantImports, got)
	}
}

func TestBuildModuleUnknownEffectYieldsNoImports(t *testing.T) {
	fn := mir.NewFunction(3, "spawn_task", mir.Unit())
	fn.EffectRow = mir.EffectRow{Effects: []mir.EffectType{{Name: "Async"}}}
	blk := fn.AddBlock()
	fn.Blocks[blk].Terminator = mir.Return{}

	program := &mir.Program{Functions: []*mir.Function{fn}}
	m, err := BuildModule(program)
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	if len(m.Imports) != 0 {
		t.Fatalf("expected 0 imports for the Async scheduling effect, got %d", len(m.Imports))
	}
}

func TestValTypeFlattensScalarsAndAggregates(t *testing.T) {
	cases := []struct {
		t    mir.Type
		want wasm.ValType
	}{
		{mir.Bool(), wasm.ValI32},
		{mir.Int(), wasm.ValI64},
		{mir.Int32(), wasm.ValI32},
		{mir.Float64(), wasm.ValF64},
		{mir.Float32(), wasm.ValF32},
		{mir.String(), wasm.ValI32},
		{mir.Array(mir.Int()), wasm.ValI32},
		{mir.Tuple(mir.Int(), mir.Bool()), wasm.ValI32},
	}
	for _, c := range cases {
		if got := ValType(c.t); got != c.want {
			t.Errorf("ValType(%s) = %v, want %v", c.t.Kind, got, c.want)
		}
	}
}

func TestNeedsLinearMemory(t *testing.T) {
	if NeedsLinearMemory(mir.Int()) {
		t.Fatalf("Int should not need linear memory")
	}
	if !NeedsLinearMemory(mir.String()) {
		t.Fatalf("String should need linear memory")
	}
	if !NeedsLinearMemory(mir.Tuple(mir.Int(), mir.Int())) {
		t.Fatalf("Tuple should need linear memory")
	}
}

func TestRenderWITProducesWorldWithExportsAndImports(t *testing.T) {
	add := buildAdd()
	program := &mir.Program{Functions: []*mir.Function{add}}
	imports := []capability.Import{{Module: "wasi:cli/stdout", Name: "print"}}

	out := RenderWIT("AriaModule", program, imports)
	if !strings.HasPrefix(out, "world aria-module {") {
		t.Fatalf("expected kebab-case world header, got %q", out)
	}
	if !strings.Contains(out, "import wasi:cli/stdout;") {
		t.Fatalf("expected import line, got %q", out)
	}
	if !strings.Contains(out, "export add: func(a: s64, b: s64) -> s64;") {
		t.Fatalf("expected export signature, got %q", out)
	}
}

func TestKebabCase(t *testing.T) {
	cases := map[string]string{
		"my_func":    "my-func",
		"MyFunc":     "my-func",
		"alreadyOk":  "already-ok",
		"plain":      "plain",
		"Http2Proxy": "http2-proxy",
	}
	for in, want := range cases {
		if got := kebabCase(in); got != want {
			t.Errorf("kebabCase(%q) = %q, want %q", in, got, want)
		}
	}
}
