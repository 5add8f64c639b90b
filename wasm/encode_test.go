package wasm_test

import (
	"context"
	"testing"

	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/wasmgen"
	"github.com/cancelei/aria-lang-sub001/wasm"
	"github.com/tetratelabs/wazero"
)

// buildConst constructs a zero-argument function that returns a constant,
// the smallest module Encode must shape correctly: one type, no imports,
// one function, one export, no memory.
func buildConst(value int64) *mir.Function {
	fn := mir.NewFunction(0, "konst", mir.Int())
	fn.IsPublic = true
	entry := fn.AddBlock()
	fn.Blocks[entry].Statements = []mir.Statement{
		mir.Assign{
			Place: mir.PlaceOf(mir.ReturnPlace),
			RHS:   mir.Use{Operand: mir.Constant{Type: mir.Int(), Value: value}},
		},
	}
	fn.Blocks[entry].Terminator = mir.Return{}
	return fn
}

func TestEncodeModuleRoundTripsThroughWazero(t *testing.T) {
	cases := []struct {
		name  string
		value int64
	}{
		{"zero", 0},
		{"positive", 17},
		{"negative", -3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			program := &mir.Program{Functions: []*mir.Function{buildConst(c.value)}}
			m, err := wasmgen.BuildModule(program)
			if err != nil {
				t.Fatalf("BuildModule: %v", err)
			}
			bin := m.Encode()

			if len(bin) < 8 {
				t.Fatalf("encoded module too short: %d bytes", len(bin))
			}
			if bin[0] != 0x00 || bin[1] != 'a' || bin[2] != 's' || bin[3] != 'm' {
				t.Fatalf("missing WASM magic number, got %x", bin[:4])
			}

			ctx := context.Background()
			rt := wazero.NewRuntime(ctx)
			defer rt.Close(ctx)

			compiled, err := rt.CompileModule(ctx, bin)
			if err != nil {
				t.Fatalf("CompileModule: %v", err)
			}
			mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
			if err != nil {
				t.Fatalf("InstantiateModule: %v", err)
			}
			defer mod.Close(ctx)

			fn := mod.ExportedFunction("konst")
			if fn == nil {
				t.Fatal("exported function \"konst\" not found")
			}
			results, err := fn.Call(ctx)
			if err != nil {
				t.Fatalf("Call: %v", err)
			}
			if len(results) != 1 || int64(results[0]) != c.value {
				t.Fatalf("konst() = %v, want [%d]", results, c.value)
			}
		})
	}
}

// TestModuleAddTypeDeduplicates exercises the type-section interning a
// program with several functions sharing a signature relies on to keep
// the type section small.
func TestModuleAddTypeDeduplicates(t *testing.T) {
	m := &wasm.Module{}
	ft := wasm.FuncType{Params: []wasm.ValType{wasm.ValI64, wasm.ValI64}, Results: []wasm.ValType{wasm.ValI64}}

	first := m.AddType(ft)
	second := m.AddType(ft)
	if first != second {
		t.Fatalf("AddType did not dedupe identical signatures: %d != %d", first, second)
	}

	other := m.AddType(wasm.FuncType{Params: []wasm.ValType{wasm.ValI32}})
	if other == first {
		t.Fatalf("AddType merged distinct signatures into one index")
	}
	if len(m.Types) != 2 {
		t.Fatalf("expected 2 interned types, got %d", len(m.Types))
	}
}

func TestEncodeInstructionsWrapsLEB128AndFloats(t *testing.T) {
	instrs := []wasm.Instruction{
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: -1}},
		{Opcode: wasm.OpF64Const, Imm: wasm.F64Imm{Value: 3.5}},
		{Opcode: wasm.OpEnd},
	}
	code := wasm.EncodeInstructions(instrs)

	// i32.const -1 encodes as opcode 0x41 followed by the single LEB128
	// byte 0x7f (a one-byte encoding of -1 in signed LEB128).
	if len(code) < 2 || code[0] != wasm.OpI32Const || code[1] != 0x7f {
		t.Fatalf("unexpected i32.const -1 encoding: %x", code[:2])
	}
	// f64.const is its opcode plus 8 little-endian bytes (9) and end is a
	// single opcode byte (0x0B), so 10 bytes follow the i32.const's 2.
	if len(code) != 2+1+8+1 {
		t.Fatalf("unexpected total instruction length: got %d, want %d", len(code), 2+1+8+1)
	}
}
