package wasm

import "fmt"

// ValType is a WASM value type encoded as its single binary-format byte.
type ValType byte

func (t ValType) String() string {
	switch t {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	default:
		return fmt.Sprintf("valtype(0x%02x)", byte(t))
	}
}

// FuncType is a WASM function signature: a list of parameter types
// followed by a list of result types. BuildModule erases Unit-returning
// Aria functions to zero results, WASM's usual "void" convention, so
// Results holds at most one entry.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// Module is the subset of a WASM core module's sections this encoder
// assembles: type signatures (deduplicated via AddType), function imports,
// the program's own functions (as type indices paired 1:1 with Code), an
// optional linear memory, and the exports (functions and, when present,
// "memory") visible to a host.
type Module struct {
	Types    []FuncType
	Imports  []Import
	Funcs    []uint32
	Memories []MemoryType
	Exports  []Export
	Code     []FuncBody
}

// Import describes one imported function: a two-level (module, name) path
// resolved by internal/capability from an Aria effect row, paired with the
// function type it must implement.
type Import struct {
	Module string
	Name   string
	Desc   ImportDesc
}

// ImportDesc is always a function import in this backend: Aria programs
// import host effect handlers, never tables, globals, or memories.
type ImportDesc struct {
	Kind    byte
	TypeIdx uint32
}

// MemoryType describes a module's single linear memory, present only when
// internal/wasmgen.ProgramNeedsMemory reports a string/array/struct/etc.
// type transitively requires one.
type MemoryType struct {
	Limits Limits
}

// Limits bounds a memory's size in 64KiB pages. BuildModule never sets a
// maximum. No allocator in this repository uses the memory: internal/wasmgen
// rejects every construct that would need linear-memory layout.
type Limits struct {
	Min uint64
}

// Export names a function or the module's linear memory for host lookup.
// Kind is KindFunc or KindMemory; Idx indexes into the function index space
// (imports first, then the module's own functions) or, for memory, 0.
type Export struct {
	Name string
	Kind byte
	Idx  uint32
}

// FuncBody is one function's compiled local declarations and instruction
// stream, the latter already flattened to bytes by EncodeInstructions.
type FuncBody struct {
	Locals []LocalEntry
	Code   []byte
}

// LocalEntry is a run of Count consecutive locals sharing ValType. WASM
// permits runs to dedupe repeated types, but internal/wasmgen's local map
// assigns types per-local, so every entry here has Count 1.
type LocalEntry struct {
	Count   uint32
	ValType ValType
}

// AddType interns ft into Types, returning its index. Function signatures
// recur constantly (every call site to the same function, every handler of
// the same effect shares one), so deduplicating keeps the type section
// small the way wasm_component.rs's finish() does.
func (m *Module) AddType(ft FuncType) uint32 {
	for i, existing := range m.Types {
		if typesEqual(existing, ft) {
			return uint32(i)
		}
	}
	m.Types = append(m.Types, ft)
	return uint32(len(m.Types) - 1)
}

func typesEqual(a, b FuncType) bool {
	if len(a.Params) != len(b.Params) || len(a.Results) != len(b.Results) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	for i := range a.Results {
		if a.Results[i] != b.Results[i] {
			return false
		}
	}
	return true
}
