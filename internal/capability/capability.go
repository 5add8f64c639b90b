// Package capability maps Aria effect declarations to the WASI preview2
// host interfaces a compiled module must import to perform them, per
// spec.md §4.5's effect-to-capability table. internal/wasmgen consumes
// the registry while assembling a module's import section; the teacher's
// own wasi/preview2/* subpackage split (cli, clocks, filesystem, http, io,
// random) names the interfaces this registry targets.
package capability

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/wasm"
)

// Import is one host function a module must import to perform an effect,
// grounded directly on aria-codegen/src/wasm_component.rs's WasmImport
// and its effect_to_imports table.
type Import struct {
	// Module is the WASI package/interface pair, e.g. "wasi:cli/stdout".
	Module string
	// Name is the function within Module, e.g. "get-stdout".
	Name    string
	Params  []wasm.ValType
	Results []wasm.ValType
}

// key identifies an Import for deduplication, independent of its
// parameter/result shape (two effects naming the same host function must
// collapse to a single import).
type key struct {
	module string
	name   string
}

func (i Import) key() key { return key{module: i.Module, name: i.Name} }

// registry is the standard effect -> imports table from spec.md §4.5.
var registry = map[string][]Import{
	"IO": {
		{Module: "wasi:io/streams", Name: "read", Params: []wasm.ValType{wasm.ValI32, wasm.ValI64}, Results: []wasm.ValType{wasm.ValI32}},
		{Module: "wasi:io/streams", Name: "write", Params: []wasm.ValType{wasm.ValI32, wasm.ValI32, wasm.ValI32}, Results: []wasm.ValType{wasm.ValI64}},
	},
	"Console": {
		{Module: "wasi:cli/stdout", Name: "get-stdout", Results: []wasm.ValType{wasm.ValI32}},
		{Module: "wasi:cli/stdin", Name: "get-stdin", Results: []wasm.ValType{wasm.ValI32}},
		{Module: "wasi:cli/stdout", Name: "print", Params: []wasm.ValType{wasm.ValI32, wasm.ValI32}},
	},
	"FileSystem": {
		{Module: "wasi:filesystem/types", Name: "read-via-stream", Params: []wasm.ValType{wasm.ValI32, wasm.ValI64}, Results: []wasm.ValType{wasm.ValI32}},
		{Module: "wasi:filesystem/types", Name: "write-via-stream", Params: []wasm.ValType{wasm.ValI32, wasm.ValI64}, Results: []wasm.ValType{wasm.ValI32}},
		{Module: "wasi:filesystem/types", Name: "stat", Params: []wasm.ValType{wasm.ValI32}, Results: []wasm.ValType{wasm.ValI32}},
	},
	"Network": {
		{Module: "wasi:http/types", Name: "new-outgoing-request", Params: []wasm.ValType{wasm.ValI32}, Results: []wasm.ValType{wasm.ValI32}},
		{Module: "wasi:http/outgoing-handler", Name: "handle", Params: []wasm.ValType{wasm.ValI32}, Results: []wasm.ValType{wasm.ValI32}},
	},
	"Random": {
		{Module: "wasi:random/random", Name: "get-random-bytes", Params: []wasm.ValType{wasm.ValI64}, Results: []wasm.ValType{wasm.ValI32}},
	},
	"Clock": {
		{Module: "wasi:clocks/wall-clock", Name: "now", Results: []wasm.ValType{wasm.ValI64}},
	},
}

// ForEffect returns the standard imports for a named effect. An unknown
// or pure effect name (e.g. the implicit "Async" scheduling effect, which
// has no WASI correlate) yields nil, matching the original's own
// "unknown effects produce no imports" fallback.
func ForEffect(name string) []Import {
	return registry[name]
}

// ResolveFunction returns the imports a single function's effect row
// requires: every import of every effect it declares, deduplicated by
// (module, function-name) as in Resolve.
func ResolveFunction(row mir.EffectRow) []Import {
	names := make([]string, len(row.Effects))
	for i, e := range row.Effects {
		names[i] = e.Name
	}
	return Resolve(names)
}

// ResolveProgram unions the imports required across every function in
// program, the module-level step aria-codegen's add_effect_imports
// performs while assembling the component's import section.
func ResolveProgram(program *mir.Program) []Import {
	seen := make(map[key]struct{})
	var out []Import
	for _, fn := range program.Functions {
		for _, imp := range ResolveFunction(fn.EffectRow) {
			k := imp.key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, imp)
		}
	}
	return out
}

// Resolve unions the imports required by effectNames, deduplicating by
// (module, function-name) so three sibling functions declaring the same
// effect still produce one import each. Order is deterministic: effect
// names are walked in the order given, and each effect's own import list
// is walked in registry order.
func Resolve(effectNames []string) []Import {
	seen := make(map[key]struct{})
	var out []Import
	for _, name := range effectNames {
		for _, imp := range ForEffect(name) {
			k := imp.key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, imp)
		}
	}
	return out
}
