package wasmgen

import (
	"fmt"

	"github.com/cancelei/aria-lang-sub001/internal/capability"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/wasm"
)

const memoryDefaultPages = 4 // 256 KiB, enough for a first-cut bump allocator

// BuildModule assembles a wasm.Module from program, following
// wasm_component.rs's finish(): type section first (deduplicated via
// wasm.Module.AddType), then imports (resolved from the program's effect
// rows via internal/capability), then the pure-function core with its
// type indices naturally offset by AddType's shared dedup table, a memory
// section if any type in the program needs linear memory, an export
// section with indices shifted by the import count, and finally code.
func BuildModule(program *mir.Program) (*wasm.Module, error) {
	m := &wasm.Module{}

	imports := capability.ResolveProgram(program)
	importFuncCount := uint32(len(imports))
	for _, imp := range imports {
		typeIdx := m.AddType(wasm.FuncType{Params: imp.Params, Results: imp.Results})
		m.Imports = append(m.Imports, wasm.Import{
			Module: imp.Module,
			Name:   imp.Name,
			Desc:   wasm.ImportDesc{Kind: wasm.KindFunc, TypeIdx: typeIdx},
		})
	}

	funcIndex := make(map[mir.FunctionID]uint32, len(program.Functions))
	for i, fn := range program.Functions {
		funcIndex[fn.ID] = importFuncCount + uint32(i)
	}

	for _, fn := range program.Functions {
		typeIdx := m.AddType(FuncType(fn))
		m.Funcs = append(m.Funcs, typeIdx)

		body, err := compileFunction(fn, funcIndex)
		if err != nil {
			return nil, fmt.Errorf("wasmgen: function %q: %w", fn.Name, err)
		}
		m.Code = append(m.Code, body)
	}

	if ProgramNeedsMemory(program) {
		m.Memories = append(m.Memories, wasm.MemoryType{Limits: wasm.Limits{Min: memoryDefaultPages}})
		m.Exports = append(m.Exports, wasm.Export{Name: "memory", Kind: wasm.KindMemory, Idx: 0})
	}

	for _, fn := range program.Functions {
		if !fn.IsPublic {
			continue
		}
		m.Exports = append(m.Exports, wasm.Export{
			Name: kebabCase(fn.Name),
			Kind: wasm.KindFunc,
			Idx:  funcIndex[fn.ID],
		})
	}

	return m, nil
}
