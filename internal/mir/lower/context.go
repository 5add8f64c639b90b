// Package lower translates a type-checked typedast.Program into an
// mir.Program, per spec.md §4.1. Grounded on the original Rust
// implementation's crates/aria-mir/src/lib.rs (LoweringContext,
// MirError taxonomy) and lower_pattern.rs (the operand_for_place
// Copy/Move split), re-expressed as a block-cursor-based Go builder in the
// teacher's style rather than translated line for line.
package lower

import (
	"github.com/cancelei/aria-lang-sub001/internal/aerr"
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

// Context carries the whole-program symbol tables lowering needs to
// resolve names to dense ids: function/struct/enum/effect name -> id, and
// struct/enum field layouts for projection and aggregate construction.
type Context struct {
	program *mir.Program

	funcIDByName   map[string]mir.FunctionID
	structIDByName map[string]mir.StructID
	enumIDByName   map[string]mir.EnumID
	effectIDByName map[string]mir.EffectID

	structDefs map[mir.StructID]*typedast.StructDecl
	enumDefs   map[mir.EnumID]*typedast.EnumDecl
	effectDefs map[mir.EffectID]*typedast.EffectDecl
}

// Program lowers a whole typed-AST compilation unit to MIR. It is the
// entry point mirroring the original lower_program: two passes over
// declarations — first assign every function/struct/enum/effect a dense
// id and record its shape, then lower each function body now that every
// name in scope resolves.
func Program(p *typedast.Program) (*mir.Program, error) {
	ctx := &Context{
		program:        &mir.Program{},
		funcIDByName:   make(map[string]mir.FunctionID),
		structIDByName: make(map[string]mir.StructID),
		enumIDByName:   make(map[string]mir.EnumID),
		effectIDByName: make(map[string]mir.EffectID),
		structDefs:     make(map[mir.StructID]*typedast.StructDecl),
		enumDefs:       make(map[mir.EnumID]*typedast.EnumDecl),
		effectDefs:     make(map[mir.EffectID]*typedast.EffectDecl),
	}

	for i, s := range p.Structs {
		id := mir.StructID(i)
		ctx.structIDByName[s.Name] = id
		ctx.structDefs[id] = s
		fields := make([]mir.FieldDef, len(s.Fields))
		for j, f := range s.Fields {
			fields[j] = mir.FieldDef{Name: f.Name, Type: f.Type}
		}
		ctx.program.Structs = append(ctx.program.Structs, &mir.StructDef{ID: id, Name: s.Name, Fields: fields})
	}
	for i, e := range p.Enums {
		id := mir.EnumID(i)
		ctx.enumIDByName[e.Name] = id
		ctx.enumDefs[id] = e
		variants := make([]mir.VariantDef, len(e.Variants))
		for j, v := range e.Variants {
			variants[j] = mir.VariantDef{Name: v.Name, Fields: v.Fields}
		}
		ctx.program.Enums = append(ctx.program.Enums, &mir.EnumDef{ID: id, Name: e.Name, Variants: variants})
	}
	for i, ef := range p.Effects {
		id := mir.EffectID(i)
		ctx.effectIDByName[ef.Name] = id
		ctx.effectDefs[id] = ef
		ops := make([]mir.EffectOperation, len(ef.Operations))
		for j, op := range ef.Operations {
			ops[j] = mir.EffectOperation{Name: op.Name, Params: op.Params, Result: op.Result}
		}
		ctx.program.Effects = append(ctx.program.Effects, &mir.EffectDef{ID: id, Name: ef.Name, Operations: ops})
	}
	for i, fn := range p.Functions {
		ctx.funcIDByName[fn.Name] = mir.FunctionID(i)
	}

	for i, fn := range p.Functions {
		mfn, err := ctx.lowerFunction(mir.FunctionID(i), fn)
		if err != nil {
			return nil, err
		}
		ctx.program.Functions = append(ctx.program.Functions, mfn)
		if fn.Name == p.EntryName {
			id := mir.FunctionID(i)
			ctx.program.Entry = &id
		}
	}

	return ctx.program, nil
}

func internalErr(where, message string) error {
	return aerr.New(aerr.PhaseLower, aerr.KindInternal).Path(where).Detail(message).Build()
}

func undefinedVariable(fnName, name string) error {
	return aerr.New(aerr.PhaseLower, aerr.KindUndefinedVariable).Path(fnName, name).Build()
}

func undefinedFunction(fnName, name string) error {
	return aerr.New(aerr.PhaseLower, aerr.KindUndefinedFunction).Path(fnName, name).Build()
}

func undefinedType(fnName, name string) error {
	return aerr.New(aerr.PhaseLower, aerr.KindUndefinedType).Path(fnName, name).Build()
}

func undefinedField(fnName, structName, field string) error {
	return aerr.New(aerr.PhaseLower, aerr.KindUndefinedField).Path(fnName, structName, field).Build()
}

func invalidPattern(fnName string) error {
	return aerr.New(aerr.PhaseLower, aerr.KindInvalidPattern).Path(fnName).Build()
}
