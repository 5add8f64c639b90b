package wasmgen

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"go.bytecodealliance.org/wit"
)

// ToWitType converts a mir.Type into the wit.Type shape the rest of the
// component-model ecosystem (including the teacher's own
// component/type_resolver.go, read in reverse: WASM component type ->
// wit.Type) already type-checks against, per spec.md §4.5's WIT type-
// mapping table.
func ToWitType(t mir.Type, program *mir.Program) wit.Type {
	switch t.Kind {
	case mir.KindBool:
		return wit.Bool{}
	case mir.KindChar:
		return wit.Char{}
	case mir.KindInt, mir.KindInt64:
		return wit.S64{}
	case mir.KindInt8:
		return wit.S8{}
	case mir.KindInt16:
		return wit.S16{}
	case mir.KindInt32:
		return wit.S32{}
	case mir.KindUInt, mir.KindUInt64:
		return wit.U64{}
	case mir.KindUInt8:
		return wit.U8{}
	case mir.KindUInt16:
		return wit.U16{}
	case mir.KindUInt32:
		return wit.U32{}
	case mir.KindFloat, mir.KindFloat64:
		return wit.F64{}
	case mir.KindFloat32:
		return wit.F32{}
	case mir.KindString:
		return wit.String{}
	case mir.KindUnit:
		// No unit primitive in WIT; an empty tuple stands in, which
		// renderWitKind prints as "tuple<>".
		return &wit.TypeDef{Kind: &wit.Tuple{}}
	case mir.KindArray:
		var elem wit.Type = wit.U8{}
		if t.Elem != nil {
			elem = ToWitType(*t.Elem, program)
		}
		return &wit.TypeDef{Kind: &wit.List{Type: elem}}
	case mir.KindTuple:
		types := make([]wit.Type, len(t.Elems))
		for i, e := range t.Elems {
			types[i] = ToWitType(e, program)
		}
		return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}
	case mir.KindOptional:
		var elem wit.Type
		if t.Elem != nil {
			elem = ToWitType(*t.Elem, program)
		}
		return &wit.TypeDef{Kind: &wit.Option{Type: elem}}
	case mir.KindResult:
		var ok, errT wit.Type
		if t.OK != nil {
			ok = ToWitType(*t.OK, program)
		}
		if t.Err != nil {
			errT = ToWitType(*t.Err, program)
		}
		return &wit.TypeDef{Kind: &wit.Result{OK: ok, Err: errT}}
	case mir.KindStruct:
		def := program.StructByID(t.StructID)
		if def == nil {
			return &wit.TypeDef{Kind: &wit.Record{}}
		}
		fields := make([]wit.Field, len(def.Fields))
		for i, f := range def.Fields {
			fields[i] = wit.Field{Name: f.Name, Type: ToWitType(f.Type, program)}
		}
		return &wit.TypeDef{Kind: &wit.Record{Fields: fields}}
	case mir.KindEnum:
		def := program.EnumByID(t.EnumID)
		if def == nil {
			return &wit.TypeDef{Kind: &wit.Enum{}}
		}
		if enumIsPlain(def) {
			cases := make([]wit.EnumCase, len(def.Variants))
			for i, v := range def.Variants {
				cases[i] = wit.EnumCase{Name: v.Name}
			}
			return &wit.TypeDef{Kind: &wit.Enum{Cases: cases}}
		}
		cases := make([]wit.Case, len(def.Variants))
		for i, v := range def.Variants {
			c := wit.Case{Name: v.Name}
			if len(v.Fields) == 1 {
				c.Type = ToWitType(v.Fields[0], program)
			} else if len(v.Fields) > 1 {
				types := make([]wit.Type, len(v.Fields))
				for j, f := range v.Fields {
					types[j] = ToWitType(f, program)
				}
				c.Type = &wit.TypeDef{Kind: &wit.Tuple{Types: types}}
			}
			cases[i] = c
		}
		return &wit.TypeDef{Kind: &wit.Variant{Cases: cases}}
	case mir.KindRef, mir.KindRefMut:
		if t.Elem != nil {
			return ToWitType(*t.Elem, program)
		}
		return wit.U32{}
	default:
		return wit.U32{}
	}
}

// enumIsPlain reports whether every variant carries no payload, the
// condition under which a WIT "enum" (rather than a payload-carrying
// "variant") is the faithful rendering.
func enumIsPlain(def *mir.EnumDef) bool {
	for _, v := range def.Variants {
		if len(v.Fields) > 0 {
			return false
		}
	}
	return true
}
