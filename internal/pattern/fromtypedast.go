package pattern

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

// FromMIRType converts a resolved mir.Type into the restricted Type view
// this package checks exhaustiveness over, resolving struct/enum bodies
// through program so Specialize/ForType see concrete field and variant
// lists rather than bare ids.
func FromMIRType(t mir.Type, program *mir.Program) Type {
	switch t.Kind {
	case mir.KindBool:
		return Type{Kind: KindBool}
	case mir.KindInt, mir.KindInt8, mir.KindInt16, mir.KindInt32, mir.KindInt64,
		mir.KindUInt, mir.KindUInt8, mir.KindUInt16, mir.KindUInt32, mir.KindUInt64:
		return Type{Kind: KindInt}
	case mir.KindFloat, mir.KindFloat32, mir.KindFloat64:
		return Type{Kind: KindFloat}
	case mir.KindString:
		return Type{Kind: KindString}
	case mir.KindUnit:
		return Type{Kind: KindUnit}
	case mir.KindTuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = FromMIRType(e, program)
		}
		return Type{Kind: KindTuple, Elems: elems}
	case mir.KindArray:
		var elem Type
		if t.Elem != nil {
			elem = FromMIRType(*t.Elem, program)
		}
		return Type{Kind: KindArray, Elem: &elem}
	case mir.KindStruct:
		def := program.StructByID(t.StructID)
		if def == nil {
			return Type{Kind: KindUnknown}
		}
		fields := make([]StructField, len(def.Fields))
		for i, f := range def.Fields {
			fields[i] = StructField{Name: f.Name, Type: FromMIRType(f.Type, program)}
		}
		return Type{Kind: KindStruct, StructName: def.Name, Fields: fields}
	case mir.KindEnum:
		def := program.EnumByID(t.EnumID)
		if def == nil {
			return Type{Kind: KindUnknown}
		}
		variants := make([]EnumVariant, len(def.Variants))
		for i, v := range def.Variants {
			fieldTypes := make([]Type, len(v.Fields))
			for j, f := range v.Fields {
				fieldTypes[j] = FromMIRType(f, program)
			}
			variants[i] = EnumVariant{Name: v.Name, Fields: fieldTypes}
		}
		return Type{Kind: KindEnum, EnumName: def.Name, Variants: variants}
	default:
		return Type{Kind: KindUnknown}
	}
}

// FromPattern deconstructs a single typed-AST pattern into the head
// constructor the exhaustiveness matrix operates on, mirroring the
// original from_ast: bindings and wildcards erase to Wildcard (the inner
// name carries no information useful to exhaustiveness), literals become
// concrete constructors, and Tuple/Struct/Enum recurse field by field.
// Or-patterns are expected to already have been flattened by
// ExpandOrPattern before this is called once per alternative.
func FromPattern(pat *typedast.Pattern, ty Type) DeconstructedPattern {
	switch k := pat.Kind.(type) {
	case typedast.WildcardPattern:
		return WildcardPattern()

	case typedast.BindingPattern:
		if k.Sub != nil {
			return FromPattern(k.Sub, ty)
		}
		return WildcardPattern()

	case typedast.LiteralPattern:
		return DeconstructedPattern{Ctor: constructorFromLiteral(k.Value)}

	case typedast.TuplePattern:
		fieldTypes := ty.Elems
		fields := make([]DeconstructedPattern, len(k.Elems))
		for i, p := range k.Elems {
			ft := Type{Kind: KindUnknown}
			if i < len(fieldTypes) {
				ft = fieldTypes[i]
			}
			fields[i] = FromPattern(p, ft)
		}
		return DeconstructedPattern{Ctor: Constructor{Kind: CtorTuple, FixedArity: len(k.Elems)}, Fields: fields}

	case typedast.StructPattern:
		fields := make([]DeconstructedPattern, 0, len(k.Fields))
		for _, fp := range k.Fields {
			ft := Type{Kind: KindUnknown}
			for _, f := range ty.Fields {
				if f.Name == fp.Name {
					ft = f.Type
					break
				}
			}
			fields = append(fields, FromPattern(fp.Pattern, ft))
		}
		return DeconstructedPattern{Ctor: Constructor{Kind: CtorStruct, StructName: k.StructName}, Fields: fields}

	case typedast.EnumPattern:
		idx := -1
		var fieldTypes []Type
		for i, v := range ty.Variants {
			if v.Name == k.Variant {
				idx = i
				fieldTypes = v.Fields
				break
			}
		}
		fields := make([]DeconstructedPattern, len(k.Elems))
		for i, p := range k.Elems {
			ft := Type{Kind: KindUnknown}
			if i < len(fieldTypes) {
				ft = fieldTypes[i]
			}
			fields[i] = FromPattern(p, ft)
		}
		return DeconstructedPattern{
			Ctor:   Constructor{Kind: CtorVariant, VariantName: k.Variant, VariantIndex: idx},
			Fields: fields,
		}

	case typedast.OrPattern:
		// Expected to be pre-expanded by ExpandOrPattern; treat the first
		// alternative as representative if one slips through, matching
		// the original's own documented fallback.
		if len(k.Alts) > 0 {
			return FromPattern(k.Alts[0], ty)
		}
		return WildcardPattern()

	default:
		return WildcardPattern()
	}
}

func constructorFromLiteral(v any) Constructor {
	switch val := v.(type) {
	case bool:
		return Constructor{Kind: CtorBool, Bool: val}
	case int64:
		return Constructor{Kind: CtorInt, Int: val}
	case int:
		return Constructor{Kind: CtorInt, Int: int64(val)}
	case float64:
		return Constructor{Kind: CtorFloat, Float: val}
	case string:
		return Constructor{Kind: CtorString, Str: val}
	case nil:
		return Constructor{Kind: CtorUnit}
	default:
		return Wildcard
	}
}
