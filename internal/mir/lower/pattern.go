package lower

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
	"github.com/cancelei/aria-lang-sub001/internal/typedast"
)

// lowerPatternBinding lowers an irrefutable pattern (let bindings, function
// parameters) by destructuring value into named locals. Refutable
// sub-patterns (literals, enum variants used outside a match arm) are a
// lowering error, matching the original Rust lower_pattern_binding's
// InvalidPattern case.
func (b *builder) lowerPatternBinding(pat *typedast.Pattern, value mir.Operand, ty mir.Type) error {
	switch k := pat.Kind.(type) {
	case typedast.WildcardPattern:
		return nil

	case typedast.BindingPattern:
		local := b.fn.AddLocal(mir.LocalDecl{Type: ty, Name: k.Name})
		b.emit(mir.StorageLive{Local: local})
		b.emit(mir.Assign{Place: mir.PlaceOf(local), RHS: mir.Use{Operand: value}})
		b.bind(k.Name, local)
		if k.Sub != nil {
			return b.lowerPatternBinding(k.Sub, operandFor(mir.PlaceOf(local), ty), ty)
		}
		return nil

	case typedast.LiteralPattern:
		return invalidPattern(b.fnName)

	case typedast.TuplePattern:
		temp := b.newTemp(ty)
		b.emit(mir.Assign{Place: mir.PlaceOf(temp), RHS: mir.Use{Operand: value}})
		for i, sub := range k.Elems {
			elemTy := mir.Unit()
			if i < len(ty.Elems) {
				elemTy = ty.Elems[i]
			}
			place := mir.PlaceOf(temp).Project(mir.FieldElem(uint32(i)))
			if err := b.lowerPatternBinding(sub, operandFor(place, elemTy), elemTy); err != nil {
				return err
			}
		}
		return nil

	case typedast.StructPattern:
		temp := b.newTemp(ty)
		b.emit(mir.Assign{Place: mir.PlaceOf(temp), RHS: mir.Use{Operand: value}})
		def := b.ctx.program.StructByID(ty.StructID)
		for _, fp := range k.Fields {
			idx, err := b.ctx.fieldIndex(ty, fp.Name, b.fnName)
			if err != nil {
				return err
			}
			fieldTy := mir.Unit()
			if def != nil && int(idx) < len(def.Fields) {
				fieldTy = def.Fields[idx].Type
			}
			place := mir.PlaceOf(temp).Project(mir.FieldElem(idx))
			if err := b.lowerPatternBinding(fp.Pattern, operandFor(place, fieldTy), fieldTy); err != nil {
				return err
			}
		}
		return nil

	case typedast.EnumPattern:
		return invalidPattern(b.fnName) // enum variants are refutable; only valid inside a match arm

	case typedast.OrPattern:
		return invalidPattern(b.fnName)

	default:
		return internalErr(b.fnName, "unhandled pattern kind in binding lowering")
	}
}

// testAndBind emits the statements needed to check whether pat structurally
// matches the value at place (of type ty), returning a Bool operand, and
// binds any names the pattern introduces unconditionally (they are only
// read from the arm body, which is reached only when the returned operand
// is true, so evaluating them speculatively is harmless).
//
// This walks the pattern directly rather than compiling it through a
// shared decision tree, so sibling arms re-test shared prefixes instead of
// sharing a column the way internal/pattern's exhaustiveness compiler
// would. Acceptable for typical arm counts; a future pass could route
// match lowering through internal/pattern's decision tree for the
// column-sharing optimization.
func (b *builder) testAndBind(pat *typedast.Pattern, place mir.Place, ty mir.Type) (mir.Operand, error) {
	switch k := pat.Kind.(type) {
	case typedast.WildcardPattern:
		return mir.Constant{Type: mir.Bool(), Value: true}, nil

	case typedast.BindingPattern:
		local := b.fn.AddLocal(mir.LocalDecl{Type: ty, Name: k.Name})
		b.emit(mir.StorageLive{Local: local})
		b.emit(mir.Assign{Place: mir.PlaceOf(local), RHS: mir.Use{Operand: operandFor(place, ty)}})
		b.bind(k.Name, local)
		if k.Sub != nil {
			return b.testAndBind(k.Sub, place, ty)
		}
		return mir.Constant{Type: mir.Bool(), Value: true}, nil

	case typedast.LiteralPattern:
		val := operandFor(place, ty)
		return b.materialize(mir.BinaryOp{Op: mir.BinEq, X: val, Y: mir.Constant{Type: ty, Value: k.Value}}, mir.Bool()), nil

	case typedast.TuplePattern:
		result := mir.Operand(mir.Constant{Type: mir.Bool(), Value: true})
		for i, sub := range k.Elems {
			elemTy := mir.Unit()
			if i < len(ty.Elems) {
				elemTy = ty.Elems[i]
			}
			subPlace := place.Project(mir.FieldElem(uint32(i)))
			sub, err := b.testAndBind(sub, subPlace, elemTy)
			if err != nil {
				return nil, err
			}
			result = b.materialize(mir.BinaryOp{Op: mir.BinLogicalAnd, X: result, Y: sub}, mir.Bool())
		}
		return result, nil

	case typedast.StructPattern:
		def := b.ctx.program.StructByID(ty.StructID)
		result := mir.Operand(mir.Constant{Type: mir.Bool(), Value: true})
		for _, fp := range k.Fields {
			idx, err := b.ctx.fieldIndex(ty, fp.Name, b.fnName)
			if err != nil {
				return nil, err
			}
			fieldTy := mir.Unit()
			if def != nil && int(idx) < len(def.Fields) {
				fieldTy = def.Fields[idx].Type
			}
			subPlace := place.Project(mir.FieldElem(idx))
			sub, err := b.testAndBind(fp.Pattern, subPlace, fieldTy)
			if err != nil {
				return nil, err
			}
			result = b.materialize(mir.BinaryOp{Op: mir.BinLogicalAnd, X: result, Y: sub}, mir.Bool())
		}
		return result, nil

	case typedast.EnumPattern:
		return b.testEnumPattern(k, place, ty)

	case typedast.OrPattern:
		result := mir.Operand(mir.Constant{Type: mir.Bool(), Value: false})
		for _, alt := range k.Alts {
			sub, err := b.testAndBind(alt, place, ty)
			if err != nil {
				return nil, err
			}
			result = b.materialize(mir.BinaryOp{Op: mir.BinLogicalOr, X: result, Y: sub}, mir.Bool())
		}
		return result, nil

	default:
		return nil, internalErr(b.fnName, "unhandled pattern kind in match lowering")
	}
}

func (b *builder) testEnumPattern(k typedast.EnumPattern, place mir.Place, ty mir.Type) (mir.Operand, error) {
	def := b.ctx.program.EnumByID(ty.EnumID)
	if def == nil {
		return nil, undefinedType(b.fnName, k.EnumName)
	}
	variantIdx := -1
	for i, v := range def.Variants {
		if v.Name == k.Variant {
			variantIdx = i
			break
		}
	}
	if variantIdx < 0 {
		return nil, undefinedField(b.fnName, k.EnumName, k.Variant)
	}

	discr := b.materialize(mir.Discriminant{Place: place}, mir.Int())
	result := b.materialize(mir.BinaryOp{
		Op: mir.BinEq,
		X:  discr,
		Y:  mir.Constant{Type: mir.Int(), Value: int64(variantIdx)},
	}, mir.Bool())

	variant := def.Variants[variantIdx]
	downcast := place.Project(mir.DowncastElem(uint32(variantIdx)))
	for i, sub := range k.Elems {
		fieldTy := mir.Unit()
		if i < len(variant.Fields) {
			fieldTy = variant.Fields[i]
		}
		subPlace := downcast.Project(mir.FieldElem(uint32(i)))
		subResult, err := b.testAndBind(sub, subPlace, fieldTy)
		if err != nil {
			return nil, err
		}
		result = b.materialize(mir.BinaryOp{Op: mir.BinLogicalAnd, X: result, Y: subResult}, mir.Bool())
	}
	return result, nil
}
