package optimize

import (
	"github.com/cancelei/aria-lang-sub001/internal/mir"
)

// ConstFold implements spec.md §4.2's const-fold pass: for every
// Assign(p, BinaryOp(op, Constant(a), Constant(b))) where op is total on
// the constants, replace the assignment's RHS with Use(Constant(c)).
// Integer overflow wraps per the signed/unsigned rules of the operand's
// width; divide-by-zero is never folded, left for the runtime assert.
// SwitchInt on a known constant discriminant collapses to Goto. Returns
// whether anything changed.
func ConstFold(f *mir.Function) bool {
	changed := false
	for _, block := range f.Blocks {
		for i, stmt := range block.Statements {
			assign, ok := stmt.(mir.Assign)
			if !ok {
				continue
			}
			switch rv := assign.RHS.(type) {
			case mir.BinaryOp:
				if c, ok := foldBinary(rv); ok {
					block.Statements[i] = mir.Assign{Place: assign.Place, RHS: mir.Use{Operand: c}}
					changed = true
				}
			case mir.UnaryOp:
				if c, ok := foldUnary(rv); ok {
					block.Statements[i] = mir.Assign{Place: assign.Place, RHS: mir.Use{Operand: c}}
					changed = true
				}
			}
		}
		if sw, ok := block.Terminator.(mir.SwitchInt); ok {
			if c, isConst := sw.Discriminant.(mir.Constant); isConst {
				target := sw.Otherwise
				if v, ok := asInt(c); ok {
					for _, cs := range sw.Cases {
						if cs.Value == v {
							target = cs.Target
							break
						}
					}
				}
				block.Terminator = mir.Goto{Target: target}
				changed = true
			}
		}
	}
	return changed
}

func asConst(op mir.Operand) (mir.Constant, bool) {
	c, ok := op.(mir.Constant)
	return c, ok
}

func asInt(c mir.Constant) (int64, bool) {
	switch v := c.Value.(type) {
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func asFloat(c mir.Constant) (float64, bool) {
	v, ok := c.Value.(float64)
	return v, ok
}

func asBool(c mir.Constant) (bool, bool) {
	v, ok := c.Value.(bool)
	return v, ok
}

func isUnsigned(k mir.TypeKind) bool {
	switch k {
	case mir.KindUInt, mir.KindUInt8, mir.KindUInt16, mir.KindUInt32, mir.KindUInt64:
		return true
	default:
		return false
	}
}

func isFloatKind(k mir.TypeKind) bool {
	return k == mir.KindFloat || k == mir.KindFloat32 || k == mir.KindFloat64
}

// bitWidth returns the wraparound width in bits for a sized integer kind,
// or 64 for the platform-width Int/UInt.
func bitWidth(k mir.TypeKind) uint {
	switch k {
	case mir.KindInt8, mir.KindUInt8:
		return 8
	case mir.KindInt16, mir.KindUInt16:
		return 16
	case mir.KindInt32, mir.KindUInt32:
		return 32
	default:
		return 64
	}
}

func wrapInt(v int64, k mir.TypeKind) int64 {
	w := bitWidth(k)
	if w >= 64 {
		return v
	}
	mask := int64(1)<<w - 1
	v &= mask
	signBit := int64(1) << (w - 1)
	if !isUnsigned(k) && v&signBit != 0 {
		v -= int64(1) << w
	}
	return v
}

func foldBinary(rv mir.BinaryOp) (mir.Constant, bool) {
	a, aok := asConst(rv.X)
	b, bok := asConst(rv.Y)
	if !aok || !bok {
		return mir.Constant{}, false
	}

	if isFloatKind(a.Type.Kind) {
		x, ok1 := asFloat(a)
		y, ok2 := asFloat(b)
		if !ok1 || !ok2 {
			return mir.Constant{}, false
		}
		switch rv.Op {
		case mir.BinAdd:
			return mir.Constant{Type: a.Type, Value: x + y}, true
		case mir.BinSub:
			return mir.Constant{Type: a.Type, Value: x - y}, true
		case mir.BinMul:
			return mir.Constant{Type: a.Type, Value: x * y}, true
		case mir.BinDiv:
			if y == 0 {
				return mir.Constant{}, false
			}
			return mir.Constant{Type: a.Type, Value: x / y}, true
		case mir.BinEq:
			return mir.Constant{Type: mir.Bool(), Value: x == y}, true
		case mir.BinNe:
			return mir.Constant{Type: mir.Bool(), Value: x != y}, true
		case mir.BinLt:
			return mir.Constant{Type: mir.Bool(), Value: x < y}, true
		case mir.BinLe:
			return mir.Constant{Type: mir.Bool(), Value: x <= y}, true
		case mir.BinGt:
			return mir.Constant{Type: mir.Bool(), Value: x > y}, true
		case mir.BinGe:
			return mir.Constant{Type: mir.Bool(), Value: x >= y}, true
		}
		return mir.Constant{}, false
	}

	if a.Type.Kind == mir.KindBool {
		x, ok1 := asBool(a)
		y, ok2 := asBool(b)
		if !ok1 || !ok2 {
			return mir.Constant{}, false
		}
		switch rv.Op {
		case mir.BinLogicalAnd:
			return mir.Constant{Type: mir.Bool(), Value: x && y}, true
		case mir.BinLogicalOr:
			return mir.Constant{Type: mir.Bool(), Value: x || y}, true
		case mir.BinEq:
			return mir.Constant{Type: mir.Bool(), Value: x == y}, true
		case mir.BinNe:
			return mir.Constant{Type: mir.Bool(), Value: x != y}, true
		}
		return mir.Constant{}, false
	}

	x, ok1 := asInt(a)
	y, ok2 := asInt(b)
	if !ok1 || !ok2 {
		return mir.Constant{}, false
	}
	switch rv.Op {
	case mir.BinAdd:
		return mir.Constant{Type: a.Type, Value: wrapInt(x+y, a.Type.Kind)}, true
	case mir.BinSub:
		return mir.Constant{Type: a.Type, Value: wrapInt(x-y, a.Type.Kind)}, true
	case mir.BinMul:
		return mir.Constant{Type: a.Type, Value: wrapInt(x*y, a.Type.Kind)}, true
	case mir.BinDiv:
		if y == 0 {
			return mir.Constant{}, false // left as a runtime assert, per spec.md §4.2
		}
		return mir.Constant{Type: a.Type, Value: wrapInt(x/y, a.Type.Kind)}, true
	case mir.BinRem:
		if y == 0 {
			return mir.Constant{}, false
		}
		return mir.Constant{Type: a.Type, Value: wrapInt(x%y, a.Type.Kind)}, true
	case mir.BinAnd:
		return mir.Constant{Type: a.Type, Value: wrapInt(x&y, a.Type.Kind)}, true
	case mir.BinOr:
		return mir.Constant{Type: a.Type, Value: wrapInt(x|y, a.Type.Kind)}, true
	case mir.BinXor:
		return mir.Constant{Type: a.Type, Value: wrapInt(x^y, a.Type.Kind)}, true
	case mir.BinShl:
		return mir.Constant{Type: a.Type, Value: wrapInt(x<<uint(y), a.Type.Kind)}, true
	case mir.BinShr:
		return mir.Constant{Type: a.Type, Value: wrapInt(x>>uint(y), a.Type.Kind)}, true
	case mir.BinEq:
		return mir.Constant{Type: mir.Bool(), Value: x == y}, true
	case mir.BinNe:
		return mir.Constant{Type: mir.Bool(), Value: x != y}, true
	case mir.BinLt:
		return mir.Constant{Type: mir.Bool(), Value: x < y}, true
	case mir.BinLe:
		return mir.Constant{Type: mir.Bool(), Value: x <= y}, true
	case mir.BinGt:
		return mir.Constant{Type: mir.Bool(), Value: x > y}, true
	case mir.BinGe:
		return mir.Constant{Type: mir.Bool(), Value: x >= y}, true
	}
	return mir.Constant{}, false
}

func foldUnary(rv mir.UnaryOp) (mir.Constant, bool) {
	c, ok := asConst(rv.X)
	if !ok {
		return mir.Constant{}, false
	}
	switch rv.Op {
	case mir.UnNeg:
		if isFloatKind(c.Type.Kind) {
			v, ok := asFloat(c)
			if !ok {
				return mir.Constant{}, false
			}
			return mir.Constant{Type: c.Type, Value: -v}, true
		}
		v, ok := asInt(c)
		if !ok {
			return mir.Constant{}, false
		}
		return mir.Constant{Type: c.Type, Value: wrapInt(-v, c.Type.Kind)}, true
	case mir.UnNot:
		if c.Type.Kind == mir.KindBool {
			v, ok := asBool(c)
			if !ok {
				return mir.Constant{}, false
			}
			return mir.Constant{Type: c.Type, Value: !v}, true
		}
		v, ok := asInt(c)
		if !ok {
			return mir.Constant{}, false
		}
		return mir.Constant{Type: c.Type, Value: wrapInt(^v, c.Type.Kind)}, true
	}
	return mir.Constant{}, false
}
