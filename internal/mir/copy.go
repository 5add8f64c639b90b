package mir

// IsCopy implements the Copy-ness predicate of spec.md §3.5: a type is Copy
// iff it is a primitive, a reference, or a homogeneously-Copy tuple,
// optional, or result. String, arrays, maps, structs, enums, functions, and
// unknowns are never Copy.
//
// This single predicate is what ownership inference (§4.1) consults to
// choose Operand.Copy vs Operand.Move at every place access — it is not a
// language keyword or a user annotation, it is derived from type structure
// alone, every time.
func IsCopy(t Type) bool {
	switch t.Kind {
	case KindBool, KindChar, KindUnit, KindNever,
		KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUInt, KindUInt8, KindUInt16, KindUInt32, KindUInt64,
		KindFloat, KindFloat32, KindFloat64:
		return true
	case KindRef, KindRefMut:
		return true
	case KindTuple:
		for _, elem := range t.Elems {
			if !IsCopy(elem) {
				return false
			}
		}
		return true
	case KindOptional:
		return t.Elem != nil && IsCopy(*t.Elem)
	case KindResult:
		return t.OK != nil && t.Err != nil && IsCopy(*t.OK) && IsCopy(*t.Err)
	default:
		// String, Array, Map, Struct, Enum, FnPtr, Closure, TypeVar, TypeParam.
		return false
	}
}
