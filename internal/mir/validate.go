package mir

import "fmt"

// Validate checks the invariants of spec.md §3.2 and returns the first
// violation found, or nil if the function is well formed. It is the
// mechanical backbone of testable property 1 in spec.md §8.1: lowering (and
// every optimization pass) must either preserve these invariants or never
// have produced a program violating them.
func (f *Function) Validate() error {
	if len(f.Blocks) == 0 {
		return fmt.Errorf("function %s: zero blocks", f.Name)
	}
	if len(f.Locals) == 0 {
		return fmt.Errorf("function %s: missing return-place local", f.Name)
	}
	if !typeEqual(f.Locals[0].Type, f.ReturnType) {
		return fmt.Errorf("function %s: Local(0) type does not match return_ty", f.Name)
	}
	for i, p := range f.Params {
		want := LocalID(i + 1)
		if p != want {
			return fmt.Errorf("function %s: params out of declaration order at index %d", f.Name, i)
		}
	}
	for bi, b := range f.Blocks {
		if b == nil {
			return fmt.Errorf("function %s: nil block at index %d", f.Name, bi)
		}
		if BlockID(bi) != b.ID {
			return fmt.Errorf("function %s: block id %d stored at index %d", f.Name, b.ID, bi)
		}
		if b.Terminator == nil {
			return fmt.Errorf("function %s: block bb%d has no terminator", f.Name, b.ID)
		}
		for _, succ := range Successors(b.Terminator) {
			if f.Block(succ) == nil {
				return fmt.Errorf("function %s: block bb%d references nonexistent successor bb%d", f.Name, b.ID, succ)
			}
		}
	}
	return nil
}

// Validate checks every function in the program.
func (p *Program) Validate() error {
	for _, f := range p.Functions {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func typeEqual(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindArray, KindOptional, KindRef, KindRefMut:
		return typeEqualPtr(a.Elem, b.Elem)
	case KindMap:
		return typeEqualPtr(a.Key, b.Key) && typeEqualPtr(a.Val, b.Val)
	case KindResult:
		return typeEqualPtr(a.OK, b.OK) && typeEqualPtr(a.Err, b.Err)
	case KindTuple:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !typeEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case KindStruct:
		return a.StructID == b.StructID
	case KindEnum:
		return a.EnumID == b.EnumID
	case KindTypeParam:
		return a.Name == b.Name
	case KindTypeVar:
		return a.VarID == b.VarID
	case KindFnPtr, KindClosure:
		return typesEqual(a.Params, b.Params) && typesEqual(a.Results, b.Results)
	default:
		return true
	}
}

func typeEqualPtr(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return typeEqual(*a, *b)
}

func typesEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !typeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// TypeEqual exposes the structural type-equality check used by Validate,
// the pattern compiler's constructor matching, and the WIT renderer's
// de-duplication of emitted type definitions.
func TypeEqual(a, b Type) bool { return typeEqual(a, b) }
